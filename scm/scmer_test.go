/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
package scm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralForm(t *testing.T) {
	v := NewArrayOf(NewInt(1), NewString("a\"b"), NewFloat(2.5), NewBool(true), NewNil(), NewSymbol("x"))
	assert.Equal(t, `[1, "a\"b", 2.5, true, nil, x]`, v.String())
	assert.Equal(t, v.String(), fmt.Sprintf("%#v", v))
	assert.Equal(t, v.String(), fmt.Sprint(v))
	assert.Equal(t, "[]", NewArray(nil).String())
}

func TestStringIsRawForStrings(t *testing.T) {
	assert.Equal(t, "hi there", String(NewString("hi there")))
	assert.Equal(t, `"hi there"`, NewString("hi there").String())
	assert.Equal(t, "[\"hi\"]", String(NewArrayOf(NewString("hi"))))
}

func TestEqualByKind(t *testing.T) {
	assert.True(t, NewInt(2).Equal(NewFloat(2)))
	assert.True(t, NewFloat(2).Equal(NewInt(2)))
	assert.False(t, NewString("1").Equal(NewInt(1)))
	assert.False(t, NewString("x").Equal(NewSymbol("x")))
	assert.True(t, NewNil().Equal(NewNil()))
	assert.False(t, NewNil().Equal(NewBool(false)))
	assert.True(t, NewArrayOf(NewInt(1), NewArrayOf()).Equal(NewArrayOf(NewFloat(1), NewArrayOf())))
	assert.False(t, NewArrayOf(NewInt(1)).Equal(NewArrayOf(NewInt(1), NewInt(2))))
}

func TestCloneSharesUntilWrite(t *testing.T) {
	a := NewArrayOf(NewInt(1), NewInt(2), NewInt(3))
	b := a.Clone()
	require.True(t, a.Array().Shares(b.Array()))
	assert.Equal(t, 2, a.Array().Refs())

	b.Array().Push(NewInt(4))
	assert.Equal(t, "[1, 2, 3]", a.String())
	assert.Equal(t, "[1, 2, 3, 4]", b.String())
	assert.False(t, a.Array().Shares(b.Array()))
	assert.Equal(t, 1, a.Array().Refs())
}

func TestNestedWriteDoesNotLeak(t *testing.T) {
	inner := NewArrayOf(NewInt(1))
	outer := NewArrayOf(inner.Clone())
	copied := outer.Clone()

	for _, p := range copied.Array().Mut() {
		p.Array().Push(NewInt(2))
	}
	assert.Equal(t, "[[1]]", outer.String())
	assert.Equal(t, "[[1, 2]]", copied.String())
	assert.Equal(t, "[1]", inner.String())
}

func TestScalarsAreImmutable(t *testing.T) {
	for _, v := range []Scmer{NewNil(), NewBool(true), NewInt(-3), NewFloat(0.5), NewString("s"), NewSymbol("y")} {
		c := v.Clone()
		assert.Equal(t, v, c)
		c.Release()
		assert.True(t, v.Equal(c))
	}
}

func TestFromAny(t *testing.T) {
	v := FromAny([]any{1, "x", []any{2.5, nil, true}})
	assert.Equal(t, `[1, "x", [2.5, nil, true]]`, v.String())
	assert.Equal(t, []any{int64(1), "x", []any{2.5, nil, true}}, v.Any())
	assert.Panics(t, func() { FromAny(struct{}{}) })
}

func TestConversions(t *testing.T) {
	assert.Equal(t, int64(3), NewFloat(3.7).Int())
	assert.Equal(t, 42.0, NewString("42").Float())
	assert.Equal(t, int64(0), NewString("nope").Int())
	assert.True(t, NewArrayOf(NewNil()).Bool())
	assert.False(t, NewArrayOf().Bool())
	assert.False(t, NewString("").Bool())
	assert.Equal(t, "array", NewArrayOf().Kind())
	assert.Panics(t, func() { NewInt(1).Array() })
	assert.Panics(t, func() { NewString("x").Symbol() })
}

func TestComputeSize(t *testing.T) {
	small := NewArrayOf(NewInt(1))
	big := NewArrayOf(NewString("a long string value"), NewArrayOf(NewInt(1), NewInt(2)))
	assert.Greater(t, small.ComputeSize(), NewInt(1).ComputeSize())
	assert.Greater(t, big.ComputeSize(), small.ComputeSize())
}
