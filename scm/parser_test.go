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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readPanic returns what Read panicked with.
func readPanic(s string) (r any) {
	defer func() { r = recover() }()
	Read("test", s)
	return nil
}

func TestReadTokens(t *testing.T) {
	code := Read("test", `push a [1, 2, [3]] "x y" -4 1.5 true nil false`)
	require.Len(t, code, 9)
	assert.True(t, code[0].SymbolEquals("push"))
	assert.True(t, code[1].SymbolEquals("a"))
	assert.Equal(t, "[1, 2, [3]]", code[2].String())
	assert.Equal(t, "x y", String(code[3]))
	assert.True(t, code[4].IsInt())
	assert.Equal(t, int64(-4), code[4].Int())
	assert.True(t, code[5].IsFloat())
	assert.Equal(t, 1.5, code[5].Float())
	assert.Equal(t, NewBool(true), code[6])
	assert.True(t, code[7].IsNil())
	assert.Equal(t, NewBool(false), code[8])
}

func TestReadSeparators(t *testing.T) {
	assert.Equal(t, "[1, 2, 3]", Read("test", "[1,2,3]")[0].String())
	assert.Equal(t, "[1, 2, 3]", Read("test", "[1 2\t3]")[0].String())
	assert.Equal(t, "[[], [[]]]", Read("test", "[[],[[]]]")[0].String())
	assert.Equal(t, "[]", Read("test", "[ ]")[0].String())
}

func TestReadSymbolsAndSigns(t *testing.T) {
	code := Read("test", "- + empty? -x 1e3")
	require.Len(t, code, 5)
	assert.True(t, code[0].SymbolEquals("-"))
	assert.True(t, code[1].SymbolEquals("+"))
	assert.True(t, code[2].SymbolEquals("empty?"))
	assert.True(t, code[3].SymbolEquals("-x"))
	assert.Equal(t, 1000.0, code[4].Float())
}

func TestReadStringEscapes(t *testing.T) {
	code := Read("test", `"a\"b" "tab\there" "back\\slash" "line\nbreak"`)
	require.Len(t, code, 4)
	assert.Equal(t, "a\"b", String(code[0]))
	assert.Equal(t, "tab\there", String(code[1]))
	assert.Equal(t, "back\\slash", String(code[2]))
	assert.Equal(t, "line\nbreak", String(code[3]))
}

func TestReadComments(t *testing.T) {
	code := Read("test", "len /* the * array */ [1, /* skipped */ 2]")
	require.Len(t, code, 2)
	assert.True(t, code[0].SymbolEquals("len"))
	assert.Equal(t, "[1, 2]", code[1].String())
}

func TestReadPrintedFormBack(t *testing.T) {
	v := NewArrayOf(NewInt(1), NewString("q\"uote\n"), NewArrayOf(NewFloat(0.25), NewNil()), NewBool(false))
	back := Read("test", v.String())
	require.Len(t, back, 1)
	assert.True(t, v.Equal(back[0]), "%v != %v", v, back[0])
}

func TestReadUnbalanced(t *testing.T) {
	r := readPanic("push a [1, [2]")
	err, ok := r.(error)
	require.True(t, ok, "expected an error, got %v", r)
	assert.True(t, errors.Is(err, ErrUnbalanced))
	assert.Contains(t, err.Error(), "test")

	assert.Equal(t, "test: unexpected ]", readPanic("1 ]"))
	assert.Equal(t, "unterminated string", readPanic(`"open`))
	assert.Nil(t, readPanic("[1] [2]"))
}
