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
	"math"
	"strconv"
	"unsafe"

	"github.com/launix-de/cowarray/cow"
)

// Array is the array value type of the runtime.
type Array = cow.Array[Scmer]

// Scmer is a compact tagged value container.
// The zero value is nil.
type Scmer struct {
	ptr unsafe.Pointer // string data or *Array
	aux uint64         // int or float bits, string length
	tag uint8
}

const scmerStructOverhead = uint(unsafe.Sizeof(Scmer{}))

// Type tags
const (
	tagNil = iota
	tagBool
	tagInt
	tagFloat
	tagString
	tagSymbol
	tagArray
)

var tagNames = [...]string{"nil", "bool", "int", "float", "string", "symbol", "array"}

//
// Constructors
//

func NewNil() Scmer { return Scmer{} }

func NewBool(b bool) Scmer {
	if b {
		return Scmer{nil, 1, tagBool}
	}
	return Scmer{nil, 0, tagBool}
}

func NewInt(i int64) Scmer {
	return Scmer{nil, uint64(i), tagInt}
}

func NewFloat(f float64) Scmer {
	return Scmer{nil, math.Float64bits(f), tagFloat}
}

func NewString(s string) Scmer {
	return Scmer{unsafe.Pointer(unsafe.StringData(s)), uint64(len(s)), tagString}
}

func NewSymbol(sym string) Scmer {
	return Scmer{unsafe.Pointer(unsafe.StringData(sym)), uint64(len(sym)), tagSymbol}
}

// NewArray wraps the handle a. The value owns a; nil means a new empty array.
func NewArray(a *Array) Scmer {
	if a == nil {
		a = cow.New[Scmer]()
	}
	return Scmer{unsafe.Pointer(a), 0, tagArray}
}

// NewArrayOf builds an array value from items.
func NewArrayOf(items ...Scmer) Scmer {
	return NewArray(cow.Of(items...))
}

func FromAny(v any) Scmer {
	switch vv := v.(type) {
	case Scmer:
		return vv
	case nil:
		return NewNil()
	case bool:
		return NewBool(vv)
	case int:
		return NewInt(int64(vv))
	case int32:
		return NewInt(int64(vv))
	case int64:
		return NewInt(vv)
	case uint:
		return NewInt(int64(vv))
	case uint32:
		return NewInt(int64(vv))
	case uint64:
		return NewInt(int64(vv))
	case float32:
		return NewFloat(float64(vv))
	case float64:
		return NewFloat(vv)
	case string:
		return NewString(vv)
	case []Scmer:
		return NewArrayOf(vv...)
	case *Array:
		return NewArray(vv.Clone())
	case []any:
		items := make([]Scmer, len(vv))
		for i, x := range vv {
			items[i] = FromAny(x)
		}
		return NewArray(cow.From(items))
	default:
		panic(fmt.Sprintf("cannot convert %T to a value", v))
	}
}

//
// Accessors
//

func (s Scmer) IsNil() bool    { return s.tag == tagNil }
func (s Scmer) IsBool() bool   { return s.tag == tagBool }
func (s Scmer) IsInt() bool    { return s.tag == tagInt }
func (s Scmer) IsFloat() bool  { return s.tag == tagFloat }
func (s Scmer) IsString() bool { return s.tag == tagString }
func (s Scmer) IsSymbol() bool { return s.tag == tagSymbol }
func (s Scmer) IsArray() bool  { return s.tag == tagArray }

// Kind names the type of s for error messages.
func (s Scmer) Kind() string { return tagNames[s.tag] }

func (s Scmer) SymbolEquals(name string) bool {
	return s.tag == tagSymbol && s.text() == name
}

func (s Scmer) text() string {
	return unsafe.String((*byte)(s.ptr), int(s.aux))
}

func (s Scmer) Bool() bool {
	switch s.tag {
	case tagNil:
		return false
	case tagBool, tagInt:
		return s.aux != 0
	case tagFloat:
		return s.Float() != 0.0
	case tagString, tagSymbol:
		return s.aux != 0
	case tagArray:
		return !s.Array().IsEmpty()
	}
	return false
}

func (s Scmer) Int() int64 {
	switch s.tag {
	case tagInt, tagBool:
		return int64(s.aux)
	case tagFloat:
		return int64(math.Float64frombits(s.aux))
	case tagString:
		v, err := strconv.ParseInt(s.text(), 10, 64)
		if err != nil {
			return 0
		}
		return v
	}
	return 0
}

func (s Scmer) Float() float64 {
	switch s.tag {
	case tagFloat:
		return math.Float64frombits(s.aux)
	case tagInt, tagBool:
		return float64(int64(s.aux))
	case tagString:
		v, err := strconv.ParseFloat(s.text(), 64)
		if err != nil {
			return 0.0
		}
		return v
	}
	return 0.0
}

// Symbol returns the name of a symbol value.
func (s Scmer) Symbol() string {
	if s.tag != tagSymbol {
		panic("not symbol")
	}
	return s.text()
}

// Array returns the handle of an array value. Writes through it are only
// allowed when s is owned by the caller, e.g. a variable binding.
func (s Scmer) Array() *Array {
	if s.tag != tagArray {
		panic("not array")
	}
	return (*Array)(s.ptr)
}

// Any unwraps the value into a Go value.
func (s Scmer) Any() any {
	switch s.tag {
	case tagBool:
		return s.Bool()
	case tagInt:
		return s.Int()
	case tagFloat:
		return s.Float()
	case tagString, tagSymbol:
		return s.text()
	case tagArray:
		result := make([]any, 0, s.Array().Len())
		for v := range s.Array().Values() {
			result = append(result, v.Any())
		}
		return result
	}
	return nil
}

//
// Element contract of cow.Array
//

// Clone returns an independent copy of s. Arrays share their buffer until
// one side writes.
func (s Scmer) Clone() Scmer {
	if s.tag == tagArray {
		return NewArray(s.Array().Clone())
	}
	return s
}

// Release drops the array handle held by s.
func (s Scmer) Release() {
	if s.tag == tagArray {
		s.Array().Release()
	}
}

// Equal compares by content. Ints and floats compare numerically.
func (s Scmer) Equal(o Scmer) bool {
	switch s.tag {
	case tagInt:
		if o.tag == tagInt {
			return s.aux == o.aux
		}
		return o.tag == tagFloat && s.Float() == o.Float()
	case tagFloat:
		return (o.tag == tagFloat || o.tag == tagInt) && s.Float() == o.Float()
	case tagString, tagSymbol:
		return s.tag == o.tag && s.text() == o.text()
	case tagArray:
		return o.tag == tagArray && s.Array().Equal(o.Array())
	}
	return s.tag == o.tag && s.aux == o.aux
}

// ComputeSize approximates the memory consumption of the value including
// the inline representation.
func (s Scmer) ComputeSize() uint {
	switch s.tag {
	case tagString, tagSymbol:
		return scmerStructOverhead + uint(s.aux)
	case tagArray:
		return scmerStructOverhead + s.Array().ComputeSize()
	}
	return scmerStructOverhead
}

// Compatibility helpers
func ToBool(v Scmer) bool     { return v.Bool() }
func ToInt(v Scmer) int       { return int(v.Int()) }
func ToFloat(v Scmer) float64 { return v.Float() }
