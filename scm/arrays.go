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
	"iter"

	"github.com/launix-de/cowarray/cow"
)

func asArray(v Scmer, ctx string) *Array {
	if !v.IsArray() {
		panic(ctx + ": expected array, got " + v.Kind())
	}
	return v.Array()
}

// varArray returns the array bound to the variable named by sym. Writes
// through it change the variable.
func varArray(en *Env, sym Scmer, ctx string) *Array {
	b := en.Lookup(sym.Symbol())
	if b == nil {
		panic(ctx + ": undefined variable " + sym.Symbol())
	}
	return asArray(b.Value, ctx)
}

// clonedValues yields independent copies of the elements of a.
func clonedValues(a *Array) iter.Seq[Scmer] {
	return func(yield func(Scmer) bool) {
		for v := range a.Values() {
			if !yield(v.Clone()) {
				return
			}
		}
	}
}

func init_arrays() {
	DeclareTitle("Arrays")

	Declare(&Declaration{
		"array", "constructs an array from its parameters",
		0, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"item...", "any", "items of the new array"},
		}, "array",
		func(en *Env, a ...Scmer) Scmer {
			items := make([]Scmer, len(a))
			for i, v := range a {
				items[i] = v.Clone()
			}
			return NewArray(cow.From(items))
		},
	})
	Declare(&Declaration{
		"len", "counts the number of elements in the array",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"array", "array", "base array"},
		}, "int",
		func(en *Env, a ...Scmer) Scmer {
			return NewInt(int64(a[0].Array().Len()))
		},
	})
	Declare(&Declaration{
		"empty?", "checks if the array has no elements",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"array", "array", "base array"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			return NewBool(a[0].Array().IsEmpty())
		},
	})
	Declare(&Declaration{
		"get", "get the nth item of an array; returns nil when the index is out of range",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"array", "array", "base array"},
			DeclarationParameter{"index", "int", "index beginning from 0"},
		}, "any",
		func(en *Env, a ...Scmer) Scmer {
			v, ok := a[0].Array().Get(ToInt(a[1]))
			if !ok {
				return NewNil()
			}
			return v
		},
	})
	Declare(&Declaration{
		"push", "appends items to the array stored in a variable and returns the new length.\nOther variables sharing the array stay unharmed.",
		2, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
			DeclarationParameter{"item...", "any", "items to add"},
		}, "int",
		func(en *Env, a ...Scmer) Scmer {
			arr := varArray(en, a[0], "push")
			for _, v := range a[1:] {
				arr.Push(v.Clone())
			}
			return NewInt(int64(arr.Len()))
		},
	})
	Declare(&Declaration{
		"pop", "removes the last item of the array stored in a variable and returns it; returns nil when the array is empty",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
		}, "any",
		func(en *Env, a ...Scmer) Scmer {
			v, ok := varArray(en, a[0], "pop").Pop()
			if !ok {
				return NewNil()
			}
			return v
		},
	})
	Declare(&Declaration{
		"set", "replaces the nth item of the array stored in a variable; returns false when the index is out of range",
		3, 3,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
			DeclarationParameter{"index", "int", "index beginning from 0"},
			DeclarationParameter{"value", "any", "new item"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			arr := varArray(en, a[0], "set")
			v := a[2].Clone()
			if !arr.Set(ToInt(a[1]), v) {
				v.Release()
				return NewBool(false)
			}
			return NewBool(true)
		},
	})
	Declare(&Declaration{
		"extend", "appends all items of an array to the array stored in a variable and returns the new length",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
			DeclarationParameter{"items", "array", "items to add"},
		}, "int",
		func(en *Env, a ...Scmer) Scmer {
			arr := varArray(en, a[0], "extend")
			arr.Extend(clonedValues(a[1].Array()))
			return NewInt(int64(arr.Len()))
		},
	})
	Declare(&Declaration{
		"take", "returns the content of the array stored in a variable and leaves the variable with an empty array",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
		}, "array",
		func(en *Env, a ...Scmer) Scmer {
			return NewArray(cow.From(varArray(en, a[0], "take").Take()))
		},
	})
	Declare(&Declaration{
		"fill", "overwrites every item of the array stored in a variable and returns the number of items",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
			DeclarationParameter{"value", "any", "new value for all items"},
		}, "int",
		func(en *Env, a ...Scmer) Scmer {
			arr := varArray(en, a[0], "fill")
			// the value may be the array itself, so detach it before writing
			v := a[1].Clone()
			defer v.Release()
			count := 0
			for _, p := range arr.Mut() {
				*p = v.Clone()
				count++
			}
			return NewInt(int64(count))
		},
	})
	Declare(&Declaration{
		"clear", "empties the array stored in a variable",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "variable holding the array"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			varArray(en, a[0], "clear").Clear()
			return NewBool(true)
		},
	})
	Declare(&Declaration{
		"refs", "returns the number of values sharing the storage of an array",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"array", "array", "array to inspect"},
		}, "int",
		func(en *Env, a ...Scmer) Scmer {
			return NewInt(int64(a[0].Array().Refs()))
		},
	})
	Declare(&Declaration{
		"shares?", "checks if two arrays share their storage",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "array", "first array"},
			DeclarationParameter{"b", "array", "second array"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			return NewBool(a[0].Array().Shares(a[1].Array()))
		},
	})
	Declare(&Declaration{
		"equal?", "compares two values by content",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"a", "any", "first value"},
			DeclarationParameter{"b", "any", "second value"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			return NewBool(a[0].Equal(a[1]))
		},
	})
}
