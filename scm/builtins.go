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

	"github.com/docker/go-units"
	"github.com/launix-de/cowarray/cow"
)

func init_variables() {
	DeclareTitle("Variables")

	Declare(&Declaration{
		"let", "binds a value to a variable. Arrays are shared with the source until one side is changed.",
		2, 2,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "name of the variable"},
			DeclarationParameter{"value", "any", "value to bind"},
		}, "any",
		func(en *Env, a ...Scmer) Scmer {
			en.Define(a[0].Symbol(), a[1].Clone())
			v, _ := en.Get(a[0].Symbol())
			return v
		},
	})
	Declare(&Declaration{
		"unset", "removes a variable",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"variable", "var", "name of the variable"},
		}, "bool",
		func(en *Env, a ...Scmer) Scmer {
			return NewBool(en.Undefine(a[0].Symbol()))
		},
	})
	Declare(&Declaration{
		"vars", "lists all variable names",
		0, 0,
		[]DeclarationParameter{}, "array",
		func(en *Env, a ...Scmer) Scmer {
			names := en.Names()
			items := make([]Scmer, len(names))
			for i, name := range names {
				items[i] = NewString(name)
			}
			return NewArray(cow.From(items))
		},
	})
}

func init_output() {
	DeclareTitle("Output")

	Declare(&Declaration{
		"print", "prints values to stdout; strings are printed without quotes",
		1, 1000,
		[]DeclarationParameter{
			DeclarationParameter{"value...", "any", "values to print"},
		}, "nil",
		func(en *Env, a ...Scmer) Scmer {
			for _, s := range a {
				fmt.Print(String(s))
			}
			fmt.Println()
			return NewNil()
		},
	})
	Declare(&Declaration{
		"show", "prints the debug representation of a value",
		1, 1,
		[]DeclarationParameter{
			DeclarationParameter{"value", "any", "value to show"},
		}, "nil",
		func(en *Env, a ...Scmer) Scmer {
			fmt.Printf("%#v\n", a[0])
			return NewNil()
		},
	})
	Declare(&Declaration{
		"stats", "returns copy-on-write counters and the memory held by all variables",
		0, 0,
		[]DeclarationParameter{}, "array",
		func(en *Env, a ...Scmer) Scmer {
			st := cow.ReadStats()
			return NewArrayOf(
				NewString("copies"), NewInt(int64(st.Copies)),
				NewString("copiedElements"), NewInt(int64(st.Elements)),
				NewString("variables"), NewInt(int64(len(en.Names()))),
				NewString("memory"), NewString(units.HumanSize(float64(en.ComputeSize()))),
			)
		},
	})
	Declare(&Declaration{
		"help", "prints help on all commands or a single command",
		0, 1,
		[]DeclarationParameter{
			DeclarationParameter{"command", "var", "command to explain"},
		}, "nil",
		func(en *Env, a ...Scmer) Scmer {
			if len(a) == 0 {
				Help("")
			} else {
				Help(a[0].Symbol())
			}
			return NewNil()
		},
	})
}
