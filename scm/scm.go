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
	"fmt"
	"strings"
)

func init() {
	init_variables()
	init_arrays()
	init_output()
}

// Eval runs one command line. The head names a command; a lone literal or
// variable name evaluates to its value.
func Eval(en *Env, line []Scmer) Scmer {
	if len(line) == 0 {
		return NewNil()
	}
	head := line[0]
	if !head.IsSymbol() {
		if len(line) == 1 {
			return head
		}
		panic("expected command, got " + head.String())
	}
	name := head.Symbol()
	def := declarations[name]
	if def == nil {
		if len(line) == 1 {
			if v, ok := en.Get(name); ok {
				return v
			}
		}
		panic("unknown command: " + name)
	}

	args := make([]Scmer, len(line)-1)
	copy(args, line[1:])
	var literals []Scmer // array literals are owned by this call
	if len(args) < def.MinParameter || len(args) > def.MaxParameter {
		panic(fmt.Sprintf("%s expects %d-%d parameters, got %d", name, def.MinParameter, def.MaxParameter, len(args)))
	}
	for i, a := range args {
		p := def.param(i)
		if p.Type == "var" {
			if !a.IsSymbol() {
				panic(name + ": " + p.Name + " must be a variable name")
			}
			continue
		}
		if a.IsSymbol() {
			v, ok := en.Get(a.Symbol())
			if !ok {
				panic("undefined variable: " + a.Symbol())
			}
			args[i] = v
		} else if a.IsArray() {
			literals = append(literals, a)
		}
		if !typesMatch(args[i], p.Type) {
			panic(fmt.Sprintf("%s: %s must be %s, got %s", name, p.Name, p.Type, args[i].Kind()))
		}
	}
	var result Scmer
	if tr := Trace; tr != nil {
		tr.Duration(name, "command", func() { result = def.Fn(en, args...) })
	} else {
		result = def.Fn(en, args...)
	}
	for _, l := range literals {
		if l.ptr != result.ptr {
			l.Release()
		}
	}
	return result
}

// EvalLine reads and runs a single command line.
func EvalLine(en *Env, source, line string) Scmer {
	return Eval(en, Read(source, line))
}

// EvalAll runs a script line by line. Array literals may span lines.
func EvalAll(source, text string, en *Env) (result Scmer) {
	pending := ""
	start := 0
	for i, line := range strings.Split(text, "\n") {
		if pending == "" {
			start = i + 1
		}
		pending += line + "\n"
		code, complete := tryRead(fmt.Sprintf("%s:%d", source, start), pending)
		if !complete {
			continue
		}
		pending = ""
		if len(code) > 0 {
			result = Eval(en, code)
		}
	}
	if strings.TrimSpace(pending) != "" {
		panic(fmt.Errorf("%s:%d: %w", source, start, ErrUnbalanced))
	}
	return
}

// tryRead reports incomplete input instead of panicking on it.
func tryRead(source, s string) (code []Scmer, complete bool) {
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok && errors.Is(err, ErrUnbalanced) {
				code, complete = nil, false
				return
			}
			panic(r)
		}
	}()
	return Read(source, s), true
}
