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
	"sync"

	"github.com/launix-de/NonLockingReadMap"
)

// Binding is a named variable. Its value owns its array handle.
type Binding struct {
	Name  string
	Value Scmer
}

func (b Binding) GetKey() string {
	return b.Name
}

func (b Binding) ComputeSize() uint {
	return 16 + uint(len(b.Name)) + b.Value.ComputeSize()
}

// Env holds the variables of a session. Reads never block. Command
// execution must hold Session, so only one goroutine writes at a time.
type Env struct {
	vars    NonLockingReadMap.NonLockingReadMap[Binding, string]
	Session sync.Mutex
}

func NewEnv() *Env {
	return &Env{vars: NonLockingReadMap.New[Binding, string]()}
}

// Lookup returns the binding of name or nil.
func (en *Env) Lookup(name string) *Binding {
	return en.vars.Get(name)
}

// Get returns the value of name. Arrays are returned without cloning; use
// Clone before storing them elsewhere.
func (en *Env) Get(name string) (Scmer, bool) {
	b := en.vars.Get(name)
	if b == nil {
		return NewNil(), false
	}
	return b.Value, true
}

// Define binds name to v. v must be owned by the caller (a fresh value or a
// Clone). The previous value is released.
func (en *Env) Define(name string, v Scmer) {
	if old := en.vars.Set(&Binding{name, v}); old != nil {
		old.Value.Release()
	}
}

// Undefine removes name and releases its value.
func (en *Env) Undefine(name string) bool {
	old := en.vars.Remove(name)
	if old == nil {
		return false
	}
	old.Value.Release()
	return true
}

// Bindings returns all bindings ordered by name.
func (en *Env) Bindings() []*Binding {
	return en.vars.GetAll()
}

func (en *Env) Names() []string {
	all := en.vars.GetAll()
	result := make([]string, len(all))
	for i, b := range all {
		result[i] = b.Name
	}
	return result
}

func (en *Env) ComputeSize() uint {
	return en.vars.ComputeSize()
}
