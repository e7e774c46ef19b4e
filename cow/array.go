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

// Package cow provides Array, a reference counted dynamic array with
// whole-buffer copy-on-write.
//
// Clones of an Array are O(1) and share one buffer. Reads go straight to the
// buffer. Every write first checks whether the handle is the only one
// referencing its buffer; if not, the buffer is copied and the handle is
// rebound to the private copy before the write happens. Other handles never
// observe the change.
package cow

import (
	"iter"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"
	"unsafe"
)

// Element is what an Array needs from the values it stores.
type Element[T any] interface {
	Clone() T
	Equal(T) bool
	String() string
}

type buffer[T any] struct {
	refs  atomic.Int64
	items []T
}

func newBuffer[T any](items []T) *buffer[T] {
	b := &buffer[T]{items: items}
	b.refs.Store(1)
	return b
}

func dropRef[T any](b *buffer[T]) {
	b.refs.Add(-1)
}

// noCopy lets go vet report handles that are copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Array is a handle to a shared, reference counted buffer of elements.
// The zero value is an empty array.
//
// Handles are shared with Clone, never by copying the struct. A handle is
// single-writer: distinct handles may be used from different goroutines even
// when they share a buffer, a single handle may not.
type Array[T Element[T]] struct {
	_       noCopy
	buf     *buffer[T]
	cleanup runtime.Cleanup
}

// New returns an empty, uniquely owned array.
func New[T Element[T]]() *Array[T] {
	return new(Array[T])
}

// From builds an array that owns items. The caller must not use the slice
// afterwards.
func From[T Element[T]](items []T) *Array[T] {
	a := new(Array[T])
	a.attach(newBuffer(items))
	return a
}

// Of builds an array holding a copy of items.
func Of[T Element[T]](items ...T) *Array[T] {
	return From(slices.Clone(items))
}

// Collect builds an array from all values of seq.
func Collect[T Element[T]](seq iter.Seq[T]) *Array[T] {
	return From(slices.Collect(seq))
}

// attach binds a to b. The reference a holds on b is dropped when a becomes
// unreachable without being released.
func (a *Array[T]) attach(b *buffer[T]) {
	a.buf = b
	a.cleanup = runtime.AddCleanup(a, dropRef[T], b)
}

func (a *Array[T]) detach() {
	b := a.buf
	if b == nil {
		return
	}
	a.cleanup.Stop()
	a.cleanup = runtime.Cleanup{}
	a.buf = nil
	b.refs.Add(-1)
}

func (a *Array[T]) view() []T {
	if a == nil || a.buf == nil {
		return nil
	}
	return a.buf.items
}

// unique returns the buffer of a for writing. A buffer shared with other
// handles is copied first.
func (a *Array[T]) unique() *buffer[T] {
	b := a.buf
	if b == nil {
		b = newBuffer[T](nil)
		a.attach(b)
		return b
	}
	if b.refs.Load() == 1 {
		return b
	}
	fresh := newBuffer(cloneItems(b.items))
	a.detach()
	a.attach(fresh)
	return fresh
}

func cloneItems[T Element[T]](items []T) []T {
	result := make([]T, len(items))
	for i, v := range items {
		result[i] = v.Clone()
	}
	recordCopy(len(items))
	return result
}

// Clone returns a new handle sharing the buffer of a. No element is copied.
func (a *Array[T]) Clone() *Array[T] {
	c := new(Array[T])
	if b := a.buf; b != nil {
		b.refs.Add(1)
		c.attach(b)
	}
	return c
}

// Release drops the handle. a is empty afterwards and may be reused.
func (a *Array[T]) Release() {
	a.detach()
}

// Refs returns the number of handles sharing the buffer of a.
func (a *Array[T]) Refs() int {
	if a.buf == nil {
		return 1
	}
	return int(a.buf.refs.Load())
}

// Shares reports whether a and o reference the same buffer.
func (a *Array[T]) Shares(o *Array[T]) bool {
	return a.buf != nil && o != nil && a.buf == o.buf
}

func (a *Array[T]) Len() int {
	return len(a.view())
}

func (a *Array[T]) IsEmpty() bool {
	return a.Len() == 0
}

// Get returns the element at index i. The second result is false when i is
// out of range.
func (a *Array[T]) Get(i int) (T, bool) {
	items := a.view()
	if i < 0 || i >= len(items) {
		var zero T
		return zero, false
	}
	return items[i], true
}

// Set replaces the element at index i. It returns false and leaves the
// buffer alone when i is out of range.
func (a *Array[T]) Set(i int, v T) bool {
	if i < 0 || i >= a.Len() {
		return false
	}
	a.unique().items[i] = v
	return true
}

func (a *Array[T]) Push(v T) {
	b := a.unique()
	b.items = append(b.items, v)
}

// Pop removes and returns the last element. The second result is false when
// the array is empty.
func (a *Array[T]) Pop() (T, bool) {
	var zero T
	if a.Len() == 0 {
		return zero, false
	}
	b := a.unique()
	n := len(b.items) - 1
	v := b.items[n]
	b.items[n] = zero
	b.items = b.items[:n]
	return v, true
}

// Append pushes all vs in order.
func (a *Array[T]) Append(vs ...T) {
	b := a.unique()
	b.items = append(b.items, vs...)
}

// Extend pushes all values of seq in order.
func (a *Array[T]) Extend(seq iter.Seq[T]) {
	b := a.unique()
	for v := range seq {
		b.items = append(b.items, v)
	}
}

// Clear empties the handle. A shared buffer is left to its other holders.
func (a *Array[T]) Clear() {
	a.detach()
}

// Take returns the contents of a and leaves a empty. The slice is the
// buffer itself when a was its only holder and a copy otherwise.
func (a *Array[T]) Take() []T {
	b := a.buf
	if b == nil {
		return nil
	}
	var items []T
	if b.refs.Load() == 1 {
		items = b.items
		b.items = nil
	} else {
		items = cloneItems(b.items)
	}
	a.detach()
	return items
}

// IntoSlice consumes the handle and returns its elements. Nothing is copied
// when a was the only holder of its buffer.
func (a *Array[T]) IntoSlice() []T {
	return a.Take()
}

// Drain consumes the handle and yields its elements by value.
func (a *Array[T]) Drain() iter.Seq[T] {
	items := a.Take()
	return func(yield func(T) bool) {
		for _, v := range items {
			if !yield(v) {
				return
			}
		}
	}
}

// All yields index and element in storage order. It never copies.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range a.view() {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values yields the elements in storage order. It never copies.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range a.view() {
			if !yield(v) {
				return
			}
		}
	}
}

// Mut yields pointers to the elements for in-place modification. A shared
// buffer is copied once when the iteration starts. The pointers are valid
// until the next Clone or write on a.
func (a *Array[T]) Mut() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		if a.Len() == 0 {
			return
		}
		b := a.unique()
		for i := range b.items {
			if !yield(i, &b.items[i]) {
				return
			}
		}
	}
}

// Equal compares the contents of both arrays element by element.
func (a *Array[T]) Equal(o *Array[T]) bool {
	if a.Shares(o) {
		return true
	}
	return slices.EqualFunc(a.view(), o.view(), func(x, y T) bool {
		return x.Equal(y)
	})
}

func (a *Array[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range a.view() {
		if i != 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (a *Array[T]) GoString() string {
	return a.String()
}

type sizable interface {
	ComputeSize() uint
}

// ComputeSize approximates the memory held through a. A shared buffer is
// counted in full for every handle.
func (a *Array[T]) ComputeSize() uint {
	sz := uint(unsafe.Sizeof(a.buf) + unsafe.Sizeof(a.cleanup))
	if a.buf == nil {
		return sz
	}
	var zero T
	elem := uint(unsafe.Sizeof(zero))
	sz += 16 /* refs */ + 24 /* slice */ + elem*uint(cap(a.buf.items)-len(a.buf.items))
	for _, v := range a.buf.items {
		if s, ok := any(v).(sizable); ok {
			sz += s.ComputeSize()
		} else {
			sz += elem
		}
	}
	return sz
}
