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
package cow

import "sync/atomic"

// Stats counts the buffer copies done by writes on shared arrays.
type Stats struct {
	Copies   uint64 // number of buffers copied
	Elements uint64 // number of elements cloned by those copies
}

var (
	copies         atomic.Uint64
	copiedElements atomic.Uint64
	traceFn        atomic.Pointer[func(elements int)]
)

func recordCopy(n int) {
	copies.Add(1)
	copiedElements.Add(uint64(n))
	if fn := traceFn.Load(); fn != nil {
		(*fn)(n)
	}
}

// ReadStats returns the process wide copy counters.
func ReadStats() Stats {
	return Stats{copies.Load(), copiedElements.Load()}
}

// SetTrace installs fn to be called on every buffer copy with the number of
// copied elements. nil switches tracing off.
func SetTrace(fn func(elements int)) {
	if fn == nil {
		traceFn.Store(nil)
		return
	}
	traceFn.Store(&fn)
}
