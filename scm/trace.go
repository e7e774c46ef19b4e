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
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Tracefile writes events in the chrome://tracing JSON array format.
type Tracefile struct {
	isFirst bool
	file    io.WriteCloser
	m       sync.Mutex
}

// Trace receives the command and copy events of the runtime when not nil.
var Trace *Tracefile

var traceStart time.Time = time.Now()

// OpenTrace creates a new trace file in folder.
func OpenTrace(folder string) (*Tracefile, error) {
	if err := os.MkdirAll(folder, 0750); err != nil {
		return nil, fmt.Errorf("create trace folder: %w", err)
	}
	f, err := os.Create(filepath.Join(folder, "trace_"+fmt.Sprint(time.Now().UnixNano())+".json"))
	if err != nil {
		return nil, fmt.Errorf("create trace: %w", err)
	}
	return NewTrace(f), nil
}

func NewTrace(file io.WriteCloser) *Tracefile {
	file.Write([]byte("["))
	result := new(Tracefile)
	result.file = file
	result.isFirst = true
	return result
}

func (t *Tracefile) Close() error {
	t.m.Lock()
	defer t.m.Unlock()
	t.file.Write([]byte("]"))
	return t.file.Close()
}

// Duration records f as a begin/end pair.
func (t *Tracefile) Duration(name string, cat string, f func()) {
	t.Event(name, cat, "B", nil)
	defer t.Event(name, cat, "E", nil)
	f()
}

func (t *Tracefile) Event(name string, cat string, typ string, args map[string]any) {
	t.EventFull(name, cat, typ, time.Since(traceStart).Microseconds(), 0, 0, args)
}

/*
*

	@name string function
	@cat string comma separated categories (for filtering)
	@typ B/E for begin/end, i for instant events
	@ts timestamp in microseconds
	@pid process id
	@tid thread id
	@args event details, may be nil
*/
func (t *Tracefile) EventFull(name string, cat string, typ string, ts int64, tid int, pid int, args map[string]any) {
	t.m.Lock()
	defer t.m.Unlock()
	if t.isFirst {
		t.isFirst = false
	} else {
		t.file.Write([]byte(",\n"))
	}
	t.file.Write([]byte("{\"name\": "))
	b, _ := json.Marshal(name) // name
	t.file.Write(b)
	t.file.Write([]byte(", \"cat\": "))
	b, _ = json.Marshal(cat) // cat
	t.file.Write(b)
	t.file.Write([]byte(", \"ph\": \""))
	t.file.Write([]byte(typ))
	t.file.Write([]byte("\", \"ts\": "))
	b, _ = json.Marshal(ts) // ts
	t.file.Write(b)
	t.file.Write([]byte(", \"pid\": "))
	b, _ = json.Marshal(pid) // pid
	t.file.Write(b)
	t.file.Write([]byte(", \"tid\": "))
	b, _ = json.Marshal(tid) // tid
	t.file.Write(b)
	if args != nil {
		t.file.Write([]byte(", \"args\": "))
		b, _ = json.Marshal(args)
		t.file.Write(b)
	}
	t.file.Write([]byte(", \"s\": \"g\"}"))
}
