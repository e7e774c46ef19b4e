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
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/dc0d/onexit"
	"github.com/launix-de/cowarray/cow"
	"github.com/launix-de/cowarray/scm"
)

type SettingsT struct {
	Backtrace   bool
	Trace       bool   // trace commands and copy-on-write events
	Compression string // lz4 | xz | none
}

var Settings SettingsT = SettingsT{false, false, "lz4"}

// call this after you filled Settings
func InitSettings() {
	scm.Backtrace = Settings.Backtrace
	SetTrace(Settings.Trace)
	onexit.Register(func() {
		if Settings.Trace {
			st := cow.ReadStats()
			fmt.Println("copy-on-write:", st.Copies, "copies,", st.Elements, "elements")
		}
		SetTrace(false)
	})
}

// SetTrace switches tracing of commands and copy-on-write events. Traces
// are written to Basepath/trace.
func SetTrace(on bool) {
	cow.SetTrace(nil)
	if scm.Trace != nil {
		if err := scm.Trace.Close(); err != nil {
			fmt.Println("error closing trace:", err)
		}
		scm.Trace = nil
	}
	if !on {
		return
	}
	tr, err := scm.OpenTrace(filepath.Join(Basepath, "trace"))
	if err != nil {
		panic(err)
	}
	scm.Trace = tr
	cow.SetTrace(func(elements int) {
		fmt.Println("copy-on-write: copied", elements, "elements")
		tr.Event("copy", "cow", "i", map[string]any{"elements": elements})
	})
}

func ChangeSettings(en *scm.Env, a ...scm.Scmer) scm.Scmer {
	if len(a) == 0 {
		return scm.NewArrayOf(
			scm.NewString("Backtrace"), scm.NewBool(Settings.Backtrace),
			scm.NewString("Trace"), scm.NewBool(Settings.Trace),
			scm.NewString("Compression"), scm.NewString(Settings.Compression),
		)
	} else if len(a) == 1 {
		switch a[0].Symbol() {
		case "Backtrace":
			return scm.NewBool(Settings.Backtrace)
		case "Trace":
			return scm.NewBool(Settings.Trace)
		case "Compression":
			return scm.NewString(Settings.Compression)
		default:
			panic("unknown setting: " + a[0].Symbol())
		}
	} else {
		switch a[0].Symbol() {
		case "Backtrace":
			Settings.Backtrace = scm.ToBool(a[1])
			scm.Backtrace = Settings.Backtrace
		case "Trace":
			Settings.Trace = scm.ToBool(a[1])
			SetTrace(Settings.Trace)
		case "Compression":
			c := scm.String(a[1])
			if _, ok := compressors[c]; !ok {
				panic("unknown compression: " + c)
			}
			Settings.Compression = c
		default:
			panic("unknown setting: " + a[0].Symbol())
		}
		return scm.NewBool(true)
	}
}
