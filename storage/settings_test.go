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
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/launix-de/cowarray/cow"
	"github.com/launix-de/cowarray/scm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeSettings(t *testing.T) {
	old := Settings
	t.Cleanup(func() {
		Settings = old
		SetTrace(false)
		scm.Backtrace = false
	})
	Init()
	en := scm.NewEnv()

	all := scm.EvalLine(en, "test", "settings")
	assert.Equal(t, `["Backtrace", false, "Trace", false, "Compression", "lz4"]`, all.String())

	assert.True(t, scm.EvalLine(en, "test", `settings Compression "xz"`).Bool())
	assert.Equal(t, "xz", Settings.Compression)
	assert.Equal(t, `"xz"`, scm.EvalLine(en, "test", "settings Compression").String())

	assert.True(t, scm.EvalLine(en, "test", "settings Backtrace true").Bool())
	assert.True(t, scm.Backtrace)

	assert.PanicsWithValue(t, "unknown compression: zip", func() {
		scm.EvalLine(en, "test", `settings Compression "zip"`)
	})
	assert.PanicsWithValue(t, "unknown setting: Color", func() {
		scm.EvalLine(en, "test", "settings Color")
	})
}

func TestTraceSetting(t *testing.T) {
	useTempStorage(t, "lz4")
	t.Cleanup(func() {
		Settings.Trace = false
		SetTrace(false)
	})
	en := scm.NewEnv()
	ChangeSettings(en, scm.NewSymbol("Trace"), scm.NewBool(true))
	assert.True(t, Settings.Trace)
	require.NotNil(t, scm.Trace)

	scm.EvalLine(en, "test", "let a [1]")
	scm.EvalLine(en, "test", "let b a")
	before := cow.ReadStats()
	scm.EvalLine(en, "test", "push b 2")
	assert.Equal(t, before.Copies+1, cow.ReadStats().Copies)

	ChangeSettings(en, scm.NewSymbol("Trace"), scm.NewBool(false))
	assert.Nil(t, scm.Trace)

	files, err := filepath.Glob(filepath.Join(Basepath, "trace", "trace_*.json"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	raw, err := os.ReadFile(files[0])
	require.NoError(t, err)
	var events []map[string]any
	require.NoError(t, json.Unmarshal(raw, &events))

	var names []string
	for _, e := range events {
		names = append(names, e["name"].(string)+"/"+e["ph"].(string))
	}
	assert.Equal(t, []string{"let/B", "let/E", "let/B", "let/E", "push/B", "copy/i", "push/E"}, names)
	assert.Equal(t, 1.0, events[5]["args"].(map[string]any)["elements"])
}
