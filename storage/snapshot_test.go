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
	"os"
	"path/filepath"
	"testing"

	"github.com/launix-de/cowarray/scm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// useTempStorage points Basepath to a fresh folder for the test.
func useTempStorage(t *testing.T, compression string) {
	t.Helper()
	oldBase, oldSettings := Basepath, Settings
	Basepath = filepath.Join(t.TempDir(), "data")
	Settings.Compression = compression
	t.Cleanup(func() {
		Basepath, Settings = oldBase, oldSettings
	})
}

func sampleEnv() *scm.Env {
	en := scm.NewEnv()
	shared := scm.NewArrayOf(scm.NewInt(1), scm.NewString("two"), scm.NewArrayOf(scm.NewFloat(3.5)))
	en.Define("a", shared.Clone())
	en.Define("b", shared)
	en.Define("n", scm.NewInt(42))
	en.Define("s", scm.NewSymbol("sym"))
	en.Define("empty", scm.NewArrayOf())
	return en
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, compression := range []string{"lz4", "xz", "none"} {
		t.Run(compression, func(t *testing.T) {
			useTempStorage(t, compression)
			src := sampleEnv()

			id, err := Save(src)
			require.NoError(t, err)
			require.FileExists(t, SnapshotPath(id))

			dst := scm.NewEnv()
			dst.Define("keep", scm.NewBool(true))
			n, err := Load(dst, id)
			require.NoError(t, err)
			assert.Equal(t, 5, n)

			assert.Equal(t, []string{"a", "b", "empty", "keep", "n", "s"}, dst.Names())
			for _, b := range src.Bindings() {
				v, ok := dst.Get(b.Name)
				require.True(t, ok, b.Name)
				assert.True(t, b.Value.Equal(v), "%s: %v != %v", b.Name, b.Value, v)
			}
		})
	}
}

func TestSnapshotCompressionOnDisk(t *testing.T) {
	headers := map[string][]byte{
		"lz4":  lz4Magic,
		"xz":   xzMagic,
		"none": []byte("{"),
	}
	for compression, header := range headers {
		t.Run(compression, func(t *testing.T) {
			useTempStorage(t, compression)
			id, err := Save(sampleEnv())
			require.NoError(t, err)
			raw, err := os.ReadFile(SnapshotPath(id))
			require.NoError(t, err)
			assert.Equal(t, header, raw[:len(header)])
		})
	}
}

func TestLoadedArraysAreIndependent(t *testing.T) {
	useTempStorage(t, "lz4")
	id, err := Save(sampleEnv())
	require.NoError(t, err)

	en := scm.NewEnv()
	_, err = Load(en, id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), scm.EvalLine(en, "test", "push a 4").Int())
	assert.Equal(t, `[1, "two", [3.5]]`, scm.EvalLine(en, "test", "b").String())
}

func TestSnapshotErrors(t *testing.T) {
	useTempStorage(t, "lz4")
	en := scm.NewEnv()

	_, err := Load(en, "not-a-uuid")
	assert.ErrorContains(t, err, "invalid snapshot id")

	_, err = Load(en, "9b2c0b4e-5a43-4d36-9a7e-1f0c2d3e4f50")
	assert.ErrorIs(t, err, os.ErrNotExist)

	Settings.Compression = "zip"
	_, err = Save(en)
	assert.ErrorContains(t, err, `unknown compression "zip"`)

	Settings.Compression = "none"
	id, err := Save(en)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(SnapshotPath(id), []byte("garbage"), 0640))
	_, err = Load(en, id)
	assert.ErrorContains(t, err, "read snapshot "+id)
}

func TestListSnapshots(t *testing.T) {
	useTempStorage(t, "none")
	ids, err := ListSnapshots()
	require.NoError(t, err)
	assert.Empty(t, ids)

	en := sampleEnv()
	first, err := Save(en)
	require.NoError(t, err)
	second, err := Save(en)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(Basepath, "notes.txt"), nil, 0640))

	ids, err = ListSnapshots()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first, second}, ids)
	assert.IsIncreasing(t, ids)
}

func TestPersistenceCommands(t *testing.T) {
	useTempStorage(t, "xz")
	Init()
	en := sampleEnv()

	id := scm.EvalLine(en, "test", "save")
	require.True(t, id.IsString())
	assert.Equal(t, `["`+scm.String(id)+`"]`, scm.EvalLine(en, "test", "snapshots").String())

	restored := scm.NewEnv()
	n := scm.EvalLine(restored, "test", "load "+id.String())
	assert.Equal(t, int64(5), n.Int())
	assert.True(t, scm.EvalLine(restored, "test", "equal? a b").Bool())
}
