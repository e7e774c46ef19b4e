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
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/launix-de/cowarray/scm"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// snapshot is the file format of a saved environment.
type snapshot struct {
	ID      string               `json:"id"`
	Created time.Time            `json:"created"`
	Vars    map[string]scm.Scmer `json:"vars"`
}

const snapshotExt = ".snap"

var (
	lz4Magic = []byte{0x04, 0x22, 0x4d, 0x18}
	xzMagic  = []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}
)

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

var compressors = map[string]func(io.Writer) (io.WriteCloser, error){
	"lz4": func(w io.Writer) (io.WriteCloser, error) {
		return lz4.NewWriter(w), nil
	},
	"xz": func(w io.Writer) (io.WriteCloser, error) {
		return xz.NewWriter(w)
	},
	"none": func(w io.Writer) (io.WriteCloser, error) {
		return nopWriteCloser{w}, nil
	},
}

func SnapshotPath(id string) string {
	return filepath.Join(Basepath, id+snapshotExt)
}

// Save writes all variables of en into a new snapshot and returns its id.
func Save(en *scm.Env) (string, error) {
	compress, ok := compressors[Settings.Compression]
	if !ok {
		return "", fmt.Errorf("unknown compression %q", Settings.Compression)
	}
	if err := os.MkdirAll(Basepath, 0750); err != nil {
		return "", fmt.Errorf("create data folder: %w", err)
	}
	snap := snapshot{
		ID:      uuid.New().String(),
		Created: time.Now().UTC(),
		Vars:    make(map[string]scm.Scmer),
	}
	for _, b := range en.Bindings() {
		snap.Vars[b.Name] = b.Value
	}

	path := SnapshotPath(snap.ID)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0640)
	if err != nil {
		return "", fmt.Errorf("create snapshot: %w", err)
	}
	w, err := compress(f)
	if err != nil {
		f.Close()
		return "", fmt.Errorf("compress snapshot: %w", err)
	}
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		f.Close()
		return "", fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return "", fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("write snapshot %s: %w", snap.ID, err)
	}
	return snap.ID, nil
}

// Load defines all variables of snapshot id in en and returns their count.
// Variables not in the snapshot are kept.
func Load(en *scm.Env, id string) (int, error) {
	if _, err := uuid.Parse(id); err != nil {
		return 0, fmt.Errorf("invalid snapshot id %q: %w", id, err)
	}
	f, err := os.Open(SnapshotPath(id))
	if err != nil {
		return 0, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	head, _ := br.Peek(len(xzMagic))
	var r io.Reader = br
	switch {
	case bytes.HasPrefix(head, lz4Magic):
		r = lz4.NewReader(br)
	case bytes.HasPrefix(head, xzMagic):
		xr, err := xz.NewReader(br)
		if err != nil {
			return 0, fmt.Errorf("read snapshot %s: %w", id, err)
		}
		r = xr
	}

	var snap snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return 0, fmt.Errorf("read snapshot %s: %w", id, err)
	}
	for name, v := range snap.Vars {
		en.Define(name, v)
	}
	return len(snap.Vars), nil
}

// ListSnapshots returns the ids of all snapshots in Basepath, sorted.
func ListSnapshots() ([]string, error) {
	entries, err := os.ReadDir(Basepath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var result []string
	for _, e := range entries {
		if id, ok := strings.CutSuffix(e.Name(), snapshotExt); ok && !e.IsDir() {
			result = append(result, id)
		}
	}
	sort.Strings(result)
	return result, nil
}
