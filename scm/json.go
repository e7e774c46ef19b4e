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
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/launix-de/cowarray/cow"
)

// MarshalJSON encodes ints and floats as numbers, symbols as
// {"symbol": name} and arrays as JSON arrays.
func (s Scmer) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := s.writeJSON(&b); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func (s Scmer) writeJSON(b *bytes.Buffer) error {
	switch s.tag {
	case tagNil:
		b.WriteString("null")
	case tagBool:
		b.WriteString(strconv.FormatBool(s.Bool()))
	case tagInt:
		b.WriteString(strconv.FormatInt(s.Int(), 10))
	case tagFloat:
		enc, err := json.Marshal(s.Float())
		if err != nil {
			return err
		}
		b.Write(enc)
	case tagString:
		enc, err := json.Marshal(s.text())
		if err != nil {
			return err
		}
		b.Write(enc)
	case tagSymbol:
		enc, err := json.Marshal(map[string]string{"symbol": s.text()})
		if err != nil {
			return err
		}
		b.Write(enc)
	case tagArray:
		b.WriteByte('[')
		for i, v := range s.Array().All() {
			if i != 0 {
				b.WriteByte(',')
			}
			if err := v.writeJSON(b); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		return fmt.Errorf("cannot encode %s as JSON", s.Kind())
	}
	return nil
}

func (s *Scmer) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	result, err := fromJSON(v)
	if err != nil {
		return err
	}
	*s = result
	return nil
}

func fromJSON(v any) (Scmer, error) {
	switch vv := v.(type) {
	case nil:
		return NewNil(), nil
	case bool:
		return NewBool(vv), nil
	case json.Number:
		if i, err := vv.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := vv.Float64()
		if err != nil {
			return NewNil(), err
		}
		return NewFloat(f), nil
	case string:
		return NewString(vv), nil
	case []any:
		items := make([]Scmer, len(vv))
		for i, x := range vv {
			item, err := fromJSON(x)
			if err != nil {
				return NewNil(), err
			}
			items[i] = item
		}
		return NewArray(cow.From(items)), nil
	case map[string]any:
		if sym, ok := vv["symbol"].(string); ok && len(vv) == 1 {
			return NewSymbol(sym), nil
		}
		return NewNil(), fmt.Errorf("unsupported JSON object %v", vv)
	}
	return NewNil(), fmt.Errorf("unsupported JSON value %T", v)
}
