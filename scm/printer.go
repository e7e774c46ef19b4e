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
	"strconv"
	"strings"
)

var stringEscaper = strings.NewReplacer("\\", "\\\\", "\"", "\\\"", "\r", "\\r", "\n", "\\n", "\t", "\\t")

// String renders v for output: strings come out raw, everything else in
// literal form.
func String(v Scmer) string {
	if v.tag == tagString {
		return v.text()
	}
	return v.String()
}

// String renders the literal form of s which reads back into an equal value.
func (s Scmer) String() string {
	var b bytes.Buffer
	Serialize(&b, s)
	return b.String()
}

// GoString is used for %#v. Debug and display output are the same.
func (s Scmer) GoString() string {
	return s.String()
}

func Serialize(b *bytes.Buffer, v Scmer) {
	switch v.tag {
	case tagNil:
		b.WriteString("nil")
	case tagBool:
		if v.Bool() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case tagInt:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case tagFloat:
		b.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case tagString:
		b.WriteByte('"')
		b.WriteString(stringEscaper.Replace(v.text()))
		b.WriteByte('"')
	case tagSymbol:
		b.WriteString(v.text())
	case tagArray:
		// same layout as cow.Array.String
		b.WriteByte('[')
		for i, x := range v.Array().All() {
			if i != 0 {
				b.WriteString(", ")
			}
			Serialize(b, x)
		}
		b.WriteByte(']')
	}
}
