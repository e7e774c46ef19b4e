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
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/launix-de/cowarray/cow"
)

// ErrUnbalanced is raised by Read when an array literal is not closed.
// Interactive readers use it to ask for a continuation line.
var ErrUnbalanced = errors.New("expecting matching ]")

var (
	openBracket  = NewSymbol("[")
	closeBracket = NewSymbol("]")
)

// Read parses all values of s. Symbols stay symbols; true, false and nil
// become their values; [a, b] becomes an array.
func Read(source, s string) []Scmer {
	tokens := tokenize(s)
	result := make([]Scmer, 0, len(tokens))
	for len(tokens) > 0 {
		result = append(result, readFrom(source, &tokens))
	}
	return result
}

// Syntactic Analysis
func readFrom(source string, tokens *[]Scmer) Scmer {
	// pop first element from tokens
	token := (*tokens)[0]
	*tokens = (*tokens)[1:]
	if token.tag != tagSymbol {
		return token
	}
	switch token.text() {
	case "[":
		items := make([]Scmer, 0)
		for {
			if len(*tokens) == 0 {
				panic(fmt.Errorf("%s: %w", source, ErrUnbalanced))
			}
			if (*tokens)[0].Equal(closeBracket) {
				*tokens = (*tokens)[1:]
				return NewArray(cow.From(items))
			}
			items = append(items, readFrom(source, tokens))
		}
	case "]":
		panic(source + ": unexpected ]")
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "nil":
		return NewNil()
	}
	return token
}

// Lexical Analysis
func tokenize(s string) []Scmer {
	/* tokenizer state machine:
	0 = expecting next item
	1 = inside Number
	2 = inside Symbol
	3 = inside string
	4 = inside escaping sequence of string
	5 = inside comment
	6 = comment ending * from * /

	tokens are Number, string, Symbol, Symbol('[') or Symbol(']')
	*/
	stringreplacer := strings.NewReplacer("\\\"", "\"", "\\\\", "\\", "\\n", "\n", "\\r", "\r", "\\t", "\t")
	state := 0
	startToken := 0
	result := make([]Scmer, 0)
	for i, ch := range s {
		if (state == 1 || state == 2) && ch == '*' && s[startToken:i] == "/" {
			// begin of comment
			state = 5
		} else if (state == 1 || state == 2) && !isDelimiter(ch) {
			// another character added to Number or Symbol
		} else if state == 5 && ch == '*' {
			// comment seems to end
			state = 6
		} else if state == 5 {
			// consume another character in comment
		} else if state == 6 && ch == '/' {
			// end comment
			state = 0
		} else if state == 6 {
			// continue comment
			state = 5
		} else if state == 3 && ch != '"' && ch != '\\' {
			// another character added to string
		} else if state == 3 && ch == '\\' {
			// escape sequence
			state = 4
		} else if state == 4 {
			state = 3 // continue with string
		} else if state == 3 && ch == '"' {
			// finish string
			result = append(result, NewString(stringreplacer.Replace(s[startToken+1:i])))
			state = 0
		} else {
			// otherwise: state change!
			if state == 1 {
				result = append(result, readNumber(s[startToken:i]))
			}
			if state == 2 {
				result = append(result, NewSymbol(s[startToken:i]))
			}
			// now detect what to parse next
			startToken = i
			switch {
			case ch == '[':
				result = append(result, openBracket)
				state = 0
			case ch == ']':
				result = append(result, closeBracket)
				state = 0
			case ch == '"':
				// start string
				state = 3
			case ch >= '0' && ch <= '9' || ch == '-' || ch == '+':
				// start Number
				state = 1
			case isDelimiter(ch):
				// white space
				state = 0
			default:
				// everything else is a Symbol
				state = 2
			}
		}
	}
	// in the end: finish unfinished Symbols and Numbers
	if state == 1 {
		result = append(result, readNumber(s[startToken:]))
	}
	if state == 2 {
		result = append(result, NewSymbol(s[startToken:]))
	}
	if state == 3 || state == 4 {
		panic("unterminated string")
	}
	return result
}

func isDelimiter(ch rune) bool {
	switch ch {
	case ' ', '\t', '\r', '\n', ',', '[', ']', '"':
		return true
	}
	return false
}

func readNumber(s string) Scmer {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NewInt(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return NewFloat(f)
	}
	// "-" and friends
	return NewSymbol(s)
}
