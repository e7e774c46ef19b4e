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
	"io"
	"runtime/debug"

	"github.com/chzyer/readline"
)

const newprompt = "\033[32m>\033[0m "
const contprompt = "\033[32m.\033[0m "
const resultprompt = "\033[31m=\033[0m "

// Backtrace prints stack traces of failed commands in the REPL.
var Backtrace bool

var ReplInstance *readline.Instance

func Repl(en *Env, historyFile string) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            newprompt,
		HistoryFile:       historyFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		panic(err)
	}
	ReplInstance = l
	defer l.Close()
	l.CaptureExitSignal()

	oldline := ""
	for {
		line, err := l.Readline()
		line = oldline + line
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			} else {
				oldline = ""
				l.SetPrompt(newprompt)
				continue
			}
		} else if err == io.EOF {
			break
		} else if err != nil {
			panic(err)
		}
		if line == "" {
			continue
		}

		// anti-panic func
		func() {
			defer func() {
				if r := recover(); r != nil {
					if err, ok := r.(error); ok && errors.Is(err, ErrUnbalanced) {
						// keep oldline
						oldline = line + "\n"
						l.SetPrompt(contprompt)
						return
					}
					if Backtrace {
						fmt.Println("panic:", r, string(debug.Stack()))
					} else {
						fmt.Println("error:", r)
					}
					oldline = ""
					l.SetPrompt(newprompt)
				}
			}()
			en.Session.Lock()
			defer en.Session.Unlock()
			result := EvalLine(en, "user prompt", line)
			oldline = ""
			l.SetPrompt(newprompt)
			if !result.IsNil() {
				fmt.Print(resultprompt)
				fmt.Println(result.String())
			}
		}()
	}
}
