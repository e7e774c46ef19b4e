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
/*
	cowarray: shell for copy-on-write arrays of script values

*/
package main

import "os"
import "fmt"
import "flag"
import "time"
import "crypto/rand"
import "github.com/google/uuid"
import "github.com/dc0d/onexit"
import "github.com/fsnotify/fsnotify"
import "github.com/launix-de/cowarray/scm"
import "github.com/launix-de/cowarray/storage"

// workaround for flags package to allow multiple values
type arrayFlags []string

func (i *arrayFlags) String() string {
	return "dummy"
}

func (i *arrayFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}

// runScript executes a script file and prints errors instead of crashing
func runScript(en *scm.Env, filename string) {
	defer func() {
		if err := recover(); err != nil {
			fmt.Println(filename+":", err)
		}
	}()
	bytes, err := os.ReadFile(filename)
	if err != nil {
		panic(err)
	}
	en.Session.Lock()
	defer en.Session.Unlock()
	scm.EvalAll(filename, string(bytes), en)
}

// watchScript reruns a script whenever it changes on disk
func watchScript(en *scm.Env, filename string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		panic(err)
	}
	go func() {
		for {
			select {
			case _, ok := <-watcher.Events:
				if !ok {
					return
				}
				// flush all other events
				for {
					time.Sleep(10 * time.Millisecond) // delay a bit, so we don't read empty files
					select {
					case <-watcher.Events:
						// ignore
					default:
						goto to_reread
					}
				}
			to_reread:
				fmt.Println("Reloading " + filename + " ...")
				runScript(en, filename)
				watcher.Add(filename) // text editors rename, so we have to rewatch
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				fmt.Println("watch "+filename+":", err)
			}
		}
	}()
	if err := watcher.Add(filename); err != nil {
		panic(err)
	}
	onexit.Register(func() { watcher.Close() })
}

func main() {
	fmt.Print(`cowarray Copyright (C) 2026   Carl-Philip Hänsch
    This program comes with ABSOLUTELY NO WARRANTY;
    This is free software, and you are welcome to redistribute it
    under certain conditions;

`)

	// init random generator for UUIDs
	uuid.SetRand(rand.Reader)

	// parse command line options
	var commands arrayFlags
	flag.Var(&commands, "c", "Execute command")
	flag.StringVar(&storage.Basepath, "data", storage.Basepath, "Data folder for snapshots")
	flag.StringVar(&storage.Settings.Compression, "compression", storage.Settings.Compression, "Snapshot compression: lz4, xz or none")
	flag.BoolVar(&storage.Settings.Trace, "trace", storage.Settings.Trace, "Trace commands and copy-on-write events into <data>/trace")
	flag.BoolVar(&storage.Settings.Backtrace, "backtrace", storage.Settings.Backtrace, "Print stack traces of failed commands")
	historyFile := ".cowarray-history.tmp"
	flag.StringVar(&historyFile, "history", historyFile, "History file of the interactive shell")
	watch := flag.Bool("watch", false, "Rerun script files when they change")
	noRepl := flag.Bool("no-repl", false, "Exit after running scripts and commands")
	docs := flag.String("write-docs", "", "Write Markdown documentation of all commands into this folder and exit")
	flag.Parse()
	scripts := flag.Args()

	storage.InitSettings()
	storage.Init()
	defer onexit.ForceExit(0)

	if *docs != "" {
		if err := scm.WriteDocumentation(*docs); err != nil {
			fmt.Println(err)
			onexit.ForceExit(1)
		}
		return
	}

	en := scm.NewEnv()
	for _, script := range scripts {
		fmt.Println("Loading " + script + " ...")
		runScript(en, script)
		if *watch {
			watchScript(en, script)
		}
	}
	for _, command := range commands {
		fmt.Println("Executing " + command + " ...")
		func() {
			defer func() {
				if err := recover(); err != nil {
					fmt.Println("error:", err)
				}
			}()
			en.Session.Lock()
			defer en.Session.Unlock()
			result := scm.EvalLine(en, "command line", command)
			if !result.IsNil() {
				fmt.Println(result.String())
			}
		}()
	}
	if *noRepl {
		return
	}

	fmt.Print(`
    Type help to show help

`)
	// REPL shell
	scm.Repl(en, historyFile)
}
