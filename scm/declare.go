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
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Declaration struct {
	Name         string
	Desc         string
	MinParameter int
	MaxParameter int
	Params       []DeclarationParameter
	Returns      string // any | string | number | int | bool | array | nil
	Fn           func(en *Env, a ...Scmer) Scmer
}

type DeclarationParameter struct {
	Name string
	Type string // var | any | string | number | int | bool | array; var is passed as the unevaluated symbol
	Desc string
}

var declaration_titles []string
var declarations map[string]*Declaration = make(map[string]*Declaration)

func DeclareTitle(title string) {
	declaration_titles = append(declaration_titles, "#"+title)
}

func Declare(def *Declaration) {
	if _, ok := declarations[def.Name]; !ok {
		declaration_titles = append(declaration_titles, def.Name)
	}
	declarations[def.Name] = def
}

// LookupDeclaration returns the declaration of a command or nil.
func LookupDeclaration(name string) *Declaration {
	return declarations[name]
}

func (def *Declaration) param(i int) DeclarationParameter {
	if len(def.Params) == 0 {
		return DeclarationParameter{"", "any", ""}
	}
	if i >= len(def.Params) {
		return def.Params[len(def.Params)-1]
	}
	return def.Params[i]
}

func (def *Declaration) Usage() string {
	var b strings.Builder
	b.WriteString(def.Name)
	for _, p := range def.Params {
		b.WriteString(" ")
		b.WriteString(p.Name)
	}
	return b.String()
}

// Help writes the help text of one command or of all commands to stdout.
func Help(name string) {
	if name != "" {
		def, ok := declarations[name]
		if !ok {
			panic("function not found: " + name)
		}
		fmt.Println("Help for:", def.Usage())
		fmt.Println("===")
		fmt.Println("")
		fmt.Println(def.Desc)
		fmt.Println("")
		fmt.Println("Allowed number of parameters:", def.MinParameter, "-", def.MaxParameter)
		fmt.Println("")
		for _, p := range def.Params {
			fmt.Println(" - " + p.Name + " (" + p.Type + "): " + p.Desc)
		}
		fmt.Println("")
		fmt.Println("Returns:", def.Returns)
		fmt.Println("")
		return
	}
	fmt.Println("Available commands:")
	fmt.Println("")
	for _, t := range declaration_titles {
		if t[0] == '#' {
			fmt.Println("")
			fmt.Println("-- " + t[1:] + " --")
		} else {
			fmt.Println("  " + declarations[t].Usage() + ": " + strings.Split(declarations[t].Desc, "\n")[0])
		}
	}
	fmt.Println("")
	fmt.Println("get further information by typing help command")
}

// slugify makes a filesystem-safe, lowercase slug from a chapter title.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "-")
	var b strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		out = "chapter"
	}
	return out
}

// WriteDocumentation generates Markdown docs:
// - index.md with links to chapters
// - one <chapter>.md file per chapter, containing all commands of that chapter
func WriteDocumentation(folder string) error {
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", folder, err)
	}

	type Chapter struct {
		Title string
		Slug  string
		Fns   []*Declaration
	}

	var chapters []*Chapter
	var current *Chapter
	for _, t := range declaration_titles {
		if t[0] == '#' {
			current = &Chapter{Title: t[1:], Slug: slugify(t[1:])}
			chapters = append(chapters, current)
			continue
		}
		if current == nil {
			current = &Chapter{Title: "General", Slug: "general"}
			chapters = append(chapters, current)
		}
		current.Fns = append(current.Fns, declarations[t])
	}

	indexPath := filepath.Join(folder, "index.md")
	indexFile, err := os.Create(indexPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", indexPath, err)
	}
	defer indexFile.Close()

	fmt.Fprint(indexFile, "# Documentation\n\n")
	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fmt.Fprintf(indexFile, "- [%s](%s.md)\n", ch.Title, ch.Slug)
	}

	for _, ch := range chapters {
		if len(ch.Fns) == 0 {
			continue
		}
		fp := filepath.Join(folder, ch.Slug+".md")
		f, err := os.Create(fp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", fp, err)
		}

		fmt.Fprintf(f, "# %s\n\n", ch.Title)
		for _, def := range ch.Fns {
			fmt.Fprintf(f, "## %s\n\n", def.Name)
			if def.Desc != "" {
				fmt.Fprintf(f, "%s\n\n", def.Desc)
			}
			fmt.Fprintf(f, "**Allowed number of parameters:** %d–%d\n\n", def.MinParameter, def.MaxParameter)

			fmt.Fprint(f, "### Parameters\n\n")
			if len(def.Params) == 0 {
				fmt.Fprint(f, "_This command has no parameters._\n\n")
			} else {
				for _, p := range def.Params {
					fmt.Fprintf(f, "- **%s** (`%s`): %s\n", p.Name, p.Type, p.Desc)
				}
				fmt.Fprintln(f)
			}

			fmt.Fprintf(f, "### Returns\n\n`%s`\n\n", def.Returns)
		}

		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", fp, err)
		}
	}

	return nil
}

// typesMatch reports whether the value v fits the declared parameter type.
func typesMatch(v Scmer, required string) bool {
	for _, r := range strings.Split(required, "|") {
		switch r {
		case "any", "var":
			return true
		case "number":
			if v.IsInt() || v.IsFloat() {
				return true
			}
		default:
			if v.Kind() == r {
				return true
			}
		}
	}
	return false
}
