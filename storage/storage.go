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
	"sync"

	"github.com/launix-de/cowarray/scm"
)

// Basepath is the folder snapshots are written to.
var Basepath string = "data"

var initOnce sync.Once

// Init declares the persistence commands.
func Init() {
	initOnce.Do(declare)
}

func declare() {
	scm.DeclareTitle("Persistence")

	scm.Declare(&scm.Declaration{
		Name:         "save",
		Desc:         "writes all variables into a new snapshot and returns its id",
		MinParameter: 0,
		MaxParameter: 0,
		Params:       []scm.DeclarationParameter{},
		Returns:      "string",
		Fn: func(en *scm.Env, a ...scm.Scmer) scm.Scmer {
			id, err := Save(en)
			if err != nil {
				panic(err)
			}
			fmt.Println("saved snapshot", id)
			return scm.NewString(id)
		},
	})
	scm.Declare(&scm.Declaration{
		Name:         "load",
		Desc:         "restores the variables of a snapshot and returns their count",
		MinParameter: 1,
		MaxParameter: 1,
		Params: []scm.DeclarationParameter{
			{Name: "id", Type: "string", Desc: "snapshot id as returned by save"},
		},
		Returns: "int",
		Fn: func(en *scm.Env, a ...scm.Scmer) scm.Scmer {
			n, err := Load(en, scm.String(a[0]))
			if err != nil {
				panic(err)
			}
			return scm.NewInt(int64(n))
		},
	})
	scm.Declare(&scm.Declaration{
		Name:         "snapshots",
		Desc:         "lists the ids of all snapshots",
		MinParameter: 0,
		MaxParameter: 0,
		Params:       []scm.DeclarationParameter{},
		Returns:      "array",
		Fn: func(en *scm.Env, a ...scm.Scmer) scm.Scmer {
			ids, err := ListSnapshots()
			if err != nil {
				panic(err)
			}
			items := make([]scm.Scmer, len(ids))
			for i, id := range ids {
				items[i] = scm.NewString(id)
			}
			return scm.NewArrayOf(items...)
		},
	})
	scm.Declare(&scm.Declaration{
		Name:         "settings",
		Desc:         "reads or changes settings: without parameters all settings are listed, with one parameter the setting is read, with two it is changed",
		MinParameter: 0,
		MaxParameter: 2,
		Params: []scm.DeclarationParameter{
			{Name: "key", Type: "var", Desc: "name of the setting"},
			{Name: "value", Type: "any", Desc: "new value"},
		},
		Returns: "any",
		Fn:      ChangeSettings,
	})
}
