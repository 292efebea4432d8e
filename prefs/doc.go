// This file is part of Gophertape.
//
// Gophertape is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophertape is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophertape.  If not, see <https://www.gnu.org/licenses/>.

// Package prefs facilitates the storage of preferential values in the
// Gophertape system. It is intended to be used by the preferences package and
// by any other package that needs a value that the user can set and which
// should persist between invocations.
//
// Values are stored in one of the supported types: Bool, Int, Float or
// String. Each type can be given a hook function that is called when the
// value is changed.
//
// Values are attached to a Disk with the Add() function and are then saved
// to and loaded from the file named when the Disk was created. The file
// format is plain text with one "key :: value" entry per line.
//
//	var p prefs.Int
//	dsk, _ := prefs.NewDisk(fn)
//	dsk.Add("tape.outputrate", &p)
//	dsk.Load()
//
// Preference values can also be given on the command line in the form
// "key::value; key::value". The command line stack sits above the values on
// disk; a Load() will take a value from the top of the stack in preference to
// the value in the file.
package prefs
