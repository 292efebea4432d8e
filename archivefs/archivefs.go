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

// Package archivefs presents the contents of zip archives as though they were
// directories in the normal file system. A tape image inside an archive can
// be opened with a path such as "tapes/collection.zip/games/tape.tzx".
package archivefs

import (
	"fmt"
	"io"
)

// Open and return an io.ReadSeeker for the specified filename. Filename can be
// inside an archive supported by archivefs
//
// Returns the io.ReadSeeker, the size of the data behind the ReadSeeker and any
// errors.
func Open(filename string) (io.ReadSeeker, int, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return nil, 0, err
	}
	defer afs.Close()
	return afs.Open()
}

// Find returns the path of the first file accepted by the recognise function.
// If the filename is a file then the filename is returned unchanged. If it is
// a directory or an archive then the entries in the directory are searched in
// the order given by Sort(). Subdirectories are not searched.
func Find(filename string, recognise func(name string) bool) (string, error) {
	var afs Path
	err := afs.Set(filename)
	if err != nil {
		return "", err
	}
	defer afs.Close()

	if !afs.IsDir() {
		return afs.String(), nil
	}

	entries, err := afs.List()
	if err != nil {
		return "", err
	}

	for _, e := range entries {
		if !e.IsDir && recognise(e.Name) {
			return afs.Join(e.Name), nil
		}
	}

	return "", fmt.Errorf("archivefs: find: no recognised file in %s", afs.String())
}
