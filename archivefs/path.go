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

package archivefs

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Entry is a single child of a Path location.
type Entry struct {
	Name  string
	IsDir bool

	// an archive is also a directory
	IsArchive bool
}

func (e Entry) String() string {
	return e.Name
}

// Path is a location in the file system. The location can be inside a zip
// archive, in which case the archive stays open until Close() is called.
type Path struct {
	current string
	isDir   bool

	archive *zip.ReadCloser

	// slash separated location inside the archive
	inArchive string
}

// String returns the current path.
func (afs Path) String() string {
	return afs.current
}

// IsDir returns true if the path is a directory. The root of an archive is a
// directory.
func (afs Path) IsDir() bool {
	return afs.isDir
}

// Close any open archive and reset the path.
func (afs *Path) Close() {
	afs.current = ""
	afs.isDir = false
	afs.inArchive = ""
	if afs.archive != nil {
		afs.archive.Close()
		afs.archive = nil
	}
}

// Set the path. A path can pass through a single archive file, in which case
// the remainder of the path is a location inside the archive.
func (afs *Path) Set(pth string) error {
	afs.Close()

	pth = filepath.Clean(pth)
	lst := strings.Split(pth, string(filepath.Separator))

	// strings.Split() removes a leading separator
	if lst[0] == "" {
		lst[0] = string(filepath.Separator)
	}

	var walked string
	for _, l := range lst {
		walked = filepath.Join(walked, l)

		var err error
		if afs.archive != nil {
			err = afs.stepArchive(l)
		} else {
			err = afs.stepFile(walked)
		}
		if err != nil {
			afs.Close()
			return fmt.Errorf("archivefs: set: %w", err)
		}
	}

	afs.current = walked

	return nil
}

func (afs *Path) stepFile(pth string) error {
	fi, err := os.Stat(pth)
	if err != nil {
		return err
	}

	afs.isDir = fi.IsDir()
	if afs.isDir {
		return nil
	}

	afs.archive, err = zip.OpenReader(pth)
	if err == nil {
		afs.isDir = true
		return nil
	}
	afs.archive = nil

	if errors.Is(err, zip.ErrFormat) {
		return nil
	}
	return err
}

func (afs *Path) stepArchive(name string) error {
	p := path.Join(afs.inArchive, name)

	f, err := afs.archive.Open(p)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}

	afs.isDir = fi.IsDir()
	afs.inArchive = p

	return nil
}

// the directory inside the archive that contains the current location
func (afs Path) archiveDir() string {
	if afs.isDir {
		return afs.inArchive
	}
	if d := path.Dir(afs.inArchive); d != "." {
		return d
	}
	return ""
}

// Open the file at the current location. Returns the io.ReadSeeker and the
// size of the data behind it.
func (afs Path) Open() (io.ReadSeeker, int, error) {
	if afs.isDir {
		return nil, 0, fmt.Errorf("archivefs: open: %s is a directory", afs.current)
	}

	if afs.archive != nil {
		f, err := afs.archive.Open(afs.inArchive)
		if err != nil {
			return nil, 0, err
		}
		defer f.Close()

		b, err := io.ReadAll(f)
		if err != nil {
			return nil, 0, err
		}

		return bytes.NewReader(b), len(b), nil
	}

	f, err := os.Open(afs.current)
	if err != nil {
		return nil, 0, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, err
	}

	return f, int(info.Size()), nil
}

// List returns the entries of the current location, sorted by Sort(). If the
// location is a file then the entries of the containing directory are
// returned.
func (afs *Path) List() ([]Entry, error) {
	var ent []Entry
	var err error

	if afs.archive != nil {
		ent = afs.listArchive()
	} else {
		ent, err = afs.listDir()
		if err != nil {
			return nil, fmt.Errorf("archivefs: list: %w", err)
		}
	}

	Sort(ent)

	return ent, nil
}

func (afs *Path) listArchive() []Entry {
	var ent []Entry

	dir := afs.archiveDir()
	for _, f := range afs.archive.File {
		name := strings.TrimSuffix(f.Name, "/")
		d := path.Dir(name)
		if d == "." {
			d = ""
		}
		if d != dir {
			continue
		}
		ent = append(ent, Entry{
			Name:  path.Base(name),
			IsDir: f.FileInfo().IsDir(),
		})
	}

	return ent
}

func (afs *Path) listDir() ([]Entry, error) {
	dir := afs.current
	if !afs.isDir {
		dir = filepath.Dir(dir)
	}

	lst, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var ent []Entry
	for _, d := range lst {
		p := filepath.Join(dir, d.Name())

		// os.Stat() follows links to directories
		fi, err := os.Stat(p)
		if err != nil {
			continue
		}

		e := Entry{Name: d.Name(), IsDir: fi.IsDir()}
		if !e.IsDir {
			if zf, err := zip.OpenReader(p); err == nil {
				zf.Close()
				e.IsDir = true
				e.IsArchive = true
			}
		}
		ent = append(ent, e)
	}

	return ent, nil
}

// Join returns the path of an entry returned by List().
func (afs Path) Join(name string) string {
	if afs.isDir {
		return filepath.Join(afs.current, name)
	}
	return filepath.Join(filepath.Dir(afs.current), name)
}
