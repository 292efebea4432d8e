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

package archivefs_test

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertape/archivefs"
	"github.com/jetsetilly/gophertape/test"
)

// create the test directory:
//
//	testdir/testfile
//	testdir/testarchive.zip
//		archivefile1
//		archivefile2
//		archivedir/
//		archivedir/archivefile3
//		archivedir/archivedir2/
func createTestDir(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "testdir")
	test.DemandSuccess(t, os.Mkdir(dir, 0o755))

	err := os.WriteFile(filepath.Join(dir, "testfile"), []byte("testfile contents\n"), 0o644)
	test.DemandSuccess(t, err)

	f, err := os.Create(filepath.Join(dir, "testarchive.zip"))
	test.DemandSuccess(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, n := range []string{"archivefile1", "archivefile2", "archivedir/", "archivedir/archivefile3", "archivedir/archivedir2/"} {
		w, err := zw.Create(n)
		test.DemandSuccess(t, err)
		if !strings.HasSuffix(n, "/") {
			_, err = fmt.Fprintf(w, "%s contents\n", filepath.Base(n))
			test.DemandSuccess(t, err)
		}
	}
	test.DemandSuccess(t, zw.Close())

	return dir
}

func TestArchivefsPath(t *testing.T) {
	testdir := createTestDir(t)

	var afs archivefs.Path
	var path string
	var entries []archivefs.Entry
	var err error

	// non-existant file
	path = filepath.Join(testdir, "..", "foo")
	err = afs.Set(path)
	test.ExpectFailure(t, err)
	test.ExpectEquality(t, afs.String(), "")

	// a real directory
	path = testdir
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, afs.IsDir())

	// entries in a directory. the archive is considered to be a directory
	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(entries), 2)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[testarchive.zip testfile]")
	test.ExpectSuccess(t, entries[0].IsArchive)

	// a real file in directory
	path = filepath.Join(testdir, "testfile")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())

	// calling List() when path is set to a file type (ie not a direcotry) the
	// list returned should be of the containing directory
	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(entries), 2)

	// a real archive
	path = filepath.Join(testdir, "testarchive.zip")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, afs.IsDir())

	// entries in an archive. directories are listed first
	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, len(entries), 3)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[archivedir archivefile1 archivefile2]")

	// directory in a real archive
	path = filepath.Join(testdir, "testarchive.zip", "archivedir")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, afs.IsDir())

	entries, err = afs.List()
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fmt.Sprintf("%s", entries), "[archivedir2 archivefile3]")

	// file in a real archive
	path = filepath.Join(testdir, "testarchive.zip", "archivedir", "archivefile3")
	err = afs.Set(path)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, afs.String(), path)
	test.ExpectSuccess(t, !afs.IsDir())

	afs.Close()
	test.ExpectEquality(t, afs.String(), "")
}

func TestArchivefsOpen(t *testing.T) {
	testdir := createTestDir(t)

	r, sz, err := archivefs.Open(filepath.Join(testdir, "testarchive.zip", "archivefile1"))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, sz, 22)
	d, err := io.ReadAll(r)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, string(d), "archivefile1 contents\n")

	// directories can't be opened, whether or not they are in an archive
	_, _, err = archivefs.Open(filepath.Join(testdir, "testarchive.zip", "archivedir"))
	test.ExpectFailure(t, err)
	_, _, err = archivefs.Open(testdir)
	test.ExpectFailure(t, err)

	_, _, err = archivefs.Open(filepath.Join(testdir, "testarchive.zip", "missing"))
	test.ExpectFailure(t, err)
}

func TestArchivefsFind(t *testing.T) {
	testdir := createTestDir(t)

	is := func(name string) func(string) bool {
		return func(n string) bool {
			return n == name
		}
	}

	fn, err := archivefs.Find(filepath.Join(testdir, "testarchive.zip"), is("archivefile2"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, filepath.Join(testdir, "testarchive.zip", "archivefile2"))

	// a file is returned unchanged
	fn, err = archivefs.Find(filepath.Join(testdir, "testfile"), is("foo"))
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, filepath.Join(testdir, "testfile"))

	// directories are not candidates
	_, err = archivefs.Find(filepath.Join(testdir, "testarchive.zip"), is("archivedir"))
	test.ExpectFailure(t, err)
}

func TestExtensions(t *testing.T) {
	test.ExpectSuccess(t, archivefs.IsArchive("foo.ZIP"))
	test.ExpectSuccess(t, !archivefs.IsArchive("foo.tzx"))
	test.ExpectSuccess(t, !archivefs.IsArchive("zip"))
}
