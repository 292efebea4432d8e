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

package regression

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/database"
)

// ansi code to clear the current line of a terminal
const clearLine = "\033[2K"

// Regressor is the generic entry in the regression database.
type Regressor interface {
	database.Entry

	// perform the regression test for the regression type. the newRegression
	// flag is for convenience really (or "logical binding", as the structured
	// programmers would have it)
	//
	// message is the string that is to be printed during the regression.
	// the returned string explains why the test failed
	regress(newRegression bool, prefsPth string, output io.Writer, message string) (bool, string, error)
}

// when starting a database session we need to register what entries we will
// find in the database.
func initDBSession(db *database.Session) error {
	return db.RegisterEntryType(digestEntryType, deserialiseDigestEntry)
}

// the preferences file used by regression tests lives alongside the
// database. it is never saved
func prefsPath(dbPth string) string {
	return fmt.Sprintf("%s_prefs", dbPth)
}

// RegressList displays all entries in the database.
func RegressList(output io.Writer, dbPth string) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil")
	}

	db, err := database.StartSession(dbPth, database.ActivityReading, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	return db.List(output)
}

// RegressDelete removes an entry from the regression db. The confirmation
// reader is used to confirm the deletion.
func RegressDelete(output io.Writer, confirmation io.Reader, dbPth string, key string) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil")
	}

	v, err := strconv.Atoi(key)
	if err != nil {
		return curated.Errorf("regression: invalid key (%s)", key)
	}

	db, err := database.StartSession(dbPth, database.ActivityModifying, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(true)

	ent, err := db.Get(v)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "%s\ndelete? (y/n): ", ent)

	confirm := make([]byte, 32)
	n, err := confirmation.Read(confirm)
	if err != nil && n == 0 {
		return curated.Errorf("regression: %v", err)
	}

	if confirm[0] == 'y' || confirm[0] == 'Y' {
		err = db.Delete(v)
		if err != nil {
			return curated.Errorf("regression: %v", err)
		}
		fmt.Fprintf(output, "deleted test #%s from regression database\n", key)
	}

	return nil
}

// RegressAdd adds a new regression handler to the database.
func RegressAdd(output io.Writer, dbPth string, reg Regressor) error {
	if output == nil {
		return curated.Errorf("regression: %v", "io.Writer should not be nil")
	}

	// filenames are stored as absolute paths so that the tests can be run
	// from any directory
	if d, ok := reg.(*DigestRegression); ok {
		if !strings.HasPrefix(d.Filename, "http://") && !strings.HasPrefix(d.Filename, "https://") {
			abs, err := filepath.Abs(d.Filename)
			if err != nil {
				return curated.Errorf("regression: %v", err)
			}
			d.Filename = abs
		}
	}

	db, err := database.StartSession(dbPth, database.ActivityCreating, initDBSession)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(true)

	msg := fmt.Sprintf("adding: %s", reg)
	_, _, err = reg.regress(true, prefsPath(dbPth), output, msg)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	_, err = db.Add(reg)
	if err != nil {
		return curated.Errorf("regression: %v", err)
	}

	io.WriteString(output, clearLine)
	fmt.Fprintf(output, "\radded: %s\n", reg)

	return nil
}

// RegressRun runs all the tests in the regression database. filterKeys
// specifies which entries to test. an empty keys list means that every entry
// should be tested.
//
// Returns true if every selected test succeeded.
func RegressRun(output io.Writer, dbPth string, verbose bool, filterKeys []string) (bool, error) {
	if output == nil {
		return false, curated.Errorf("regression: %v", "io.Writer should not be nil")
	}

	db, err := database.StartSession(dbPth, database.ActivityReading, initDBSession)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}
	defer db.EndSession(false)

	if db.NumEntries() == 0 {
		io.WriteString(output, "regression database is empty\n")
		return true, nil
	}

	keysV := make([]int, 0, len(filterKeys))
	for _, k := range filterKeys {
		v, err := strconv.Atoi(k)
		if err != nil {
			return false, curated.Errorf("regression: invalid key (%s)", k)
		}
		keysV = append(keysV, v)
	}

	var numSucceed, numFail, numError int

	onSelect := func(key int, ent database.Entry) error {
		// datbase entry should also satisfy Regressor interface
		reg, ok := ent.(Regressor)
		if !ok {
			return curated.Errorf("regression: %v", "database entry does not satisfy Regressor interface")
		}

		// run regress() function with message. message does not have a
		// trailing newline
		msg := fmt.Sprintf("running: %s", reg)
		ok, fail, err := reg.regress(false, prefsPath(dbPth), output, msg)

		// once regress() has completed we clear the line ready for the
		// completion message
		io.WriteString(output, clearLine)

		if err != nil {
			numError++
			fmt.Fprintf(output, "\r ERROR: %03d %s\n", key, reg)
			if verbose {
				fmt.Fprintf(output, "  ^^ %s\n", err)
			}
		} else if !ok {
			numFail++
			fmt.Fprintf(output, "\rfailure: %03d %s\n", key, reg)
			if verbose && fail != "" {
				fmt.Fprintf(output, "  ^^ %s\n", fail)
			}
		} else {
			numSucceed++
			fmt.Fprintf(output, "\rsucceed: %03d %s\n", key, reg)
		}

		return nil
	}

	_, err = db.SelectKeys(onSelect, keysV...)
	if err != nil {
		return false, curated.Errorf("regression: %v", err)
	}

	fmt.Fprintf(output, "regression tests: %d succeed, %d fail", numSucceed, numFail)
	if numError > 0 {
		fmt.Fprintf(output, ", %d errors", numError)
	}
	io.WriteString(output, "\n")

	return numFail == 0 && numError == 0, nil
}
