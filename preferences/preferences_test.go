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

package preferences_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophertape/preferences"
	"github.com/jetsetilly/gophertape/prefs"
	"github.com/jetsetilly/gophertape/test"
)

func TestDefaults(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.OutputRate.Get().(int), 44100)
	test.ExpectEquality(t, p.Volume.Get().(int), 100)
	test.ExpectEquality(t, p.Quiet.Get().(bool), false)
	test.ExpectEquality(t, p.Rate(9600), 44100)

	test.ExpectSuccess(t, p.OutputRate.Set(0))
	test.ExpectEquality(t, p.Rate(9600), 9600)
}

func TestRanges(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, p.Volume.Set(101))
	test.ExpectFailure(t, p.Volume.Set(-1))
	test.ExpectSuccess(t, p.Volume.Set(0))

	test.ExpectFailure(t, p.OutputRate.Set(100))
	test.ExpectFailure(t, p.OutputRate.Set(1000000))
	test.ExpectSuccess(t, p.OutputRate.Set(22050))
}

func TestPersistence(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, p.Volume.Set(30))
	test.DemandSuccess(t, p.Save())

	p, err = preferences.NewPreferences(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Volume.Get().(int), 30)

	// command line values override the saved value
	prefs.PushCommandLineStack("log.quiet::true")
	p, err = preferences.NewPreferences(fn)
	prefs.PopCommandLineStack()
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, p.Quiet.Get().(bool), true)
}
