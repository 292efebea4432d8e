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

package prefs_test

import (
	"testing"

	"github.com/jetsetilly/gophertape/prefs"
	"github.com/jetsetilly/gophertape/test"
)

func TestCommandLineStackValues(t *testing.T) {
	// empty on start
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	prefs.PushCommandLineStack("tape.volume::50")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "tape.volume::50")

	// additional spaces are trimmed
	prefs.PushCommandLineStack("   tape.volume:: 50 ")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "tape.volume::50")

	// remaining string is sorted
	prefs.PushCommandLineStack("tape.volume::50; quiet::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "quiet::true; tape.volume::50")

	// invalid prefs string
	prefs.PushCommandLineStack("tape.volume_50")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")

	// partially invalid prefs string
	prefs.PushCommandLineStack("tape.volume_50;quiet::true")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "quiet::true")

	// values are removed from the stack once they have been used
	prefs.PushCommandLineStack("tape.volume::50;quiet::true")
	ok, v := prefs.GetCommandLinePref("quiet")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "true")
	ok, _ = prefs.GetCommandLinePref("echo")
	test.ExpectFailure(t, ok)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "tape.volume::50")
}

func TestCommandLineStack(t *testing.T) {
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)

	prefs.PushCommandLineStack("tape.volume::50")
	prefs.PushCommandLineStack("quiet::true")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 2)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "quiet::true")

	// first group still exists
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "tape.volume::50")
	test.ExpectEquality(t, prefs.SizeCommandLineStack(), 0)
}
