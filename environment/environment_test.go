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

package environment_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/logger"
	"github.com/jetsetilly/gophertape/preferences"
	"github.com/jetsetilly/gophertape/test"
)

func TestPermission(t *testing.T) {
	p, err := preferences.NewPreferences(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)

	env, err := environment.NewEnvironment("test", p)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, env.IsMainEnvironment())

	perm := test.DemandImplements[logger.Permission](t, env)
	test.ExpectSuccess(t, perm.AllowLogging())

	test.ExpectSuccess(t, p.Quiet.Set(true))
	test.ExpectFailure(t, perm.AllowLogging())

	env.Normalise()
	test.ExpectSuccess(t, perm.AllowLogging())

	var w test.CompareWriter
	log := logger.NewLogger(10)
	log.Log(env, "test", "hello")
	p.Quiet.Set(true)
	log.Log(env, "test", "world")
	log.Write(&w)
	test.ExpectSuccess(t, w.Compare("test: hello\n"))
}
