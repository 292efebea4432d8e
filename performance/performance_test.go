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

package performance_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertape/performance"
	"github.com/jetsetilly/gophertape/tapeloader"
	"github.com/jetsetilly/gophertape/test"
)

func TestParseProfile(t *testing.T) {
	p, err := performance.ParseProfile("cpu,mem")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileCPU|performance.ProfileMem)
	test.ExpectEquality(t, p.String(), "CPU,MEM")

	p, err = performance.ParseProfile("")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p, performance.ProfileNone)
	test.ExpectEquality(t, p.String(), "NONE")

	p, err = performance.ParseProfile("ALL")
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, p.String(), "CPU,MEM,TRACE")

	_, err = performance.ParseProfile("cpu,foo")
	test.ExpectFailure(t, err)
}

func TestCalcRealtime(t *testing.T) {
	test.ExpectEquality(t, performance.CalcRealtime(10, 2), 5.0)
	test.ExpectEquality(t, performance.CalcRealtime(10, 0), 0.0)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	d := []byte{0x1f, 0xa6, 0xde, 0xba, 0xcc, 0x13, 0x7d, 0x74}
	d = append(d, bytes.Repeat([]byte{0xd3}, 10)...)
	fn := filepath.Join(dir, "game.cas")
	test.DemandSuccess(t, os.WriteFile(fn, d, 0o644))

	var out strings.Builder
	err := performance.Check(&out, performance.ProfileNone, tapeloader.NewLoader(fn, "AUTO"), nil, "50ms")
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out.String(), "realtime"))

	err = performance.Check(&out, performance.ProfileNone, tapeloader.NewLoader(fn, "AUTO"), nil, "foo")
	test.ExpectFailure(t, err)

	err = performance.Check(&out, performance.ProfileNone, tapeloader.NewLoader(filepath.Join(dir, "missing.cas"), "AUTO"), nil, "50ms")
	test.ExpectFailure(t, err)
}

func TestRunProfiler(t *testing.T) {
	wd, err := os.Getwd()
	test.DemandSuccess(t, err)
	dir := t.TempDir()
	test.DemandSuccess(t, os.Chdir(dir))
	defer os.Chdir(wd)

	var ran bool
	err = performance.RunProfiler(performance.ProfileCPU|performance.ProfileMem, "test", func() error {
		ran = true
		return nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, ran)

	_, err = os.Stat(filepath.Join(dir, "test_cpu.profile"))
	test.ExpectSuccess(t, err)
	_, err = os.Stat(filepath.Join(dir, "test_mem.profile"))
	test.ExpectSuccess(t, err)
	_, err = os.Stat(filepath.Join(dir, "test_trace.profile"))
	test.ExpectFailure(t, err)
}
