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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertape/test"
)

// a minimal fMSX image. the header magic followed by a file header block
func writeTape(t *testing.T, dir string) string {
	t.Helper()
	d := []byte{0x1f, 0xa6, 0xde, 0xba, 0xcc, 0x13, 0x7d, 0x74}
	d = append(d, bytes.Repeat([]byte{0xd3}, 10)...)
	fn := filepath.Join(dir, "game.cas")
	test.ExpectSuccess(t, os.WriteFile(fn, d, 0o644))
	return fn
}

func TestFormatsMode(t *testing.T) {
	var out strings.Builder
	v := launch(context.Background(), []string{"FORMATS"}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "fmsx"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "uef"))
}

func TestVersionMode(t *testing.T) {
	var out strings.Builder
	v := launch(context.Background(), []string{"VERSION"}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.HasPrefix(out.String(), "Gophertape"))
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	tape := writeTape(t, dir)
	wav := filepath.Join(dir, "out.wav")

	var out strings.Builder
	v := launch(context.Background(), []string{"CONVERT",
		"-prefs", filepath.Join(dir, "prefs"),
		"-out", wav, "-rate", "0", "-quiet", tape}, &out)
	test.ExpectEquality(t, v, exitOK)

	st, err := os.Stat(wav)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, st.Size() > 44)
}

// CONVERT is the default mode
func TestDefaultMode(t *testing.T) {
	dir := t.TempDir()
	tape := writeTape(t, dir)
	wav := filepath.Join(dir, "out.wav")

	var out strings.Builder
	v := launch(context.Background(), []string{
		"-prefs", filepath.Join(dir, "prefs"),
		"-out", wav, "-rate", "22050", "-quiet", tape}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "22050Hz"))
}

func TestInfo(t *testing.T) {
	dir := t.TempDir()
	tape := writeTape(t, dir)

	var out strings.Builder
	v := launch(context.Background(), []string{"INFO",
		"-prefs", filepath.Join(dir, "prefs"), "-quiet", tape}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "format:      fmsx"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "digest:"))
}

func TestModeErrors(t *testing.T) {
	dir := t.TempDir()
	var out strings.Builder

	// no tape
	v := launch(context.Background(), []string{"INFO", "-prefs", filepath.Join(dir, "prefs")}, &out)
	test.ExpectEquality(t, v, exitModeError)

	// unknown extension
	fn := filepath.Join(dir, "game.xyz")
	test.ExpectSuccess(t, os.WriteFile(fn, []byte{0x00}, 0o644))
	v = launch(context.Background(), []string{"INFO", "-prefs", filepath.Join(dir, "prefs"), fn}, &out)
	test.ExpectEquality(t, v, exitModeError)

	// bad output rate
	tape := writeTape(t, dir)
	v = launch(context.Background(), []string{"CONVERT", "-prefs", filepath.Join(dir, "prefs"),
		"-rate", "10", "-out", filepath.Join(dir, "out.wav"), tape}, &out)
	test.ExpectEquality(t, v, exitModeError)

	// too many arguments
	v = launch(context.Background(), []string{"FORMATS", "foo"}, &out)
	test.ExpectEquality(t, v, exitModeError)
}

func TestRegressMode(t *testing.T) {
	dir := t.TempDir()
	tape := writeTape(t, dir)
	db := filepath.Join(dir, "regressionDB")

	var out strings.Builder
	v := launch(context.Background(), []string{"REGRESS", "-db", db, "ADD", "-notes", "minimal", tape}, &out)
	test.ExpectEquality(t, v, exitOK)

	out.Reset()
	v = launch(context.Background(), []string{"REGRESS", "-db", db, "LIST"}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "[fmsx]"))

	out.Reset()
	v = launch(context.Background(), []string{"REGRESS", "-db", db}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "1 succeed, 0 fail"))

	out.Reset()
	v = launch(context.Background(), []string{"REGRESS", "-db", db, "DELETE", "-yes", "0"}, &out)
	test.ExpectEquality(t, v, exitOK)
	test.ExpectSuccess(t, strings.Contains(out.String(), "deleted test #0"))
}
