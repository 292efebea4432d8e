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
	"crypto/sha1"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/database"
	"github.com/jetsetilly/gophertape/digest"
	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/logger"
	"github.com/jetsetilly/gophertape/preferences"
	"github.com/jetsetilly/gophertape/resampler"
	"github.com/jetsetilly/gophertape/tapeloader"
)

const digestEntryType = "digest"

// DigestMode specifies what type of digest to generate for the regression
// entry.
type DigestMode int

// Valid digest modes. Use String() and ParseDigestMode() to convert to and
// from string representations.
const (
	DigestUndefined DigestMode = iota
	DigestSamples
	DigestLog
)

func (mode DigestMode) String() string {
	switch mode {
	case DigestSamples:
		return "samples"
	case DigestLog:
		return "log"
	default:
		return "undefined"
	}
}

// ParseDigestMode converts string to DigestMode represenation.
func ParseDigestMode(mode string) (DigestMode, error) {
	switch strings.ToLower(mode) {
	case "", "samples":
		return DigestSamples, nil
	case "log":
		return DigestLog, nil
	}
	return DigestUndefined, curated.Errorf("regression: invalid digest mode (%s)", mode)
}

const (
	digestFieldFilename int = iota
	digestFieldFormat
	digestFieldRate
	digestFieldMode
	digestFieldDigest
	digestFieldNotes
	numDigestFields
)

// DigestRegression is the simplest regression type. It converts the tape
// image and compares the digest with the one recorded in the database.
type DigestRegression struct {
	Filename string

	// the format is "AUTO" until the entry has been added
	Format string

	// output rate. zero means the native rate of the format
	Rate int

	Mode   DigestMode
	Notes  string
	digest string
}

func deserialiseDigestEntry(fields database.SerialisedEntry) (database.Entry, error) {
	if len(fields) != numDigestFields {
		return nil, curated.Errorf("regression: %v", "wrong number of fields in digest entry")
	}

	reg := &DigestRegression{
		Filename: fields[digestFieldFilename],
		Format:   fields[digestFieldFormat],
		Notes:    fields[digestFieldNotes],
		digest:   fields[digestFieldDigest],
	}

	var err error

	reg.Rate, err = strconv.Atoi(fields[digestFieldRate])
	if err != nil {
		return nil, curated.Errorf("regression: invalid rate field (%s)", fields[digestFieldRate])
	}

	reg.Mode, err = ParseDigestMode(fields[digestFieldMode])
	if err != nil {
		return nil, err
	}

	return reg, nil
}

// EntryType implements the database.Entry interface.
func (reg DigestRegression) EntryType() string {
	return digestEntryType
}

// Serialise implements the database.Entry interface.
func (reg DigestRegression) Serialise() (database.SerialisedEntry, error) {
	return database.SerialisedEntry{
		reg.Filename,
		reg.Format,
		strconv.Itoa(reg.Rate),
		reg.Mode.String(),
		reg.digest,
		reg.Notes,
	}, nil
}

// CleanUp implements the database.Entry interface.
func (reg DigestRegression) CleanUp() error {
	return nil
}

func (reg DigestRegression) String() string {
	s := strings.Builder{}

	rate := "native"
	if reg.Rate != 0 {
		rate = fmt.Sprintf("%dHz", reg.Rate)
	}

	s.WriteString(fmt.Sprintf("[%s] %s [%s] %s", reg.Mode, filepath.Base(reg.Filename), reg.Format, rate))
	if reg.Notes != "" {
		s.WriteString(fmt.Sprintf(" [%s]", reg.Notes))
	}
	return s.String()
}

// the environment used for conversion. the preferences are set to their
// defaults so that a preferences file can't affect the result of the test.
// logging is only allowed for log digests
func regressionEnvironment(prefsPth string, mode DigestMode) (*environment.Environment, error) {
	prefs, err := preferences.NewPreferences(prefsPth)
	if err != nil {
		return nil, err
	}

	env, err := environment.NewEnvironment(environment.Label("regression"), prefs)
	if err != nil {
		return nil, err
	}
	env.Normalise()
	env.Prefs.Quiet.Set(mode != DigestLog)

	return env, nil
}

func (reg *DigestRegression) regress(newRegression bool, prefsPth string, output io.Writer, msg string) (bool, string, error) {
	io.WriteString(output, msg)

	env, err := regressionEnvironment(prefsPth, reg.Mode)
	if err != nil {
		return false, "", err
	}

	logger.Clear()

	ld := tapeloader.NewLoader(reg.Filename, reg.Format)
	cas, f, err := ld.Open(env)
	if err != nil {
		return false, "", err
	}

	if reg.Rate != 0 && reg.Rate != cas.Options().SampleRate {
		cas, err = resampler.Resample(cas, reg.Rate)
		if err != nil {
			return false, "", err
		}
	}

	var d string

	switch reg.Mode {
	case DigestSamples:
		d = digest.Cassette(cas)
	case DigestLog:
		h := sha1.New()
		logger.Write(h)
		d = fmt.Sprintf("%x", h.Sum(nil))
	default:
		return false, "", curated.Errorf("regression: %v", "undefined digest mode")
	}

	if newRegression {
		reg.Format = f.Name()
		reg.digest = d
		return true, "", nil
	}

	if d != reg.digest {
		return false, "digest mismatch", nil
	}

	return true, "", nil
}
