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

// Package preferences collates the preference values used when transcoding
// and playing tapes.
package preferences

import (
	"fmt"

	"github.com/jetsetilly/gophertape/paths"
	"github.com/jetsetilly/gophertape/prefs"
)

// the range of output rates accepted by the OutputRate preference. a value of
// zero is also accepted.
const (
	MinOutputRate = 4000
	MaxOutputRate = 192000
)

// Preferences defines and collates all the preference values used by
// gophertape.
type Preferences struct {
	dsk *prefs.Disk

	// the sample rate of exported and played audio. if the value is zero
	// then the native rate of the tape format is used
	OutputRate prefs.Int

	// playback volume as a percentage
	Volume prefs.Int

	// suppress logging
	Quiet prefs.Bool

	// echo log entries to stderr as they are made
	Echo prefs.Bool
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. If pth is empty the preferences file is located with
// paths.ResourcePath().
func NewPreferences(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	p.OutputRate.SetHookPre(func(v prefs.Value) error {
		r := v.(int)
		if r != 0 && (r < MinOutputRate || r > MaxOutputRate) {
			return fmt.Errorf("preferences: output rate must be zero or between %d and %d", MinOutputRate, MaxOutputRate)
		}
		return nil
	})

	p.Volume.SetHookPre(func(v prefs.Value) error {
		if v.(int) < 0 || v.(int) > 100 {
			return fmt.Errorf("preferences: volume must be between 0 and 100")
		}
		return nil
	})

	var err error

	if pth == "" {
		pth, err = paths.ResourcePath("", prefs.DefaultPrefsFile)
		if err != nil {
			return nil, fmt.Errorf("preferences: %w", err)
		}
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	if err := p.dsk.Add("tape.outputrate", &p.OutputRate); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	if err := p.dsk.Add("tape.volume", &p.Volume); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	if err := p.dsk.Add("log.quiet", &p.Quiet); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	if err := p.dsk.Add("log.echo", &p.Echo); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	if err := p.dsk.Load(); err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

// SetDefaults reverts all preferences to their default values.
func (p *Preferences) SetDefaults() {
	p.OutputRate.Set(44100)
	p.Volume.Set(100)
	p.Quiet.Set(false)
	p.Echo.Set(false)
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load()
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}

// Rate returns the output rate to use for a tape with the native rate given.
func (p *Preferences) Rate(native int) int {
	if r := p.OutputRate.Get().(int); r != 0 {
		return r
	}
	return native
}
