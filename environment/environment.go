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

// Package environment provides the context in which a tape is transcoded. It
// carries the preferences and decides whether log entries are permitted.
package environment

import (
	"github.com/jetsetilly/gophertape/preferences"
)

// Label is used to name the environment.
type Label string

// MainEnvironment is the label of the environment used by the main program.
const MainEnvironment = Label("")

// Environment is used to provide context for transcoding. It implements the
// logger.Permission interface.
type Environment struct {
	Label Label

	// the preferences for the environment
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment
// type.
//
// The prefs argument can be nil, in which case a new Preferences instance is
// created from the default preferences file.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	var err error

	if prefs == nil {
		prefs, err = preferences.NewPreferences("")
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// Normalise ensures the environment is in a known default state. Useful for
// testing where the output of every run must be the same.
func (env *Environment) Normalise() {
	env.Prefs.SetDefaults()
}

// IsMainEnvironment returns true if the environment is intended for the main
// program.
func (env *Environment) IsMainEnvironment() bool {
	return env.Label == MainEnvironment
}

// AllowLogging implements the logger.Permission interface.
func (env *Environment) AllowLogging() bool {
	if env == nil || env.Prefs == nil {
		return true
	}
	return !env.Prefs.Quiet.Get().(bool)
}
