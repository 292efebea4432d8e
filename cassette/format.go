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

package cassette

import (
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/logger"
)

// Format is implemented by every tape image format.
type Format interface {
	// short name of the format. used to select the format on the command
	// line
	Name() string

	// one line description of the format
	Description() string

	// file extensions associated with the format. in lower case and without
	// the leading period
	Extensions() []string

	// Identify sniffs the image and returns the options of the waveform that
	// Load() will produce
	Identify(img *Image) (Options, error)

	// Load transcodes the image and delivers the waveform to the cassette
	Load(img *Image, cas *Cassette) error
}

// Open identifies the image with the format, creates a cassette with the
// identified options and loads the image into it.
func Open(env *environment.Environment, img *Image, format Format) (*Cassette, error) {
	opts, err := format.Identify(img)
	if err != nil {
		return nil, err
	}

	cas, err := NewCassette(env, opts)
	if err != nil {
		return nil, curated.Errorf(Unsupported, err)
	}

	err = format.Load(img, cas)
	if err != nil {
		return nil, err
	}

	logger.Logf(env, "cassette", "%s loaded as %s (%s)", img, format.Name(), cas)

	return cas, nil
}
