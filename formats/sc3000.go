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

package formats

import (
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

const sc3000Rate = 44100

type sc3000 struct {
	descriptor
}

// SC3000 is the Sega SC-3000 BIT format. Each bit of the recording is an
// ASCII '0' or '1' and a space is a short period of silence. Other characters
// are ignored.
var SC3000 cassette.Format = sc3000{
	descriptor{
		name:        "sc3000",
		description: "Sega SC-3000 ASCII tape image",
		extensions:  []string{"bit"},
	},
}

func (f sc3000) Identify(img *cassette.Image) (cassette.Options, error) {
	for _, b := range img.Bytes() {
		if b == '0' || b == '1' {
			return cassette.Mono16(sc3000Rate), nil
		}
	}
	return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "sc3000: no bits")
}

func (f sc3000) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: sc3000Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for _, b := range img.Bytes() {
				switch b {
				case '0':
					w.PutCycles(1200, 1, sc3000Rate)
				case '1':
					w.PutCycles(2400, 2, sc3000Rate)
				case ' ':
					w.PutDuration(1.0/1200, cassette.Silence, sc3000Rate)
				}
			}
			return nil
		},
	}

	return filler.Load(img, cas)
}
