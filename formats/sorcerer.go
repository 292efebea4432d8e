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
)

const (
	sorcererRate    = 4788
	sorcererOneBits = 100
)

type sorcerer struct {
	descriptor
}

// Sorcerer is the Exidy Sorcerer TAPE format. The level toggles with every
// half of a bit cell.
var Sorcerer cassette.Format = sorcerer{
	descriptor{
		name:        "sorcerer",
		description: "Exidy Sorcerer tape image",
		extensions:  []string{"tape"},
	},
}

func (f sorcerer) filler() cassette.Filler {
	return cassette.Filler{
		Frequency: sorcererRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			level := cassette.High
			put := func(n int) {
				w.Put(n, level)
				if level == cassette.High {
					level = cassette.Low
				} else {
					level = cassette.High
				}
			}

			bit := func(b bool) {
				if b {
					put(2)
					put(2)
				} else {
					put(4)
				}
			}

			for i := 0; i < sorcererOneBits; i++ {
				bit(true)
			}
			for _, b := range img.Bytes() {
				cassette.Framing8N2.Put(b, bit)
			}
			for i := 0; i < sorcererOneBits; i++ {
				bit(true)
			}

			return nil
		},
	}
}

func (f sorcerer) Identify(img *cassette.Image) (cassette.Options, error) {
	return f.filler().Identify(img)
}

func (f sorcerer) Load(img *cassette.Image, cas *cassette.Cassette) error {
	return f.filler().Load(img, cas)
}
