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

const fm7Magic = "XM7 TAPE IMAGE 0"

const fm7Rate = 110250

type fm7 struct {
	descriptor
}

// FM7 is the Fujitsu FM-7 T77 format. The image is a list of big-endian 16bit
// words. Bit 15 of each word is the level and bits 0 to 14 is the number of
// samples at that level.
var FM7 cassette.Format = fm7{
	descriptor{
		name:        "fm7",
		description: "Fujitsu FM-7 T77 tape image",
		extensions:  []string{"t77"},
	},
}

func (f fm7) Identify(img *cassette.Image) (cassette.Options, error) {
	if !img.HasMagic(fm7Magic) {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "fm7: no magic number")
	}
	return cassette.Mono16(fm7Rate), nil
}

func (f fm7) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	var w cassette.Wave

	data := img.Bytes()[len(fm7Magic):]

	// a trailing odd byte is ignored
	for i := 0; i+1 < len(data); i += 2 {
		n := int(data[i]&0x7f)<<8 | int(data[i+1])
		if data[i]&0x80 == 0x80 {
			w.Put(n, cassette.PeakHigh)
		} else {
			w.Put(n, cassette.PeakLow)
		}
	}

	return w.Deliver(cas)
}
