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
	"fmt"
	"slices"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

// the new X1 format begins with a header. the old format has only the
// frequency before the data
const (
	x1Magic         = "TAPE"
	x1FreqOffset    = 0x1c
	x1BitsOffset    = 0x20
	x1DataOffset    = 0x28
	x1OldDataOffset = 0x04
)

var x1Frequencies = []int{8000, 11025, 16000, 22050, 32000, 44100, 48000}

type x1 struct {
	descriptor
}

// X1 is the Sharp X1 TAP format. Each bit in the data is one sample.
var X1 cassette.Format = x1{
	descriptor{
		name:        "x1",
		description: "Sharp X1 tape image",
		extensions:  []string{"tap"},
	},
}

// header returns the sample rate, the offset of the data and the number of
// bits of data. the number of bits is -1 for the old format.
func (f x1) header(img *cassette.Image) (int, int, int, error) {
	if img.Size() < x1OldDataOffset {
		return 0, 0, 0, curated.Errorf(cassette.InvalidImage, "x1: too short")
	}

	var freq, offset, bits int

	if img.HasMagic(x1Magic) {
		if img.Size() < x1DataOffset {
			return 0, 0, 0, curated.Errorf(cassette.InvalidImage, "x1: header too short")
		}
		freq = int(img.LE32(x1FreqOffset))
		bits = int(img.LE32(x1BitsOffset))
		offset = x1DataOffset
	} else {
		freq = int(img.LE32(0))
		bits = -1
		offset = x1OldDataOffset
	}

	if freq == 0 {
		return 0, 0, 0, curated.Errorf(cassette.InvalidImage, "x1: zero frequency")
	}
	if !slices.Contains(x1Frequencies, freq) {
		return 0, 0, 0, curated.Errorf(cassette.Unsupported, fmt.Sprintf("x1: frequency of %dHz", freq))
	}

	return freq, offset, bits, nil
}

func (f x1) Identify(img *cassette.Image) (cassette.Options, error) {
	freq, _, _, err := f.header(img)
	if err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(freq), nil
}

func (f x1) Load(img *cassette.Image, cas *cassette.Cassette) error {
	_, offset, bits, err := f.header(img)
	if err != nil {
		return err
	}

	data := img.Bytes()[offset:]

	if bits < 0 {
		bits = len(data) * 8
	} else if bits > len(data)*8 {
		cas.Logf("x1", "bit count of %d clamped to %d", bits, len(data)*8)
		bits = len(data) * 8
	}

	var w cassette.Wave
	for i := 0; i < bits; i++ {
		if data[i/8]&(0x80>>(i%8)) != 0 {
			w.Put(1, cassette.PeakHigh)
		} else {
			w.Put(1, cassette.PeakLow)
		}
	}

	return w.Deliver(cas)
}
