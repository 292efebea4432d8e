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

const (
	spc1000Rate     = 9600
	spc1000CasMagic = "SPC-1000.CASfmt "

	// the number of bytes examined by Identify() for the ASCII format
	spc1000Sniff = 256
)

// bit 0 is 2 high and 2 low samples. bit 1 is 4 high and 4 low samples.
func spc1000Bit(w *cassette.Wave, bit bool) {
	n := 2
	if bit {
		n = 4
	}
	w.Put(n, cassette.High)
	w.Put(n, cassette.Low)
}

type spc1000 struct {
	descriptor
}

// SPC1000 is the Samsung SPC-1000 TAP format. Each bit of the recording is an
// ASCII '0' or '1'. Other characters are ignored.
var SPC1000 cassette.Format = spc1000{
	descriptor{
		name:        "spc1000",
		description: "Samsung SPC-1000 ASCII tape image",
		extensions:  []string{"tap"},
	},
}

func (f spc1000) Identify(img *cassette.Image) (cassette.Options, error) {
	var bits int
	for _, b := range img.Bytes()[:min(img.Size(), spc1000Sniff)] {
		switch b {
		case '0', '1':
			bits++
		case ' ', '\t', '\r', '\n':
		default:
			return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "spc1000: not an ASCII bit stream")
		}
	}
	if bits == 0 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "spc1000: no bits")
	}
	return cassette.Mono16(spc1000Rate), nil
}

func (f spc1000) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: spc1000Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for _, b := range img.Bytes() {
				switch b {
				case '0':
					spc1000Bit(w, false)
				case '1':
					spc1000Bit(w, true)
				}
			}
			return nil
		},
	}

	return filler.Load(img, cas)
}

type spc1000cas struct {
	descriptor
}

// SPC1000Cas is the Samsung SPC-1000 CAS format. The bits of the recording
// are packed into bytes, MSB first.
var SPC1000Cas cassette.Format = spc1000cas{
	descriptor{
		name:        "spc1000cas",
		description: "Samsung SPC-1000 packed tape image",
		extensions:  []string{"cas"},
	},
}

func (f spc1000cas) Identify(img *cassette.Image) (cassette.Options, error) {
	if !img.HasMagic(spc1000CasMagic) {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "spc1000cas: no magic number")
	}
	return cassette.Mono16(spc1000Rate), nil
}

func (f spc1000cas) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: spc1000Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for _, b := range img.Bytes()[len(spc1000CasMagic):] {
				cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
					spc1000Bit(w, bit)
				})
			}
			return nil
		},
	}

	return filler.Load(img, cas)
}
