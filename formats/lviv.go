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
	lvivRate         = 44100
	lvivMagic        = "LVOV/2.0/"
	lvivTypeOffset   = 9
	lvivNameOffset   = 10
	lvivNameLen      = 6
	lvivDataOffset   = 16
	lvivTypeRepeat   = 10
	lvivHeaderPilot  = 5190
	lvivBlockPilot   = 1298
	lvivBlockSilence = 69370
)

type lviv struct {
	descriptor
}

// Lviv is the PK-01 Lviv LVT format.
var Lviv cassette.Format = lviv{
	descriptor{
		name:        "lviv",
		description: "PK-01 Lviv tape image",
		extensions:  []string{"lvt"},
	},
}

func (f lviv) Identify(img *cassette.Image) (cassette.Options, error) {
	if !img.HasMagic(lvivMagic) || img.Size() < lvivDataOffset {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "lviv: no magic number")
	}
	return cassette.Mono16(lvivRate), nil
}

// bit 0 is two cycles of 15 low and 15 high samples. bit 1 is 30 low and 30
// high samples.
func lvivBit(w *cassette.Wave, bit bool) {
	if bit {
		w.Put(30, cassette.Low)
		w.Put(30, cassette.High)
	} else {
		for i := 0; i < 2; i++ {
			w.Put(15, cassette.Low)
			w.Put(15, cassette.High)
		}
	}
}

func lvivBytes(w *cassette.Wave, data []byte) {
	for _, b := range data {
		cassette.Framing8N2.Put(b, func(bit bool) {
			lvivBit(w, bit)
		})
	}
}

func lvivPilot(w *cassette.Wave, n int) {
	for i := 0; i < n; i++ {
		w.Put(3, cassette.Low)
		w.Put(3, cassette.High)
	}
}

func (f lviv) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: lvivRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()

			lvivPilot(w, lvivHeaderPilot)
			for i := 0; i < lvivTypeRepeat; i++ {
				lvivBytes(w, data[lvivTypeOffset:lvivTypeOffset+1])
			}
			lvivBytes(w, data[lvivNameOffset:lvivNameOffset+lvivNameLen])

			w.Silence(lvivBlockSilence)

			lvivPilot(w, lvivBlockPilot)
			lvivBytes(w, data[lvivDataOffset:])

			return nil
		},
	}

	return filler.Load(img, cas)
}
