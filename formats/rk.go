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
	rkRate        = 44100
	rkSync        = 0xe6
	rkPaddingLen  = 256
	rkPaddingByte = 0x00
)

// rk is shared by the formats of the Radio-86RK family of computers. The
// formats differ only in the length of a bit.
type rk struct {
	descriptor

	// samples in each half of a bit
	half int
}

// RK20 is the format for the Radio-86RK and compatible computers.
var RK20 cassette.Format = rk{
	descriptor: descriptor{
		name:        "rk20",
		description: "Radio-86RK tape image",
		extensions:  []string{"rk", "rkr", "gam", "g16", "pki", "rka", "rkm", "rkp"},
	},
	half: 20,
}

// RK22 is the format for the UT-88.
var RK22 cassette.Format = rk{
	descriptor: descriptor{
		name:        "rk22",
		description: "UT-88 tape image",
		extensions:  []string{"rku"},
	},
	half: 22,
}

// RK60 is the format for the Mikro-80 and the Specialist.
var RK60 cassette.Format = rk{
	descriptor: descriptor{
		name:        "rk60",
		description: "Mikro-80/Specialist tape image",
		extensions:  []string{"rk8", "rks"},
	},
	half: 60,
}

// bits are Manchester encoded. one is low then high and zero is high then
// low.
func (f rk) putByte(w *cassette.Wave, b byte) {
	cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
		if bit {
			w.Put(f.half, cassette.Low)
			w.Put(f.half, cassette.High)
		} else {
			w.Put(f.half, cassette.High)
			w.Put(f.half, cassette.Low)
		}
	})
}

func (f rk) filler() cassette.Filler {
	return cassette.Filler{
		Frequency: rkRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for i := 0; i < rkPaddingLen; i++ {
				f.putByte(w, rkPaddingByte)
			}
			f.putByte(w, rkSync)
			for _, b := range img.Bytes() {
				f.putByte(w, b)
			}
			for i := 0; i < rkPaddingLen; i++ {
				f.putByte(w, rkPaddingByte)
			}
			return nil
		},
	}
}

func (f rk) Identify(img *cassette.Image) (cassette.Options, error) {
	return f.filler().Identify(img)
}

func (f rk) Load(img *cassette.Image, cas *cassette.Cassette) error {
	return f.filler().Load(img, cas)
}
