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

const trs80Rate = 44100

// leader and sync bytes for the two speeds
const (
	trs80LowLeader  = 0x00
	trs80LowSync    = 0xa5
	trs80HighLeader = 0x55
	trs80HighSync   = 0x7f
)

type trs80 struct {
	descriptor
}

// TRS80 is the Tandy TRS-80 CAS format. The speed of the recording is
// determined by the leader at the start of the image.
var TRS80 cassette.Format = trs80{
	descriptor{
		name:        "trs80",
		description: "Tandy TRS-80 tape image",
		extensions:  []string{"cas"},
	},
}

// highSpeed returns true if the image is a 1500 baud recording.
func (f trs80) highSpeed(img *cassette.Image) (bool, error) {
	if img.Size() < 2 {
		return false, curated.Errorf(cassette.InvalidImage, "trs80: too short")
	}

	leader := img.Byte(0)
	var sync byte
	switch leader {
	case trs80LowLeader:
		sync = trs80LowSync
	case trs80HighLeader:
		sync = trs80HighSync
	default:
		return false, curated.Errorf(cassette.InvalidImage, "trs80: no leader")
	}

	for _, b := range img.Bytes() {
		if b == sync {
			return leader == trs80HighLeader, nil
		}
		if b != leader {
			break
		}
	}

	return false, curated.Errorf(cassette.InvalidImage, "trs80: no sync byte")
}

func (f trs80) Identify(img *cassette.Image) (cassette.Options, error) {
	if _, err := f.highSpeed(img); err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(trs80Rate), nil
}

// 500 baud bits are a clock pulse followed by a data pulse if the bit is
// one. a pulse is 6 high and 6 low samples followed by 32 samples of silence.
func trs80LowBit(w *cassette.Wave, bit bool) {
	pulse := func() {
		w.Put(6, cassette.High)
		w.Put(6, cassette.Low)
		w.Silence(32)
	}
	pulse()
	if bit {
		pulse()
	} else {
		w.Silence(44)
	}
}

// 1500 baud bits are a single cycle. the cycle for a zero bit is twice as long
// as the cycle for a one bit.
func trs80HighBit(w *cassette.Wave, bit bool) {
	n := 22
	if bit {
		n = 11
	}
	w.Put(n, cassette.High)
	w.Put(n, cassette.Low)
}

func (f trs80) Load(img *cassette.Image, cas *cassette.Cassette) error {
	high, err := f.highSpeed(img)
	if err != nil {
		return err
	}

	bit := trs80LowBit
	if high {
		bit = trs80HighBit
		cas.Log("trs80", "1500 baud")
	} else {
		cas.Log("trs80", "500 baud")
	}

	filler := cassette.Filler{
		Frequency:      trs80Rate,
		HeaderSamples:  trs80Rate / 2,
		TrailerSamples: trs80Rate / 2,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for _, b := range img.Bytes() {
				cassette.Framing{MSBFirst: true}.Put(b, func(v bool) {
					bit(w, v)
				})
			}
			return nil
		},
	}

	return filler.Load(img, cas)
}
