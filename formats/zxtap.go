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

const zxRate = 44100

// ZX Spectrum timings are in T-states of the 3.5MHz clock
const (
	zxClock        = 3500000
	zxPilot        = 2168
	zxHeaderPilots = 8063
	zxDataPilots   = 3223
	zxSync1        = 667
	zxSync2        = 735
	zxZero         = 855
	zxOne          = 1710
	zxPause        = zxClock
)

type zxtap struct {
	descriptor
}

// ZXTap is the Sinclair ZX Spectrum TAP format. The image is a series of
// blocks, each preceded by a 16bit length. The last byte of each block is the
// XOR of the other bytes.
var ZXTap cassette.Format = zxtap{
	descriptor{
		name:        "zxtap",
		description: "Sinclair ZX Spectrum tape image",
		extensions:  []string{"tap"},
	},
}

func (f zxtap) Identify(img *cassette.Image) (cassette.Options, error) {
	l := img.LE16(0)
	if img.Size() < 4 || l < 2 || l > img.Size()-2 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "zxtap: bad block length")
	}

	var x byte
	for _, b := range img.Bytes()[2 : 2+l] {
		x ^= b
	}
	if x != 0 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "zxtap: bad checksum in first block")
	}

	return cassette.Mono16(zxRate), nil
}

func (f zxtap) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	pw := cassette.NewPulseWriter(zxClock, zxRate)
	data := img.Bytes()

	var blocks int

	for pos := 0; pos+2 <= len(data); {
		l := img.LE16(pos)
		pos += 2
		if pos+l > len(data) {
			cas.Logf("zxtap", "block %d: length of %d clamped to %d", blocks, l, len(data)-pos)
			l = len(data) - pos
		}
		block := data[pos : pos+l]
		pos += l

		if len(block) == 0 {
			continue
		}

		if block[0] < 0x80 {
			pw.Pulses(zxPilot, zxHeaderPilots)
		} else {
			pw.Pulses(zxPilot, zxDataPilots)
		}
		pw.Pulse(zxSync1)
		pw.Pulse(zxSync2)

		for _, b := range block {
			cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
				if bit {
					pw.Pulses(zxOne, 2)
				} else {
					pw.Pulses(zxZero, 2)
				}
			})
		}

		pw.Pause(zxPause)
		blocks++
	}

	cas.Logf("zxtap", "%d blocks", blocks)

	return pw.Wave().Deliver(cas)
}
