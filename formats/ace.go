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

const aceRate = 44100

// Jupiter Ace timings are in cycles of the 3.25MHz clock
const (
	aceClock        = 3250000
	acePilot        = 2011
	aceHeaderPilots = 8192
	aceDataPilots   = 1024
	aceSync1        = 601
	aceSync2        = 791
	aceZero1        = 801
	aceZero2        = 887
	aceOne1         = 1607
	aceOne2         = 1637
	aceEnd          = 903
	acePause        = aceClock

	// the length of the header block, including the checksum
	aceHeaderLen = 26
)

type ace struct {
	descriptor
}

// Ace is the Jupiter Ace TAP format. The image is a series of header and data
// block pairs, each preceded by a 16bit length.
var Ace cassette.Format = ace{
	descriptor{
		name:        "ace",
		description: "Jupiter Cantab Jupiter Ace tape image",
		extensions:  []string{"tap"},
	},
}

func (f ace) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < aceHeaderLen+2 || img.LE16(0) != aceHeaderLen {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "ace: no header block")
	}
	return cassette.Mono16(aceRate), nil
}

func (f ace) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	pw := cassette.NewPulseWriter(aceClock, aceRate)
	data := img.Bytes()

	var blocks int

	for pos := 0; pos+2 <= len(data); {
		l := img.LE16(pos)
		pos += 2
		if pos+l > len(data) {
			cas.Logf("ace", "block %d: length of %d clamped to %d", blocks, l, len(data)-pos)
			l = len(data) - pos
		}
		block := data[pos : pos+l]
		pos += l

		// blocks alternate between header and data
		if blocks%2 == 0 {
			pw.Pulses(acePilot, aceHeaderPilots)
		} else {
			pw.Pulses(acePilot, aceDataPilots)
		}
		pw.Pulse(aceSync1)
		pw.Pulse(aceSync2)

		for _, b := range block {
			cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
				if bit {
					pw.Pulse(aceOne1)
					pw.Pulse(aceOne2)
				} else {
					pw.Pulse(aceZero1)
					pw.Pulse(aceZero2)
				}
			})
		}

		pw.Pulse(aceEnd)
		pw.Pause(acePause)
		blocks++
	}

	cas.Logf("ace", "%d blocks", blocks)

	return pw.Wave().Deliver(cas)
}
