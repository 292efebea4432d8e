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
	gtpRate      = 44100
	gtpBlockHead = 5

	gtpStandard = 0x00
	gtpTurbo    = 0x01
	gtpName     = 0x10

	gtpLeaderBytes = 96
	gtpLeaderByte  = 0x00
	gtpSyncByte    = 0xa5
)

// gtpTiming is the number of samples in each part of a bit cell. a one is a
// pulse, a short silence, a pulse and a slightly longer silence. a zero is a
// pulse and a long silence.
type gtpTiming struct {
	pulseHalf  int
	oneSilence [2]int
	zero       int
}

var gtpStandardTiming = gtpTiming{
	pulseHalf:  10,
	oneSilence: [2]int{34, 35},
	zero:       89,
}

// all timings of the turbo block are halved
var gtpTurboTiming = gtpTiming{
	pulseHalf:  5,
	oneSilence: [2]int{17, 17},
	zero:       44,
}

func (t gtpTiming) pulse(w *cassette.Wave) {
	w.Put(t.pulseHalf, cassette.High)
	w.Put(t.pulseHalf, cassette.Low)
}

func (t gtpTiming) putByte(w *cassette.Wave, b byte) {
	for i := 0; i < 8; i++ {
		t.pulse(w)
		if b&(1<<i) != 0 {
			w.Silence(t.oneSilence[0])
			t.pulse(w)
			w.Silence(t.oneSilence[1])
		} else {
			w.Silence(t.zero)
		}
	}
}

type gtp struct {
	descriptor
}

// GTP is the Galaksija GTP format. The image is a series of typed blocks.
var GTP cassette.Format = gtp{
	descriptor{
		name:        "gtp",
		description: "Galaksija tape image",
		extensions:  []string{"gtp"},
	},
}

func (f gtp) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < gtpBlockHead {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "gtp: too short")
	}
	switch img.Byte(0) {
	case gtpStandard, gtpTurbo, gtpName:
	default:
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "gtp: unknown block type")
	}
	return cassette.Mono16(gtpRate), nil
}

func (f gtp) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: gtpRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()

			for pos := 0; pos+gtpBlockHead <= len(data); {
				typ := data[pos]
				size := img.LE16(pos + 1)
				pos += gtpBlockHead
				if pos+size > len(data) {
					cas.Logf("gtp", "block size of %d clamped to %d", size, len(data)-pos)
					size = len(data) - pos
				}
				block := data[pos : pos+size]
				pos += size

				var t gtpTiming
				switch typ {
				case gtpStandard:
					t = gtpStandardTiming
				case gtpTurbo:
					t = gtpTurboTiming
				case gtpName:
					cas.Logf("gtp", "name block: %q", block)
					continue
				default:
					cas.Logf("gtp", "skipping block type %#02x", typ)
					continue
				}

				w.Silence(gtpRate / 2)
				for i := 0; i < gtpLeaderBytes; i++ {
					t.putByte(w, gtpLeaderByte)
				}
				t.putByte(w, gtpSyncByte)
				for _, b := range block {
					t.putByte(w, b)
				}
			}

			return nil
		},
	}

	return filler.Load(img, cas)
}
