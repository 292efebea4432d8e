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
	vg5kRate = 44100

	vg5kHeadSignature = 0xd3
	vg5kDataSignature = 0xd6
	vg5kHeadLen       = 32

	// the data block length is taken from the head block and does not
	// include the block signature and checksum
	vg5kDataExtra = 20

	vg5kHeadSilence  = vg5kRate
	vg5kHeadSynchro  = 30000
	vg5kDataSilence  = 10000
	vg5kDataSynchro  = 7200
	vg5kTrailSilence = 10000
)

type vg5k struct {
	descriptor
}

// VG5K is the Philips VG-5000 K7 format. The image is scanned for head and
// data blocks. Bytes outside of blocks are skipped.
var VG5K cassette.Format = vg5k{
	descriptor{
		name:        "vg5k",
		description: "Philips VG-5000 tape image",
		extensions:  []string{"k7"},
	},
}

func (f vg5k) Identify(img *cassette.Image) (cassette.Options, error) {
	for i, b := range img.Bytes() {
		if b == vg5kHeadSignature {
			if i+vg5kHeadLen > img.Size() {
				break
			}
			return cassette.Mono16(vg5kRate), nil
		}
	}
	return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "vg5k: no head block")
}

// bit 0 is a single cycle of 18 samples per half. bit 1 is two cycles of 9
// samples per half.
func vg5kBit(w *cassette.Wave, bit bool) {
	if bit {
		for i := 0; i < 2; i++ {
			w.Put(9, cassette.High)
			w.Put(9, cassette.Low)
		}
	} else {
		w.Put(18, cassette.High)
		w.Put(18, cassette.Low)
	}
}

// synchro is a tone of one bits exactly n samples long.
func vg5kSynchro(w *cassette.Wave, n int) {
	for i := 0; i < n; i++ {
		if (i/9)%2 == 0 {
			w.Put(1, cassette.High)
		} else {
			w.Put(1, cassette.Low)
		}
	}
}

func vg5kBytes(w *cassette.Wave, data []byte) {
	for _, b := range data {
		cassette.Framing8N2.Put(b, func(bit bool) {
			vg5kBit(w, bit)
		})
	}
}

func (f vg5k) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency:      vg5kRate,
		TrailerSamples: vg5kTrailSilence,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()

			// length of the data block following a head block. -1 if there is
			// no head block
			dataLen := -1

			for pos := 0; pos < len(data); {
				switch data[pos] {
				case vg5kHeadSignature:
					if pos+vg5kHeadLen > len(data) {
						return curated.Errorf(cassette.InvalidImage, "vg5k: head block runs past end of image")
					}
					head := data[pos : pos+vg5kHeadLen]
					dataLen = img.LE16(pos+vg5kHeadLen-4) + vg5kDataExtra
					w.Silence(vg5kHeadSilence)
					vg5kSynchro(w, vg5kHeadSynchro)
					vg5kBytes(w, head)
					pos += vg5kHeadLen

				case vg5kDataSignature:
					if dataLen < 0 {
						pos++
						continue
					}
					if pos+dataLen > len(data) {
						return curated.Errorf(cassette.InvalidImage, "vg5k: data block runs past end of image")
					}
					w.Silence(vg5kDataSilence)
					vg5kSynchro(w, vg5kDataSynchro)
					vg5kBytes(w, data[pos:pos+dataLen])
					pos += dataLen
					dataLen = -1

				default:
					pos++
				}
			}

			return nil
		},
	}

	return filler.Load(img, cas)
}
