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
	"bytes"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

const pmd85Rate = 7200

// pilot lengths in bits. each bit is six samples
const (
	pmd85HeaderPilot = pmd85Rate * 3 / 6
	pmd85BlockPilot  = pmd85Rate / 2 / 6
)

// signature at the start of a header block
var pmd85HeaderSignature = bytes.Join([][]byte{
	bytes.Repeat([]byte{0xff}, 16),
	bytes.Repeat([]byte{0x00}, 16),
	bytes.Repeat([]byte{0x55}, 16),
}, nil)

type pmd85 struct {
	descriptor
}

// PMD85 is the Tesla PMD-85 tape format. A .pmd image is a single block. A
// .ptp image is a container of blocks, each preceded by a 16bit length.
var PMD85 cassette.Format = pmd85{
	descriptor{
		name:        "pmd85",
		description: "Tesla PMD-85 tape image",
		extensions:  []string{"pmd", "ptp"},
	},
}

// returns true if the image is a single block rather than a container.
func (f pmd85) single(img *cassette.Image) bool {
	return bytes.HasPrefix(img.Bytes(), pmd85HeaderSignature[:16])
}

func (f pmd85) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < 3 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "pmd85: too short")
	}
	if !f.single(img) {
		// a length past the end of the image is clamped by Load
		if img.LE16(0) == 0 {
			return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "pmd85: bad block length")
		}
	}
	return cassette.Mono16(pmd85Rate), nil
}

// bit 1 is three low and three high samples. bit 0 is three high and three
// low samples.
func pmd85Bit(w *cassette.Wave, bit bool) {
	if bit {
		w.Put(3, cassette.Low)
		w.Put(3, cassette.High)
	} else {
		w.Put(3, cassette.High)
		w.Put(3, cassette.Low)
	}
}

func pmd85Block(w *cassette.Wave, block []byte) {
	pilot := pmd85BlockPilot
	if bytes.HasPrefix(block, pmd85HeaderSignature) {
		pilot = pmd85HeaderPilot
	}
	for i := 0; i < pilot; i++ {
		pmd85Bit(w, true)
	}
	for _, b := range block {
		cassette.Framing8N2.Put(b, func(bit bool) {
			pmd85Bit(w, bit)
		})
	}
}

func (f pmd85) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: pmd85Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			if f.single(img) {
				pmd85Block(w, img.Bytes())
				return nil
			}

			data := img.Bytes()
			for pos := 0; pos+2 <= len(data); {
				l := img.LE16(pos)
				pos += 2
				if pos+l > len(data) {
					cas.Logf("pmd85", "block length of %d clamped to %d", l, len(data)-pos)
					l = len(data) - pos
				}
				pmd85Block(w, data[pos:pos+l])
				pos += l
			}

			return nil
		},
	}

	return filler.Load(img, cas)
}
