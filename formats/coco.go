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
	cocoRate         = 44100
	cocoLeader       = 0x55
	cocoSync         = 0x3c
	cocoNameFile     = 0x00
	cocoLeaderBytes  = 128
	cocoBlockHeadLen = 4
)

// bits are a single cycle at 1200Hz or 2400Hz
var cocoModulation = cassette.Modulation{
	ZeroFrequency: 1200,
	OneFrequency:  2400,
	ZeroCycles:    1,
	OneCycles:     1,
}

type coco struct {
	descriptor
}

// CoCo is the Tandy Color Computer and Dragon CAS format. The image is sent as
// is, with a gap and a new leader inserted after every namefile block.
var CoCo cassette.Format = coco{
	descriptor{
		name:        "coco",
		description: "Tandy Color Computer/Dragon tape image",
		extensions:  []string{"cas"},
	},
}

func (f coco) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < 2 || img.Byte(0) != cocoLeader {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "coco: no leader")
	}
	for _, b := range img.Bytes() {
		if b == cocoSync {
			return cassette.Mono16(cocoRate), nil
		}
		if b != cocoLeader {
			break
		}
	}
	return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "coco: no sync byte")
}

func (f coco) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency:     cocoRate,
		HeaderSamples: cocoRate / 2,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()
			framing := cassette.Framing{}

			put := func(d []byte) {
				for _, b := range d {
					cocoModulation.PutByte(w, cocoRate, b, framing)
				}
			}

			var blocks int

			for pos := 0; pos < len(data); {
				if data[pos] != cocoLeader || pos+1 >= len(data) || data[pos+1] != cocoSync {
					put(data[pos : pos+1])
					pos++
					continue
				}

				// leader byte, sync byte, block type and length
				typ := img.Byte(pos + 2)
				length := int(img.Byte(pos + 3))
				end := pos + cocoBlockHeadLen + length + 1
				if end > len(data) {
					cas.Logf("coco", "block %d: length of %d clamped to end of image", blocks, length)
					end = len(data)
				} else {
					sum := typ + byte(length)
					for _, b := range data[pos+cocoBlockHeadLen : end-1] {
						sum += b
					}
					if sum != data[end-1] {
						cas.Logf("coco", "block %d: bad checksum", blocks)
					}
				}

				put(data[pos:end])
				pos = end
				blocks++

				if typ == cocoNameFile {
					w.Silence(cocoRate / 2)
					for i := 0; i < cocoLeaderBytes; i++ {
						put([]byte{cocoLeader})
					}
				}
			}

			cas.Logf("coco", "%d blocks", blocks)

			return nil
		},
	}

	return filler.Load(img, cas)
}
