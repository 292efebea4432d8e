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

const (
	h8Rate         = 9600
	h8LeaderBits   = 2000
	h8RecordHeader = 7
	h8CRCLen       = 2
)

var h8Sync = []byte{0x16, 0x16, 0x02}

// Kansas City standard at 300 baud
var h8Modulation = cassette.Modulation{
	ZeroFrequency: 1200,
	OneFrequency:  2400,
	ZeroCycles:    4,
	OneCycles:     8,
}

type h8 struct {
	descriptor
}

// H8 is the Heathkit H8 H8T format. The image is a series of records, each
// beginning with a sync sequence.
var H8 cassette.Format = h8{
	descriptor{
		name:        "h8",
		description: "Heathkit H8 tape image",
		extensions:  []string{"h8t"},
	},
}

func (f h8) Identify(img *cassette.Image) (cassette.Options, error) {
	if bytes.Index(img.Bytes(), h8Sync) < 0 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "h8: no records")
	}
	return cassette.Mono16(h8Rate), nil
}

func (f h8) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: h8Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()

			putBytes := func(d []byte) {
				for _, b := range d {
					h8Modulation.PutByte(w, h8Rate, b, cassette.Framing8N2)
				}
			}

			var records int

			for pos := 0; pos < len(data); {
				n := bytes.Index(data[pos:], h8Sync)
				if n < 0 {
					break
				}
				pos += n

				for i := 0; i < h8LeaderBits; i++ {
					h8Modulation.PutBit(w, h8Rate, true)
				}

				// record header follows the sync. the length of the record
				// is big-endian
				hdr := pos + len(h8Sync)
				length := int(img.Byte(hdr+3))<<8 | int(img.Byte(hdr+4))
				end := hdr + h8RecordHeader + length + h8CRCLen
				if end > len(data) {
					cas.Logf("h8", "record %d: length of %d clamped to end of image", records, length)
					end = len(data)
				}

				putBytes(data[pos:end])
				pos = end
				records++
			}

			cas.Logf("h8", "%d records", records)

			return nil
		},
	}

	return filler.Load(img, cas)
}
