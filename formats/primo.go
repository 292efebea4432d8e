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
	primoRate = 22050

	primoFileStart  = 0xff
	primoBlock      = 0x55
	primoLastBlock  = 0xaa
	primoPilotByte  = 0xaa
	primoSyncByte   = 0xd3
	primoFileHeader = 3
	primoBlockHead  = 3

	primoNamePilot = 384
	primoNameSync  = 3
	primoDataPilot = 96
	primoDataSync  = 1
)

type primo struct {
	descriptor
}

// Primo is the Microkey Primo PTP format. The image is a series of files,
// each of which is a series of blocks.
var Primo cassette.Format = primo{
	descriptor{
		name:        "primo",
		description: "Microkey Primo tape image",
		extensions:  []string{"ptp"},
	},
}

func (f primo) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < primoFileHeader+primoBlockHead {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "primo: too short")
	}
	if img.Byte(0) != primoFileStart {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "primo: no file marker")
	}
	if img.LE16(1) > img.Size() {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "primo: bad file size")
	}
	if b := img.Byte(primoFileHeader); b != primoBlock && b != primoLastBlock {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "primo: no block marker")
	}
	return cassette.Mono16(primoRate), nil
}

// bit 1 is 7 high and 7 low samples. bit 0 is 16 high and 16 low samples.
func primoByte(w *cassette.Wave, b byte) {
	for i := 7; i >= 0; i-- {
		if b&(1<<i) != 0 {
			w.Put(7, cassette.High)
			w.Put(7, cassette.Low)
		} else {
			w.Put(16, cassette.High)
			w.Put(16, cassette.Low)
		}
	}
}

func (f primo) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: primoRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			data := img.Bytes()
			var files int

			pos := 0
			for pos < len(data) && data[pos] == primoFileStart {
				if files > 0 {
					w.Silence(primoRate / 2)
				}
				pos += primoFileHeader

				for last := false; !last && pos < len(data); {
					marker := data[pos]
					if marker != primoBlock && marker != primoLastBlock {
						cas.Logf("primo", "file %d: unexpected block marker %#02x", files, marker)
						break
					}
					last = marker == primoLastBlock

					l := img.LE16(pos + 1)
					pos += primoBlockHead
					if pos+l > len(data) {
						cas.Logf("primo", "file %d: block length of %d clamped to %d", files, l, max(0, len(data)-pos))
						l = max(0, len(data)-pos)
					}
					block := data[min(pos, len(data)) : min(pos, len(data))+l]
					pos += l

					pilot, sync := primoDataPilot, primoDataSync
					if len(block) > 0 && (block[0] == 0x83 || block[0] == 0x87) {
						pilot, sync = primoNamePilot, primoNameSync
					}
					for i := 0; i < pilot; i++ {
						primoByte(w, primoPilotByte)
					}
					for i := 0; i < sync; i++ {
						primoByte(w, primoSyncByte)
					}
					for _, b := range block {
						primoByte(w, b)
					}
				}

				files++
			}

			cas.Logf("primo", "%d files", files)

			return nil
		},
	}

	return filler.Load(img, cas)
}
