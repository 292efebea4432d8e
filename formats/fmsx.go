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
	fmsxRate        = 19200
	fmsxLongHeader  = 8000
	fmsxShortHeader = 2000
	fmsxFileHeader  = 10
)

var fmsxMagic = []byte{0x1f, 0xa6, 0xde, 0xba, 0xcc, 0x13, 0x7d, 0x74}

type fmsx struct {
	descriptor
}

// FMSX is the MSX CAS format used by the fMSX emulator. Blocks begin with a
// magic number on an eight byte boundary.
var FMSX cassette.Format = fmsx{
	descriptor{
		name:        "fmsx",
		description: "MSX tape image",
		extensions:  []string{"cas"},
	},
}

func (f fmsx) Identify(img *cassette.Image) (cassette.Options, error) {
	if !bytes.HasPrefix(img.Bytes(), fmsxMagic) {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "fmsx: no magic number")
	}
	return cassette.Mono16(fmsxRate), nil
}

// bit 0 is 8 high and 8 low samples. bit 1 is two cycles of 4 high and 4 low
// samples.
func fmsxBit(w *cassette.Wave, bit bool) {
	if bit {
		for i := 0; i < 2; i++ {
			w.Put(4, cassette.High)
			w.Put(4, cassette.Low)
		}
	} else {
		w.Put(8, cassette.High)
		w.Put(8, cassette.Low)
	}
}

// returns true if the block is a file header. a file header block begins with
// ten bytes of the same file type byte.
func fmsxIsFileHeader(block []byte) bool {
	if len(block) < fmsxFileHeader {
		return false
	}
	switch block[0] {
	case 0xd3, 0xd0, 0xea:
	default:
		return false
	}
	for _, b := range block[:fmsxFileHeader] {
		if b != block[0] {
			return false
		}
	}
	return true
}

// fmsxBlocks splits the image into blocks. the magic number is not included.
func fmsxBlocks(data []byte) [][]byte {
	var starts []int
	for pos := 0; pos+len(fmsxMagic) <= len(data); pos += 8 {
		if bytes.Equal(data[pos:pos+len(fmsxMagic)], fmsxMagic) {
			starts = append(starts, pos)
		}
	}

	blocks := make([][]byte, len(starts))
	for i, s := range starts {
		end := len(data)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		blocks[i] = data[s+len(fmsxMagic) : end]
	}
	return blocks
}

func (f fmsx) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: fmsxRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			blocks := fmsxBlocks(img.Bytes())
			for _, block := range blocks {
				header := fmsxShortHeader
				if fmsxIsFileHeader(block) {
					w.Silence(fmsxRate / 2)
					header = fmsxLongHeader
				}
				for i := 0; i < header; i++ {
					fmsxBit(w, true)
				}
				for _, b := range block {
					cassette.Framing8N2.Put(b, func(bit bool) {
						fmsxBit(w, bit)
					})
				}
			}

			cas.Logf("fmsx", "%d blocks", len(blocks))

			return nil
		},
	}

	return filler.Load(img, cas)
}
