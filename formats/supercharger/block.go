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

package supercharger

import (
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

// a fastload binary can have several blocks
const (
	headerOffset = 0x2000
	headerLen    = 0x100
	BlockLen     = headerOffset + headerLen

	pageLen  = 0x100
	maxPages = headerOffset / pageLen

	// the header that is sent to the Supercharger is only the first eight
	// bytes of the game header
	sentHeaderLen = 8

	pageTableOffset = 0x10
	checksumsOffset = 0x40
)

type block struct {
	// page data
	data []byte

	// the first eight bytes of the game header
	header []byte

	// PC address to jump to once loading has finished
	startAddress uint16

	// RAM config to be set after tape load
	configByte uint8

	// number of pages to load
	numPages int

	checksum  uint8
	multiload uint8

	progressSpeed uint16

	// the destination and checksum of each page
	pageTable []byte
	checksums []byte
}

// parseBlocks splits the image into load blocks. The size of the image must be
// a non-zero multiple of BlockLen.
func parseBlocks(img *cassette.Image, cas *cassette.Cassette) ([]block, error) {
	if img.Size() == 0 || img.Size()%BlockLen != 0 {
		return nil, curated.Errorf(cassette.InvalidImage, "a26: wrong number of bytes in tape data")
	}

	data := img.Bytes()
	blocks := make([]block, img.Size()/BlockLen)

	for i := range blocks {
		offset := i * BlockLen
		b := &blocks[i]
		b.data = data[offset : offset+headerOffset]

		// game header appears after main data
		gameHeader := data[offset+headerOffset : offset+BlockLen]
		b.header = gameHeader[:sentHeaderLen]
		b.startAddress = (uint16(gameHeader[1]) << 8) | uint16(gameHeader[0])
		b.configByte = gameHeader[2]
		b.numPages = int(gameHeader[3])
		b.checksum = gameHeader[4]
		b.multiload = gameHeader[5]
		b.progressSpeed = (uint16(gameHeader[7]) << 8) | uint16(gameHeader[6])

		if b.numPages > maxPages {
			if cas != nil {
				cas.Logf("a26", "block %d: num pages of %d clamped to %d", i, b.numPages, maxPages)
			}
			b.numPages = maxPages
		}

		b.pageTable = gameHeader[pageTableOffset : pageTableOffset+b.numPages]
		b.checksums = gameHeader[checksumsOffset : checksumsOffset+b.numPages]

		if cas != nil {
			cas.Logf("a26", "block %d: start address: %#04x", i, b.startAddress)
			cas.Logf("a26", "block %d: config byte: %#08b", i, b.configByte)
			cas.Logf("a26", "block %d: num pages: %d", i, b.numPages)
			cas.Logf("a26", "block %d: checksum: %#02x", i, b.checksum)
			cas.Logf("a26", "block %d: multiload: %#02x", i, b.multiload)
			cas.Logf("a26", "block %d: progress speed: %#02x", i, b.progressSpeed)
			cas.Logf("a26", "block %d: page-table: %v", i, b.pageTable)
		}
	}

	return blocks, nil
}

// page returns the data for page n of the block.
func (b block) page(n int) []byte {
	return b.data[n*pageLen : (n+1)*pageLen]
}
