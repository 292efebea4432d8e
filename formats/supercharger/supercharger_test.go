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
	"testing"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/test"
)

func TestParseBlocks(t *testing.T) {
	data := make([]byte, BlockLen*2)

	// second block header
	h := data[BlockLen+headerOffset:]
	h[0] = 0x00
	h[1] = 0xf0
	h[2] = 0x1d
	h[3] = 2
	h[4] = 0x55
	h[5] = 0x01
	h[pageTableOffset] = 0x04
	h[pageTableOffset+1] = 0x05
	h[checksumsOffset] = 0xaa
	h[checksumsOffset+1] = 0xbb
	data[BlockLen+pageLen] = 0x99

	blocks, err := parseBlocks(cassette.NewImage("", data), nil)
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(blocks), 2)

	test.ExpectEquality(t, blocks[0].numPages, 0)

	b := blocks[1]
	test.ExpectEquality(t, b.startAddress, uint16(0xf000))
	test.ExpectEquality(t, b.configByte, uint8(0x1d))
	test.ExpectEquality(t, b.numPages, 2)
	test.ExpectEquality(t, b.checksum, uint8(0x55))
	test.ExpectEquality(t, b.multiload, uint8(0x01))
	test.ExpectEquality(t, len(b.header), 8)
	test.ExpectEquality(t, b.pageTable[1], byte(0x05))
	test.ExpectEquality(t, b.checksums[1], byte(0xbb))
	test.ExpectEquality(t, b.page(1)[0], byte(0x99))
}

func TestClampPages(t *testing.T) {
	data := make([]byte, BlockLen)
	data[headerOffset+3] = 0xff

	cas, err := cassette.NewCassette(nil, cassette.Mono16(rate))
	test.DemandSuccess(t, err)

	blocks, err := parseBlocks(cassette.NewImage("", data), cas)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, blocks[0].numPages, maxPages)
	test.ExpectEquality(t, len(blocks[0].page(maxPages-1)), pageLen)
}

func TestBadSize(t *testing.T) {
	for _, n := range []int{0, 1, BlockLen - 1, BlockLen + 1} {
		_, err := parseBlocks(cassette.NewImage("", make([]byte, n)), nil)
		test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage), n)
	}
}

func TestBits(t *testing.T) {
	var w cassette.Wave
	putByte(&w, 0x80)
	test.ExpectEquality(t, w.Len(), oneCycle+7*zeroCycle)

	w = cassette.Wave{}
	putClearingTone(&w)
	test.ExpectEquality(t, w.Len(), rate)
}
