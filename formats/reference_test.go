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

package formats_test

import (
	"bytes"
	"encoding/binary"
	"math"
	"math/bits"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/formats"
	"github.com/jetsetilly/gophertape/formats/supercharger"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// reference is a constructed image for a format along with the number of
// samples the image should produce. the number of samples has been worked out
// from the timing constants of the format.
type reference struct {
	format    cassette.Format
	name      string
	data      []byte
	rate      int
	samples   int
	tolerance float64
}

func aceImage() []byte {
	return append([]byte{26, 0}, make([]byte, 26)...)
}

// the header of an oric file with a data length of one byte and the name "A"
func oricImage() []byte {
	d := []byte{0x16, 0x16, 0x16, 0x24}
	d = append(d, 0x00, 0x00, 0x00, 0x00, 0x05, 0x00, 0x05, 0x00, 0x00)
	d = append(d, 'A', 0x00)
	return append(d, 0xff)
}

// samples for an oric byte. one start bit, odd parity and three stop bits. a
// one bit is two samples and a zero bit is three samples
func oricByte(b byte) int {
	ones := bits.OnesCount8(b)
	if ones%2 == 0 {
		ones++
	}
	ones += 3
	return ones*2 + (13-ones)*3
}

// a file header block of ten 0xd3 bytes
func fmsxImage() []byte {
	d := []byte{0x1f, 0xa6, 0xde, 0xba, 0xcc, 0x13, 0x7d, 0x74}
	return append(d, bytes.Repeat([]byte{0xd3}, 10)...)
}

// a namefile block with no data
func cocoImage() []byte {
	return []byte{0x55, 0x3c, 0x00, 0x00, 0x00}
}

// a single file with a single block of one byte
func primoImage() []byte {
	return []byte{0xff, 0x07, 0x00, 0xaa, 0x01, 0x00, 0x00}
}

func uefImage() []byte {
	d := []byte("UEF File!\x00")
	d = append(d, 0x0a, 0x00)

	chunk := func(id uint16, data []byte) {
		d = binary.LittleEndian.AppendUint16(d, id)
		d = binary.LittleEndian.AppendUint32(d, uint32(len(data)))
		d = append(d, data...)
	}

	// base frequency of 1225Hz gives a whole number of samples per cycle
	chunk(0x0113, binary.LittleEndian.AppendUint32(nil, math.Float32bits(1225)))
	chunk(0x0110, []byte{100, 0})
	chunk(0x0100, []byte{0x42})
	chunk(0x0130, []byte{0x01, 0x02})

	return d
}

func gzipped(d []byte) []byte {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, _ = w.Write(d)
	_ = w.Close()
	return b.Bytes()
}

func cswHeader(version byte, rate int, compression byte) []byte {
	d := []byte("Compressed Square Wave\x1a")
	d = append(d, version, 0x00)
	switch version {
	case 1:
		d = binary.LittleEndian.AppendUint16(d, uint16(rate))
		d = append(d, compression, 0x00, 0x00, 0x00, 0x00)
	case 2:
		d = binary.LittleEndian.AppendUint32(d, uint32(rate))
		d = binary.LittleEndian.AppendUint32(d, 0)
		d = append(d, compression, 0x00, 0x00)
		d = append(d, make([]byte, 16)...)
	default:
		d = append(d, make([]byte, 7)...)
	}
	return d
}

// pulses of 10 and 300 samples
var cswPulses = []byte{10, 0x00, 0x2c, 0x01, 0x00, 0x00}

func cswV2Image() []byte {
	var b bytes.Buffer
	w := zlib.NewWriter(&b)
	_, _ = w.Write(cswPulses)
	_ = w.Close()
	return append(cswHeader(2, 22050, 0x02), b.Bytes()...)
}

// a head block with a data length of zero and the following data block
func vg5kImage() []byte {
	head := make([]byte, 32)
	head[0] = 0xd3
	data := make([]byte, 20)
	data[0] = 0xd6
	return append(head, data...)
}

// a single record with no data
func h8Image() []byte {
	return append([]byte{0x16, 0x16, 0x02}, make([]byte, 9)...)
}

func zx81Image() []byte {
	d := make([]byte, 13)
	binary.LittleEndian.PutUint16(d[0x0b:], 0x4009+13)
	return d
}

func zx80Image() []byte {
	d := make([]byte, 6)
	binary.LittleEndian.PutUint16(d[0x04:], 0x4000+6)
	return d
}

// a name block followed by a standard block of one byte
func gtpImage() []byte {
	return []byte{
		0x10, 0x01, 0x00, 0x00, 0x00, 'A',
		0x00, 0x01, 0x00, 0x00, 0x00, 0x42,
	}
}

func lvivImage() []byte {
	d := []byte("LVOV/2.0/")
	d = append(d, 0xd0)
	d = append(d, []byte("GAME  ")...)
	return append(d, 0x01, 0x02)
}

func references() []reference {
	// zx81 bits are pulses of 16 samples followed by 56 samples of silence
	zxZero := 4*16 + 56
	zxOne := 9*16 + 56

	// mz pulses
	mzLong := 20 + 22
	mzShort := 11 + 12
	mzZeroByte := mzLong + 8*mzShort

	// cgenie bytes are eight bits of four samples
	cgenieByte := 8 * 4

	// sorcerer, vg5k, lviv and pmd85 bytes are eleven bits long
	vg5kByte := 11 * 36
	lvivByte := 11 * 60

	// every gtp bit is 109 samples
	gtpByte := 8 * 109

	return []reference{
		{
			format:  supercharger.Format,
			name:    "a26",
			data:    make([]byte, supercharger.BlockLen),
			rate:    44100,
			samples: 44100 + 2755*25 + 2*10 + 8*8*10 + 44100,
		},
		{
			format:  formats.FM7,
			name:    "fm7",
			data:    append([]byte("XM7 TAPE IMAGE 0"), 0x80, 0x05, 0x00, 0x03, 0xff, 0xff, 0x01),
			rate:    110250,
			samples: 5 + 3 + 32767,
		},
		{
			format:    formats.Ace,
			name:      "ace",
			data:      aceImage(),
			rate:      44100,
			samples:   (2011*8192 + 601 + 791 + 26*8*(801+887) + 903 + 3250000) * 44100 / 3250000,
			tolerance: 2,
		},
		{
			format:    formats.ZXTap,
			name:      "zxtap",
			data:      []byte{0x02, 0x00, 0x00, 0x00},
			rate:      44100,
			samples:   (2168*8063 + 667 + 735 + 16*2*855 + 3500000) * 44100 / 3500000,
			tolerance: 2,
		},
		{
			format: formats.Oric,
			name:   "oric",
			data:   oricImage(),
			rate:   4800,
			samples: 3000 + 2400 + 512*oricByte(0x16) + oricByte(0x24) +
				4*oricByte(0x00) + 2*oricByte(0x05) + 2*oricByte(0x00) + oricByte(0x00) +
				oricByte('A') + oricByte(0x00) + 100*2 +
				oricByte(0xff) + 1000,
		},
		{
			format:  formats.SPC1000,
			name:    "spc1000",
			data:    []byte("01 01\n"),
			rate:    9600,
			samples: 2*4 + 2*8,
		},
		{
			format:  formats.X1,
			name:    "x1",
			data:    []byte{0x44, 0xac, 0x00, 0x00, 0xa0},
			rate:    44100,
			samples: 8,
		},
		{
			format:  formats.FMSX,
			name:    "fmsx",
			data:    fmsxImage(),
			rate:    19200,
			samples: 9600 + 8000*16 + 10*11*16,
		},
		{
			format:  formats.SPC1000Cas,
			name:    "spc1000cas",
			data:    append([]byte("SPC-1000.CASfmt "), 0xf0),
			rate:    9600,
			samples: 4*8 + 4*4,
		},
		{
			format:  formats.ColourGenie,
			name:    "cgenie",
			data:    []byte{0x66, 0x01},
			rate:    4800,
			samples: (256 + 1 + 1) * cgenieByte,
		},
		{
			format:  formats.TRS80,
			name:    "trs80 500 baud",
			data:    []byte{0x00, 0xa5},
			rate:    44100,
			samples: 22050 + 16*88 + 22050,
		},
		{
			format:  formats.TRS80,
			name:    "trs80 1500 baud",
			data:    []byte{0x55, 0x7f},
			rate:    44100,
			samples: 22050 + 11*22 + 5*44 + 22050,
		},
		{
			// every byte is sent, followed by the gap and a new leader of 128
			// bytes after the namefile block. a one bit is 18.375 samples and
			// a zero bit is 36.75 samples
			format:    formats.CoCo,
			name:      "coco",
			data:      cocoImage(),
			rate:      44100,
			samples:   22050 + int(float64(4+4+4*128)*18.375+float64(4+4+3*8+4*128)*36.75) + 22050,
			tolerance: 2,
		},
		{
			format:  formats.Primo,
			name:    "primo",
			data:    primoImage(),
			rate:    22050,
			samples: 96*(4*14+4*32) + (5*14 + 3*32) + 8*32,
		},
		{
			format:  formats.PMD85,
			name:    "pmd85",
			data:    []byte{0x01, 0x00, 0x42},
			rate:    7200,
			samples: (600 + 11) * 6,
		},
		{
			format:  formats.VG5K,
			name:    "vg5k",
			data:    vg5kImage(),
			rate:    44100,
			samples: 44100 + 30000 + 32*vg5kByte + 10000 + 7200 + 20*vg5kByte + 10000,
		},
		{
			format:  formats.H8,
			name:    "h8",
			data:    h8Image(),
			rate:    9600,
			samples: (2000 + 12*11) * 32,
		},
		{
			format:  formats.Sorcerer,
			name:    "sorcerer",
			data:    []byte{0x00},
			rate:    4788,
			samples: (100 + 11 + 100) * 4,
		},
		{
			// the name "A" is sent as 0xa6
			format:  formats.ZX81,
			name:    "a.p",
			data:    zx81Image(),
			rate:    44100,
			samples: 44100 + (4*zxOne + 4*zxZero) + (4*zxOne + 100*zxZero) + 44100,
		},
		{
			format:  formats.ZX80,
			name:    "zx80",
			data:    zx80Image(),
			rate:    44100,
			samples: 44100 + 3*zxOne + 45*zxZero + 44100,
		},
		{
			// each bit and each space is 36.75 samples
			format:    formats.SC3000,
			name:      "sc3000",
			data:      []byte("0000 1111   "),
			rate:      44100,
			samples:   441,
			tolerance: 1,
		},
		{
			format:  formats.UEF,
			name:    "uef",
			data:    uefImage(),
			rate:    44100,
			samples: 100*18 + 10*36,
		},
		{
			format:  formats.UEF,
			name:    "uef compressed",
			data:    gzipped(uefImage()),
			rate:    44100,
			samples: 100*18 + 10*36,
		},
		{
			format:  formats.CSW,
			name:    "csw v1",
			data:    append(cswHeader(1, 44100, 0x01), cswPulses...),
			rate:    44100,
			samples: 310,
		},
		{
			format:  formats.CSW,
			name:    "csw v2",
			data:    cswV2Image(),
			rate:    22050,
			samples: 310,
		},
		{
			format:  formats.GTP,
			name:    "gtp",
			data:    gtpImage(),
			rate:    44100,
			samples: 22050 + (96+1+1)*gtpByte,
		},
		{
			format:  formats.Lviv,
			name:    "lviv",
			data:    lvivImage(),
			rate:    44100,
			samples: 5190*6 + 10*lvivByte + 6*lvivByte + 69370 + 1298*6 + 2*lvivByte,
		},
		{
			format: formats.MZ,
			name:   "mz",
			data:   make([]byte, 128),
			rate:   44100,
			samples: 22000*mzShort + 40*mzLong + 40*mzShort + mzLong +
				130*mzZeroByte + mzLong + 256*mzShort + 130*mzZeroByte + mzLong +
				11000*mzShort + 20*mzLong + 20*mzShort + mzLong +
				2*mzZeroByte + mzLong + 256*mzShort + 2*mzZeroByte + mzLong,
		},
		{
			format:  formats.RK20,
			name:    "rk20",
			data:    []byte{0x01, 0x02, 0x03},
			rate:    44100,
			samples: (256 + 1 + 3 + 256) * 8 * 40,
		},
		{
			format:  formats.RK22,
			name:    "rk22",
			data:    []byte{0x01, 0x02, 0x03},
			rate:    44100,
			samples: (256 + 1 + 3 + 256) * 8 * 44,
		},
		{
			format:  formats.RK60,
			name:    "rk60",
			data:    []byte{0x01, 0x02, 0x03},
			rate:    44100,
			samples: (256 + 1 + 3 + 256) * 8 * 120,
		},
	}
}
