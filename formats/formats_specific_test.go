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
	"encoding/binary"
	"strings"
	"testing"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/digest"
	"github.com/jetsetilly/gophertape/formats"
	"github.com/jetsetilly/gophertape/formats/supercharger"
	"github.com/jetsetilly/gophertape/logger"
	"github.com/jetsetilly/gophertape/test"
)

// logged returns the entries in the central log added while f is running.
func logged(f func()) string {
	logger.Clear()
	f()
	var s strings.Builder
	logger.Write(&s)
	return s.String()
}

func TestFM7(t *testing.T) {
	data := append([]byte("XM7 TAPE IMAGE 0"), 0x81, 0x02, 0x00, 0x01, 0xff, 0xff)
	cas := open(t, formats.FM7, "fm7", data)
	s := cas.Samples(0)
	test.DemandEquality(t, len(s), 0x0102+1+32767)

	for i := 0; i < 0x0102; i++ {
		test.ExpectEquality(t, s[i], cassette.PeakHigh)
	}
	test.ExpectEquality(t, s[0x0102], cassette.PeakLow)
	for _, v := range s[0x0102+1:] {
		test.ExpectEquality(t, v, cassette.PeakHigh)
	}

	// no magic
	_, err := formats.FM7.Identify(cassette.NewImage("", []byte("XM7 TAPE IMAGE 1")))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))
}

func TestSupercharger(t *testing.T) {
	_, err := supercharger.Format.Identify(cassette.NewImage("", make([]byte, 8448)))
	test.ExpectSuccess(t, err)

	_, err = supercharger.Format.Identify(cassette.NewImage("", make([]byte, 8447)))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))

	_, err = supercharger.Format.Identify(cassette.NewImage("", make([]byte, 8448*2)))
	test.ExpectSuccess(t, err)

	// a block with one page. the page table and checksum are sent before the
	// page data. header byte 3 is the page count so exactly one bit of the
	// block is a one bit
	data := make([]byte, 8448)
	data[0x2000+3] = 1
	cas := open(t, supercharger.Format, "a26", data)

	const bits = (8 + 2 + 256) * 8
	const oneBits = 1
	test.ExpectEquality(t, cas.Len(), 44100+2755*25+2*10+(bits-oneBits)*10+oneBits*15+44100)
}

func TestX1(t *testing.T) {
	header := func(freq int, bits int) []byte {
		d := make([]byte, 0x28)
		copy(d, "TAPE")
		binary.LittleEndian.PutUint32(d[0x1c:], uint32(freq))
		binary.LittleEndian.PutUint32(d[0x20:], uint32(bits))
		return d
	}

	// the bit count limits the output
	cas := open(t, formats.X1, "x1", append(header(8000, 4), 0xf0, 0xff))
	test.ExpectEquality(t, cas.Options().SampleRate, 8000)
	test.ExpectEquality(t, cas.Len(), 4)
	for _, v := range cas.Samples(0) {
		test.ExpectEquality(t, v, cassette.PeakHigh)
	}

	// the bit count is clamped to the size of the data
	var log string
	log = logged(func() {
		cas = open(t, formats.X1, "x1", append(header(8000, 100), 0x0f))
	})
	test.ExpectEquality(t, cas.Len(), 8)
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))

	_, err := formats.X1.Identify(cassette.NewImage("", header(12345, 0)))
	test.ExpectSuccess(t, curated.Is(err, cassette.Unsupported))

	_, err = formats.X1.Identify(cassette.NewImage("", header(0, 0)))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))
}

func TestCSW(t *testing.T) {
	_, err := formats.CSW.Identify(cassette.NewImage("", append(cswHeader(3, 44100, 0x01), cswPulses...)))
	test.ExpectSuccess(t, curated.Is(err, cassette.Unsupported))

	_, err = formats.CSW.Identify(cassette.NewImage("", append(cswHeader(1, 44100, 0x02), cswPulses...)))
	test.ExpectSuccess(t, curated.Is(err, cassette.Unsupported))

	_, err = formats.CSW.Identify(cassette.NewImage("", append(cswHeader(2, 44100, 0x03), cswPulses...)))
	test.ExpectSuccess(t, curated.Is(err, cassette.Unsupported))

	_, err = formats.CSW.Identify(cassette.NewImage("", append(cswHeader(1, 0, 0x01), cswPulses...)))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))

	// polarity of the first pulse
	cas := open(t, formats.CSW, "csw", append(cswHeader(1, 44100, 0x01), cswPulses...))
	test.ExpectEquality(t, cas.Samples(0)[0], cassette.Low)
	test.ExpectEquality(t, cas.Samples(0)[10], cassette.High)
}

func TestUEF(t *testing.T) {
	a := open(t, formats.UEF, "uef", uefImage())
	b := open(t, formats.UEF, "uef", gzipped(uefImage()))
	test.ExpectEquality(t, digest.Cassette(a), digest.Cassette(b))

	// unknown chunks are logged
	log := logged(func() {
		open(t, formats.UEF, "uef", uefImage())
	})
	test.ExpectSuccess(t, strings.Contains(log, "skipping chunk 0x0130"))

	// length of the last chunk is past the end of the image
	d := uefImage()
	binary.LittleEndian.PutUint32(d[len(d)-6:], 0xffff)
	log = logged(func() {
		open(t, formats.UEF, "uef", d)
	})
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))
}

func TestMZ(t *testing.T) {
	_, err := formats.MZ.Identify(cassette.NewImage("", make([]byte, 127)))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))

	// data size is clamped to the size of the image
	d := make([]byte, 130)
	binary.LittleEndian.PutUint16(d[0x12:], 1000)
	log := logged(func() {
		open(t, formats.MZ, "mz", d)
	})
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))
}

func TestZX81Name(t *testing.T) {
	// the default name is used if the image has no name
	a := open(t, formats.ZX81, "", zx81Image())
	b := open(t, formats.ZX81, "TAPE.P", zx81Image())
	c := open(t, formats.ZX81, "a.p", zx81Image())
	test.ExpectEquality(t, digest.Cassette(a), digest.Cassette(b))
	test.ExpectInequality(t, digest.Cassette(a), digest.Cassette(c))

	// program length is clamped to the size of the image
	d := zx80Image()
	binary.LittleEndian.PutUint16(d[0x04:], 0x4000+100)
	log := logged(func() {
		open(t, formats.ZX80, "zx80", d)
	})
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))
}

func TestPrimoClamp(t *testing.T) {
	// block length is longer than the image
	d := primoImage()
	d[4] = 0x10
	log := logged(func() {
		cas := open(t, formats.Primo, "primo", d)
		test.ExpectEquality(t, cas.Len(), 96*(4*14+4*32)+(5*14+3*32)+8*32)
	})
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))
}

func TestGTPTurbo(t *testing.T) {
	cas := open(t, formats.GTP, "gtp", []byte{0x01, 0x01, 0x00, 0x00, 0x00, 0x42})
	test.ExpectEquality(t, cas.Len(), 22050+(96+1+1)*8*54)

	// unknown block types are skipped
	log := logged(func() {
		cas = open(t, formats.GTP, "gtp", []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x33, 0x00, 0x00, 0x00, 0x00})
	})
	test.ExpectEquality(t, cas.Len(), 22050+(96+1)*8*109)
	test.ExpectSuccess(t, strings.Contains(log, "skipping block type"))
}

func TestZX81NameExtension(t *testing.T) {
	// only the extensions of the format are removed from the name. the
	// loader has usually removed the extension already
	a := open(t, formats.ZX81, "v1.2.p", zx81Image())
	b := open(t, formats.ZX81, "v1.2", zx81Image())
	c := open(t, formats.ZX81, "V1.2.81", zx81Image())
	d := open(t, formats.ZX81, "v1", zx81Image())
	test.ExpectEquality(t, digest.Cassette(a), digest.Cassette(b))
	test.ExpectEquality(t, digest.Cassette(a), digest.Cassette(c))
	test.ExpectInequality(t, digest.Cassette(a), digest.Cassette(d))
}

func TestCSWLimit(t *testing.T) {
	// a single pulse of 4G samples
	d := append(cswHeader(1, 44100, 0x01), 0x00, 0xff, 0xff, 0xff, 0xff)
	_, err := cassette.Open(nil, cassette.NewImage("", d), formats.CSW)
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))
}

func TestPMD85Clamp(t *testing.T) {
	// length of the first block is past the end of the image
	var cas *cassette.Cassette
	log := logged(func() {
		cas = open(t, formats.PMD85, "pmd85", []byte{0x05, 0x00, 0x42})
	})
	test.ExpectSuccess(t, strings.Contains(log, "clamped"))

	ref := open(t, formats.PMD85, "pmd85", []byte{0x01, 0x00, 0x42})
	test.ExpectEquality(t, digest.Cassette(cas), digest.Cassette(ref))

	// a zero length is not a pmd85 container
	_, err := formats.PMD85.Identify(cassette.NewImage("", []byte{0x00, 0x00, 0x42}))
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))
}

func TestScannerEdgeCases(t *testing.T) {
	vg5kDataPastEnd := vg5kImage()
	vg5kDataPastEnd[28] = 0x01

	oricTruncated := oricImage()
	oricTruncated = oricTruncated[:len(oricTruncated)-1]

	h8Clamped := h8Image()
	h8Clamped[7] = 0x10

	cases := []struct {
		desc   string
		format cassette.Format
		data   []byte

		// the load must fail with an invalid image error
		invalid bool

		// text expected in the log when the load succeeds
		log string
	}{
		{
			desc:    "cgenie leader with no sync byte",
			format:  formats.ColourGenie,
			data:    []byte{0xaa, 0xaa, 0x00},
			invalid: true,
		},
		{
			desc:    "cgenie image that ends in the leader",
			format:  formats.ColourGenie,
			data:    []byte{0xaa, 0xaa},
			invalid: true,
		},
		{
			desc:    "cgenie header with no sync byte",
			format:  formats.ColourGenie,
			data:    append([]byte("Colour Genie - Virtual Tape File\x00"), 0xaa, 0x01),
			invalid: true,
		},
		{
			desc:    "vg5k head block past end of image",
			format:  formats.VG5K,
			data:    append([]byte{0x00, 0xd3}, make([]byte, 20)...),
			invalid: true,
		},
		{
			desc:    "vg5k data block past end of image",
			format:  formats.VG5K,
			data:    vg5kDataPastEnd,
			invalid: true,
		},
		{
			desc:   "h8 record past end of image",
			format: formats.H8,
			data:   h8Clamped,
			log:    "clamped",
		},
		{
			desc:   "oric data past end of image",
			format: formats.Oric,
			data:   oricTruncated,
			log:    "clamped",
		},
		{
			desc:   "oric with two files",
			format: formats.Oric,
			data:   append(oricImage(), oricImage()...),
			log:    "2 files",
		},
		{
			desc:    "zxtap with bad checksum",
			format:  formats.ZXTap,
			data:    []byte{0x02, 0x00, 0x00, 0x01},
			invalid: true,
		},
	}

	for _, c := range cases {
		var err error
		log := logged(func() {
			_, err = cassette.Open(nil, cassette.NewImage("", c.data), c.format)
		})
		if c.invalid {
			test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage), c.desc)
			continue
		}
		test.ExpectSuccess(t, err, c.desc)
		test.ExpectSuccess(t, strings.Contains(log, c.log), c.desc)
	}
}

func TestOricScanner(t *testing.T) {
	one := open(t, formats.Oric, "oric", oricImage())

	// bytes that are not part of a sync run are skipped
	junk := append([]byte{0x16, 0x16, 0x16, 0x00, 0x01, 0x16}, oricImage()...)
	skipped := open(t, formats.Oric, "oric", junk)
	test.ExpectEquality(t, digest.Cassette(skipped), digest.Cassette(one))

	// every file is written. header and trailer silence are written once
	two := open(t, formats.Oric, "oric", append(oricImage(), oricImage()...))
	test.ExpectEquality(t, two.Len(), 2*one.Len()-3000-1000)
}
