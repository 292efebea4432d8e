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
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/klauspost/compress/gzip"
)

const (
	uefRate      = 44100
	uefMagic     = "UEF File!\x00"
	uefHeaderLen = 12
	uefChunkHead = 6

	uefDefaultBase = 1200.0

	// the byte sent in the middle of a uefCarrierDummy chunk
	uefDummyByte = 0xaa

	// limit of the size of a compressed image once it is uncompressed
	uefMaxDecompress = 16 * 1024 * 1024
)

// handled chunk IDs
const (
	uefImplicitData  = 0x0100
	uefDefinedData   = 0x0104
	uefCarrier       = 0x0110
	uefCarrierDummy  = 0x0111
	uefIntegerGap    = 0x0112
	uefBaseFrequency = 0x0113
	uefFloatGap      = 0x0116
)

type uef struct {
	descriptor
}

// UEF is the Unified Emulator Format used for Acorn tapes. The image may be
// compressed with gzip.
var UEF cassette.Format = uef{
	descriptor{
		name:        "uef",
		description: "Acorn Unified Emulator Format tape image",
		extensions:  []string{"uef"},
	},
}

// data returns the uncompressed image data.
func (f uef) data(img *cassette.Image) ([]byte, error) {
	data := img.Bytes()

	if bytes.HasPrefix(data, []byte{0x1f, 0x8b}) {
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, curated.Errorf(cassette.InvalidImage, fmt.Errorf("uef: %w", err))
		}
		defer r.Close()

		data, err = io.ReadAll(io.LimitReader(r, uefMaxDecompress))
		if err != nil {
			return nil, curated.Errorf(cassette.InvalidImage, fmt.Errorf("uef: %w", err))
		}
	}

	if !bytes.HasPrefix(data, []byte(uefMagic)) || len(data) < uefHeaderLen {
		return nil, curated.Errorf(cassette.InvalidImage, "uef: no magic number")
	}

	return data, nil
}

func (f uef) Identify(img *cassette.Image) (cassette.Options, error) {
	if _, err := f.data(img); err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(uefRate), nil
}

// uefWriter keeps the base frequency while the chunks are processed.
type uefWriter struct {
	w    *cassette.Wave
	base float64
}

// bit 0 is one cycle at the base frequency. bit 1 is two cycles at twice the
// base frequency.
func (u *uefWriter) bit(b bool) {
	if b {
		u.w.PutCycles(u.base*2, 2, uefRate)
	} else {
		u.w.PutCycles(u.base, 1, uefRate)
	}
}

func (u *uefWriter) carrier(cycles int) {
	u.w.PutCycles(u.base*2, cycles, uefRate)
}

func (u *uefWriter) gap(seconds float64) {
	u.w.PutDuration(seconds, cassette.Silence, uefRate)
}

// putDefined sends a byte with the number of data bits, the parity and the
// number of stop bits given.
func (u *uefWriter) putDefined(b byte, bits int, parity cassette.Parity, stop int) {
	u.bit(false)
	var ones int
	for i := 0; i < bits; i++ {
		v := b&(1<<i) != 0
		if v {
			ones++
		}
		u.bit(v)
	}
	switch parity {
	case cassette.ParityOdd:
		u.bit(ones&1 == 0)
	case cassette.ParityEven:
		u.bit(ones&1 == 1)
	}
	for i := 0; i < stop; i++ {
		u.bit(true)
	}
}

func (f uef) Load(img *cassette.Image, cas *cassette.Cassette) error {
	data, err := f.data(img)
	if err != nil {
		return err
	}

	u := &uefWriter{
		w:    &cassette.Wave{},
		base: uefDefaultBase,
	}

	le16 := func(d []byte, o int) int {
		if o+2 > len(d) {
			return 0
		}
		return int(binary.LittleEndian.Uint16(d[o:]))
	}
	float := func(d []byte) float64 {
		if len(d) < 4 {
			return 0
		}
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(d)))
	}

	pos := uefHeaderLen
	for pos+uefChunkHead <= len(data) {
		id := le16(data, pos)
		length := int(binary.LittleEndian.Uint32(data[pos+2:]))
		pos += uefChunkHead

		if length < 0 || pos+length > len(data) {
			cas.Logf("uef", "chunk %#04x: length of %d clamped to %d", id, length, len(data)-pos)
			length = len(data) - pos
		}
		chunk := data[pos : pos+length]
		pos += length

		switch id {
		case uefImplicitData:
			for _, b := range chunk {
				u.putDefined(b, 8, cassette.ParityNone, 1)
			}

		case uefDefinedData:
			if len(chunk) < 3 {
				cas.Logf("uef", "chunk %#04x: too short", id)
				continue
			}
			bits := int(chunk[0])
			parity := cassette.ParityNone
			switch chunk[1] {
			case 'O':
				parity = cassette.ParityOdd
			case 'E':
				parity = cassette.ParityEven
			}
			stop := int(int8(chunk[2]))
			if stop < 0 {
				stop = -stop
			}
			for _, b := range chunk[3:] {
				u.putDefined(b, bits, parity, stop)
			}

		case uefCarrier:
			u.carrier(le16(chunk, 0))

		case uefCarrierDummy:
			u.carrier(le16(chunk, 0))
			u.putDefined(uefDummyByte, 8, cassette.ParityNone, 1)
			u.carrier(le16(chunk, 2))

		case uefIntegerGap:
			u.gap(float64(le16(chunk, 0)) / (u.base * 2))

		case uefBaseFrequency:
			if v := float(chunk); v > 0 {
				u.base = v
			} else {
				cas.Logf("uef", "chunk %#04x: ignoring base frequency of %.2f", id, v)
			}

		case uefFloatGap:
			if v := float(chunk); v > 0 {
				u.gap(v)
			}

		default:
			cas.Logf("uef", "skipping chunk %#04x", id)
		}
	}

	return u.w.Deliver(cas)
}
