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

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/klauspost/compress/zlib"
)

const (
	cswMagic        = "Compressed Square Wave\x1a"
	cswMajorVersion = 0x17
	cswMinorVersion = 0x18

	// version 1 header
	cswV1Rate        = 0x19
	cswV1Compression = 0x1b
	cswV1Flags       = 0x1c
	cswV1Data        = 0x20

	// version 2 header
	cswV2Rate        = 0x19
	cswV2Compression = 0x21
	cswV2Flags       = 0x22
	cswV2Extension   = 0x23
	cswV2Data        = 0x34

	cswRLE  = 0x01
	cswZRLE = 0x02

	cswMaxDecompress = 64 * 1024 * 1024

	// limit on the length of the expanded recording. about 100 minutes at
	// 44100Hz
	cswMaxSamples = 1 << 28
)

type csw struct {
	descriptor
}

// CSW is the Compressed Square Wave format. The image is a run length encoding
// of the pulses in the recording. Version 2 images may compress the encoding
// with zlib.
var CSW cassette.Format = csw{
	descriptor{
		name:        "csw",
		description: "Compressed Square Wave tape image",
		extensions:  []string{"csw"},
	},
}

type cswHeader struct {
	rate        int
	compression byte
	polarity    bool
	data        int
}

func (f csw) header(img *cassette.Image) (cswHeader, error) {
	var h cswHeader

	if !img.HasMagic(cswMagic) || img.Size() < cswV1Data {
		return h, curated.Errorf(cassette.InvalidImage, "csw: no magic number")
	}

	switch img.Byte(cswMajorVersion) {
	case 1:
		h.rate = img.LE16(cswV1Rate)
		h.compression = img.Byte(cswV1Compression)
		h.polarity = img.Byte(cswV1Flags)&0x01 == 0x01
		h.data = cswV1Data
	case 2:
		if img.Size() < cswV2Data {
			return h, curated.Errorf(cassette.InvalidImage, "csw: header too short")
		}
		h.rate = int(img.LE32(cswV2Rate))
		h.compression = img.Byte(cswV2Compression)
		h.polarity = img.Byte(cswV2Flags)&0x01 == 0x01
		h.data = cswV2Data + int(img.Byte(cswV2Extension))
	default:
		return h, curated.Errorf(cassette.Unsupported, fmt.Sprintf("csw: version %d.%d", img.Byte(cswMajorVersion), img.Byte(cswMinorVersion)))
	}

	if h.rate == 0 {
		return h, curated.Errorf(cassette.InvalidImage, "csw: zero sample rate")
	}

	switch h.compression {
	case cswRLE:
	case cswZRLE:
		if img.Byte(cswMajorVersion) == 1 {
			return h, curated.Errorf(cassette.Unsupported, "csw: Z-RLE compression in version 1 image")
		}
	default:
		return h, curated.Errorf(cassette.Unsupported, fmt.Sprintf("csw: compression type %d", h.compression))
	}

	if h.data > img.Size() {
		return h, curated.Errorf(cassette.InvalidImage, "csw: header too short")
	}

	return h, nil
}

func (f csw) Identify(img *cassette.Image) (cassette.Options, error) {
	h, err := f.header(img)
	if err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(h.rate), nil
}

func (f csw) Load(img *cassette.Image, cas *cassette.Cassette) error {
	h, err := f.header(img)
	if err != nil {
		return err
	}

	data := img.Bytes()[h.data:]

	if h.compression == cswZRLE {
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return curated.Errorf(cassette.InvalidImage, fmt.Errorf("csw: %w", err))
		}
		defer r.Close()

		data, err = io.ReadAll(io.LimitReader(r, cswMaxDecompress))
		if err != nil {
			return curated.Errorf(cassette.InvalidImage, fmt.Errorf("csw: %w", err))
		}
	}

	var w cassette.Wave
	level := cassette.Low
	if h.polarity {
		level = cassette.High
	}

	var pulses int
	var samples int

	for pos := 0; pos < len(data); {
		n := int(data[pos])
		pos++
		if n == 0 {
			if pos+4 > len(data) {
				cas.Log("csw", "truncated pulse length")
				break
			}
			n = int(binary.LittleEndian.Uint32(data[pos:]))
			pos += 4
		}

		samples += n
		if samples > cswMaxSamples {
			return curated.Errorf(cassette.InvalidImage, fmt.Sprintf("csw: recording longer than %d samples", cswMaxSamples))
		}

		w.Put(n, level)
		if level == cassette.High {
			level = cassette.Low
		} else {
			level = cassette.High
		}
		pulses++
	}

	cas.Logf("csw", "%d pulses", pulses)

	return w.Deliver(cas)
}
