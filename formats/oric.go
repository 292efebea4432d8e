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
	oricRate           = 4800
	oricSync           = 0x16
	oricSyncEnd        = 0x24
	oricLeaderBytes    = 512
	oricHeaderLen      = 9
	oricNameOneBits    = 100
	oricHeaderSilence  = 3000
	oricTrailerSilence = 1000
)

type oricState int

const (
	oricSearchingSync oricState = iota
	oricGotSync
	oricReadHeader
	oricReadFilename
	oricWriteData
)

type oric struct {
	descriptor
}

// Oric is the Oric-1/Atmos TAP format. The image is a series of files, each
// preceded by a run of sync bytes.
var Oric cassette.Format = oric{
	descriptor{
		name:        "oric",
		description: "Oric-1/Atmos tape image",
		extensions:  []string{"tap"},
	},
}

func (f oric) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < 4 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "oric: too short")
	}
	for i := 0; i < 3; i++ {
		if img.Byte(i) != oricSync {
			return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "oric: no sync bytes")
		}
	}
	return cassette.Mono16(oricRate), nil
}

// bit 1 is one high and one low sample. bit 0 is one high and two low
// samples.
func oricBit(w *cassette.Wave, bit bool) {
	w.Put(1, cassette.High)
	if bit {
		w.Put(1, cassette.Low)
	} else {
		w.Put(2, cassette.Low)
	}
}

var oricFraming = cassette.Framing{StartBits: 1, StopBits: 3, Parity: cassette.ParityOdd}

func oricByte(w *cassette.Wave, b byte) {
	oricFraming.Put(b, func(bit bool) {
		oricBit(w, bit)
	})
}

func (f oric) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency:      oricRate,
		HeaderSamples:  oricHeaderSilence,
		TrailerSamples: oricTrailerSilence,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			return f.fill(img, w, cas)
		},
	}

	return filler.Load(img, cas)
}

func (f oric) fill(img *cassette.Image, w *cassette.Wave, cas *cassette.Cassette) error {
	state := oricSearchingSync

	var syncCount int
	var header []byte
	var dataLength int
	var files int

	for _, b := range img.Bytes() {
		switch state {
		case oricSearchingSync:
			if b == oricSync {
				syncCount++
				if syncCount >= 3 {
					state = oricGotSync
				}
			} else {
				syncCount = 0
			}

		case oricGotSync:
			switch b {
			case oricSync:
			case oricSyncEnd:
				w.Silence(oricRate / 2)
				for i := 0; i < oricLeaderBytes; i++ {
					oricByte(w, oricSync)
				}
				oricByte(w, oricSyncEnd)
				header = header[:0]
				state = oricReadHeader
			default:
				syncCount = 0
				state = oricSearchingSync
			}

		case oricReadHeader:
			oricByte(w, b)
			header = append(header, b)
			if len(header) == oricHeaderLen {
				end := int(header[4])<<8 | int(header[5])
				start := int(header[6])<<8 | int(header[7])
				dataLength = end - start + 1
				if dataLength < 0 {
					cas.Logf("oric", "file %d: end address before start address", files)
					dataLength = 0
				}
				state = oricReadFilename
			}

		case oricReadFilename:
			oricByte(w, b)
			if b == 0x00 {
				for i := 0; i < oricNameOneBits; i++ {
					oricBit(w, true)
				}
				if dataLength == 0 {
					files++
					syncCount = 0
					state = oricSearchingSync
				} else {
					state = oricWriteData
				}
			}

		case oricWriteData:
			oricByte(w, b)
			dataLength--
			if dataLength == 0 {
				files++
				syncCount = 0
				state = oricSearchingSync
			}
		}
	}

	if state == oricWriteData {
		cas.Logf("oric", "file %d: data clamped to end of image (%d bytes short)", files, dataLength)
		files++
	}

	cas.Logf("oric", "%d files", files)

	return nil
}
