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
	cgenieRate        = 4800
	cgenieMagic       = "Colour Genie - Virtual Tape File"
	cgenieLeaderByte  = 0xaa
	cgenieSyncByte    = 0x66
	cgenieLeaderBytes = 256
)

type cgenieState int

const (
	cgenieHeader cgenieState = iota
	cgenieLeader
	cgenieSync
	cgenieData
)

type cgenie struct {
	descriptor
}

// ColourGenie is the EACA Colour Genie CAS format. The image may begin with a
// text header which is skipped. The leader in the image is replaced with a
// leader of standard length.
var ColourGenie cassette.Format = cgenie{
	descriptor{
		name:        "cgenie",
		description: "EACA Colour Genie tape image",
		extensions:  []string{"cas"},
	},
}

// scan returns the offset of the first byte after the sync byte.
func (f cgenie) scan(img *cassette.Image) (int, error) {
	data := img.Bytes()
	state := cgenieHeader

	for pos := 0; pos < len(data); {
		switch state {
		case cgenieHeader:
			if bytes.HasPrefix(data, []byte(cgenieMagic)) {
				n := bytes.IndexByte(data, 0x00)
				if n < 0 {
					return 0, curated.Errorf(cassette.InvalidImage, "cgenie: unterminated header")
				}
				pos = n + 1
			}
			state = cgenieLeader

		case cgenieLeader:
			if data[pos] == cgenieLeaderByte {
				pos++
			} else {
				state = cgenieSync
			}

		case cgenieSync:
			if data[pos] != cgenieSyncByte {
				return 0, curated.Errorf(cassette.InvalidImage, "cgenie: no sync byte")
			}
			pos++
			state = cgenieData

		case cgenieData:
			return pos, nil
		}
	}

	if state == cgenieData {
		return len(data), nil
	}

	return 0, curated.Errorf(cassette.InvalidImage, "cgenie: no sync byte")
}

func (f cgenie) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() == 0 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "cgenie: empty image")
	}
	if img.Byte(0) != cgenieLeaderByte && img.Byte(0) != cgenieSyncByte && !img.HasMagic(cgenieMagic) {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "cgenie: no leader")
	}
	if _, err := f.scan(img); err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(cgenieRate), nil
}

// each bit is a clock pulse of one high and one low sample followed by the
// data: high then low for 1 and two low samples for 0.
func cgenieByte(w *cassette.Wave, b byte) {
	for i := 7; i >= 0; i-- {
		w.Put(1, cassette.High)
		w.Put(1, cassette.Low)
		if b&(1<<i) != 0 {
			w.Put(1, cassette.High)
			w.Put(1, cassette.Low)
		} else {
			w.Put(2, cassette.Low)
		}
	}
}

func (f cgenie) Load(img *cassette.Image, cas *cassette.Cassette) error {
	pos, err := f.scan(img)
	if err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: cgenieRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			for i := 0; i < cgenieLeaderBytes; i++ {
				cgenieByte(w, cgenieLeaderByte)
			}
			cgenieByte(w, cgenieSyncByte)
			for _, b := range img.Bytes()[pos:] {
				cgenieByte(w, b)
			}
			return nil
		},
	}

	return filler.Load(img, cas)
}
