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
	"path/filepath"
	"slices"
	"strings"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

const zx81Rate = 44100

// the E_LINE system variable gives the end of the program. the image of a
// ZX81 program begins at 0x4009 and the image of a ZX80 program at 0x4000
const (
	zx81ELine  = 0x0b
	zx81Origin = 0x4009
	zx80ELine  = 0x04
	zx80Origin = 0x4000
)

// name to use when the image has no filename
const zx81DefaultName = "TAPE"

// a pulse is 8 high and 8 low samples. a bit is a number of pulses followed
// by silence
const (
	zx81PulseHalf  = 8
	zx81BitSilence = 56
	zx81ZeroPulses = 4
	zx81OnePulses  = 9
)

func zx81Bit(w *cassette.Wave, bit bool) {
	n := zx81ZeroPulses
	if bit {
		n = zx81OnePulses
	}
	for i := 0; i < n; i++ {
		w.Put(zx81PulseHalf, cassette.High)
		w.Put(zx81PulseHalf, cassette.Low)
	}
	w.Silence(zx81BitSilence)
}

func zx81Byte(w *cassette.Wave, b byte) {
	cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
		zx81Bit(w, bit)
	})
}

// zx81Name converts the name to the ZX81 character set. The last character
// has bit 7 set.
func zx81Name(name string) []byte {
	var s []byte
	for _, r := range strings.ToUpper(name) {
		switch {
		case r == ' ':
			s = append(s, 0x00)
		case r >= '0' && r <= '9':
			s = append(s, byte(r-'0')+0x1c)
		case r >= 'A' && r <= 'Z':
			s = append(s, byte(r-'A')+0x26)
		case r == '.':
			s = append(s, 0x1b)
		case r == '-':
			s = append(s, 0x16)
		default:
			s = append(s, 0x0f)
		}
	}
	if len(s) > 0 {
		s[len(s)-1] |= 0x80
	}
	return s
}

// zx81 is shared by the ZX81 and ZX80 formats.
type zx81 struct {
	descriptor
	eline   int
	origin  int
	hasName bool
}

// ZX81 is the Sinclair ZX81 P format. The file name, taken from the name of
// the image, is sent before the data.
var ZX81 cassette.Format = zx81{
	descriptor: descriptor{
		name:        "zx81",
		description: "Sinclair ZX81 program image",
		extensions:  []string{"p", "81"},
	},
	eline:   zx81ELine,
	origin:  zx81Origin,
	hasName: true,
}

// ZX80 is the Sinclair ZX80 O format.
var ZX80 cassette.Format = zx81{
	descriptor: descriptor{
		name:        "zx80",
		description: "Sinclair ZX80 program image",
		extensions:  []string{"o", "80"},
	},
	eline:  zx80ELine,
	origin: zx80Origin,
}

// tapeName is the base of the image name. The extension is removed only if it
// is one of the extensions of the format.
func (f zx81) tapeName(pth string) string {
	name := filepath.Base(pth)
	if pth == "" || name == "." {
		return ""
	}
	ext := filepath.Ext(name)
	if slices.Contains(f.extensions, strings.ToLower(strings.TrimPrefix(ext, "."))) {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

func (f zx81) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < f.eline+2 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, f.name+": too short")
	}
	return cassette.Mono16(zx81Rate), nil
}

func (f zx81) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency:      zx81Rate,
		HeaderSamples:  zx81Rate,
		TrailerSamples: zx81Rate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			if f.hasName {
				name := f.tapeName(img.Name)
				if name == "" {
					name = zx81DefaultName
				}
				for _, b := range zx81Name(name) {
					zx81Byte(w, b)
				}
			}

			length := img.LE16(f.eline) - f.origin
			if length < 0 || length > img.Size() {
				cas.Logf(f.name, "program length of %d clamped to %d", length, img.Size())
				length = img.Size()
			}

			for _, b := range img.Bytes()[:length] {
				zx81Byte(w, b)
			}

			return nil
		},
	}

	return filler.Load(img, cas)
}
