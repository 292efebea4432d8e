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
	"slices"
	"sort"
	"strings"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/formats/soundfile"
	"github.com/jetsetilly/gophertape/formats/supercharger"
)

// Registry lists every format. Formats that share an extension are tried in
// the order they appear.
var Registry = []cassette.Format{
	supercharger.Format,
	FM7,

	// tap
	Ace,
	ZXTap,
	Oric,
	SPC1000,
	X1,

	// cas
	FMSX,
	SPC1000Cas,
	ColourGenie,
	TRS80,
	CoCo,

	// ptp
	Primo,
	PMD85,

	VG5K,
	H8,
	Sorcerer,
	ZX81,
	ZX80,
	SC3000,
	UEF,
	CSW,
	GTP,
	Lviv,
	MZ,
	RK20,
	RK22,
	RK60,

	soundfile.WAV,
	soundfile.MP3,
	soundfile.FLAC,
}

// ByName returns the format with the name. The comparison is case
// insensitive.
func ByName(name string) (cassette.Format, bool) {
	for _, f := range Registry {
		if strings.EqualFold(f.Name(), name) {
			return f, true
		}
	}
	return nil, false
}

// normalise file extension by removing any leading period and converting to
// lower case.
func normalise(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// ForExtension returns the formats that are associated with the extension, in
// registry order.
func ForExtension(ext string) []cassette.Format {
	ext = normalise(ext)

	var fs []cassette.Format
	for _, f := range Registry {
		if slices.Contains(f.Extensions(), ext) {
			fs = append(fs, f)
		}
	}
	return fs
}

// Extensions returns every extension in the registry, sorted and without
// duplicates.
func Extensions() []string {
	var exts []string
	for _, f := range Registry {
		for _, e := range f.Extensions() {
			if !slices.Contains(exts, e) {
				exts = append(exts, e)
			}
		}
	}
	sort.Strings(exts)
	return exts
}

// Identify tries each format associated with the extension and returns the
// first format that accepts the image. If no format accepts the image the
// error is an Unsupported error if any format returned one, otherwise it is
// an InvalidImage error.
func Identify(img *cassette.Image, ext string) (cassette.Format, cassette.Options, error) {
	fs := ForExtension(ext)
	if len(fs) == 0 {
		return nil, cassette.Options{}, curated.Errorf(cassette.Unsupported, "no format for extension ."+normalise(ext))
	}

	return IdentifyFrom(img, fs)
}

// IdentifyFrom is the same as Identify() but with an explicit list of
// formats.
func IdentifyFrom(img *cassette.Image, fs []cassette.Format) (cassette.Format, cassette.Options, error) {
	var invalid error
	var unsupported error

	for _, f := range fs {
		opts, err := f.Identify(img)
		if err == nil {
			return f, opts, nil
		}

		if curated.Is(err, cassette.Unsupported) {
			if unsupported == nil {
				unsupported = err
			}
		} else if invalid == nil {
			invalid = err
		}
	}

	if unsupported != nil {
		return nil, cassette.Options{}, unsupported
	}
	if invalid != nil {
		return nil, cassette.Options{}, invalid
	}
	return nil, cassette.Options{}, curated.Errorf(cassette.InvalidImage, "no formats to try")
}
