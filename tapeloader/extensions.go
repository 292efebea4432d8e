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

package tapeloader

import (
	"path/filepath"
	"slices"
	"strings"

	"github.com/jetsetilly/gophertape/archivefs"
	"github.com/jetsetilly/gophertape/formats"
)

// list of file extensions for the supported compression types. the
// extension appears after the extension of the tape format, eg. "tape.uef.gz"
var CompressionExtensions = [...]string{".gz", ".xz", ".lz4"}

// FileExtensions is the list of file extensions that are recognised by the
// tapeloader package. The extensions of compressed images and archives are not
// included.
var FileExtensions = formats.Extensions()

// splitExt returns the extension of the tape format and the extension of any
// compression. both extensions are lower case and include the leading
// period.
func splitExt(filename string) (string, string) {
	filename = strings.ToLower(filename)
	ext := filepath.Ext(filename)
	if slices.Contains(CompressionExtensions[:], ext) {
		inner := filepath.Ext(strings.TrimSuffix(filename, ext))
		return inner, ext
	}
	return ext, ""
}

// Recognised returns true if the filename has the extension of a supported
// tape format. The extension can be followed by the extension of a supported
// compression type.
func Recognised(filename string) bool {
	ext, _ := splitExt(filename)
	return slices.Contains(FileExtensions, strings.TrimPrefix(ext, "."))
}

// IsArchive returns true if the filename is of a supported archive type, in
// which case Load() will search the archive for the first recognised file.
func IsArchive(filename string) bool {
	return archivefs.IsArchive(filename)
}
