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

package archivefs

import (
	"path/filepath"
	"slices"
	"strings"
)

// file extensions of the supported archive types
var archiveExtensions = []string{".ZIP"}

// IsArchive returns true if the filename has the extension of a supported
// archive type.
func IsArchive(s string) bool {
	return slices.Contains(archiveExtensions, strings.ToUpper(filepath.Ext(s)))
}
