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

package cassette

import (
	"encoding/binary"
	"strings"
)

// Image is the raw byte image of a tape dump. The image should not be
// modified once it has been created.
type Image struct {
	// the name of the file the image was loaded from. can be empty
	Name string

	data []byte
}

// NewImage is the preferred method of initialisation for the Image type.
func NewImage(name string, data []byte) *Image {
	return &Image{
		Name: name,
		data: data,
	}
}

func (img *Image) String() string {
	return img.Name
}

// Size returns the number of bytes in the image.
func (img *Image) Size() int {
	return len(img.data)
}

// Read copies bytes from the image, starting at offset, into buf. Returns the
// number of bytes copied, which will be less than len(buf) if the end of the
// image is reached.
func (img *Image) Read(offset int, buf []byte) int {
	if offset < 0 || offset >= len(img.data) {
		return 0
	}
	return copy(buf, img.data[offset:])
}

// Bytes returns the image data. The returned slice must not be modified.
func (img *Image) Bytes() []byte {
	return img.data
}

// Byte returns the byte at offset or zero if offset is outside the image.
func (img *Image) Byte(offset int) byte {
	if offset < 0 || offset >= len(img.data) {
		return 0
	}
	return img.data[offset]
}

// LE16 returns the little-endian 16bit value at offset. Bytes outside the
// image are read as zero.
func (img *Image) LE16(offset int) int {
	var b [2]byte
	img.Read(offset, b[:])
	return int(binary.LittleEndian.Uint16(b[:]))
}

// BE16 returns the big-endian 16bit value at offset. Bytes outside the image
// are read as zero.
func (img *Image) BE16(offset int) int {
	var b [2]byte
	img.Read(offset, b[:])
	return int(binary.BigEndian.Uint16(b[:]))
}

// LE32 returns the little-endian 32bit value at offset. Bytes outside the
// image are read as zero.
func (img *Image) LE32(offset int) uint32 {
	var b [4]byte
	img.Read(offset, b[:])
	return binary.LittleEndian.Uint32(b[:])
}

// HasMagic returns true if the image begins with the magic string.
func (img *Image) HasMagic(magic string) bool {
	return strings.HasPrefix(string(img.data), magic)
}
