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

// Package formats contains the tape image formats. Every format implements
// the cassette.Format interface and is listed in the Registry.
//
// Formats that share a file extension are tried in the order they appear in
// the Registry. The Identify() function returns the first format that accepts
// the image:
//
//	f, opts, err := formats.Identify(img, "tap")
//
// The Atari 2600 Supercharger format and the sound file formats are in the
// supercharger and soundfile sub-packages.
package formats
