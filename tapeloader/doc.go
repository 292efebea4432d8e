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

// Package tapeloader is used to specify the tape image that is to be
// converted to a cassette.
//
// When the image is ready to be converted, the Load() function should be
// used. The Load() function handles loading of data from different sources.
// Local files, files inside zip archives and data over HTTP are supported.
// Images compressed with gzip, xz or lz4 are decompressed transparently.
//
// As well as the filename, the Loader type allows the tape format to be
// specified, if required.
//
// The simplest instance of the Loader type:
//
//	ld := tapeloader.Loader{
//		Filename: "tapes/Manic Miner.tap",
//	}
//
// It is preferred however that the NewLoader() function is used. The
// NewLoader() function will set the format field according to the format
// argument or leave it for automatic identification.
package tapeloader
