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

// Package cassette defines the contract between a tape image format and the
// cassette that receives the transcoded waveform.
//
// A tape image is presented to a format as an Image. The format's Identify()
// function sniffs the image and returns the Options of the waveform it will
// produce. The Load() function then transcodes the image and delivers the
// waveform to a Cassette with the PutSamples() function.
//
// The Open() function performs both steps for a single format:
//
//	img := cassette.NewImage("manic.tap", data)
//	cas, err := cassette.Open(env, img, format)
//
// Errors returned by a format are curated errors. An image that is malformed,
// too short or that has the wrong magic number is an InvalidImage error. An
// image that is recognised but which uses a parameter the format does not
// handle is an Unsupported error.
//
//	if curated.Is(err, cassette.InvalidImage) {
//		...
//	}
//
// The package also contains the toolkit used by the formats to build a
// waveform: the Wave type, Kansas City style Modulation and Framing, the
// Filler type for formats that produce a single waveform with leading and
// trailing silence, and the PulseWriter for formats that are timed by the
// clock of the target machine.
package cassette
