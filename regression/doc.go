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

// Package regression facilitates the regression testing of the tape formats.
// By adding test results to a database, the tests can be rerun automatically
// and checked for consistancy.
//
// Two types of digest are supported. The samples digest converts the tape
// image and hashes the resulting waveform. The log digest converts the tape
// image and hashes the log entries that were made during the conversion. The
// log digest is useful for making sure that malformed images continue to be
// reported in the same way.
//
// The output rate of the conversion is stored with the entry. A rate of zero
// means the native rate of the format is used. Any other rate causes the
// cassette to be resampled before the digest is taken.
//
// The format used by the tape image is fixed when the entry is added. This
// means that the test will fail if a change to the registry causes the image
// to be recognised as a different format.
package regression
