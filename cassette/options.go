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

import "fmt"

// Options describes the waveform produced by a format.
type Options struct {
	Channels      int
	BitsPerSample int
	SampleRate    int
}

// Mono16 returns the Options for a single channel of 16bit samples at the
// specified rate. All the formats in the repository produce waveforms of this
// kind.
func Mono16(rate int) Options {
	return Options{
		Channels:      1,
		BitsPerSample: 16,
		SampleRate:    rate,
	}
}

func (opts Options) String() string {
	return fmt.Sprintf("%dch %dbit %dHz", opts.Channels, opts.BitsPerSample, opts.SampleRate)
}

// Valid returns an error if the options cannot be used to create a cassette.
func (opts Options) Valid() error {
	if opts.Channels < 1 {
		return fmt.Errorf("cassette: invalid number of channels (%d)", opts.Channels)
	}
	if opts.BitsPerSample != 8 && opts.BitsPerSample != 16 {
		return fmt.Errorf("cassette: invalid bits per sample (%d)", opts.BitsPerSample)
	}
	if opts.SampleRate <= 0 {
		return fmt.Errorf("cassette: invalid sample rate (%d)", opts.SampleRate)
	}
	return nil
}
