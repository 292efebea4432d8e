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

package soundfile

import (
	"github.com/jetsetilly/gophertape/cassette"
)

// decoder returns the sample rate of the recording and the samples of the
// left channel.
type decoder func(img *cassette.Image) (int, []int16, error)

// sniffer returns the sample rate of the recording without decoding the
// samples.
type sniffer func(img *cassette.Image) (int, error)

type soundfile struct {
	name        string
	description string
	extensions  []string

	sniff  sniffer
	decode decoder
}

func (f soundfile) Name() string {
	return f.name
}

func (f soundfile) Description() string {
	return f.description
}

func (f soundfile) Extensions() []string {
	return f.extensions
}

func (f soundfile) Identify(img *cassette.Image) (cassette.Options, error) {
	rate, err := f.sniff(img)
	if err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(rate), nil
}

func (f soundfile) Load(img *cassette.Image, cas *cassette.Cassette) error {
	rate, samples, err := f.decode(img)
	if err != nil {
		return err
	}

	cas.Logf(f.name, "sample rate: %dHz", rate)
	cas.Logf(f.name, "total time: %.02fs", float64(len(samples))/float64(rate))

	w := &cassette.Wave{}
	w.PutTable(samples)
	return w.Deliver(cas)
}

// scale a signed sample of the specified bit depth to 16 bits.
func scale(v int, depth int) int16 {
	switch {
	case depth < 16:
		return int16(v << (16 - depth))
	case depth > 16:
		return int16(v >> (depth - 16))
	}
	return int16(v)
}
