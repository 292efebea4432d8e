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

package resampler_test

import (
	"testing"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/resampler"
	"github.com/jetsetilly/gophertape/test"
)

func squareWave(n int, half int) []int16 {
	samples := make([]int16, n)
	for i := range samples {
		if (i/half)%2 == 0 {
			samples[i] = 0x4000
		} else {
			samples[i] = -0x4000
		}
	}
	return samples
}

func TestSamples(t *testing.T) {
	in := squareWave(44100, 20)

	// same rate returns the input unchanged
	out := resampler.Samples(in, 44100, 44100)
	test.ExpectEquality(t, len(out), len(in))

	// the number of output samples is in proportion to the change of rate
	out = resampler.Samples(in, 44100, 22050)
	test.ExpectApproximate(t, len(out), 22050, 2)

	out = resampler.Samples(in, 44100, 48000)
	test.ExpectApproximate(t, len(out), 48000, 2)

	test.ExpectEquality(t, len(resampler.Samples(nil, 44100, 22050)), 0)
}

func TestResample(t *testing.T) {
	cas, err := cassette.NewCassette(nil, cassette.Mono16(44100))
	test.DemandSuccess(t, err)
	err = cas.PutSamples(0, 0, 1, squareWave(44100, 20))
	test.DemandSuccess(t, err)

	out, err := resampler.Resample(cas, 44100)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, out == cas)

	out, err = resampler.Resample(cas, 11025)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, out.Options().SampleRate, 11025)
	test.ExpectApproximate(t, out.Duration(), 1.0, 0.001)

	_, err = resampler.Resample(cas, -1)
	test.ExpectFailure(t, err)
}
