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

// Package resampler converts the waveform in a cassette to a different sample
// rate. The conversion is band-limited so that the square waves produced by
// most formats do not alias at the new rate.
package resampler

import (
	"github.com/arl/blip"
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

// the input samples in each frame of the blip buffer is a twentieth of the
// input rate. the blip buffer is large enough for four frames of output
const (
	framesPerSecond = 20
	bufferFrames    = 4
)

// Resample returns a new cassette with every channel of the original cassette
// converted to the new rate. If the new rate is the same as the rate of the
// original cassette then the original cassette is returned.
func Resample(cas *cassette.Cassette, rate int) (*cassette.Cassette, error) {
	opts := cas.Options()
	if rate == opts.SampleRate {
		return cas, nil
	}

	if rate <= 0 {
		return nil, curated.Errorf("resampler: bad rate (%d)", rate)
	}

	from := opts.SampleRate
	opts.SampleRate = rate

	out, err := cassette.NewCassette(cas.Env(), opts)
	if err != nil {
		return nil, curated.Errorf("resampler: %v", err)
	}

	for ch := 0; ch < opts.Channels; ch++ {
		samples := Samples(cas.Samples(ch), from, rate)
		err = out.PutSamples(ch, 0, float64(len(samples))/float64(rate), samples)
		if err != nil {
			return nil, curated.Errorf("resampler: %v", err)
		}
	}

	cas.Logf("resampler", "%dHz to %dHz", from, rate)

	return out, nil
}

// Samples converts samples at one rate to another rate.
func Samples(samples []int16, from int, to int) []int16 {
	if from == to || len(samples) == 0 {
		return samples
	}

	frame := from / framesPerSecond
	if frame < 1 {
		frame = 1
	}

	bl := blip.NewBuffer((to/framesPerSecond + 1) * bufferFrames)
	bl.SetRates(float64(from), float64(to))

	out := make([]int16, 0, int64(len(samples))*int64(to)/int64(from)+1)
	temp := make([]int16, 512)

	drain := func() {
		for bl.SamplesAvailable() > 0 {
			n := bl.ReadSamples(temp, len(temp), blip.Mono)
			out = append(out, temp[:n]...)
		}
	}

	var amp int32
	var t int
	for _, s := range samples {
		delta := int32(s) - amp
		if delta != 0 {
			bl.AddDelta(uint64(t), delta)
			amp = int32(s)
		}

		t++
		if t >= frame {
			bl.EndFrame(frame)
			t = 0
			drain()
		}
	}

	if t > 0 {
		bl.EndFrame(t)
	}
	drain()

	return out
}
