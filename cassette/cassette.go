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
	"fmt"
	"math"

	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/logger"
)

// Cassette receives the waveform produced by a format. Samples are stored for
// each channel at the rate given by the Options the cassette was created with.
type Cassette struct {
	env      *environment.Environment
	opts     Options
	channels [][]int16
}

// NewCassette is the preferred method of initialisation for the Cassette
// type. The env argument can be nil.
func NewCassette(env *environment.Environment, opts Options) (*Cassette, error) {
	if err := opts.Valid(); err != nil {
		return nil, err
	}
	return &Cassette{
		env:      env,
		opts:     opts,
		channels: make([][]int16, opts.Channels),
	}, nil
}

func (cas *Cassette) String() string {
	return fmt.Sprintf("%s %.2fs", cas.opts, cas.Duration())
}

// Options returns the options the cassette was created with.
func (cas *Cassette) Options() Options {
	return cas.opts
}

// Env returns the environment the cassette was created with. Can be nil.
func (cas *Cassette) Env() *environment.Environment {
	return cas.env
}

// PutSamples places the samples on the channel at startTime (in seconds).
// The samples are stretched or squeezed to fill duration (in seconds) using
// the nearest sample. Samples already on the channel are overwritten.
//
// The duration should be len(samples) divided by the sample rate. A caller
// that passes an inconsistent duration gets a stretched or truncated
// waveform, not an error.
func (cas *Cassette) PutSamples(channel int, startTime float64, duration float64, samples []int16) error {
	if channel < 0 || channel >= len(cas.channels) {
		return fmt.Errorf("cassette: no channel %d", channel)
	}
	if startTime < 0 || duration < 0 {
		return fmt.Errorf("cassette: negative time")
	}

	rate := float64(cas.opts.SampleRate)
	start := int(math.Round(startTime * rate))
	count := int(math.Round(duration * rate))

	if count == 0 || len(samples) == 0 {
		return nil
	}

	ch := cas.channels[channel]
	if len(ch) < start+count {
		ch = append(ch, make([]int16, start+count-len(ch))...)
	}

	if count == len(samples) {
		copy(ch[start:], samples)
	} else {
		for i := 0; i < count; i++ {
			ch[start+i] = samples[i*len(samples)/count]
		}
	}

	cas.channels[channel] = ch

	return nil
}

// Samples returns the samples on the channel. The returned slice must not be
// modified.
func (cas *Cassette) Samples(channel int) []int16 {
	if channel < 0 || channel >= len(cas.channels) {
		return nil
	}
	return cas.channels[channel]
}

// Len returns the number of samples on the longest channel.
func (cas *Cassette) Len() int {
	var n int
	for _, ch := range cas.channels {
		n = max(n, len(ch))
	}
	return n
}

// Duration returns the length of the cassette in seconds.
func (cas *Cassette) Duration() float64 {
	return float64(cas.Len()) / float64(cas.opts.SampleRate)
}

// Log a message with the cassette environment's permission.
func (cas *Cassette) Log(tag string, detail any) {
	logger.Log(cas.env, tag, detail)
}

// Logf a message with the cassette environment's permission.
func (cas *Cassette) Logf(tag string, pattern string, args ...any) {
	logger.Logf(cas.env, tag, pattern, args...)
}
