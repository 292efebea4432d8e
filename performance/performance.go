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

package performance

import (
	"fmt"
	"io"
	"time"

	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/tapeloader"
)

// Check the performance of the tape conversion using the supplied tape.
//
// The tape is converted repeatedly for the specified duration. Profiling
// files will be created as defined by the Profile argument.
func Check(output io.Writer, profile Profile, ld tapeloader.Loader, env *environment.Environment, duration string) error {
	dur, err := time.ParseDuration(duration)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}
	if dur <= 0 {
		return curated.Errorf("performance: %v", "duration must be positive")
	}

	// load data before starting the clock. subsequent calls to Open() will
	// reuse the loaded data
	err = ld.Load()
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	var numConversions int
	var audio float64
	var elapsed time.Duration

	runner := func() error {
		start := time.Now()
		for time.Since(start) < dur {
			cas, _, err := ld.Open(env)
			if err != nil {
				return err
			}
			numConversions++
			audio += cas.Duration()
		}
		elapsed = time.Since(start)
		return nil
	}

	err = RunProfiler(profile, "performance", runner)
	if err != nil {
		return curated.Errorf("performance: %v", err)
	}

	output.Write([]byte(fmt.Sprintf("%d conversions in %.2f seconds (%.1fx realtime)\n",
		numConversions, elapsed.Seconds(), CalcRealtime(audio, elapsed.Seconds()))))

	return nil
}

// CalcRealtime takes the number of seconds of audio produced and the duration
// (in seconds) taken to produce it and returns how many times faster than
// realtime the conversion ran.
func CalcRealtime(audio float64, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	return audio / duration
}
