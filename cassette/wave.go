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

import "math"

// Wave is an append-only buffer of samples. The zero value is ready to use.
type Wave struct {
	samples []int16

	// fractional sample carried between calls to PutCycles()
	frac float64
}

// Len returns the number of samples in the wave.
func (w *Wave) Len() int {
	return len(w.samples)
}

// Samples returns the samples in the wave. The returned slice must not be
// modified.
func (w *Wave) Samples() []int16 {
	return w.samples
}

// Put appends count samples at the specified level.
func (w *Wave) Put(count int, level int16) {
	for ; count > 0; count-- {
		w.samples = append(w.samples, level)
	}
}

// Silence appends count samples of silence.
func (w *Wave) Silence(count int) {
	w.Put(count, Silence)
}

// PutTable appends the samples in the table.
func (w *Wave) PutTable(table []int16) {
	w.samples = append(w.samples, table...)
}

// PutCycles appends cycles of a square wave at freq for the specified sample
// rate. Each cycle is a high half followed by a low half. Fractions of a
// sample are carried between calls so that long runs of cycles keep exact
// time.
func (w *Wave) PutCycles(freq float64, cycles int, rate int) {
	half := float64(rate) / (2 * freq)
	for ; cycles > 0; cycles-- {
		for _, level := range [2]int16{High, Low} {
			t := half + w.frac
			n := int(t)
			w.frac = t - float64(n)
			w.Put(n, level)
		}
	}
}

// PutSine appends a single cycle of a sine wave that is length samples long.
// The amplitude is PeakHigh.
func (w *Wave) PutSine(length int) {
	for i := 0; i < length; i++ {
		v := math.Sin(2 * math.Pi * float64(i) / float64(length))
		w.samples = append(w.samples, int16(math.Round(v*float64(PeakHigh))))
	}
}

// Deliver puts the samples of the wave onto channel zero of the cassette,
// starting at time zero. The duration is the number of samples divided by the
// cassette sample rate.
func (w *Wave) Deliver(cas *Cassette) error {
	rate := float64(cas.Options().SampleRate)
	return cas.PutSamples(0, 0, float64(len(w.samples))/rate, w.samples)
}

// PutDuration appends samples at the specified level to fill the duration (in
// seconds). Fractions of a sample are carried in the same way as PutCycles().
func (w *Wave) PutDuration(seconds float64, level int16, rate int) {
	t := seconds*float64(rate) + w.frac
	n := int(t)
	w.frac = t - float64(n)
	w.Put(n, level)
}
