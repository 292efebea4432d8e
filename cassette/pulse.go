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
	"github.com/arl/blip"
)

// the amplitude of the pulses produced by PulseWriter. less than the maximum
// so that the band-limited steps do not clip
const pulseAmplitude = 0x4000

// PulseWriter renders pulses measured in the clock cycles of the target
// machine into samples at the cassette rate. The steps between levels are
// band-limited.
type PulseWriter struct {
	bl *blip.Buffer

	// clocks in each frame of the blip buffer
	frame int

	// clock time in the current frame
	time int

	// polarity of the next pulse
	polarity int32

	// current amplitude of the output
	amp int32

	wave Wave
	temp []int16
}

// NewPulseWriter is the preferred method of initialisation for the
// PulseWriter type.
func NewPulseWriter(clockRate float64, sampleRate int) *PulseWriter {
	pw := &PulseWriter{
		bl:       blip.NewBuffer(sampleRate / 5),
		frame:    int(clockRate / 20),
		polarity: 1,
		temp:     make([]int16, 512),
	}
	pw.bl.SetRates(clockRate, float64(sampleRate))
	return pw
}

// set the output level at the current time.
func (pw *PulseWriter) level(v int32) {
	delta := v - pw.amp
	if delta != 0 {
		pw.bl.AddDelta(uint64(pw.time), delta)
		pw.amp = v
	}
}

// advance the clock, ending blip frames as required.
func (pw *PulseWriter) advance(clocks int) {
	pw.time += clocks
	for pw.time >= pw.frame {
		pw.bl.EndFrame(pw.frame)
		pw.time -= pw.frame
		pw.drain()
	}
}

// move samples from the blip buffer to the wave.
func (pw *PulseWriter) drain() {
	for pw.bl.SamplesAvailable() > 0 {
		n := pw.bl.ReadSamples(pw.temp, len(pw.temp), blip.Mono)
		pw.wave.PutTable(pw.temp[:n])
	}
}

// Pulse emits a single pulse of the specified length in clocks. The polarity
// of the pulse alternates.
func (pw *PulseWriter) Pulse(clocks int) {
	pw.level(pw.polarity * pulseAmplitude)
	pw.polarity = -pw.polarity
	pw.advance(clocks)
}

// Pulses emits count pulses of the specified length.
func (pw *PulseWriter) Pulses(clocks int, count int) {
	for ; count > 0; count-- {
		pw.Pulse(clocks)
	}
}

// Pause emits silence for the specified length in clocks. The pulse following
// the pause is positive.
func (pw *PulseWriter) Pause(clocks int) {
	pw.level(0)
	pw.polarity = 1
	pw.advance(clocks)
}

// Wave ends the current frame and returns the wave. The PulseWriter should not
// be used after this.
func (pw *PulseWriter) Wave() *Wave {
	if pw.time > 0 {
		pw.bl.EndFrame(pw.time)
		pw.time = 0
	}
	pw.drain()
	return &pw.wave
}
