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

// Package wavwriter allows writing of cassette waveforms to disk as a WAV
// file. Note that the samples are buffered in memory in their entirety, and
// written to disk when the writer is closed.
package wavwriter

import (
	"os"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/logger"
	"github.com/youpy/go-wav"
)

// WavWriter buffers samples for a single channel WAV file.
type WavWriter struct {
	filename string
	rate     int
	buffer   []wav.Sample
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string, rate int) (*WavWriter, error) {
	if rate <= 0 {
		return nil, curated.Errorf("wavwriter: %v", "bad sample rate")
	}

	aw := &WavWriter{
		filename: filename,
		rate:     rate,
		buffer:   make([]wav.Sample, 0),
	}

	return aw, nil
}

// Add appends samples to the buffer.
func (aw *WavWriter) Add(samples []int16) {
	for _, s := range samples {
		w := wav.Sample{}
		w.Values[0] = int(s)
		aw.buffer = append(aw.buffer, w)
	}
}

// Len returns the number of buffered samples.
func (aw *WavWriter) Len() int {
	return len(aw.buffer)
}

// Close writes the buffered samples to disk.
func (aw *WavWriter) Close() (rerr error) {
	f, err := os.Create(aw.filename)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}
	defer func() {
		err := f.Close()
		if err != nil {
			rerr = curated.Errorf("wavwriter: %v", err)
		}
	}()

	enc := wav.NewWriter(f, uint32(len(aw.buffer)), 1, uint32(aw.rate), 16)
	if enc == nil {
		return curated.Errorf("wavwriter: %v", "bad parameters for wav encoding")
	}

	logger.Logf(logger.Allow, "wavwriter", "writing %d samples to %s", len(aw.buffer), aw.filename)
	err = enc.WriteSamples(aw.buffer)
	if err != nil {
		return curated.Errorf("wavwriter: %v", err)
	}

	return nil
}

// Write is a convenience function that writes the first channel of a cassette
// to a WAV file.
func Write(filename string, cas *cassette.Cassette) error {
	aw, err := New(filename, cas.Options().SampleRate)
	if err != nil {
		return err
	}
	aw.Add(cas.Samples(0))
	return aw.Close()
}
