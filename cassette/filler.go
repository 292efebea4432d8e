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

import "github.com/jetsetilly/gophertape/curated"

// Filler is used by formats that produce a single waveform at a fixed rate,
// with silence before and after.
type Filler struct {
	// the sample rate of the waveform
	Frequency int

	// the number of samples of silence before and after the waveform
	HeaderSamples  int
	TrailerSamples int

	// Fill appends the waveform for the image
	Fill func(img *Image, w *Wave) error
}

// Identify returns mono 16bit options at the filler frequency. An empty image
// is an invalid image.
func (f Filler) Identify(img *Image) (Options, error) {
	if img.Size() == 0 {
		return Options{}, curated.Errorf(InvalidImage, "empty image")
	}
	return Mono16(f.Frequency), nil
}

// Load emits the header silence, the output of the Fill function and the
// trailer silence, and then delivers the wave to the cassette.
func (f Filler) Load(img *Image, cas *Cassette) error {
	w, err := f.Wave(img)
	if err != nil {
		return err
	}
	return w.Deliver(cas)
}

// Wave returns the complete waveform without delivering it to a cassette.
func (f Filler) Wave(img *Image) (*Wave, error) {
	if img.Size() == 0 {
		return nil, curated.Errorf(InvalidImage, "empty image")
	}

	w := &Wave{}
	w.Silence(f.HeaderSamples)
	if err := f.Fill(img, w); err != nil {
		return nil, err
	}
	w.Silence(f.TrailerSamples)

	return w, nil
}
