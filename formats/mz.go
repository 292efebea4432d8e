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

package formats

import (
	"math/bits"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

const (
	mzRate       = 44100
	mzHeaderLen  = 128
	mzSizeOffset = 0x12

	mzLongGap  = 22000
	mzShortGap = 11000

	// tape marks are a number of long pulses followed by the same number of
	// short pulses
	mzLongMark  = 40
	mzShortMark = 20

	mzSeparator = 256
)

type mz struct {
	descriptor
}

// MZ is the Sharp MZ-700/800 MZF format. The image is a 128 byte header
// followed by the program data. Both the header and the data are recorded
// twice.
var MZ cassette.Format = mz{
	descriptor{
		name:        "mz",
		description: "Sharp MZ tape image",
		extensions:  []string{"mzf", "m12", "mzt"},
	},
}

func (f mz) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < mzHeaderLen {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "mz: too short")
	}
	return cassette.Mono16(mzRate), nil
}

// a long pulse is 20 high and 22 low samples. a short pulse is 11 high and 12
// low samples.
func mzPulse(w *cassette.Wave, long bool) {
	if long {
		w.Put(20, cassette.High)
		w.Put(22, cassette.Low)
	} else {
		w.Put(11, cassette.High)
		w.Put(12, cassette.Low)
	}
}

func mzPulses(w *cassette.Wave, long bool, n int) {
	for i := 0; i < n; i++ {
		mzPulse(w, long)
	}
}

// each byte begins with a long pulse.
func mzByte(w *cassette.Wave, b byte) {
	mzPulse(w, true)
	cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
		mzPulse(w, bit)
	})
}

// mzBlock sends the data followed by the checksum, which is the number of one
// bits in the data.
func mzBlock(w *cassette.Wave, data []byte) {
	var sum int
	for _, b := range data {
		sum += bits.OnesCount8(b)
		mzByte(w, b)
	}
	mzByte(w, byte(sum>>8))
	mzByte(w, byte(sum))
}

func (f mz) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if _, err := f.Identify(img); err != nil {
		return err
	}

	filler := cassette.Filler{
		Frequency: mzRate,
		Fill: func(img *cassette.Image, w *cassette.Wave) error {
			header := img.Bytes()[:mzHeaderLen]
			data := img.Bytes()[mzHeaderLen:]

			size := img.LE16(mzSizeOffset)
			if size > len(data) {
				cas.Logf("mz", "data size of %d clamped to %d", size, len(data))
				size = len(data)
			}
			data = data[:size]

			// header
			mzPulses(w, false, mzLongGap)
			mzPulses(w, true, mzLongMark)
			mzPulses(w, false, mzLongMark)
			mzPulse(w, true)
			mzBlock(w, header)
			mzPulse(w, true)
			mzPulses(w, false, mzSeparator)
			mzBlock(w, header)
			mzPulse(w, true)

			// data
			mzPulses(w, false, mzShortGap)
			mzPulses(w, true, mzShortMark)
			mzPulses(w, false, mzShortMark)
			mzPulse(w, true)
			mzBlock(w, data)
			mzPulse(w, true)
			mzPulses(w, false, mzSeparator)
			mzBlock(w, data)
			mzPulse(w, true)

			return nil
		},
	}

	return filler.Load(img, cas)
}
