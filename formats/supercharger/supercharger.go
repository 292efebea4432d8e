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

package supercharger

import (
	"github.com/jetsetilly/gophertape/cassette"
)

const (
	rate = 44100

	// the length in samples of a single sine cycle for each bit value
	zeroCycle = 10
	oneCycle  = 15

	// the number of zero/one pairs sent before the header
	calibrationPairs = 2755
)

type supercharger struct{}

// Format is the Atari 2600 Supercharger format.
var Format cassette.Format = supercharger{}

func (supercharger) Name() string {
	return "a26"
}

func (supercharger) Description() string {
	return "Atari 2600 Supercharger fastload image"
}

func (supercharger) Extensions() []string {
	return []string{"a26"}
}

func (supercharger) Identify(img *cassette.Image) (cassette.Options, error) {
	if _, err := parseBlocks(img, nil); err != nil {
		return cassette.Options{}, err
	}
	return cassette.Mono16(rate), nil
}

func putBit(w *cassette.Wave, bit bool) {
	if bit {
		w.PutSine(oneCycle)
	} else {
		w.PutSine(zeroCycle)
	}
}

func putByte(w *cassette.Wave, b byte) {
	cassette.Framing{MSBFirst: true}.Put(b, func(bit bool) {
		putBit(w, bit)
	})
}

// one second of zero cycles. the tone clears the BIOS of any previous partial
// load.
func putClearingTone(w *cassette.Wave) {
	for i := 0; i < rate/zeroCycle; i++ {
		w.PutSine(zeroCycle)
	}
}

func putBlock(w *cassette.Wave, b block) {
	putClearingTone(w)

	for i := 0; i < calibrationPairs; i++ {
		putBit(w, false)
		putBit(w, true)
	}

	// end of calibration
	putBit(w, false)
	putBit(w, false)

	for _, v := range b.header {
		putByte(w, v)
	}

	for i := 0; i < b.numPages; i++ {
		putByte(w, b.pageTable[i])
		putByte(w, b.checksums[i])
		for _, v := range b.page(i) {
			putByte(w, v)
		}
	}

	putClearingTone(w)
}

func (supercharger) Load(img *cassette.Image, cas *cassette.Cassette) error {
	blocks, err := parseBlocks(img, cas)
	if err != nil {
		return err
	}

	w := &cassette.Wave{}
	for _, b := range blocks {
		putBlock(w, b)
	}

	return w.Deliver(cas)
}
