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

// Parity is used by Framing to add a parity bit after the data bits.
type Parity int

// List of valid Parity values.
const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
)

// Framing describes how a byte is sent as a sequence of bits. Start bits are
// zero and stop bits are one.
type Framing struct {
	StartBits int
	StopBits  int
	MSBFirst  bool
	Parity    Parity
}

// Framing for the common case of one start bit, eight data bits sent LSB
// first and two stop bits.
var Framing8N2 = Framing{StartBits: 1, StopBits: 2}

// Put sends the byte through the bit function according to the framing.
func (f Framing) Put(b byte, bit func(bool)) {
	for i := 0; i < f.StartBits; i++ {
		bit(false)
	}

	var ones int
	for i := 0; i < 8; i++ {
		var v bool
		if f.MSBFirst {
			v = b&(0x80>>i) != 0
		} else {
			v = b&(0x01<<i) != 0
		}
		if v {
			ones++
		}
		bit(v)
	}

	switch f.Parity {
	case ParityOdd:
		bit(ones&1 == 0)
	case ParityEven:
		bit(ones&1 == 1)
	}

	for i := 0; i < f.StopBits; i++ {
		bit(true)
	}
}

// Modulation is a frequency-shift keying scheme in the manner of the Kansas
// City standard. A zero bit is ZeroCycles cycles at ZeroFrequency and a one
// bit is OneCycles cycles at OneFrequency.
type Modulation struct {
	ZeroFrequency float64
	OneFrequency  float64
	ZeroCycles    int
	OneCycles     int
}

// PutBit appends a single bit to the wave.
func (m Modulation) PutBit(w *Wave, rate int, bit bool) {
	if bit {
		w.PutCycles(m.OneFrequency, m.OneCycles, rate)
	} else {
		w.PutCycles(m.ZeroFrequency, m.ZeroCycles, rate)
	}
}

// PutByte appends a byte to the wave using the specified framing.
func (m Modulation) PutByte(w *Wave, rate int, b byte, f Framing) {
	f.Put(b, func(bit bool) {
		m.PutBit(w, rate, bit)
	})
}
