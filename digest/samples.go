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

package digest

import (
	"crypto/sha1"
	"fmt"

	"github.com/jetsetilly/gophertape/cassette"
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const samplesBufferLength = 1024 + sha1.Size

// to allow us to create digests on waveforms longer than samplesBufferLength,
// we'll stuff the previous digest value into the first part of the buffer
// array and make sure we include it when we create the next digest value
const samplesBufferStart = sha1.Size

// Samples implements the Digest interface for a stream of 16bit samples.
type Samples struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
}

// NewSamples is the preferred method of initialisation for the Samples type.
func NewSamples() *Samples {
	dig := &Samples{}
	dig.buffer = make([]uint8, samplesBufferLength)
	dig.bufferCt = samplesBufferStart
	return dig
}

// Hash implements the Digest interface. Any buffered samples are flushed
// first.
func (dig *Samples) Hash() string {
	if dig.bufferCt > samplesBufferStart {
		dig.flush()
	}
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements the Digest interface.
func (dig *Samples) ResetDigest() {
	for i := range dig.digest {
		dig.digest[i] = 0
	}
	for i := range dig.buffer {
		dig.buffer[i] = 0
	}
	dig.bufferCt = samplesBufferStart
}

func (dig *Samples) add(v uint8) {
	dig.buffer[dig.bufferCt] = v
	dig.bufferCt++
	if dig.bufferCt >= samplesBufferLength {
		dig.flush()
	}
}

// Write adds the samples to the digest. Samples are added in little-endian
// byte order.
func (dig *Samples) Write(samples []int16) {
	for _, s := range samples {
		dig.add(uint8(s))
		dig.add(uint8(uint16(s) >> 8))
	}
}

func (dig *Samples) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = samplesBufferStart
}

// Cassette returns the hash of every channel in the cassette along with the
// cassette options.
func Cassette(cas *cassette.Cassette) string {
	dig := NewSamples()
	opts := cas.Options()
	for ch := 0; ch < opts.Channels; ch++ {
		dig.Write(cas.Samples(ch))
	}

	// the sample rate is part of the waveform
	rate := uint16(opts.SampleRate)
	dig.Write([]int16{int16(rate), int16(opts.SampleRate >> 16)})

	return dig.Hash()
}
