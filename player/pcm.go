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

package player

import (
	"io"
)

// pcm is an io.Reader that converts samples into signed 16bit little-endian
// bytes, with the volume applied.
type pcm struct {
	samples []int16
	volume  int
	idx     int
}

// newPCM volume is clamped to the range 0 to 100.
func newPCM(samples []int16, volume int) *pcm {
	volume = min(max(volume, 0), 100)
	return &pcm{
		samples: samples,
		volume:  volume,
	}
}

func (p *pcm) Read(b []byte) (int, error) {
	if p.idx >= len(p.samples) {
		return 0, io.EOF
	}

	n := 0
	for ; n+1 < len(b) && p.idx < len(p.samples); n += 2 {
		v := int32(p.samples[p.idx]) * int32(p.volume) / 100
		b[n] = byte(v)
		b[n+1] = byte(v >> 8)
		p.idx++
	}

	return n, nil
}
