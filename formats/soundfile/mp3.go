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

package soundfile

import (
	"bytes"
	"errors"
	"io"

	"github.com/hajimehoshi/go-mp3"
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

// MP3 is the format for recordings stored in MP3 files.
var MP3 cassette.Format = soundfile{
	name:        "mp3",
	description: "MP3 recording of a tape",
	extensions:  []string{"mp3"},
	sniff:       sniffMP3,
	decode:      decodeMP3,
}

func openMP3(img *cassette.Image) (*mp3.Decoder, error) {
	if img.Size() == 0 {
		return nil, curated.Errorf(cassette.InvalidImage, "mp3: empty file")
	}
	dec, err := mp3.NewDecoder(bytes.NewReader(img.Bytes()))
	if err != nil {
		return nil, curated.Errorf(cassette.InvalidImage, curated.Errorf("mp3: %v", err))
	}
	return dec, nil
}

func sniffMP3(img *cassette.Image) (int, error) {
	dec, err := openMP3(img)
	if err != nil {
		return 0, err
	}
	return dec.SampleRate(), nil
}

func decodeMP3(img *cassette.Image) (int, []int16, error) {
	dec, err := openMP3(img)
	if err != nil {
		return 0, nil, err
	}

	var samples []int16

	// the decoded stream is always 16bit little endian with two channels,
	// even if the source is a single channel MP3. a sample is four bytes
	// therefore and the left channel is the first two bytes
	chunk := make([]byte, 4096)
	var pending []byte
	for {
		n, err := dec.Read(chunk)
		pending = append(pending, chunk[:n]...)

		i := 0
		for ; i+4 <= len(pending); i += 4 {
			samples = append(samples, int16(uint16(pending[i])|uint16(pending[i+1])<<8))
		}
		pending = pending[i:]

		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, nil, curated.Errorf(cassette.InvalidImage, curated.Errorf("mp3: %v", err))
		}
	}

	return dec.SampleRate(), samples, nil
}
