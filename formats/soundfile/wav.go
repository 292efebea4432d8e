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

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
)

// WAV is the format for recordings stored in WAV files.
var WAV cassette.Format = soundfile{
	name:        "wav",
	description: "WAV recording of a tape",
	extensions:  []string{"wav"},
	sniff:       sniffWAV,
	decode:      decodeWAV,
}

// audio formats that can be decoded into PCM samples
const (
	wavPCM        = 0x0001
	wavExtensible = 0xfffe
)

func openWAV(img *cassette.Image) (*wav.Decoder, error) {
	dec := wav.NewDecoder(bytes.NewReader(img.Bytes()))
	if dec == nil || !dec.IsValidFile() {
		return nil, curated.Errorf(cassette.InvalidImage, "wav: not a valid wav file")
	}
	if dec.SampleRate == 0 || dec.NumChans == 0 {
		return nil, curated.Errorf(cassette.InvalidImage, "wav: missing format chunk")
	}
	if dec.WavAudioFormat != wavPCM && dec.WavAudioFormat != wavExtensible {
		return nil, curated.Errorf(cassette.Unsupported, "wav: audio format %d", dec.WavAudioFormat)
	}
	return dec, nil
}

func sniffWAV(img *cassette.Image) (int, error) {
	dec, err := openWAV(img)
	if err != nil {
		return 0, err
	}
	return int(dec.SampleRate), nil
}

func decodeWAV(img *cassette.Image) (int, []int16, error) {
	dec, err := openWAV(img)
	if err != nil {
		return 0, nil, err
	}

	// load all data at once
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return 0, nil, curated.Errorf(cassette.InvalidImage, curated.Errorf("wav: %v", err))
	}

	return int(dec.SampleRate), leftChannel(buf, int(dec.NumChans), int(dec.BitDepth)), nil
}

// copy first channel only of data stream
func leftChannel(buf *audio.IntBuffer, chans int, depth int) []int16 {
	samples := make([]int16, 0, len(buf.Data)/chans)
	for i := 0; i < len(buf.Data); i += chans {
		v := buf.Data[i]

		// eight bit samples are unsigned
		if depth == 8 {
			v -= 128
		}

		samples = append(samples, scale(v, depth))
	}
	return samples
}
