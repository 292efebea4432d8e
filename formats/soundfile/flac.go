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

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/mewkiz/flac"
)

// FLAC is the format for recordings stored in FLAC files.
var FLAC cassette.Format = soundfile{
	name:        "flac",
	description: "FLAC recording of a tape",
	extensions:  []string{"flac"},
	sniff:       sniffFLAC,
	decode:      decodeFLAC,
}

func openFLAC(img *cassette.Image) (*flac.Stream, error) {
	if !img.HasMagic("fLaC") {
		return nil, curated.Errorf(cassette.InvalidImage, "flac: missing signature")
	}
	stream, err := flac.New(bytes.NewReader(img.Bytes()))
	if err != nil {
		return nil, curated.Errorf(cassette.InvalidImage, curated.Errorf("flac: %v", err))
	}
	if stream.Info.SampleRate == 0 {
		return nil, curated.Errorf(cassette.InvalidImage, "flac: zero sample rate")
	}
	return stream, nil
}

func sniffFLAC(img *cassette.Image) (int, error) {
	stream, err := openFLAC(img)
	if err != nil {
		return 0, err
	}
	return int(stream.Info.SampleRate), nil
}

func decodeFLAC(img *cassette.Image) (int, []int16, error) {
	stream, err := openFLAC(img)
	if err != nil {
		return 0, nil, err
	}

	depth := int(stream.Info.BitsPerSample)

	var samples []int16
	for {
		frame, err := stream.ParseNext()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, nil, curated.Errorf(cassette.InvalidImage, curated.Errorf("flac: %v", err))
		}
		for _, v := range frame.Subframes[0].Samples {
			samples = append(samples, scale(int(v), depth))
		}
	}

	return int(stream.Info.SampleRate), samples, nil
}
