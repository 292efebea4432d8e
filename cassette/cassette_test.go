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

package cassette_test

import (
	"testing"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/test"
)

func TestOptions(t *testing.T) {
	opts := cassette.Mono16(44100)
	test.ExpectSuccess(t, opts.Valid())
	test.ExpectEquality(t, opts.String(), "1ch 16bit 44100Hz")

	test.ExpectFailure(t, cassette.Options{Channels: 0, BitsPerSample: 16, SampleRate: 1}.Valid())
	test.ExpectFailure(t, cassette.Options{Channels: 1, BitsPerSample: 12, SampleRate: 1}.Valid())
	test.ExpectFailure(t, cassette.Mono16(0).Valid())

	_, err := cassette.NewCassette(nil, cassette.Mono16(0))
	test.ExpectFailure(t, err)
}

func TestPutSamples(t *testing.T) {
	cas, err := cassette.NewCassette(nil, cassette.Mono16(10))
	test.DemandSuccess(t, err)

	// duration agrees with the number of samples
	err = cas.PutSamples(0, 0, 0.4, []int16{1, 2, 3, 4})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cas.Len(), 4)
	test.ExpectApproximate(t, cas.Duration(), 0.4, 0.001)

	// stretched over twice the duration
	err = cas.PutSamples(0, 0.4, 0.8, []int16{1, 2, 3, 4})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cas.Len(), 12)
	s := cas.Samples(0)
	for i, v := range []int16{1, 2, 3, 4, 1, 1, 2, 2, 3, 3, 4, 4} {
		test.ExpectEquality(t, s[i], v, i)
	}

	// squeezed into half the duration and overwriting existing samples
	err = cas.PutSamples(0, 0, 0.2, []int16{5, 6, 7, 8})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cas.Len(), 12)
	test.ExpectEquality(t, cas.Samples(0)[0], int16(5))
	test.ExpectEquality(t, cas.Samples(0)[1], int16(7))
	test.ExpectEquality(t, cas.Samples(0)[2], int16(3))

	// placed after a gap
	err = cas.PutSamples(0, 2.0, 0.1, []int16{9})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, cas.Len(), 21)
	test.ExpectEquality(t, cas.Samples(0)[15], int16(0))
	test.ExpectEquality(t, cas.Samples(0)[20], int16(9))

	// bad arguments
	test.ExpectFailure(t, cas.PutSamples(1, 0, 0.1, []int16{0}))
	test.ExpectFailure(t, cas.PutSamples(0, -1, 0.1, []int16{0}))
	test.ExpectEquality(t, len(cas.Samples(1)), 0)
}

func TestImage(t *testing.T) {
	img := cassette.NewImage("test.bin", []byte{0x01, 0x02, 0x03, 0x04, 0x05})
	test.ExpectEquality(t, img.Size(), 5)
	test.ExpectEquality(t, img.LE16(0), 0x0201)
	test.ExpectEquality(t, img.BE16(0), 0x0102)
	test.ExpectEquality(t, img.LE32(1), uint32(0x05040302))

	// reads past the end of the image
	test.ExpectEquality(t, img.LE16(4), 0x0005)
	test.ExpectEquality(t, img.Byte(5), byte(0))
	test.ExpectEquality(t, img.Byte(-1), byte(0))

	buf := make([]byte, 4)
	test.ExpectEquality(t, img.Read(3, buf), 2)
	test.ExpectEquality(t, img.Read(10, buf), 0)

	test.ExpectSuccess(t, img.HasMagic("\x01\x02"))
	test.ExpectFailure(t, img.HasMagic("\x01\x02\x03\x04\x05\x06"))
	test.ExpectFailure(t, img.HasMagic("\x02"))
}

type testFormat struct {
	fail bool
}

func (testFormat) Name() string         { return "test" }
func (testFormat) Description() string  { return "test format" }
func (testFormat) Extensions() []string { return []string{"tst"} }

func (f testFormat) Identify(img *cassette.Image) (cassette.Options, error) {
	if img.Size() < 2 {
		return cassette.Options{}, curated.Errorf(cassette.InvalidImage, "too short")
	}
	return cassette.Mono16(100), nil
}

func (f testFormat) Load(img *cassette.Image, cas *cassette.Cassette) error {
	if f.fail {
		return curated.Errorf(cassette.Unsupported, "test")
	}
	var w cassette.Wave
	for _, b := range img.Bytes() {
		w.Put(int(b), cassette.High)
	}
	return w.Deliver(cas)
}

func TestOpen(t *testing.T) {
	cas, err := cassette.Open(nil, cassette.NewImage("", []byte{3, 4}), testFormat{})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, cas.Len(), 7)

	_, err = cassette.Open(nil, cassette.NewImage("", []byte{3}), testFormat{})
	test.ExpectSuccess(t, curated.Is(err, cassette.InvalidImage))

	_, err = cassette.Open(nil, cassette.NewImage("", []byte{3, 4}), testFormat{fail: true})
	test.ExpectSuccess(t, curated.Is(err, cassette.Unsupported))
}
