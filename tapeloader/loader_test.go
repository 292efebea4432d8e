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

package tapeloader_test

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/tapeloader"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

var tapeData = []byte{0x01, 0x02, 0x03}

// the number of samples produced by the rk20 format for tapeData. a byte is
// eight bits of two 20 sample halves and the data is surrounded by 256 bytes
// of padding at either end and a sync byte
const tapeSamples = (256 + 1 + 3 + 256) * 8 * 2 * 20

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, data, 0o644))
	return fn
}

func compress(t *testing.T, comp string, data []byte) []byte {
	t.Helper()

	var b bytes.Buffer
	switch comp {
	case "gz":
		w := gzip.NewWriter(&b)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "xz":
		w, err := xz.NewWriter(&b)
		require.NoError(t, err)
		_, err = w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "lz4":
		w := lz4.NewWriter(&b)
		_, err := w.Write(data)
		require.NoError(t, err)
		require.NoError(t, w.Close())
	}
	return b.Bytes()
}

func TestNewLoader(t *testing.T) {
	ld := tapeloader.NewLoader("tapes/game.rk", "")
	assert.Equal(t, "AUTO", ld.Format)
	assert.Equal(t, "game", ld.ShortName())

	ld = tapeloader.NewLoader("tapes/game.uef.gz", " uef ")
	assert.Equal(t, "uef", ld.Format)
	assert.Equal(t, "game", ld.ShortName())

	ld = tapeloader.NewLoader("tapes/game.tap", "auto")
	assert.Equal(t, "AUTO", ld.Format)
}

func TestRecognised(t *testing.T) {
	assert.True(t, tapeloader.Recognised("game.UEF"))
	assert.True(t, tapeloader.Recognised("game.uef.gz"))
	assert.True(t, tapeloader.Recognised("game.cas.lz4"))
	assert.False(t, tapeloader.Recognised("game.txt"))
	assert.False(t, tapeloader.Recognised("game.gz"))
	assert.Contains(t, tapeloader.FileExtensions, "a26")
	assert.NotContains(t, tapeloader.FileExtensions, "gz")
}

func TestLoadFile(t *testing.T) {
	fn := writeFile(t, "game.rk", tapeData)

	ld := tapeloader.NewLoader(fn, "")
	assert.False(t, ld.HasLoaded())
	require.NoError(t, ld.Load())
	assert.True(t, ld.HasLoaded())
	assert.Equal(t, tapeData, ld.Data)
	assert.Equal(t, fmt.Sprintf("%x", sha1.Sum(tapeData)), ld.Hash)

	cas, f, err := ld.Open(nil)
	require.NoError(t, err)
	assert.Equal(t, "rk20", f.Name())
	assert.Equal(t, tapeSamples, cas.Len())
	assert.Equal(t, 44100, cas.Options().SampleRate)
}

func TestLoadCompressed(t *testing.T) {
	for _, comp := range []string{"gz", "xz", "lz4"} {
		fn := writeFile(t, "game.rk."+comp, compress(t, comp, tapeData))

		ld := tapeloader.NewLoader(fn, "")
		require.NoError(t, ld.Load(), comp)
		assert.Equal(t, tapeData, ld.Data, comp)

		cas, _, err := ld.Open(nil)
		require.NoError(t, err, comp)
		assert.Equal(t, tapeSamples, cas.Len(), comp)
	}

	// corrupt compressed data
	fn := writeFile(t, "game.rk.gz", tapeData)
	ld := tapeloader.NewLoader(fn, "")
	assert.Error(t, ld.Load())
}

func TestLoadArchive(t *testing.T) {
	var b bytes.Buffer
	zw := zip.NewWriter(&b)
	for _, n := range []string{"readme.txt", "game.rk"} {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write(tapeData)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	fn := writeFile(t, "tapes.zip", b.Bytes())

	// the archive is searched for the first recognised file
	ld := tapeloader.NewLoader(fn, "")
	require.NoError(t, ld.Load())
	assert.Equal(t, filepath.Join(fn, "game.rk"), ld.Filename)
	assert.Equal(t, tapeData, ld.Data)

	// or the file inside the archive can be named
	ld = tapeloader.NewLoader(filepath.Join(fn, "game.rk"), "")
	require.NoError(t, ld.Load())
	assert.Equal(t, tapeData, ld.Data)
}

func TestLoadHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/game.rk" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(tapeData)
	}))
	defer srv.Close()

	ld := tapeloader.NewLoader(srv.URL+"/game.rk", "")
	require.NoError(t, ld.Load())
	assert.Equal(t, tapeData, ld.Data)

	ld = tapeloader.NewLoader(srv.URL+"/missing.rk", "")
	assert.Error(t, ld.Load())

	ld = tapeloader.NewLoader("gopher://example.com/game.rk", "")
	assert.Error(t, ld.Load())
}

func TestHash(t *testing.T) {
	fn := writeFile(t, "game.rk", tapeData)

	ld := tapeloader.NewLoader(fn, "")
	ld.Hash = fmt.Sprintf("%x", sha1.Sum(tapeData))
	assert.NoError(t, ld.Load())

	ld = tapeloader.NewLoader(fn, "")
	ld.Hash = "0000"
	assert.Error(t, ld.Load())
	assert.False(t, ld.HasLoaded())
}

func TestFormats(t *testing.T) {
	// an explicit format overrides the extension
	fn := writeFile(t, "game.bin", tapeData)
	ld := tapeloader.NewLoader(fn, "rk60")
	cas, f, err := ld.Open(nil)
	require.NoError(t, err)
	assert.Equal(t, "rk60", f.Name())
	assert.Equal(t, tapeSamples*3, cas.Len())

	// unknown extension
	ld = tapeloader.NewLoader(fn, "")
	_, _, err = ld.Open(nil)
	assert.True(t, curated.Is(err, cassette.Unsupported))

	// unknown format name
	ld = tapeloader.NewLoader(fn, "foo")
	_, err = ld.Formats()
	assert.Error(t, err)

	// shared extensions give more than one candidate
	ld = tapeloader.NewLoader("game.tap", "")
	fs, err := ld.Formats()
	require.NoError(t, err)
	assert.Greater(t, len(fs), 1)
}
