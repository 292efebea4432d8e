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

package tapeloader

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/jetsetilly/gophertape/archivefs"
	"github.com/jetsetilly/gophertape/cassette"
	"github.com/jetsetilly/gophertape/curated"
	"github.com/jetsetilly/gophertape/environment"
	"github.com/jetsetilly/gophertape/formats"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// Loader is used to specify the tape image to convert. It also permits the
// caller to specify the format of the image (if necessary. identification by
// file extension and header is pretty good).
type Loader struct {
	// filename of tape image to load. can be a URL or a path into a zip
	// archive
	Filename string

	// empty string or "AUTO" indicates automatic identification
	Format string

	// expected hash of the loaded image. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data
	//
	// in the case of compressed images the hash is of the decompressed data
	Hash string

	// copy of the loaded data, after any decompression
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
//
// The format argument will be used to set the Format field, unless the
// argument is either "AUTO" or the empty string.
func NewLoader(filename string, format string) Loader {
	ld := Loader{
		Filename: filename,
		Format:   "AUTO",
	}

	format = strings.TrimSpace(format)
	if format != "" && strings.ToUpper(format) != "AUTO" {
		ld.Format = format
	}

	return ld
}

// ShortName returns a shortened version of the Loader filename, without the
// extensions.
func (ld Loader) ShortName() string {
	name := filepath.Base(ld.Filename)
	ext, comp := splitExt(name)
	return name[:len(name)-len(ext)-len(comp)]
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the tape data. Loader filenames with a valid schema will use that
// method to load the data. Currently supported schemes are HTTP and local
// files.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"

	u, err := url.Parse(ld.Filename)
	if err == nil && len(u.Scheme) > 1 {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http":
		fallthrough
	case "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return curated.Errorf("tapeloader: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return curated.Errorf("tapeloader: %v", fmt.Sprintf("http status (%s)", resp.Status))
		}

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return curated.Errorf("tapeloader: %v", err)
		}

	case "file":
		// an archive is searched for the first recognised file
		if IsArchive(ld.Filename) {
			ld.Filename, err = archivefs.Find(ld.Filename, Recognised)
			if err != nil {
				return curated.Errorf("tapeloader: %v", err)
			}
		}

		r, _, err := archivefs.Open(ld.Filename)
		if err != nil {
			return curated.Errorf("tapeloader: %v", err)
		}
		if c, ok := r.(io.Closer); ok {
			defer c.Close()
		}

		data, err = io.ReadAll(r)
		if err != nil {
			return curated.Errorf("tapeloader: %v", err)
		}

	default:
		return curated.Errorf("tapeloader: %v", fmt.Sprintf("unsupported URL scheme (%s)", scheme))
	}

	data, err = decompress(ld.Filename, data)
	if err != nil {
		return curated.Errorf("tapeloader: %v", err)
	}

	// generate hash
	hash := fmt.Sprintf("%x", sha1.Sum(data))

	// check for hash consistency
	if ld.Hash != "" && ld.Hash != hash {
		return curated.Errorf("tapeloader: %v", "unexpected hash value")
	}

	// not generated hash
	ld.Hash = hash
	ld.Data = data

	return nil
}

// decompress data according to the compression extension of the filename.
func decompress(filename string, data []byte) ([]byte, error) {
	_, comp := splitExt(filename)

	var r io.Reader
	var err error

	switch comp {
	case ".gz":
		r, err = gzip.NewReader(bytes.NewReader(data))
	case ".xz":
		r, err = xz.NewReader(bytes.NewReader(data))
	case ".lz4":
		r = lz4.NewReader(bytes.NewReader(data))
	default:
		return data, nil
	}

	if err != nil {
		return nil, fmt.Errorf("%s: %w", comp[1:], err)
	}

	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", comp[1:], err)
	}

	return d, nil
}

// Image returns the loaded data as a cassette Image. Load() should have been
// called first.
func (ld Loader) Image() *cassette.Image {
	return cassette.NewImage(ld.ShortName(), ld.Data)
}

// Formats returns the candidate formats for the image. If the Format field
// names a format then only that format is returned. Otherwise the formats are
// chosen by file extension.
func (ld Loader) Formats() ([]cassette.Format, error) {
	if ld.Format != "AUTO" && ld.Format != "" {
		f, ok := formats.ByName(ld.Format)
		if !ok {
			return nil, curated.Errorf("tapeloader: %v", fmt.Sprintf("unknown format (%s)", ld.Format))
		}
		return []cassette.Format{f}, nil
	}

	ext, _ := splitExt(ld.Filename)
	fs := formats.ForExtension(ext)
	if len(fs) == 0 {
		return nil, curated.Errorf(cassette.Unsupported, fmt.Sprintf("no format for extension (%s)", ext))
	}

	return fs, nil
}

// Open loads the image (if it has not already been loaded), identifies the
// format and converts the image to a cassette.
func (ld *Loader) Open(env *environment.Environment) (*cassette.Cassette, cassette.Format, error) {
	err := ld.Load()
	if err != nil {
		return nil, nil, err
	}

	fs, err := ld.Formats()
	if err != nil {
		return nil, nil, err
	}

	img := ld.Image()

	f, _, err := formats.IdentifyFrom(img, fs)
	if err != nil {
		return nil, nil, err
	}

	cas, err := cassette.Open(env, img, f)
	if err != nil {
		return nil, nil, err
	}

	return cas, f, nil
}
