// This file is part of Gopher64.
//
// Gopher64 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher64 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher64.  If not, see <https://www.gnu.org/licenses/>.

package rom

import (
	"crypto/sha1"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned when the byte order of an image cannot be
// determined.
var ErrUnknownFormat = errors.New("rom: unknown image format")

// the first word of an image in each of the supported byte orders
const (
	magicZ64 = 0x80371240
	magicV64 = 0x37804012
	magicN64 = 0x40123780
)

// FileExtensions is the list of file extensions that are recognised by the
// rom package.
var FileExtensions = [...]string{".Z64", ".V64", ".N64"}

// IsROMFile returns true if the filename has one of the recognised
// extensions.
func IsROMFile(filename string) bool {
	ext := strings.ToUpper(filepath.Ext(filename))
	for _, e := range FileExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Loader is used to specify the ROM to use when opening the system.
type Loader struct {
	// filename of the image to load
	Filename string

	// type of save data used by the ROM
	SaveType SaveType

	// expected hash of the loaded image. empty string indicates that the hash
	// is unknown and need not be validated. after a load operation the value
	// will be the hash of the loaded data. the hash is always of the
	// normalised image
	Hash string

	// the loaded image in big-endian byte order
	Data []byte
}

// NewLoader is the preferred method of initialisation for the Loader type.
func NewLoader(filename string, saveType SaveType) Loader {
	return Loader{
		Filename: filename,
		SaveType: saveType,
	}
}

// ShortName returns the filename without the path or extension.
func (ld Loader) ShortName() string {
	n := filepath.Base(ld.Filename)
	return strings.TrimSuffix(n, filepath.Ext(ld.Filename))
}

// HasLoaded returns true if Load() has been successfully called.
func (ld Loader) HasLoaded() bool {
	return len(ld.Data) > 0
}

// Load the image. Filenames with a HTTP scheme are fetched, everything else
// is treated as a local file. Calling Load() on a loader that has already
// loaded is a no-op.
func (ld *Loader) Load() error {
	if len(ld.Data) > 0 {
		return nil
	}

	scheme := "file"
	if u, err := url.Parse(ld.Filename); err == nil && u.Scheme != "" {
		scheme = u.Scheme
	}

	var data []byte

	switch scheme {
	case "http", "https":
		resp, err := http.Get(ld.Filename)
		if err != nil {
			return fmt.Errorf("rom: %w", err)
		}
		defer resp.Body.Close()

		data, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("rom: %w", err)
		}

	default:
		// single letter schemes are windows drive letters
		if scheme != "file" && len(scheme) > 1 {
			return fmt.Errorf("rom: unsupported URL scheme (%s)", scheme)
		}

		var err error
		data, err = os.ReadFile(ld.Filename)
		if err != nil {
			return fmt.Errorf("rom: %w", err)
		}
	}

	if err := Normalise(data); err != nil {
		return fmt.Errorf("rom: %s: %w", ld.Filename, err)
	}

	hash := fmt.Sprintf("%x", sha1.Sum(data))
	if ld.Hash != "" && ld.Hash != hash {
		return fmt.Errorf("rom: unexpected hash value")
	}
	ld.Hash = hash
	ld.Data = data

	return nil
}

// Header returns the ROM header. Returns nil if the image has not been loaded.
func (ld Loader) Header() []byte {
	if len(ld.Data) < HeaderSize {
		return nil
	}
	return ld.Data[:HeaderSize]
}

// ID returns the identity of the loaded image. The zero ID is returned if the
// image has not been loaded.
func (ld Loader) ID() ID {
	h := ld.Header()
	if h == nil {
		return ID{}
	}
	return IDFromHeader(h)
}

// Name returns the internal name of the ROM as stored in the header.
func (ld Loader) Name() string {
	h := ld.Header()
	if h == nil {
		return ""
	}
	return strings.TrimRight(string(h[nameOffset:nameOffset+nameLength]), " \x00")
}

// ReadID returns the identity of the image in the file without loading the
// entire image.
func ReadID(filename string) (ID, error) {
	f, err := os.Open(filename)
	if err != nil {
		return ID{}, fmt.Errorf("rom: %w", err)
	}
	defer f.Close()

	h := make([]byte, HeaderSize)
	if _, err := io.ReadFull(f, h); err != nil {
		return ID{}, fmt.Errorf("rom: %s: %w", filename, ErrUnknownFormat)
	}
	if err := Normalise(h); err != nil {
		return ID{}, fmt.Errorf("rom: %s: %w", filename, err)
	}

	return IDFromHeader(h), nil
}

// Normalise converts an image to big-endian byte order in place.
func Normalise(data []byte) error {
	if len(data) < HeaderSize || len(data)%4 != 0 {
		return ErrUnknownFormat
	}

	switch binary.BigEndian.Uint32(data) {
	case magicZ64:
	case magicV64:
		for i := 0; i < len(data); i += 2 {
			data[i], data[i+1] = data[i+1], data[i]
		}
	case magicN64:
		for i := 0; i < len(data); i += 4 {
			data[i], data[i+1], data[i+2], data[i+3] = data[i+3], data[i+2], data[i+1], data[i]
		}
	default:
		return ErrUnknownFormat
	}

	return nil
}
