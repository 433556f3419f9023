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
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of the ROM header in bytes.
const HeaderSize = 0x40

// offsets into the header
const (
	crc1Offset    = 0x10
	crc2Offset    = 0x14
	nameOffset    = 0x20
	nameLength    = 20
	countryOffset = 0x3e
)

// ID identifies a ROM image.
type ID struct {
	CRC1    uint32
	CRC2    uint32
	Country uint8
}

func (id ID) String() string {
	return fmt.Sprintf("%08x-%08x-%02x", id.CRC1, id.CRC2, id.Country)
}

// IsZero returns true if the ID has not been set.
func (id ID) IsZero() bool {
	return id == ID{}
}

// IDFromHeader returns the ID for the header. The header must be in big-endian
// byte order and at least HeaderSize bytes long.
func IDFromHeader(header []byte) ID {
	return ID{
		CRC1:    binary.BigEndian.Uint32(header[crc1Offset:]),
		CRC2:    binary.BigEndian.Uint32(header[crc2Offset:]),
		Country: header[countryOffset],
	}
}

// IsPAL returns true if the country code is for a 50Hz region.
func (id ID) IsPAL() bool {
	switch id.Country {
	case 'D', 'F', 'I', 'P', 'S', 'U', 'X', 'Y':
		return true
	}
	return false
}

// RefreshRate returns the number of vertical blanks per second for the region
// of the ROM.
func (id ID) RefreshRate() int {
	if id.IsPAL() {
		return 50
	}
	return 60
}
