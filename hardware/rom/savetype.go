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
	"fmt"
	"strings"
)

// SaveType is the kind of battery backed storage used by the cartridge.
type SaveType int

// List of valid SaveType values.
const (
	SaveUnknown SaveType = iota
	SaveEEP4K
	SaveEEP16K
	SaveSRAM
	SaveFlash
)

func (s SaveType) String() string {
	switch s {
	case SaveEEP4K:
		return "EEP4K"
	case SaveEEP16K:
		return "EEP16K"
	case SaveSRAM:
		return "SRAM"
	case SaveFlash:
		return "FLASH"
	}
	return "AUTO"
}

// Size returns the size of the save data in bytes. Zero if the type is
// unknown.
func (s SaveType) Size() int {
	switch s {
	case SaveEEP4K:
		return 4 * 1024
	case SaveEEP16K:
		return 16 * 1024
	case SaveSRAM:
		return 32 * 1024
	case SaveFlash:
		return 128 * 1024
	}
	return 0
}

// Extension returns the file extension used for the save data, including the
// leading period. Empty if the type is unknown.
func (s SaveType) Extension() string {
	switch s {
	case SaveEEP4K, SaveEEP16K:
		return ".sav"
	case SaveSRAM:
		return ".sra"
	case SaveFlash:
		return ".fla"
	}
	return ""
}

// ParseSaveType converts a string to a SaveType. An empty string or "AUTO"
// is SaveUnknown.
func ParseSaveType(s string) (SaveType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "AUTO":
		return SaveUnknown, nil
	case "EEP4K":
		return SaveEEP4K, nil
	case "EEP16K":
		return SaveEEP16K, nil
	case "SRAM":
		return SaveSRAM, nil
	case "FLASH":
		return SaveFlash, nil
	}
	return SaveUnknown, fmt.Errorf("rom: unrecognised save type (%s)", s)
}
