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

package registers

import "fmt"

// NumTLBEntries is the number of entries in the translation lookaside buffer.
const NumTLBEntries = 32

// EntryLo bits.
const (
	TLBLoGlobal = 0x01
	TLBLoValid  = 0x02
	TLBLoDirty  = 0x04
)

// TLBEntry is a single entry in the translation lookaside buffer. The
// exported fields are the values as written by the TLBWI/TLBWR instructions.
// The remaining fields are derived from them by UpdateValue().
type TLBEntry struct {
	PageMask uint32
	Hi       uint32
	Lo0      uint32
	Lo1      uint32

	// derived values
	mask   uint32
	vpn2   uint32
	global bool
}

// Reset clears the entry. The derived values are recalculated so that the
// entry never matches a virtual address.
func (e *TLBEntry) Reset() {
	*e = TLBEntry{}
	e.UpdateValue(0, 0x80000000, 0, 0)
}

// UpdateValue sets the entry and recalculates the derived values.
func (e *TLBEntry) UpdateValue(pageMask, hi, lo1, lo0 uint32) {
	e.PageMask = pageMask
	e.Hi = hi
	e.Lo1 = lo1
	e.Lo0 = lo0

	e.mask = pageMask | 0x1fff
	e.vpn2 = hi &^ e.mask
	e.global = lo0&lo1&TLBLoGlobal == TLBLoGlobal
}

// Defined returns true if either half of the entry is valid.
func (e *TLBEntry) Defined() bool {
	return e.Lo0&TLBLoValid == TLBLoValid || e.Lo1&TLBLoValid == TLBLoValid
}

// Global returns true if the entry ignores the ASID.
func (e *TLBEntry) Global() bool {
	return e.global
}

// Matches returns true if the entry maps the virtual address for the
// address space ID.
func (e *TLBEntry) Matches(vaddr uint32, asid uint8) bool {
	if vaddr&^e.mask != e.vpn2 {
		return false
	}
	return e.global || uint8(e.Hi) == asid
}

func (e *TLBEntry) String() string {
	return fmt.Sprintf("mask=%08x hi=%08x lo0=%08x lo1=%08x", e.PageMask, e.Hi, e.Lo0, e.Lo1)
}
