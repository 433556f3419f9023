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

// Indexes of the coprocessor 0 registers.
const (
	Index    = 0
	Random   = 1
	EntryLo0 = 2
	EntryLo1 = 3
	Context  = 4
	PageMask = 5
	Wired    = 6
	BadVAddr = 8
	Count    = 9
	EntryHi  = 10
	Compare  = 11
	SR       = 12
	Cause    = 13
	EPC      = 14
	PRId     = 15
	Config   = 16
	LLAddr   = 17
	WatchLo  = 18
	WatchHi  = 19
	XContext = 20
	TagLo    = 28
	TagHi    = 29
	ErrorEPC = 30
)

// Status register bits.
const (
	SRIE  = 0x00000001
	SREXL = 0x00000002
	SRERL = 0x00000004
	SRFR  = 0x04000000

	// interrupt mask bits
	SRIM = 0x0000ff00
)

// Cause register bits.
const (
	CauseBD       = 0x80000000
	CauseIP3      = 0x00000400
	CauseIP8      = 0x00008000
	CauseExcMask  = 0x0000007c
	CauseExcShift = 2

	// pending interrupt bits
	CauseIP = 0x0000ff00
)

// Exception codes as stored in the Cause register.
const (
	ExcInterrupt   = 0
	ExcTLBMod      = 1
	ExcTLBLoad     = 2
	ExcTLBStore    = 3
	ExcSyscall     = 8
	ExcBreak       = 9
	ExcReserved    = 10
	ExcCopUnusable = 11
	ExcOverflow    = 12
	ExcTrap        = 13
	ExcFPE         = 15
)

// ExceptionVector is the general exception vector when SR.BEV is clear.
const ExceptionVector = 0x80000180

// Values of the registers after power on.
const (
	ResetPC     = 0xbfc00000
	ResetRandom = NumTLBEntries - 1
	ResetSR     = 0x70400004
	ResetPRId   = 0x00000b10
	ResetConfig = 0x0006e463
	ResetFCR0   = 0x00000511
)
