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

package memory

import "fmt"

// Region identifies a block of memory mapped peripheral registers.
type Region int

// List of valid Region values.
const (
	RDRAMInterface Region = iota
	SP
	DPC
	MI
	VI
	AI
	PI
	RI
	SI
	numRegions
)

func (r Region) String() string {
	switch r {
	case RDRAMInterface:
		return "RDRAM"
	case SP:
		return "SP"
	case DPC:
		return "DPC"
	case MI:
		return "MI"
	case VI:
		return "VI"
	case AI:
		return "AI"
	case PI:
		return "PI"
	case RI:
		return "RI"
	case SI:
		return "SI"
	}
	return "unknown region"
}

// RegionSize returns the size in bytes of the register block.
func RegionSize(r Region) int {
	return regionSizes[r]
}

// Sizes in bytes of each register block.
const (
	RDRAMInterfaceSize = 0x28
	SPRegsSize         = 0x20
	DPCRegsSize        = 0x20
	MIRegsSize         = 0x10
	VIRegsSize         = 0x38
	AIRegsSize         = 0x18
	PIRegsSize         = 0x34
	RIRegsSize         = 0x20
	SIRegsSize         = 0x1c
)

var regionSizes = [numRegions]int{
	RDRAMInterface: RDRAMInterfaceSize,
	SP:             SPRegsSize,
	DPC:            DPCRegsSize,
	MI:             MIRegsSize,
	VI:             VIRegsSize,
	AI:             AIRegsSize,
	PI:             PIRegsSize,
	RI:             RIRegsSize,
	SI:             SIRegsSize,
}

// Register identifies a single 32 bit register by region and byte offset.
type Register struct {
	Region Region
	Offset uint32
}

func (reg Register) String() string {
	return fmt.Sprintf("%s+%02x", reg.Region, reg.Offset)
}

// List of the registers referred to by name by the rest of the emulation.
var (
	SPStatus = Register{SP, 0x10}

	MIInitMode = Register{MI, 0x00}
	MIVersion  = Register{MI, 0x04}
	MIIntr     = Register{MI, 0x08}
	MIIntrMask = Register{MI, 0x0c}

	VIStatus = Register{VI, 0x00}
	VIOrigin = Register{VI, 0x04}
	VIWidth  = Register{VI, 0x08}
	VIVSync  = Register{VI, 0x18}

	AIDRAMAddr = Register{AI, 0x00}
	AILen      = Register{AI, 0x04}
	AIControl  = Register{AI, 0x08}
	AIStatus   = Register{AI, 0x0c}
	AIDACRate  = Register{AI, 0x10}

	RISelect = Register{RI, 0x0c}

	SIDRAMAddr     = Register{SI, 0x00}
	SIPIFAddrRD64B = Register{SI, 0x04}
	SIPIFAddrWR64B = Register{SI, 0x10}
	SIStatus       = Register{SI, 0x18}
)

// MI interrupt bits, used by MIIntr and MIIntrMask.
const (
	MIIntrSP = 0x01
	MIIntrSI = 0x02
	MIIntrAI = 0x04
	MIIntrVI = 0x08
	MIIntrPI = 0x10
	MIIntrDP = 0x20
)

// SP status bits.
const (
	SPStatusHalt      = 0x0001
	SPStatusBroke     = 0x0002
	SPStatusDMABusy   = 0x0004
	SPStatusDMAFull   = 0x0008
	SPStatusIOFull    = 0x0010
	SPStatusSStep     = 0x0020
	SPStatusIntrBreak = 0x0040
	SPStatusYield     = 0x0080
	SPStatusYielded   = 0x0100
	SPStatusTaskDone  = 0x0200
)

// MIVersionValue is the value of the MI version register after reset.
const MIVersionValue = 0x02020102
