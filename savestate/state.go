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

package savestate

import (
	"errors"
	"fmt"

	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/rom"
)

// ErrROMMismatch is returned by Apply() when the savestate was made with a
// ROM other than the one currently open.
var ErrROMMismatch = errors.New("savestate: ROM mismatch")

// TLBEntry is a TLB entry as stored in a savestate.
type TLBEntry struct {
	// non-zero if either half of the entry is valid. ignored on load
	Defined  uint32
	PageMask uint32
	Hi       uint32
	Lo0      uint32
	Lo1      uint32
}

// State is the decoded contents of a savestate.
type State struct {
	RAMSize uint32

	// ROM header in big-endian byte order
	Header [rom.HeaderSize]byte

	// cycles until the next vertical blank
	VICount uint32

	PC         uint32
	GPR        [32]uint64
	FPU        [32]uint32
	CP0        [32]uint32
	FPUControl [32]uint32
	Hi         uint64
	Lo         uint64

	RDRAMRegs [memory.RDRAMInterfaceSize / 4]uint32
	SPRegs    [memory.SPRegsSize / 4]uint32
	DPCRegs   [memory.DPCRegsSize / 4]uint32
	MIRegs    [memory.MIRegsSize / 4]uint32
	VIRegs    [memory.VIRegsSize / 4]uint32
	AIRegs    [memory.AIRegsSize / 4]uint32
	PIRegs    [memory.PIRegsSize / 4]uint32
	RIRegs    [memory.RIRegsSize / 4]uint32

	SIDRAMAddr     uint32
	SIPIFAddrRD64B uint32
	SIPIFAddrWR64B uint32
	SIStatus       uint32

	TLB [registers.NumTLBEntries]TLBEntry

	// memory in big-endian byte order
	PIFRAM [memory.PIFRAMSize]byte
	RDRAM  []byte
	SPMem  [memory.SPMemSize]byte
}

// ID returns the ID of the ROM the savestate was made with.
func (s *State) ID() rom.ID {
	return rom.IDFromHeader(s.Header[:])
}

func validRAMSize(size uint32) bool {
	return size == memory.RDRAMSize || size == memory.RDRAMSizeNoPak
}

// Capture the state of the system. The system must have a ROM open and the
// emulation must be stopped or the function must be called from the
// emulation goroutine.
func Capture(sys *hardware.System) *State {
	mc := sys.CPU
	mem := sys.Mem

	s := &State{
		RAMSize:    mem.RAMSize(),
		VICount:    max(mc.VerticalBlankCount(), 1),
		PC:         mc.PC,
		GPR:        mc.GPR,
		FPU:        mc.FPU,
		CP0:        mc.CP0,
		FPUControl: mc.FPUControl,
		Hi:         mc.Hi,
		Lo:         mc.Lo,
		PIFRAM:     mem.PIFRAM,
		SPMem:      mem.SPMem,
	}

	copy(s.Header[:], sys.ROMHeader())

	copy(s.RDRAMRegs[:], mem.Block(memory.RDRAMInterface))
	copy(s.SPRegs[:], mem.Block(memory.SP))
	copy(s.DPCRegs[:], mem.Block(memory.DPC))
	copy(s.MIRegs[:], mem.Block(memory.MI))
	copy(s.VIRegs[:], mem.Block(memory.VI))
	copy(s.AIRegs[:], mem.Block(memory.AI))
	copy(s.PIRegs[:], mem.Block(memory.PI))
	copy(s.RIRegs[:], mem.Block(memory.RI))

	s.SIDRAMAddr = mem.Read(memory.SIDRAMAddr)
	s.SIPIFAddrRD64B = mem.Read(memory.SIPIFAddrRD64B)
	s.SIPIFAddrWR64B = mem.Read(memory.SIPIFAddrWR64B)
	s.SIStatus = mem.Read(memory.SIStatus)

	for i, e := range mc.TLB {
		s.TLB[i] = TLBEntry{
			PageMask: e.PageMask,
			Hi:       e.Hi,
			Lo0:      e.Lo0,
			Lo1:      e.Lo1,
		}
		if e.Defined() {
			s.TLB[i].Defined = 1
		}
	}

	s.RDRAM = make([]byte, len(mem.RDRAM))
	copy(s.RDRAM, mem.RDRAM)

	return s
}

// Apply the state to the system. The system is not changed if the state was
// made with a different ROM or if the state is otherwise unusable.
func (s *State) Apply(sys *hardware.System) error {
	if id := s.ID(); id != sys.ROMID() {
		return fmt.Errorf("%w: savestate is for %s but %s is open", ErrROMMismatch, id, sys.ROMID())
	}
	if !validRAMSize(s.RAMSize) || len(s.RDRAM) != int(s.RAMSize) {
		return fmt.Errorf("savestate: unsupported RAM size (%#x)", s.RAMSize)
	}

	mc := sys.CPU
	mem := sys.Mem

	mc.SetVerticalBlankCount(s.VICount)
	mc.SetPC(s.PC)
	mc.GPR = s.GPR
	mc.FPU = s.FPU
	mc.FPUControl = s.FPUControl
	mc.Hi = s.Hi
	mc.Lo = s.Lo

	copy(mem.Block(memory.RDRAMInterface), s.RDRAMRegs[:])
	copy(mem.Block(memory.SP), s.SPRegs[:])
	copy(mem.Block(memory.DPC), s.DPCRegs[:])
	copy(mem.Block(memory.MI), s.MIRegs[:])

	// the VI and AI registers are written so that the parts of the
	// emulation that watch them are updated
	for i, v := range s.VIRegs {
		mem.Write(memory.Register{Region: memory.VI, Offset: uint32(i * 4)}, v)
	}
	for i, v := range s.AIRegs {
		mem.Write(memory.Register{Region: memory.AI, Offset: uint32(i * 4)}, v)
	}

	// undo any changes made to the DPC and MI registers by the writes above
	copy(mem.Block(memory.DPC), s.DPCRegs[:])
	copy(mem.Block(memory.MI), s.MIRegs[:])

	copy(mem.Block(memory.PI), s.PIRegs[:])
	copy(mem.Block(memory.RI), s.RIRegs[:])

	mem.Poke(memory.SIDRAMAddr, s.SIDRAMAddr)
	mem.Poke(memory.SIPIFAddrRD64B, s.SIPIFAddrRD64B)
	mem.Poke(memory.SIPIFAddrWR64B, s.SIPIFAddrWR64B)
	mem.Poke(memory.SIStatus, s.SIStatus)

	for i, e := range s.TLB {
		mc.TLB[i].UpdateValue(e.PageMask, e.Hi, e.Lo1, e.Lo0)
	}

	for i, v := range s.CP0 {
		switch i {
		case registers.SR:
			mc.SetSR(v)
		case registers.Compare:
			mc.SetCompare(v)
		default:
			mc.CP0[i] = v
		}
	}

	mem.PIFRAM = s.PIFRAM
	if len(mem.RDRAM) != len(s.RDRAM) {
		mem.RDRAM = make([]byte, len(s.RDRAM))
	}
	copy(mem.RDRAM, s.RDRAM)
	mem.SPMem = s.SPMem

	return nil
}
