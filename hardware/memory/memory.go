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

import (
	"encoding/binary"
	"fmt"
)

// Sizes of the memory buffers.
const (
	RDRAMSize       = 0x800000
	RDRAMSizeNoPak  = 0x400000
	SPMemSize       = 0x2000
	PIFRAMSize      = 0x40
	SaveSize        = 0x20000
	MempackSize     = 0x20000
	MempackPageSize = 0x8000
)

// WriteHook is called after a register in the region it is attached to has
// been written with Write(). The hook is not called for Poke(), SetBits() or
// ClearBits().
type WriteHook func(reg Register, value uint32)

// Memory is the collection of memory buffers and peripheral registers.
//
// RDRAM, SP memory and PIF RAM are stored in big-endian byte order. That is,
// the byte at index n is the byte at address n as seen by the CPU.
type Memory struct {
	RDRAM   []byte
	SPMem   [SPMemSize]byte
	PIFRAM  [PIFRAMSize]byte
	Save    [SaveSize]byte
	Mempack [MempackSize]byte

	regs  [numRegions][]uint32
	hooks [numRegions]WriteHook
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The ramSize argument should be RDRAMSize or RDRAMSizeNoPak.
func NewMemory(ramSize int) (*Memory, error) {
	if ramSize != RDRAMSize && ramSize != RDRAMSizeNoPak {
		return nil, fmt.Errorf("memory: unsupported RDRAM size (%#x)", ramSize)
	}

	mem := &Memory{
		RDRAM: make([]byte, ramSize),
	}
	for r := range numRegions {
		mem.regs[r] = make([]uint32, regionSizes[r]/4)
	}
	return mem, nil
}

// Reset clears all memory and registers. Write hooks are not removed.
func (mem *Memory) Reset() {
	clear(mem.RDRAM)
	clear(mem.SPMem[:])
	clear(mem.PIFRAM[:])
	clear(mem.Save[:])
	clear(mem.Mempack[:])
	for r := range numRegions {
		clear(mem.regs[r])
	}
}

// RAMSize returns the size of RDRAM in bytes.
func (mem *Memory) RAMSize() uint32 {
	return uint32(len(mem.RDRAM))
}

// SetWriteHook attaches a hook to the region. A nil hook removes it.
func (mem *Memory) SetWriteHook(r Region, hook WriteHook) {
	mem.hooks[r] = hook
}

func (mem *Memory) index(reg Register) int {
	if reg.Offset&0x03 != 0 || int(reg.Offset) >= regionSizes[reg.Region] {
		panic(fmt.Sprintf("memory: invalid register %s", reg))
	}
	return int(reg.Offset >> 2)
}

// Read returns the value of the register.
func (mem *Memory) Read(reg Register) uint32 {
	return mem.regs[reg.Region][mem.index(reg)]
}

// Poke sets the value of the register without side effects.
func (mem *Memory) Poke(reg Register, value uint32) {
	mem.regs[reg.Region][mem.index(reg)] = value
}

// Write sets the value of the register and then calls the write hook for
// the region, if there is one.
func (mem *Memory) Write(reg Register, value uint32) {
	mem.Poke(reg, value)
	if h := mem.hooks[reg.Region]; h != nil {
		h(reg, value)
	}
}

// SetBits sets the bits in the register and returns the new value.
func (mem *Memory) SetBits(reg Register, bits uint32) uint32 {
	i := mem.index(reg)
	mem.regs[reg.Region][i] |= bits
	return mem.regs[reg.Region][i]
}

// ClearBits clears the bits in the register and returns the new value.
func (mem *Memory) ClearBits(reg Register, bits uint32) uint32 {
	i := mem.index(reg)
	mem.regs[reg.Region][i] &^= bits
	return mem.regs[reg.Region][i]
}

// Block returns the registers of the region. The slice refers to the live
// registers.
func (mem *Memory) Block(r Region) []uint32 {
	return mem.regs[r]
}

// addresses outside of RDRAM wrap around, in the same way as the hardware
// mirrors addresses. RDRAM size is always a power of two
func (mem *Memory) ramAddress(addr uint32) uint32 {
	return addr & 0x1fffffff & (uint32(len(mem.RDRAM)) - 1)
}

// ReadRAM8 returns the byte at the RDRAM address. The address can be a
// physical address or a KSEG0/KSEG1 address.
func (mem *Memory) ReadRAM8(addr uint32) uint8 {
	return mem.RDRAM[mem.ramAddress(addr)]
}

// WriteRAM8 writes the byte to the RDRAM address.
func (mem *Memory) WriteRAM8(addr uint32, v uint8) {
	mem.RDRAM[mem.ramAddress(addr)] = v
}

// ReadRAM16 returns the halfword at the RDRAM address.
func (mem *Memory) ReadRAM16(addr uint32) uint16 {
	a := mem.ramAddress(addr &^ 1)
	return binary.BigEndian.Uint16(mem.RDRAM[a:])
}

// WriteRAM16 writes the halfword to the RDRAM address.
func (mem *Memory) WriteRAM16(addr uint32, v uint16) {
	a := mem.ramAddress(addr &^ 1)
	binary.BigEndian.PutUint16(mem.RDRAM[a:], v)
}

// ReadRAM32 returns the word at the RDRAM address.
func (mem *Memory) ReadRAM32(addr uint32) uint32 {
	a := mem.ramAddress(addr &^ 3)
	return binary.BigEndian.Uint32(mem.RDRAM[a:])
}

// WriteRAM32 writes the word to the RDRAM address.
func (mem *Memory) WriteRAM32(addr uint32, v uint32) {
	a := mem.ramAddress(addr &^ 3)
	binary.BigEndian.PutUint32(mem.RDRAM[a:], v)
}
