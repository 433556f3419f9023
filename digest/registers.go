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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"

	"github.com/gopher64/gopher64/hardware/cpu"
)

// Sum returns the SHA-1 of the register file. The registers are hashed as
// little-endian values in the order GPR, CP0, FPU, FPU control.
func Sum(gpr []uint64, cp0 []uint32, fpu []uint32, fpuControl []uint32) [sha1.Size]byte {
	b := make([]byte, 0, len(gpr)*8+(len(cp0)+len(fpu)+len(fpuControl))*4)
	for _, v := range gpr {
		b = binary.LittleEndian.AppendUint64(b, v)
	}
	for _, r := range [][]uint32{cp0, fpu, fpuControl} {
		for _, v := range r {
			b = binary.LittleEndian.AppendUint32(b, v)
		}
	}
	return sha1.Sum(b)
}

// SumCPU returns the SHA-1 of the register file of the CPU.
func SumCPU(mc *cpu.CPU) [sha1.Size]byte {
	return Sum(mc.GPR[:], mc.CP0[:], mc.FPU[:], mc.FPUControl[:])
}

// Registers is an implementation of the cpu.EventHandler interface. On every
// vertical blank the register file is hashed together with the previous
// digest value.
type Registers struct {
	mc     *cpu.CPU
	digest [sha1.Size]byte
	frames int
}

// NewRegisters is the preferred method of initialisation for the Registers
// type. The Registers instance is not registered with the CPU.
func NewRegisters(mc *cpu.CPU) *Registers {
	return &Registers{mc: mc}
}

// Hash implements digest.Digest interface.
func (dig *Registers) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Registers) ResetDigest() {
	clear(dig.digest[:])
	dig.frames = 0
}

// Frames returns the number of vertical blanks included in the digest.
func (dig *Registers) Frames() int {
	return dig.frames
}

// OnVerticalBlank implements the cpu.EventHandler interface.
func (dig *Registers) OnVerticalBlank() {
	sum := SumCPU(dig.mc)
	dig.digest = sha1.Sum(append(dig.digest[:], sum[:]...))
	dig.frames++
}

// OnCPUStopped implements the cpu.EventHandler interface.
func (dig *Registers) OnCPUStopped() bool {
	return false
}
