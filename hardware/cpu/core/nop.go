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

package core

import (
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// NopStepper treats every instruction as a NOP. Branch delay state is honoured
// so a branch set up by other means completes as expected.
type NopStepper struct{}

// Step implements the Stepper interface.
func (NopStepper) Step(mc *cpu.CPU) {
	if mc.Delay == registers.InDelay {
		mc.PC = mc.TargetPC
		mc.Delay = registers.NoDelay
		return
	}

	mc.PC += 4
	if mc.Delay == registers.DoDelay {
		mc.Delay = registers.InDelay
	}
}

// BlockRunner implements FragmentRunner by stepping through a fixed number of
// instructions per fragment. A fragment always ends at a branch delay slot so
// that the CPU is left in a simple state.
type BlockRunner struct {
	Step Stepper

	// number of instructions in a fragment. values less than one are treated
	// as one
	Length int

	// the number of times ResetCache() has been called
	Resets int
}

// RunFragment implements the FragmentRunner interface.
func (b *BlockRunner) RunFragment(mc *cpu.CPU) uint32 {
	var n uint32
	for i := 0; i < max(b.Length, 1) || mc.Delay != registers.NoDelay; i++ {
		b.Step.Step(mc)
		n++
	}
	return n
}

// ResetCache implements the FragmentRunner interface.
func (b *BlockRunner) ResetCache() {
	b.Resets++
}
