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
)

// Stepper executes the instruction at the program counter and leaves the
// program counter pointing to the next instruction.
type Stepper interface {
	Step(mc *cpu.CPU)
}

// Interpreter is the simplest execution core. It checks for jobs before every
// instruction.
type Interpreter struct {
	mc   *cpu.CPU
	step Stepper
}

// NewInterpreter is the preferred method of initialisation for the
// Interpreter type.
func NewInterpreter(mc *cpu.CPU, step Stepper) *Interpreter {
	return &Interpreter{
		mc:   mc,
		step: step,
	}
}

func (c *Interpreter) String() string {
	return "interpreter"
}

// Execute implements the cpu.Core interface.
func (c *Interpreter) Execute() {
	for {
		// interrupts are taken before the next instruction is executed
		if c.mc.Jobs.Pending() != 0 && c.mc.CheckJobs() {
			return
		}
		c.step.Step(c.mc)
		c.mc.UpdateCounter(1)
	}
}
