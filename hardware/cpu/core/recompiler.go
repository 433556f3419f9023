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
	"sync/atomic"

	"github.com/gopher64/gopher64/hardware/cpu"
)

// FragmentRunner executes a block of code starting at the program counter.
type FragmentRunner interface {
	// RunFragment returns the number of instructions executed
	RunFragment(mc *cpu.CPU) uint32

	// ResetCache discards all generated code
	ResetCache()
}

// Recompiler is an execution core that runs fragments of code rather than
// single instructions. Rather than inspecting the job mask after every
// fragment it listens for the mask changing between empty and non-empty.
type Recompiler struct {
	mc    *cpu.CPU
	frags FragmentRunner

	pending atomic.Bool
}

// NewRecompiler is the preferred method of initialisation for the Recompiler
// type.
func NewRecompiler(mc *cpu.CPU, frags FragmentRunner) *Recompiler {
	return &Recompiler{
		mc:    mc,
		frags: frags,
	}
}

func (c *Recompiler) String() string {
	return "recompiler"
}

// JobsPending implements the jobs.Listener interface.
func (c *Recompiler) JobsPending() {
	c.pending.Store(true)
}

// JobsCleared implements the jobs.Listener interface.
func (c *Recompiler) JobsCleared() {
	// the flag is cleared before the mask is checked. a job added by another
	// goroutine in between sets the flag again or is seen by the check
	c.pending.Store(false)
	if c.mc.Jobs.Pending() != 0 {
		c.pending.Store(true)
	}
}

// ResetCache discards all generated code.
func (c *Recompiler) ResetCache() {
	c.frags.ResetCache()
}

// Execute implements the cpu.Core interface.
func (c *Recompiler) Execute() {
	c.mc.Jobs.SetListener(c)
	defer c.mc.Jobs.SetListener(nil)

	// jobs added before the listener was attached
	c.pending.Store(c.mc.Jobs.Pending() != 0)

	for {
		if c.pending.Load() && c.mc.CheckJobs() {
			return
		}
		n := c.frags.RunFragment(c.mc)
		c.mc.UpdateCounter(max(n, 1))
	}
}
