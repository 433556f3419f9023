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

package cpu_test

import (
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/core"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

// newCPU returns a CPU that has been reset and that uses the interpreter core
// with the NopStepper. The job mask is cleared
func newCPU(t *testing.T) (*cpu.CPU, *memory.Memory, *environment.Environment) {
	t.Helper()

	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)

	mem, err := memory.NewMemory(memory.RDRAMSize)
	test.DemandSuccess(t, err)

	mc := cpu.NewCPU(env, mem)
	mc.SetCores(core.NewInterpreter(mc, core.NopStepper{}), nil)
	mc.Reset()
	mc.Jobs.Reset()

	return mc, mem, env
}

// haltAfter halts the CPU after the specified number of vertical blanks
type haltAfter struct {
	mc      *cpu.CPU
	vbls    int
	stopped int
}

func (h *haltAfter) OnVerticalBlank() {
	h.vbls--
	if h.vbls == 0 {
		h.mc.Halt("test complete")
	}
}

func (h *haltAfter) OnCPUStopped() bool {
	h.stopped++
	return false
}

// counting records calls from the CPU to its peripherals
type counting struct {
	limit   int
	audio   int
	flush   int
	cheats  int
	running bool
}

func (c *counting) Limit()                { c.limit++ }
func (c *counting) UpdateOnVbl(wait bool) { c.audio++ }
func (c *counting) Flush(force bool)      { c.flush++ }
func (c *counting) Activate()             { c.cheats++ }
func (c *counting) IsRunning() bool       { return c.running }

func (c *counting) peripherals() cpu.Peripherals {
	return cpu.Peripherals{
		Limiter: c,
		Audio:   c,
		Save:    c,
		Cheats:  c,
		RSP:     c,
	}
}
