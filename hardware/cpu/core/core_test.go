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

package core_test

import (
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/core"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

func newCPU(t *testing.T) (*cpu.CPU, *environment.Environment) {
	t.Helper()
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSizeNoPak)
	test.DemandSuccess(t, err)
	return cpu.NewCPU(env, mem), env
}

// stops the CPU after a number of vertical blanks
type vblStopper struct {
	mc   *cpu.CPU
	vbls int
}

func (s *vblStopper) OnVerticalBlank() {
	s.vbls--
	if s.vbls == 0 {
		s.mc.Halt("test")
	}
}

func (s *vblStopper) OnCPUStopped() bool {
	return false
}

func TestNopStepper(t *testing.T) {
	mc, _ := newCPU(t)
	var n core.NopStepper

	mc.SetPC(0x80000000)
	n.Step(mc)
	test.ExpectEquality(t, mc.PC, uint32(0x80000004))

	// a branch has been taken by the instruction at 0x80000004
	mc.Delay = registers.DoDelay
	mc.TargetPC = 0x80002000
	n.Step(mc)
	test.ExpectEquality(t, mc.PC, uint32(0x80000008))
	test.ExpectEquality(t, mc.Delay, registers.InDelay)

	// the delay slot
	n.Step(mc)
	test.ExpectEquality(t, mc.PC, uint32(0x80002000))
	test.ExpectEquality(t, mc.Delay, registers.NoDelay)
}

func TestInterpreter(t *testing.T) {
	mc, env := newCPU(t)
	test.ExpectSuccess(t, env.Prefs.Dynarec.Set(false))

	interp := core.NewInterpreter(mc, core.NopStepper{})
	mc.SetCores(interp, core.NewRecompiler(mc, &core.BlockRunner{Step: core.NopStepper{}}))
	mc.Reset()
	mc.RegisterEventHandler(&vblStopper{mc: mc, vbls: 2})

	test.ExpectSuccess(t, mc.Run())
	test.ExpectEquality(t, mc.VerticalInterrupts(), uint32(2))
	test.ExpectEquality(t, mc.CP0[registers.Count], uint32(2*cpu.DefaultVIInterruptCycles))
}

func TestRecompiler(t *testing.T) {
	mc, env := newCPU(t)
	test.ExpectSuccess(t, env.Prefs.Dynarec.Set(true))

	blocks := &core.BlockRunner{Step: core.NopStepper{}, Length: 8}
	rec := core.NewRecompiler(mc, blocks)
	mc.SetCores(core.NewInterpreter(mc, core.NopStepper{}), rec)
	mc.Reset()
	test.ExpectEquality(t, blocks.Resets, 1)

	mc.RegisterEventHandler(&vblStopper{mc: mc, vbls: 2})
	test.ExpectSuccess(t, mc.Run())
	test.ExpectEquality(t, mc.VerticalInterrupts(), uint32(2))

	// the recompiler only checks for jobs between fragments so the count
	// register can be a little past the vertical blank
	count := mc.CP0[registers.Count]
	test.ExpectSuccess(t, count >= 2*cpu.DefaultVIInterruptCycles)
	test.ExpectSuccess(t, count < 2*cpu.DefaultVIInterruptCycles+2*8)

	mc.ResetFragmentCache()
	test.ExpectEquality(t, blocks.Resets, 2)
}

func TestRecompilerPendingFlag(t *testing.T) {
	mc, _ := newCPU(t)
	rec := core.NewRecompiler(mc, &core.BlockRunner{Step: core.NopStepper{}})

	// a job added while the listener is not attached is seen when Execute()
	// starts
	mc.Jobs.Add(jobs.ChangeCore)
	rec.Execute()
	test.ExpectEquality(t, mc.Jobs.Pending(), jobs.Job(0))
	test.ExpectEquality(t, mc.CP0[registers.Count], uint32(0))
}

func TestBlockRunnerEndsOutsideDelaySlot(t *testing.T) {
	mc, _ := newCPU(t)
	b := core.BlockRunner{Step: core.NopStepper{}, Length: 1}

	mc.SetPC(0x80000000)
	mc.Delay = registers.DoDelay
	mc.TargetPC = 0x80001000

	n := b.RunFragment(mc)
	test.ExpectEquality(t, n, uint32(2))
	test.ExpectEquality(t, mc.PC, uint32(0x80001000))
	test.ExpectEquality(t, mc.Delay, registers.NoDelay)
}
