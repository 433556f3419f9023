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

package rsp_test

import (
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/hardware/rsp"
	"github.com/gopher64/gopher64/test"
)

func TestAudioTask(t *testing.T) {
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSize)
	test.DemandSuccess(t, err)

	mc := cpu.NewCPU(env, mem)
	r := rsp.NewRSP(mem, &mc.Events)
	mc.Plumb(cpu.Peripherals{RSP: r})
	mc.Reset()
	r.Reset()

	test.ExpectFailure(t, r.IsRunning())
	test.ExpectSuccess(t, mc.IsStateSimple())

	mem.SetBits(memory.SPStatus, memory.SPStatusIntrBreak)
	r.StartAudioTask(1000)
	test.ExpectSuccess(t, r.IsRunning())
	test.ExpectFailure(t, mc.IsStateSimple())

	mc.UpdateCounter(1000)
	test.ExpectFailure(t, r.IsRunning())
	test.ExpectEquality(t, mem.Read(memory.SPStatus)&memory.SPStatusTaskDone, uint32(memory.SPStatusTaskDone))

	// SP interrupt follows the task completion
	mc.UpdateCounter(4000)
	test.ExpectEquality(t, mem.Read(memory.MIIntr)&memory.MIIntrSP, uint32(memory.MIIntrSP))
}
