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
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

// adds a job from inside the clear notification, before the recompiler hears
// about the clear. this is the order seen when another goroutine adds a job
// while the emulation goroutine is clearing the last one
type lateClear struct {
	c   *Recompiler
	job jobs.Job
}

func (l *lateClear) JobsPending() {
	l.c.JobsPending()
}

func (l *lateClear) JobsCleared() {
	if l.job != 0 {
		l.c.mc.Jobs.Add(l.job)
		l.job = 0
	}
	l.c.JobsCleared()
}

func TestJobAddedDuringClear(t *testing.T) {
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSizeNoPak)
	test.DemandSuccess(t, err)
	mc := cpu.NewCPU(env, mem)
	mc.Jobs.Reset()

	c := NewRecompiler(mc, &BlockRunner{})
	l := &lateClear{c: c, job: jobs.StopRunning}
	mc.Jobs.SetListener(l)
	defer mc.Jobs.SetListener(nil)

	mc.Jobs.Add(jobs.CheckInterrupts)
	test.ExpectSuccess(t, c.pending.Load())

	// the mask is empty for a moment but the job added in the meantime must
	// keep the recompiler checking
	test.ExpectSuccess(t, mc.Jobs.Clear(jobs.CheckInterrupts))
	test.ExpectEquality(t, mc.Jobs.Pending(), jobs.StopRunning)
	test.ExpectSuccess(t, c.pending.Load())

	// a stale clear notification does not hide a pending job
	c.JobsCleared()
	test.ExpectSuccess(t, c.pending.Load())

	test.ExpectSuccess(t, mc.Jobs.Clear(jobs.StopRunning))
	test.ExpectFailure(t, c.pending.Load())
}
