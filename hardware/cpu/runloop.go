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

package cpu

import (
	"fmt"

	"github.com/gopher64/gopher64/assert"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/logger"
)

// Core executes instructions. Execute() returns when CheckJobs() returns
// true, which is the only point at which the active core can be changed.
type Core interface {
	Execute()
	String() string
}

type coreRef struct {
	core Core
}

// SetCores sets the execution cores available to the CPU. The recompiler can
// be nil. The selection takes effect on the next call to SelectCore().
func (mc *CPU) SetCores(interpreter Core, recompiler Core) {
	mc.interpreter = interpreter
	mc.recompiler = recompiler
}

// SelectCore chooses the core to use according to the preferences and asks
// the run loop to change to it. If a halt is waiting for the CPU to reach a
// simple state and the CPU is already in one, the run loop is stopped instead.
func (mc *CPU) SelectCore() {
	c := mc.interpreter
	if mc.recompiler != nil && mc.env.Prefs.Dynarec.Get().(bool) {
		c = mc.recompiler
	}

	mc.selected.Store(&coreRef{core: c})
	if c == nil {
		logger.Log(mc.env, "cpu", ErrNoCore)
	} else {
		logger.Logf(mc.env, "cpu", "selected %s core", c)
	}

	if mc.stopOnSimpleState.Load() && mc.IsStateSimple() {
		mc.Jobs.Add(jobs.StopRunning)
	} else {
		mc.Jobs.Add(jobs.ChangeCore)
	}
}

// IsStateSimple returns true if the CPU is between instructions in a state
// that can be captured or replaced: the RSP is idle and no branch is pending.
func (mc *CPU) IsStateSimple() bool {
	if mc.periph.RSP != nil && mc.periph.RSP.IsRunning() {
		return false
	}
	return mc.Delay == registers.NoDelay
}

// Halt asks the run loop to stop at the next checkpoint where the CPU is in a
// simple state. Safe to call from any goroutine.
func (mc *CPU) Halt(reason string) {
	logger.Logf(mc.env, "cpu", "halt: %s", reason)
	mc.stopOnSimpleState.Store(true)
	mc.Jobs.Add(jobs.StopRunning)
}

// IsRunning returns true while the run loop is executing instructions.
func (mc *CPU) IsRunning() bool {
	return mc.running.Load()
}

// IsActive returns true until Run() returns. Unlike IsRunning() this includes
// the time the event handlers are being told that the CPU has stopped, during
// which a handler may close and reopen the system.
func (mc *CPU) IsActive() bool {
	return mc.active.Load()
}

// CheckJobs services the highest priority pending job. Returns true if the
// core should return from Execute().
func (mc *CPU) CheckJobs() bool {
	switch j := mc.Jobs.Next(); j {
	case 0:
		return false

	case jobs.CheckInterrupts:
		mc.interrupts.HandleInterrupt()
		mc.Jobs.Clear(jobs.CheckInterrupts)
		return false

	case jobs.CheckExceptions:
		mc.interrupts.HandleException()
		mc.Jobs.Clear(jobs.CheckExceptions)
		return false

	case jobs.ChangeCore:
		mc.Jobs.Clear(jobs.ChangeCore)
		return true

	case jobs.StopRunning:
		mc.Jobs.Clear(jobs.StopRunning)
		mc.running.Store(false)
		return true

	default:
		panic(fmt.Sprintf("cpu: unhandled job %s", j))
	}
}

// Run executes instructions until the run loop is stopped and no event
// handler asks for it to be restarted. Returns ErrNoROM if Reset() has not
// been called since the last Close().
//
// The calling goroutine becomes the emulation goroutine for the duration.
func (mc *CPU) Run() error {
	if !mc.romOpen {
		return ErrNoROM
	}

	assert.SetEmulationThread()
	defer assert.ClearEmulationThread()

	mc.active.Store(true)
	defer mc.active.Store(false)

	for {
		mc.running.Store(true)
		mc.stopOnSimpleState.Store(false)

		for mc.running.Load() {
			if s := mc.selected.Swap(nil); s != nil {
				mc.core = s.core
			}
			if mc.core == nil {
				mc.running.Store(false)
				return ErrNoCore
			}
			mc.core.Execute()
		}

		// every handler is told about the stop even if an earlier handler
		// has already asked for a restart
		restart := false
		for _, h := range mc.eventHandlers() {
			restart = h.OnCPUStopped() || restart
		}
		if !restart {
			break
		}

		// a handler may have closed the ROM without opening another
		if !mc.romOpen {
			return ErrNoROM
		}
	}

	return nil
}
