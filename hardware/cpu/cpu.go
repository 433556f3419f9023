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
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/logger"
)

// Sentinel errors returned by the CPU.
var (
	ErrNoROM  = errors.New("cpu: no ROM is open")
	ErrNoCore = errors.New("cpu: no execution core available")
)

// Memory is the subset of the memory system used directly by the CPU.
type Memory interface {
	Read(reg memory.Register) uint32
	Write(reg memory.Register, value uint32)
	SetBits(reg memory.Register, bits uint32) uint32
}

// CPU is the main processor of the console together with the scheduling state
// that drives the rest of the emulation: the job mask, the event queue and the
// run loop.
//
// Register fields may only be touched from the emulation goroutine or while
// the run loop is stopped. The Jobs field, Halt(), IsRunning() and the event
// handler registry are safe to use from any goroutine.
type CPU struct {
	env *environment.Environment
	mem Memory

	GPR        [32]uint64
	FPU        [32]uint32
	CP0        [32]uint32
	FPUControl [32]uint32
	Hi         uint64
	Lo         uint64

	// the address of the next instruction to execute and the destination of
	// the branch being executed in the delay slot
	PC       uint32
	TargetPC uint32
	Delay    registers.Delay

	TLB [registers.NumTLBEntries]registers.TLBEntry

	// asynchronous work for the run loop
	Jobs jobs.State

	// timed events measured in cycles
	Events events.Queue

	// FR bit of the status register. when set all 32 FPU registers are
	// addressable as 64bit values
	fpuFullMode bool

	// cycles between vertical blanks. recalculated on every vertical blank
	// from the VI vsync register
	viInterruptCycles uint32

	verticalInterrupts atomic.Uint32

	// exception waiting for the CheckExceptions job
	pendingException uint32

	// replaceable handling of the CheckInterrupts and CheckExceptions jobs
	interrupts InterruptHandler

	running           atomic.Bool
	active            atomic.Bool
	stopOnSimpleState atomic.Bool
	romOpen           bool

	interpreter Core
	recompiler  Core

	// core is only touched by the run loop. selected is the core the run
	// loop will switch to at the next checkpoint
	core     Core
	selected atomic.Pointer[coreRef]

	crit     sync.Mutex
	handlers []EventHandler

	periph Peripherals
}

// NewCPU is the preferred method of initialisation for the CPU type. The CPU
// is not ready to run until Reset() has been called.
func NewCPU(env *environment.Environment, mem Memory) *CPU {
	mc := &CPU{
		env:               env,
		mem:               mem,
		viInterruptCycles: DefaultVIInterruptCycles,
	}
	mc.interrupts = defaultInterrupts{mc: mc}
	return mc
}

// Plumb the collaborating parts of the console into the CPU. Any field of the
// Peripherals argument can be nil.
func (mc *CPU) Plumb(periph Peripherals) {
	mc.periph = periph
}

// Reset puts the CPU into its power on state. Called whenever a ROM is opened.
func (mc *CPU) Reset() {
	mc.running.Store(false)
	mc.stopOnSimpleState.Store(false)

	clear(mc.GPR[:])
	clear(mc.FPU[:])
	clear(mc.CP0[:])
	clear(mc.FPUControl[:])
	mc.Hi = 0
	mc.Lo = 0

	mc.PC = registers.ResetPC
	mc.TargetPC = registers.ResetPC + 4
	mc.Delay = registers.NoDelay

	mc.CP0[registers.Random] = registers.ResetRandom
	mc.CP0[registers.PRId] = registers.ResetPRId
	mc.CP0[registers.Config] = registers.ResetConfig
	mc.CP0[registers.Wired] = 0
	mc.fpuFullMode = false
	mc.SetSR(registers.ResetSR)
	mc.FPUControl[0] = registers.ResetFCR0

	for i := range mc.TLB {
		mc.TLB[i].Reset()
	}

	mc.mem.Write(memory.MIVersion, memory.MIVersionValue)
	mc.mem.Write(memory.RISelect, 1)

	// the SetSR() above may have added jobs. the reset state has none
	mc.Jobs.Reset()
	mc.pendingException = 0

	mc.verticalInterrupts.Store(0)
	mc.viInterruptCycles = DefaultVIInterruptCycles
	mc.Events.Reset(int64(mc.viInterruptCycles))

	mc.romOpen = true

	logger.Log(mc.env, "cpu", "reset")
	mc.ResetFragmentCache()
	mc.SelectCore()
}

// ResetFragmentCache discards any code generated by the recompiler core.
// Should be called whenever memory is replaced wholesale.
func (mc *CPU) ResetFragmentCache() {
	if r, ok := mc.recompiler.(interface{ ResetCache() }); ok {
		r.ResetCache()
	}
}

// Close is called when the ROM is closed. The CPU will not run again until
// the next Reset().
func (mc *CPU) Close() {
	mc.romOpen = false
}

// SetPC changes the program counter and cancels any pending branch.
func (mc *CPU) SetPC(pc uint32) {
	mc.PC = pc
	mc.Delay = registers.NoDelay
}

// FPUFullMode returns true if the FR bit of the status register is set.
func (mc *CPU) FPUFullMode() bool {
	return mc.fpuFullMode
}

// VerticalInterrupts returns the number of vertical blanks since reset.
func (mc *CPU) VerticalInterrupts() uint32 {
	return mc.verticalInterrupts.Load()
}

// String returns the state of the CPU as a multi-line string.
func (mc *CPU) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("PC: %08x  TargetPC: %08x  %s\n", mc.PC, mc.TargetPC, mc.Delay))
	for i := 0; i < len(mc.GPR); i += 4 {
		for j := i; j < i+4; j++ {
			if j > i {
				s.WriteString("  ")
			}
			s.WriteString(fmt.Sprintf("%s: %08x", registers.Names[j], uint32(mc.GPR[j])))
		}
		s.WriteString("\n")
	}
	s.WriteString(fmt.Sprintf("SR: %08x  Cause: %08x  Count: %08x  Compare: %08x\n",
		mc.CP0[registers.SR], mc.CP0[registers.Cause],
		mc.CP0[registers.Count], mc.CP0[registers.Compare]))
	s.WriteString(fmt.Sprintf("Jobs: %s\n", mc.Jobs.String()))
	s.WriteString(fmt.Sprintf("Events: %s", mc.Events.String()))
	return s.String()
}
