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
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
)

// InterruptHandler services the CheckInterrupts and CheckExceptions jobs.
// Both functions are called on the emulation goroutine between instructions.
type InterruptHandler interface {
	HandleInterrupt()
	HandleException()
}

// SetInterruptHandler replaces the handling of interrupts and exceptions. A
// nil value restores the default handling.
func (mc *CPU) SetInterruptHandler(h InterruptHandler) {
	if h == nil {
		h = defaultInterrupts{mc: mc}
	}
	mc.interrupts = h
}

// RaiseException records an exception and adds a CheckExceptions job. The
// exception is taken at the next checkpoint.
func (mc *CPU) RaiseException(code uint32) {
	mc.pendingException = code
	mc.Jobs.Add(jobs.CheckExceptions)
}

// PendingException returns the code of the most recently raised exception.
func (mc *CPU) PendingException() uint32 {
	return mc.pendingException
}

// TakeException transfers control to the exception vector.
func (mc *CPU) TakeException(code uint32) {
	if mc.Delay == registers.InDelay {
		mc.CP0[registers.EPC] = mc.PC - 4
		mc.CP0[registers.Cause] |= registers.CauseBD
	} else {
		mc.CP0[registers.EPC] = mc.PC
		mc.CP0[registers.Cause] &^= registers.CauseBD
	}

	cause := mc.CP0[registers.Cause] &^ registers.CauseExcMask
	mc.CP0[registers.Cause] = cause | (code<<registers.CauseExcShift)&registers.CauseExcMask

	mc.CP0[registers.SR] |= registers.SREXL
	mc.PC = registers.ExceptionVector
	mc.Delay = registers.NoDelay
}

type defaultInterrupts struct {
	mc *CPU
}

func (d defaultInterrupts) HandleInterrupt() {
	if d.mc.interruptsPending() {
		d.mc.TakeException(registers.ExcInterrupt)
	}
}

func (d defaultInterrupts) HandleException() {
	d.mc.TakeException(d.mc.pendingException)
}
