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
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/memory"
)

// SetSR writes to the status register. A CheckInterrupts job is added if the
// new value unmasks a pending interrupt.
func (mc *CPU) SetSR(value uint32) {
	old := mc.CP0[registers.SR]
	mc.CP0[registers.SR] = value

	if (old^value)&registers.SRFR != 0 {
		mc.fpuFullMode = value&registers.SRFR != 0
	}

	if mc.interruptsPending() {
		mc.Jobs.Add(jobs.CheckInterrupts)
	}
}

// SetCompare writes to the compare register and schedules the compare event
// for when the count register next reaches the new value.
func (mc *CPU) SetCompare(value uint32) {
	// writing to compare always acknowledges the timer interrupt
	mc.CP0[registers.Cause] &^= registers.CauseIP8

	if value == mc.CP0[registers.Compare] {
		return
	}

	if value != 0 {
		delta := int64(value - mc.CP0[registers.Count])
		if delta == 0 {
			// the count register has only just passed the value. the event
			// is a full wrap of the counter away
			delta = 1 << 32
		}
		mc.Events.SetCompare(delta)
	}

	mc.CP0[registers.Compare] = value
}

// UpdateCause3 copies the state of the MI interrupt lines into the IP3 bit of
// the cause register.
func (mc *CPU) UpdateCause3() {
	if mc.mem.Read(memory.MIIntr)&mc.mem.Read(memory.MIIntrMask) != 0 {
		mc.CP0[registers.Cause] |= registers.CauseIP3
		if mc.CP0[registers.SR]&mc.CP0[registers.Cause]&registers.CauseIP != 0 {
			mc.Jobs.Add(jobs.CheckInterrupts)
		}
	} else {
		mc.CP0[registers.Cause] &^= registers.CauseIP3
	}
}

// CompareEvent returns the number of cycles until the compare event fires.
// Returns false if no compare event is scheduled.
func (mc *CPU) CompareEvent() (int64, bool) {
	var total int64
	for _, e := range mc.Events.Events() {
		total += e.Count
		if e.Type == events.Compare {
			return total, true
		}
	}
	return 0, false
}

// interrupts are enabled, not masked by exception level, and one of the
// pending interrupt lines is unmasked
func (mc *CPU) interruptsPending() bool {
	sr := mc.CP0[registers.SR]
	if sr&registers.SRIE == 0 || sr&(registers.SREXL|registers.SRERL) != 0 {
		return false
	}
	return sr&mc.CP0[registers.Cause]&registers.CauseIP != 0
}
