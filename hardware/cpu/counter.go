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

	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/hardware/memory"
)

// CounterIncrementPerOp is the number of cycles added to the count register
// for every instruction executed.
const CounterIncrementPerOp = 1

// DefaultVIInterruptCycles is the number of cycles between vertical blanks
// when the VI vsync register has not been set.
const DefaultVIInterruptCycles = 62500

// cycles between an audio task completing and the SP interrupt being raised
const spInterruptDelay = 4000

// save data is flushed every 64 vertical blanks
const saveFlushMask = 0x3f

// UpdateCounter advances the count register and the event queue by the
// number of cycles taken by ops instructions. At most one due event is
// dispatched. Any other event due at the same time is dispatched by a later
// call, after the core has had the chance to service the jobs raised by the
// first.
func (mc *CPU) UpdateCounter(ops uint32) {
	if mc.advance(ops) {
		mc.DispatchEvent()
	}
}

// UpdateCounterNoInterrupt advances the count register and the event queue
// but never dispatches. Returns true if an event is due. Used by cores that
// need to finish a block of work before dispatching.
func (mc *CPU) UpdateCounterNoInterrupt(ops uint32) bool {
	return mc.advance(ops)
}

func (mc *CPU) advance(ops uint32) bool {
	if ops == 0 {
		panic("cpu: counter advanced by zero instructions")
	}
	cycles := ops * CounterIncrementPerOp
	mc.CP0[registers.Count] += cycles
	return mc.Events.Advance(int64(cycles))
}

// SkipToNextEvent moves the count register forward so that the next event is
// due on the next cycle. Used to skip idle loops.
func (mc *CPU) SkipToNextEvent() {
	mc.CP0[registers.Count] += uint32(mc.Events.Skip())
}

// DispatchEvent removes the soonest event from the queue and acts on it. The
// event must be due.
func (mc *CPU) DispatchEvent() {
	switch typ := mc.Events.Pop(); typ {
	case events.VerticalBlank:
		mc.verticalBlank()

	case events.Compare:
		mc.CP0[registers.Cause] |= registers.CauseIP8
		mc.Jobs.Add(jobs.CheckInterrupts)

	case events.Audio:
		status := mc.mem.SetBits(memory.SPStatus, memory.SPStatusTaskDone|
			memory.SPStatusYielded|memory.SPStatusBroke|memory.SPStatusHalt)
		if status&memory.SPStatusIntrBreak != 0 {
			mc.Events.Add(spInterruptDelay, events.SPInterrupt)
		}

	case events.SPInterrupt:
		mc.mem.SetBits(memory.MIIntr, memory.MIIntrSP)
		mc.UpdateCause3()

	default:
		panic(fmt.Sprintf("cpu: unhandled event %s", typ))
	}
}

func (mc *CPU) verticalBlank() {
	vsync := mc.mem.Read(memory.VIVSync)
	rate := mc.env.Prefs.VISyncRate.Get().(int)
	if vsync == 0 || rate <= 0 {
		mc.viInterruptCycles = DefaultVIInterruptCycles
	} else {
		mc.viInterruptCycles = (vsync + 1) * uint32(rate)
	}

	if mc.periph.Cheats != nil && mc.env.Prefs.Cheats.Get().(bool) {
		mc.periph.Cheats.Activate()
	}

	mc.Events.Add(int64(mc.viInterruptCycles), events.VerticalBlank)
	vi := mc.verticalInterrupts.Add(1)

	if mc.periph.Limiter != nil && mc.env.Prefs.FrameLimit.Get().(bool) {
		mc.periph.Limiter.Limit()
	}

	if mc.periph.Audio != nil {
		mc.periph.Audio.UpdateOnVbl(false)
	}

	mc.mem.SetBits(memory.MIIntr, memory.MIIntrVI)
	mc.UpdateCause3()

	if vi&saveFlushMask == 0 && mc.periph.Save != nil {
		mc.periph.Save.Flush(false)
	}

	for _, h := range mc.eventHandlers() {
		h.OnVerticalBlank()
	}
}

// VerticalBlankCount returns the number of cycles until the next vertical
// blank.
func (mc *CPU) VerticalBlankCount() uint32 {
	return uint32(mc.Events.VerticalBlankCount())
}

// SetVerticalBlankCount reschedules the next vertical blank. A count of zero
// is treated as one.
func (mc *CPU) SetVerticalBlankCount(count uint32) {
	mc.Events.SetVerticalBlankCount(int64(max(count, 1)))
}
