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

// Package rsp is the view of the signal processor needed by the rest of the
// emulation. Microcode is not executed. An audio task is modelled as taking a
// fixed number of cycles, after which the task completion event updates the
// status register.
package rsp

import (
	"github.com/gopher64/gopher64/hardware/cpu/events"
	"github.com/gopher64/gopher64/hardware/memory"
)

// Scheduler is used to schedule the completion of a task.
type Scheduler interface {
	Add(count int64, typ events.Type)
}

// Registers is the part of the memory system used by the RSP.
type Registers interface {
	Read(reg memory.Register) uint32
	Poke(reg memory.Register, value uint32)
	ClearBits(reg memory.Register, bits uint32) uint32
}

// RSP is the signal processor.
type RSP struct {
	mem   Registers
	sched Scheduler
}

// NewRSP is the preferred method of initialisation for the RSP type.
func NewRSP(mem Registers, sched Scheduler) *RSP {
	return &RSP{
		mem:   mem,
		sched: sched,
	}
}

// Reset puts the RSP into the halted state.
func (r *RSP) Reset() {
	r.mem.Poke(memory.SPStatus, memory.SPStatusHalt)
}

// IsRunning returns true if the RSP is not halted.
func (r *RSP) IsRunning() bool {
	return r.mem.Read(memory.SPStatus)&memory.SPStatusHalt == 0
}

// StartAudioTask starts the RSP and schedules the completion of the task
// after the specified number of cycles.
func (r *RSP) StartAudioTask(cycles int64) {
	r.mem.ClearBits(memory.SPStatus, memory.SPStatusHalt|memory.SPStatusBroke|memory.SPStatusTaskDone)
	r.sched.Add(cycles, events.Audio)
}
