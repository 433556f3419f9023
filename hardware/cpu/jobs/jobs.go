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

package jobs

import (
	"strings"
	"sync/atomic"
)

// Job is a bit in the job mask. More than one job can be pending at once.
type Job uint32

// List of valid Job values.
const (
	CheckInterrupts Job = 1 << iota
	CheckExceptions
	ChangeCore
	StopRunning

	// all valid job bits
	mask = CheckInterrupts | CheckExceptions | ChangeCore | StopRunning
)

// the order in which pending jobs must be serviced
var priority = [...]Job{CheckInterrupts, CheckExceptions, ChangeCore, StopRunning}

func (j Job) String() string {
	var s []string
	if j&CheckInterrupts != 0 {
		s = append(s, "CheckInterrupts")
	}
	if j&CheckExceptions != 0 {
		s = append(s, "CheckExceptions")
	}
	if j&ChangeCore != 0 {
		s = append(s, "ChangeCore")
	}
	if j&StopRunning != 0 {
		s = append(s, "StopRunning")
	}
	if len(s) == 0 {
		return "none"
	}
	return strings.Join(s, "|")
}

// Listener is notified when the job mask changes between empty and non-empty.
// Execution cores that only check for jobs at the end of a block use this to
// avoid checking when there is nothing to do.
type Listener interface {
	JobsPending()
	JobsCleared()
}

// State is the atomic job mask. Jobs can be added from any goroutine but
// should only be cleared by the emulation goroutine.
type State struct {
	bits     atomic.Uint32
	listener atomic.Pointer[listenerRef]
}

// wrapper so that the interface can be stored atomically
type listenerRef struct {
	l Listener
}

// SetListener sets the Listener to be notified of empty/non-empty
// transitions. A nil argument removes the listener.
func (s *State) SetListener(l Listener) {
	if l == nil {
		s.listener.Store(nil)
		return
	}
	s.listener.Store(&listenerRef{l: l})
}

func (s *State) notify(pending bool) {
	if r := s.listener.Load(); r != nil {
		if pending {
			r.l.JobsPending()
		} else {
			r.l.JobsCleared()
		}
	}
}

func valid(j Job) {
	if j == 0 || j&^mask != 0 {
		panic("jobs: invalid job value")
	}
}

// Add sets the job bits in j. Returns true if the mask was previously empty.
func (s *State) Add(j Job) bool {
	valid(j)
	old := Job(s.bits.Or(uint32(j)))
	if old == 0 {
		s.notify(true)
		return true
	}
	return false
}

// Clear removes the job bits in j. Returns true if the mask became empty as a
// result of this call.
func (s *State) Clear(j Job) bool {
	valid(j)
	old := Job(s.bits.And(^uint32(j)))
	if old != 0 && old&^j == 0 {
		s.notify(false)
		return true
	}
	return false
}

// Reset clears all pending jobs.
func (s *State) Reset() {
	if s.bits.Swap(0) != 0 {
		s.notify(false)
	}
}

// Pending returns the jobs that are currently set.
func (s *State) Pending() Job {
	return Job(s.bits.Load())
}

// IsPending returns true if any of the job bits in j are set.
func (s *State) IsPending(j Job) bool {
	return Job(s.bits.Load())&j != 0
}

// Next returns the highest priority pending job, or zero if nothing is
// pending. The job is not cleared.
func (s *State) Next() Job {
	p := Job(s.bits.Load())
	for _, j := range priority {
		if p&j != 0 {
			return j
		}
	}
	return 0
}

func (s *State) String() string {
	return s.Pending().String()
}
