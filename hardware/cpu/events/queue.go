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

package events

import (
	"fmt"
	"strings"
	"sync"
)

// Type identifies the kind of timed event.
type Type int

// List of valid event types.
const (
	VerticalBlank Type = iota
	Compare
	Audio
	SPInterrupt
)

func (t Type) String() string {
	switch t {
	case VerticalBlank:
		return "VBL"
	case Compare:
		return "COMPARE"
	case Audio:
		return "AUDIO"
	case SPInterrupt:
		return "SPINT"
	}
	return fmt.Sprintf("unknown event (%d)", int(t))
}

// MaxEvents is the capacity of the queue. At most one event of each type is
// ever pending in normal operation.
const MaxEvents = 4

// Event is an entry in the queue. Count is the number of cycles between the
// previous entry firing and this entry firing.
type Event struct {
	Count int64
	Type  Type
}

// Queue is the ordered list of pending events. The entry at index zero is
// always the soonest to fire and the absolute time of any entry is the sum
// of the counts up to and including that entry.
//
// All methods are safe to call from any goroutine.
type Queue struct {
	crit   sync.Mutex
	events [MaxEvents]Event
	num    int
}

func (q *Queue) String() string {
	q.crit.Lock()
	defer q.crit.Unlock()

	s := strings.Builder{}
	for i, e := range q.events[:q.num] {
		if i > 0 {
			s.WriteString(" ")
		}
		s.WriteString(fmt.Sprintf("%s(%d)", e.Type, e.Count))
	}
	return s.String()
}

// Reset empties the queue and schedules a single vertical blank event.
func (q *Queue) Reset(vblCycles int64) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.num = 0
	q.add(vblCycles, VerticalBlank)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.num
}

// Events returns a copy of the pending events in firing order.
func (q *Queue) Events() []Event {
	q.crit.Lock()
	defer q.crit.Unlock()
	e := make([]Event, q.num)
	copy(e, q.events[:q.num])
	return e
}

// Add schedules an event to fire count cycles from now. Events with the same
// due time fire in the order they were added.
func (q *Queue) Add(count int64, typ Type) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.add(count, typ)
}

func (q *Queue) add(count int64, typ Type) {
	if count <= 0 {
		panic(fmt.Sprintf("events: count for %s must be positive (%d)", typ, count))
	}
	if q.num >= MaxEvents {
		panic(fmt.Sprintf("events: too many events adding %s", typ))
	}

	i := 0
	for ; i < q.num; i++ {
		if count < q.events[i].Count {
			// the new event splices in ahead of entry i, which now fires
			// relative to the new event
			q.events[i].Count -= count
			copy(q.events[i+1:q.num+1], q.events[i:q.num])
			break
		}
		count -= q.events[i].Count
	}

	q.events[i] = Event{Count: count, Type: typ}
	q.num++
}

// remove the first event of the given type, folding its count into the entry
// that follows it
func (q *Queue) remove(typ Type) bool {
	for i := 0; i < q.num; i++ {
		if q.events[i].Type != typ {
			continue
		}
		if i+1 < q.num {
			q.events[i+1].Count += q.events[i].Count
		}
		copy(q.events[i:q.num-1], q.events[i+1:q.num])
		q.num--
		q.events[q.num] = Event{}
		return true
	}
	return false
}

// SetCompare replaces any pending compare event with one that fires count
// cycles from now.
func (q *Queue) SetCompare(count int64) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.remove(Compare)
	q.add(count, Compare)
}

// Advance subtracts cycles from the soonest event. Returns true if that event
// is now due.
func (q *Queue) Advance(cycles int64) bool {
	q.crit.Lock()
	defer q.crit.Unlock()
	if q.num == 0 {
		return false
	}
	q.events[0].Count -= cycles
	return q.events[0].Count <= 0
}

// Due returns true if the soonest event is ready to be popped.
func (q *Queue) Due() bool {
	q.crit.Lock()
	defer q.crit.Unlock()
	return q.num > 0 && q.events[0].Count <= 0
}

// Pop removes the soonest event and returns its type. The event must be due.
// Any overshoot (a negative count) is discarded.
func (q *Queue) Pop() Type {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.num == 0 {
		panic("events: pop from empty queue")
	}
	if q.events[0].Count > 0 {
		panic(fmt.Sprintf("events: pop of %s before it is due (%d)", q.events[0].Type, q.events[0].Count))
	}

	typ := q.events[0].Type
	copy(q.events[:q.num-1], q.events[1:q.num])
	q.num--
	q.events[q.num] = Event{}
	return typ
}

// Skip moves the soonest event so that it fires on the next cycle. Returns
// the number of cycles skipped, which the caller should add to the count
// register. The queue must not be empty.
func (q *Queue) Skip() int64 {
	q.crit.Lock()
	defer q.crit.Unlock()

	if q.num == 0 {
		panic("events: skip with empty queue")
	}

	// nothing to skip if the event is already due on the next cycle
	if q.events[0].Count <= 1 {
		return 0
	}

	skip := q.events[0].Count - 1
	q.events[0].Count = 1
	return skip
}

// VerticalBlankCount returns the number of cycles until the vertical blank
// event fires. Returns zero if no vertical blank is pending.
func (q *Queue) VerticalBlankCount() int64 {
	q.crit.Lock()
	defer q.crit.Unlock()

	var total int64
	for _, e := range q.events[:q.num] {
		total += e.Count
		if e.Type == VerticalBlank {
			return total
		}
	}
	return 0
}

// SetVerticalBlankCount reschedules the vertical blank event to fire count
// cycles from now. Other events keep their absolute due time.
func (q *Queue) SetVerticalBlankCount(count int64) {
	q.crit.Lock()
	defer q.crit.Unlock()
	q.remove(VerticalBlank)
	q.add(count, VerticalBlank)
}
