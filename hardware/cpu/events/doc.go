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

// Package events implements the queue of timed hardware events.
//
// Each entry stores the number of cycles between the previous entry firing
// and itself firing. Only the entry at the head of the queue needs to be
// decremented as the cycle counter advances. When its count reaches zero or
// less it is due and should be popped and dispatched.
//
// The queue is protected by its own mutex. It is touched on every counter
// update by the emulation goroutine and occasionally by other goroutines
// (savestate handling).
package events
