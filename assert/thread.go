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

package assert

import "sync/atomic"

// the goroutine that owns the emulation state. zero if not yet set
var emulationThread atomic.Uint64

// SetEmulationThread records the calling goroutine as the goroutine that owns
// the emulation state. Called when the run loop starts.
func SetEmulationThread() {
	emulationThread.Store(GetGoRoutineID())
}

// ClearEmulationThread forgets the emulation goroutine. Called when the run
// loop exits.
func ClearEmulationThread() {
	emulationThread.Store(0)
}

// IsEmulationThread returns true if the calling goroutine is the emulation
// goroutine or if no emulation goroutine has been recorded.
func IsEmulationThread() bool {
	id := emulationThread.Load()
	return id == 0 || id == GetGoRoutineID()
}
