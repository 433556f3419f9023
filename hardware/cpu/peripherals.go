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

// Limiter slows the emulation to the refresh rate of the console.
type Limiter interface {
	Limit()
}

// Audio is notified on every vertical blank so that it can consume the
// samples produced since the previous one.
type Audio interface {
	UpdateOnVbl(wait bool)
}

// Save writes battery backed and mempack data to disk.
type Save interface {
	Flush(force bool)
}

// Cheats applies cheat codes to memory.
type Cheats interface {
	Activate()
}

// RSP reports whether the signal processor is executing a task.
type RSP interface {
	IsRunning() bool
}

// Peripherals are the parts of the console the CPU calls out to. Any field
// may be nil, in which case the CPU behaves as if the part did nothing.
type Peripherals struct {
	Limiter Limiter
	Audio   Audio
	Save    Save
	Cheats  Cheats
	RSP     RSP
}
