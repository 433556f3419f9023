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

// Package cpu implements the main processor of the console and the scheduling
// machinery that surrounds it.
//
// Execution is performed by a Core. The interpreter and recompiler cores are
// found in the core sub-package. A core executes instructions and after each
// one calls UpdateCounter() to advance the count register and the event queue,
// and then CheckJobs() to service any asynchronous requests. The core returns
// from Execute() only when CheckJobs() returns true.
//
// Two sources of asynchronous work exist. Timed events (vertical blank, the
// compare timer, audio task completion and the delayed SP interrupt) are held
// in the event queue found in the events sub-package and are dispatched by
// DispatchEvent(). Requests from outside the emulation goroutine, such as
// Halt() or a savestate request, are communicated by setting bits in the job
// mask found in the jobs sub-package.
//
// Run() drives the active core until the run loop is stopped. When it stops,
// every registered EventHandler is notified and the loop restarts if any of
// them asks for it. This is how savestates are captured and restored between
// instructions.
package cpu
