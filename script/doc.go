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

// Package script runs Lua scripts alongside the emulation. A script is
// registered with the CPU as an event handler and may define the global
// functions:
//
//	on_vblank()         called after every vertical blank
//	on_stopped() bool   called when the emulation stops. returning true
//	                    restarts the emulation
//
// Scripts can call:
//
//	halt([reason])            stop the emulation
//	request_save(filename)    request a savestate. returns false if a request
//	                          is already pending
//	request_load(filename)    request a savestate load
//	count()                   the number of vertical blanks seen by the script
//	pc()                      the program counter of the CPU
//	vblanks()                 the number of vertical blanks since the ROM was
//	                          opened
//	log(message)              add a message to the central log
//
// A runtime error in a callback halts the emulation and disables the script.
// The error is available with the Err() function.
package script
