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

// Package remote is a control surface for a running emulation. It serves
// JSON-RPC 2.0 over a websocket connection.
//
// The methods are:
//
//	savestate.save {"filename": string} -> bool
//	savestate.load {"filename": string} -> bool
//	cpu.halt       {"reason": string}   -> bool
//	cpu.status                          -> Status
//	cpu.registers                       -> Registers
//
// The savestate methods return false if an earlier savestate request has
// not yet completed.
//
// Register and status values are collected on the emulation goroutine at the
// next vertical blank, or immediately if the emulation is not running.
package remote
