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

// Package savestate captures and restores the complete state of the emulated
// console.
//
// The file format is compatible with the savestates written by Project64. All
// values are little-endian and memory buffers are stored as a sequence of
// little-endian words. The format has no version field. The magic number at
// the start of the file identifies the format.
//
// Savestates are normally requested with the Handler type while the emulation
// is running. The request is serviced by the emulation goroutine on the next
// vertical blank. A savestate made with a different ROM to the one currently
// open can only be loaded once the CPU has stopped, at which point the ROM is
// replaced with the one found in the ROM database.
package savestate
