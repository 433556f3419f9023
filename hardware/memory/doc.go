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

// Package memory contains the memory buffers and memory mapped peripheral
// registers of the console.
//
// Peripheral registers are grouped into regions (MI, VI, AI, etc.) and are
// identified by the Register type. Writes made with Write() call the write
// hook attached to the region, which is how the audio and RSP emulation react
// to register changes. Poke() writes without side effects and is used when
// restoring state.
//
// The emulation goroutine is the only goroutine that should access memory.
package memory
