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

// Package hardware is the base package for the console emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The System type is the root of the emulation and contains references to
// all the console sub-systems. A ROM is opened with Open(), which resets
// every part of the console in a fixed order, and the emulation is started
// with Run(). The CPU package documentation describes how the emulation is
// driven once it is running.
package hardware
