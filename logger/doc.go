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

// Package logger is the central log for the emulator. Entries are tagged
// with the name of the package that made them and repeated entries are
// collapsed.
//
// Logging requests carry a Permission. The emulation Environment implements
// the Permission interface and only the main emulation is allowed to log.
// Use logger.Allow when an entry should always be made.
package logger
