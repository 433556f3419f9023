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

// Package prefs facilitates the storage of preferential values in the
// emulator.
//
// The Bool, Int and String types hold a single preference value. They are
// safe to read and write from different goroutines. Hooks can be registered
// with SetHookPre() and SetHookPost() to react to changes.
//
// The Disk type associates preference values with a key and saves/loads
// them to a file. The format of the file is a warning line followed by one
// "key :: value" line per preference, sorted by key.
//
// The command line stack allows preferences to be overridden for a single
// run of the program. The stack is consulted whenever Disk.Load() is called.
package prefs
