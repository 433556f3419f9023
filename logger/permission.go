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

package logger

// Permission is consulted before an entry is added to the log. The
// environment implements it so that only the main emulation logs; a
// system opened to inspect a savestate stays quiet.
type Permission interface {
	AllowLogging() bool
}

type always struct{}

func (always) AllowLogging() bool { return true }

// Allow is the Permission to use when an entry must always be made.
var Allow Permission = always{}
