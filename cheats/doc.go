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

// Package cheats applies GameShark style codes to RDRAM on every vertical
// blank.
//
// A cheat file is a plain text file of named groups of codes. The name of a
// group is given in square brackets and each code is an address and a value
// in hexadecimal:
//
//	[infinite lives]
//	8033B21D 0064
//
//	[level select]
//	D033AFA1 0020
//	8033AFA1 0000
//
// Lines starting with a semi-colon are comments. A group whose name is
// preceded by an exclamation mark is disabled.
//
// The supported code types are 80 (write byte), 81 (write halfword), D0
// (continue if byte equals value) and D1 (continue if halfword equals value).
// A failed D0 or D1 condition skips the code that follows it.
package cheats
