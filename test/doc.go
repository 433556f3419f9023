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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The ExpectFailure and ExpectSuccess functions test for failure and success
// under generic conditions. The documentation for those functions describe
// the currently supported types.
//
// It is worth describing how the "Expect" functions handle the nil type
// because it is not obvious. The nil type is considered a success and
// consequently will cause ExpectFailure to fail and ExpectSuccess to succeed.
// This is because of how errors usually work (nil to indicate no error).
//
// The Demand functions are the same as the Expect functions except that a
// failure is fatal to the test. Useful when the value being tested is used
// in further tests and so must be correct.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output.
package test
