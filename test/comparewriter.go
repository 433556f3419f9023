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

package test

import "strings"

// CompareWriter collects everything written to it so that output can be
// compared against an expected string.
type CompareWriter struct {
	strings.Builder
}

// Clear forgets everything written so far.
func (tw *CompareWriter) Clear() {
	tw.Reset()
}

// Compare returns true if the collected output is exactly s.
func (tw *CompareWriter) Compare(s string) bool {
	return tw.String() == s
}
