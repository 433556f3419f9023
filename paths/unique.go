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

package paths

import (
	"strings"
	"time"
)

// UniqueFilename returns a name built from the prefix, the ROM name and the
// current time, in the form:
//
//	prefix_romname_YYYYMMDD_HHMMSS
//
// The ROM name is left out if it is empty. Spaces in the ROM name become
// underscores. Existing files are not checked.
func UniqueFilename(prefix string, romName string) string {
	parts := []string{prefix}
	if n := strings.Join(strings.Fields(romName), "_"); n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, time.Now().Format("20060102_150405"))
	return strings.Join(parts, "_")
}
