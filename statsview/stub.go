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

//go:build !statsview

package statsview

import (
	"fmt"
	"io"
)

// Address of the statistics server.
const Address = ""

// Available returns true if the statistics server has been built.
func Available() bool {
	return false
}

// Launch does nothing except note that the server is not available.
func Launch(output io.Writer) {
	fmt.Fprintln(output, "stats server not available. build with the statsview tag")
}
