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

//go:build statsview

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address of the statistics server.
const Address = "localhost:12665"

const url = "/debug/statsview"

// Available returns true if the statistics server has been built.
func Available() bool {
	return true
}

// Launch the statistics server in a new goroutine.
func Launch(output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()
	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
}
