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

package registers_test

import (
	"testing"

	"github.com/gopher64/gopher64/hardware/cpu/registers"
	"github.com/gopher64/gopher64/test"
)

func TestTLBDefined(t *testing.T) {
	var e registers.TLBEntry
	e.Reset()
	test.ExpectFailure(t, e.Defined())

	e.UpdateValue(0, 0x00400000, 0, registers.TLBLoValid)
	test.ExpectSuccess(t, e.Defined())

	e.UpdateValue(0, 0x00400000, registers.TLBLoValid, 0)
	test.ExpectSuccess(t, e.Defined())

	e.UpdateValue(0, 0x00400000, registers.TLBLoDirty, registers.TLBLoDirty)
	test.ExpectFailure(t, e.Defined())
}

func TestTLBMatches(t *testing.T) {
	var e registers.TLBEntry

	// 4KB pages. entry maps the even/odd pair starting at 0x00400000 for ASID 5
	e.UpdateValue(0, 0x00400005, registers.TLBLoValid, registers.TLBLoValid)
	test.ExpectSuccess(t, e.Matches(0x00400000, 5))
	test.ExpectSuccess(t, e.Matches(0x00401ffc, 5))
	test.ExpectFailure(t, e.Matches(0x00402000, 5))
	test.ExpectFailure(t, e.Matches(0x00400000, 6))
	test.ExpectFailure(t, e.Global())

	// global entries ignore the ASID
	e.UpdateValue(0, 0x00400005, registers.TLBLoValid|registers.TLBLoGlobal, registers.TLBLoValid|registers.TLBLoGlobal)
	test.ExpectSuccess(t, e.Matches(0x00400000, 6))
	test.ExpectSuccess(t, e.Global())

	// 16KB pages
	e.UpdateValue(0x6000, 0x00400000, registers.TLBLoGlobal, registers.TLBLoGlobal)
	test.ExpectSuccess(t, e.Matches(0x00407ffc, 0))
	test.ExpectFailure(t, e.Matches(0x00408000, 0))
}
