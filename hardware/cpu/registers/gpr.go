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

package registers

// Names of the general purpose registers as used by assemblers.
var Names = [32]string{
	"zr", "at", "v0", "v1", "a0", "a1", "a2", "a3",
	"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7",
	"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7",
	"t8", "t9", "k0", "k1", "gp", "sp", "fp", "ra",
}

// Delay indicates the branch delay state of the CPU.
type Delay int

// List of valid Delay values.
const (
	// the next instruction is executed normally
	NoDelay Delay = iota

	// a branch has been taken. the next instruction is in the delay slot
	DoDelay

	// the current instruction is in the delay slot. TargetPC is loaded into
	// the PC afterwards
	InDelay
)

func (d Delay) String() string {
	switch d {
	case NoDelay:
		return "no delay"
	case DoDelay:
		return "do delay"
	case InDelay:
		return "in delay"
	}
	return "unknown delay"
}
