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

// Package core contains the execution cores that can be selected by the CPU.
//
// The Interpreter executes one instruction at a time using a Stepper. The
// Recompiler executes blocks of instructions using a FragmentRunner and only
// looks at the job mask when it has been told that a job is pending. Both
// cores honour the same contract: after every unit of work the counter is
// updated and, if a job is pending, CheckJobs() decides whether to return
// from Execute().
//
// Instruction decoding is not part of this package. The NopStepper and
// BlockRunner types advance the program counter and the branch delay state
// without otherwise changing the CPU and are suitable for exercising the
// scheduling machinery.
package core
