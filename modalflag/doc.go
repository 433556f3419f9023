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

// Package modalflag wraps the flag package of the standard library with
// support for program modes. Each mode has its own set of flags and may
// define sub-modes of its own.
//
// Arguments are given with NewArgs() and then parsed one mode at a time:
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "INSPECT", "ROMDB")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		log := md.AddBool("log", false, "echo log to stdout")
//		...
//	}
//
// The first sub-mode given to AddSubModes() is the default. It is selected
// when the next argument is not the name of a sub-mode. Sub-mode comparisons
// are case insensitive.
//
// Help is printed to the Output writer when the -help flag is given. In that
// case Parse() returns ParseHelp and no further processing should take place.
package modalflag
