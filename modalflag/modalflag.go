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

package modalflag

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

const modeSeparator = "/"

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// continue with command line processing
	ParseContinue ParseResult = iota

	// help was requested and has been printed
	ParseHelp

	// an error has occurred and is returned as the second return value
	ParseError
)

// Modes handles command line arguments one mode at a time. The Output field
// should be specified before calling Parse() otherwise help messages are
// discarded.
type Modes struct {
	Output io.Writer

	// a new flagset is created by every call to NewMode()
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// sub-modes for the next call to Parse(). the first is the default
	subModes []string

	// the modes selected so far. never reset
	path []string

	additionalHelp string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all the modes selected so far separated by a slash.
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and begins a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode indicates that the remaining arguments belong to a new mode. Flags
// and sub-modes added before the call are forgotten.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
	md.flags.SetOutput(io.Discard)
	md.additionalHelp = ""
}

// AdditionalHelp is printed after the list of flags and sub-modes.
func (md *Modes) AdditionalHelp(help string) {
	md.additionalHelp = help
}

// AddSubModes to the list of sub-modes for the next call to Parse().
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt flag for next call to Parse().
func (md *Modes) AddInt(name string, value int, usage string) *int {
	return md.flags.Int(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}

// AddVar adds a flag with a custom type for next call to Parse(). The default
// value is the value of the flag.Value when it is added.
func (md *Modes) AddVar(value flag.Value, name string, usage string) {
	md.flags.Var(value, name, usage)
}

// Parse the arguments for the current mode. If sub-modes have been added
// then the first argument after the flags selects the mode. If it doesn't
// name a sub-mode, or if a flag is not recognised, the default is selected
// and the arguments are left in place.
func (md *Modes) Parse() (ParseResult, error) {
	err := md.flags.Parse(md.args[md.argsIdx:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			md.help()
			return ParseHelp, nil
		}

		// an unknown flag may belong to the default sub-mode
		if len(md.subModes) == 0 {
			return ParseError, fmt.Errorf("%s: %w", md.describe(), err)
		}
		md.path = append(md.path, md.subModes[0])
		return ParseContinue, nil
	}

	// the position of the next argument in the overall argument list
	md.argsIdx = len(md.args) - md.flags.NArg()

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		arg := strings.ToUpper(md.flags.Arg(0))
		for _, m := range md.subModes {
			if m == arg {
				mode = m
				md.argsIdx++
				break
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs returns the arguments after the flags of the most recent call
// to Parse(). A selected sub-mode is not included.
func (md *Modes) RemainingArgs() []string {
	return md.args[md.argsIdx:]
}

// GetArg returns the numbered argument from RemainingArgs(). Returns the
// empty string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	r := md.RemainingArgs()
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

func (md *Modes) describe() string {
	if len(md.path) == 0 {
		return "command line"
	}
	return fmt.Sprintf("%s mode", md.Path())
}

func (md *Modes) help() {
	if md.Output == nil {
		return
	}

	var flags strings.Builder
	md.flags.SetOutput(&flags)
	md.flags.PrintDefaults()
	md.flags.SetOutput(io.Discard)

	if flags.Len() == 0 && len(md.subModes) == 0 {
		if len(md.path) == 0 {
			fmt.Fprintln(md.Output, "No help available")
		} else {
			fmt.Fprintf(md.Output, "No help available for %s\n", md.describe())
		}
		return
	}

	if len(md.path) == 0 {
		fmt.Fprintln(md.Output, "Usage:")
	} else {
		fmt.Fprintf(md.Output, "Usage of %s:\n", md.describe())
	}

	io.WriteString(md.Output, flags.String())

	if len(md.subModes) > 0 {
		if flags.Len() > 0 {
			fmt.Fprintln(md.Output)
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.subModes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.subModes[0])
	}

	if md.additionalHelp != "" {
		fmt.Fprintf(md.Output, "\n%s\n", md.additionalHelp)
	}
}
