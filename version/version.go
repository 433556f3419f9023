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

// Package version reports the version of the emulator from the build
// information embedded by the Go toolchain.
package version

import (
	"fmt"
	"runtime/debug"
)

// ApplicationName is the name to use when referring to the application.
const ApplicationName = "Gopher64"

// set with -ldflags "-X github.com/gopher64/gopher64/version.number=v0.1.0"
var number string

var (
	version  string
	revision string
)

// Version returns the version string, the revision string and whether this is
// a numbered release.
//
// The version is "unreleased" for builds from a VCS checkout without a
// version number and "local" when there is no VCS information at all.
func Version() (string, string, bool) {
	return version, revision, number != "" && version == number
}

// String returns the application name, version and revision in one line.
func String() string {
	if number != "" && version == number {
		return fmt.Sprintf("%s %s", ApplicationName, version)
	}
	return fmt.Sprintf("%s %s (%s)", ApplicationName, version, revision)
}

func init() {
	revision, version = fromBuildInfo(debug.ReadBuildInfo())
	if number != "" {
		version = number
	}
}

func fromBuildInfo(info *debug.BuildInfo, ok bool) (string, string) {
	var vcs bool
	var rev string
	var modified bool

	if ok {
		for _, v := range info.Settings {
			switch v.Key {
			case "vcs":
				vcs = true
			case "vcs.revision":
				rev = v.Value
			case "vcs.modified":
				modified = v.Value == "true"
			}
		}
	}

	if rev == "" {
		rev = "no revision information"
	} else if modified {
		rev = fmt.Sprintf("%s+dirty", rev)
	}

	if vcs {
		return rev, "unreleased"
	}
	return rev, "local"
}
