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
	"os"
	"path/filepath"
)

// the name of the config directory. it is placed in the current directory
// when a directory of this name already exists there, otherwise it is placed
// in the user's config directory
const gopherConfigDir = "gopher64"

// ResourcePath returns the resource string (representing the resource to be
// loaded) prepended with OS/build specific paths.
//
// The subPth argument should not include the leading config directory, which
// is prepended automatically. The directory named by subPth is created if it
// doesn't exist. Both arguments can be empty.
func ResourcePath(subPth string, file string) (string, error) {
	base, err := getBasePath(subPth)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, file), nil
}

// getBasePath returns the base path for resources, creating any directories
// as required
func getBasePath(subPth string) (string, error) {
	local := "." + gopherConfigDir

	var pth string
	if _, err := os.Stat(local); err == nil {
		pth = filepath.Join(local, subPth)
	} else {
		cnf, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		pth = filepath.Join(cnf, gopherConfigDir, subPth)
	}

	if _, err := os.Stat(pth); err == nil {
		return pth, nil
	}

	if err := os.MkdirAll(pth, 0700); err != nil {
		return "", err
	}

	return pth, nil
}
