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

package prefs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename of the global preferences file
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is written to the head of every preferences file
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// NoPrefsFile is returned by Load() when the preferences file does not exist
var NoPrefsFile = errors.New("prefs: no prefs file")

// separates the key and value on each line of the preferences file
const keySep = " :: "

// Disk represents preference values as stored on disk.
type Disk struct {
	path    string
	entries map[string]pref
}

func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, k := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", k, keySep, dsk.entries[k]))
	}
	return s.String()
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	dsk := &Disk{
		path:    path,
		entries: make(map[string]pref),
	}
	return dsk, nil
}

// Add preference value to list of values to store/load from disk. The key
// must not contain the key separator and must not be in use already.
func (dsk *Disk) Add(key string, p pref) error {
	if strings.Contains(key, strings.TrimSpace(keySep)) {
		return fmt.Errorf("prefs: illegal character in key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: key %q already added", key)
	}
	dsk.entries[key] = p
	return nil
}

func (dsk *Disk) keys() []string {
	keys := make([]string, 0, len(dsk.entries))
	for k := range dsk.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Reset all preference values to their zero value.
func (dsk *Disk) Reset() error {
	for _, k := range dsk.keys() {
		if err := dsk.entries[k].Reset(); err != nil {
			return err
		}
	}
	return nil
}

// read the key/value pairs in the preferences file. keys that are no longer
// used are dropped
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", NoPrefsFile, dsk.path)
		}
		return nil, fmt.Errorf("prefs: %w", err)
	}
	defer f.Close()

	return parse(f)
}

func parse(r io.Reader) (map[string]string, error) {
	values := make(map[string]string)

	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		l := scanner.Text()
		if first {
			first = false
			if l == WarningBoilerPlate {
				continue
			}
		}

		k, v, ok := strings.Cut(l, keySep)
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if isDefunct(k) {
			continue
		}
		values[k] = v
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("prefs: %w", err)
	}

	return values, nil
}

// Save current preference values to disk. Entries in the file that are not
// part of this Disk instance are preserved.
func (dsk *Disk) Save() error {
	values, err := dsk.read()
	if err != nil {
		if !errors.Is(err, NoPrefsFile) {
			return err
		}
		values = make(map[string]string)
	}

	for k, p := range dsk.entries {
		values[k] = p.String()
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	f, err := os.Create(dsk.path)
	if err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%s\n", WarningBoilerPlate)
	for _, k := range keys {
		fmt.Fprintf(w, "%s%s%s\n", k, keySep, values[k])
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("prefs: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}

	return nil
}

// Load preference values from disk. Values on the command line stack (see
// PushCommandLineStack()) take priority over values in the file.
//
// If saveOnFail is true and the preferences file does not exist, the current
// values are saved to disk. The NoPrefsFile error is still returned.
func (dsk *Disk) Load(saveOnFail bool) error {
	values, err := dsk.read()
	if err != nil {
		if errors.Is(err, NoPrefsFile) && saveOnFail {
			if serr := dsk.Save(); serr != nil {
				return serr
			}
		}
		if aerr := dsk.applyCommandLine(); aerr != nil {
			return aerr
		}
		return err
	}

	for k, v := range values {
		if p, ok := dsk.entries[k]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}

	return dsk.applyCommandLine()
}

func (dsk *Disk) applyCommandLine() error {
	for _, k := range dsk.keys() {
		if ok, v := GetCommandLinePref(k); ok {
			if err := dsk.entries[k].Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", k, err)
			}
		}
	}
	return nil
}
