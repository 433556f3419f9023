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
	"fmt"
	"sort"
	"strings"
	"sync"
)

// the command line stack is a list of groups. each group is a map of keys to
// values as parsed from a prefs string of the form "key::value; key::value"
var commandLine struct {
	crit  sync.Mutex
	stack []map[string]Value
}

// SizeCommandLineStack returns the number of groups that have been added with
// PushCommandLineStack().
func SizeCommandLineStack() int {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	return len(commandLine.stack)
}

// PopCommandLineStack forgets the most recent group added by
// PushCommandLineStack().
//
// Returns the "unused" preferences of the stack entry.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return ""
	}

	popped := commandLine.stack[len(commandLine.stack)-1]
	commandLine.stack = commandLine.stack[:len(commandLine.stack)-1]

	keys := make([]string, 0, len(popped))
	for key := range popped {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s::%v; ", key, popped[key]))
	}

	return strings.TrimSuffix(s.String(), "; ")
}

// PushCommandLineStack parses a prefs string and adds it as a new group.
// Malformed key/value pairs are ignored.
func PushCommandLineStack(prefs string) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	cl := make(map[string]Value)
	for _, p := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(p, "::")
		if ok {
			cl[strings.TrimSpace(k)] = strings.TrimSpace(v)
		}
	}
	commandLine.stack = append(commandLine.stack, cl)
}

// GetCommandLinePref value from current group. The value is deleted when it
// is returned.
func GetCommandLinePref(key string) (bool, Value) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	if len(commandLine.stack) == 0 {
		return false, nil
	}

	cl := commandLine.stack[len(commandLine.stack)-1]
	if v, ok := cl[key]; ok {
		delete(cl, key)
		return true, v
	}

	return false, nil
}
