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

package environment

import (
	"github.com/gopher64/gopher64/hardware/preferences"
)

// Label is used to name the environment
type Label string

// MainEmulation is the label used for the main emulation
const MainEmulation = Label("")

// Environment is used to provide context for an emulation. Particularly useful
// when using more than one emulation, for example when a savestate is loaded
// into a scratch emulation for inspection
type Environment struct {
	Label Label

	// the emulation preferences
	Prefs *preferences.Preferences
}

// NewEnvironment is the preferred method of initialisation for the Environment type.
//
// The prefs argument can be nil and a new Preferences instance will be
// created. Providing a non-nil value allows the preferences of more than one
// emulation to be synchronised.
func NewEnvironment(label Label, prefs *preferences.Preferences) (*Environment, error) {
	env := &Environment{
		Label: label,
	}

	if prefs == nil {
		var err error
		prefs, err = preferences.NewPreferences()
		if err != nil {
			return nil, err
		}
	}

	env.Prefs = prefs

	return env, nil
}

// IsMainEmulation returns true if the environment is intended for the main
// emulation in the system
func (env *Environment) IsMainEmulation() bool {
	return env.Label == MainEmulation
}

// IsEmulation checks the emulation label and returns true if it matches
func (env *Environment) IsEmulation(label Label) bool {
	return env.Label == label
}

// AllowLogging implements the logger.Permission interface. Only the main
// emulation is allowed to log
func (env *Environment) AllowLogging() bool {
	return env.IsMainEmulation()
}
