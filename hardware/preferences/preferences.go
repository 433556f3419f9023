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

package preferences

import (
	"errors"
	"fmt"

	"github.com/gopher64/gopher64/paths"
	"github.com/gopher64/gopher64/prefs"
)

// Preferences defines and collates all the preference values used by the
// emulation.
type Preferences struct {
	dsk *prefs.Disk

	// use the recompiler core when it is available
	Dynarec prefs.Bool

	// multiplier used to convert the VI vertical sync register into the
	// number of cycles between vertical blanks
	VISyncRate prefs.Int

	// apply cheat codes on every vertical blank
	Cheats prefs.Bool

	// limit emulation speed to the refresh rate of the ROM's region
	FrameLimit prefs.Bool

	// write savestates as gzip streams
	CompressSaveStates prefs.Bool

	// directory for EEPROM, SRAM, Flash and mempack files. if empty a
	// directory next to the ROM file is used
	SaveDirectory prefs.String
}

func (p *Preferences) String() string {
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the Preferences
// type. Values are loaded from the default preferences file.
func NewPreferences() (*Preferences, error) {
	pth, err := paths.ResourcePath("", prefs.DefaultPrefsFile)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	return NewPreferencesFromFile(pth)
}

// NewPreferencesFromFile is the same as NewPreferences except that the
// preferences file is specified.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := &Preferences{}
	p.SetDefaults()

	var err error
	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	err = p.dsk.Add("cpu.dynarec", &p.Dynarec)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("cpu.visyncrate", &p.VISyncRate)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("cpu.cheats", &p.Cheats)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("cpu.framelimit", &p.FrameLimit)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("savestate.compress", &p.CompressSaveStates)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}
	err = p.dsk.Add("save.directory", &p.SaveDirectory)
	if err != nil {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	err = p.dsk.Load(true)
	if err != nil && !errors.Is(err, prefs.NoPrefsFile) {
		return nil, fmt.Errorf("preferences: %w", err)
	}

	return p, nil
}

// SetDefaults reverts all preferences to the default values.
func (p *Preferences) SetDefaults() {
	p.Dynarec.Set(true)
	p.VISyncRate.Set(1500)
	p.Cheats.Set(false)
	p.FrameLimit.Set(true)
	p.CompressSaveStates.Set(false)
	p.SaveDirectory.Set("")
}

// Load current preferences from disk.
func (p *Preferences) Load() error {
	return p.dsk.Load(false)
}

// Save current preferences to disk.
func (p *Preferences) Save() error {
	return p.dsk.Save()
}
