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

// Package savedata persists the battery backed storage of the cartridge and
// the controller paks. Data is loaded when a ROM is opened and written back
// when it is marked as dirty, on a regular schedule driven by the vertical
// blank, and when the ROM is closed.
package savedata

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/logger"
)

// extension of the mempack file
const mempackExtension = ".mpk"

// SaveData handles the cartridge save data and the mempack.
type SaveData struct {
	env *environment.Environment
	mem *memory.Memory

	crit sync.Mutex

	saveType    rom.SaveType
	saveFile    string
	mempackFile string

	saveDirty    bool
	mempackDirty bool
}

// NewSaveData is the preferred method of initialisation for the SaveData
// type.
func NewSaveData(env *environment.Environment, mem *memory.Memory) *SaveData {
	return &SaveData{
		env: env,
		mem: mem,
	}
}

// Directory returns the directory used for save files. The save.directory
// preference is used if it is set, otherwise a directory named Save next to
// the ROM file.
func (sd *SaveData) Directory(romFilename string) string {
	if dir := sd.env.Prefs.SaveDirectory.String(); dir != "" {
		return dir
	}
	return filepath.Join(filepath.Dir(romFilename), "Save")
}

// Filename returns the name of the file used to store data of the given
// extension for the ROM.
func (sd *SaveData) Filename(romFilename string, ext string) string {
	n := filepath.Base(romFilename)
	n = strings.TrimSuffix(n, filepath.Ext(n))
	return filepath.Join(sd.Directory(romFilename), n+ext)
}

// Reset loads the save data and mempack for the ROM. Missing files are not an
// error. A missing mempack is formatted and will be written on the next
// flush.
func (sd *SaveData) Reset(romFilename string, saveType rom.SaveType) error {
	sd.crit.Lock()
	defer sd.crit.Unlock()

	if err := os.MkdirAll(sd.Directory(romFilename), 0755); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	sd.saveType = saveType
	sd.saveDirty = false
	sd.saveFile = ""
	clear(sd.mem.Save[:])

	if size := saveType.Size(); size > 0 {
		sd.saveFile = sd.Filename(romFilename, saveType.Extension())

		data, err := os.ReadFile(sd.saveFile)
		if err == nil {
			logger.Logf(sd.env, "save", "loading save from %s", sd.saveFile)
			copy(sd.mem.Save[:size], data)
		} else if errors.Is(err, fs.ErrNotExist) {
			logger.Logf(sd.env, "save", "save file %s cannot be found", sd.saveFile)
		} else {
			return fmt.Errorf("save: %w", err)
		}
	}

	sd.mempackFile = sd.Filename(romFilename, mempackExtension)

	data, err := os.ReadFile(sd.mempackFile)
	if err == nil {
		logger.Logf(sd.env, "save", "loading mempack from %s", sd.mempackFile)
		clear(sd.mem.Mempack[:])
		copy(sd.mem.Mempack[:], data)
		sd.mempackDirty = false
	} else if errors.Is(err, fs.ErrNotExist) {
		logger.Logf(sd.env, "save", "mempack file %s cannot be found", sd.mempackFile)
		formatMempack(&sd.mem.Mempack)
		sd.mempackDirty = true
	} else {
		return fmt.Errorf("save: %w", err)
	}

	return nil
}

// MarkSaveDirty indicates that the save data has changed.
func (sd *SaveData) MarkSaveDirty() {
	sd.crit.Lock()
	defer sd.crit.Unlock()
	sd.saveDirty = true
}

// MarkMempackDirty indicates that the mempack has changed.
func (sd *SaveData) MarkMempackDirty() {
	sd.crit.Lock()
	defer sd.crit.Unlock()
	sd.mempackDirty = true
}

// Flush writes dirty data to disk. If force is true the data is written even
// if it is not dirty. Write errors are logged and the data is no longer
// considered dirty.
func (sd *SaveData) Flush(force bool) {
	sd.crit.Lock()
	defer sd.crit.Unlock()

	if (sd.saveDirty || force) && sd.saveType != rom.SaveUnknown && sd.saveFile != "" {
		logger.Logf(sd.env, "save", "saving to %s", sd.saveFile)
		err := os.WriteFile(sd.saveFile, sd.mem.Save[:sd.saveType.Size()], 0644)
		if err != nil {
			logger.Log(sd.env, "save", err)
		}
		sd.saveDirty = false
	}

	if (sd.mempackDirty || force) && sd.mempackFile != "" {
		logger.Logf(sd.env, "save", "saving mempack to %s", sd.mempackFile)
		err := os.WriteFile(sd.mempackFile, sd.mem.Mempack[:], 0644)
		if err != nil {
			logger.Log(sd.env, "save", err)
		}
		sd.mempackDirty = false
	}
}

// Close writes all data to disk.
func (sd *SaveData) Close() {
	sd.Flush(true)
}
