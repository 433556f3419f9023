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

package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/modalflag"
	"github.com/gopher64/gopher64/savestate"
	"github.com/gopher64/gopher64/test"
)

func writeROM(t *testing.T, dir string) string {
	t.Helper()

	d := make([]byte, 0x1000)
	binary.BigEndian.PutUint32(d, 0x80371240)
	binary.BigEndian.PutUint32(d[0x10:], 0x0badf00d)
	binary.BigEndian.PutUint32(d[0x14:], 0xdeadbeef)
	copy(d[0x20:], "MAIN")
	d[0x3e] = 'P'

	fn := filepath.Join(dir, "main.z64")
	test.DemandSuccess(t, os.WriteFile(fn, d, 0644))
	return fn
}

func openSystem(t *testing.T, romFile string) (*environment.Environment, *hardware.System) {
	t.Helper()

	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prf.FrameLimit.Set(false))
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)

	sys, err := hardware.NewSystem(env)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, sys.Open(romFile, rom.SaveUnknown))
	t.Cleanup(sys.Close)
	return env, sys
}

// modes prepared as if the top level mode has already been selected
func modes(output *strings.Builder, args ...string) *modalflag.Modes {
	md := &modalflag.Modes{Output: output}
	md.NewArgs(args)
	md.AddSubModes("RUN", "INSPECT", "ROMDB", "PERFORMANCE")
	_, _ = md.Parse()
	return md
}

func TestSaveTypeFlag(t *testing.T) {
	var f saveTypeFlag
	test.ExpectEquality(t, f.String(), "AUTO")
	test.ExpectSuccess(t, f.Set("sram"))
	test.ExpectEquality(t, f.SaveType, rom.SaveSRAM)
	test.ExpectFailure(t, f.Set("tape"))
	test.ExpectEquality(t, f.SaveType, rom.SaveSRAM)
}

func TestROMDatabase(t *testing.T) {
	dir := t.TempDir()
	romFile := writeROM(t, dir)
	db := filepath.Join(t.TempDir(), "romdb")

	var out strings.Builder
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db, "list")))
	test.ExpectEquality(t, out.String(), "database is empty\n")

	out.Reset()
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db, "scan", dir)))
	test.ExpectEquality(t, out.String(), "1 ROMs added. 1 in database\n")

	abs, err := filepath.Abs(romFile)
	test.DemandSuccess(t, err)

	out.Reset()
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db)))
	test.ExpectEquality(t, out.String(), fmt.Sprintf("000 0badf00d-deadbeef-50 %s\nTotal: 1\n", abs))

	test.ExpectFailure(t, romDatabase(modes(&out, "romdb", "-romdb", db, "delete", "one")))
	test.ExpectFailure(t, romDatabase(modes(&out, "romdb", "-romdb", db, "delete", "1")))
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db, "delete", "0")))

	out.Reset()
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db, "list")))
	test.ExpectEquality(t, out.String(), "database is empty\n")
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	romFile := writeROM(t, dir)
	db := filepath.Join(t.TempDir(), "romdb")

	_, sys := openSystem(t, romFile)
	sys.CPU.SetPC(0x80001000)
	stateFile := filepath.Join(t.TempDir(), "state")
	test.DemandSuccess(t, savestate.Save(sys, stateFile, false))

	var out strings.Builder
	test.DemandSuccess(t, romDatabase(modes(&out, "romdb", "-romdb", db, "scan", dir)))

	dot := filepath.Join(t.TempDir(), "state.dot")
	out.Reset()
	test.DemandSuccess(t, inspect(modes(&out, "inspect", "-romdb", db, "-dot", dot, stateFile)))

	abs, err := filepath.Abs(romFile)
	test.DemandSuccess(t, err)

	lines := strings.Split(out.String(), "\n")
	test.DemandEquality(t, len(lines), 7)
	test.ExpectEquality(t, lines[0], "ROM ID:   0badf00d-deadbeef-50")
	test.ExpectEquality(t, lines[1], fmt.Sprintf("ROM:      %s", abs))
	test.ExpectEquality(t, lines[2], "PC:       80001000")
	test.ExpectEquality(t, lines[4], "RAM:      8388608 bytes")
	test.ExpectSuccess(t, strings.HasPrefix(lines[5], "digest:   "))

	d, err := os.ReadFile(dot)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(d), "digraph"))

	test.ExpectFailure(t, inspect(modes(&out, "inspect")))
	test.ExpectFailure(t, inspect(modes(&out, "inspect", "-romdb", db, filepath.Join(dir, "missing"))))
}

func TestHotkey(t *testing.T) {
	dir := t.TempDir()
	env, sys := openSystem(t, writeROM(t, dir))

	states := savestate.NewHandler(env, sys, nil)
	defer states.Close()

	var out strings.Builder
	fn := filepath.Join(dir, "state")
	hotkey(&out, 's', sys, states, fn)
	test.ExpectSuccess(t, states.Pending())
	test.ExpectEquality(t, out.String(), "")

	hotkey(&out, 'l', sys, states, fn)
	test.ExpectEquality(t, out.String(), "! savestate operation already pending\n")

	out.Reset()
	hotkey(&out, 'S', sys, states, fn)
	test.ExpectEquality(t, out.String(), "! savestate operation already pending\n")

	snapshot := snapshotFilename(sys)
	test.ExpectSuccess(t, strings.HasPrefix(filepath.Base(snapshot), "snapshot_"))
	test.ExpectEquality(t, filepath.Ext(snapshot), ".st")
	test.ExpectEquality(t, filepath.Dir(snapshot), sys.Save.Directory(sys.ROM.Filename))

	// unassigned keys do nothing
	out.Reset()
	hotkey(&out, 'x', sys, states, fn)
	test.ExpectEquality(t, out.String(), "")
}
