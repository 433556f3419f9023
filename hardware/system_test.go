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

package hardware_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/test"
)

func writeROM(t *testing.T, dir string, country byte) string {
	t.Helper()

	d := make([]byte, 0x1000)
	binary.BigEndian.PutUint32(d, 0x80371240)
	binary.BigEndian.PutUint32(d[0x10:], 0xcafef00d)
	binary.BigEndian.PutUint32(d[0x14:], 0x0badf00d)
	copy(d[0x20:], "SYSTEM TEST")
	d[0x3e] = country

	fn := filepath.Join(dir, "system.z64")
	test.DemandSuccess(t, os.WriteFile(fn, d, 0644))
	return fn
}

func newSystem(t *testing.T) *hardware.System {
	t.Helper()

	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, prf.FrameLimit.Set(false))
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)

	sys, err := hardware.NewSystem(env)
	test.DemandSuccess(t, err)
	return sys
}

type stopAfter struct {
	mc   *cpu.CPU
	vbls int
}

func (s *stopAfter) OnVerticalBlank() {
	s.vbls--
	if s.vbls == 0 {
		s.mc.Halt("test")
	}
}

func (s *stopAfter) OnCPUStopped() bool {
	return false
}

func TestOpenAndRun(t *testing.T) {
	sys := newSystem(t)
	test.ExpectSuccess(t, errors.Is(sys.Run(), hardware.ErrNoROM))
	test.ExpectFailure(t, sys.IsOpen())

	dir := t.TempDir()
	fn := writeROM(t, dir, 'P')
	test.DemandSuccess(t, sys.Open(fn, rom.SaveEEP4K))
	test.ExpectSuccess(t, sys.IsOpen())
	test.ExpectEquality(t, sys.ROMID(), rom.ID{CRC1: 0xcafef00d, CRC2: 0x0badf00d, Country: 'P'})
	test.ExpectEquality(t, len(sys.ROMHeader()), rom.HeaderSize)
	test.ExpectEquality(t, sys.CPU.PC, uint32(0xbfc00000))
	test.ExpectEquality(t, sys.Mem.Read(memory.SPStatus)&memory.SPStatusHalt, uint32(memory.SPStatusHalt))

	// the mempack has been formatted
	test.ExpectEquality(t, sys.Mem.Mempack[0], byte(0x81))

	h := &stopAfter{mc: sys.CPU, vbls: 3}
	sys.CPU.RegisterEventHandler(h)
	test.DemandSuccess(t, sys.Run())
	test.ExpectEquality(t, sys.CPU.VerticalInterrupts(), uint32(3))
	test.ExpectFailure(t, sys.CPU.IsRunning())

	// closing writes save data
	sys.Close()
	test.ExpectFailure(t, sys.IsOpen())
	test.ExpectSuccess(t, errors.Is(sys.Run(), hardware.ErrNoROM))

	_, err := os.Stat(filepath.Join(dir, "Save", "system.mpk"))
	test.ExpectSuccess(t, err)
	_, err = os.Stat(filepath.Join(dir, "Save", "system.sav"))
	test.ExpectSuccess(t, err)

	// closing twice is harmless
	sys.Close()
}

func TestOpenFailure(t *testing.T) {
	sys := newSystem(t)

	dir := t.TempDir()
	fn := writeROM(t, dir, 'E')
	test.DemandSuccess(t, sys.Open(fn, rom.SaveUnknown))

	// a failed open leaves the system closed
	test.ExpectFailure(t, sys.Open(filepath.Join(dir, "missing.z64"), rom.SaveUnknown))
	test.ExpectFailure(t, sys.IsOpen())
	test.ExpectSuccess(t, sys.ROMID().IsZero())

	// the save directory cannot be created because a file is in the way
	dir = t.TempDir()
	fn = writeROM(t, dir, 'E')
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "Save"), nil, 0644))
	test.ExpectFailure(t, sys.Open(fn, rom.SaveUnknown))
	test.ExpectFailure(t, sys.IsOpen())
}
