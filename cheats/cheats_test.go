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

package cheats_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopher64/gopher64/cheats"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

const cheatFile = `
; test cheats
[lives]
8033B21D 0064

[level select]
D033AFA1 0020
8033AFA1 0000
8133AFA2 BEEF

[!disabled]
80000000 00FF
`

func TestParse(t *testing.T) {
	l, err := cheats.Parse(strings.NewReader(cheatFile))
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(l), 3)

	test.ExpectEquality(t, l[0].Name, "lives")
	test.ExpectSuccess(t, l[0].Enabled)
	test.ExpectEquality(t, l[0].Codes[0], cheats.Code{Type: cheats.Write8, Address: 0x33b21d, Value: 0x64})
	test.ExpectEquality(t, l[0].Codes[0].String(), "8033B21D 0064")

	test.ExpectEquality(t, len(l[1].Codes), 3)
	test.ExpectEquality(t, l[1].Codes[0].Type, cheats.Equal8)
	test.ExpectEquality(t, l[1].Codes[2].Type, cheats.Write16)

	test.ExpectEquality(t, l[2].Name, "disabled")
	test.ExpectFailure(t, l[2].Enabled)

	_, err = cheats.Parse(strings.NewReader("8033B21D 0064\n"))
	test.ExpectFailure(t, err)

	_, err = cheats.Parse(strings.NewReader("[bad]\n8033B21D 64\n"))
	test.ExpectFailure(t, err)

	_, err = cheats.ParseCode("A033B21D 0064")
	test.ExpectFailure(t, err)
}

func TestActivate(t *testing.T) {
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSize)
	test.DemandSuccess(t, err)

	romFile := filepath.Join(t.TempDir(), "game.z64")
	test.DemandSuccess(t, os.WriteFile(cheats.Filename(romFile), []byte(cheatFile), 0644))
	test.ExpectEquality(t, cheats.Filename(romFile), strings.TrimSuffix(romFile, ".z64")+".cht")

	ch := cheats.NewCheats(env, mem)
	test.DemandSuccess(t, ch.Reset(romFile))
	test.ExpectEquality(t, len(ch.List()), 3)

	// condition fails so only the halfword write is made
	ch.Activate()
	test.ExpectEquality(t, mem.ReadRAM8(0x33b21d), uint8(0x64))
	test.ExpectEquality(t, mem.ReadRAM8(0x33afa1), uint8(0x00))
	test.ExpectEquality(t, mem.ReadRAM16(0x33afa2), uint16(0xbeef))
	test.ExpectEquality(t, mem.ReadRAM8(0x000000), uint8(0x00))

	// condition passes
	mem.WriteRAM8(0x33afa1, 0x20)
	mem.WriteRAM16(0x33afa2, 0)
	ch.Activate()
	test.ExpectEquality(t, mem.ReadRAM8(0x33afa1), uint8(0x00))
	test.ExpectEquality(t, mem.ReadRAM16(0x33afa2), uint16(0xbeef))

	test.ExpectSuccess(t, ch.Enable("disabled", true))
	test.ExpectFailure(t, ch.Enable("missing", true))
	ch.Activate()
	test.ExpectEquality(t, mem.ReadRAM8(0x000000), uint8(0xff))

	// missing cheat file
	test.ExpectSuccess(t, ch.Reset(filepath.Join(t.TempDir(), "other.z64")))
	test.ExpectEquality(t, len(ch.List()), 0)
}
