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

package digest_test

import (
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

func TestSum(t *testing.T) {
	var gpr [32]uint64
	var cp0, fpu, fpuControl [32]uint32

	a := digest.Sum(gpr[:], cp0[:], fpu[:], fpuControl[:])

	// the same values in a different register file give a different digest
	fpu[0] = 1
	b := digest.Sum(gpr[:], cp0[:], fpu[:], fpuControl[:])
	fpu[0] = 0
	fpuControl[0] = 1
	c := digest.Sum(gpr[:], cp0[:], fpu[:], fpuControl[:])

	test.ExpectInequality(t, a, b)
	test.ExpectInequality(t, b, c)
	test.ExpectEquality(t, a, digest.Sum(make([]uint64, 32), make([]uint32, 32), make([]uint32, 32), make([]uint32, 32)))
}

func TestRegisters(t *testing.T) {
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSize)
	test.DemandSuccess(t, err)

	mc := cpu.NewCPU(env, mem)
	dig := digest.NewRegisters(mc)
	test.DemandImplements[cpu.EventHandler](t, dig, nil)
	test.DemandImplements[digest.Digest](t, dig, nil)

	zero := dig.Hash()
	dig.OnVerticalBlank()
	first := dig.Hash()
	test.ExpectInequality(t, first, zero)

	// digests are chained so an unchanged register file still changes the hash
	dig.OnVerticalBlank()
	test.ExpectInequality(t, dig.Hash(), first)
	test.ExpectEquality(t, dig.Frames(), 2)

	dig.ResetDigest()
	test.ExpectEquality(t, dig.Hash(), zero)
	dig.OnVerticalBlank()
	test.ExpectEquality(t, dig.Hash(), first)

	mc.GPR[4] = 1
	dig.ResetDigest()
	dig.OnVerticalBlank()
	test.ExpectInequality(t, dig.Hash(), first)
	test.ExpectFailure(t, dig.OnCPUStopped())
}

func TestAudio(t *testing.T) {
	a := digest.NewAudio()
	b := digest.NewAudio()
	zero := a.Hash()

	a.SetSampleRate(32000)
	b.SetSampleRate(32000)
	test.ExpectSuccess(t, a.SetAudio([]int16{1, 2, 3, 4}))
	test.ExpectSuccess(t, b.SetAudio([]int16{1, 2, 3, 5}))

	// nothing is hashed until the buffer is full or mixing ends
	test.ExpectEquality(t, a.Hash(), zero)
	test.ExpectSuccess(t, a.EndMixing())
	test.ExpectSuccess(t, b.EndMixing())
	test.ExpectInequality(t, a.Hash(), zero)
	test.ExpectInequality(t, a.Hash(), b.Hash())

	// a long stream
	a.ResetDigest()
	test.ExpectSuccess(t, a.SetAudio(make([]int16, 2000)))
	test.ExpectInequality(t, a.Hash(), zero)
}
