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

package audio_test

import (
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/audio"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

type mixer struct {
	samples []int16
	rate    int
	ended   bool
}

func (m *mixer) SetAudio(s []int16) error {
	m.samples = append(m.samples, s...)
	return nil
}

func (m *mixer) SetSampleRate(rate int) { m.rate = rate }

func (m *mixer) EndMixing() error {
	m.ended = true
	return nil
}

func TestAudio(t *testing.T) {
	prf, err := preferences.NewPreferencesFromFile(filepath.Join(t.TempDir(), "preferences"))
	test.DemandSuccess(t, err)
	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	test.DemandSuccess(t, err)
	mem, err := memory.NewMemory(memory.RDRAMSize)
	test.DemandSuccess(t, err)

	var m, n mixer
	au := audio.NewAudio(env, mem)
	au.AddMixer(&m)
	au.AddMixer(&n)
	au.Reset(false)

	mem.Write(memory.AIDACRate, 1103)
	test.ExpectEquality(t, au.SampleRate(), 48681812/1104)
	test.ExpectEquality(t, m.rate, au.SampleRate())

	// nothing to collect
	au.UpdateOnVbl(false)
	test.ExpectEquality(t, len(m.samples), 0)

	mem.WriteRAM16(0x1000, 0x0100)
	mem.WriteRAM16(0x1002, 0xff00)
	mem.WriteRAM16(0x1004, 0x7fff)
	mem.WriteRAM16(0x1006, 0x8000)
	mem.Write(memory.AIDRAMAddr, 0xa0001000)
	mem.Write(memory.AILen, 8)

	au.UpdateOnVbl(false)
	test.DemandEquality(t, len(m.samples), 4)
	test.ExpectEquality(t, m.samples[0], int16(0x100))
	test.ExpectEquality(t, m.samples[1], int16(-256))
	test.ExpectEquality(t, m.samples[2], int16(32767))
	test.ExpectEquality(t, m.samples[3], int16(-32768))
	test.ExpectEquality(t, mem.Read(memory.AILen), uint32(0))

	// every mixer receives the same audio
	test.ExpectEquality(t, len(n.samples), len(m.samples))
	test.ExpectEquality(t, n.rate, m.rate)

	test.ExpectSuccess(t, au.Close())
	test.ExpectSuccess(t, m.ended)
	test.ExpectSuccess(t, n.ended)

	// hook is removed on close
	mem.Write(memory.AIDACRate, 999)
	test.ExpectEquality(t, m.rate, 48681812/1104)
}
