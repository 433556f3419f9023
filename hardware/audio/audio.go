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

// Package audio collects the samples produced by the console. On every
// vertical blank the buffer described by the AI registers is copied from
// RDRAM and passed to every Mixer.
package audio

import (
	"errors"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/logger"
)

// Mixer receives the audio produced by the emulation.
type Mixer interface {
	// samples are 16bit signed stereo pairs, left channel first
	SetAudio(samples []int16) error

	// called whenever the DAC rate changes
	SetSampleRate(rate int)

	// called when the ROM is closed
	EndMixing() error
}

// clock rate of the video interface, from which the DAC rate is derived
const (
	ntscVIClock = 48681812
	palVIClock  = 49656530
)

// masks applied to the AI address and length registers
const (
	addrMask   = 0x00fffff8
	lengthMask = 0x0003fff8
)

// Audio is the audio interface of the console.
type Audio struct {
	env    *environment.Environment
	mem    *memory.Memory
	mixers []Mixer

	clock      int
	sampleRate int

	samples []int16
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio(env *environment.Environment, mem *memory.Memory) *Audio {
	return &Audio{
		env:   env,
		mem:   mem,
		clock: ntscVIClock,
	}
}

// AddMixer adds a destination for the audio. Audio is discarded if no mixer
// has been added.
func (au *Audio) AddMixer(m Mixer) {
	au.mixers = append(au.mixers, m)
}

// Reset prepares the audio interface for a newly opened ROM.
func (au *Audio) Reset(pal bool) {
	au.clock = ntscVIClock
	if pal {
		au.clock = palVIClock
	}
	au.sampleRate = 0
	au.samples = au.samples[:0]
	au.mem.SetWriteHook(memory.AI, au.write)
}

// Close ends the collection of audio for the current ROM.
func (au *Audio) Close() error {
	au.mem.SetWriteHook(memory.AI, nil)
	var err error
	for _, m := range au.mixers {
		err = errors.Join(err, m.EndMixing())
	}
	return err
}

// SampleRate returns the sample rate selected by the DAC rate register. Zero
// if the register has not been written.
func (au *Audio) SampleRate() int {
	return au.sampleRate
}

func (au *Audio) write(reg memory.Register, value uint32) {
	if reg != memory.AIDACRate {
		return
	}
	rate := au.clock / int(value+1)
	if rate != au.sampleRate {
		au.sampleRate = rate
		logger.Logf(au.env, "audio", "sample rate %dHz", rate)
		for _, m := range au.mixers {
			m.SetSampleRate(rate)
		}
	}
}

// UpdateOnVbl copies the current audio buffer from RDRAM to the mixer and
// marks the buffer as consumed. There is no realtime output so the wait
// argument has no effect.
func (au *Audio) UpdateOnVbl(wait bool) {
	length := au.mem.Read(memory.AILen) & lengthMask
	if length == 0 {
		return
	}
	addr := au.mem.Read(memory.AIDRAMAddr) & addrMask

	au.samples = au.samples[:0]
	for i := uint32(0); i < length; i += 2 {
		au.samples = append(au.samples, int16(au.mem.ReadRAM16(addr+i)))
	}

	au.mem.Poke(memory.AILen, 0)

	for _, m := range au.mixers {
		if err := m.SetAudio(au.samples); err != nil {
			logger.Log(au.env, "audio", err)
		}
	}
}
