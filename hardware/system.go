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

package hardware

import (
	"fmt"

	"github.com/gopher64/gopher64/cheats"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware/audio"
	"github.com/gopher64/gopher64/hardware/cpu"
	"github.com/gopher64/gopher64/hardware/cpu/core"
	"github.com/gopher64/gopher64/hardware/memory"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/hardware/rsp"
	"github.com/gopher64/gopher64/hardware/savedata"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/performance/limiter"
)

// ErrNoROM is returned by Run() when no ROM has been opened.
var ErrNoROM = cpu.ErrNoROM

// the number of instructions in a recompiler fragment
const fragmentLength = 32

// System is the root of the emulation and contains references to all the
// parts of the console.
type System struct {
	env *environment.Environment

	Mem    *memory.Memory
	CPU    *cpu.CPU
	RSP    *rsp.RSP
	Audio  *audio.Audio
	Save   *savedata.SaveData
	Cheats *cheats.Cheats

	// the ROM currently open. the zero value if no ROM is open
	ROM rom.Loader

	// created when a ROM is opened with the refresh rate of the ROM's region
	limiter *limiter.FpsLimiter

	// closers for the parts opened by the most recent call to Open(), in
	// the order they were opened
	closers []closer
}

type closer struct {
	name  string
	close func()
}

// a part of the system that is opened in order by Open()
type part struct {
	name  string
	open  func() error
	close func()
}

// NewSystem is the preferred method of initialisation for the System type.
func NewSystem(env *environment.Environment) (*System, error) {
	mem, err := memory.NewMemory(memory.RDRAMSize)
	if err != nil {
		return nil, fmt.Errorf("hardware: %w", err)
	}

	sys := &System{
		env: env,
		Mem: mem,
	}

	sys.CPU = cpu.NewCPU(env, mem)
	sys.CPU.SetCores(
		core.NewInterpreter(sys.CPU, core.NopStepper{}),
		core.NewRecompiler(sys.CPU, &core.BlockRunner{Step: core.NopStepper{}, Length: fragmentLength}),
	)

	sys.RSP = rsp.NewRSP(mem, &sys.CPU.Events)
	sys.Audio = audio.NewAudio(env, mem)
	sys.Save = savedata.NewSaveData(env, mem)
	sys.Cheats = cheats.NewCheats(env, mem)

	return sys, nil
}

// parts returns the table of parts opened by Open() for the ROM.
func (sys *System) parts(filename string, saveType rom.SaveType) []part {
	return []part{
		{
			name: "rom",
			open: func() error {
				ld := rom.NewLoader(filename, saveType)
				if err := ld.Load(); err != nil {
					return err
				}
				sys.ROM = ld
				return nil
			},
			close: func() {
				sys.ROM = rom.Loader{}
			},
		},
		{
			name: "memory",
			open: func() error {
				sys.Mem.Reset()
				return nil
			},
		},
		{
			name: "audio",
			open: func() error {
				sys.Audio.Reset(sys.ROM.ID().IsPAL())
				return nil
			},
			close: func() {
				if err := sys.Audio.Close(); err != nil {
					logger.Log(sys.env, "hardware", err)
				}
			},
		},
		{
			name: "limiter",
			open: func() error {
				var err error
				sys.limiter, err = limiter.NewFPSLimiter(sys.ROM.ID().RefreshRate())
				return err
			},
			close: func() {
				sys.limiter.Close()
				sys.limiter = nil
			},
		},
		{
			name: "cpu",
			open: func() error {
				sys.CPU.Plumb(cpu.Peripherals{
					Limiter: sys.limiter,
					Audio:   sys.Audio,
					Save:    sys.Save,
					Cheats:  sys.Cheats,
					RSP:     sys.RSP,
				})
				sys.CPU.Reset()
				return nil
			},
			close: func() {
				sys.CPU.Close()
				sys.CPU.Plumb(cpu.Peripherals{})
			},
		},
		{
			name: "rsp",
			open: func() error {
				sys.RSP.Reset()
				return nil
			},
		},
		{
			name: "save",
			open: func() error {
				return sys.Save.Reset(filename, saveType)
			},
			close: func() {
				sys.Save.Close()
			},
		},
		{
			name: "cheats",
			open: func() error {
				return sys.Cheats.Reset(filename)
			},
		},
	}
}

// Open the ROM and reset the system ready for Run(). Any ROM already open is
// closed first. If any part of the system fails to open, the parts that have
// been opened are closed again.
func (sys *System) Open(filename string, saveType rom.SaveType) error {
	sys.Close()

	for _, p := range sys.parts(filename, saveType) {
		if err := p.open(); err != nil {
			sys.Close()
			return fmt.Errorf("hardware: %s: %w", p.name, err)
		}
		if p.close != nil {
			sys.closers = append(sys.closers, closer{name: p.name, close: p.close})
		}
	}

	logger.Logf(sys.env, "hardware", "opened %s [%s] (%s)", sys.ROM.Name(), sys.ROM.ID(), sys.ROM.ShortName())

	return nil
}

// Close the system. Parts are closed in the reverse order to which they were
// opened. Does nothing if no ROM is open.
func (sys *System) Close() {
	if len(sys.closers) == 0 {
		return
	}

	for i := len(sys.closers) - 1; i >= 0; i-- {
		sys.closers[i].close()
	}
	sys.closers = sys.closers[:0]

	logger.Log(sys.env, "hardware", "closed")
}

// IsOpen returns true if a ROM is open.
func (sys *System) IsOpen() bool {
	return sys.ROM.HasLoaded()
}

// ROMID returns the ID of the open ROM. The zero value if no ROM is open.
func (sys *System) ROMID() rom.ID {
	return sys.ROM.ID()
}

// ROMHeader returns the header of the open ROM in big-endian byte order.
func (sys *System) ROMHeader() []byte {
	return sys.ROM.Header()
}

// Run the emulation until it is halted.
func (sys *System) Run() error {
	if !sys.IsOpen() {
		return ErrNoROM
	}
	return sys.CPU.Run()
}

// SetLimit changes the speed of the limiter. Has no effect if no ROM is open.
func (sys *System) SetLimit(fps int) error {
	if sys.limiter == nil {
		return nil
	}
	return sys.limiter.SetLimit(fps)
}
