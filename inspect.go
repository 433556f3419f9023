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
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/modalflag"
	"github.com/gopher64/gopher64/romdb"
	"github.com/gopher64/gopher64/savestate"
)

// the parts of a savestate drawn by the -dot flag. memory is left out
type registerView struct {
	ROM         rom.ID
	PC          uint32
	VICount     uint32
	GPR         [32]uint64
	CP0         [32]uint32
	Hi          uint64
	Lo          uint64
	TLB         []savestate.TLBEntry
	SIRegisters [4]uint32
}

func inspect(md *modalflag.Modes) error {
	md.NewMode()

	dot := md.AddString("dot", "", "write the registers as a graphviz dot file")
	dbPath := md.AddString("romdb", "", "ROM database used to find the ROM of the savestate")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("savestate file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	s, err := savestate.ReadFile(md.GetArg(0))
	if err != nil {
		return err
	}

	pth, err := romDatabasePath(*dbPath)
	if err != nil {
		return err
	}

	describe(md.Output, s, romdb.File(pth))

	if *dot != "" {
		f, err := os.Create(*dot)
		if err != nil {
			return err
		}

		memviz.Map(f, &registerView{
			ROM:     s.ID(),
			PC:      s.PC,
			VICount: s.VICount,
			GPR:     s.GPR,
			CP0:     s.CP0,
			Hi:      s.Hi,
			Lo:      s.Lo,
			TLB:     s.TLB[:],
			SIRegisters: [4]uint32{
				s.SIDRAMAddr, s.SIPIFAddrRD64B, s.SIPIFAddrWR64B, s.SIStatus,
			},
		})

		if err := f.Close(); err != nil {
			return err
		}
	}

	return nil
}

// describe writes a summary of the savestate to output
func describe(output io.Writer, s *savestate.State, db savestate.Lookup) {
	fmt.Fprintf(output, "ROM ID:   %s\n", s.ID())

	fn, err := db.Lookup(s.ID())
	switch {
	case err == nil:
		fmt.Fprintf(output, "ROM:      %s\n", fn)
	case errors.Is(err, romdb.ErrNotFound):
		fmt.Fprintf(output, "ROM:      not in database\n")
	default:
		fmt.Fprintf(output, "ROM:      unknown (%v)\n", err)
	}

	fmt.Fprintf(output, "PC:       %08x\n", s.PC)
	fmt.Fprintf(output, "VI count: %d\n", s.VICount)
	fmt.Fprintf(output, "RAM:      %d bytes\n", s.RAMSize)
	fmt.Fprintf(output, "digest:   %x\n", digest.Sum(s.GPR[:], s.CP0[:], s.FPU[:], s.FPUControl[:]))
}
