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

package savestate

import (
	"bufio"
	"compress/gzip"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gopher64/gopher64/hardware/memory"
)

// ErrBadMagic is returned when a file does not start with the savestate
// magic number.
var ErrBadMagic = errors.New("savestate: wrong magic number")

// Magic is the first word of every savestate.
const Magic = 0x23d8a6c8

// the file stores 64bit FPU registers in this space. always zero
const fpuPadding = 0x80

// the SP and DPC register blocks are stored with eight bytes of padding
const regPadding = 8

// PIF RAM is only byte swapped if the first byte in the file has neither of
// these bits set
const pifSwapMask = 0xc0

// start of a gzip stream
var gzipMagic = []byte{0x1f, 0x8b}

type encoder struct {
	w   io.Writer
	err error
}

func (e *encoder) write(v any) {
	if e.err == nil {
		e.err = binary.Write(e.w, binary.LittleEndian, v)
	}
}

func (e *encoder) bytes(b []byte) {
	if e.err == nil {
		_, e.err = e.w.Write(b)
	}
}

func (e *encoder) pad(n int) {
	e.bytes(make([]byte, n))
}

// swapped writes a big-endian buffer as little-endian words
func (e *encoder) swapped(b []byte) {
	s := make([]byte, len(b))
	for i := range b {
		s[i] = b[i^3]
	}
	e.bytes(s)
}

// Encode writes the state to the io.Writer.
func Encode(w io.Writer, s *State) error {
	bw := bufio.NewWriter(w)
	e := &encoder{w: bw}

	e.write(uint32(Magic))
	e.write(s.RAMSize)
	e.swapped(s.Header[:])
	e.write(max(s.VICount, 1))
	e.write(s.PC)
	e.write(s.GPR)
	e.write(s.FPU)
	e.pad(fpuPadding)
	e.write(s.CP0)
	e.write(s.FPUControl)
	e.write(s.Hi)
	e.write(s.Lo)

	e.write(s.RDRAMRegs)
	e.write(s.SPRegs)
	e.pad(regPadding)
	e.write(s.DPCRegs)
	e.pad(regPadding)
	e.write(s.MIRegs)
	e.write(s.VIRegs)
	e.write(s.AIRegs)
	e.write(s.PIRegs)
	e.write(s.RIRegs)
	e.write(s.SIDRAMAddr)
	e.write(s.SIPIFAddrRD64B)
	e.write(s.SIPIFAddrWR64B)
	e.write(s.SIStatus)

	for _, t := range s.TLB {
		e.write(t)
	}

	e.swapped(s.PIFRAM[:])
	e.swapped(s.RDRAM)
	e.swapped(s.SPMem[:])

	if e.err != nil {
		return fmt.Errorf("savestate: %w", e.err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("savestate: %w", err)
	}

	return nil
}

type decoder struct {
	r   io.Reader
	err error
}

func (d *decoder) read(v any) {
	if d.err == nil {
		d.err = binary.Read(d.r, binary.LittleEndian, v)
	}
}

func (d *decoder) bytes(b []byte) {
	if d.err == nil {
		_, d.err = io.ReadFull(d.r, b)
	}
}

func (d *decoder) skip(n int) {
	d.bytes(make([]byte, n))
}

// swapped reads little-endian words into a big-endian buffer
func (d *decoder) swapped(b []byte) {
	s := make([]byte, len(b))
	d.bytes(s)
	for i := range b {
		b[i] = s[i^3]
	}
}

// Decode reads a state from the io.Reader. The state is not applied to the
// system.
func Decode(r io.Reader) (*State, error) {
	d := &decoder{r: r}
	s := &State{}

	var magic uint32
	d.read(&magic)
	if d.err == nil && magic != Magic {
		return nil, ErrBadMagic
	}

	d.read(&s.RAMSize)
	if d.err == nil && !validRAMSize(s.RAMSize) {
		return nil, fmt.Errorf("savestate: unsupported RAM size (%#x)", s.RAMSize)
	}

	d.swapped(s.Header[:])
	d.read(&s.VICount)
	d.read(&s.PC)
	d.read(&s.GPR)
	d.read(&s.FPU)
	d.skip(fpuPadding)
	d.read(&s.CP0)
	d.read(&s.FPUControl)
	d.read(&s.Hi)
	d.read(&s.Lo)

	d.read(&s.RDRAMRegs)
	d.read(&s.SPRegs)
	d.skip(regPadding)
	d.read(&s.DPCRegs)
	d.skip(regPadding)
	d.read(&s.MIRegs)
	d.read(&s.VIRegs)
	d.read(&s.AIRegs)
	d.read(&s.PIRegs)
	d.read(&s.RIRegs)
	d.read(&s.SIDRAMAddr)
	d.read(&s.SIPIFAddrRD64B)
	d.read(&s.SIPIFAddrWR64B)
	d.read(&s.SIStatus)

	for i := range s.TLB {
		d.read(&s.TLB[i])
	}

	// PIF RAM in some files is not stored as little-endian words. those
	// files are recognised by the first byte
	var pif [memory.PIFRAMSize]byte
	d.bytes(pif[:])
	if pif[0]&pifSwapMask != 0 {
		for i := range pif {
			s.PIFRAM[i] = pif[i^3]
		}
	} else {
		s.PIFRAM = pif
	}

	if d.err == nil {
		s.RDRAM = make([]byte, s.RAMSize)
		d.swapped(s.RDRAM)
	}
	d.swapped(s.SPMem[:])

	if d.err != nil {
		return nil, fmt.Errorf("savestate: %w", d.err)
	}

	return s, nil
}

// WriteFile encodes the state to the named file. If compress is true the file
// is a gzip stream.
func WriteFile(filename string, s *State, compress bool) (rerr error) {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("savestate: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("savestate: %w", err)
		}
	}()

	if !compress {
		return Encode(f, s)
	}

	zw := gzip.NewWriter(f)
	if err := Encode(zw, s); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("savestate: %w", err)
	}

	return nil
}

// ReadFile decodes the state in the named file. Gzip compressed files are
// detected automatically.
func ReadFile(filename string) (*State, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("savestate: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)

	var r io.Reader = br
	if m, err := br.Peek(len(gzipMagic)); err == nil && string(m) == string(gzipMagic) {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("savestate: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	return Decode(r)
}
