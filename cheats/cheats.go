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

package cheats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/logger"
)

// Extension of cheat files. The cheat file for a ROM has the same name as the
// ROM file, in the same directory.
const Extension = ".cht"

// Code types.
const (
	Write8   uint8 = 0x80
	Write16  uint8 = 0x81
	Equal8   uint8 = 0xd0
	Equal16  uint8 = 0xd1
	addrMask       = 0x00ffffff
)

// RAM is the part of the memory system that cheat codes change.
type RAM interface {
	ReadRAM8(addr uint32) uint8
	WriteRAM8(addr uint32, v uint8)
	ReadRAM16(addr uint32) uint16
	WriteRAM16(addr uint32, v uint16)
}

// Code is a single GameShark code.
type Code struct {
	Type    uint8
	Address uint32
	Value   uint16
}

func (c Code) String() string {
	return fmt.Sprintf("%02X%06X %04X", c.Type, c.Address, c.Value)
}

// Cheat is a named group of codes.
type Cheat struct {
	Name    string
	Enabled bool
	Codes   []Code
}

// ParseCode parses a code in the form XXXXXXXX YYYY.
func ParseCode(s string) (Code, error) {
	f := strings.Fields(s)
	if len(f) != 2 || len(f[0]) != 8 || len(f[1]) != 4 {
		return Code{}, fmt.Errorf("cheats: malformed code (%s)", s)
	}

	addr, err := strconv.ParseUint(f[0], 16, 32)
	if err != nil {
		return Code{}, fmt.Errorf("cheats: malformed code (%s)", s)
	}
	val, err := strconv.ParseUint(f[1], 16, 16)
	if err != nil {
		return Code{}, fmt.Errorf("cheats: malformed code (%s)", s)
	}

	c := Code{
		Type:    uint8(addr >> 24),
		Address: uint32(addr) & addrMask,
		Value:   uint16(val),
	}

	switch c.Type {
	case Write8, Write16, Equal8, Equal16:
	default:
		return Code{}, fmt.Errorf("cheats: unsupported code type (%02X)", c.Type)
	}

	return c, nil
}

// Parse reads cheats from the io.Reader.
func Parse(r io.Reader) ([]Cheat, error) {
	var cheats []Cheat

	scanner := bufio.NewScanner(r)
	ln := 0
	for scanner.Scan() {
		ln++
		s := strings.TrimSpace(scanner.Text())
		if s == "" || strings.HasPrefix(s, ";") {
			continue
		}

		if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
			name := strings.TrimSpace(s[1 : len(s)-1])
			enabled := !strings.HasPrefix(name, "!")
			name = strings.TrimSpace(strings.TrimPrefix(name, "!"))
			cheats = append(cheats, Cheat{Name: name, Enabled: enabled})
			continue
		}

		if len(cheats) == 0 {
			return nil, fmt.Errorf("cheats: line %d: code outside of a group", ln)
		}

		c, err := ParseCode(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", ln, err)
		}
		cheats[len(cheats)-1].Codes = append(cheats[len(cheats)-1].Codes, c)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cheats: %w", err)
	}

	return cheats, nil
}

// Cheats is the list of cheats for the current ROM.
type Cheats struct {
	env *environment.Environment
	mem RAM

	crit   sync.Mutex
	cheats []Cheat
}

// NewCheats is the preferred method of initialisation for the Cheats type.
func NewCheats(env *environment.Environment, mem RAM) *Cheats {
	return &Cheats{
		env: env,
		mem: mem,
	}
}

// Filename returns the name of the cheat file for a ROM.
func Filename(romFilename string) string {
	return strings.TrimSuffix(romFilename, filepath.Ext(romFilename)) + Extension
}

// Reset replaces the current cheats with those in the cheat file for the ROM.
// A missing cheat file is not an error.
func (c *Cheats) Reset(romFilename string) error {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.cheats = nil

	fn := Filename(romFilename)
	f, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("cheats: %w", err)
	}
	defer f.Close()

	cheats, err := Parse(f)
	if err != nil {
		return fmt.Errorf("cheats: %s: %w", filepath.Base(fn), err)
	}
	c.cheats = cheats

	logger.Logf(c.env, "cheats", "%d cheats loaded from %s", len(cheats), fn)

	return nil
}

// Set replaces the current cheats.
func (c *Cheats) Set(cheats []Cheat) {
	c.crit.Lock()
	defer c.crit.Unlock()
	c.cheats = cheats
}

// Enable the named cheat. Returns false if no cheat has that name.
func (c *Cheats) Enable(name string, enable bool) bool {
	c.crit.Lock()
	defer c.crit.Unlock()
	for i := range c.cheats {
		if c.cheats[i].Name == name {
			c.cheats[i].Enabled = enable
			return true
		}
	}
	return false
}

// List returns a copy of the current cheats.
func (c *Cheats) List() []Cheat {
	c.crit.Lock()
	defer c.crit.Unlock()
	l := make([]Cheat, len(c.cheats))
	copy(l, c.cheats)
	return l
}

// Activate applies all enabled cheats to memory. Implements the
// cpu.Cheats interface.
func (c *Cheats) Activate() {
	c.crit.Lock()
	defer c.crit.Unlock()

	for _, ch := range c.cheats {
		if !ch.Enabled {
			continue
		}

		skip := false
		for _, code := range ch.Codes {
			if skip {
				skip = false
				continue
			}

			switch code.Type {
			case Write8:
				c.mem.WriteRAM8(code.Address, uint8(code.Value))
			case Write16:
				c.mem.WriteRAM16(code.Address, code.Value)
			case Equal8:
				skip = c.mem.ReadRAM8(code.Address) != uint8(code.Value)
			case Equal16:
				skip = c.mem.ReadRAM16(code.Address) != code.Value
			}
		}
	}
}
