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
	"errors"
	"fmt"
	"sync"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/cpu/jobs"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/logger"
)

// ErrOperationPending is returned by the Handler when a request cannot be
// accepted because an earlier request has not completed.
var ErrOperationPending = errors.New("savestate: operation already pending")

// Lookup finds the filename of a ROM from its ID.
type Lookup interface {
	Lookup(id rom.ID) (string, error)
}

// the states of the request state machine
type fsmState int

const (
	idle fsmState = iota
	savePending
	loadPending
	loadRetryAfterStop
)

func (st fsmState) String() string {
	switch st {
	case idle:
		return "idle"
	case savePending:
		return "save pending"
	case loadPending:
		return "load pending"
	case loadRetryAfterStop:
		return "load retry after stop"
	}
	return "unknown state"
}

// Save captures the state of the system and writes it to the named file. The
// emulation must be stopped or the function must be called from the
// emulation goroutine.
func Save(sys *hardware.System, filename string, compress bool) error {
	return WriteFile(filename, Capture(sys), compress)
}

// Load reads the named file and applies it to the system. The same
// restrictions apply as for Save().
func Load(sys *hardware.System, filename string) error {
	s, err := ReadFile(filename)
	if err != nil {
		return err
	}
	if err := s.Apply(sys); err != nil {
		return err
	}
	sys.CPU.ResetFragmentCache()
	return nil
}

// Handler services savestate requests made while the emulation is running. It
// implements the cpu.EventHandler interface.
type Handler struct {
	env *environment.Environment
	sys *hardware.System
	db  Lookup

	crit     sync.Mutex
	state    fsmState
	filename string

	// the most recent result. nil if the most recent operation succeeded
	result error
}

// NewHandler is the preferred method of initialisation for the Handler type.
// The Handler is registered with the CPU of the system and should be removed
// with Close() when it is no longer required. The db argument can be nil, in
// which case a savestate made with a different ROM cannot be loaded.
func NewHandler(env *environment.Environment, sys *hardware.System, db Lookup) *Handler {
	h := &Handler{
		env: env,
		sys: sys,
		db:  db,
	}
	sys.CPU.RegisterEventHandler(h)
	return h
}

// Close unregisters the Handler from the CPU.
func (h *Handler) Close() {
	h.sys.CPU.UnregisterEventHandler(h)
}

func (h *Handler) request(st fsmState, filename string) bool {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.state != idle {
		logger.Logf(h.env, "savestate", "%v: %s", ErrOperationPending, h.state)
		return false
	}

	h.state = st
	h.filename = filename
	h.sys.CPU.Jobs.Add(jobs.ChangeCore)

	return true
}

// RequestSave asks for the state to be saved at the next vertical blank.
// Returns false if a request is already pending. Safe to call from any
// goroutine.
func (h *Handler) RequestSave(filename string) bool {
	return h.request(savePending, filename)
}

// RequestLoad asks for the state to be loaded at the next vertical blank.
// Returns false if a request is already pending. Safe to call from any
// goroutine.
func (h *Handler) RequestLoad(filename string) bool {
	return h.request(loadPending, filename)
}

// Pending returns true if a request has not yet completed.
func (h *Handler) Pending() bool {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.state != idle
}

// Result returns the result of the most recently completed request.
func (h *Handler) Result() error {
	h.crit.Lock()
	defer h.crit.Unlock()
	return h.result
}

// OnVerticalBlank implements the cpu.EventHandler interface.
func (h *Handler) OnVerticalBlank() {
	h.crit.Lock()
	defer h.crit.Unlock()

	switch h.state {
	case savePending:
		logger.Logf(h.env, "savestate", "saving %s", h.filename)
		h.result = Save(h.sys, h.filename, h.env.Prefs.CompressSaveStates.Get().(bool))
		if h.result != nil {
			logger.Log(h.env, "savestate", h.result)
		}
		h.state = idle

	case loadPending:
		logger.Logf(h.env, "savestate", "loading %s", h.filename)
		h.result = Load(h.sys, h.filename)
		if h.result == nil {
			h.state = idle
			return
		}

		// the load can be tried again once the CPU has stopped, when it is
		// safe to replace the ROM
		logger.Log(h.env, "savestate", h.result)
		h.state = loadRetryAfterStop
		h.sys.CPU.Halt("load savestate")
	}
}

// OnCPUStopped implements the cpu.EventHandler interface. Returns true if a
// load was attempted and the CPU should continue running.
func (h *Handler) OnCPUStopped() bool {
	h.crit.Lock()
	defer h.crit.Unlock()

	if h.state != loadRetryAfterStop {
		return false
	}
	h.state = idle

	h.result = h.retryLoad()
	if h.result != nil {
		logger.Log(h.env, "savestate", h.result)
		logger.Log(h.env, "savestate", "continuing with current ROM")
	}

	return true
}

// retryLoad replaces the ROM with the one the savestate was made with and
// loads the savestate. The system is left unchanged if the savestate cannot
// be read or if the ROM cannot be found.
func (h *Handler) retryLoad() error {
	s, err := ReadFile(h.filename)
	if err != nil {
		return err
	}

	id := s.ID()
	if h.db == nil {
		return fmt.Errorf("savestate: no ROM database to find %s", id)
	}

	romFilename, err := h.db.Lookup(id)
	if err != nil {
		return fmt.Errorf("savestate: %w", err)
	}
	logger.Logf(h.env, "savestate", "found %s for %s", romFilename, id)

	// the save type is only known if the ROM is the same file
	prev := h.sys.ROM
	saveType := rom.SaveUnknown
	if romFilename == prev.Filename {
		saveType = prev.SaveType
	}

	h.sys.Close()
	if err := h.sys.Open(romFilename, saveType); err != nil {
		if rerr := h.sys.Open(prev.Filename, prev.SaveType); rerr != nil {
			logger.Log(h.env, "savestate", rerr)
		}
		return err
	}

	if err := s.Apply(h.sys); err != nil {
		return err
	}
	h.sys.CPU.ResetFragmentCache()

	logger.Logf(h.env, "savestate", "loaded %s", h.filename)

	return nil
}
