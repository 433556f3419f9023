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

package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/savestate"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
)

// Path is the URL path at which ListenAndServe() accepts websocket
// connections.
const Path = "/rpc"

// DefaultAddress is the address used by the command line when none is given.
const DefaultAddress = "localhost:12664"

// how long a request for register values waits for the emulation goroutine
const requestTimeout = 5 * time.Second

// how often a waiting request checks whether the emulation has stopped
const pollInterval = 50 * time.Millisecond

// the maximum number of requests for register values that can be waiting for
// the next vertical blank
const maxPending = 16

// FileParams are the parameters of the savestate methods.
type FileParams struct {
	Filename string `json:"filename"`
}

// HaltParams are the parameters of the cpu.halt method.
type HaltParams struct {
	Reason string `json:"reason"`
}

// Status is the result of the cpu.status method.
type Status struct {
	Running          bool   `json:"running"`
	ROM              string `json:"rom"`
	ROMID            string `json:"romID"`
	PC               uint32 `json:"pc"`
	VerticalBlanks   uint32 `json:"vblanks"`
	NextVBL          uint32 `json:"nextVBL"`
	SavestatePending bool   `json:"savestatePending"`
}

// Registers is the result of the cpu.registers method.
type Registers struct {
	PC         uint32     `json:"pc"`
	GPR        [32]uint64 `json:"gpr"`
	CP0        [32]uint32 `json:"cp0"`
	FPU        [32]uint32 `json:"fpu"`
	FPUControl [32]uint32 `json:"fpuControl"`
	Hi         uint64     `json:"hi"`
	Lo         uint64     `json:"lo"`
	Digest     string     `json:"digest"`
}

type snapshot struct {
	status Status
	regs   Registers
}

// Server implements the http.Handler interface for the websocket endpoint
// and the cpu.EventHandler interface for collecting register values.
type Server struct {
	env    *environment.Environment
	sys    *hardware.System
	states *savestate.Handler

	upgrader websocket.Upgrader

	// requests for register values waiting for the emulation goroutine
	requests chan chan snapshot

	crit  sync.Mutex
	conns map[*jsonrpc2.Conn]bool
}

// NewServer is the preferred method of initialisation for the Server type.
// The server is registered as an event handler with the CPU until Close() is
// called.
func NewServer(env *environment.Environment, sys *hardware.System, states *savestate.Handler) *Server {
	srv := &Server{
		env:    env,
		sys:    sys,
		states: states,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		requests: make(chan chan snapshot, maxPending),
		conns:    make(map[*jsonrpc2.Conn]bool),
	}
	sys.CPU.RegisterEventHandler(srv)
	return srv
}

// Close all connections and unregister the server from the CPU.
func (srv *Server) Close() {
	srv.sys.CPU.UnregisterEventHandler(srv)

	srv.crit.Lock()
	defer srv.crit.Unlock()
	for c := range srv.conns {
		_ = c.Close()
	}
}

// ListenAndServe accepts connections on the address until the context is
// cancelled.
func (srv *Server) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(Path, srv)

	hs := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: requestTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = hs.Close()
		srv.Close()
	}()

	logger.Logf(logger.Allow, "remote", "listening on ws://%s%s", addr, Path)

	err := hs.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("remote: %w", err)
}

// ServeHTTP implements the http.Handler interface. The connection is
// upgraded to a websocket and serviced until the client disconnects.
func (srv *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := srv.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Logf(srv.env, "remote", "upgrade: %v", err)
		return
	}

	conn := jsonrpc2.NewConn(r.Context(), NewStream(ws), jsonrpc2.HandlerWithError(srv.handle))

	srv.crit.Lock()
	srv.conns[conn] = true
	srv.crit.Unlock()

	logger.Logf(srv.env, "remote", "connection from %s", r.RemoteAddr)

	<-conn.DisconnectNotify()

	srv.crit.Lock()
	delete(srv.conns, conn)
	srv.crit.Unlock()

	logger.Logf(srv.env, "remote", "disconnected %s", r.RemoteAddr)
}

func invalidParams(format string, args ...any) *jsonrpc2.Error {
	return &jsonrpc2.Error{
		Code:    jsonrpc2.CodeInvalidParams,
		Message: fmt.Sprintf(format, args...),
	}
}

// unmarshal the parameters of the request. absent parameters leave v
// unchanged
func params(req *jsonrpc2.Request, v any) error {
	if req.Params == nil {
		return nil
	}
	if err := json.Unmarshal(*req.Params, v); err != nil {
		return invalidParams("%s: %v", req.Method, err)
	}
	return nil
}

func (srv *Server) handle(ctx context.Context, _ *jsonrpc2.Conn, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "savestate.save", "savestate.load":
		var p FileParams
		if err := params(req, &p); err != nil {
			return nil, err
		}
		if p.Filename == "" {
			return nil, invalidParams("%s: filename required", req.Method)
		}
		if req.Method == "savestate.save" {
			return srv.states.RequestSave(p.Filename), nil
		}
		return srv.states.RequestLoad(p.Filename), nil

	case "cpu.halt":
		p := HaltParams{Reason: "remote"}
		if err := params(req, &p); err != nil {
			return nil, err
		}
		if !srv.sys.CPU.IsRunning() {
			return false, nil
		}
		srv.sys.CPU.Halt(p.Reason)
		return true, nil

	case "cpu.status":
		s, err := srv.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s.status, nil

	case "cpu.registers":
		s, err := srv.snapshot(ctx)
		if err != nil {
			return nil, err
		}
		return s.regs, nil
	}

	return nil, &jsonrpc2.Error{
		Code:    jsonrpc2.CodeMethodNotFound,
		Message: fmt.Sprintf("method not found: %s", req.Method),
	}
}

// snapshot returns the register values from the emulation goroutine. The
// values are only read directly once Run() has returned.
func (srv *Server) snapshot(ctx context.Context) (snapshot, error) {
	if !srv.sys.CPU.IsActive() {
		return srv.capture(), nil
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	reply := make(chan snapshot, 1)
	select {
	case srv.requests <- reply:
	case <-ctx.Done():
		return snapshot{}, fmt.Errorf("remote: %w", ctx.Err())
	}

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()

	for {
		select {
		case s := <-reply:
			return s, nil
		case <-ctx.Done():
			return snapshot{}, fmt.Errorf("remote: %w", ctx.Err())
		case <-tick.C:
			if !srv.sys.CPU.IsActive() {
				select {
				case s := <-reply:
					return s, nil
				default:
					return srv.capture(), nil
				}
			}
		}
	}
}

func (srv *Server) capture() snapshot {
	mc := srv.sys.CPU
	id := srv.sys.ROMID()

	s := snapshot{
		status: Status{
			Running:          mc.IsRunning(),
			ROM:              srv.sys.ROM.Name(),
			PC:               mc.PC,
			VerticalBlanks:   mc.VerticalInterrupts(),
			NextVBL:          mc.VerticalBlankCount(),
			SavestatePending: srv.states.Pending(),
		},
		regs: Registers{
			PC:         mc.PC,
			GPR:        mc.GPR,
			CP0:        mc.CP0,
			FPU:        mc.FPU,
			FPUControl: mc.FPUControl,
			Hi:         mc.Hi,
			Lo:         mc.Lo,
			Digest:     fmt.Sprintf("%x", digest.SumCPU(mc)),
		},
	}
	if !id.IsZero() {
		s.status.ROMID = id.String()
	}

	return s
}

// service every waiting request for register values
func (srv *Server) service() {
	for {
		select {
		case reply := <-srv.requests:
			reply <- srv.capture()
		default:
			return
		}
	}
}

// OnVerticalBlank implements the cpu.EventHandler interface.
func (srv *Server) OnVerticalBlank() {
	srv.service()
}

// OnCPUStopped implements the cpu.EventHandler interface.
func (srv *Server) OnCPUStopped() bool {
	srv.service()
	return false
}
