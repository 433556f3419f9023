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

package script

import (
	"fmt"

	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/savestate"
	lua "github.com/yuin/gopher-lua"
)

// names of the callback functions defined by a script
const (
	onVerticalBlank = "on_vblank"
	onCPUStopped    = "on_stopped"
)

// Script is an implementation of the cpu.EventHandler interface. The Lua
// state is only touched by the emulation goroutine once the script has been
// created.
type Script struct {
	env    *environment.Environment
	sys    *hardware.System
	states *savestate.Handler

	name  string
	state *lua.LState

	// the number of vertical blanks seen by the script
	count int

	// the first runtime error. no more callbacks are made once this is set
	err error
}

// Load creates a script from the named file. The script is registered with
// the CPU until Close() is called.
func Load(env *environment.Environment, sys *hardware.System, states *savestate.Handler, filename string) (*Script, error) {
	return create(env, sys, states, filename, func(L *lua.LState) error {
		return L.DoFile(filename)
	})
}

// NewScript creates a script from source. The script is registered with the
// CPU until Close() is called.
func NewScript(env *environment.Environment, sys *hardware.System, states *savestate.Handler, source string) (*Script, error) {
	return create(env, sys, states, "<source>", func(L *lua.LState) error {
		return L.DoString(source)
	})
}

func create(env *environment.Environment, sys *hardware.System, states *savestate.Handler,
	name string, run func(*lua.LState) error) (*Script, error) {

	sc := &Script{
		env:    env,
		sys:    sys,
		states: states,
		name:   name,
		state:  lua.NewState(),
	}

	sc.state.SetGlobal("halt", sc.state.NewFunction(sc.halt))
	sc.state.SetGlobal("request_save", sc.state.NewFunction(sc.requestSave))
	sc.state.SetGlobal("request_load", sc.state.NewFunction(sc.requestLoad))
	sc.state.SetGlobal("count", sc.state.NewFunction(sc.vblankCount))
	sc.state.SetGlobal("pc", sc.state.NewFunction(sc.pc))
	sc.state.SetGlobal("vblanks", sc.state.NewFunction(sc.vblanks))
	sc.state.SetGlobal("log", sc.state.NewFunction(sc.log))
	sc.state.SetGlobal("cheat", sc.state.NewFunction(sc.cheat))

	if err := run(sc.state); err != nil {
		sc.state.Close()
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}

	sys.CPU.RegisterEventHandler(sc)
	logger.Logf(env, "script", "loaded %s", name)

	return sc, nil
}

// Close unregisters the script and releases the Lua state. Must not be
// called while the emulation is running.
func (sc *Script) Close() {
	sc.sys.CPU.UnregisterEventHandler(sc)
	sc.state.Close()
}

// Count returns the number of vertical blanks seen by the script.
func (sc *Script) Count() int {
	return sc.count
}

// Err returns the runtime error that disabled the script, if any.
func (sc *Script) Err() error {
	return sc.err
}

func (sc *Script) halt(L *lua.LState) int {
	sc.sys.CPU.Halt(L.OptString(1, "script"))
	return 0
}

func (sc *Script) requestSave(L *lua.LState) int {
	if sc.states == nil {
		L.RaiseError("savestates not available")
		return 0
	}
	L.Push(lua.LBool(sc.states.RequestSave(L.CheckString(1))))
	return 1
}

func (sc *Script) requestLoad(L *lua.LState) int {
	if sc.states == nil {
		L.RaiseError("savestates not available")
		return 0
	}
	L.Push(lua.LBool(sc.states.RequestLoad(L.CheckString(1))))
	return 1
}

func (sc *Script) vblankCount(L *lua.LState) int {
	L.Push(lua.LNumber(sc.count))
	return 1
}

func (sc *Script) pc(L *lua.LState) int {
	L.Push(lua.LNumber(sc.sys.CPU.PC))
	return 1
}

func (sc *Script) vblanks(L *lua.LState) int {
	L.Push(lua.LNumber(sc.sys.CPU.VerticalInterrupts()))
	return 1
}

func (sc *Script) log(L *lua.LState) int {
	logger.Logf(logger.Allow, "script", "%s: %s", sc.name, L.CheckString(1))
	return 0
}

// enables or disables the named cheat. returns false if there is no cheat
// with that name
func (sc *Script) cheat(L *lua.LState) int {
	L.Push(lua.LBool(sc.sys.Cheats.Enable(L.CheckString(1), L.OptBool(2, true))))
	return 1
}

// call the named global function if it is defined. returns the first return
// value of the function or LNil
func (sc *Script) call(name string) lua.LValue {
	if sc.err != nil {
		return lua.LNil
	}

	fn := sc.state.GetGlobal(name)
	if fn.Type() != lua.LTFunction {
		return lua.LNil
	}

	err := sc.state.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	})
	if err != nil {
		sc.err = fmt.Errorf("script: %s: %s: %w", sc.name, name, err)
		logger.Log(sc.env, "script", sc.err)
		if sc.sys.CPU.IsRunning() {
			sc.sys.CPU.Halt("script error")
		}
		return lua.LNil
	}

	ret := sc.state.Get(-1)
	sc.state.Pop(1)
	return ret
}

// OnVerticalBlank implements the cpu.EventHandler interface.
func (sc *Script) OnVerticalBlank() {
	sc.count++
	sc.call(onVerticalBlank)
}

// OnCPUStopped implements the cpu.EventHandler interface.
func (sc *Script) OnCPUStopped() bool {
	return lua.LVAsBool(sc.call(onCPUStopped))
}
