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

package cpu

// EventHandler is implemented by anything that wants to be told about vertical
// blanks and about the run loop stopping.
type EventHandler interface {
	// called on the emulation goroutine after every vertical blank
	OnVerticalBlank()

	// called on the emulation goroutine when the run loop stops. returning
	// true restarts the run loop
	OnCPUStopped() bool
}

// RegisterEventHandler adds an event handler. Handlers are called in the order
// they were registered. Registering the same handler twice has no effect.
func (mc *CPU) RegisterEventHandler(h EventHandler) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	for _, eh := range mc.handlers {
		if eh == h {
			return
		}
	}
	mc.handlers = append(mc.handlers, h)
}

// UnregisterEventHandler removes a previously registered event handler. It is
// safe to call from within a handler callback.
func (mc *CPU) UnregisterEventHandler(h EventHandler) {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	for i, eh := range mc.handlers {
		if eh == h {
			// slices returned by eventHandlers() must not change
			n := make([]EventHandler, 0, len(mc.handlers)-1)
			n = append(n, mc.handlers[:i]...)
			mc.handlers = append(n, mc.handlers[i+1:]...)
			return
		}
	}
}

// eventHandlers returns the current list of handlers. The returned slice is
// never modified by the registry.
func (mc *CPU) eventHandlers() []EventHandler {
	mc.crit.Lock()
	defer mc.crit.Unlock()
	return mc.handlers
}
