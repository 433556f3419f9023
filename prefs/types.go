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

package prefs

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Value represents the actual Go preference value.
type Value any

// types supported by the prefs system must implement the pref interface.
type pref interface {
	fmt.Stringer
	Set(value Value) error
	Get() Value
	Reset() error
}

// hooks are shared by all the prefs types. the pre hook can veto a new value
// by returning an error
type hooks struct {
	pre  func(value Value) error
	post func(value Value) error
}

// SetHookPre sets the callback function to be called just before the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPre(f func(value Value) error) {
	h.pre = f
}

// SetHookPost sets the callback function to be called just after the prefs
// value is updated. Note that even if the value hasn't changed, the callback
// will be executed.
func (h *hooks) SetHookPost(f func(value Value) error) {
	h.post = f
}

// store runs the hooks either side of storing the new value
func (h *hooks) store(v *atomic.Value, nv Value) error {
	if h.pre != nil {
		if err := h.pre(nv); err != nil {
			return err
		}
	}

	v.Store(nv)

	if h.post != nil {
		if err := h.post(nv); err != nil {
			return err
		}
	}

	return nil
}

// Bool implements a boolean type in the prefs system.
type Bool struct {
	hooks
	value atomic.Value // bool
}

func (p *Bool) String() string {
	return fmt.Sprintf("%v", p.Get())
}

// Set new value to Bool type. New value must be of type bool or string. A
// string value of anything other than "true" (case insensitive) will set the
// value to false.
func (p *Bool) Set(v Value) error {
	var nv bool
	switch v := v.(type) {
	case bool:
		nv = v
	case string:
		nv = strings.ToLower(strings.TrimSpace(v)) == "true"
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Bool", v)
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *Bool) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return false
	}
	return ov.(bool)
}

// Reset sets the boolean value to false.
func (p *Bool) Reset() error {
	return p.Set(false)
}

// String implements a string type in the prefs system.
type String struct {
	hooks
	value  atomic.Value // string
	maxLen int
}

func (p *String) String() string {
	ov := p.value.Load()
	if ov == nil {
		return ""
	}
	return ov.(string)
}

// SetMaxLen sets the maximum length for a string when it is set. To set no
// limit use a value less than or equal to zero. Note that the existing string
// will be cropped if necessary - cropped string information will be lost.
func (p *String) SetMaxLen(max int) {
	p.maxLen = max
	if s := p.String(); p.maxLen > 0 && len(s) > p.maxLen {
		p.value.Store(s[:p.maxLen])
	}
}

// Set new value to String type. Values of other types are formatted with
// the %v verb.
func (p *String) Set(v Value) error {
	nv := fmt.Sprintf("%v", v)
	if p.maxLen > 0 && len(nv) > p.maxLen {
		nv = nv[:p.maxLen]
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *String) Get() Value {
	return p.String()
}

// Reset sets the string value to the empty string.
func (p *String) Reset() error {
	return p.Set("")
}

// Int implements an integer type in the prefs system.
type Int struct {
	hooks
	value atomic.Value // int
}

func (p *Int) String() string {
	return fmt.Sprintf("%d", p.Get())
}

// Set new value to Int type. New value can be an int or string.
func (p *Int) Set(v Value) error {
	var nv int
	switch v := v.(type) {
	case int64:
		nv = int(v)
	case int32:
		nv = int(v)
	case int:
		nv = v
	case string:
		var err error
		nv, err = strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("prefs: cannot convert %T to prefs.Int: %w", v, err)
		}
	default:
		return fmt.Errorf("prefs: cannot convert %T to prefs.Int", v)
	}
	return p.store(&p.value, nv)
}

// Get returns the raw pref value.
func (p *Int) Get() Value {
	ov := p.value.Load()
	if ov == nil {
		return 0
	}
	return ov.(int)
}

// Reset sets the int value to zero.
func (p *Int) Reset() error {
	return p.Set(0)
}
