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

package test

import "testing"

// DemandEquality is the same as ExpectEquality except that a failure ends
// the test immediately. Use it when later parts of the test depend on the
// value, for example the length of a slice that is about to be indexed.
func DemandEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) {
	t.Helper()
	if v != expectedValue {
		t.Fatalf("%sdemanded equality (%T): '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
	}
}

// DemandSuccess is the same as ExpectSuccess except that a failure ends the
// test immediately.
func DemandSuccess(t *testing.T, v any, tags ...any) {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Fatalf("%sdemanded success (%T)", id(tags...), v)
	}
}

// DemandFailure is the same as ExpectFailure except that a success ends the
// test immediately.
func DemandFailure(t *testing.T, v any, tags ...any) {
	t.Helper()
	if expect(t, v, tags...) {
		t.Fatalf("%sdemanded failure (%T)", id(tags...), v)
	}
}

// DemandImplements ends the test immediately if the instance does not
// implement T. The implements argument is only used for the failure message
// and is usually nil:
//
//	test.DemandImplements[cpu.EventHandler](t, h, nil)
func DemandImplements[T comparable](t *testing.T, instance any, implements T, tags ...any) bool {
	t.Helper()
	if _, ok := instance.(T); !ok {
		t.Fatalf("%s%T does not implement %T", id(tags...), instance, implements)
		return false
	}
	return true
}
