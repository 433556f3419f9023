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

import (
	"fmt"
	"math"
	"testing"
)

// id returns a prefix for a failure message built from the tags supplied to
// the Expect and Demand functions
func id(tags ...any) string {
	if len(tags) == 0 {
		return ""
	}
	return fmt.Sprintf("%v: ", fmt.Sprint(tags...))
}

// expect returns true if v is a success value for its type
//
//	bool -> bool == true
//	error -> error == nil
//	nil -> true
//
// Unsupported types are a fatal test error
func expect(t *testing.T, v any, tags ...any) bool {
	t.Helper()

	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return v
	case error:
		return v == nil
	default:
		t.Fatalf("%sunsupported type (%T) for expectation testing", id(tags...), v)
	}
	return false
}

// ExpectEquality is used to test equality between one value and another
func ExpectEquality[T comparable](t *testing.T, v T, expectedValue T, tags ...any) bool {
	t.Helper()
	if v != expectedValue {
		t.Errorf("%sequality test of type %T failed: '%v' does not equal '%v'", id(tags...), v, v, expectedValue)
		return false
	}
	return true
}

// ExpectInequality is used to test inequality between one value and another.
// In other words, the test does not want the values to be equal
func ExpectInequality[T comparable](t *testing.T, v T, notExpectedValue T, tags ...any) bool {
	t.Helper()
	if v == notExpectedValue {
		t.Errorf("%sinequality test of type %T failed: '%v' does equal '%v'", id(tags...), v, v, notExpectedValue)
		return false
	}
	return true
}

// ExpectApproximate is used to test approximate equality between one value
// and another. Tolerance is a fraction of the expected value
func ExpectApproximate[T ~int | ~float32 | ~float64](t *testing.T, v T, expectedValue T, tolerance float64, tags ...any) bool {
	t.Helper()
	d := math.Abs(float64(v) - float64(expectedValue))
	if d > math.Abs(float64(expectedValue))*tolerance {
		t.Errorf("%sapproximation test of type %T failed: '%v' is not within %.2f of '%v'", id(tags...), v, v, tolerance, expectedValue)
		return false
	}
	return true
}

// ExpectFailure tests argument v for a failure condition suitable for its
// type. Currently supported types:
//
//	bool -> bool == false
//	error -> error != nil
//
// If type is nil then the test will fail
func ExpectFailure(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if expect(t, v, tags...) {
		t.Errorf("%sa failure value is expected for type %T", id(tags...), v)
		return false
	}
	return true
}

// ExpectSuccess tests argument v for a success condition suitable for its
// type. Currently supported types:
//
//	bool -> bool == true
//	error -> error == nil
//
// If type is nil then the test will succeed
func ExpectSuccess(t *testing.T, v any, tags ...any) bool {
	t.Helper()
	if !expect(t, v, tags...) {
		t.Errorf("%sa success value is expected for type %T (%v)", id(tags...), v, v)
		return false
	}
	return true
}
