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

package logger_test

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/test"
)

// test logger and the use of the Tail() function
func TestLogger(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Write(w)
	test.ExpectEquality(t, w.String(), "")

	log.Log(logger.Allow, "test", "this is a test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\n")

	w.Reset()

	log.Log(logger.Allow, "test2", "this is another test")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	// asking for too many entries in a Tail() should be okay
	w.Reset()
	log.Tail(w, 100)
	test.ExpectEquality(t, w.String(), "test: this is a test\ntest2: this is another test\n")

	w.Reset()
	log.Tail(w, 1)
	test.ExpectEquality(t, w.String(), "test2: this is another test\n")

	w.Reset()
	log.Tail(w, 0)
	test.ExpectEquality(t, w.String(), "")
}

func TestRepeatedEntries(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "cpu", "halt")
	log.Log(logger.Allow, "cpu", "halt")
	log.Log(logger.Allow, "cpu", "halt")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "cpu: halt (repeat x3)\n")

	w.Reset()
	log.Log(logger.Allow, "cpu", "run")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "cpu: halt (repeat x3)\ncpu: run\n")
}

func TestMaximumEntries(t *testing.T) {
	log := logger.NewLogger(2)
	w := &strings.Builder{}

	log.Log(logger.Allow, "a", "1")
	log.Log(logger.Allow, "b", "2")
	log.Log(logger.Allow, "c", "3")
	log.Write(w)
	test.ExpectEquality(t, w.String(), "b: 2\nc: 3\n")
}

func TestEcho(t *testing.T) {
	log := logger.NewLogger(10)
	cw := &test.CompareWriter{}

	log.SetEcho(cw)
	log.Log(logger.Allow, "savestate", "saved")
	test.ExpectSuccess(t, cw.Compare("savestate: saved\n"))

	log.SetEcho(nil)
	log.Log(logger.Allow, "savestate", "loaded")
	test.ExpectSuccess(t, cw.Compare("savestate: saved\n"))
}

// test permissions by randomising whether logging is allowed or not
type prohibitLogging struct {
	allow int
}

func (p prohibitLogging) AllowLogging() bool {
	return p.allow > 50
}

func TestPermissions(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	var p prohibitLogging

	for range 100 {
		p.allow = rand.IntN(100)
		log.Clear()
		w.Reset()
		log.Log(p, "tag", "detail")
		log.Write(w)
		if p.AllowLogging() {
			test.ExpectEquality(t, w.String(), "tag: detail\n")
		} else {
			test.ExpectEquality(t, w.String(), "")
		}
	}
}

// the Log() function explicitly handles error types by using the Error() result
func TestErrorLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	err := errors.New("test error")

	log.Log(logger.Allow, "tag", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: test error\n")

	log.Clear()
	w.Reset()

	log.Logf(logger.Allow, "tag", "wrapped: %v", err)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: wrapped: test error\n")
}

type stringerTest struct{}

func (_ stringerTest) String() string {
	return "stringer test"
}

func TestStringerLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", stringerTest{})
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: stringer test\n")
}

func TestIntLogging(t *testing.T) {
	log := logger.NewLogger(100)
	w := &strings.Builder{}

	log.Log(logger.Allow, "tag", 100)
	log.Write(w)
	test.ExpectEquality(t, w.String(), "tag: 100\n")
}
