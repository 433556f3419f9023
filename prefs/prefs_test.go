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

package prefs_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/prefs"
	"github.com/gopher64/gopher64/test"
)

func tmpPrefsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "gopher64_prefs_test")
}

func cmpPrefsFile(t *testing.T, fn string, expected string) {
	t.Helper()

	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)

	expected = fmt.Sprintf("%s\n%s", prefs.WarningBoilerPlate, expected)
	test.ExpectEquality(t, string(data), expected)
}

func TestBool(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	var w prefs.Bool
	var x prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, dsk.Add("testB", &w))
	test.ExpectSuccess(t, dsk.Add("testC", &x))

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, w.Set("foo"))
	test.ExpectSuccess(t, x.Set("TRUE"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "test :: true\ntestB :: false\ntestC :: true\n")

	test.ExpectFailure(t, v.Set(10))
}

func TestInt(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	var w prefs.Int
	test.ExpectSuccess(t, dsk.Add("number", &v))
	test.ExpectSuccess(t, dsk.Add("numberB", &w))

	test.ExpectSuccess(t, v.Set(10))
	test.ExpectSuccess(t, w.Set("99"))

	test.DemandSuccess(t, dsk.Save())
	cmpPrefsFile(t, fn, "number :: 10\nnumberB :: 99\n")

	test.ExpectFailure(t, v.Set("---"))
	test.ExpectFailure(t, v.Set(1.0))
	test.ExpectEquality(t, v.Get().(int), 10)
}

func TestDuplicateKey(t *testing.T) {
	dsk, err := prefs.NewDisk(tmpPrefsFile(t))
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectFailure(t, dsk.Add("test", &v))
	test.ExpectFailure(t, dsk.Add("te::st", &v))
}

// write bool and then a string from a different prefs.Disk instance. tests
// that the second writing doesn't clobber the results of the first write.
func TestBoolAndString(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Bool
	test.ExpectSuccess(t, dsk.Add("test", &v))
	test.ExpectSuccess(t, v.Set(true))
	test.DemandSuccess(t, dsk.Save())

	dsk, err = prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var s prefs.String
	test.ExpectSuccess(t, dsk.Add("foo", &s))
	test.ExpectSuccess(t, s.Set("bar"))
	test.DemandSuccess(t, dsk.Save())

	cmpPrefsFile(t, fn, "foo :: bar\ntest :: true\n")
}

func TestLoad(t *testing.T) {
	fn := tmpPrefsFile(t)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)

	var v prefs.Int
	test.ExpectSuccess(t, dsk.Add("cpu.visyncrate", &v))

	// missing file is reported but the file is created when asked
	err = dsk.Load(true)
	test.ExpectSuccess(t, errors.Is(err, prefs.NoPrefsFile))
	_, err = os.Stat(fn)
	test.ExpectSuccess(t, err)

	test.ExpectSuccess(t, v.Set(2200))
	test.DemandSuccess(t, dsk.Save())
	test.ExpectSuccess(t, v.Set(0))

	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 2200)

	// command line values take priority over the file
	prefs.PushCommandLineStack("cpu.visyncrate::1500")
	test.ExpectSuccess(t, dsk.Load(false))
	test.ExpectEquality(t, v.Get().(int), 1500)
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestHooks(t *testing.T) {
	var v prefs.Bool

	var post bool
	v.SetHookPost(func(nv prefs.Value) error {
		post = nv.(bool)
		return nil
	})
	v.SetHookPre(func(nv prefs.Value) error {
		if !nv.(bool) {
			return errors.New("veto")
		}
		return nil
	})

	test.ExpectSuccess(t, v.Set(true))
	test.ExpectSuccess(t, post)
	test.ExpectFailure(t, v.Set(false))
	test.ExpectEquality(t, v.Get().(bool), true)
}

func TestMaxStringLength(t *testing.T) {
	var s prefs.String
	test.ExpectSuccess(t, s.Set("123456789"))
	test.ExpectEquality(t, s.String(), "123456789")

	// setting maximum length will crop the existing string
	s.SetMaxLen(5)
	test.ExpectEquality(t, s.String(), "12345")

	// unsetting a maximum length will not result in cropped string
	// information reappearing
	s.SetMaxLen(0)
	test.ExpectEquality(t, s.String(), "12345")

	s.SetMaxLen(3)
	test.ExpectSuccess(t, s.Set("abcdefghi"))
	test.ExpectEquality(t, s.String(), "abc")
}
