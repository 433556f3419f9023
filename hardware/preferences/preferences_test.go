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

package preferences_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/test"
)

func TestDefaults(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferencesFromFile(fn)
	test.DemandSuccess(t, err)

	test.ExpectEquality(t, p.Dynarec.Get().(bool), true)
	test.ExpectEquality(t, p.VISyncRate.Get().(int), 1500)
	test.ExpectEquality(t, p.Cheats.Get().(bool), false)
	test.ExpectEquality(t, p.FrameLimit.Get().(bool), true)
	test.ExpectEquality(t, p.SaveDirectory.String(), "")

	// a missing file is created with the default values
	data, err := os.ReadFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(string(data), "cpu.visyncrate :: 1500\n"))
}

func TestSaveLoad(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "preferences")

	p, err := preferences.NewPreferencesFromFile(fn)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, p.VISyncRate.Set(2200))
	test.ExpectSuccess(t, p.Cheats.Set(true))
	test.ExpectSuccess(t, p.Save())

	q, err := preferences.NewPreferencesFromFile(fn)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, q.VISyncRate.Get().(int), 2200)
	test.ExpectEquality(t, q.Cheats.Get().(bool), true)

	q.SetDefaults()
	test.ExpectEquality(t, q.VISyncRate.Get().(int), 1500)
	test.ExpectSuccess(t, q.Load())
	test.ExpectEquality(t, q.VISyncRate.Get().(int), 2200)
}
