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

package romdb_test

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/romdb"
	"github.com/gopher64/gopher64/test"
)

func writeROM(t *testing.T, fn string, crc1, crc2 uint32) {
	t.Helper()
	d := make([]byte, 0x100)
	binary.BigEndian.PutUint32(d, 0x80371240)
	binary.BigEndian.PutUint32(d[0x10:], crc1)
	binary.BigEndian.PutUint32(d[0x14:], crc2)
	d[0x3e] = 'E'
	test.DemandSuccess(t, os.WriteFile(fn, d, 0644))
}

func TestSession(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "romdb")

	// database must exist when reading
	_, err := romdb.StartSession(pth, romdb.ActivityReading)
	test.ExpectFailure(t, err)

	db, err := romdb.StartSession(pth, romdb.ActivityCreating)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, db.NumEntries(), 0)

	w := &test.CompareWriter{}
	test.ExpectSuccess(t, db.List(w))
	test.ExpectSuccess(t, w.Compare("database is empty\n"))

	a := romdb.Entry{ID: rom.ID{CRC1: 1, CRC2: 2, Country: 'E'}, Filename: "/roms/a,b.z64"}
	b := romdb.Entry{ID: rom.ID{CRC1: 3, CRC2: 4, Country: 'P'}, Filename: "/roms/c.z64"}
	test.ExpectSuccess(t, db.Add(a))
	test.ExpectSuccess(t, db.Add(b))

	// replacing an entry with the same ID
	a.Filename = "/roms/a.z64"
	test.ExpectSuccess(t, db.Add(a))
	test.ExpectEquality(t, db.NumEntries(), 2)
	test.DemandSuccess(t, db.EndSession(true))

	db, err = romdb.StartSession(pth, romdb.ActivityReading)
	test.DemandSuccess(t, err)
	fn, err := db.Lookup(a.ID)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, "/roms/a.z64")

	_, err = db.Lookup(rom.ID{CRC1: 5})
	test.ExpectSuccess(t, errors.Is(err, romdb.ErrNotFound))

	w = &test.CompareWriter{}
	test.ExpectSuccess(t, db.List(w))
	test.ExpectSuccess(t, w.Compare("000 00000001-00000002-45 /roms/a.z64\n001 00000003-00000004-50 /roms/c.z64\nTotal: 2\n"))

	test.ExpectSuccess(t, db.Delete(0))
	test.ExpectFailure(t, db.Delete(0))

	// changes are not written by a reading session
	test.DemandSuccess(t, db.EndSession(true))
	fn, err = romdb.File(pth).Lookup(a.ID)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, "/roms/a.z64")
}

func TestFilenameWithSeparator(t *testing.T) {
	pth := filepath.Join(t.TempDir(), "romdb")
	test.DemandSuccess(t, os.WriteFile(pth, []byte("0000000a,0000000b,45,/roms/x,y.z64\n\n"), 0644))

	fn, err := romdb.File(pth).Lookup(rom.ID{CRC1: 10, CRC2: 11, Country: 'E'})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, fn, "/roms/x,y.z64")

	test.DemandSuccess(t, os.WriteFile(pth, []byte("0000000a,0000000b\n"), 0644))
	_, err = romdb.File(pth).Lookup(rom.ID{CRC1: 10, CRC2: 11, Country: 'E'})
	test.ExpectFailure(t, err)
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	test.DemandSuccess(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeROM(t, filepath.Join(dir, "one.z64"), 0x11, 0x22)
	writeROM(t, filepath.Join(dir, "sub", "two.Z64"), 0x33, 0x44)
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))
	test.DemandSuccess(t, os.WriteFile(filepath.Join(dir, "bad.n64"), []byte("bad"), 0644))

	db, err := romdb.StartSession(filepath.Join(t.TempDir(), "romdb"), romdb.ActivityCreating)
	test.DemandSuccess(t, err)

	n, err := db.Scan(dir)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 2)

	fn, err := db.Lookup(rom.ID{CRC1: 0x33, CRC2: 0x44, Country: 'E'})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, filepath.Base(fn), "two.Z64")
	test.ExpectSuccess(t, filepath.IsAbs(fn))
}
