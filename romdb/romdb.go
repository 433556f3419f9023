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

package romdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/paths"
)

// ErrNotFound is returned by Lookup() when no entry has the ROM ID.
var ErrNotFound = errors.New("romdb: ROM not found")

// DefaultFile is the name of the database file in the resource path.
const DefaultFile = "romdb"

// arbitrary maximum number of entries.
const maxEntries = 10000

const fieldSep = ","
const entrySep = "\n"

const (
	fieldCRC1 int = iota
	fieldCRC2
	fieldCountry
	fieldFilename
	numFields
)

// Activity is used to specify the type of activity that will be happening
// during the session.
type Activity int

// List of valid Activity values.
const (
	// reading only. the database file must exist
	ActivityReading Activity = iota

	// reading and writing. the database file must exist
	ActivityModifying

	// as for ActivityModifying but the database file will be created if it
	// does not exist
	ActivityCreating
)

// Entry is a single ROM in the database.
type Entry struct {
	ID       rom.ID
	Filename string
}

func (ent Entry) String() string {
	return fmt.Sprintf("%s %s", ent.ID, ent.Filename)
}

func (ent Entry) serialise() string {
	return strings.Join([]string{
		fmt.Sprintf("%08x", ent.ID.CRC1),
		fmt.Sprintf("%08x", ent.ID.CRC2),
		fmt.Sprintf("%02x", ent.ID.Country),
		ent.Filename,
	}, fieldSep)
}

func deserialise(s string) (Entry, error) {
	f := strings.SplitN(s, fieldSep, numFields)
	if len(f) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields", numFields)
	}

	crc1, err := strconv.ParseUint(f[fieldCRC1], 16, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid CRC1 (%s)", f[fieldCRC1])
	}
	crc2, err := strconv.ParseUint(f[fieldCRC2], 16, 32)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid CRC2 (%s)", f[fieldCRC2])
	}
	country, err := strconv.ParseUint(f[fieldCountry], 16, 8)
	if err != nil {
		return Entry{}, fmt.Errorf("invalid country code (%s)", f[fieldCountry])
	}
	if f[fieldFilename] == "" {
		return Entry{}, fmt.Errorf("missing filename")
	}

	return Entry{
		ID: rom.ID{
			CRC1:    uint32(crc1),
			CRC2:    uint32(crc2),
			Country: uint8(country),
		},
		Filename: f[fieldFilename],
	}, nil
}

// Session is an open database.
type Session struct {
	path     string
	activity Activity
	entries  map[int]Entry
}

// DefaultPath returns the path to the database file in the resource path.
func DefaultPath() (string, error) {
	pth, err := paths.ResourcePath("", DefaultFile)
	if err != nil {
		return "", fmt.Errorf("romdb: %w", err)
	}
	return pth, nil
}

// StartSession opens the database file at path.
func StartSession(path string, activity Activity) (*Session, error) {
	db := &Session{
		path:     path,
		activity: activity,
		entries:  make(map[int]Entry),
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && activity == ActivityCreating {
			return db, nil
		}
		return nil, fmt.Errorf("romdb: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	ln := 0
	for scanner.Scan() {
		ln++
		s := strings.TrimSpace(scanner.Text())
		if s == "" {
			continue
		}
		ent, err := deserialise(s)
		if err != nil {
			return nil, fmt.Errorf("romdb: line %d: %w", ln, err)
		}
		if err := db.Add(ent); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("romdb: %w", err)
	}

	return db, nil
}

// EndSession closes the database. If commit is true and the session activity
// allows it, the database is written to disk.
func (db *Session) EndSession(commit bool) error {
	if !commit || db.activity == ActivityReading {
		return nil
	}

	f, err := os.Create(db.path)
	if err != nil {
		return fmt.Errorf("romdb: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, k := range db.SortedKeyList() {
		if _, err := w.WriteString(db.entries[k].serialise() + entrySep); err != nil {
			_ = f.Close()
			return fmt.Errorf("romdb: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("romdb: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("romdb: %w", err)
	}

	return nil
}

// NumEntries returns the number of entries in the database.
func (db *Session) NumEntries() int {
	return len(db.entries)
}

// SortedKeyList returns a sorted list of database keys.
func (db *Session) SortedKeyList() []int {
	keyList := make([]int, 0, len(db.entries))
	for k := range db.entries {
		keyList = append(keyList, k)
	}
	sort.Ints(keyList)
	return keyList
}

// List the entries in key order.
func (db *Session) List(output io.Writer) error {
	if db.NumEntries() == 0 {
		if _, err := io.WriteString(output, "database is empty\n"); err != nil {
			return err
		}
		return nil
	}

	for _, k := range db.SortedKeyList() {
		if _, err := fmt.Fprintf(output, "%03d %s\n", k, db.entries[k]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(output, "Total: %d\n", db.NumEntries()); err != nil {
		return err
	}

	return nil
}

// Add an entry to the database. An existing entry with the same ROM ID is
// replaced.
func (db *Session) Add(ent Entry) error {
	for k, e := range db.entries {
		if e.ID == ent.ID {
			db.entries[k] = ent
			return nil
		}
	}

	// find spare key
	var key int
	for key = 0; key < maxEntries; key++ {
		if _, ok := db.entries[key]; !ok {
			break
		}
	}

	if key == maxEntries {
		return fmt.Errorf("romdb: maximum entries exceeded (max %d)", maxEntries)
	}

	db.entries[key] = ent

	return nil
}

// Delete the entry with the specified key.
func (db *Session) Delete(key int) error {
	if _, ok := db.entries[key]; !ok {
		return fmt.Errorf("romdb: key not available (%d)", key)
	}
	delete(db.entries, key)
	return nil
}

// Lookup returns the filename of the ROM with the ID.
func (db *Session) Lookup(id rom.ID) (string, error) {
	for _, k := range db.SortedKeyList() {
		if db.entries[k].ID == id {
			return db.entries[k].Filename, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Scan walks the directory tree adding every ROM file found. Files that
// cannot be read are skipped. Returns the number of ROMs added.
func (db *Session) Scan(dir string) (int, error) {
	n := 0
	err := filepath.WalkDir(dir, func(pth string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !rom.IsROMFile(pth) {
			return nil
		}

		id, err := rom.ReadID(pth)
		if err != nil {
			return nil
		}

		abs, err := filepath.Abs(pth)
		if err != nil {
			abs = pth
		}

		if err := db.Add(Entry{ID: id, Filename: abs}); err != nil {
			return err
		}
		n++

		return nil
	})
	if err != nil {
		return n, fmt.Errorf("romdb: %w", err)
	}
	return n, nil
}

// File is the path to a database file. Each call to Lookup() reads the file
// so that changes made since the last lookup are seen.
type File string

// Lookup returns the filename of the ROM with the ID.
func (f File) Lookup(id rom.ID) (string, error) {
	db, err := StartSession(string(f), ActivityReading)
	if err != nil {
		return "", err
	}
	defer db.EndSession(false)
	return db.Lookup(id)
}
