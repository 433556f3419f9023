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

// Package romdb is a simple database of ROM files keyed by ROM ID. It is used
// to find the ROM that a savestate was made with, when that ROM is not the
// one currently open.
//
// Use of the database requires starting a "session", coupled with an
// EndSession() once we're done. For example (error handling removed for
// clarity):
//
//	db, _ := romdb.StartSession(dbPath, romdb.ActivityCreating)
//	defer db.EndSession(true)
//
// The database is a flat file with one entry per line. Each entry is the two
// CRC values and the country code from the ROM header, followed by the
// filename of the ROM:
//
//	635a2bff,8b022326,45,/home/user/roms/Super Mario 64 (U).z64
//
// The database can be populated with Scan(), which adds every ROM file found
// in a directory tree.
package romdb
