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

// Package rom loads ROM images and normalises them to the big-endian byte
// order used by the rest of the emulation. Images in byte-swapped (.v64) and
// little-endian (.n64) order are detected by the value of the first word and
// converted on load.
//
// The ID type identifies a ROM by the two checksums in the header and by the
// country code. Savestates embed the header so that the ID of the ROM they
// were made with can be recovered.
package rom
