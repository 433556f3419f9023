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

// Package digest contains implementations of emulation interfaces such that a
// cryptographic hash is produced. The hash can then be used to compare the
// output from subsequent emulation executions - if a new hash differs from a
// previously recorded value then something has changed.
//
// Note that the use of SHA-1 is fine for this application because this is not
// a cryptographic task.
package digest

// Digest implementations should return a cryptographic hash in response to a
// Hash() request. Generation of the hash achieved via another interface.
type Digest interface {
	Hash() string
	ResetDigest()
}
