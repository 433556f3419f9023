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

// Package statsview serves runtime statistics of the emulator process over
// HTTP. The graphs are provided by github.com/go-echarts/statsview and are
// only built when the statsview build tag is present:
//
//	go build -tags statsview
//
// Once launched the graphs are available at:
//
//	localhost:12665/debug/statsview
//
// The standard pprof pages are at:
//
//	localhost:12665/debug/pprof/
package statsview
