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

package wavwriter_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/gopher64/gopher64/test"
	"github.com/gopher64/gopher64/wavwriter"
)

func TestWavWriter(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "audio.wav")

	aw, err := wavwriter.New(fn)
	test.DemandSuccess(t, err)
	aw.SetSampleRate(32000)

	test.ExpectSuccess(t, aw.SetAudio([]int16{100, -100, 200, -200}))
	test.ExpectSuccess(t, aw.SetAudio([]int16{300, -300}))
	test.ExpectEquality(t, aw.Samples(), 3)
	test.DemandSuccess(t, aw.EndMixing())

	f, err := os.Open(fn)
	test.DemandSuccess(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	test.DemandSuccess(t, dec.IsValidFile())
	test.ExpectEquality(t, dec.SampleRate, uint32(32000))
	test.ExpectEquality(t, dec.NumChans, uint16(2))
	test.ExpectEquality(t, dec.BitDepth, uint16(16))

	buf, err := dec.FullPCMBuffer()
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(buf.Data), 6)
	test.ExpectEquality(t, buf.Data[0], 100)
	test.ExpectEquality(t, buf.Data[5], -300)
}
