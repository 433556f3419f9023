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

// Package wavwriter allows writing of audio data to disk as a WAV file. Note
// that audio data is buffered in memory in its entirity, and written to disk
// when EndMixing() is called. It is therefore probably only suitable for
// testing purposes.
package wavwriter

import (
	"fmt"
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/gopher64/gopher64/logger"
)

// the sample rate used if SetSampleRate() is never called
const defaultSampleRate = 44100

// WavWriter implements the audio.Mixer interface.
type WavWriter struct {
	crit sync.Mutex

	filename   string
	sampleRate int

	// interleaved stereo samples
	buffer []int
}

// New is the preferred method of initialisation for the WavWriter type.
func New(filename string) (*WavWriter, error) {
	aw := &WavWriter{
		filename:   filename,
		sampleRate: defaultSampleRate,
		buffer:     make([]int, 0),
	}

	return aw, nil
}

// SetSampleRate implements the audio.Mixer interface. Only the most recent
// rate is used when the file is written.
func (aw *WavWriter) SetSampleRate(rate int) {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	if rate > 0 {
		aw.sampleRate = rate
	}
}

// SetAudio implements the audio.Mixer interface.
func (aw *WavWriter) SetAudio(samples []int16) error {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	for _, s := range samples {
		aw.buffer = append(aw.buffer, int(s))
	}
	return nil
}

// Samples returns the number of stereo samples that have been collected.
func (aw *WavWriter) Samples() int {
	aw.crit.Lock()
	defer aw.crit.Unlock()
	return len(aw.buffer) / 2
}

// EndMixing implements the audio.Mixer interface.
func (aw *WavWriter) EndMixing() (rerr error) {
	aw.crit.Lock()
	defer aw.crit.Unlock()

	f, err := os.Create(aw.filename)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		err := f.Close()
		if err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	// 16 bit stereo PCM
	enc := wav.NewEncoder(f, aw.sampleRate, 16, 2, 1)

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 2,
			SampleRate:  aw.sampleRate,
		},
		Data:           aw.buffer,
		SourceBitDepth: 16,
	}

	logger.Logf(logger.Allow, "wavwriter", "writing audio to %s", aw.filename)

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}

	return nil
}
