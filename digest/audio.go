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

package digest

import (
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

// the length of the buffer we're using isn't really important. that said, it
// needs to be at least sha1.Size bytes in length
const audioBufferLength = 1024 + sha1.Size

// to allow us to create digests on audio streams longer than
// audioBufferLength, we'll stuff the previous digest value into the first part
// of the buffer array and make sure we include it when we create the next
// digest value
const audioBufferStart = sha1.Size

// Audio implements the audio.Mixer interface.
type Audio struct {
	digest   [sha1.Size]byte
	buffer   []uint8
	bufferCt int
	rate     int
}

// NewAudio is the preferred method of initialisation for the Audio type.
func NewAudio() *Audio {
	dig := &Audio{}
	dig.buffer = make([]uint8, audioBufferLength)
	dig.bufferCt = audioBufferStart
	return dig
}

// Hash implements digest.Digest interface.
func (dig *Audio) Hash() string {
	return fmt.Sprintf("%x", dig.digest)
}

// ResetDigest implements digest.Digest interface.
func (dig *Audio) ResetDigest() {
	clear(dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// SetSampleRate implements the audio.Mixer interface. A change of sample rate
// is included in the digest.
func (dig *Audio) SetSampleRate(rate int) {
	if rate == dig.rate {
		return
	}
	dig.rate = rate
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(rate))
	for _, v := range b {
		dig.add(v)
	}
}

// SetAudio implements the audio.Mixer interface.
func (dig *Audio) SetAudio(samples []int16) error {
	for _, s := range samples {
		dig.add(uint8(s))
		dig.add(uint8(s >> 8))
	}
	return nil
}

func (dig *Audio) add(v uint8) {
	dig.buffer[dig.bufferCt] = v
	dig.bufferCt++
	if dig.bufferCt >= audioBufferLength {
		dig.flush()
	}
}

func (dig *Audio) flush() {
	dig.digest = sha1.Sum(dig.buffer[:dig.bufferCt])
	copy(dig.buffer, dig.digest[:])
	dig.bufferCt = audioBufferStart
}

// EndMixing implements the audio.Mixer interface. Any buffered samples are
// added to the digest.
func (dig *Audio) EndMixing() error {
	if dig.bufferCt > audioBufferStart {
		dig.flush()
	}
	return nil
}
