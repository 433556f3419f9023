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

// Package limiter provides a rough and ready way of limiting the emulation to
// the refresh rate of the console.
//
// A new FpsLimiter can be created with (error handling removed for clarity):
//
//	fps, _ := limiter.NewFPSLimiter(60)
//
// Operations can then be stalled with the Limit() function. For example:
//
//	for {
//		fps.Limit()
//		emulateFrame()
//	}
//
// The limiter runs a goroutine that must be stopped with Close() when the
// limiter is no longer required.
package limiter

import (
	"fmt"
	"sync/atomic"
	"time"
)

// FpsLimiter will trigger every frames per second
type FpsLimiter struct {
	framesPerSecond atomic.Int64
	secondsPerFrame atomic.Int64

	tick chan bool
	done chan bool
}

// NewFPSLimiter is the preferred method of initialisation for FpsLimiter type
func NewFPSLimiter(framesPerSecond int) (*FpsLimiter, error) {
	lim := &FpsLimiter{
		tick: make(chan bool),
		done: make(chan bool),
	}
	if err := lim.SetLimit(framesPerSecond); err != nil {
		return nil, err
	}

	// run ticker concurrently
	go func() {
		adjustedSecondPerFrame := time.Duration(lim.secondsPerFrame.Load())
		t := time.Now()
		for {
			select {
			case lim.tick <- true:
			case <-lim.done:
				return
			}

			time.Sleep(adjustedSecondPerFrame)
			nt := time.Now()
			spf := time.Duration(lim.secondsPerFrame.Load())
			adjustedSecondPerFrame -= nt.Sub(t) - spf

			// a long stall (the emulation being halted for example) must not
			// result in a burst of unlimited frames
			adjustedSecondPerFrame = max(adjustedSecondPerFrame, 0)
			adjustedSecondPerFrame = min(adjustedSecondPerFrame, spf)

			t = nt
		}
	}()

	return lim, nil
}

// SetLimit changes the limit at which the FpsLimiter waits
func (lim *FpsLimiter) SetLimit(framesPerSecond int) error {
	if framesPerSecond <= 0 {
		return fmt.Errorf("limiter: frames per second must be positive (%d)", framesPerSecond)
	}
	lim.framesPerSecond.Store(int64(framesPerSecond))
	lim.secondsPerFrame.Store(int64(time.Second / time.Duration(framesPerSecond)))
	return nil
}

// Limit will block until the next trigger
func (lim *FpsLimiter) Limit() {
	select {
	case <-lim.tick:
	case <-lim.done:
	}
}

// Close stops the limiter. Calls to Limit() will no longer block.
func (lim *FpsLimiter) Close() {
	select {
	case <-lim.done:
	default:
		close(lim.done)
	}
}

func (lim *FpsLimiter) String() string {
	return fmt.Sprintf("%d fps", lim.framesPerSecond.Load())
}
