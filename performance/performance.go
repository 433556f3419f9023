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

package performance

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopher64/gopher64/hardware"
)

// Profile selects the profiles produced by RunProfiler().
type Profile int

// List of valid Profile values. CPU and Mem can be combined.
const (
	ProfileNone Profile = 0
	ProfileCPU  Profile = 1 << iota
	ProfileMem
)

// ParseProfile converts a string into a Profile value. Valid strings are
// NONE, CPU, MEM and BOTH.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToUpper(s) {
	case "NONE", "":
		return ProfileNone, nil
	case "CPU":
		return ProfileCPU, nil
	case "MEM":
		return ProfileMem, nil
	case "BOTH":
		return ProfileCPU | ProfileMem, nil
	}
	return ProfileNone, fmt.Errorf("performance: unknown profile type (%s)", s)
}

// RunProfiler runs the function with the requested profilers. Profiles are
// written to files named after filenameHeader, for example
// "performance_cpu.profile".
func RunProfiler(profile Profile, filenameHeader string, run func() error) error {
	if profile&ProfileCPU == ProfileCPU {
		f, err := os.Create(fmt.Sprintf("%s_cpu.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		return err
	}

	if profile&ProfileMem == ProfileMem {
		f, err := os.Create(fmt.Sprintf("%s_mem.profile", filenameHeader))
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer f.Close()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			return fmt.Errorf("performance: %w", err)
		}
	}

	return nil
}

// CalcFPS takes the number of frames and duration (in seconds) and returns
// the frames-per-second and the accuracy of that value as a percentage of
// the refresh rate.
func CalcFPS(refreshRate int, numFrames int, duration float64) (fps float64, accuracy float64) {
	fps = float64(numFrames) / duration
	accuracy = 100 * float64(numFrames) / (duration * float64(refreshRate))
	return fps, accuracy
}

// Check the performance of the emulation. The system must have a ROM open.
// The emulation runs for a short lead time before measurement begins, after
// which it runs for the specified duration and is halted.
func Check(output io.Writer, profile Profile, sys *hardware.System, duration time.Duration) error {
	if !sys.IsOpen() {
		return fmt.Errorf("performance: %w", hardware.ErrNoROM)
	}

	// allow frame rate to settle down before measuring
	leadTime := min(2*time.Second, duration/4)

	var startFrame, endFrame atomic.Uint32
	var measured atomic.Bool

	runner := func() error {
		lead := time.AfterFunc(leadTime, func() {
			startFrame.Store(sys.CPU.VerticalInterrupts())
		})
		defer lead.Stop()

		end := time.AfterFunc(leadTime+duration, func() {
			endFrame.Store(sys.CPU.VerticalInterrupts())
			measured.Store(true)
			sys.CPU.Halt("performance check")
		})
		defer end.Stop()

		return sys.Run()
	}

	if err := RunProfiler(profile, "performance", runner); err != nil {
		return fmt.Errorf("performance: %w", err)
	}

	// the emulation stopped before the measurement period ended
	if !measured.Load() {
		endFrame.Store(sys.CPU.VerticalInterrupts())
	}

	numFrames := int(endFrame.Load() - startFrame.Load())
	fps, accuracy := CalcFPS(sys.ROMID().RefreshRate(), numFrames, duration.Seconds())
	fmt.Fprintf(output, "%.2f fps (%d frames in %.2f seconds) %.1f%%\n", fps, numFrames, duration.Seconds(), accuracy)

	return nil
}
