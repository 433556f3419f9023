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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/paths"
	"github.com/gopher64/gopher64/savestate"
	"github.com/pkg/term"
	xterm "golang.org/x/term"
)

// how often the keyboard goroutine checks for cancellation
const hotkeyPoll = 100 * time.Millisecond

// hotkeys reads single key presses from the terminal until the context is
// cancelled. Returns immediately if stdin is not a terminal.
func hotkeys(ctx context.Context, output io.Writer, sys *hardware.System, states *savestate.Handler, stateFile string) error {
	if !xterm.IsTerminal(int(os.Stdin.Fd())) {
		return nil
	}

	t, err := term.Open("/dev/tty", term.CBreakMode)
	if err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}
	defer func() {
		_ = t.Restore()
		_ = t.Close()
	}()

	if err := t.SetReadTimeout(hotkeyPoll); err != nil {
		return fmt.Errorf("hotkeys: %w", err)
	}

	fmt.Fprintf(output, "s: save state, S: save snapshot, l: load state, h: halt (%s)\n", stateFile)

	b := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := t.Read(b)
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("hotkeys: %w", err)
		}
		if n == 0 {
			continue
		}
		hotkey(output, b[0], sys, states, stateFile)
	}

	return nil
}

func hotkey(output io.Writer, key byte, sys *hardware.System, states *savestate.Handler, stateFile string) {
	switch key {
	case 's':
		if !states.RequestSave(stateFile) {
			fmt.Fprintln(output, "! savestate operation already pending")
		}
	case 'S':
		fn := snapshotFilename(sys)
		if !states.RequestSave(fn) {
			fmt.Fprintln(output, "! savestate operation already pending")
			return
		}
		fmt.Fprintf(output, "saving %s\n", fn)
	case 'l', 'L':
		if !states.RequestLoad(stateFile) {
			fmt.Fprintln(output, "! savestate operation already pending")
		}
	case 'h', 'H', 'q', 'Q':
		sys.CPU.Halt("hotkey")
	}
}

// snapshots are written to the save directory with a name that does not
// overwrite earlier snapshots
func snapshotFilename(sys *hardware.System) string {
	fn := paths.UniqueFilename("snapshot", sys.ROM.Name()) + ".st"
	return filepath.Join(sys.Save.Directory(sys.ROM.Filename), fn)
}
