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
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/gopher64/gopher64/digest"
	"github.com/gopher64/gopher64/environment"
	"github.com/gopher64/gopher64/hardware"
	"github.com/gopher64/gopher64/hardware/preferences"
	"github.com/gopher64/gopher64/hardware/rom"
	"github.com/gopher64/gopher64/logger"
	"github.com/gopher64/gopher64/modalflag"
	"github.com/gopher64/gopher64/performance"
	"github.com/gopher64/gopher64/prefs"
	"github.com/gopher64/gopher64/remote"
	"github.com/gopher64/gopher64/romdb"
	"github.com/gopher64/gopher64/savestate"
	"github.com/gopher64/gopher64/script"
	"github.com/gopher64/gopher64/statsview"
	"github.com/gopher64/gopher64/version"
	"github.com/gopher64/gopher64/wavwriter"
	"golang.org/x/sync/errgroup"
)

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "INSPECT", "ROMDB", "PERFORMANCE")
	showVersion := md.AddBool("version", false, "print version information and exit")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "INSPECT":
		err = inspect(md)
	case "ROMDB":
		err = romDatabase(md)
	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		logger.Tail(os.Stdout, 10)
		os.Exit(20)
	}
}

// saveTypeFlag implements the flag.Value interface for a rom.SaveType
type saveTypeFlag struct {
	rom.SaveType
}

func (f *saveTypeFlag) Set(s string) error {
	st, err := rom.ParseSaveType(s)
	if err != nil {
		return err
	}
	f.SaveType = st
	return nil
}

// the ROM database given on the command line or the default database
func romDatabasePath(pth string) (string, error) {
	if pth != "" {
		return pth, nil
	}
	return romdb.DefaultPath()
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	var saveType saveTypeFlag
	md.AddVar(&saveType, "savetype", "save type: AUTO, EEP4K, EEP16K, SRAM, FLASH")
	log := md.AddBool("log", false, "echo log to stdout")
	wav := md.AddString("wav", "", "record audio to wav file")
	stats := md.AddBool("statsview", false, "run stats server")
	remoteAddr := md.AddString("remote", "", fmt.Sprintf("serve JSON-RPC on address (eg. %s)", remote.DefaultAddress))
	scriptFile := md.AddString("script", "", "lua script to run alongside the emulation")
	prefsOverride := md.AddString("prefs", "", "preferences for this run only (eg. \"cpu.dynarec::false; cpu.cheats::true\")")
	keys := md.AddBool("hotkeys", true, "keyboard control when stdin is a terminal (s save, l load, h halt)")
	stateFile := md.AddString("state", "", "savestate file used by the hotkeys")
	dbPath := md.AddString("romdb", "", "ROM database used to find the ROM of a savestate")
	printDigest := md.AddBool("digest", false, "print digests of the register file and of the audio output when finished")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("ROM file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}
	romFile := md.GetArg(0)

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	if *prefsOverride != "" {
		prefs.PushCommandLineStack(*prefsOverride)
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	if *prefsOverride != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			fmt.Printf("! unused preferences: %s\n", unused)
		}
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	if err != nil {
		return err
	}

	sys, err := hardware.NewSystem(env)
	if err != nil {
		return err
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav)
		if err != nil {
			return err
		}
		sys.Audio.AddMixer(aw)
	}

	var audioDig *digest.Audio
	if *printDigest {
		audioDig = digest.NewAudio()
		sys.Audio.AddMixer(audioDig)
	}

	if *stats {
		statsview.Launch(os.Stdout)
	}

	if err := sys.Open(romFile, saveType.SaveType); err != nil {
		return err
	}
	defer sys.Close()

	pth, err := romDatabasePath(*dbPath)
	if err != nil {
		return err
	}

	states := savestate.NewHandler(env, sys, romdb.File(pth))
	defer states.Close()

	if *scriptFile != "" {
		sc, err := script.Load(env, sys, states, *scriptFile)
		if err != nil {
			return err
		}
		defer sc.Close()
	}

	var dig *digest.Registers
	if *printDigest {
		dig = digest.NewRegisters(sys.CPU)
		sys.CPU.RegisterEventHandler(dig)
		defer sys.CPU.UnregisterEventHandler(dig)
	}

	if *stateFile == "" {
		*stateFile = sys.Save.Filename(romFile, ".st0")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer stop()
		return sys.Run()
	})

	// halt the emulation on an interrupt signal or if another goroutine in
	// the group fails
	g.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt)
		defer signal.Stop(sig)

		select {
		case <-sig:
			sys.CPU.Halt("interrupt")
		case <-ctx.Done():
			if sys.CPU.IsRunning() {
				sys.CPU.Halt("shutdown")
			}
		}
		return nil
	})

	if *remoteAddr != "" {
		srv := remote.NewServer(env, sys, states)
		g.Go(func() error {
			return srv.ListenAndServe(ctx, *remoteAddr)
		})
	}

	if *keys {
		g.Go(func() error {
			return hotkeys(ctx, os.Stdout, sys, states, *stateFile)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if dig != nil {
		// closing the system concludes the audio mixers
		sys.Close()
		fmt.Printf("registers: %s (%d frames)\n", dig.Hash(), dig.Frames())
		fmt.Printf("audio:     %s\n", audioDig.Hash())
	}

	return nil
}

func romDatabase(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("LIST", "SCAN", "DELETE")
	dbPath := md.AddString("romdb", "", "ROM database file")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	pth, err := romDatabasePath(*dbPath)
	if err != nil {
		return err
	}

	mode := md.Mode()

	md.NewMode()
	p, err = md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch mode {
	case "LIST":
		if len(md.RemainingArgs()) > 0 {
			return fmt.Errorf("no additional arguments required for %s mode", md)
		}

		// a missing database is listed as empty
		db, err := romdb.StartSession(pth, romdb.ActivityCreating)
		if err != nil {
			return err
		}
		defer db.EndSession(false)

		return db.List(md.Output)

	case "SCAN":
		if len(md.RemainingArgs()) == 0 {
			return fmt.Errorf("directory required for %s mode", md)
		}

		db, err := romdb.StartSession(pth, romdb.ActivityCreating)
		if err != nil {
			return err
		}

		n := 0
		for _, dir := range md.RemainingArgs() {
			c, err := db.Scan(dir)
			n += c
			if err != nil {
				return err
			}
		}

		if err := db.EndSession(true); err != nil {
			return err
		}
		fmt.Fprintf(md.Output, "%d ROMs added. %d in database\n", n, db.NumEntries())

	case "DELETE":
		if len(md.RemainingArgs()) != 1 {
			return fmt.Errorf("one database key required for %s mode", md)
		}

		key, err := strconv.Atoi(md.GetArg(0))
		if err != nil {
			return fmt.Errorf("database key must be numeric: %w", err)
		}

		db, err := romdb.StartSession(pth, romdb.ActivityModifying)
		if err != nil {
			return err
		}
		if err := db.Delete(key); err != nil {
			return err
		}
		return db.EndSession(true)
	}

	return nil
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	var saveType saveTypeFlag
	md.AddVar(&saveType, "savetype", "save type: AUTO, EEP4K, EEP16K, SRAM, FLASH")
	duration := md.AddString("duration", "5s", "measurement duration (there is an additional lead time)")
	profile := md.AddString("profile", "none", "produce profiling reports: NONE, CPU, MEM, BOTH")
	uncapped := md.AddBool("uncapped", true, "run without the frame limiter")
	dynarec := md.AddBool("dynarec", true, "use the recompiler core")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch len(md.RemainingArgs()) {
	case 0:
		return fmt.Errorf("ROM file required for %s mode", md)
	case 1:
	default:
		return fmt.Errorf("too many arguments for %s mode", md)
	}

	dur, err := time.ParseDuration(*duration)
	if err != nil {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	prf, err := preferences.NewPreferences()
	if err != nil {
		return err
	}

	// changes are not saved to disk
	if err := prf.FrameLimit.Set(!*uncapped); err != nil {
		return err
	}
	if err := prf.Dynarec.Set(*dynarec); err != nil {
		return err
	}

	env, err := environment.NewEnvironment(environment.MainEmulation, prf)
	if err != nil {
		return err
	}

	sys, err := hardware.NewSystem(env)
	if err != nil {
		return err
	}

	if err := sys.Open(md.GetArg(0), saveType.SaveType); err != nil {
		return err
	}
	defer sys.Close()

	return performance.Check(md.Output, prof, sys, dur)
}
