// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The patchwindow binary manages Windows updates and recurring maintenance windows.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/logger"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

var (
	configFile = flag.String("config", "", "path to a settings file, defaults to patchwindow.yaml in the data directory")
	verbosity  = flag.Int("verbosity", 0, "log verbosity, higher values log more detail")
	quiet      = flag.Bool("quiet", false, "do not mirror log events to the console")

	config  = newSettings()
	eventID = cablib.EventID
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	cfg, cfgErr := loadSettings(*configFile)
	config = cfg

	opts := logger.Options{
		Path:      config.LogPath,
		Console:   os.Stderr,
		EventLog:  runtime.GOOS == "windows",
		Verbosity: *verbosity,
	}
	if *quiet {
		opts.Console = nil
	}
	l, err := logger.Init(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		return int(subcommands.ExitFailure)
	}
	defer l.Close()

	if cfgErr != nil {
		deck.ErrorfA("Failed to load %s settings: %v", cablib.SettingsName, cfgErr).With(eventID(cablib.EvtErrConfig)).Go()
		return int(subcommands.ExitFailure)
	}

	done := platformInit()
	defer done()

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.FlagsCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&createCmd{}, "Maintenance windows")
	subcommands.Register(&removeCmd{}, "Maintenance windows")
	subcommands.Register(&listCmd{}, "Maintenance windows")
	subcommands.Register(&startCmd{}, "Maintenance windows")
	subcommands.Register(&reportCmd{}, "Maintenance windows")

	subcommands.Register(&searchCmd{}, "Update management")
	subcommands.Register(&downloadCmd{}, "Update management")
	subcommands.Register(&installCmd{}, "Update management")
	subcommands.Register(&hideCmd{}, "Update management")
	subcommands.Register(&hideCmd{unhide: true}, "Update management")
	subcommands.Register(&historyCmd{}, "Update management")
	subcommands.Register(&rebootCmd{}, "Update management")

	status := subcommands.Execute(context.Background())
	if status != subcommands.ExitSuccess {
		// Usage errors exit 1 like every other failure.
		status = subcommands.ExitFailure
	}
	return int(status)
}
