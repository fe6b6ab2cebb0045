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

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/aukera/client"
	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/notification"
	"github.com/google/patchwindow/report"
	"github.com/google/patchwindow/store"
	"github.com/google/patchwindow/trigger"
	"github.com/google/patchwindow/window"
	"github.com/google/subcommands"
)

// Dependencies of the commands. Tests replace them.
var (
	stdout io.Writer = os.Stdout
	now              = time.Now

	isElevated = cablib.IsElevated
	notify     = notification.Show
	hostInfo   = report.LocalHost

	openStore = func() (*store.Store, error) {
		b, err := store.OpenBackend(config.StoreBackend, config.ConfigDir)
		if err != nil {
			return nil, err
		}
		sched := trigger.Default(config.TaskFolder, config.ExePath, config.ScriptTimeout)
		return store.New(b, sched), nil
	}

	newEngine = func() engine.Engine {
		e := engine.New(config.PowerShell, config.ScriptTimeout)
		e.MinVersion = config.MinModuleVersion
		e.InstallModule = config.InstallModule
		e.MicrosoftUpdate = config.MicrosoftUpdate
		return e
	}

	// aukeraOpen reports whether the Aukera maintenance window label is open.
	aukeraOpen = func(port int, label string) (bool, error) {
		s, err := client.Label(port, label)
		if err != nil {
			return false, err
		}
		if len(s) == 0 {
			return false, fmt.Errorf("aukera maintenance window label %q not found", label)
		}
		return s[0].State == "open", nil
	}
)

// requireElevation fails with cablib.ErrPermission when the process is not elevated.
func requireElevation(action string) error {
	if isElevated() {
		return nil
	}
	return fmt.Errorf("%w: %s must be run from an elevated process", cablib.ErrPermission, action)
}

// errorEvent picks the event ID for err, falling back to evt.
func errorEvent(err error, evt uint32) uint32 {
	switch {
	case errors.Is(err, cablib.ErrValidation):
		return cablib.EvtErrValidation
	case errors.Is(err, cablib.ErrNotFound):
		return cablib.EvtErrNotFound
	case errors.Is(err, cablib.ErrPermission):
		return cablib.EvtErrPermission
	case errors.Is(err, trigger.ErrTrigger):
		return cablib.EvtErrTrigger
	}
	return evt
}

// failure logs err, tells the user and returns ExitFailure.
func failure(evt uint32, err error, format string, a ...any) subcommands.ExitStatus {
	msg := fmt.Sprintf(format, a...)
	deck.ErrorfA("%s: %v", msg, err).With(eventID(errorEvent(err, evt))).Go()
	fmt.Fprintf(stdout, "%s: %v\n", msg, err)
	return subcommands.ExitFailure
}

// usage prints the synopsis and usage of a command after a flag error.
func usage(c subcommands.Command, problem string) subcommands.ExitStatus {
	fmt.Fprintf(stdout, "%s\n%s\nUsage: %s\n", problem, c.Synopsis(), c.Usage())
	return subcommands.ExitUsageError
}

// engineRequest builds an engine request from the shared update selection flags.
func engineRequest(categories, kbs string, max int) (engine.Request, error) {
	var req engine.Request
	cs, err := window.ParseCategories(splitList(categories))
	if err != nil {
		return req, err
	}
	k := NewKBSet(kbs)
	if err := k.Validate(); err != nil {
		return req, err
	}
	if max < 0 {
		return req, fmt.Errorf("%w: --max must not be negative", cablib.ErrValidation)
	}
	req.Categories = window.EngineCategories(cs)
	req.KBs = k.IDs()
	req.Max = max
	return req, nil
}

func printUpdates(verb string, updates []engine.Update) {
	if len(updates) == 0 {
		fmt.Fprintf(stdout, "No updates %s.\n", verb)
		return
	}
	fmt.Fprintf(stdout, "%d updates %s:\n", len(updates), verb)
	for _, u := range updates {
		fmt.Fprintf(stdout, "  %s\n", u)
	}
}
