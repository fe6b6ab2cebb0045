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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags. The same command type serves hide and unhide.
type hideCmd struct {
	kbs    string
	unhide bool
}

func (c hideCmd) Name() string {
	if c.unhide {
		return "unhide"
	}
	return "hide"
}
func (c hideCmd) Synopsis() string {
	if c.unhide {
		return "mark hidden updates as visible again."
	}
	return "hide available updates."
}
func (c hideCmd) Usage() string {
	return fmt.Sprintf("%s %s --kbs=\"<KBnumber>\"\n", filepath.Base(os.Args[0]), c.Name())
}
func (c *hideCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kbs, "kbs", "", fmt.Sprintf("comma separated list of KB numbers to %s.", c.Name()))
}

func (c *hideCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	kbs := NewKBSet(c.kbs)
	if kbs.Size() < 1 {
		return usage(c, "--kbs is required.")
	}
	if err := kbs.Validate(); err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid KB list")
	}
	if err := requireElevation(c.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to %s updates", c.Name())
	}

	e := newEngine()
	var updates []engine.Update
	var err error
	verb := "hidden"
	if c.unhide {
		verb = "unhidden"
		deck.InfofA("Unhiding updates %s.", kbs).With(eventID(cablib.EvtUnhide)).Go()
		if updates, err = e.Unhide(ctx, kbs.IDs()); err != nil {
			return failure(cablib.EvtErrUnhide, err, "Error unhiding updates")
		}
	} else {
		deck.InfofA("Hiding updates %s.", kbs).With(eventID(cablib.EvtHide)).Go()
		if updates, err = e.Hide(ctx, kbs.IDs()); err != nil {
			return failure(cablib.EvtErrHide, err, "Error hiding updates")
		}
	}
	printUpdates(verb, updates)
	if missing := kbs.Missing(updates); len(missing) > 0 {
		deck.WarningfA("No update found for %v.", missing).With(eventID(cablib.EvtMisc)).Go()
		fmt.Fprintf(stdout, "No update found for %s.\n", strings.Join(missing, ", "))
	}
	return subcommands.ExitSuccess
}
