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

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/notification"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type rebootCmd struct {
	notify bool
}

func (rebootCmd) Name() string     { return "reboot" }
func (rebootCmd) Synopsis() string { return "report whether a reboot is pending to finish installing updates." }
func (rebootCmd) Usage() string {
	return fmt.Sprintf("%s reboot [--notify]\n", filepath.Base(os.Args[0]))
}
func (c *rebootCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.notify, "notify", false, "also remind the interactive user when a reboot is pending.")
}

func (c *rebootCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	pending, err := newEngine().RebootRequired(ctx)
	if err != nil {
		return failure(cablib.EvtErrMisc, err, "Failed to get reboot pending status")
	}
	if !pending {
		msg := "No reboot is pending."
		deck.InfoA(msg).With(eventID(cablib.EvtMisc)).Go()
		fmt.Fprintln(stdout, msg)
		return subcommands.ExitSuccess
	}
	msg := "A reboot is pending."
	deck.InfoA(msg).With(eventID(cablib.EvtRebootRequired)).Go()
	fmt.Fprintln(stdout, msg)
	if c.notify {
		if err := notify(notification.NewRebootMessage("")); err != nil {
			deck.ErrorfA("Failed to create reboot notification:\n%v", err).With(eventID(cablib.EvtErrNotifications)).Go()
		}
	}
	return subcommands.ExitSuccess
}
