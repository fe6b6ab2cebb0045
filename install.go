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
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
	"github.com/google/patchwindow/notification"
	"github.com/google/patchwindow/schedule"
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type installCmd struct {
	categories, kbs  string
	max              int
	reboot, rebootAt string
}

func (installCmd) Name() string     { return "install" }
func (installCmd) Synopsis() string { return "Install selected available updates." }
func (installCmd) Usage() string {
	return fmt.Sprintf("%s install [--categories=<Security,...>] [--kbs=<KBNumber,...>] [--max=<n>] [--reboot=auto|ignore|schedule [--reboot_at=<RFC3339|HH:mm>]]\n", filepath.Base(os.Args[0]))
}

func (i *installCmd) SetFlags(f *flag.FlagSet) {
	// Selection Flags
	setSelectionFlags(f, &i.categories, &i.kbs, &i.max)

	// Behavior Flags
	f.StringVar(&i.reboot, "reboot", "ignore", "what to do when updates need a reboot: auto, ignore or schedule.")
	f.StringVar(&i.rebootAt, "reboot_at", "", "reboot time for --reboot=schedule, as an RFC 3339 timestamp or a local HH:mm time.")
}

var errInvalidFlags = errors.New("invalid flag combination")

func vetFlags(i installCmd) error {
	mode, err := engine.ParseRebootMode(i.reboot)
	if err != nil {
		return fmt.Errorf("%w: %v", errInvalidFlags, err)
	}
	if mode == engine.RebootSchedule && i.rebootAt == "" {
		return fmt.Errorf("%w: --reboot=schedule requires --reboot_at", errInvalidFlags)
	}
	if mode != engine.RebootSchedule && i.rebootAt != "" {
		return fmt.Errorf("%w: --reboot_at is only valid with --reboot=schedule", errInvalidFlags)
	}
	return nil
}

// parseRebootAt accepts an RFC 3339 timestamp or the next occurrence of a local HH:mm time.
func parseRebootAt(s string, now time.Time) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		if !t.After(now) {
			return t, fmt.Errorf("%w: reboot time %s is in the past", cablib.ErrValidation, s)
		}
		return t, nil
	}
	tod, err := schedule.ParseTimeOfDay(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: reboot time %q is neither RFC 3339 nor HH:mm", cablib.ErrValidation, s)
	}
	t := tod.On(now, 0)
	if !t.After(now) {
		t = tod.On(now, 1)
	}
	return t, nil
}

func (i installCmd) request(now time.Time) (engine.Request, error) {
	req, err := engineRequest(i.categories, i.kbs, i.max)
	if err != nil {
		return req, err
	}
	if req.Reboot, err = engine.ParseRebootMode(i.reboot); err != nil {
		return req, fmt.Errorf("%w: %v", cablib.ErrValidation, err)
	}
	if req.Reboot == engine.RebootSchedule {
		if req.RebootAt, err = parseRebootAt(i.rebootAt, now); err != nil {
			return req, err
		}
	}
	return req, nil
}

func (i *installCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if err := vetFlags(*i); err != nil {
		return usage(i, err.Error())
	}
	req, err := i.request(now())
	if err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid install")
	}
	if err := requireElevation(i.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to install updates")
	}

	deck.InfofA("Installing updates: categories %v, KBs %v, max %d, reboot %s.", req.Categories, req.KBs, req.Max, req.Reboot).With(eventID(cablib.EvtInstall)).Go()
	res, err := newEngine().Install(ctx, req)
	if err != nil {
		return failure(cablib.EvtErrInstallFailure, err, "Failed to install updates")
	}
	for _, u := range res.Updates {
		if u.Failed() {
			deck.ErrorfA("Failed to install update:\n%s", u).With(eventID(cablib.EvtErrInstallFailure)).Go()
			continue
		}
		deck.InfofA("Successfully installed update:\n%s", u).With(eventID(cablib.EvtInstallSuccess)).Go()
	}
	printUpdates("processed", res.Updates)

	switch {
	case req.Reboot == engine.RebootSchedule:
		deck.InfofA("Reboot scheduled for %s.", req.RebootAt.Format(time.RFC3339)).With(eventID(cablib.EvtRebootRequired)).Go()
		if config.Notify {
			if err := notify(notification.NewScheduledRebootMessage(req.RebootAt)); err != nil {
				deck.ErrorfA("Failed to create reboot notification:\n%v", err).With(eventID(cablib.EvtErrNotifications)).Go()
			}
		}
	case res.RebootRequired:
		deck.InfoA("Install Reboot Required: true").With(eventID(cablib.EvtRebootRequired)).Go()
		fmt.Fprintln(stdout, "Please reboot to finalize the update installation.")
	default:
		fmt.Fprintln(stdout, "No reboot needed.")
	}
	return subcommands.ExitSuccess
}
