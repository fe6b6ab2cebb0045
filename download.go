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
	"github.com/google/subcommands"
	"golang.org/x/net/context"
)

// Available flags
type downloadCmd struct {
	categories, kbs string
	max             int
}

func (downloadCmd) Name() string     { return "download" }
func (downloadCmd) Synopsis() string { return "download selected available updates without installing them." }
func (downloadCmd) Usage() string {
	return fmt.Sprintf("%s download [--categories=<Security,...>] [--kbs=<KBNumber,...>] [--max=<n>]\n", filepath.Base(os.Args[0]))
}

func (c *downloadCmd) SetFlags(f *flag.FlagSet) {
	setSelectionFlags(f, &c.categories, &c.kbs, &c.max)
}

func (c *downloadCmd) Execute(ctx context.Context, flags *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	req, err := engineRequest(c.categories, c.kbs, c.max)
	if err != nil {
		return failure(cablib.EvtErrValidation, err, "Invalid download")
	}
	if err := requireElevation(c.Name()); err != nil {
		return failure(cablib.EvtErrPermission, err, "Failed to download updates")
	}
	deck.InfofA("Downloading updates: categories %v, KBs %v, max %d.", req.Categories, req.KBs, req.Max).With(eventID(cablib.EvtDownload)).Go()
	updates, err := newEngine().Download(ctx, req)
	if err != nil {
		return failure(cablib.EvtErrDownloadFailure, err, "Failed to download updates")
	}
	for _, u := range updates {
		if u.Failed() {
			deck.ErrorfA("Failed to download update:\n %s", u).With(eventID(cablib.EvtErrDownloadFailure)).Go()
		}
	}
	printUpdates("downloaded", updates)
	return subcommands.ExitSuccess
}
