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

// Package engine talks to the Windows Update engine that searches, downloads and installs updates.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// RebootMode controls what the engine does when an installation needs a reboot.
type RebootMode int

// Reboot modes.
const (
	RebootIgnore RebootMode = iota
	RebootAuto
	RebootSchedule
)

func (m RebootMode) String() string {
	switch m {
	case RebootAuto:
		return "auto"
	case RebootSchedule:
		return "schedule"
	}
	return "ignore"
}

// ParseRebootMode parses auto, ignore or schedule.
func ParseRebootMode(s string) (RebootMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return RebootAuto, nil
	case "ignore", "":
		return RebootIgnore, nil
	case "schedule":
		return RebootSchedule, nil
	}
	return RebootIgnore, fmt.Errorf("unknown reboot mode %q", s)
}

// Request selects updates and describes how to handle them.
type Request struct {
	// Categories are engine category names. Empty means every category.
	Categories []string
	// KBs are article IDs including the KB prefix.
	KBs []string
	// Max caps the number of updates handled. Zero means no cap.
	Max int
	// Hidden lists hidden updates instead of visible ones when searching.
	Hidden   bool
	Reboot   RebootMode
	RebootAt time.Time
}

// Update is an update as reported by the engine.
type Update struct {
	KB     string `json:"KB" yaml:"kb"`
	Title  string `json:"Title" yaml:"title"`
	Size   string `json:"Size" yaml:"size"`
	Status string `json:"Status" yaml:"status,omitempty"`
	Result string `json:"Result" yaml:"result,omitempty"`
}

// Failed reports whether the engine reported a failure for the update.
func (u Update) Failed() bool {
	return strings.EqualFold(u.Result, "Failed")
}

func (u Update) String() string {
	s := fmt.Sprintf("%s: %s (%s)", u.KB, u.Title, u.Size)
	if u.Result != "" {
		s += " " + u.Result
	}
	return s
}

// InstallResult is the outcome of an install operation.
type InstallResult struct {
	Updates        []Update
	RebootRequired bool
}

// HistoryEntry is one record of the update installation history.
type HistoryEntry struct {
	Date      time.Time `json:"Date" yaml:"date"`
	KB        string    `json:"KB" yaml:"kb"`
	Title     string    `json:"Title" yaml:"title"`
	Result    string    `json:"Result" yaml:"result"`
	Operation string    `json:"Operation" yaml:"operation"`
}

// Readiness describes whether updates can be managed on this host.
type Readiness struct {
	Ready         bool
	Elevated      bool
	ModuleVersion string
	Reason        string
}

// Engine is the update engine.
type Engine interface {
	// Ready checks that the engine is installed and usable.
	Ready(ctx context.Context) (Readiness, error)
	Search(ctx context.Context, req Request) ([]Update, error)
	Download(ctx context.Context, req Request) ([]Update, error)
	Install(ctx context.Context, req Request) (InstallResult, error)
	RebootRequired(ctx context.Context) (bool, error)
	// History returns the last entries of the installation history. Zero returns all entries.
	History(ctx context.Context, last int) ([]HistoryEntry, error)
	Hide(ctx context.Context, kbs []string) ([]Update, error)
	Unhide(ctx context.Context, kbs []string) ([]Update, error)
}
