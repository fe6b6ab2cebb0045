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

// Package notification provides user notification messages.
package notification

import (
	"fmt"
	"time"
)

// Message is a desktop notification.
type Message struct {
	Title string
	Body  string
}

// Show displays m to the interactive user. Tests replace it.
var Show = show

// NewRebootMessage tells the user that a maintenance window left a reboot pending.
// An empty window name gives a message that names no window.
func NewRebootMessage(window string) Message {
	m := Message{
		Title: "Reboot Your Machine",
		Body:  "Installed updates need a reboot. Reboot at your earliest convenience to finish installing them.",
	}
	if window != "" {
		m.Body = fmt.Sprintf("Maintenance window %s installed updates that need a reboot. Reboot at your earliest convenience to finish installing them.", window)
	}
	return m
}

// NewScheduledRebootMessage tells the user when the machine will reboot.
func NewScheduledRebootMessage(t time.Time) Message {
	return Message{
		Title: "Reboot Scheduled",
		Body:  fmt.Sprintf("To finish installing the newest updates, your machine will reboot at %s.", t.Format(time.UnixDate)),
	}
}

// NewInstallingMessage tells the user that a maintenance window started.
func NewInstallingMessage(window string, d time.Duration) Message {
	return Message{
		Title: "Installing Updates",
		Body:  fmt.Sprintf("Maintenance window %s is installing new updates for up to %s.", window, d),
	}
}
