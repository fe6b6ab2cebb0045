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

package report

import (
	"context"
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/shirou/gopsutil/v4/host"
)

// Host identifies the machine a report was generated on.
type Host struct {
	Hostname        string `json:"hostname" yaml:"hostname"`
	OS              string `json:"os" yaml:"os"`
	Platform        string `json:"platform" yaml:"platform"`
	PlatformVersion string `json:"platformVersion" yaml:"platformVersion"`
	KernelVersion   string `json:"kernelVersion" yaml:"kernelVersion"`
	MachineID       string `json:"machineId" yaml:"machineId"`
}

// LocalHost describes the current machine. Lookups that fail leave their fields empty.
func LocalHost(ctx context.Context) Host {
	var h Host
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		deck.WarningfA("Failed to read host information: %v", err).With(cablib.EventID(cablib.EvtErrReport)).Go()
		h.Hostname, _ = os.Hostname()
	} else {
		h.Hostname = info.Hostname
		h.OS = info.OS
		h.Platform = info.Platform
		h.PlatformVersion = info.PlatformVersion
		h.KernelVersion = info.KernelVersion
	}
	// The raw machine ID is hashed with the application name before it leaves the host.
	id, err := machineid.ProtectedID(cablib.SettingsName)
	if err != nil {
		deck.WarningfA("Failed to read machine ID: %v", err).With(cablib.EventID(cablib.EvtErrReport)).Go()
	}
	h.MachineID = id
	return h
}
