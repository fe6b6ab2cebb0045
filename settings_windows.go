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

//go:build windows
// +build windows

package main

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"golang.org/x/sys/windows/registry"
)

const defaultTaskFolder = `\PatchWindow`

var defaultPowerShell = filepath.Join(os.Getenv("SystemRoot"), `System32\WindowsPowerShell\v1.0\powershell.exe`)

func defaultExePath() string {
	return filepath.Join(cablib.InstallPath, cablib.ExeName)
}

// regLoad overlays values found under HKLM\path. A missing key leaves the settings untouched.
func (s *Settings) regLoad(path string) error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer k.Close()

	if v, _, err := k.GetStringValue("ConfigDir"); err == nil {
		s.ConfigDir = v
	}
	if v, _, err := k.GetStringValue("LogPath"); err == nil {
		s.LogPath = v
	}
	if v, _, err := k.GetStringValue("StoreBackend"); err == nil {
		s.StoreBackend = v
	}
	if v, _, err := k.GetStringValue("PowerShell"); err == nil {
		s.PowerShell = v
	}
	if v, _, err := k.GetStringValue("MinModuleVersion"); err == nil {
		s.MinModuleVersion = v
	} else {
		deck.InfofA("MinModuleVersion not found in registry, using default version %s.", s.MinModuleVersion).With(cablib.EventID(cablib.EvtErrConfig)).With(deck.V(1)).Go()
	}
	if v, _, err := k.GetStringValue("TaskFolder"); err == nil {
		s.TaskFolder = v
	}
	if v, _, err := k.GetStringValue("ExePath"); err == nil {
		s.ExePath = v
	}
	if i, _, err := k.GetIntegerValue("ScriptTimeout"); err == nil {
		s.ScriptTimeout = time.Duration(i) * time.Minute
	}
	if i, _, err := k.GetIntegerValue("InstallModule"); err == nil {
		s.InstallModule = i != 0
	}
	if i, _, err := k.GetIntegerValue("MicrosoftUpdate"); err == nil {
		s.MicrosoftUpdate = i != 0
	}
	if i, _, err := k.GetIntegerValue("AdvanceOnFailure"); err == nil {
		s.AdvanceOnFailure = i != 0
	}
	if i, _, err := k.GetIntegerValue("HistoryLimit"); err == nil {
		s.HistoryLimit = int(i)
	}
	if i, _, err := k.GetIntegerValue("Notify"); err == nil {
		s.Notify = i != 0
	}
	if i, _, err := k.GetIntegerValue("AukeraEnabled"); err == nil {
		s.AukeraEnabled = i != 0
	}
	if i, _, err := k.GetIntegerValue("AukeraPort"); err == nil {
		s.AukeraPort = int(i)
	}
	return nil
}
