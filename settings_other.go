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

//go:build !windows
// +build !windows

package main

import (
	"os"
	"path/filepath"
)

const (
	defaultPowerShell = "pwsh"
	defaultTaskFolder = "/etc/cron.d"
)

func defaultExePath() string {
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return filepath.Join("/usr/local/bin", "patchwindow")
}

// regLoad is a no-op, settings only come from the file and the environment here.
func (s *Settings) regLoad(path string) error {
	return nil
}
