// Copyright 2019 Google LLC
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

// Package cablib is a library of shared constants and functions.
package cablib

import (
	"errors"
	"strings"
)

const (
	// LogSrcName is the name of event log source.
	LogSrcName = "PatchWindow"
	// ExeName is the file name of the patchwindow executable.
	ExeName = `patchwindow.exe`
	// InstallPath is the Windows path to the patchwindow files.
	InstallPath = `C:\Program Files\Google\PatchWindow\`
	// TaskPrefix prefixes every scheduled task created for a maintenance window.
	TaskPrefix = "PatchWindow_"
	// SettingsName is the base name of the optional settings file.
	SettingsName = "patchwindow"
	// EnvPrefix prefixes environment variable overrides of the settings.
	EnvPrefix = "PATCHWINDOW"
)

// RegPath is the registry path to the patchwindow settings.
var RegPath = `SOFTWARE\Google\PatchWindow\`

// Error classes shared by every package. Callers wrap them with %w and test with errors.Is.
var (
	// ErrValidation indicates a missing or invalid required field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates an operation on a maintenance window that does not exist.
	ErrNotFound = errors.New("maintenance window not found")
	// ErrEngine indicates the external update engine failed or is unavailable.
	ErrEngine = errors.New("update engine error")
	// ErrPermission indicates an operation needs elevated privileges that are not held.
	ErrPermission = errors.New("elevated privileges required")
)

// StringInSlice checks if a slice contains a string, ignoring case.
func StringInSlice(e string, s []string) bool {
	for _, a := range s {
		if strings.EqualFold(a, e) {
			return true
		}
	}
	return false
}

// TaskName derives the scheduled task name of a maintenance window.
func TaskName(window string) string {
	return TaskPrefix + window
}
