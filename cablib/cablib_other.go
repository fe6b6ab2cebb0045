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

package cablib

import (
	"errors"
	"os"

	"github.com/google/deck"
)

var errUnsupported = errors.New("not supported on this platform")

// EventID is a no-op outside of Windows; there is no event log to tag.
func EventID(id uint32) func(*deck.AttribStore) {
	return func(*deck.AttribStore) {}
}

// DataDir is the host-local directory holding patchwindow state.
func DataDir() string {
	return "/var/lib/patchwindow"
}

// IsElevated reports whether the process runs as root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

// RebootRequired is only answerable by the Windows Update Agent.
func RebootRequired() (bool, error) {
	return false, errUnsupported
}
