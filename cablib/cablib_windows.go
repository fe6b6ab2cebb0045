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

//go:build windows
// +build windows

package cablib

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"
	"github.com/google/deck/backends/eventlog"
	"golang.org/x/sys/windows"
)

// EventID tags a deck log entry with a Windows event ID.
var EventID = eventlog.EventID

// DataDir is the host-local directory holding patchwindow state.
func DataDir() string {
	return filepath.Join(os.Getenv("ProgramData"), "PatchWindow")
}

// IsElevated reports whether the process token is elevated.
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// NewCOMObject creates a new COM object for the specifed ProgramID.
func NewCOMObject(id string) (*ole.IDispatch, error) {
	unknown, err := oleutil.CreateObject(id)
	if err != nil {
		return nil, fmt.Errorf("unable to create initial unknown object: %v", err)
	}
	defer unknown.Release()

	obj, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, fmt.Errorf("unable to create query interface: %v", err)
	}

	return obj, nil
}

// RebootRequired indicates whether a system restart is required.
// The caller must have initialized COM for the current thread.
func RebootRequired() (bool, error) {
	sysinfo, err := NewCOMObject("Microsoft.Update.SystemInfo")
	if err != nil {
		return false, err
	}
	defer sysinfo.Release()

	r, err := oleutil.GetProperty(sysinfo, "RebootRequired")
	if err != nil {
		return false, fmt.Errorf("failed to get RebootRequired property: %v", err)
	}
	defer r.Clear()

	b, ok := r.Value().(bool)
	if !ok {
		return false, fmt.Errorf("unexpected RebootRequired value %v", r.Value())
	}
	return b, nil
}
