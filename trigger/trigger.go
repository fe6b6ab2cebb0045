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

// Package trigger keeps the operating system scheduler in step with maintenance windows.
package trigger

import (
	"context"
	"errors"

	"github.com/google/patchwindow/window"
)

// ErrTrigger wraps failures talking to the operating system scheduler.
var ErrTrigger = errors.New("scheduled trigger error")

// Scheduler registers recurring triggers that run a maintenance window.
type Scheduler interface {
	// Register creates or replaces the trigger for w.
	Register(ctx context.Context, w window.Window) error
	// Unregister removes the trigger for the named window. A missing trigger is not an error.
	Unregister(ctx context.Context, name string) error
	// Exists reports whether a trigger is registered for the named window.
	Exists(ctx context.Context, name string) (bool, error)
}
