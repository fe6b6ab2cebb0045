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

// Package store persists maintenance windows and keeps their scheduled triggers in step.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/deck"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/schedule"
	"github.com/google/patchwindow/trigger"
	"github.com/google/patchwindow/window"
)

// Store is the maintenance window repository.
type Store struct {
	backend Backend
	trigger trigger.Scheduler
}

// New returns a Store over backend registering triggers with sched.
func New(backend Backend, sched trigger.Scheduler) *Store {
	return &Store{backend: backend, trigger: sched}
}

// Close releases the backend.
func (s *Store) Close() error {
	return s.backend.Close()
}

func decode(name string, b []byte) (window.Window, error) {
	var w window.Window
	if err := json.Unmarshal(b, &w); err != nil {
		return w, fmt.Errorf("decoding maintenance window %q: %w", name, err)
	}
	return w, nil
}

func encode(w window.Window) ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

// Create validates w, computes its next run and writes it along with its trigger. An existing
// window of the same name is replaced, keeping its CreatedOn and LastRun.
func (s *Store) Create(ctx context.Context, w window.Window, now time.Time) (window.Window, error) {
	w.DaysOfWeek = schedule.Normalize(w.DaysOfWeek)
	if err := w.Validate(); err != nil {
		return w, err
	}
	next, err := w.Next(now, false)
	if err != nil {
		return w, fmt.Errorf("%w: %w", cablib.ErrValidation, err)
	}

	prior, err := s.backend.Get(ctx, w.Name)
	existed := err == nil
	if err != nil && !errors.Is(err, cablib.ErrNotFound) {
		return w, err
	}
	w.CreatedOn, w.LastRun = now, nil
	if existed {
		old, err := decode(w.Name, prior)
		if err != nil {
			deck.WarningfA("Replacing unreadable maintenance window %q: %v", w.Name, err).With(cablib.EventID(cablib.EvtErrStore)).Go()
		} else {
			w.CreatedOn, w.LastRun = old.CreatedOn, old.LastRun
		}
	}
	w.LastModified = now
	w.NextRun = &next

	rec, err := encode(w)
	if err != nil {
		return w, err
	}
	if err := s.backend.Put(ctx, w.Name, rec); err != nil {
		return w, fmt.Errorf("writing maintenance window %q: %w", w.Name, err)
	}
	if err := s.trigger.Register(ctx, w); err != nil {
		var rerr error
		if existed {
			rerr = s.backend.Put(ctx, w.Name, prior)
		} else {
			rerr = s.backend.Delete(ctx, w.Name)
		}
		if rerr != nil {
			deck.ErrorfA("Failed to roll back maintenance window %q: %v", w.Name, rerr).With(cablib.EventID(cablib.EvtErrStore)).Go()
		}
		return w, err
	}

	if existed {
		deck.InfofA("Updated maintenance window %s, next run %s.", w.Name, next.Format(time.RFC3339)).With(cablib.EventID(cablib.EvtWindowUpdated)).Go()
	} else {
		deck.InfofA("Created maintenance window %s, next run %s.", w.Name, next.Format(time.RFC3339)).With(cablib.EventID(cablib.EvtWindowCreated)).Go()
	}
	return w, nil
}

// checkName rejects names that cannot belong to a stored window before they reach the backend.
func checkName(name string) error {
	if !window.ValidName(name) {
		return fmt.Errorf("%w: %q is not a valid window name", cablib.ErrValidation, name)
	}
	return nil
}

// Remove unregisters the trigger of the named window and deletes its record. The trigger is
// registered again when the record cannot be deleted.
func (s *Store) Remove(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	rec, err := s.backend.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := s.trigger.Unregister(ctx, name); err != nil {
		return err
	}
	if err := s.backend.Delete(ctx, name); err != nil {
		if w, derr := decode(name, rec); derr == nil {
			if rerr := s.trigger.Register(ctx, w); rerr != nil {
				deck.ErrorfA("Failed to restore the trigger of maintenance window %q: %v", name, rerr).With(cablib.EventID(cablib.EvtErrTrigger)).Go()
			}
		}
		return fmt.Errorf("deleting maintenance window %q: %w", name, err)
	}
	deck.InfofA("Removed maintenance window %s.", name).With(cablib.EventID(cablib.EvtWindowRemoved)).Go()
	return nil
}

// Get returns the named window.
func (s *Store) Get(ctx context.Context, name string) (window.Window, error) {
	if err := checkName(name); err != nil {
		return window.Window{}, err
	}
	b, err := s.backend.Get(ctx, name)
	if err != nil {
		return window.Window{}, err
	}
	return decode(name, b)
}

// List returns every readable window. Unreadable records are logged and skipped.
func (s *Store) List(ctx context.Context) ([]window.Window, error) {
	names, err := s.backend.Names(ctx)
	if err != nil {
		return nil, err
	}
	out := []window.Window{}
	for _, n := range names {
		w, err := s.Get(ctx, n)
		if errors.Is(err, cablib.ErrNotFound) {
			continue
		}
		if err != nil {
			deck.WarningfA("Skipping maintenance window %q: %v", n, err).With(cablib.EventID(cablib.EvtErrStore)).Go()
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

// Save persists run bookkeeping for an existing window. LastModified is not touched.
func (s *Store) Save(ctx context.Context, w window.Window) error {
	if err := checkName(w.Name); err != nil {
		return err
	}
	if _, err := s.backend.Get(ctx, w.Name); err != nil {
		return err
	}
	rec, err := encode(w)
	if err != nil {
		return err
	}
	return s.backend.Put(ctx, w.Name, rec)
}
