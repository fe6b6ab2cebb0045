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

package main

import (
	"fmt"
	"strings"

	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/engine"
)

// KBSet models a group of update KBs
type KBSet struct {
	kbSlice []string
	kbMap   map[string]bool
}

// NewKBSet creates a new KBSet given a comma-separated list of KB article IDs
func NewKBSet(kbList string) KBSet {
	return NewKBSetFromSlice(splitList(kbList))
}

// normalizeKB strips an optional KB prefix in any case.
func normalizeKB(kb string) string {
	kb = strings.TrimSpace(kb)
	if len(kb) >= 2 && strings.EqualFold(kb[:2], "kb") {
		kb = kb[2:]
	}
	return kb
}

// NewKBSetFromSlice creates a new KBSet given a slice of KB article IDs
func NewKBSetFromSlice(kbSlice []string) KBSet {
	s := KBSet{kbMap: make(map[string]bool)}
	for _, kb := range kbSlice {
		kb = normalizeKB(kb)
		if kb == "" || s.kbMap[kb] {
			continue
		}
		s.kbMap[kb] = true
		s.kbSlice = append(s.kbSlice, "KB"+kb)
	}
	return s
}

// Search searches the KBSet for a list of identifiers and returns true if any match.
func (u KBSet) Search(ids []string) bool {
	for _, v := range ids {
		if u.kbMap[normalizeKB(v)] {
			return true
		}
	}
	return false
}

// Missing returns the IDs in the set that none of the updates carries.
func (u KBSet) Missing(updates []engine.Update) []string {
	var out []string
	for _, id := range u.IDs() {
		found := false
		for _, up := range updates {
			if NewKBSet(up.KB).Search([]string{id}) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, id)
		}
	}
	return out
}

// Size returns the size of the set (number of updates).
func (u KBSet) Size() int {
	return len(u.kbSlice)
}

// IDs returns the article IDs with their KB prefix.
func (u KBSet) IDs() []string {
	return u.kbSlice
}

// Validate checks that every article ID is numeric.
func (u KBSet) Validate() error {
	for kb := range u.kbMap {
		if strings.Trim(kb, "0123456789") != "" {
			return fmt.Errorf("%w: %q is not a KB article ID", cablib.ErrValidation, kb)
		}
	}
	return nil
}

// String renders the KBSet as a string.
func (u KBSet) String() string {
	return fmt.Sprintf("%v", u.kbSlice)
}

// splitList splits a comma separated flag value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
