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

package window

import (
	"fmt"
	"strings"

	"github.com/google/patchwindow/cablib"
)

// Category is the coarse update classification a maintenance window installs.
type Category string

// Supported categories.
const (
	Security  Category = "Security"
	Critical  Category = "Critical"
	Important Category = "Important"
	Optional  Category = "Optional"
	Feature   Category = "Feature"
	Driver    Category = "Driver"
)

// Categories lists every supported category in display order.
var Categories = []Category{Security, Critical, Important, Optional, Feature, Driver}

// engineCategories maps a category onto the classification names used by Windows Update.
var engineCategories = map[Category][]string{
	Security:  {"Security Updates"},
	Critical:  {"Critical Updates"},
	Important: {"Updates", "Update Rollups"},
	Optional:  {"Feature Packs", "Tools"},
	Feature:   {"Upgrades"},
	Driver:    {"Drivers"},
}

// ParseCategory accepts a category name in any case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: unknown update category %q", cablib.ErrValidation, s)
}

// ParseCategories parses a list of category names, dropping duplicates and empty entries.
func ParseCategories(names []string) ([]Category, error) {
	var out []Category
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		c, err := ParseCategory(n)
		if err != nil {
			return nil, err
		}
		if !containsCategory(out, c) {
			out = append(out, c)
		}
	}
	return out, nil
}

// EngineCategories translates categories into the update engine's vocabulary.
// An empty result means no category filter.
func EngineCategories(cs []Category) []string {
	var out []string
	for _, c := range cs {
		for _, e := range engineCategories[c] {
			if !cablib.StringInSlice(e, out) {
				out = append(out, e)
			}
		}
	}
	return out
}

func containsCategory(cs []Category, c Category) bool {
	for _, v := range cs {
		if v == c {
			return true
		}
	}
	return false
}

func knownCategory(s string) bool {
	_, ok := engineCategories[Category(s)]
	return ok
}
