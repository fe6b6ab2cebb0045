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
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/patchwindow/cablib"
	"github.com/google/patchwindow/schedule"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("windowname", func(fl validator.FieldLevel) bool {
		return ValidName(fl.Field().String())
	})
	_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return knownCategory(fl.Field().String())
	})
	return v
}

// ValidName reports whether name can be used as a window name. The name doubles as a file name
// stem and a scheduled task name.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.HasSuffix(name, ".") || strings.HasSuffix(name, " ") || strings.HasPrefix(name, " ") {
		return false
	}
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return false
		}
	}
	return true
}

// Validate checks the user supplied fields of the window.
func (w *Window) Validate() error {
	if !w.StartTime.Valid() {
		return fmt.Errorf("%w: %w", cablib.ErrValidation, schedule.ErrInvalidTimeFormat)
	}
	if len(w.DaysOfWeek) == 0 {
		return fmt.Errorf("%w: %w", cablib.ErrValidation, schedule.ErrEmptyDaySet)
	}
	if err := validate.Struct(w); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", cablib.ErrValidation, err)
		}
		var msgs []string
		for _, fe := range verrs {
			msgs = append(msgs, describe(fe))
		}
		return fmt.Errorf("%w: %s", cablib.ErrValidation, strings.Join(msgs, "; "))
	}
	return nil
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "windowname":
		return fmt.Sprintf("%s %q is not a valid window name", fe.Field(), fe.Value())
	case "category":
		return fmt.Sprintf("%s %q is not one of %v", fe.Field(), fe.Value(), Categories)
	}
	return fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
}
