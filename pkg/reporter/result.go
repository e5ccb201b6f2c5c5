// Copyright (c) 2026, the dumpinfo authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reporter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cibuild/dumpinfo/pkg/category"
)

// CategoryResult records what one enabled category contributed to the report.
type CategoryResult struct {
	// Lines is the number of lines written for the category, including the
	// failure marker if one was emitted.
	Lines int

	// Failed reports whether the category's provider query failed.
	Failed bool

	// Err is the provider error when Failed is true.
	Err error
}

// Result describes one report invocation. Categories holds an entry for
// every category that was enabled, so an enabled-but-empty category (zero
// lines, not failed) is distinguishable from a disabled one (absent).
type Result struct {
	// ReportID uniquely identifies this invocation for log correlation.
	// It is never part of the report output, which stays a pure function of
	// configuration and provider state.
	ReportID string

	// Lines is the total number of lines written, including the identity
	// line and any failure markers.
	Lines int

	// IdentityErr is set when the host-identity query failed. The identity
	// line is still written with placeholder fields.
	IdentityErr error

	// Categories maps each enabled category to its outcome.
	Categories map[category.Category]CategoryResult
}

func newResult() *Result {
	return &Result{
		ReportID:   uuid.NewString(),
		Categories: make(map[category.Category]CategoryResult),
	}
}

// Partial reports whether any enabled category's provider failed.
// A partial report is still a successful invocation; compare with the
// *SinkError returned by Generate for an aborted one.
func (r *Result) Partial() bool {
	if r.IdentityErr != nil {
		return true
	}
	for _, cr := range r.Categories {
		if cr.Failed {
			return true
		}
	}
	return false
}

// FailedCategories returns the categories whose provider failed, in report
// emission order.
func (r *Result) FailedCategories() []category.Category {
	var failed []category.Category
	for _, cat := range category.Categories {
		if cr, ok := r.Categories[cat]; ok && cr.Failed {
			failed = append(failed, cat)
		}
	}
	return failed
}

// SinkError wraps a write failure from the output sink. Its presence on the
// error return of Generate means the report was aborted mid-stream; whatever
// was already written stays in place, and the Result describes exactly that.
type SinkError struct {
	Err error
}

// Error implements the error interface.
func (e *SinkError) Error() string {
	return fmt.Sprintf("report aborted: %v", e.Err)
}

// Unwrap returns the underlying sink error.
func (e *SinkError) Unwrap() error {
	return e.Err
}
