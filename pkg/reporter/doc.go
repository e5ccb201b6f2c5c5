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

// Package reporter generates the diagnostic snapshot written into a build's
// log at job start.
//
// # Overview
//
// A Reporter is handed the per-job configuration (which categories to emit),
// a provider set (the host's live state), and a line sink (the build log).
// Generate writes the unconditional host-identity line, then walks the fixed
// category order and streams one formatted line per item.
//
// # Usage
//
// Report against an in-memory host state:
//
//	rep := &reporter.Reporter{
//	    Config:    config.All(),
//	    Providers: provider.NewStatic(state),
//	}
//
//	res, err := rep.Generate(ctx, sink.NewWriter(buildLog))
//	if err != nil {
//	    // the sink failed; the report was aborted mid-stream
//	    log.Printf("report aborted: %v", err)
//	}
//	if res.Partial() {
//	    log.Printf("categories unavailable: %v", res.FailedCategories())
//	}
//
// # Error Handling
//
// Two failure classes are kept deliberately distinct:
//
//   - Provider failure (recovered): the category gets a single failure
//     marker line, the failure is recorded in the Result, and the remaining
//     categories are emitted unaffected. Generate returns a nil error.
//   - Sink failure (fatal): Generate stops immediately and returns a
//     *SinkError. Output already written stays in place; the build log is
//     append-only and there is no rollback.
//
// # Determinism
//
// The report is a pure function of (configuration, provider state): items
// are emitted in provider order, never re-sorted, and two invocations
// against unchanged state produce byte-identical output. The Result's
// ReportID exists only for log correlation and never appears in the output.
//
// # Observability
//
// The package exports Prometheus metrics for report duration, reports by
// status (success, partial, aborted), lines written per category, and
// provider failures per category. Progress and failures are logged with
// slog.
package reporter
