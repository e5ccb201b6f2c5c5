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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Report generation metrics
	reportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dumpinfo_report_duration_seconds",
			Help:    "Time taken to generate a complete report",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
	)

	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dumpinfo_reports_total",
			Help: "Total number of report generation attempts",
		},
		[]string{"status"}, // success, partial, or aborted
	)

	reportLinesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dumpinfo_report_lines_total",
			Help: "Report lines written",
		},
		[]string{"category"}, // identity plus the category names
	)

	categoryFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dumpinfo_category_failures_total",
			Help: "Provider query failures by category",
		},
		[]string{"category"},
	)
)
