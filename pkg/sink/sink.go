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

// Package sink defines the append-only destination for report lines and a
// Writer implementation over any io.Writer, typically a build's log stream.
package sink

import (
	"fmt"
	"io"
	"os"
)

// LineSink accepts formatted report lines one at a time. Delivery is
// append-only and ordered; there is no seek or rewind. A returned error is
// fatal to the report in progress.
type LineSink interface {
	WriteLine(line string) error
}

// Writer is a LineSink that appends newline-terminated lines to an
// io.Writer. After a write fails the Writer stays failed: a build log that
// rejected one line will not accept the next, and pretending otherwise would
// interleave a torn report.
type Writer struct {
	out io.Writer
	err error
}

// NewWriter creates a Writer over the given destination.
// If out is nil, os.Stdout is used.
func NewWriter(out io.Writer) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{out: out}
}

// WriteLine appends one newline-terminated line to the destination.
func (w *Writer) WriteLine(line string) error {
	if w.err != nil {
		return w.err
	}
	if _, err := io.WriteString(w.out, line+"\n"); err != nil {
		w.err = fmt.Errorf("failed to write line: %w", err)
		return w.err
	}
	return nil
}
