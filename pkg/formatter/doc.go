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

// Package formatter renders records as stable, single-line, human-readable
// text. Formatting is pure: the same record always produces the same line,
// missing fields render placeholders, and embedded line breaks are escaped so
// one record never spans more than one physical line.
package formatter
