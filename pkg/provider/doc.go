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

// Package provider defines the read interface between the reporter and the
// host application's live object graph.
//
// The reporter never reaches for ambient global state: it is handed a Set and
// queries it per enabled category. That keeps the reporter independently
// testable against fake providers and keeps the host's singletons out of this
// module entirely.
//
// Three implementations ship with the module:
//
//   - Static (this package): an in-memory HostState value.
//   - file.Provider: a YAML host-state document re-read on every query,
//     optionally combined with key=value files for the flat categories.
//   - local.Provider: the current process — its environment, Go runtime
//     properties, and linked modules.
//
// A host adapter wrapping a real CI server's object model is just another Set
// implementation and lives with the host, not here.
package provider
