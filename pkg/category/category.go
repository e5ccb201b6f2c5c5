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

package category

// Category identifies one kind of diagnostic information the reporter can emit.
type Category string

// String returns the string representation of the Category.
func (c Category) String() string {
	return string(c)
}

const (
	// Agents covers the compute agents attached to the host.
	Agents Category = "agents"
	// Tools covers named tool installations (JDKs and the like).
	Tools Category = "tools"
	// Plugins covers installed host extensions.
	Plugins Category = "plugins"
	// SystemProperties covers host runtime properties.
	SystemProperties Category = "system-properties"
	// Environment covers host environment variables.
	Environment Category = "environment"
	// DirectoryBindings covers directory-service bindings.
	DirectoryBindings Category = "directory-bindings"
)

// Categories lists all categories in report emission order.
// The order is part of the output contract: the reporter walks this slice
// and emits enabled categories in exactly this sequence.
var Categories = []Category{
	Agents,
	Tools,
	Plugins,
	SystemProperties,
	Environment,
	DirectoryBindings,
}

// Parse parses a string into a Category.
// Returns the Category and true if the string names a known category,
// or empty Category and false otherwise.
func Parse(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}
