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

// Package record defines the read-only entities served by providers.
// Records carry no lifecycle of their own: they are fetched from live host
// state, formatted into report lines, and discarded within one invocation.
package record

// HostIdentity identifies the running server instance. It is rendered as the
// unconditional first line of every report.
type HostIdentity struct {
	// Name is the host application name (e.g., the controller's display name).
	Name string `json:"name" yaml:"name"`

	// Version is the host application version string.
	Version string `json:"version" yaml:"version"`

	// NodeID identifies the node the host instance runs on.
	NodeID string `json:"node" yaml:"node"`
}

// Agent describes one compute agent attached to the host.
type Agent struct {
	Name string `json:"name" yaml:"name"`

	// Online reports whether the agent is currently connected.
	Online bool `json:"online" yaml:"online"`

	// Executors is the number of concurrent build slots the agent offers.
	Executors int `json:"executors" yaml:"executors"`
}

// Tool describes one named tool installation, such as a JDK.
type Tool struct {
	// Name is the logical name the host configuration refers to the tool by.
	Name string `json:"name" yaml:"name"`

	// Home is the installation path.
	Home string `json:"home" yaml:"home"`
}

// Plugin describes one installed host extension.
type Plugin struct {
	ShortName   string `json:"shortName" yaml:"shortName"`
	DisplayName string `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
	Enabled     bool   `json:"enabled" yaml:"enabled"`
}

// KeyValue is a single system property, environment variable, or
// directory-service binding. Value may legitimately be empty; an empty value
// is distinct from an absent key and must still produce a report line.
type KeyValue struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}
