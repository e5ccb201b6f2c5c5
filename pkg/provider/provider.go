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

package provider

import (
	"context"

	"github.com/cibuild/dumpinfo/pkg/record"
)

// Set exposes read access to the host application's live diagnostic state,
// one query method per category plus the unconditional host identity.
//
// Implementations must not mutate host state, must preserve the host's
// natural iteration order, and should re-query live state on every call.
// Queries are expected to be local and fast; implementations are responsible
// for their own internal synchronization under concurrent reads.
type Set interface {
	// Identity returns the identity of the running host instance.
	Identity(ctx context.Context) (record.HostIdentity, error)

	// Agents returns the compute agents attached to the host.
	Agents(ctx context.Context) ([]record.Agent, error)

	// Tools returns the named tool installations the host knows about.
	Tools(ctx context.Context) ([]record.Tool, error)

	// Plugins returns the installed host extensions.
	Plugins(ctx context.Context) ([]record.Plugin, error)

	// SystemProperties returns the host runtime properties.
	SystemProperties(ctx context.Context) ([]record.KeyValue, error)

	// Environment returns the host environment variables.
	Environment(ctx context.Context) ([]record.KeyValue, error)

	// DirectoryBindings returns the host's directory-service bindings.
	DirectoryBindings(ctx context.Context) ([]record.KeyValue, error)
}

// HostState is a complete point-in-time value of everything a Set can serve.
// It doubles as the fixture document schema for the file-backed provider.
type HostState struct {
	Identity          record.HostIdentity `json:"identity" yaml:"identity"`
	Agents            []record.Agent      `json:"agents,omitempty" yaml:"agents,omitempty"`
	Tools             []record.Tool       `json:"tools,omitempty" yaml:"tools,omitempty"`
	Plugins           []record.Plugin     `json:"plugins,omitempty" yaml:"plugins,omitempty"`
	SystemProperties  []record.KeyValue   `json:"system-properties,omitempty" yaml:"system-properties,omitempty"`
	Environment       []record.KeyValue   `json:"environment,omitempty" yaml:"environment,omitempty"`
	DirectoryBindings []record.KeyValue   `json:"directory-bindings,omitempty" yaml:"directory-bindings,omitempty"`
}

// Static is a Set backed by an in-memory HostState. Hosts that already hold
// their inventory in memory can hand it to the reporter directly; tests use
// it as a deterministic fixture.
type Static struct {
	State HostState
}

// NewStatic creates a Static provider set serving the given state.
func NewStatic(state HostState) *Static {
	return &Static{State: state}
}

// Identity returns the configured host identity.
func (s *Static) Identity(_ context.Context) (record.HostIdentity, error) {
	return s.State.Identity, nil
}

// Agents returns the configured agent records in declaration order.
func (s *Static) Agents(_ context.Context) ([]record.Agent, error) {
	return s.State.Agents, nil
}

// Tools returns the configured tool records in declaration order.
func (s *Static) Tools(_ context.Context) ([]record.Tool, error) {
	return s.State.Tools, nil
}

// Plugins returns the configured plugin records in declaration order.
func (s *Static) Plugins(_ context.Context) ([]record.Plugin, error) {
	return s.State.Plugins, nil
}

// SystemProperties returns the configured properties in declaration order.
func (s *Static) SystemProperties(_ context.Context) ([]record.KeyValue, error) {
	return s.State.SystemProperties, nil
}

// Environment returns the configured environment entries in declaration order.
func (s *Static) Environment(_ context.Context) ([]record.KeyValue, error) {
	return s.State.Environment, nil
}

// DirectoryBindings returns the configured bindings in declaration order.
func (s *Static) DirectoryBindings(_ context.Context) ([]record.KeyValue, error) {
	return s.State.DirectoryBindings, nil
}
