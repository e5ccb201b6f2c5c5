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

package file

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/cibuild/dumpinfo/pkg/provider"
	"github.com/cibuild/dumpinfo/pkg/record"
)

// Option configures a Provider.
type Option func(*Provider)

// WithMaxSize sets the maximum size (in bytes) of any file the provider will
// read. Default is 1MB.
func WithMaxSize(size int) Option {
	return func(p *Provider) {
		p.maxSize = size
	}
}

// WithSystemPropertiesFile sources the system-properties category from a
// key=value file instead of the host-state document.
func WithSystemPropertiesFile(path string) Option {
	return func(p *Provider) {
		p.propertiesPath = path
	}
}

// WithEnvironmentFile sources the environment category from a key=value file
// instead of the host-state document.
func WithEnvironmentFile(path string) Option {
	return func(p *Provider) {
		p.environmentPath = path
	}
}

// WithKVDelimiter sets the key-value delimiter for key=value files.
// Default is "=".
func WithKVDelimiter(delim string) Option {
	return func(p *Provider) {
		p.kvDelimiter = delim
	}
}

// Provider is a provider.Set backed by files: a YAML host-state document,
// optionally supplemented by key=value files for the flat categories.
//
// Every query re-reads its backing file, matching the live-state contract of
// provider.Set: a report always reflects the files as they are at invocation
// time, and two reports over unchanged files are byte-identical.
type Provider struct {
	path            string
	propertiesPath  string
	environmentPath string
	kvDelimiter     string
	maxSize         int
}

// New creates a file-backed provider reading host state from the YAML
// document at path.
func New(path string, opts ...Option) *Provider {
	p := &Provider{
		path:        path,
		kvDelimiter: "=",
		maxSize:     1 << 20, // 1MB default
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identity returns the identity section of the host-state document.
func (p *Provider) Identity(_ context.Context) (record.HostIdentity, error) {
	state, err := p.load()
	if err != nil {
		return record.HostIdentity{}, err
	}
	return state.Identity, nil
}

// Agents returns the agents section of the host-state document.
func (p *Provider) Agents(_ context.Context) ([]record.Agent, error) {
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.Agents, nil
}

// Tools returns the tools section of the host-state document.
func (p *Provider) Tools(_ context.Context) ([]record.Tool, error) {
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.Tools, nil
}

// Plugins returns the plugins section of the host-state document.
func (p *Provider) Plugins(_ context.Context) ([]record.Plugin, error) {
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.Plugins, nil
}

// SystemProperties returns the system properties, either from the configured
// key=value file or from the host-state document.
func (p *Provider) SystemProperties(_ context.Context) ([]record.KeyValue, error) {
	if p.propertiesPath != "" {
		return p.readKVFile(p.propertiesPath)
	}
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.SystemProperties, nil
}

// Environment returns the environment entries, either from the configured
// key=value file or from the host-state document.
func (p *Provider) Environment(_ context.Context) ([]record.KeyValue, error) {
	if p.environmentPath != "" {
		return p.readKVFile(p.environmentPath)
	}
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.Environment, nil
}

// DirectoryBindings returns the directory-bindings section of the host-state
// document.
func (p *Provider) DirectoryBindings(_ context.Context) ([]record.KeyValue, error) {
	state, err := p.load()
	if err != nil {
		return nil, err
	}
	return state.DirectoryBindings, nil
}

func (p *Provider) load() (*provider.HostState, error) {
	b, err := p.readFile(p.path)
	if err != nil {
		return nil, err
	}

	var state provider.HostState
	if err := yaml.Unmarshal(b, &state); err != nil {
		return nil, fmt.Errorf("failed to parse host state file %q: %w", p.path, err)
	}
	return &state, nil
}

// readKVFile parses a key=value file into an ordered slice of records.
// Unlike a map, the slice preserves the file's line order, which the report
// contract requires. Comment lines (#) and blank lines are skipped; a line
// without the delimiter becomes a key with an empty value.
func (p *Provider) readKVFile(path string) ([]record.KeyValue, error) {
	b, err := p.readFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(b), "\n")
	result := make([]record.KeyValue, 0, len(lines))
	for _, line := range lines {
		clean := strings.TrimSpace(line)
		if clean == "" {
			continue
		}
		if strings.HasPrefix(clean, "#") {
			continue
		}

		kv := strings.SplitN(clean, p.kvDelimiter, 2)
		if len(kv) != 2 {
			slog.Debug("line without value, using empty value",
				slog.String("path", path),
				slog.String("line", clean),
			)
			result = append(result, record.KeyValue{Key: strings.TrimSpace(kv[0])})
			continue
		}

		result = append(result, record.KeyValue{
			Key:   strings.TrimSpace(kv[0]),
			Value: strings.TrimSpace(kv[1]),
		})
	}

	return result, nil
}

func (p *Provider) readFile(path string) ([]byte, error) {
	if path == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", path, err)
	}

	if !utf8.Valid(b) {
		return nil, fmt.Errorf("content of file %q is not valid UTF-8", path)
	}

	if len(b) > p.maxSize {
		return nil, fmt.Errorf("file %q exceeds maximum size of %d bytes", path, p.maxSize)
	}

	return b, nil
}
