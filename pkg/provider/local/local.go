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

// Package local implements a provider set for the current process. Hosts that
// embed the reporter in-process get their environment, runtime properties,
// and linked modules without writing an adapter.
package local

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/cibuild/dumpinfo/pkg/record"
)

// Provider serves the categories observable from inside the current process:
//
//   - Environment: os.Environ, order preserved.
//   - SystemProperties: Go runtime properties and build settings.
//   - Plugins: the modules linked into the running binary.
//
// Agents, Tools, and DirectoryBindings are not observable from a bare process
// and report empty.
type Provider struct {
	// Name identifies the host application in the identity line.
	// Defaults to the process executable name.
	Name string

	// Version is the host application version. Defaults to the main module
	// version from build info when available.
	Version string
}

// Identity returns the current process identity: configured name and version,
// with the hostname as node identifier.
func (p *Provider) Identity(_ context.Context) (record.HostIdentity, error) {
	name := p.Name
	if name == "" {
		if exe, err := os.Executable(); err == nil {
			name = strings.TrimSuffix(filepath.Base(exe), ".exe")
		}
	}

	version := p.Version
	if version == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			version = info.Main.Version
		}
	}

	host, err := os.Hostname()
	if err != nil {
		return record.HostIdentity{}, err
	}

	return record.HostIdentity{
		Name:    name,
		Version: version,
		NodeID:  host,
	}, nil
}

// Agents reports empty: a bare process has no attached agents.
func (p *Provider) Agents(_ context.Context) ([]record.Agent, error) {
	return nil, nil
}

// Tools reports empty: tool installations are host configuration.
func (p *Provider) Tools(_ context.Context) ([]record.Tool, error) {
	return nil, nil
}

// Plugins returns the modules linked into the running binary, in build-info
// order. Each dependency maps to a plugin record with its module path as the
// short name.
func (p *Provider) Plugins(_ context.Context) ([]record.Plugin, error) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, nil
	}

	plugins := make([]record.Plugin, 0, len(info.Deps))
	for _, dep := range info.Deps {
		mod := dep
		if dep.Replace != nil {
			mod = dep.Replace
		}
		plugins = append(plugins, record.Plugin{
			ShortName: mod.Path,
			Version:   mod.Version,
			Enabled:   true,
		})
	}
	return plugins, nil
}

// SystemProperties returns Go runtime properties and the build settings
// recorded in the binary.
func (p *Provider) SystemProperties(_ context.Context) ([]record.KeyValue, error) {
	props := []record.KeyValue{
		{Key: "go.version", Value: runtime.Version()},
		{Key: "go.os", Value: runtime.GOOS},
		{Key: "go.arch", Value: runtime.GOARCH},
		{Key: "go.compiler", Value: runtime.Compiler},
		{Key: "go.maxprocs", Value: strconv.Itoa(runtime.GOMAXPROCS(0))},
		{Key: "go.numcpu", Value: strconv.Itoa(runtime.NumCPU())},
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			props = append(props, record.KeyValue{Key: "build." + s.Key, Value: s.Value})
		}
	}

	return props, nil
}

// Environment returns the process environment in os.Environ order.
func (p *Provider) Environment(_ context.Context) ([]record.KeyValue, error) {
	env := os.Environ()
	result := make([]record.KeyValue, 0, len(env))
	for _, e := range env {
		kv := strings.SplitN(e, "=", 2)
		entry := record.KeyValue{Key: kv[0]}
		if len(kv) == 2 {
			entry.Value = kv[1]
		}
		result = append(result, entry)
	}
	return result, nil
}

// DirectoryBindings reports empty: a bare process has no directory service.
func (p *Provider) DirectoryBindings(_ context.Context) ([]record.KeyValue, error) {
	return nil, nil
}
