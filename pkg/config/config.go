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

package config

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/cibuild/dumpinfo/pkg/category"
)

// ReportConfig holds the per-job category toggles. The zero value disables
// every category; the host-identity line is emitted regardless.
//
// The host owns persistence of this configuration. FromYAML and ToYAML exist
// so hosts that persist job configuration as YAML can hand it over directly.
type ReportConfig struct {
	Agents            bool `json:"agents" yaml:"agents"`
	Tools             bool `json:"tools" yaml:"tools"`
	Plugins           bool `json:"plugins" yaml:"plugins"`
	SystemProperties  bool `json:"system-properties" yaml:"system-properties"`
	Environment       bool `json:"environment" yaml:"environment"`
	DirectoryBindings bool `json:"directory-bindings" yaml:"directory-bindings"`
}

// All returns a ReportConfig with every category enabled.
func All() ReportConfig {
	return ReportConfig{
		Agents:            true,
		Tools:             true,
		Plugins:           true,
		SystemProperties:  true,
		Environment:       true,
		DirectoryBindings: true,
	}
}

// Enabled reports whether the given category is toggled on.
// Unknown categories are never enabled.
func (c ReportConfig) Enabled(cat category.Category) bool {
	switch cat {
	case category.Agents:
		return c.Agents
	case category.Tools:
		return c.Tools
	case category.Plugins:
		return c.Plugins
	case category.SystemProperties:
		return c.SystemProperties
	case category.Environment:
		return c.Environment
	case category.DirectoryBindings:
		return c.DirectoryBindings
	default:
		return false
	}
}

// EnabledCategories returns the enabled categories in report emission order.
func (c ReportConfig) EnabledCategories() []category.Category {
	enabled := make([]category.Category, 0, len(category.Categories))
	for _, cat := range category.Categories {
		if c.Enabled(cat) {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// FromYAML parses a ReportConfig from a YAML document.
// Unknown keys are rejected so a typo in a persisted job configuration
// surfaces as an error rather than a silently disabled category.
func FromYAML(data []byte) (ReportConfig, error) {
	var c ReportConfig
	if len(bytes.TrimSpace(data)) == 0 {
		return c, nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return ReportConfig{}, fmt.Errorf("failed to parse report config: %w", err)
	}
	return c, nil
}

// ToYAML serializes the ReportConfig as a YAML document.
func (c ReportConfig) ToYAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize report config: %w", err)
	}
	return out, nil
}

// FromEnv returns a copy of c with DUMPINFO_* environment overrides applied.
// Recognized variables, each parsed with strconv.ParseBool:
//
//	DUMPINFO_AGENTS, DUMPINFO_TOOLS, DUMPINFO_PLUGINS,
//	DUMPINFO_SYSTEM_PROPERTIES, DUMPINFO_ENVIRONMENT,
//	DUMPINFO_DIRECTORY_BINDINGS
//
// Unset or unparsable variables leave the corresponding toggle unchanged.
func (c ReportConfig) FromEnv() ReportConfig {
	applyEnvBool("DUMPINFO_AGENTS", &c.Agents)
	applyEnvBool("DUMPINFO_TOOLS", &c.Tools)
	applyEnvBool("DUMPINFO_PLUGINS", &c.Plugins)
	applyEnvBool("DUMPINFO_SYSTEM_PROPERTIES", &c.SystemProperties)
	applyEnvBool("DUMPINFO_ENVIRONMENT", &c.Environment)
	applyEnvBool("DUMPINFO_DIRECTORY_BINDINGS", &c.DirectoryBindings)
	return c
}

func applyEnvBool(name string, target *bool) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return
	}
	*target = parsed
}
