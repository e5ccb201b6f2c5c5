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

package formatter

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/cibuild/dumpinfo/pkg/category"
	"github.com/cibuild/dumpinfo/pkg/record"
)

const (
	// placeholder stands in for a missing optional field so the template
	// shape never changes with the input.
	placeholder = "<unknown>"

	// emptyValue marks a key that is present with an empty value, so
	// consumers can tell "present but empty" from "absent".
	emptyValue = "<empty>"

	statusOnline   = "online"
	statusOffline  = "offline"
	statusEnabled  = "enabled"
	statusDisabled = "disabled"
)

// lineEscaper collapses embedded line breaks so one record always renders as
// exactly one physical output line.
var lineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`, "\r", `\r`)

// Formatter renders records as stable single-line text through a message
// printer, so line templates can be translated without touching the
// formatting logic. The zero Formatter is not usable; construct with New or
// ForLanguage.
type Formatter struct {
	p *message.Printer
}

// New creates a Formatter rendering the default English templates.
func New() *Formatter {
	return ForLanguage(language.English)
}

// ForLanguage creates a Formatter rendering templates for the given language,
// falling back to English for untranslated templates.
func ForLanguage(tag language.Tag) *Formatter {
	return &Formatter{
		p: message.NewPrinter(tag, message.Catalog(templates)),
	}
}

// Identity renders the unconditional host-identity line.
func (f *Formatter) Identity(h record.HostIdentity) string {
	return f.p.Sprintf(tmplIdentity,
		orPlaceholder(h.Name),
		orPlaceholder(h.Version),
		orPlaceholder(h.NodeID),
	)
}

// Agent renders one agent record, e.g. "node-1: online, 2 executors".
func (f *Formatter) Agent(a record.Agent) string {
	status := statusOffline
	if a.Online {
		status = statusOnline
	}
	return f.p.Sprintf(tmplAgent, orPlaceholder(a.Name), status, a.Executors)
}

// Tool renders one tool record, e.g. "jdk17: /opt/java/17".
func (f *Formatter) Tool(t record.Tool) string {
	return f.p.Sprintf(tmplTool, orPlaceholder(t.Name), orPlaceholder(t.Home))
}

// Plugin renders one plugin record, e.g. "git (Git plugin) 5.2.1: enabled".
func (f *Formatter) Plugin(p record.Plugin) string {
	status := statusDisabled
	if p.Enabled {
		status = statusEnabled
	}
	return f.p.Sprintf(tmplPlugin,
		orPlaceholder(p.ShortName),
		orPlaceholder(p.DisplayName),
		orPlaceholder(p.Version),
		status,
	)
}

// KeyValue renders one key/value record as "key = value". An empty value
// renders an explicit empty marker rather than dropping the line.
func (f *Formatter) KeyValue(kv record.KeyValue) string {
	value := kv.Value
	if value == "" {
		value = emptyValue
	}
	return f.p.Sprintf(tmplKeyValue, sanitize(kv.Key), sanitize(value))
}

// Unavailable renders the single failure-marker line for a category whose
// provider could not be queried.
func (f *Formatter) Unavailable(c category.Category) string {
	return f.p.Sprintf(tmplUnavailable, c.String())
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return sanitize(s)
}

func sanitize(s string) string {
	return lineEscaper.Replace(s)
}
