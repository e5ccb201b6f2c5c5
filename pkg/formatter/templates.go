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
	"golang.org/x/text/language"
	"golang.org/x/text/message/catalog"
)

// Template keys. Each key is also its own English template; translations for
// other languages register against the key in the catalog below.
const (
	tmplIdentity    = "%s %s (node: %s)"
	tmplAgent       = "%s: %s, %d executors"
	tmplTool        = "%s: %s"
	tmplPlugin      = "%s (%s) %s: %s"
	tmplKeyValue    = "%s = %s"
	tmplUnavailable = "%s: unavailable"
)

// templates is the message catalog for report lines. English is both the
// default and the fallback for untranslated entries.
var templates = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for _, key := range []string{
		tmplIdentity,
		tmplAgent,
		tmplTool,
		tmplPlugin,
		tmplKeyValue,
		tmplUnavailable,
	} {
		if err := b.SetString(language.English, key, key); err != nil {
			panic(err)
		}
	}
	return b
}()
