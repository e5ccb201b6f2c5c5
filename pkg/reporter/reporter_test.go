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

package reporter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cibuild/dumpinfo/pkg/category"
	"github.com/cibuild/dumpinfo/pkg/config"
	"github.com/cibuild/dumpinfo/pkg/provider"
	"github.com/cibuild/dumpinfo/pkg/record"
)

// fakeSet serves a fixed HostState and can be told to fail per category.
type fakeSet struct {
	state       provider.HostState
	identityErr error
	errs        map[category.Category]error
}

func (f *fakeSet) Identity(_ context.Context) (record.HostIdentity, error) {
	if f.identityErr != nil {
		return record.HostIdentity{}, f.identityErr
	}
	return f.state.Identity, nil
}

func (f *fakeSet) Agents(_ context.Context) ([]record.Agent, error) {
	if err := f.errs[category.Agents]; err != nil {
		return nil, err
	}
	return f.state.Agents, nil
}

func (f *fakeSet) Tools(_ context.Context) ([]record.Tool, error) {
	if err := f.errs[category.Tools]; err != nil {
		return nil, err
	}
	return f.state.Tools, nil
}

func (f *fakeSet) Plugins(_ context.Context) ([]record.Plugin, error) {
	if err := f.errs[category.Plugins]; err != nil {
		return nil, err
	}
	return f.state.Plugins, nil
}

func (f *fakeSet) SystemProperties(_ context.Context) ([]record.KeyValue, error) {
	if err := f.errs[category.SystemProperties]; err != nil {
		return nil, err
	}
	return f.state.SystemProperties, nil
}

func (f *fakeSet) Environment(_ context.Context) ([]record.KeyValue, error) {
	if err := f.errs[category.Environment]; err != nil {
		return nil, err
	}
	return f.state.Environment, nil
}

func (f *fakeSet) DirectoryBindings(_ context.Context) ([]record.KeyValue, error) {
	if err := f.errs[category.DirectoryBindings]; err != nil {
		return nil, err
	}
	return f.state.DirectoryBindings, nil
}

// spySink records written lines and can be told to fail on the Nth write.
type spySink struct {
	lines  []string
	failAt int // 1-based write index to fail on; 0 means never
}

func (s *spySink) WriteLine(line string) error {
	if s.failAt > 0 && len(s.lines)+1 >= s.failAt {
		return errors.New("stream closed")
	}
	s.lines = append(s.lines, line)
	return nil
}

func fullState() provider.HostState {
	return provider.HostState{
		Identity: record.HostIdentity{Name: "ci-main", Version: "2.414.1", NodeID: "controller-0"},
		Agents: []record.Agent{
			{Name: "node-1", Online: true, Executors: 2},
			{Name: "node-2", Online: false, Executors: 4},
		},
		Tools: []record.Tool{
			{Name: "jdk17", Home: "/opt/java/17"},
		},
		Plugins: []record.Plugin{
			{ShortName: "git", DisplayName: "Git plugin", Version: "5.2.1", Enabled: true},
		},
		SystemProperties: []record.KeyValue{
			{Key: "java.home", Value: "/opt/java/17"},
		},
		Environment: []record.KeyValue{
			{Key: "PATH", Value: "/usr/bin"},
		},
		DirectoryBindings: []record.KeyValue{
			{Key: "ldap/users", Value: "ou=users,dc=example"},
		},
	}
}

func TestGenerateIdentityOnly(t *testing.T) {
	rep := &Reporter{Providers: &fakeSet{state: fullState()}}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	require.Len(t, out.lines, 1, "all categories disabled should emit exactly the identity line")
	assert.Equal(t, "ci-main 2.414.1 (node: controller-0)", out.lines[0])
	assert.Equal(t, 1, res.Lines)
	assert.Empty(t, res.Categories)
	assert.False(t, res.Partial())
}

func TestGenerateAgentsScenario(t *testing.T) {
	rep := &Reporter{
		Config: config.ReportConfig{Agents: true},
		Providers: &fakeSet{state: provider.HostState{
			Identity: record.HostIdentity{Name: "ci-main", Version: "2.414.1", NodeID: "controller-0"},
			Agents:   []record.Agent{{Name: "node-1", Online: true, Executors: 2}},
		}},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	want := []string{
		"ci-main 2.414.1 (node: controller-0)",
		"node-1: online, 2 executors",
	}
	assert.Equal(t, want, out.lines)
	assert.Equal(t, 1, res.Categories[category.Agents].Lines)
}

func TestGenerateEnvironmentScenario(t *testing.T) {
	rep := &Reporter{
		Config:    config.ReportConfig{Environment: true},
		Providers: &fakeSet{state: fullState()},
	}
	out := &spySink{}

	_, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)
	assert.Contains(t, out.lines, "PATH = /usr/bin")
}

func TestGenerateCategoryOrder(t *testing.T) {
	rep := &Reporter{
		Config:    config.All(),
		Providers: &fakeSet{state: fullState()},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	want := []string{
		"ci-main 2.414.1 (node: controller-0)",
		"node-1: online, 2 executors",
		"node-2: offline, 4 executors",
		"jdk17: /opt/java/17",
		"git (Git plugin) 5.2.1: enabled",
		"java.home = /opt/java/17",
		"PATH = /usr/bin",
		"ldap/users = ou=users,dc=example",
	}
	assert.Equal(t, want, out.lines)
	assert.Equal(t, len(want), res.Lines)
}

func TestGenerateItemCounts(t *testing.T) {
	rep := &Reporter{
		Config:    config.All(),
		Providers: &fakeSet{state: fullState()},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Categories[category.Agents].Lines)
	assert.Equal(t, 1, res.Categories[category.Tools].Lines)
	assert.Equal(t, 1, res.Categories[category.Plugins].Lines)
	assert.Equal(t, 1, res.Categories[category.SystemProperties].Lines)
	assert.Equal(t, 1, res.Categories[category.Environment].Lines)
	assert.Equal(t, 1, res.Categories[category.DirectoryBindings].Lines)
}

func TestGenerateProviderFailure(t *testing.T) {
	t.Run("other categories unaffected", func(t *testing.T) {
		rep := &Reporter{
			Config: config.All(),
			Providers: &fakeSet{
				state: fullState(),
				errs: map[category.Category]error{
					category.SystemProperties: fmt.Errorf("registry unavailable"),
				},
			},
		}
		out := &spySink{}

		res, err := rep.Generate(context.Background(), out)
		require.NoError(t, err, "a provider failure must not abort the report")

		assert.Contains(t, out.lines, "system-properties: unavailable")
		assert.NotContains(t, out.lines, "java.home = /opt/java/17")
		assert.Contains(t, out.lines, "node-1: online, 2 executors")
		assert.Contains(t, out.lines, "PATH = /usr/bin")
		assert.Contains(t, out.lines, "ldap/users = ou=users,dc=example")

		require.True(t, res.Partial())
		assert.Equal(t, []category.Category{category.SystemProperties}, res.FailedCategories())

		cr := res.Categories[category.SystemProperties]
		assert.True(t, cr.Failed)
		assert.Error(t, cr.Err)
		assert.Equal(t, 1, cr.Lines, "the failure marker is the category's only line")
	})

	t.Run("silent failures omit the marker", func(t *testing.T) {
		rep := &Reporter{
			Config: config.ReportConfig{SystemProperties: true, Environment: true},
			Providers: &fakeSet{
				state: fullState(),
				errs: map[category.Category]error{
					category.SystemProperties: fmt.Errorf("registry unavailable"),
				},
			},
			SilentFailures: true,
		}
		out := &spySink{}

		res, err := rep.Generate(context.Background(), out)
		require.NoError(t, err)

		assert.NotContains(t, out.lines, "system-properties: unavailable")
		assert.Contains(t, out.lines, "PATH = /usr/bin")
		assert.Equal(t, 0, res.Categories[category.SystemProperties].Lines)
		assert.True(t, res.Categories[category.SystemProperties].Failed)
	})
}

func TestGenerateIdentityFailure(t *testing.T) {
	rep := &Reporter{
		Config:    config.ReportConfig{Agents: true},
		Providers: &fakeSet{state: fullState(), identityErr: fmt.Errorf("boom")},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	require.NotEmpty(t, out.lines)
	assert.Equal(t, "<unknown> <unknown> (node: <unknown>)", out.lines[0],
		"the identity line is unconditional even when its provider fails")
	assert.Error(t, res.IdentityErr)
	assert.True(t, res.Partial())
}

func TestGenerateIdempotent(t *testing.T) {
	set := &fakeSet{state: fullState()}
	rep := &Reporter{Config: config.All(), Providers: set}

	first := &spySink{}
	res1, err := rep.Generate(context.Background(), first)
	require.NoError(t, err)

	second := &spySink{}
	res2, err := rep.Generate(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, first.lines, second.lines, "unchanged state must produce byte-identical output")
	assert.NotEqual(t, res1.ReportID, res2.ReportID, "each invocation gets its own report ID")
}

func TestGenerateSinkFailure(t *testing.T) {
	rep := &Reporter{
		Config:    config.All(),
		Providers: &fakeSet{state: fullState()},
	}
	out := &spySink{failAt: 4}

	res, err := rep.Generate(context.Background(), out)
	require.Error(t, err, "a sink failure must abort the report")

	var sinkErr *SinkError
	require.ErrorAs(t, err, &sinkErr)
	assert.Contains(t, sinkErr.Error(), "report aborted")

	// Whatever was written before the failure stays in place.
	assert.Len(t, out.lines, 3)
	assert.Equal(t, 3, res.Lines)
}

func TestGenerateSinkFailureOnIdentity(t *testing.T) {
	rep := &Reporter{Providers: &fakeSet{state: fullState()}}
	out := &spySink{failAt: 1}

	res, err := rep.Generate(context.Background(), out)
	require.Error(t, err)

	var sinkErr *SinkError
	assert.ErrorAs(t, err, &sinkErr)
	assert.Empty(t, out.lines)
	assert.Equal(t, 0, res.Lines)
}

func TestGenerateEmptyCategoryDistinctFromFailure(t *testing.T) {
	rep := &Reporter{
		Config: config.ReportConfig{Agents: true},
		Providers: &fakeSet{state: provider.HostState{
			Identity: record.HostIdentity{Name: "ci-main", Version: "1.0", NodeID: "n0"},
		}},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	require.Len(t, out.lines, 1, "an empty enabled category emits no item lines and no marker")

	cr, ok := res.Categories[category.Agents]
	require.True(t, ok, "an enabled category must appear in the result even when empty")
	assert.False(t, cr.Failed)
	assert.Equal(t, 0, cr.Lines)

	_, ok = res.Categories[category.Tools]
	assert.False(t, ok, "a disabled category must not appear in the result")
}

func TestGenerateMultilineValueStaysOneLine(t *testing.T) {
	rep := &Reporter{
		Config: config.ReportConfig{Environment: true},
		Providers: &fakeSet{state: provider.HostState{
			Identity: record.HostIdentity{Name: "ci-main", Version: "1.0", NodeID: "n0"},
			Environment: []record.KeyValue{
				{Key: "MULTI", Value: "first\nsecond\r\nthird"},
			},
		}},
	}
	out := &spySink{}

	res, err := rep.Generate(context.Background(), out)
	require.NoError(t, err)

	require.Len(t, out.lines, 2, "one item must produce exactly one physical line")
	assert.False(t, strings.ContainsAny(out.lines[1], "\n\r"))
	assert.Equal(t, 1, res.Categories[category.Environment].Lines)
}

func TestGenerateNoProviders(t *testing.T) {
	rep := &Reporter{}
	_, err := rep.Generate(context.Background(), &spySink{})
	assert.ErrorIs(t, err, ErrNoProviders)
}

func TestGenerateConcurrent(t *testing.T) {
	set := &fakeSet{state: fullState()}
	rep := &Reporter{Config: config.All(), Providers: set}

	baseline := &spySink{}
	_, err := rep.Generate(context.Background(), baseline)
	require.NoError(t, err)

	const n = 8
	outs := make([]*spySink, n)
	g, ctx := errgroup.WithContext(context.Background())
	for i := 0; i < n; i++ {
		out := &spySink{}
		outs[i] = out
		g.Go(func() error {
			_, err := rep.Generate(ctx, out)
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, out := range outs {
		assert.Equal(t, baseline.lines, out.lines, "concurrent invocation %d diverged", i)
	}
}
