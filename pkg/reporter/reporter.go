package reporter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cibuild/dumpinfo/pkg/category"
	"github.com/cibuild/dumpinfo/pkg/config"
	"github.com/cibuild/dumpinfo/pkg/formatter"
	"github.com/cibuild/dumpinfo/pkg/provider"
	"github.com/cibuild/dumpinfo/pkg/record"
	"github.com/cibuild/dumpinfo/pkg/sink"
)

// ErrNoProviders is returned when Generate is called without a provider set.
var ErrNoProviders = errors.New("reporter: no provider set configured")

// Reporter writes a diagnostic snapshot of host state into a line sink,
// typically a build's log stream. Which categories are emitted is driven by
// Config; the host-identity line is always emitted first.
//
// A Reporter holds no mutable state across invocations: Generate is a pure
// function of the configuration and the provider state at invocation time.
// Concurrent Generate calls are safe as long as the provider set is safe for
// concurrent reads; the reporter itself performs no locking.
type Reporter struct {
	// Config selects the categories to emit.
	Config config.ReportConfig

	// Providers is the host's live state. Required.
	Providers provider.Set

	// Formatter renders records into lines. If nil, the default English
	// formatter is used.
	Formatter *formatter.Formatter

	// SilentFailures suppresses the one-line failure marker written when a
	// category's provider cannot be queried. The failure is still recorded
	// in the Result either way.
	SilentFailures bool
}

// Generate writes the report to out and returns what was written per
// category.
//
// Categories are emitted in the fixed order of category.Categories, each
// line written to the sink as soon as it is formatted. A provider failure is
// recovered: the category gets a failure marker (unless SilentFailures) and
// the remaining categories are unaffected. A sink failure is fatal: Generate
// stops immediately and returns a *SinkError; the Result still describes
// everything written before the failure.
//
// If out is nil, lines go to stdout.
func (r *Reporter) Generate(ctx context.Context, out sink.LineSink) (*Result, error) {
	if r.Providers == nil {
		return nil, ErrNoProviders
	}
	if out == nil {
		out = sink.NewWriter(nil)
	}

	f := r.Formatter
	if f == nil {
		f = formatter.New()
	}

	res := newResult()

	start := time.Now()
	defer func() {
		reportDuration.Observe(time.Since(start).Seconds())
	}()

	slog.Debug("starting report", slog.String("report_id", res.ReportID))

	writeLine := func(label, line string) error {
		if err := out.WriteLine(line); err != nil {
			return &SinkError{Err: err}
		}
		res.Lines++
		reportLinesTotal.WithLabelValues(label).Inc()
		return nil
	}

	// The identity line is unconditional. If even the identity provider
	// fails, the line still goes out with placeholder fields so the report
	// always starts the same way.
	identity, err := r.Providers.Identity(ctx)
	if err != nil {
		slog.Error("failed to query host identity", slog.String("error", err.Error()))
		res.IdentityErr = err
		identity = record.HostIdentity{}
	}
	if err := writeLine("identity", f.Identity(identity)); err != nil {
		reportsTotal.WithLabelValues("aborted").Inc()
		return res, err
	}

	for _, e := range r.entries(f) {
		if !r.Config.Enabled(e.cat) {
			continue
		}

		// Registering the category up front distinguishes "enabled but
		// empty" from "not enabled" in the Result.
		res.Categories[e.cat] = CategoryResult{}

		slog.Debug("emitting category", slog.String("category", e.cat.String()))

		err := e.emit(ctx, func(line string) error {
			if err := writeLine(e.cat.String(), line); err != nil {
				return err
			}
			cr := res.Categories[e.cat]
			cr.Lines++
			res.Categories[e.cat] = cr
			return nil
		})
		if err == nil {
			continue
		}

		var sinkErr *SinkError
		if errors.As(err, &sinkErr) {
			reportsTotal.WithLabelValues("aborted").Inc()
			return res, sinkErr
		}

		// Provider failure: record it, optionally mark it in the output,
		// and move on to the next category.
		slog.Error("provider query failed",
			slog.String("category", e.cat.String()),
			slog.String("error", err.Error()),
		)
		categoryFailuresTotal.WithLabelValues(e.cat.String()).Inc()

		cr := res.Categories[e.cat]
		cr.Failed = true
		cr.Err = err
		res.Categories[e.cat] = cr

		if !r.SilentFailures {
			if werr := writeLine(e.cat.String(), f.Unavailable(e.cat)); werr != nil {
				reportsTotal.WithLabelValues("aborted").Inc()
				return res, werr
			}
			cr = res.Categories[e.cat]
			cr.Lines++
			res.Categories[e.cat] = cr
		}
	}

	status := "success"
	if res.Partial() {
		status = "partial"
	}
	reportsTotal.WithLabelValues(status).Inc()

	slog.Debug("report complete",
		slog.String("report_id", res.ReportID),
		slog.Int("lines", res.Lines),
		slog.Int("failed_categories", len(res.FailedCategories())),
	)

	return res, nil
}

// entry binds one category to the code that queries its provider and emits
// its formatted lines. Adding a category means adding a record type, a
// formatter template, and one entry here.
type entry struct {
	cat  category.Category
	emit func(ctx context.Context, write func(string) error) error
}

func (r *Reporter) entries(f *formatter.Formatter) []entry {
	p := r.Providers
	return []entry{
		{category.Agents, func(ctx context.Context, write func(string) error) error {
			items, err := p.Agents(ctx)
			if err != nil {
				return fmt.Errorf("failed to query agents: %w", err)
			}
			for _, it := range items {
				if err := write(f.Agent(it)); err != nil {
					return err
				}
			}
			return nil
		}},
		{category.Tools, func(ctx context.Context, write func(string) error) error {
			items, err := p.Tools(ctx)
			if err != nil {
				return fmt.Errorf("failed to query tools: %w", err)
			}
			for _, it := range items {
				if err := write(f.Tool(it)); err != nil {
					return err
				}
			}
			return nil
		}},
		{category.Plugins, func(ctx context.Context, write func(string) error) error {
			items, err := p.Plugins(ctx)
			if err != nil {
				return fmt.Errorf("failed to query plugins: %w", err)
			}
			for _, it := range items {
				if err := write(f.Plugin(it)); err != nil {
					return err
				}
			}
			return nil
		}},
		{category.SystemProperties, kvEmit(p.SystemProperties, f, "system properties")},
		{category.Environment, kvEmit(p.Environment, f, "environment")},
		{category.DirectoryBindings, kvEmit(p.DirectoryBindings, f, "directory bindings")},
	}
}

// kvEmit builds the emit func shared by the three key/value categories.
func kvEmit(
	query func(context.Context) ([]record.KeyValue, error),
	f *formatter.Formatter,
	what string,
) func(ctx context.Context, write func(string) error) error {
	return func(ctx context.Context, write func(string) error) error {
		items, err := query(ctx)
		if err != nil {
			return fmt.Errorf("failed to query %s: %w", what, err)
		}
		for _, it := range items {
			if err := write(f.KeyValue(it)); err != nil {
				return err
			}
		}
		return nil
	}
}
