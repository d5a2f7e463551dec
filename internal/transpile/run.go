package transpile

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/script"
	"github.com/eventpy/eventpy/pkg/core"
)

// EventResult is the outcome of one event within a run.
type EventResult struct {
	ID       int
	Page     int
	Name     string
	Source   string
	Commands int
	Text     string
	Failed   bool
	// Skipped is set for failed events left out under FailSkip.
	Skipped     bool
	Diagnostics []diag.Diagnostic
}

// Report is the outcome of a run.
type Report struct {
	Variant    registry.Variant
	Policy     FailurePolicy
	Events     []EventResult
	Translated int
	Failed     int
	Started    time.Time
	Duration   time.Duration
}

// Diagnostics returns every diagnostic of the run in event order.
func (r *Report) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, ev := range r.Events {
		out = append(out, ev.Diagnostics...)
	}
	return out
}

// Run translates events in order. It checks ctx between events only.
// Under FailAbort the first failure ends the run and is returned together
// with the partial report.
func (e *Engine) Run(ctx context.Context, events []core.Event) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	report := &Report{
		Variant: e.Variant(),
		Policy:  e.policy,
		Events:  make([]EventResult, 0, len(events)),
		Started: time.Now(),
	}
	defer func() {
		report.Duration = time.Since(report.Started)
	}()

	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res, err := e.TranslateEvent(ctx, ev)
		er := EventResult{
			ID:          ev.ID,
			Page:        ev.Page,
			Name:        ev.Name,
			Source:      ev.Source,
			Commands:    len(ev.Commands),
			Text:        res.Text,
			Diagnostics: res.Diagnostics,
		}
		if err == nil {
			e.logger.Debug("event translated", "event", ev.ID, "page", ev.Page,
				"commands", len(ev.Commands), "diagnostics", len(res.Diagnostics))
			report.Translated++
			report.Events = append(report.Events, er)
			continue
		}

		e.logger.Warn("event failed", "event", ev.ID, "page", ev.Page, "source", ev.Source,
			"policy", e.policy.String(), "error", err)
		report.Failed++
		er.Failed = true

		switch e.policy {
		case FailAbort:
			report.Events = append(report.Events, er)
			return report, fmt.Errorf("event %d page %d: %w", ev.ID, ev.Page, err)
		case FailSkip:
			er.Skipped = true
		case FailPlaceholder:
			er.Text = e.emitter.Emit([]script.Stmt{script.Comment{
				Text: fmt.Sprintf("event %d page %d could not be translated: %v", ev.ID, ev.Page, err),
			}})
		}
		report.Events = append(report.Events, er)
	}
	return report, nil
}

// Render joins the text of every event that was not skipped, each under a
// header comment.
func (e *Engine) Render(r *Report) string {
	var b strings.Builder
	first := true
	for _, ev := range r.Events {
		if ev.Skipped {
			continue
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false

		header := fmt.Sprintf("event %d page %d", ev.ID, ev.Page)
		if ev.Name != "" {
			header += ": " + ev.Name
		}
		b.WriteString(e.emitter.Emit([]script.Stmt{script.Comment{Text: header}}))
		if ev.Text == "" {
			b.WriteString(e.emitter.Emit([]script.Stmt{script.Pass{}}))
			continue
		}
		b.WriteString(ev.Text)
	}
	return b.String()
}
