// Package transpile runs the whole pipeline for one event at a time:
// reconstruct the block tree, translate it and emit the script text.
package transpile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/emit"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/translate"
	"github.com/eventpy/eventpy/pkg/core"
)

// FailurePolicy decides what a run does with an event that fails.
type FailurePolicy int

const (
	// FailAbort stops the run at the first failed event.
	FailAbort FailurePolicy = iota
	// FailSkip leaves the failed event out of the output.
	FailSkip
	// FailPlaceholder writes a marker comment in place of the event.
	FailPlaceholder
)

func (p FailurePolicy) String() string {
	switch p {
	case FailAbort:
		return "abort"
	case FailSkip:
		return "skip"
	case FailPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("FailurePolicy(%d)", int(p))
	}
}

// ParseFailurePolicy converts "abort", "skip" or "placeholder".
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "abort", "":
		return FailAbort, nil
	case "skip":
		return FailSkip, nil
	case "placeholder":
		return FailPlaceholder, nil
	default:
		return 0, fmt.Errorf("unknown failure policy %q (want abort, skip or placeholder)", s)
	}
}

// Result is the translation of one event.
type Result struct {
	Text        string
	Diagnostics []diag.Diagnostic
}

// Engine holds everything shared between events. It is safe for concurrent
// use.
type Engine struct {
	table      *registry.Table
	translator *translate.Translator
	emitter    *emit.Emitter
	logger     *slog.Logger
	policy     FailurePolicy
}

// Option configures an Engine.
type Option func(*Engine)

// WithEmitter replaces the default tab-indented emitter.
func WithEmitter(e *emit.Emitter) Option {
	return func(en *Engine) {
		en.emitter = e
	}
}

// WithLogger sets the logger used for per-event outcomes.
func WithLogger(l *slog.Logger) Option {
	return func(en *Engine) {
		en.logger = l
	}
}

// WithFailurePolicy sets how Run treats failed events.
func WithFailurePolicy(p FailurePolicy) Option {
	return func(en *Engine) {
		en.policy = p
	}
}

// NewEngine creates an Engine for table's variant.
func NewEngine(table *registry.Table, translator *translate.Translator, opts ...Option) *Engine {
	e := &Engine{
		table:      table,
		translator: translator,
		emitter:    emit.New(),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Variant returns the variant the engine translates.
func (e *Engine) Variant() registry.Variant {
	return e.table.Variant()
}

// TranslateEvent translates one event. A non-nil error means the event
// failed; its diagnostic is also the last entry of Result.Diagnostics.
// Placeholder warnings are reported as diagnostics without an error.
func (e *Engine) TranslateEvent(ctx context.Context, ev core.Event) (Result, error) {
	var res Result

	blocks, err := flow.Reconstruct(e.table, ev.Commands)
	if err != nil {
		err = positioned(ev.ID, err)
		res.Diagnostics = append(res.Diagnostics, diag.FromError(ev.ID, ev.Page, err))
		return res, err
	}

	out, err := e.translator.Translate(ctx, ev.ID, e.table, blocks)
	if err != nil {
		res.Diagnostics = append(res.Diagnostics, diag.FromError(ev.ID, ev.Page, err))
		return res, err
	}
	for _, w := range out.Warnings {
		res.Diagnostics = append(res.Diagnostics, diag.FromError(ev.ID, ev.Page, w))
	}

	res.Text = e.emitter.Emit(out.Stmts)
	return res, nil
}

// positioned turns a row-level error into one tagged with the event.
func positioned(eventID int, err error) error {
	var pe *diag.PositionError
	if errors.As(err, &pe) {
		return diag.Wrap(eventID, pe.Index, pe.Code, pe.Err)
	}
	return err
}
