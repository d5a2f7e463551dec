// Package translate turns reconstructed blocks into script statements.
//
// Each command kind has one handler. Handlers are registered on a
// Translator much like command handlers on a dispatcher, with optional
// logging and shared metrics.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/script"
)

// HandlerFunc translates one block. Compound blocks translate their
// children through s.Blocks.
type HandlerFunc func(s *Scope, b *flow.Block) ([]script.Stmt, error)

// Logger interface for pluggable logging.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// UnknownPolicy decides what happens to commands without a handler.
type UnknownPolicy int

const (
	// UnknownPlaceholder emits a marked comment and records a warning.
	UnknownPlaceholder UnknownPolicy = iota
	// UnknownFail aborts the event with ErrUnrecognizedCode.
	UnknownFail
)

// ParseUnknownPolicy converts "placeholder" or "fail".
func ParseUnknownPolicy(s string) (UnknownPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "placeholder", "":
		return UnknownPlaceholder, nil
	case "fail":
		return UnknownFail, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want placeholder or fail)", s)
	}
}

// Option configures handler registration.
type Option func(*handlerConfig)

type handlerConfig struct {
	logged bool
}

// Logged adds debug logging to the handler.
func Logged() Option {
	return func(c *handlerConfig) {
		c.logged = true
	}
}

// Translator routes blocks to the handler registered for their kind.
// It is safe for concurrent use once registration is done.
type Translator struct {
	handlers map[registry.Kind]HandlerFunc
	logger   Logger
	names    *Names
	unknown  UnknownPolicy

	translated metric.Int64Counter
	failed     metric.Int64Counter
}

// New creates a Translator with every built-in handler registered.
// Uses the global OTel meter for metrics (no-op if not configured).
func New(logger Logger, names *Names, unknown UnknownPolicy) (*Translator, error) {
	t := &Translator{
		handlers: make(map[registry.Kind]HandlerFunc),
		logger:   logger,
		names:    names,
		unknown:  unknown,
	}

	m := meter()

	var err error
	t.translated, err = m.Int64Counter(
		"translator.commands.translated",
		metric.WithDescription("Total commands translated"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating translated counter: %w", err)
	}

	t.failed, err = m.Int64Counter(
		"translator.commands.failed",
		metric.WithDescription("Total commands that failed to translate"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating failed counter: %w", err)
	}

	registerBuiltins(t)
	return t, nil
}

// Register adds a handler for the given kind with optional configuration.
func (t *Translator) Register(k registry.Kind, h HandlerFunc, opts ...Option) {
	cfg := &handlerConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	handler := h
	if cfg.logged && t.logger != nil {
		handler = t.withLogging(k, handler)
	}
	t.handlers[k] = handler
}

// HasHandler returns true if a handler is registered for the kind.
func (t *Translator) HasHandler(k registry.Kind) bool {
	_, ok := t.handlers[k]
	return ok
}

// Output is the translation of one event.
type Output struct {
	Stmts []script.Stmt
	// Warnings are the commands replaced by placeholders.
	Warnings []error
}

// Translate converts blocks of one event. table must be the table the
// blocks were reconstructed with.
func (t *Translator) Translate(ctx context.Context, eventID int, table *registry.Table, blocks []*flow.Block) (*Output, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := &Scope{
		EventID: eventID,
		Names:   t.names,
		ctx:     ctx,
		table:   table,
		t:       t,
	}
	stmts, err := s.Blocks(blocks)
	if err != nil {
		return nil, err
	}
	return &Output{Stmts: stmts, Warnings: s.warnings}, nil
}

// Scope carries per-event state through the handlers.
type Scope struct {
	EventID int
	Names   *Names

	ctx      context.Context
	table    *registry.Table
	t        *Translator
	warnings []error
}

// Features returns the active variant's sub-kind differences.
func (s *Scope) Features() registry.Features {
	return s.table.Features()
}

// Blocks translates a sequence of sibling blocks.
func (s *Scope) Blocks(blocks []*flow.Block) ([]script.Stmt, error) {
	var out []script.Stmt
	for _, b := range blocks {
		stmts, err := s.block(b)
		if err != nil {
			return nil, err
		}
		out = append(out, stmts...)
	}
	return out, nil
}

// Fail tags err with the event and the row at index.
func (s *Scope) Fail(index, code int, err error) error {
	return diag.Wrap(s.EventID, index, code, err)
}

func (s *Scope) block(b *flow.Block) ([]script.Stmt, error) {
	kind := b.Entry.Kind
	h, ok := s.t.handlers[kind]
	if !b.Known || !ok {
		return s.unhandled(b)
	}

	attrs := metric.WithAttributes(attribute.String("kind", kind.String()))
	if !b.Entry.Accepts(len(b.Command.Parameters)) {
		s.t.failed.Add(s.ctx, 1, attrs)
		return nil, s.Fail(b.Index, b.Command.Code, fmt.Errorf("%w: %s takes %s parameters, got %d",
			diag.ErrSchemaMismatch, kind, arity(b.Entry), len(b.Command.Parameters)))
	}

	stmts, err := h(s, b)
	if err != nil {
		s.t.failed.Add(s.ctx, 1, attrs)
		return nil, s.Fail(b.Index, b.Command.Code, err)
	}
	s.t.translated.Add(s.ctx, 1, attrs)
	return stmts, nil
}

func (s *Scope) unhandled(b *flow.Block) ([]script.Stmt, error) {
	var err error
	if b.Known {
		err = fmt.Errorf("%w: no translation for %s (code %d)", diag.ErrUnrecognizedCode, b.Entry.Kind, b.Command.Code)
	} else {
		err = fmt.Errorf("%w: code %d under %s", diag.ErrUnrecognizedCode, b.Command.Code, s.table.Variant())
	}
	err = s.Fail(b.Index, b.Command.Code, err)

	s.t.failed.Add(s.ctx, 1, metric.WithAttributes(attribute.String("kind", b.Entry.Kind.String())))
	if s.t.unknown == UnknownFail {
		return nil, err
	}

	s.warnings = append(s.warnings, err)
	return []script.Stmt{script.Placeholder{
		Code: b.Command.Code,
		Text: fmt.Sprintf("Unknown Command Code %d, parameters: %s", b.Command.Code, rawParams(b.Command.Parameters)),
	}}, nil
}

func (t *Translator) withLogging(k registry.Kind, h HandlerFunc) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		start := time.Now()
		t.logger.Debug("translating command", "kind", k.String(), "event", s.EventID, "index", b.Index)

		stmts, err := h(s, b)

		if err != nil {
			t.logger.Error("command failed", "kind", k.String(), "event", s.EventID, "index", b.Index,
				"duration", time.Since(start), "error", err)
		} else {
			t.logger.Debug("command complete", "kind", k.String(), "statements", len(stmts),
				"duration", time.Since(start))
		}
		return stmts, err
	}
}

func arity(e registry.Entry) string {
	switch {
	case e.MaxParams == registry.Unbounded:
		return fmt.Sprintf("at least %d", e.MinParams)
	case e.MinParams == e.MaxParams:
		return fmt.Sprint(e.MinParams)
	default:
		return fmt.Sprintf("%d to %d", e.MinParams, e.MaxParams)
	}
}

func rawParams(params []any) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprint(params)
	}
	return string(data)
}
