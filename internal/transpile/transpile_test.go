package transpile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/emit"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/translate"
	"github.com/eventpy/eventpy/pkg/core"
)

type fixtureRow struct {
	Code       int   `yaml:"code"`
	Indent     int   `yaml:"indent"`
	Parameters []any `yaml:"parameters"`
}

type fixtureDiagnostic struct {
	Kind  string `yaml:"kind"`
	Index int    `yaml:"index"`
	Code  int    `yaml:"code"`
}

type fixture struct {
	Name          string              `yaml:"name"`
	Variant       string              `yaml:"variant"`
	UnknownPolicy string              `yaml:"unknownPolicy"`
	Commands      []fixtureRow        `yaml:"commands"`
	Text          string              `yaml:"text"`
	Diagnostics   []fixtureDiagnostic `yaml:"diagnostics"`
}

func (f fixture) rows() []core.RawCommand {
	rows := make([]core.RawCommand, len(f.Commands))
	for i, c := range f.Commands {
		params := c.Parameters
		if params == nil {
			params = []any{}
		}
		rows[i] = core.RawCommand{Code: c.Code, Indent: c.Indent, Parameters: params}
	}
	return rows
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	paths, err := filepath.Glob(filepath.Join("testdata", "*.yaml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	var all []fixture
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		var cases []fixture
		require.NoError(t, yaml.Unmarshal(data, &cases), p)
		all = append(all, cases...)
	}
	return all
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEngine(t *testing.T, v registry.Variant, unknown translate.UnknownPolicy, opts ...Option) *Engine {
	t.Helper()
	tr, err := translate.New(nil, nil, unknown)
	require.NoError(t, err)
	opts = append([]Option{WithLogger(discardLogger())}, opts...)
	return NewEngine(registry.Default(v), tr, opts...)
}

func TestTranslateEvent_Fixtures(t *testing.T) {
	for _, f := range loadFixtures(t) {
		t.Run(f.Name, func(t *testing.T) {
			v, err := registry.ParseVariant(f.Variant)
			require.NoError(t, err)
			unknown, err := translate.ParseUnknownPolicy(f.UnknownPolicy)
			require.NoError(t, err)

			e := newEngine(t, v, unknown, WithEmitter(emit.New(emit.WithIndent("    "))))
			res, err := e.TranslateEvent(context.Background(), core.Event{ID: 3, Page: 1, Commands: f.rows()})

			failing := f.Text == "" && len(f.Diagnostics) > 0
			if failing {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, f.Text, res.Text)
			}

			require.Len(t, res.Diagnostics, len(f.Diagnostics))
			for i, want := range f.Diagnostics {
				got := res.Diagnostics[i]
				assert.Equal(t, want.Kind, got.Kind.String())
				assert.Equal(t, want.Index, got.CommandIndex)
				assert.Equal(t, want.Code, got.Code)
				assert.Equal(t, 3, got.EventID)
				assert.Equal(t, 1, got.Page)
			}
		})
	}
}

func ifElseRows() []core.RawCommand {
	return []core.RawCommand{
		{Code: 111, Indent: 0, Parameters: []any{0, 1, 0}},
		{Code: 122, Indent: 1, Parameters: []any{1, 1, 0, 0, 5}},
		{Code: 411, Indent: 0, Parameters: []any{}},
		{Code: 412, Indent: 0, Parameters: []any{}},
	}
}

func TestTranslateEvent_IfElseSkeleton(t *testing.T) {
	e := newEngine(t, registry.MV, translate.UnknownFail)

	res, err := e.TranslateEvent(context.Background(), core.Event{ID: 1, Commands: ifElseRows()})
	require.NoError(t, err)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "if game_switch_1:\n\tgame_variable_1 = 5\nelse:\n\tpass\n", res.Text)
}

func TestTranslateEvent_Deterministic(t *testing.T) {
	e := newEngine(t, registry.MZ, translate.UnknownPlaceholder)
	ev := core.Event{ID: 1, Commands: append(ifElseRows(), core.RawCommand{Code: 9999, Parameters: []any{"x"}})}

	first, err := e.TranslateEvent(context.Background(), ev)
	require.NoError(t, err)
	second, err := e.TranslateEvent(context.Background(), ev)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTranslateEvent_StructuralErrorIsPositioned(t *testing.T) {
	e := newEngine(t, registry.MV, translate.UnknownFail)
	rows := []core.RawCommand{
		{Code: 121, Indent: 0, Parameters: []any{1, 1, 0}},
		{Code: 412, Indent: 0, Parameters: []any{}},
	}

	_, err := e.TranslateEvent(context.Background(), core.Event{ID: 12, Commands: rows})
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrStructural))

	var te *diag.TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 12, te.EventID)
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, 412, te.Code)
}

func TestTranslateEvent_UnclosedBlock(t *testing.T) {
	e := newEngine(t, registry.MV, translate.UnknownFail)
	rows := ifElseRows()[:3]

	res, err := e.TranslateEvent(context.Background(), core.Event{ID: 2, Commands: rows})
	require.Error(t, err)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, diag.KindStructural, res.Diagnostics[0].Kind)
	assert.Equal(t, 0, res.Diagnostics[0].CommandIndex)
	assert.Equal(t, 111, res.Diagnostics[0].Code)
}

func TestTranslateEvent_EmptyList(t *testing.T) {
	e := newEngine(t, registry.MV, translate.UnknownFail)

	res, err := e.TranslateEvent(context.Background(), core.Event{ID: 2})
	require.NoError(t, err)
	assert.Empty(t, res.Text)
	assert.Empty(t, res.Diagnostics)
}

func runEvents() []core.Event {
	return []core.Event{
		{ID: 1, Page: 1, Name: "Door", Commands: ifElseRows()},
		{ID: 2, Page: 1, Commands: []core.RawCommand{{Code: 9999, Parameters: []any{}}}},
		{ID: 3, Page: 2, Commands: []core.RawCommand{{Code: 353, Parameters: []any{}}}},
	}
}

func TestRun_Policies(t *testing.T) {
	tests := []struct {
		name       string
		policy     FailurePolicy
		wantErr    bool
		wantEvents int
		wantText   string
	}{
		{
			name:       "abort stops at the failed event",
			policy:     FailAbort,
			wantErr:    true,
			wantEvents: 2,
		},
		{
			name:       "skip leaves the event out",
			policy:     FailSkip,
			wantEvents: 3,
			wantText: "# event 1 page 1: Door\n" +
				"if game_switch_1:\n\tgame_variable_1 = 5\nelse:\n\tpass\n" +
				"\n" +
				"# event 3 page 2\n" +
				"game_over()\n",
		},
		{
			name:       "placeholder marks the event",
			policy:     FailPlaceholder,
			wantEvents: 3,
			wantText: "# event 1 page 1: Door\n" +
				"if game_switch_1:\n\tgame_variable_1 = 5\nelse:\n\tpass\n" +
				"\n" +
				"# event 2 page 1\n" +
				"# event 2 page 1 could not be translated: event 2, command 0 (code 9999): unrecognized command code: code 9999 under mv\n" +
				"\n" +
				"# event 3 page 2\n" +
				"game_over()\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEngine(t, registry.MV, translate.UnknownFail, WithFailurePolicy(tt.policy))

			report, err := e.Run(context.Background(), runEvents())
			require.NotNil(t, report)
			assert.Len(t, report.Events, tt.wantEvents)
			assert.Equal(t, 1, report.Failed)
			assert.Equal(t, tt.policy, report.Policy)
			assert.Equal(t, registry.MV, report.Variant)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, diag.ErrUnrecognizedCode))
				assert.Contains(t, err.Error(), "event 2 page 1")
				assert.Equal(t, 1, report.Translated)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2, report.Translated)
			require.Len(t, report.Diagnostics(), 1)
			assert.Equal(t, diag.KindUnrecognizedCode, report.Diagnostics()[0].Kind)
			assert.Equal(t, tt.wantText, e.Render(report))
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	e := newEngine(t, registry.MV, translate.UnknownFail, WithFailurePolicy(FailSkip))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := e.Run(ctx, runEvents())
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Events)
}

func TestRender_EmptyEventGetsPass(t *testing.T) {
	e := newEngine(t, registry.MZ, translate.UnknownFail)

	report, err := e.Run(context.Background(), []core.Event{{ID: 4, Page: 0, Name: "Empty"}})
	require.NoError(t, err)
	assert.Equal(t, "# event 4 page 0: Empty\npass\n", e.Render(report))
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{in: "", want: FailAbort},
		{in: "abort", want: FailAbort},
		{in: "Skip", want: FailSkip},
		{in: " placeholder ", want: FailPlaceholder},
		{in: "ignore", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFailurePolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) FailurePolicy {
	t.Helper()
	p, err := ParseFailurePolicy(s)
	require.NoError(t, err)
	return p
}
