package report

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/translate"
	"github.com/eventpy/eventpy/internal/transpile"
	"github.com/eventpy/eventpy/pkg/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("sqlite", "", "", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Setup())
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func runReport(t *testing.T, policy transpile.FailurePolicy, events []core.Event) (*transpile.Report, error) {
	t.Helper()
	tr, err := translate.New(nil, nil, translate.UnknownFail)
	require.NoError(t, err)
	e := transpile.NewEngine(registry.Default(registry.MV), tr,
		transpile.WithFailurePolicy(policy),
		transpile.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	return e.Run(context.Background(), events)
}

func testEvents() []core.Event {
	return []core.Event{
		{ID: 1, Page: 1, Name: "Door", Source: "Map001.json", Commands: []core.RawCommand{
			{Code: 121, Indent: 0, Parameters: []any{1, 1, 0}},
		}},
		{ID: 2, Page: 1, Name: "Chest", Source: "Map001.json", Commands: []core.RawCommand{
			{Code: 353, Indent: 0, Parameters: []any{}},
			{Code: 9999, Indent: 0, Parameters: []any{"x", 2}},
		}},
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "", "", zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown report driver")
}

func TestTableNames(t *testing.T) {
	tests := []struct {
		name     string
		model    interface{ TableName() string }
		expected string
	}{
		{"Run", &Run{}, "runs"},
		{"EventRecord", &EventRecord{}, "event_records"},
		{"DiagnosticRecord", &DiagnosticRecord{}, "diagnostic_records"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.model.TableName())
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	events := testEvents()
	rep, runErr := runReport(t, transpile.FailSkip, events)
	require.NoError(t, runErr)

	id, err := s.Save(context.Background(), "Map001.json", rep, events, runErr)
	require.NoError(t, err)
	assert.Len(t, id, 36)

	runs, err := s.Runs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, id, run.ID)
	assert.Equal(t, "Map001.json", run.Source)
	assert.Equal(t, "mv", run.Variant)
	assert.Equal(t, "skip", run.FailurePolicy)
	assert.Equal(t, 2, run.Events)
	assert.Equal(t, 1, run.Translated)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, 1, run.Diagnostics)
	assert.False(t, run.Aborted)

	recs, err := s.Events(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "translated", recs[0].Status)
	assert.Equal(t, "game_switch_1 = True\n", recs[0].Text)
	assert.Equal(t, "Door", recs[0].Name)
	assert.Equal(t, "skipped", recs[1].Status)
	assert.Equal(t, 2, recs[1].Commands)

	diags, err := s.Diagnostics(context.Background(), id, "")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, 2, d.EventID)
	assert.Equal(t, 1, d.CommandIndex)
	assert.Equal(t, 9999, d.Code)
	assert.Equal(t, "UnrecognizedCode", d.Kind)

	var params []any
	require.NoError(t, json.Unmarshal(d.Parameters, &params))
	assert.Equal(t, []any{"x", float64(2)}, params)
}

func TestSave_AbortedRun(t *testing.T) {
	s := newTestStore(t)
	events := testEvents()
	rep, runErr := runReport(t, transpile.FailAbort, events)
	require.Error(t, runErr)

	id, err := s.Save(context.Background(), "Map001.json", rep, nil, runErr)
	require.NoError(t, err)

	runs, err := s.Runs(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Aborted)

	recs, err := s.Events(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "failed", recs[1].Status)

	diags, err := s.Diagnostics(context.Background(), id, "UnrecognizedCode")
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.JSONEq(t, "null", string(diags[0].Parameters))

	none, err := s.Diagnostics(context.Background(), id, "DataError")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRowIndex_Params(t *testing.T) {
	idx := commandIndex(testEvents())

	assert.JSONEq(t, `[1,1,0]`, string(idx.params(1, 1, 0)))
	assert.JSONEq(t, `null`, string(idx.params(1, 1, 5)))
	assert.JSONEq(t, `null`, string(idx.params(1, 2, 0)))
	assert.JSONEq(t, `null`, string(idx.params(1, 1, -1)))
}
