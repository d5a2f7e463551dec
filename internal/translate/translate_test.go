package translate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/emit"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/script"
	"github.com/eventpy/eventpy/pkg/core"
)

// testLogger implements Logger for testing
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

func (l *testLogger) Debug(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("DEBUG: %s %v", msg, keysAndValues))
}

func (l *testLogger) Info(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("INFO: %s %v", msg, keysAndValues))
}

func (l *testLogger) Error(msg string, keysAndValues ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, fmt.Sprintf("ERROR: %s %v", msg, keysAndValues))
}

func row(code, indent int, params ...any) core.RawCommand {
	if params == nil {
		params = []any{}
	}
	return core.RawCommand{Code: code, Indent: indent, Parameters: params}
}

func translateRows(t *testing.T, tr *Translator, v registry.Variant, rows ...core.RawCommand) (*Output, error) {
	t.Helper()
	table := registry.Default(v)
	blocks, err := flow.Reconstruct(table, rows)
	require.NoError(t, err)
	return tr.Translate(context.Background(), 7, table, blocks)
}

func newTestTranslator(t *testing.T, unknown UnknownPolicy) (*Translator, *testLogger) {
	t.Helper()
	logger := &testLogger{}
	tr, err := New(logger, nil, unknown)
	require.NoError(t, err)
	return tr, logger
}

func render(t *testing.T, v registry.Variant, rows ...core.RawCommand) string {
	t.Helper()
	tr, _ := newTestTranslator(t, UnknownFail)
	out, err := translateRows(t, tr, v, rows...)
	require.NoError(t, err)
	return emit.New().Emit(out.Stmts)
}

func TestTranslate_Commands(t *testing.T) {
	tests := []struct {
		name    string
		variant registry.Variant
		rows    []core.RawCommand
		want    string
	}{
		{
			name:    "if else around variable assignments",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(111, 0, 0, 1, 0),       // switch 1 is ON
				row(122, 1, 1, 1, 0, 0, 5), // variable 1 = 5
				row(411, 0),
				row(122, 1, 1, 1, 0, 0, 6),
				row(412, 0),
			},
			want: "if game_switch_1:\n\tgame_variable_1 = 5\nelse:\n\tgame_variable_1 = 6\n",
		},
		{
			name:    "empty branches get pass",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(111, 0, 0, 2, 1), // switch 2 is OFF
				row(411, 0),
				row(412, 0),
			},
			want: "if not game_switch_2:\n\tpass\nelse:\n\tpass\n",
		},
		{
			name:    "variable condition against another variable",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(111, 0, 1, 3, 1, 4, 1), // variable 3 >= variable 4
				row(412, 0),
			},
			want: "if game_variable_3 >= game_variable_4:\n\tpass\n",
		},
		{
			name:    "switch range",
			variant: registry.MV,
			rows:    []core.RawCommand{row(121, 0, 1, 3, 0)},
			want:    "game_switch_1 = True\ngame_switch_2 = True\ngame_switch_3 = True\n",
		},
		{
			name:    "random operand includes max",
			variant: registry.MV,
			rows:    []core.RawCommand{row(122, 0, 1, 1, 1, 2, 1, 6)},
			want:    "game_variable_1 += random.randrange(start=1, stop=7)\n",
		},
		{
			name:    "character map x",
			variant: registry.MV,
			rows:    []core.RawCommand{row(122, 0, 2, 2, 0, 3, 5, -1, 0)},
			want:    "game_variable_2 = game.get_character(id=-1).map_x\n",
		},
		{
			name:    "self switch and timer",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(123, 0, "A", 0),
				row(124, 0, 0, 90),
				row(124, 0, 1, 0),
			},
			want: "game_self_switches['A'] = True\ngame_timer.start(seconds=90)\ngame_timer.stop()\n",
		},
		{
			name:    "gold decrease by variable",
			variant: registry.MV,
			rows:    []core.RawCommand{row(125, 0, 1, 1, 7)},
			want:    "game_party.gold -= game_variable_7\n",
		},
		{
			name:    "items are signed",
			variant: registry.MV,
			rows:    []core.RawCommand{row(126, 0, 3, 1, 0, 2)},
			want:    "gain_item(item=game_item_3, value=-2)\n",
		},
		{
			name:    "state for the whole party",
			variant: registry.MV,
			rows:    []core.RawCommand{row(313, 0, 0, 0, 0, 4)},
			want:    "add_state(actors=game_party, state=game_state_4)\n",
		},
		{
			name:    "skill by actor variable",
			variant: registry.MV,
			rows:    []core.RawCommand{row(318, 0, 1, 9, 1, 2)},
			want:    "forget_skill(actor_id=game_variable_9, skill=game_skill_2)\n",
		},
		{
			name:    "loop with break",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(112, 0),
				row(113, 1),
				row(413, 0),
			},
			want: "while True:\n\tbreak\n",
		},
		{
			name:    "choices become an if chain",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(102, 0, []any{"Yes", "No"}, 1, 0, 2, 0),
				row(402, 0, 0, "Yes"),
				row(121, 1, 1, 1, 0),
				row(402, 0, 1, "No"),
				row(404, 0),
			},
			want: "show_choices(\n" +
				"\tchoices=['Yes', 'No'],\n" +
				"\tcancel_type=1,\n" +
				"\tdefault_type=0,\n" +
				"\tposition_type=2,\n" +
				"\tbackground=0,\n" +
				")\n" +
				"if get_choice_index() == 0: # Yes\n" +
				"\tgame_switch_1 = True\n" +
				"elif get_choice_index() == 1: # No\n" +
				"\tpass\n",
		},
		{
			name:    "battle with result branches",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(301, 0, 0, 3, true, false),
				row(601, 0),
				row(115, 1),
				row(603, 0),
				row(604, 0),
			},
			want: "battle_processing(\n" +
				"\ttroop=game_troop_3,\n" +
				"\tcan_escape=True,\n" +
				"\tcan_lose=False,\n" +
				")\n" +
				"if game_battle_result.is_win():\n" +
				"\texit_event_processing()\n" +
				"elif game_battle_result.is_lose():\n" +
				"\tpass\n",
		},
		{
			name:    "mz show text with speaker",
			variant: registry.MZ,
			rows: []core.RawCommand{
				row(101, 0, "", 0, 0, 2, "Bob"),
				row(401, 0, "Hi"),
			},
			want: "show_text(\n" +
				"\tface_name='',\n" +
				"\tface_index=0,\n" +
				"\tbackground=0,\n" +
				"\tposition_type=2,\n" +
				"\tspeaker_name='Bob',\n" +
				"\tlines=[\n" +
				"\t\t'Hi',\n" +
				"\t],\n" +
				")\n",
		},
		{
			name:    "mv plugin command words",
			variant: registry.MV,
			rows:    []core.RawCommand{row(356, 0, "Quest  start 3")},
			want:    "plugin_command('Quest', 'start', '3')\n",
		},
		{
			name:    "mz plugin command args are sorted",
			variant: registry.MZ,
			rows: []core.RawCommand{
				row(357, 0, "Quest", "start", "", map[string]any{"id": "3", "area": "north"}),
			},
			want: "plugin_command(\n" +
				"\tplugin_name='Quest',\n" +
				"\tcommand_name='start',\n" +
				"\tcomment='',\n" +
				"\targs={\n" +
				"\t\t'area': 'north',\n" +
				"\t\t'id': '3',\n" +
				"\t},\n" +
				")\n",
		},
		{
			name:    "comment lines",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(108, 0, "first"),
				row(408, 0, "second"),
			},
			want: "# first\n# second\n",
		},
		{
			name:    "common event and labels",
			variant: registry.MV,
			rows: []core.RawCommand{
				row(117, 0, 4),
				row(118, 0, "top"),
				row(119, 0, "top"),
			},
			want: "common_event_4()\nset_label(name='top')\njump_to_label(name='top')\n",
		},
		{
			name:    "no-op rows emit nothing",
			variant: registry.MV,
			rows:    []core.RawCommand{row(0, 0)},
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render(t, tt.variant, tt.rows...))
		})
	}
}

func TestTranslate_Names(t *testing.T) {
	names, err := NewNames(map[Category]map[string]string{
		Switches:  {"1": "door_open"},
		Variables: {"1": "gold_found"},
	})
	require.NoError(t, err)

	tr, err := New(nil, names, UnknownFail)
	require.NoError(t, err)

	out, err := translateRows(t, tr, registry.MV,
		row(111, 0, 0, 1, 0),
		row(122, 1, 1, 2, 0, 0, 5),
		row(412, 0),
	)
	require.NoError(t, err)
	assert.Equal(t, "if door_open:\n\tgold_found = 5\n\tgame_variable_2 = 5\n", emit.New().Emit(out.Stmts))
}

func TestNewNames_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tables map[Category]map[string]string
	}{
		{"unknown category", map[Category]map[string]string{"vehicles": {"1": "boat"}}},
		{"bad id", map[Category]map[string]string{Switches: {"one": "door"}}},
		{"not an identifier", map[Category]map[string]string{Switches: {"1": "door open"}}},
		{"leading digit", map[Category]map[string]string{Actors: {"1": "1hero"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNames(tt.tables)
			assert.Error(t, err)
		})
	}
}

func TestNames_Fallback(t *testing.T) {
	var n *Names
	assert.Equal(t, "game_troop_12", n.Name(Troops, 12))
	assert.Equal(t, "common_event_0", n.Name(CommonEvents, 0))
	assert.Len(t, Categories(), 12)
}

func TestTranslate_UnknownPlaceholder(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownPlaceholder)

	out, err := translateRows(t, tr, registry.MV,
		row(121, 0, 1, 1, 0),
		row(9999, 0, 1, "a"),
	)
	require.NoError(t, err)

	assert.Equal(t, "game_switch_1 = True\n# Unknown Command Code 9999, parameters: [1,\"a\"]\n", emit.New().Emit(out.Stmts))
	require.Len(t, out.Warnings, 1)
	assert.Equal(t, diag.KindUnrecognizedCode, diag.KindOf(out.Warnings[0]))
	require.Len(t, script.Placeholders(out.Stmts), 1)
	assert.Equal(t, 9999, script.Placeholders(out.Stmts)[0].Code)
}

func TestTranslate_UnknownFail(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)

	_, err := translateRows(t, tr, registry.MV,
		row(121, 0, 1, 1, 0),
		row(9999, 0),
	)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diag.ErrUnrecognizedCode))

	var te *diag.TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 7, te.EventID)
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, 9999, te.Code)
}

func TestTranslate_VariantOnlyCode(t *testing.T) {
	// 357 is a plugin command only under MZ
	tr, _ := newTestTranslator(t, UnknownFail)
	_, err := translateRows(t, tr, registry.MV, row(357, 0, "a", "b", "", map[string]any{}))
	assert.Equal(t, diag.KindUnrecognizedCode, diag.KindOf(err))
}

func TestTranslate_ArityMismatch(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)

	_, err := translateRows(t, tr, registry.MV, row(121, 0, 1, 1))
	require.Error(t, err)
	assert.Equal(t, diag.KindSchemaMismatch, diag.KindOf(err))
	assert.Contains(t, err.Error(), "ControlSwitches takes 3 parameters, got 2")
}

func TestTranslate_NestedErrorKeepsIndex(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)

	_, err := translateRows(t, tr, registry.MV,
		row(111, 0, 0, 1, 0),
		row(125, 1, 2, 0, 10), // decrease flag out of domain
		row(412, 0),
	)
	require.Error(t, err)
	assert.Equal(t, diag.KindData, diag.KindOf(err))

	var te *diag.TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, 125, te.Code)
}

func TestTranslate_ChoiceOutOfRange(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)

	_, err := translateRows(t, tr, registry.MV,
		row(102, 0, []any{"Yes"}, 0),
		row(402, 0, 3, "Nope"),
		row(404, 0),
	)
	require.Error(t, err)
	assert.Equal(t, diag.KindData, diag.KindOf(err))

	var te *diag.TranslationError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, 1, te.Index)
	assert.Equal(t, 402, te.Code)
}

func TestTranslate_LoggedHandler(t *testing.T) {
	tr, logger := newTestTranslator(t, UnknownFail)

	_, err := translateRows(t, tr, registry.MV,
		row(112, 0),
		row(413, 0),
	)
	require.NoError(t, err)

	logger.mu.Lock()
	defer logger.mu.Unlock()
	joined := strings.Join(logger.messages, "\n")
	assert.Contains(t, joined, "DEBUG: translating command")
	assert.Contains(t, joined, "DEBUG: command complete")
}

func TestTranslator_HasHandler(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)

	for _, e := range registry.Default(registry.MZ).Entries() {
		switch e.Role {
		case registry.RoleLeaf, registry.RoleOpen:
			assert.True(t, tr.HasHandler(e.Kind), "no handler for %s", e.Kind)
		}
	}
	assert.False(t, tr.HasHandler(registry.KindUnknown))
}

func TestTranslator_Register(t *testing.T) {
	tr, _ := newTestTranslator(t, UnknownFail)
	tr.Register(registry.GameOver, func(*Scope, *flow.Block) ([]script.Stmt, error) {
		return []script.Stmt{script.Comment{Text: "replaced"}}, nil
	})

	out, err := translateRows(t, tr, registry.MV, row(353, 0))
	require.NoError(t, err)
	assert.Equal(t, "# replaced\n", emit.New().Emit(out.Stmts))
}

func TestParseUnknownPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    UnknownPolicy
		wantErr bool
	}{
		{"", UnknownPlaceholder, false},
		{"placeholder", UnknownPlaceholder, false},
		{" FAIL ", UnknownFail, false},
		{"skip", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUnknownPolicy(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
