package translate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/internal/script"
	"github.com/eventpy/eventpy/pkg/core"
)

func (s *Scope) name(cat Category, id uint32) script.Name {
	return script.Name(s.Names.Name(cat, id))
}

func (s *Scope) variable(id uint32) script.Name {
	return s.name(Variables, id)
}

// ref renders a literal as a number and a reference as its variable.
func ref[T int32 | uint32](s *Scope, m operand.MaybeRef[T]) script.Expr {
	if idx, ok := m.Index(); ok {
		return s.variable(idx)
	}
	v, _ := m.Value()
	return script.Int(int64(v))
}

// signed negates e when decrease is set.
func signed(decrease bool, e script.Expr) script.Expr {
	if decrease {
		return script.Neg{X: e}
	}
	return e
}

// actorArg addresses an actor by name, by variable, or the whole party for
// a literal 0.
func (s *Scope) actorArg(target operand.MaybeRef[uint32]) script.Arg {
	if idx, ok := target.Index(); ok {
		return script.Kw("actor_id", s.variable(idx))
	}
	id, _ := target.Value()
	if id == 0 {
		return script.Kw("actors", script.Name("game_party"))
	}
	return script.Kw("actor", s.name(Actors, id))
}

// character names a map character. Negative ids are the player.
func character(id int32) script.Name {
	if id < 0 {
		return "game_player"
	}
	return script.Name(fmt.Sprintf("game_character_%d", id))
}

func getCharacter(id int32) script.Call {
	return script.CallOf("game.get_character", script.Kw("id", script.Int(int64(id))))
}

func audioFile(a core.AudioFile) script.Call {
	return script.MultilineCall("AudioFile",
		script.Kw("name", script.Str(a.Name)),
		script.Kw("pan", script.Int(int64(a.Pan))),
		script.Kw("pitch", script.Int(int64(a.Pitch))),
		script.Kw("volume", script.Int(int64(a.Volume))),
	)
}

func moveRoute(r core.MoveRoute) script.Call {
	steps := make([]script.Expr, len(r.List))
	for i, c := range r.List {
		var indent script.Expr = script.None{}
		if c.Indent != nil {
			indent = script.Int(int64(*c.Indent))
		}
		params := make([]script.Expr, len(c.Parameters))
		for j, p := range c.Parameters {
			params[j] = literal(p)
		}
		steps[i] = script.MultilineCall("MoveCommand",
			script.Kw("code", script.Int(int64(c.Code))),
			script.Kw("indent", indent),
			script.Kw("parameters", script.List{Items: params, Multiline: len(params) > 0}),
		)
	}
	return script.MultilineCall("MoveRoute",
		script.Kw("repeat", script.Bool(r.Repeat)),
		script.Kw("skippable", script.Bool(r.Skippable)),
		script.Kw("wait", script.Bool(r.Wait)),
		script.Kw("list", script.List{Items: steps, Multiline: len(steps) > 0}),
	)
}

// literal renders a raw decoded JSON value. Object keys are sorted.
func literal(v any) script.Expr {
	switch v := v.(type) {
	case nil:
		return script.None{}
	case bool:
		return script.Bool(v)
	case string:
		return script.Str(v)
	case json.Number:
		return script.Number(v.String())
	case float64:
		return script.Number(strconv.FormatFloat(v, 'g', -1, 64))
	case int:
		return script.Int(int64(v))
	case int64:
		return script.Int(v)
	case []any:
		items := make([]script.Expr, len(v))
		for i, item := range v {
			items[i] = literal(item)
		}
		return script.List{Items: items}
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]script.DictEntry, len(keys))
		for i, k := range keys {
			entries[i] = script.DictEntry{Key: script.Str(k), Value: literal(v[k])}
		}
		return script.Dict{Entries: entries}
	default:
		return script.Str(fmt.Sprint(v))
	}
}

func strList(lines []string) script.List {
	items := make([]script.Expr, len(lines))
	for i, l := range lines {
		items[i] = script.Str(l)
	}
	return script.List{Items: items, Multiline: len(items) > 0}
}

func intList(values []int64) script.List {
	items := make([]script.Expr, len(values))
	for i, v := range values {
		items[i] = script.Int(v)
	}
	return script.List{Items: items}
}

func do(fn string, args ...script.Arg) []script.Stmt {
	return []script.Stmt{script.Do(script.CallOf(fn, args...))}
}

func doMultiline(fn string, args ...script.Arg) []script.Stmt {
	return []script.Stmt{script.Do(script.MultilineCall(fn, args...))}
}

func assign(target script.Expr, op string, value script.Expr) script.Stmt {
	return script.Assign{Target: target, Op: op, Value: value}
}
