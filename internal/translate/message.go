package translate

import (
	"github.com/eventpy/eventpy/internal/command"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/script"
)

func showText(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseShowText(s.Features(), b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}

	args := []script.Arg{
		script.Kw("face_name", script.Str(c.FaceName)),
		script.Kw("face_index", script.Int(int64(c.FaceIndex))),
		script.Kw("background", script.Int(int64(c.Background))),
		script.Kw("position_type", script.Int(int64(c.Position))),
	}
	if c.HasSpeaker {
		args = append(args, script.Kw("speaker_name", script.Str(c.SpeakerName)))
	}
	args = append(args, script.Kw("lines", strList(c.Lines)))
	return doMultiline("show_text", args...), nil
}

func showScrollingText(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseScrollingText(b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}
	return doMultiline("show_scrolling_text",
		script.Kw("speed", script.Int(int64(c.Speed))),
		script.Kw("no_fast", script.Bool(c.NoFast)),
		script.Kw("lines", strList(c.Lines)),
	), nil
}

func comment(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	lines, err := command.ParseComment(b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}
	out := make([]script.Stmt, len(lines))
	for i, l := range lines {
		out[i] = script.Comment{Text: l}
	}
	return out, nil
}

func commonEvent(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	id, err := command.ParseSingleUint(b.Command.Parameters, "common event id")
	if err != nil {
		return nil, err
	}
	return []script.Stmt{script.Do(script.Call{Func: s.name(CommonEvents, id)})}, nil
}

func label(fn string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		name, err := command.ParseLabel(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		return do(fn, script.Kw("name", script.Str(name))), nil
	}
}

func scriptLines(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	lines, err := command.ParseScript(b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}
	return doMultiline("script", script.Kw("lines", strList(lines))), nil
}

// pluginCommand handles both layouts: the MV single line and the MZ
// plugin/command pair with keyed arguments.
func pluginCommand(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	if len(b.Command.Parameters) == 1 {
		c, err := command.ParsePluginCommandLine(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		args := make([]script.Arg, len(c.Words))
		for i, w := range c.Words {
			args[i] = script.Pos(script.Str(w))
		}
		return do("plugin_command", args...), nil
	}

	c, err := command.ParsePluginCommand(b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}
	keys := c.Keys()
	entries := make([]script.DictEntry, len(keys))
	for i, k := range keys {
		entries[i] = script.DictEntry{Key: script.Str(k), Value: script.Str(c.Args[k])}
	}
	return doMultiline("plugin_command",
		script.Kw("plugin_name", script.Str(c.PluginName)),
		script.Kw("command_name", script.Str(c.CommandName)),
		script.Kw("comment", script.Str(c.Comment)),
		script.Kw("args", script.Dict{Entries: entries, Multiline: len(entries) > 0}),
	), nil
}
