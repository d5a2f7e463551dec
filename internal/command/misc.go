package command

import (
	"fmt"
	"sort"
	"strings"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/pkg/core"
)

// ParseScript returns the script lines, first row included.
func ParseScript(params []any, extra []core.RawCommand) ([]string, error) {
	first, err := ParseSingleString(params, "script")
	if err != nil {
		return nil, err
	}
	rest, err := textLines(extra)
	if err != nil {
		return nil, err
	}
	return append([]string{first}, rest...), nil
}

// ParseLabel parses Label and Jump to Label. Empty names are rejected.
func ParseLabel(params []any) (string, error) {
	name, err := ParseSingleString(params, "label")
	if err != nil {
		return "", err
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty label name", diag.ErrData)
	}
	return name, nil
}

// PluginCommand is a plugin call. MV stores one whitespace separated line,
// kept in Words. MZ names the plugin and command and carries keyed
// arguments.
type PluginCommand struct {
	Words       []string
	PluginName  string
	CommandName string
	Comment     string
	Args        map[string]string
}

// Keys returns the argument names in sorted order.
func (p PluginCommand) Keys() []string {
	keys := make([]string, 0, len(p.Args))
	for k := range p.Args {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParsePluginCommandLine parses an MV plugin command.
func ParsePluginCommandLine(params []any) (PluginCommand, error) {
	line, err := ParseSingleString(params, "plugin command")
	if err != nil {
		return PluginCommand{}, err
	}
	return PluginCommand{Words: strings.Fields(line)}, nil
}

// ParsePluginCommand parses an MZ plugin command. The continuation rows only
// repeat the arguments for the editor's preview and are checked for shape.
func ParsePluginCommand(params []any, extra []core.RawCommand) (PluginCommand, error) {
	var c PluginCommand
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	var err error
	if c.PluginName, err = r.String(0, "plugin name"); err != nil {
		return c, err
	}
	if c.CommandName, err = r.String(1, "command name"); err != nil {
		return c, err
	}
	if c.Comment, err = r.String(2, "comment"); err != nil {
		return c, err
	}
	raw, err := r.Raw(3, "args")
	if err != nil {
		return c, err
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return c, fmt.Errorf("%w: parameter 3 (args): expected object", diag.ErrSchemaMismatch)
	}
	c.Args = make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return c, fmt.Errorf("%w: parameter 3 (args): argument %q is not a string", diag.ErrSchemaMismatch, k)
		}
		c.Args[k] = s
	}
	if _, err := textLines(extra); err != nil {
		return c, err
	}
	return c, nil
}
