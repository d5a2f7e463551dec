// Package operand decodes the positional parameter slots of a command row
// into typed values.
//
// Every read names the slot it expects so a failure points at the exact
// position. Shape problems wrap diag.ErrSchemaMismatch, values outside
// their domain wrap diag.ErrData.
package operand

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/pkg/core"
)

// Reader reads slots out of one parameter list. It never modifies the list.
type Reader struct {
	params []any
}

// NewReader wraps params.
func NewReader(params []any) *Reader {
	return &Reader{params: params}
}

// Len returns the number of slots.
func (r *Reader) Len() int {
	return len(r.params)
}

// ExpectLen fails unless there are exactly n slots.
func (r *Reader) ExpectLen(n int) error {
	if len(r.params) != n {
		return fmt.Errorf("%w: expected %d parameters, got %d", diag.ErrSchemaMismatch, n, len(r.params))
	}
	return nil
}

// ExpectLenBetween fails unless min <= slots <= max.
func (r *Reader) ExpectLenBetween(min, max int) error {
	if len(r.params) < min || len(r.params) > max {
		return fmt.Errorf("%w: expected %d to %d parameters, got %d", diag.ErrSchemaMismatch, min, max, len(r.params))
	}
	return nil
}

// Raw returns slot i untouched.
func (r *Reader) Raw(i int, name string) (any, error) {
	if i < 0 || i >= len(r.params) {
		return nil, fmt.Errorf("%w: parameter %d (%s) missing, have %d", diag.ErrSchemaMismatch, i, name, len(r.params))
	}
	return r.params[i], nil
}

// Int reads an integer slot.
func (r *Reader) Int(i int, name string) (int64, error) {
	v, err := r.Raw(i, name)
	if err != nil {
		return 0, err
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %d (%s): %w", i, name, err)
	}
	return n, nil
}

// Int32 reads a signed 32-bit integer slot.
func (r *Reader) Int32(i int, name string) (int32, error) {
	n, err := r.Int(i, name)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: parameter %d (%s): %d out of int32 range", diag.ErrData, i, name, n)
	}
	return int32(n), nil
}

// Uint32 reads a non-negative 32-bit integer slot, such as an id or index.
func (r *Reader) Uint32(i int, name string) (uint32, error) {
	n, err := r.Int(i, name)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, fmt.Errorf("%w: parameter %d (%s): %d out of uint32 range", diag.ErrData, i, name, n)
	}
	return uint32(n), nil
}

// Uint8 reads a small non-negative integer slot.
func (r *Reader) Uint8(i int, name string) (uint8, error) {
	n, err := r.Int(i, name)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint8 {
		return 0, fmt.Errorf("%w: parameter %d (%s): %d out of uint8 range", diag.ErrData, i, name, n)
	}
	return uint8(n), nil
}

// Enum reads an integer slot that must fall in [0, limit).
func (r *Reader) Enum(i int, name string, limit int) (int, error) {
	n, err := r.Int(i, name)
	if err != nil {
		return 0, err
	}
	if n < 0 || n >= int64(limit) {
		return 0, fmt.Errorf("%w: parameter %d (%s): unknown value %d", diag.ErrData, i, name, n)
	}
	return int(n), nil
}

// String reads a string slot.
func (r *Reader) String(i int, name string) (string, error) {
	v, err := r.Raw(i, name)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %d (%s): expected string, got %s", diag.ErrSchemaMismatch, i, name, typeName(v))
	}
	return s, nil
}

// Bool reads a JSON boolean slot.
func (r *Reader) Bool(i int, name string) (bool, error) {
	v, err := r.Raw(i, name)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: parameter %d (%s): expected boolean, got %s", diag.ErrSchemaMismatch, i, name, typeName(v))
	}
	return b, nil
}

// IntBool reads a 0/1 integer flag. 0 is false, 1 is true, anything else
// is rejected.
func (r *Reader) IntBool(i int, name string) (bool, error) {
	n, err := r.Int(i, name)
	if err != nil {
		return false, err
	}
	b, err := DecodeIntBool(n)
	if err != nil {
		return false, fmt.Errorf("parameter %d (%s): %w", i, name, err)
	}
	return b, nil
}

// Strings reads an array of strings.
func (r *Reader) Strings(i int, name string) ([]string, error) {
	list, err := r.list(i, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(list))
	for j, v := range list {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: parameter %d (%s) item %d: expected string, got %s", diag.ErrSchemaMismatch, i, name, j, typeName(v))
		}
		out[j] = s
	}
	return out, nil
}

// Ints reads an array of integers.
func (r *Reader) Ints(i int, name string) ([]int64, error) {
	list, err := r.list(i, name)
	if err != nil {
		return nil, err
	}
	out := make([]int64, len(list))
	for j, v := range list {
		n, err := toInt64(v)
		if err != nil {
			return nil, fmt.Errorf("parameter %d (%s) item %d: %w", i, name, j, err)
		}
		out[j] = n
	}
	return out, nil
}

// Audio reads an audio file object.
func (r *Reader) Audio(i int, name string) (core.AudioFile, error) {
	var a core.AudioFile
	obj, err := r.object(i, name)
	if err != nil {
		return a, err
	}
	f := fields{obj: obj, slot: i, name: name}
	if a.Name, err = f.string("name"); err != nil {
		return a, err
	}
	if a.Volume, err = f.int("volume"); err != nil {
		return a, err
	}
	if a.Pitch, err = f.int("pitch"); err != nil {
		return a, err
	}
	if a.Pan, err = f.int("pan"); err != nil {
		return a, err
	}
	return a, nil
}

// MoveRoute reads a movement route object.
func (r *Reader) MoveRoute(i int, name string) (core.MoveRoute, error) {
	var mr core.MoveRoute
	obj, err := r.object(i, name)
	if err != nil {
		return mr, err
	}
	f := fields{obj: obj, slot: i, name: name}
	if mr.Repeat, err = f.bool("repeat"); err != nil {
		return mr, err
	}
	if mr.Skippable, err = f.bool("skippable"); err != nil {
		return mr, err
	}
	if mr.Wait, err = f.bool("wait"); err != nil {
		return mr, err
	}
	raw, ok := obj["list"].([]any)
	if !ok {
		return mr, fmt.Errorf("%w: parameter %d (%s): field list: expected array, got %s", diag.ErrSchemaMismatch, i, name, typeName(obj["list"]))
	}
	mr.List = make([]core.MoveCommand, len(raw))
	for j, item := range raw {
		cmd, err := NewReader([]any{item}).MoveCommand(0, fmt.Sprintf("%s.list[%d]", name, j))
		if err != nil {
			return mr, fmt.Errorf("parameter %d: %w", i, err)
		}
		mr.List[j] = cmd
	}
	return mr, nil
}

// MoveCommand reads one movement route step.
func (r *Reader) MoveCommand(i int, name string) (core.MoveCommand, error) {
	var mc core.MoveCommand
	obj, err := r.object(i, name)
	if err != nil {
		return mc, err
	}
	f := fields{obj: obj, slot: i, name: name}
	if mc.Code, err = f.int("code"); err != nil {
		return mc, err
	}
	if v, ok := obj["indent"]; ok && v != nil {
		n, err := f.int("indent")
		if err != nil {
			return mc, err
		}
		mc.Indent = &n
	}
	switch p := obj["parameters"].(type) {
	case nil:
		mc.Parameters = []any{}
	case []any:
		mc.Parameters = p
	default:
		return mc, fmt.Errorf("%w: parameter %d (%s): field parameters: expected array, got %s", diag.ErrSchemaMismatch, i, name, typeName(p))
	}
	return mc, nil
}

func (r *Reader) list(i int, name string) ([]any, error) {
	v, err := r.Raw(i, name)
	if err != nil {
		return nil, err
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: parameter %d (%s): expected array, got %s", diag.ErrSchemaMismatch, i, name, typeName(v))
	}
	return list, nil
}

func (r *Reader) object(i int, name string) (map[string]any, error) {
	v, err := r.Raw(i, name)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: parameter %d (%s): expected object, got %s", diag.ErrSchemaMismatch, i, name, typeName(v))
	}
	return obj, nil
}

// fields reads named members of an object slot.
type fields struct {
	obj  map[string]any
	slot int
	name string
}

func (f fields) get(key string) (any, error) {
	v, ok := f.obj[key]
	if !ok {
		return nil, fmt.Errorf("%w: parameter %d (%s): field %s missing", diag.ErrSchemaMismatch, f.slot, f.name, key)
	}
	return v, nil
}

func (f fields) int(key string) (int, error) {
	v, err := f.get(key)
	if err != nil {
		return 0, err
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %d (%s): field %s: %w", f.slot, f.name, key, err)
	}
	return int(n), nil
}

func (f fields) string(key string) (string, error) {
	v, err := f.get(key)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %d (%s): field %s: expected string, got %s", diag.ErrSchemaMismatch, f.slot, f.name, key, typeName(v))
	}
	return s, nil
}

func (f fields) bool(key string) (bool, error) {
	v, err := f.get(key)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: parameter %d (%s): field %s: expected boolean, got %s", diag.ErrSchemaMismatch, f.slot, f.name, key, typeName(v))
	}
	return b, nil
}

// toInt64 accepts json.Number as produced by core.DecodeCommands plus the
// native integer types and integral float64 values.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("%w: %q is not an integer", diag.ErrSchemaMismatch, n.String())
		}
		return int64(f), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("%w: %s is not an integer", diag.ErrSchemaMismatch, strconv.FormatFloat(n, 'g', -1, 64))
		}
		return int64(n), nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case uint32:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: expected integer, got %s", diag.ErrSchemaMismatch, typeName(v))
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64, int, int32, int64, uint32, uint8:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
