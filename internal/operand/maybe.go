package operand

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/eventpy/eventpy/internal/diag"
)

// DecodeIntBool maps the wire flag to a boolean. Only 0 and 1 are valid.
func DecodeIntBool(n int64) (bool, error) {
	switch n {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("%w: flag must be 0 or 1, got %d", diag.ErrData, n)
	}
}

// EncodeIntBool is the inverse of DecodeIntBool.
func EncodeIntBool(b bool) any {
	if b {
		return json.Number("1")
	}
	return json.Number("0")
}

// EncodeInt renders an integer the way core.DecodeCommands reads it.
func EncodeInt[N ~int | ~int32 | ~int64 | ~uint8 | ~uint32](n N) any {
	return json.Number(strconv.FormatInt(int64(n), 10))
}

// MaybeRef is either a literal value or the index of a game variable that
// holds the value at runtime.
type MaybeRef[T any] struct {
	ref   bool
	index uint32
	value T
}

// Literal returns a MaybeRef holding v.
func Literal[T any](v T) MaybeRef[T] {
	return MaybeRef[T]{value: v}
}

// Ref returns a MaybeRef pointing at variable index.
func Ref[T any](index uint32) MaybeRef[T] {
	return MaybeRef[T]{ref: true, index: index}
}

// IsRef reports whether m names a variable.
func (m MaybeRef[T]) IsRef() bool {
	return m.ref
}

// Value returns the literal. ok is false for references.
func (m MaybeRef[T]) Value() (v T, ok bool) {
	return m.value, !m.ref
}

// Index returns the variable index. ok is false for literals.
func (m MaybeRef[T]) Index() (index uint32, ok bool) {
	return m.index, m.ref
}

func (m MaybeRef[T]) String() string {
	if m.ref {
		return fmt.Sprintf("variable[%d]", m.index)
	}
	return fmt.Sprint(m.value)
}

// ReadMaybeRef decodes a flag slot followed by its value slot. The flag is
// read first: 0 means the value slot is a literal read with read, 1 means it
// is a variable index.
func ReadMaybeRef[T any](r *Reader, flag, slot int, name string, read func(int, string) (T, error)) (MaybeRef[T], error) {
	isRef, err := r.IntBool(flag, name+" is variable")
	if err != nil {
		return MaybeRef[T]{}, err
	}
	return ReadMaybeRefWith(r, isRef, slot, name, read)
}

// ReadMaybeRefWith decodes slot with a flag that was read already. Some
// commands use one flag for several value slots.
func ReadMaybeRefWith[T any](r *Reader, isRef bool, slot int, name string, read func(int, string) (T, error)) (MaybeRef[T], error) {
	if isRef {
		idx, err := r.Uint32(slot, name+" variable")
		if err != nil {
			return MaybeRef[T]{}, err
		}
		return Ref[T](idx), nil
	}
	v, err := read(slot, name)
	if err != nil {
		return MaybeRef[T]{}, err
	}
	return Literal(v), nil
}

// EncodeMaybeRef returns the flag and value slots for m, using encode for
// literals.
func EncodeMaybeRef[T any](m MaybeRef[T], encode func(T) any) (flag, slot any) {
	if m.ref {
		return EncodeIntBool(true), EncodeInt(m.index)
	}
	return EncodeIntBool(false), encode(m.value)
}
