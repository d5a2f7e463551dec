package operand

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventpy/eventpy/internal/diag"
)

func num(s string) json.Number { return json.Number(s) }

func TestIntBool(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		want    bool
		wantErr error
	}{
		{name: "zero is false", input: num("0"), want: false},
		{name: "one is true", input: num("1"), want: true},
		{name: "native int", input: 1, want: true},
		{name: "integral float", input: float64(0), want: false},
		{name: "two rejected", input: num("2"), wantErr: diag.ErrData},
		{name: "negative rejected", input: num("-1"), wantErr: diag.ErrData},
		{name: "string rejected", input: "1", wantErr: diag.ErrSchemaMismatch},
		{name: "fraction rejected", input: num("0.5"), wantErr: diag.ErrSchemaMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewReader([]any{tt.input}).IntBool(0, "flag")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntBool_RoundTrip(t *testing.T) {
	for _, raw := range []json.Number{"0", "1"} {
		b, err := NewReader([]any{raw}).IntBool(0, "flag")
		require.NoError(t, err)
		assert.Equal(t, raw, EncodeIntBool(b))
	}
}

func TestMaybeRef_Decode(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		r := NewReader([]any{num("0"), num("-25")})
		m, err := ReadMaybeRef(r, 0, 1, "amount", r.Int32)
		require.NoError(t, err)
		assert.False(t, m.IsRef())
		v, ok := m.Value()
		assert.True(t, ok)
		assert.Equal(t, int32(-25), v)
		_, ok = m.Index()
		assert.False(t, ok)
	})

	t.Run("reference", func(t *testing.T) {
		r := NewReader([]any{num("1"), num("12")})
		m, err := ReadMaybeRef(r, 0, 1, "amount", r.Int32)
		require.NoError(t, err)
		assert.True(t, m.IsRef())
		idx, ok := m.Index()
		assert.True(t, ok)
		assert.Equal(t, uint32(12), idx)
	})

	t.Run("negative variable index", func(t *testing.T) {
		r := NewReader([]any{num("1"), num("-3")})
		_, err := ReadMaybeRef(r, 0, 1, "amount", r.Int32)
		assert.ErrorIs(t, err, diag.ErrData)
	})

	t.Run("bad flag", func(t *testing.T) {
		r := NewReader([]any{num("3"), num("1")})
		_, err := ReadMaybeRef(r, 0, 1, "amount", r.Int32)
		assert.ErrorIs(t, err, diag.ErrData)
	})

	t.Run("missing value slot", func(t *testing.T) {
		r := NewReader([]any{num("0")})
		_, err := ReadMaybeRef(r, 0, 1, "amount", r.Int32)
		assert.ErrorIs(t, err, diag.ErrSchemaMismatch)
	})
}

func TestMaybeRef_RoundTrip(t *testing.T) {
	cases := [][]any{
		{num("0"), num("0")},
		{num("0"), num("-2147483648")},
		{num("0"), num("9999")},
		{num("1"), num("1")},
		{num("1"), num("5000")},
	}

	for _, raw := range cases {
		r := NewReader(raw)
		m, err := ReadMaybeRef(r, 0, 1, "value", r.Int32)
		require.NoError(t, err)

		flag, slot := EncodeMaybeRef(m, EncodeInt[int32])
		assert.Equal(t, raw, []any{flag, slot})
	}
}

func TestReader_Lengths(t *testing.T) {
	r := NewReader([]any{num("1"), "x"})
	assert.NoError(t, r.ExpectLen(2))
	assert.ErrorIs(t, r.ExpectLen(3), diag.ErrSchemaMismatch)
	assert.NoError(t, r.ExpectLenBetween(1, 2))
	assert.ErrorIs(t, r.ExpectLenBetween(3, 5), diag.ErrSchemaMismatch)

	_, err := r.Int(5, "missing")
	assert.ErrorIs(t, err, diag.ErrSchemaMismatch)
	assert.Contains(t, err.Error(), "missing")
}

func TestReader_TypedSlots(t *testing.T) {
	toneSlot := []any{num("-68"), 0, float64(0), num("68")}
	r := NewReader([]any{
		num("7"),           // 0 id
		"Actor1",           // 1 name
		true,               // 2 flag
		[]any{"Yes", "No"}, // 3 choices
		toneSlot,           // 4 tone
		nil,                // 5 null
	})

	id, err := r.Uint32(0, "id")
	require.NoError(t, err)
	assert.Equal(t, uint32(7), id)

	s, err := r.String(1, "name")
	require.NoError(t, err)
	assert.Equal(t, "Actor1", s)

	b, err := r.Bool(2, "flag")
	require.NoError(t, err)
	assert.True(t, b)

	choices, err := r.Strings(3, "choices")
	require.NoError(t, err)
	assert.Equal(t, []string{"Yes", "No"}, choices)

	tone, err := r.Ints(4, "tone")
	require.NoError(t, err)
	assert.Equal(t, []int64{-68, 0, 0, 68}, tone)

	_, err = r.String(0, "name")
	assert.ErrorIs(t, err, diag.ErrSchemaMismatch)
	_, err = r.Bool(0, "flag")
	assert.ErrorIs(t, err, diag.ErrSchemaMismatch)

	_, err = NewReader([]any{num("-1")}).Uint32(0, "id")
	assert.ErrorIs(t, err, diag.ErrData)

	_, err = NewReader([]any{num("300")}).Uint8(0, "opacity")
	assert.ErrorIs(t, err, diag.ErrData)

	_, err = NewReader([]any{num("4")}).Enum(0, "op", 4)
	assert.ErrorIs(t, err, diag.ErrData)
}

func TestReader_Audio(t *testing.T) {
	r := NewReader([]any{map[string]any{
		"name": "Battle1", "volume": num("90"), "pitch": num("100"), "pan": num("0"),
	}})
	a, err := r.Audio(0, "bgm")
	require.NoError(t, err)
	assert.Equal(t, "Battle1", a.Name)
	assert.Equal(t, 90, a.Volume)
	assert.Equal(t, 100, a.Pitch)
	assert.Equal(t, 0, a.Pan)

	_, err = NewReader([]any{map[string]any{"name": "x"}}).Audio(0, "bgm")
	assert.ErrorIs(t, err, diag.ErrSchemaMismatch)
}

func TestReader_MoveRoute(t *testing.T) {
	route := map[string]any{
		"list": []any{
			map[string]any{"code": num("1"), "indent": nil},
			map[string]any{"code": num("45"), "indent": nil, "parameters": []any{"this.jump(0, 0);"}},
			map[string]any{"code": num("0")},
		},
		"repeat":    false,
		"skippable": true,
		"wait":      true,
	}
	mr, err := NewReader([]any{route}).MoveRoute(0, "route")
	require.NoError(t, err)
	require.Len(t, mr.List, 3)
	assert.Equal(t, 45, mr.List[1].Code)
	assert.Equal(t, []any{"this.jump(0, 0);"}, mr.List[1].Parameters)
	assert.Nil(t, mr.List[0].Indent)
	assert.Equal(t, []any{}, mr.List[2].Parameters)
	assert.True(t, mr.Skippable)
	assert.True(t, mr.Wait)
	assert.False(t, mr.Repeat)

	delete(route, "wait")
	_, err = NewReader([]any{route}).MoveRoute(0, "route")
	assert.ErrorIs(t, err, diag.ErrSchemaMismatch)
}
