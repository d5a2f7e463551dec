package project

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		path    string
		want    Kind
		wantErr bool
	}{
		{path: "data/Map001.json", want: KindMap},
		{path: "Map0A2.json", want: KindMap},
		{path: "CommonEvents.json", want: KindCommonEvents},
		{path: "/game/www/data/Troops.json", want: KindTroops},
		{path: "MapInfos.json", wantErr: true},
		{path: "Map.json", wantErr: true},
		{path: "Map_001.json", wantErr: true},
		{path: "Actors.json", wantErr: true},
		{path: "Map001.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectKind(tt.path)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFile))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadFile_Map(t *testing.T) {
	kind, events, err := LoadFile(filepath.Join("testdata", "Map001.json"))
	require.NoError(t, err)
	assert.Equal(t, KindMap, kind)
	require.Len(t, events, 3)

	assert.Equal(t, 1, events[0].ID)
	assert.Equal(t, 0, events[0].Page)
	assert.Equal(t, "Door", events[0].Name)
	assert.Equal(t, "Map001.json", events[0].Source)
	require.Len(t, events[0].Commands, 2)
	assert.Equal(t, 121, events[0].Commands[0].Code)

	second := events[1]
	assert.Equal(t, 1, second.Page)
	assert.Equal(t, json.Number("12345678901"), second.Commands[0].Parameters[4])
	assert.NotNil(t, second.Commands[1].Parameters)
	assert.Empty(t, second.Commands[1].Parameters)

	assert.Equal(t, 3, events[2].ID)
	assert.Equal(t, "Sign", events[2].Name)
}

func TestLoadFile_CommonEvents(t *testing.T) {
	kind, events, err := LoadFile(filepath.Join("testdata", "CommonEvents.json"))
	require.NoError(t, err)
	assert.Equal(t, KindCommonEvents, kind)
	require.Len(t, events, 2)
	assert.Equal(t, "Game Over", events[0].Name)
	assert.Equal(t, 0, events[0].Page)
	assert.Equal(t, 2, events[1].ID)
}

func TestLoadFile_Troops(t *testing.T) {
	kind, events, err := LoadFile(filepath.Join("testdata", "Troops.json"))
	require.NoError(t, err)
	assert.Equal(t, KindTroops, kind)
	require.Len(t, events, 1)
	assert.Equal(t, "Slime*2", events[0].Name)
}

func TestLoadFile_Missing(t *testing.T) {
	_, _, err := LoadFile(filepath.Join("testdata", "Map999.json"))
	require.Error(t, err)
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		data string
	}{
		{name: "malformed", kind: KindMap, data: `{"events": [`},
		{name: "id mismatch", kind: KindMap, data: `{"events": [null, {"id": 2, "pages": []}]}`},
		{name: "common id mismatch", kind: KindCommonEvents, data: `[null, {"id": 5, "list": []}]`},
		{name: "parameters not a list", kind: KindTroops, data: `[null, {"id": 1, "pages": [{"list": [{"code": 0, "indent": 0, "parameters": 3}]}]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.kind, "x.json", []byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func intPtr(i int) *int {
	return &i
}

func TestSelect(t *testing.T) {
	_, mapEvents, err := LoadFile(filepath.Join("testdata", "Map001.json"))
	require.NoError(t, err)
	_, common, err := LoadFile(filepath.Join("testdata", "CommonEvents.json"))
	require.NoError(t, err)

	tests := []struct {
		name     string
		kind     Kind
		id       int
		page     *int
		wantPage int
		wantErr  string
	}{
		{name: "page given", kind: KindMap, id: 1, page: intPtr(1), wantPage: 1},
		{name: "single page implied", kind: KindMap, id: 3, wantPage: 0},
		{name: "several pages need a choice", kind: KindMap, id: 1, wantErr: "specify which one"},
		{name: "missing page", kind: KindMap, id: 1, page: intPtr(4), wantErr: "no such event page"},
		{name: "missing event", kind: KindMap, id: 2, wantErr: "no such event"},
		{name: "common event", kind: KindCommonEvents, id: 1, wantPage: 0},
		{name: "common event with page", kind: KindCommonEvents, id: 1, page: intPtr(0), wantErr: "do not have pages"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := mapEvents
			if tt.kind == KindCommonEvents {
				events = common
			}
			got, err := Select(tt.kind, events, tt.id, tt.page)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, tt.id, got[0].ID)
			assert.Equal(t, tt.wantPage, got[0].Page)
		})
	}
}
