// Package project reads the event command lists out of an RPG Maker data
// directory: map files, CommonEvents.json and Troops.json.
package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eventpy/eventpy/pkg/core"
)

// Kind is the kind of data file.
type Kind int

const (
	KindMap Kind = iota
	KindCommonEvents
	KindTroops
)

func (k Kind) String() string {
	switch k {
	case KindMap:
		return "map"
	case KindCommonEvents:
		return "common events"
	case KindTroops:
		return "troops"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// HasPages reports whether events of this kind are split into pages.
func (k Kind) HasPages() bool {
	return k != KindCommonEvents
}

var (
	ErrUnknownFile = errors.New("unknown file type")
	ErrNoEvent     = errors.New("no such event")
	ErrNoPage      = errors.New("no such event page")
)

// DetectKind tells the file kind from its name: MapNNN.json,
// CommonEvents.json or Troops.json.
func DetectKind(path string) (Kind, error) {
	name := filepath.Base(path)
	stem, ok := strings.CutSuffix(name, ".json")
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a json file", ErrUnknownFile, name)
	}
	switch stem {
	case "CommonEvents":
		return KindCommonEvents, nil
	case "Troops":
		return KindTroops, nil
	case "MapInfos":
		return 0, fmt.Errorf("%w: %s holds no events", ErrUnknownFile, name)
	}
	if n, ok := strings.CutPrefix(stem, "Map"); ok && n != "" && isAlnum(n) {
		return KindMap, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFile, name)
}

func isAlnum(s string) bool {
	for _, c := range s {
		if !(c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return false
		}
	}
	return true
}

type page struct {
	List []core.RawCommand `json:"list"`
}

type pagedEvent struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Pages []page `json:"pages"`
}

type mapFile struct {
	Events []*pagedEvent `json:"events"`
}

type commonEvent struct {
	ID   int               `json:"id"`
	Name string            `json:"name"`
	List []core.RawCommand `json:"list"`
}

// LoadFile reads every event page of the file at path.
func LoadFile(path string) (Kind, []core.Event, error) {
	kind, err := DetectKind(path)
	if err != nil {
		return 0, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	events, err := Decode(kind, filepath.Base(path), data)
	if err != nil {
		return 0, nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return kind, events, nil
}

// Decode parses a data file of the given kind. Events are returned in id
// order with map and troop pages flattened; numbers stay json.Number.
func Decode(kind Kind, source string, data []byte) ([]core.Event, error) {
	switch kind {
	case KindMap:
		var m mapFile
		if err := decode(data, &m); err != nil {
			return nil, err
		}
		return flatten(source, m.Events)
	case KindTroops:
		var troops []*pagedEvent
		if err := decode(data, &troops); err != nil {
			return nil, err
		}
		return flatten(source, troops)
	case KindCommonEvents:
		var list []*commonEvent
		if err := decode(data, &list); err != nil {
			return nil, err
		}
		var out []core.Event
		for i, ce := range list {
			if ce == nil {
				continue
			}
			if ce.ID != i {
				return nil, fmt.Errorf("common event at index %d has id %d", i, ce.ID)
			}
			out = append(out, core.Event{
				ID:       ce.ID,
				Name:     ce.Name,
				Source:   source,
				Commands: normalize(ce.List),
			})
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, kind)
	}
}

func decode(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

func flatten(source string, events []*pagedEvent) ([]core.Event, error) {
	var out []core.Event
	for i, ev := range events {
		if ev == nil {
			continue
		}
		if ev.ID != i {
			return nil, fmt.Errorf("event at index %d has id %d", i, ev.ID)
		}
		for p, pg := range ev.Pages {
			out = append(out, core.Event{
				ID:       ev.ID,
				Page:     p,
				Name:     ev.Name,
				Source:   source,
				Commands: normalize(pg.List),
			})
		}
	}
	return out, nil
}

func normalize(rows []core.RawCommand) []core.RawCommand {
	for i := range rows {
		if rows[i].Parameters == nil {
			rows[i].Parameters = []any{}
		}
	}
	return rows
}

// Select picks the pages of one event. A nil page selects the only page,
// and fails when the event has several. Common events take no page.
func Select(kind Kind, events []core.Event, id int, page *int) ([]core.Event, error) {
	var pages []core.Event
	for _, ev := range events {
		if ev.ID == id {
			pages = append(pages, ev)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNoEvent, id)
	}

	if !kind.HasPages() {
		if page != nil {
			return nil, fmt.Errorf("%s do not have pages, remove the page option", kind)
		}
		return pages, nil
	}
	if page == nil {
		if len(pages) > 1 {
			return nil, fmt.Errorf("event %d has %d pages, specify which one to convert", id, len(pages))
		}
		return pages, nil
	}
	for _, ev := range pages {
		if ev.Page == *page {
			return []core.Event{ev}, nil
		}
	}
	return nil, fmt.Errorf("%w: event %d page %d", ErrNoPage, id, *page)
}
