package translate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
)

// Category is a family of database ids that can be given readable names.
type Category string

const (
	Switches     Category = "switches"
	Variables    Category = "variables"
	CommonEvents Category = "commonEvents"
	Actors       Category = "actors"
	Skills       Category = "skills"
	Items        Category = "items"
	Weapons      Category = "weapons"
	Armors       Category = "armors"
	States       Category = "states"
	Troops       Category = "troops"
	Classes      Category = "classes"
	Maps         Category = "maps"
)

var fallbackPrefix = map[Category]string{
	Switches:     "game_switch_",
	Variables:    "game_variable_",
	CommonEvents: "common_event_",
	Actors:       "game_actor_",
	Skills:       "game_skill_",
	Items:        "game_item_",
	Weapons:      "game_weapon_",
	Armors:       "game_armor_",
	States:       "game_state_",
	Troops:       "game_troop_",
	Classes:      "game_class_",
	Maps:         "game_map_",
}

// Categories returns every category in a stable order.
func Categories() []Category {
	out := make([]Category, 0, len(fallbackPrefix))
	for c := range fallbackPrefix {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Names resolves ids to identifiers. Ids without a configured name fall
// back to a generated one such as game_switch_12. A nil *Names uses the
// fallbacks only.
type Names struct {
	tables map[Category]map[uint32]string
}

// NewNames builds Names from per-category tables keyed by decimal id.
func NewNames(tables map[Category]map[string]string) (*Names, error) {
	n := &Names{tables: make(map[Category]map[uint32]string, len(tables))}
	for cat, table := range tables {
		if _, ok := fallbackPrefix[cat]; !ok {
			return nil, fmt.Errorf("unknown name category: %s", cat)
		}
		parsed := make(map[uint32]string, len(table))
		for key, name := range table {
			id, err := strconv.ParseUint(key, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("error parsing %s id %q: %w", cat, key, err)
			}
			if !identifier.MatchString(name) {
				return nil, fmt.Errorf("%s id %d: %q is not an identifier", cat, id, name)
			}
			parsed[uint32(id)] = name
		}
		n.tables[cat] = parsed
	}
	return n, nil
}

// Name returns the identifier for id in cat.
func (n *Names) Name(cat Category, id uint32) string {
	if n != nil {
		if name, ok := n.tables[cat][id]; ok {
			return name
		}
	}
	return fallbackPrefix[cat] + strconv.FormatUint(uint64(id), 10)
}
