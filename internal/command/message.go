// Package command decodes the parameter slots of each command kind into
// typed structs.
//
// Parse functions validate arity first, then read slots in schema order.
// They never look at neighbouring rows except the continuation rows that
// the reconstructor already folded into the command.
package command

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/pkg/core"
)

// ShowText is a message window with its text lines.
type ShowText struct {
	FaceName    string
	FaceIndex   uint32
	Background  uint8
	Position    uint8
	SpeakerName string
	HasSpeaker  bool
	Lines       []string
}

// ParseShowText parses Show Text and its text rows.
func ParseShowText(f registry.Features, params []any, extra []core.RawCommand) (ShowText, error) {
	var c ShowText
	r := operand.NewReader(params)

	want := 4
	if f.SpeakerName {
		want = 5
	}
	if err := r.ExpectLen(want); err != nil {
		return c, err
	}

	var err error
	if c.FaceName, err = r.String(0, "face name"); err != nil {
		return c, err
	}
	if c.FaceIndex, err = r.Uint32(1, "face index"); err != nil {
		return c, err
	}
	if c.Background, err = r.Uint8(2, "background"); err != nil {
		return c, err
	}
	if c.Position, err = r.Uint8(3, "position type"); err != nil {
		return c, err
	}
	if f.SpeakerName {
		if c.SpeakerName, err = r.String(4, "speaker name"); err != nil {
			return c, err
		}
		c.HasSpeaker = true
	}
	if c.Lines, err = textLines(extra); err != nil {
		return c, err
	}
	return c, nil
}

// ShowChoices opens a choice menu.
type ShowChoices struct {
	Choices []string
	// CancelType is -2 for a dedicated cancel branch, -1 when cancel is
	// disallowed, otherwise the index of the choice cancel maps to.
	CancelType int64
	// DefaultType is -1 for no default choice.
	DefaultType int64
	Position    uint8
	Background  uint8
}

// ParseShowChoices parses Show Choices. Older MV data omits the trailing
// position and background slots.
func ParseShowChoices(params []any) (ShowChoices, error) {
	c := ShowChoices{Position: 2}
	r := operand.NewReader(params)
	if err := r.ExpectLenBetween(2, 5); err != nil {
		return c, err
	}

	var err error
	if c.Choices, err = r.Strings(0, "choices"); err != nil {
		return c, err
	}
	if c.CancelType, err = r.Int(1, "cancel type"); err != nil {
		return c, err
	}
	if r.Len() > 2 {
		if c.DefaultType, err = r.Int(2, "default type"); err != nil {
			return c, err
		}
	}
	if r.Len() > 3 {
		if c.Position, err = r.Uint8(3, "position type"); err != nil {
			return c, err
		}
	}
	if r.Len() > 4 {
		if c.Background, err = r.Uint8(4, "background"); err != nil {
			return c, err
		}
	}
	return c, nil
}

// WhenChoice is the branch taken for one choice.
type WhenChoice struct {
	Index uint32
	Name  string
}

// ParseWhenChoice parses a When branch marker.
func ParseWhenChoice(params []any) (WhenChoice, error) {
	var c WhenChoice
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.Index, err = r.Uint32(0, "choice index"); err != nil {
		return c, err
	}
	if c.Name, err = r.String(1, "choice name"); err != nil {
		return c, err
	}
	return c, nil
}

// ScrollingText is Show Scrolling Text with its lines.
type ScrollingText struct {
	Speed  uint32
	NoFast bool
	Lines  []string
}

// ParseScrollingText parses Show Scrolling Text and its text rows.
func ParseScrollingText(params []any, extra []core.RawCommand) (ScrollingText, error) {
	var c ScrollingText
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.Speed, err = r.Uint32(0, "speed"); err != nil {
		return c, err
	}
	if c.NoFast, err = r.Bool(1, "no fast forward"); err != nil {
		return c, err
	}
	if c.Lines, err = textLines(extra); err != nil {
		return c, err
	}
	return c, nil
}

// ParseComment returns the comment lines, first row included.
func ParseComment(params []any, extra []core.RawCommand) ([]string, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return nil, err
	}
	first, err := r.String(0, "text")
	if err != nil {
		return nil, err
	}
	rest, err := textLines(extra)
	if err != nil {
		return nil, err
	}
	return append([]string{first}, rest...), nil
}

// textLines reads the single string slot of every continuation row.
func textLines(extra []core.RawCommand) ([]string, error) {
	lines := make([]string, 0, len(extra))
	for i, row := range extra {
		r := operand.NewReader(row.Parameters)
		if err := r.ExpectLen(1); err != nil {
			return nil, fmt.Errorf("continuation row %d: %w", i, err)
		}
		s, err := r.String(0, "text")
		if err != nil {
			return nil, fmt.Errorf("continuation row %d: %w", i, err)
		}
		lines = append(lines, s)
	}
	return lines, nil
}
