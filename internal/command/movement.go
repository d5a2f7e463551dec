package command

import (
	"fmt"
	"reflect"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/pkg/core"
)

// TransferPlayer moves the player to another map.
type TransferPlayer struct {
	MapID     operand.MaybeRef[uint32]
	X         operand.MaybeRef[uint32]
	Y         operand.MaybeRef[uint32]
	Direction uint8
	FadeType  uint8
}

// ParseTransferPlayer parses Transfer Player. One designation flag covers
// map, x and y.
func ParseTransferPlayer(params []any) (TransferPlayer, error) {
	var c TransferPlayer
	r := operand.NewReader(params)
	if err := r.ExpectLen(6); err != nil {
		return c, err
	}

	byVariable, err := r.IntBool(0, "designation")
	if err != nil {
		return c, err
	}
	if c.MapID, err = operand.ReadMaybeRefWith(r, byVariable, 1, "map id", r.Uint32); err != nil {
		return c, err
	}
	if c.X, err = operand.ReadMaybeRefWith(r, byVariable, 2, "x", r.Uint32); err != nil {
		return c, err
	}
	if c.Y, err = operand.ReadMaybeRefWith(r, byVariable, 3, "y", r.Uint32); err != nil {
		return c, err
	}
	if c.Direction, err = r.Uint8(4, "direction"); err != nil {
		return c, err
	}
	if err := checkDirection(c.Direction, true); err != nil {
		return c, err
	}
	fade, err := r.Enum(5, "fade type", 3)
	if err != nil {
		return c, err
	}
	c.FadeType = uint8(fade)
	return c, nil
}

// SetEventLocation places an event directly, from variables, or by
// swapping with another event.
type SetEventLocation struct {
	CharacterID  int32
	Exchange     bool
	ExchangeWith int32
	X            operand.MaybeRef[uint32]
	Y            operand.MaybeRef[uint32]
	Direction    uint8
}

// ParseSetEventLocation parses Set Event Location.
func ParseSetEventLocation(params []any) (SetEventLocation, error) {
	var c SetEventLocation
	r := operand.NewReader(params)
	if err := r.ExpectLen(5); err != nil {
		return c, err
	}

	var err error
	if c.CharacterID, err = r.Int32(0, "character id"); err != nil {
		return c, err
	}
	designation, err := r.Enum(1, "designation", 3)
	if err != nil {
		return c, err
	}
	if designation == 2 {
		c.Exchange = true
		if c.ExchangeWith, err = r.Int32(2, "exchange with"); err != nil {
			return c, err
		}
	} else {
		byVariable := designation == 1
		if c.X, err = operand.ReadMaybeRefWith(r, byVariable, 2, "x", r.Uint32); err != nil {
			return c, err
		}
		if c.Y, err = operand.ReadMaybeRefWith(r, byVariable, 3, "y", r.Uint32); err != nil {
			return c, err
		}
	}
	if c.Direction, err = r.Uint8(4, "direction"); err != nil {
		return c, err
	}
	if err := checkDirection(c.Direction, true); err != nil {
		return c, err
	}
	return c, nil
}

// SetMovementRoute assigns a route to a character.
type SetMovementRoute struct {
	CharacterID int32
	Route       core.MoveRoute
}

// ParseSetMovementRoute parses Set Movement Route. The editor repeats each
// route step in a continuation row; those rows must match the route.
func ParseSetMovementRoute(params []any, extra []core.RawCommand) (SetMovementRoute, error) {
	var c SetMovementRoute
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.CharacterID, err = r.Int32(0, "character id"); err != nil {
		return c, err
	}
	if c.Route, err = r.MoveRoute(1, "route"); err != nil {
		return c, err
	}

	if len(extra) > len(c.Route.List) {
		return c, fmt.Errorf("%w: %d route rows for a %d step route", diag.ErrData, len(extra), len(c.Route.List))
	}
	for i, row := range extra {
		er := operand.NewReader(row.Parameters)
		if err := er.ExpectLen(1); err != nil {
			return c, fmt.Errorf("route row %d: %w", i, err)
		}
		step, err := er.MoveCommand(0, "step")
		if err != nil {
			return c, fmt.Errorf("route row %d: %w", i, err)
		}
		want := c.Route.List[i]
		if step.Code != want.Code || !reflect.DeepEqual(step.Parameters, want.Parameters) {
			return c, fmt.Errorf("%w: route row %d (code %d) does not match route step (code %d)", diag.ErrData, i, step.Code, want.Code)
		}
	}
	return c, nil
}

// ParseChangeTransparency returns true when the player becomes transparent.
func ParseChangeTransparency(params []any) (bool, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return false, err
	}
	off, err := r.IntBool(0, "transparency off")
	return !off, err
}

// ParseChangePlayerFollowers returns true when followers are shown.
func ParseChangePlayerFollowers(params []any) (bool, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return false, err
	}
	off, err := r.IntBool(0, "followers off")
	return !off, err
}

// CharacterEffect is Show Animation or Show Balloon Icon.
type CharacterEffect struct {
	CharacterID int32
	EffectID    uint32
	Wait        bool
}

// ParseCharacterEffect parses Show Animation and Show Balloon Icon.
func ParseCharacterEffect(params []any) (CharacterEffect, error) {
	var c CharacterEffect
	r := operand.NewReader(params)
	if err := r.ExpectLen(3); err != nil {
		return c, err
	}

	var err error
	if c.CharacterID, err = r.Int32(0, "character id"); err != nil {
		return c, err
	}
	if c.EffectID, err = r.Uint32(1, "effect id"); err != nil {
		return c, err
	}
	if c.Wait, err = r.Bool(2, "wait"); err != nil {
		return c, err
	}
	return c, nil
}

// LocationInfo selects what Get Location Info reads.
type LocationInfo int

const (
	LocationTerrainTag LocationInfo = iota
	LocationEventID
	LocationTileLayer1
	LocationTileLayer2
	LocationTileLayer3
	LocationTileLayer4
	LocationRegionID
	locationInfoCount
)

// GetLocationInfo stores information about a map cell in a variable.
type GetLocationInfo struct {
	VariableID  uint32
	Info        LocationInfo
	ByCharacter bool
	CharacterID int32
	X           operand.MaybeRef[uint32]
	Y           operand.MaybeRef[uint32]
}

// ParseGetLocationInfo parses Get Location Info.
func ParseGetLocationInfo(params []any) (GetLocationInfo, error) {
	var c GetLocationInfo
	r := operand.NewReader(params)
	if err := r.ExpectLen(5); err != nil {
		return c, err
	}

	var err error
	if c.VariableID, err = r.Uint32(0, "variable id"); err != nil {
		return c, err
	}
	info, err := r.Enum(1, "info type", int(locationInfoCount))
	if err != nil {
		return c, err
	}
	c.Info = LocationInfo(info)

	designation, err := r.Enum(2, "designation", 3)
	if err != nil {
		return c, err
	}
	if designation == 2 {
		c.ByCharacter = true
		if c.CharacterID, err = r.Int32(3, "character id"); err != nil {
			return c, err
		}
		return c, nil
	}
	byVariable := designation == 1
	if c.X, err = operand.ReadMaybeRefWith(r, byVariable, 3, "x", r.Uint32); err != nil {
		return c, err
	}
	if c.Y, err = operand.ReadMaybeRefWith(r, byVariable, 4, "y", r.Uint32); err != nil {
		return c, err
	}
	return c, nil
}
