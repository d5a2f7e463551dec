package command

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/internal/registry"
)

// TroopIdKind selects where Battle Processing takes its troop from.
type TroopIdKind int

const (
	TroopConstant TroopIdKind = iota
	TroopVariable
	TroopRandomEncounter
)

// BattleProcessing starts a battle. Troop is unset for random encounters.
type BattleProcessing struct {
	Source    TroopIdKind
	Troop     operand.MaybeRef[uint32]
	CanEscape bool
	CanLose   bool
}

// ParseBattleProcessing parses Battle Processing. MV knows only constant and
// variable troops; where the variant has random encounters every kind from 2
// up selects one.
func ParseBattleProcessing(f registry.Features, params []any) (BattleProcessing, error) {
	var c BattleProcessing
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	kind, err := r.Int(0, "troop id kind")
	if err != nil {
		return c, err
	}
	switch {
	case kind == int64(TroopConstant) || kind == int64(TroopVariable):
		c.Source = TroopIdKind(kind)
	case kind >= int64(TroopRandomEncounter) && f.RandomEncounterTroop:
		c.Source = TroopRandomEncounter
	default:
		return c, fmt.Errorf("%w: parameter 0 (troop id kind): unknown value %d", diag.ErrData, kind)
	}

	switch c.Source {
	case TroopConstant, TroopVariable:
		if c.Troop, err = operand.ReadMaybeRefWith(r, c.Source == TroopVariable, 1, "troop id", r.Uint32); err != nil {
			return c, err
		}
	case TroopRandomEncounter:
		if _, err := r.Int(1, "troop id"); err != nil {
			return c, err
		}
	}
	if c.CanEscape, err = r.Bool(2, "can escape"); err != nil {
		return c, err
	}
	if c.CanLose, err = r.Bool(3, "can lose"); err != nil {
		return c, err
	}
	return c, nil
}

// ForceAction makes an enemy or actor use a skill.
type ForceAction struct {
	// IsActor is false for a troop member addressed by index.
	IsActor bool
	ID      uint32
	SkillID uint32
	// TargetIndex is -2 for the last target and -1 for a random one.
	TargetIndex int32
}

// ParseForceAction parses Force Action.
func ParseForceAction(params []any) (ForceAction, error) {
	var c ForceAction
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	var err error
	if c.IsActor, err = r.IntBool(0, "subject is actor"); err != nil {
		return c, err
	}
	if c.ID, err = r.Uint32(1, "subject"); err != nil {
		return c, err
	}
	if c.SkillID, err = r.Uint32(2, "skill id"); err != nil {
		return c, err
	}
	if c.TargetIndex, err = r.Int32(3, "target index"); err != nil {
		return c, err
	}
	return c, nil
}
