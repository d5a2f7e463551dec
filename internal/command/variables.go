package command

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
	"github.com/eventpy/eventpy/internal/registry"
)

// ControlSwitches sets a range of switches.
type ControlSwitches struct {
	Start uint32
	End   uint32
	On    bool
}

// ParseControlSwitches parses Control Switches.
func ParseControlSwitches(params []any) (ControlSwitches, error) {
	var c ControlSwitches
	r := operand.NewReader(params)
	if err := r.ExpectLen(3); err != nil {
		return c, err
	}

	var err error
	if c.Start, c.End, err = readRange(r); err != nil {
		return c, err
	}
	off, err := r.IntBool(2, "switch off")
	if err != nil {
		return c, err
	}
	c.On = !off
	return c, nil
}

// OperateVariable is the assignment operator of Control Variables.
type OperateVariable int

const (
	OperateSet OperateVariable = iota
	OperateAdd
	OperateSub
	OperateMul
	OperateDiv
	OperateMod
	operateVariableCount
)

var operateOperators = [...]string{"=", "+=", "-=", "*=", "/=", "%="}

// Operator returns the assignment operator text.
func (o OperateVariable) Operator() string {
	return operateOperators[o]
}

// VariableOperandKind is slot 3 of Control Variables.
type VariableOperandKind int

const (
	OperandConstant VariableOperandKind = iota
	OperandVariable
	OperandRandom
	OperandGameData
	OperandScript
	variableOperandKindCount
)

// VariableOperand is the right-hand side of Control Variables.
type VariableOperand interface {
	variableOperand()
}

// ConstantOperand is a literal value.
type ConstantOperand struct {
	Value int64
}

// VariableRefOperand copies another variable.
type VariableRefOperand struct {
	ID uint32
}

// RandomOperand picks a value in [Min, Max].
type RandomOperand struct {
	Min int32
	Max int32
}

// ScriptOperand evaluates a script expression.
type ScriptOperand struct {
	Script string
}

// GameDataKind selects the game data source.
type GameDataKind int

const (
	GameDataItem GameDataKind = iota
	GameDataWeapon
	GameDataArmor
	GameDataActor
	GameDataEnemy
	GameDataCharacter
	GameDataParty
	GameDataOther
	GameDataLast
	gameDataKindCount
)

// ActorData fields 4 through 11 are the eight basic parameters.
const (
	ActorLevel = iota
	ActorExp
	ActorHp
	ActorMp
	ActorParamBase
	actorDataCount = ActorParamBase + 8
)

// EnemyData fields 2 through 9 are the eight basic parameters.
const (
	EnemyHp = iota
	EnemyMp
	EnemyParamBase
	enemyDataCount = EnemyParamBase + 8
)

// CharacterData fields.
const (
	CharacterMapX = iota
	CharacterMapY
	CharacterDirection
	CharacterScreenX
	CharacterScreenY
	characterDataCount
)

// OtherData fields.
const (
	OtherMapID = iota
	OtherPartyMembers
	OtherGold
	OtherSteps
	OtherPlayTime
	OtherTimer
	OtherSaveCount
	OtherBattleCount
	OtherWinCount
	OtherEscapeCount
	otherDataCount
)

// LastData fields.
const (
	LastUsedSkill = iota
	LastUsedItem
	LastActingActor
	LastActingEnemy
	LastTargetActor
	LastTargetEnemy
	lastDataCount
)

// GameDataOperand reads a value out of the running game. The meaning of ID
// and Field depends on Kind: an item, actor or character id, a troop or
// party index, and the field selector where the kind has one.
type GameDataOperand struct {
	Kind  GameDataKind
	ID    int32
	Field int
}

func (ConstantOperand) variableOperand()    {}
func (VariableRefOperand) variableOperand() {}
func (RandomOperand) variableOperand()      {}
func (ScriptOperand) variableOperand()      {}
func (GameDataOperand) variableOperand()    {}

// ControlVariables assigns to a range of variables.
type ControlVariables struct {
	Start   uint32
	End     uint32
	Operate OperateVariable
	Operand VariableOperand
}

// ParseControlVariables parses Control Variables. The constant operand is a
// signed 32-bit value in both variants.
func ParseControlVariables(f registry.Features, params []any) (ControlVariables, error) {
	var c ControlVariables
	r := operand.NewReader(params)
	if r.Len() < 4 {
		return c, fmt.Errorf("%w: expected at least 4 parameters, got %d", diag.ErrSchemaMismatch, r.Len())
	}

	var err error
	if c.Start, c.End, err = readRange(r); err != nil {
		return c, err
	}
	op, err := r.Enum(2, "operation", int(operateVariableCount))
	if err != nil {
		return c, err
	}
	c.Operate = OperateVariable(op)

	kind, err := r.Enum(3, "operand kind", int(variableOperandKindCount))
	if err != nil {
		return c, err
	}

	switch VariableOperandKind(kind) {
	case OperandConstant:
		if err := r.ExpectLen(5); err != nil {
			return c, err
		}
		v, err := r.Int32(4, "constant")
		if err != nil {
			return c, err
		}
		c.Operand = ConstantOperand{Value: int64(v)}

	case OperandVariable:
		if err := r.ExpectLen(5); err != nil {
			return c, err
		}
		id, err := r.Uint32(4, "source variable")
		if err != nil {
			return c, err
		}
		c.Operand = VariableRefOperand{ID: id}

	case OperandRandom:
		if err := r.ExpectLen(6); err != nil {
			return c, err
		}
		lo, err := r.Int32(4, "random min")
		if err != nil {
			return c, err
		}
		hi, err := r.Int32(5, "random max")
		if err != nil {
			return c, err
		}
		if lo > hi {
			return c, fmt.Errorf("%w: random range %d..%d is empty", diag.ErrData, lo, hi)
		}
		c.Operand = RandomOperand{Min: lo, Max: hi}

	case OperandGameData:
		if err := r.ExpectLen(7); err != nil {
			return c, err
		}
		gd, err := parseGameData(f, r)
		if err != nil {
			return c, err
		}
		c.Operand = gd

	case OperandScript:
		if err := r.ExpectLen(5); err != nil {
			return c, err
		}
		script, err := r.String(4, "script")
		if err != nil {
			return c, err
		}
		c.Operand = ScriptOperand{Script: script}
	}

	return c, nil
}

func parseGameData(f registry.Features, r *operand.Reader) (GameDataOperand, error) {
	var gd GameDataOperand

	limit := int(GameDataLast)
	if f.LastActionOperand {
		limit = int(gameDataKindCount)
	}
	kind, err := r.Enum(4, "game data kind", limit)
	if err != nil {
		return gd, err
	}
	gd.Kind = GameDataKind(kind)

	field := func(limit int) error {
		n, err := r.Enum(6, "game data field", limit)
		gd.Field = n
		return err
	}

	switch gd.Kind {
	case GameDataItem, GameDataWeapon, GameDataArmor, GameDataActor, GameDataEnemy, GameDataParty:
		id, err := r.Uint32(5, "game data id")
		if err != nil {
			return gd, err
		}
		gd.ID = int32(id)
	case GameDataCharacter:
		if gd.ID, err = r.Int32(5, "character id"); err != nil {
			return gd, err
		}
	case GameDataOther, GameDataLast:
		// the selector lives in slot 5 for these kinds
		n := otherDataCount
		if gd.Kind == GameDataLast {
			n = lastDataCount
		}
		sel, err := r.Enum(5, "game data field", n)
		if err != nil {
			return gd, err
		}
		gd.Field = sel
		return gd, nil
	}

	switch gd.Kind {
	case GameDataActor:
		err = field(actorDataCount)
	case GameDataEnemy:
		err = field(enemyDataCount)
	case GameDataCharacter:
		err = field(characterDataCount)
	}
	if err != nil {
		return gd, err
	}
	return gd, nil
}

// MaxRangeLen bounds how many switches or variables one command may address.
const MaxRangeLen = 5000

func readRange(r *operand.Reader) (start, end uint32, err error) {
	if start, err = r.Uint32(0, "range start"); err != nil {
		return 0, 0, err
	}
	if end, err = r.Uint32(1, "range end"); err != nil {
		return 0, 0, err
	}
	if end < start {
		return 0, 0, fmt.Errorf("%w: range %d..%d is reversed", diag.ErrData, start, end)
	}
	if end-start >= MaxRangeLen {
		return 0, 0, fmt.Errorf("%w: range %d..%d spans more than %d ids", diag.ErrData, start, end, MaxRangeLen)
	}
	return start, end, nil
}

// ControlSelfSwitch sets a self switch of the running event.
type ControlSelfSwitch struct {
	Name string
	On   bool
}

// ParseControlSelfSwitch parses Control Self Switch.
func ParseControlSelfSwitch(params []any) (ControlSelfSwitch, error) {
	var c ControlSelfSwitch
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.Name, err = r.String(0, "self switch"); err != nil {
		return c, err
	}
	if err := checkSelfSwitchName(c.Name); err != nil {
		return c, err
	}
	off, err := r.IntBool(1, "self switch off")
	if err != nil {
		return c, err
	}
	c.On = !off
	return c, nil
}

// ControlTimer starts or stops the timer.
type ControlTimer struct {
	Stop    bool
	Seconds uint32
}

// ParseControlTimer parses Control Timer.
func ParseControlTimer(params []any) (ControlTimer, error) {
	var c ControlTimer
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.Stop, err = r.IntBool(0, "timer stop"); err != nil {
		return c, err
	}
	if !c.Stop {
		if c.Seconds, err = r.Uint32(1, "seconds"); err != nil {
			return c, err
		}
	}
	return c, nil
}
