package command

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/operand"
)

// BranchKind is the first slot of a Conditional Branch.
type BranchKind int

const (
	BranchSwitch BranchKind = iota
	BranchVariable
	BranchSelfSwitch
	BranchTimer
	BranchActor
	BranchEnemy
	BranchCharacter
	BranchGold
	BranchItem
	BranchWeapon
	BranchArmor
	BranchButton
	BranchScript
	branchKindCount
)

// Condition is one decoded branch condition. The concrete types below are
// the only implementations.
type Condition interface {
	condition()
}

// SwitchCondition tests a game switch.
type SwitchCondition struct {
	ID uint32
	On bool
}

// VariableCompare is the comparison of a variable condition.
type VariableCompare int

const (
	CompareEqual VariableCompare = iota
	CompareGreaterOrEqual
	CompareLessOrEqual
	CompareGreater
	CompareLess
	CompareNotEqual
	variableCompareCount
)

var compareOperators = [...]string{"==", ">=", "<=", ">", "<", "!="}

// Operator returns the comparison operator text.
func (c VariableCompare) Operator() string {
	return compareOperators[c]
}

// VariableCondition compares a variable with a literal or another variable.
type VariableCondition struct {
	ID      uint32
	Operand operand.MaybeRef[int32]
	Compare VariableCompare
}

// SelfSwitchCondition tests a self switch of the running event.
type SelfSwitchCondition struct {
	Name string
	On   bool
}

// TimerCondition compares the timer with a number of seconds.
type TimerCondition struct {
	Seconds uint32
	// AtMost selects "<=" instead of ">=".
	AtMost bool
}

// ActorCheck is the sub-kind of an actor condition.
type ActorCheck int

const (
	ActorInParty ActorCheck = iota
	ActorName
	ActorClass
	ActorSkill
	ActorWeapon
	ActorArmor
	ActorState
	actorCheckCount
)

// ActorCondition tests one property of an actor. Name is set for
// ActorName, ArgID for every check except ActorInParty.
type ActorCondition struct {
	ActorID uint32
	Check   ActorCheck
	Name    string
	ArgID   uint32
}

// EnemyCheck is the sub-kind of an enemy condition.
type EnemyCheck int

const (
	EnemyAppeared EnemyCheck = iota
	EnemyState
	enemyCheckCount
)

// EnemyCondition tests a troop member by index.
type EnemyCondition struct {
	Index   uint32
	Check   EnemyCheck
	StateID uint32
}

// CharacterCondition tests a character's facing direction. CharacterID -1
// is the player and 0 the running event.
type CharacterCondition struct {
	CharacterID int32
	Direction   uint8
}

// GoldCheck is the comparison of a gold condition.
type GoldCheck int

const (
	GoldAtLeast GoldCheck = iota
	GoldAtMost
	GoldLessThan
	goldCheckCount
)

var goldOperators = [...]string{">=", "<=", "<"}

// Operator returns the comparison operator text.
func (g GoldCheck) Operator() string {
	return goldOperators[g]
}

// GoldCondition compares party gold.
type GoldCondition struct {
	Amount uint32
	Check  GoldCheck
}

// ItemCondition tests whether the party holds an item.
type ItemCondition struct {
	ItemID uint32
}

// EquipCondition tests whether the party holds a weapon or armor.
type EquipCondition struct {
	Armor           bool
	ID              uint32
	IncludeEquipped bool
}

// ButtonCondition tests whether an input button is pressed.
type ButtonCondition struct {
	Button string
}

// ScriptCondition evaluates a script expression.
type ScriptCondition struct {
	Script string
}

func (SwitchCondition) condition()     {}
func (VariableCondition) condition()   {}
func (SelfSwitchCondition) condition() {}
func (TimerCondition) condition()      {}
func (ActorCondition) condition()      {}
func (EnemyCondition) condition()      {}
func (CharacterCondition) condition()  {}
func (GoldCondition) condition()       {}
func (ItemCondition) condition()       {}
func (EquipCondition) condition()      {}
func (ButtonCondition) condition()     {}
func (ScriptCondition) condition()     {}

// ConditionalBranch is the header of an if block.
type ConditionalBranch struct {
	Kind      BranchKind
	Condition Condition
}

// ParseConditionalBranch parses the header of a Conditional Branch.
func ParseConditionalBranch(params []any) (ConditionalBranch, error) {
	var c ConditionalBranch
	r := operand.NewReader(params)
	if r.Len() < 2 {
		return c, fmt.Errorf("%w: expected at least 2 parameters, got %d", diag.ErrSchemaMismatch, r.Len())
	}

	kind, err := r.Enum(0, "branch kind", int(branchKindCount))
	if err != nil {
		return c, err
	}
	c.Kind = BranchKind(kind)

	switch c.Kind {
	case BranchSwitch:
		c.Condition, err = parseSwitchCondition(r)
	case BranchVariable:
		c.Condition, err = parseVariableCondition(r)
	case BranchSelfSwitch:
		c.Condition, err = parseSelfSwitchCondition(r)
	case BranchTimer:
		c.Condition, err = parseTimerCondition(r)
	case BranchActor:
		c.Condition, err = parseActorCondition(r)
	case BranchEnemy:
		c.Condition, err = parseEnemyCondition(r)
	case BranchCharacter:
		c.Condition, err = parseCharacterCondition(r)
	case BranchGold:
		c.Condition, err = parseGoldCondition(r)
	case BranchItem:
		c.Condition, err = parseItemCondition(r)
	case BranchWeapon, BranchArmor:
		c.Condition, err = parseEquipCondition(r, c.Kind == BranchArmor)
	case BranchButton:
		c.Condition, err = parseButtonCondition(r)
	case BranchScript:
		c.Condition, err = parseScriptCondition(r)
	}
	if err != nil {
		return c, fmt.Errorf("error parsing branch kind %d: %w", kind, err)
	}
	return c, nil
}

func parseSwitchCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	id, err := r.Uint32(1, "switch id")
	if err != nil {
		return nil, err
	}
	off, err := r.IntBool(2, "switch off")
	if err != nil {
		return nil, err
	}
	return SwitchCondition{ID: id, On: !off}, nil
}

func parseVariableCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(5); err != nil {
		return nil, err
	}
	id, err := r.Uint32(1, "variable id")
	if err != nil {
		return nil, err
	}
	rhs, err := operand.ReadMaybeRef(r, 2, 3, "operand", r.Int32)
	if err != nil {
		return nil, err
	}
	op, err := r.Enum(4, "comparison", int(variableCompareCount))
	if err != nil {
		return nil, err
	}
	return VariableCondition{ID: id, Operand: rhs, Compare: VariableCompare(op)}, nil
}

func parseSelfSwitchCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	name, err := r.String(1, "self switch")
	if err != nil {
		return nil, err
	}
	if err := checkSelfSwitchName(name); err != nil {
		return nil, err
	}
	off, err := r.IntBool(2, "self switch off")
	if err != nil {
		return nil, err
	}
	return SelfSwitchCondition{Name: name, On: !off}, nil
}

func parseTimerCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	seconds, err := r.Uint32(1, "seconds")
	if err != nil {
		return nil, err
	}
	atMost, err := r.IntBool(2, "timer comparison")
	if err != nil {
		return nil, err
	}
	return TimerCondition{Seconds: seconds, AtMost: atMost}, nil
}

func parseActorCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLenBetween(3, 4); err != nil {
		return nil, err
	}
	var c ActorCondition
	var err error
	if c.ActorID, err = r.Uint32(1, "actor id"); err != nil {
		return nil, err
	}
	check, err := r.Enum(2, "actor check", int(actorCheckCount))
	if err != nil {
		return nil, err
	}
	c.Check = ActorCheck(check)

	switch c.Check {
	case ActorInParty:
		return c, nil
	case ActorName:
		if c.Name, err = r.String(3, "actor name"); err != nil {
			return nil, err
		}
	default:
		if c.ArgID, err = r.Uint32(3, "argument id"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parseEnemyCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLenBetween(3, 4); err != nil {
		return nil, err
	}
	var c EnemyCondition
	var err error
	if c.Index, err = r.Uint32(1, "enemy index"); err != nil {
		return nil, err
	}
	check, err := r.Enum(2, "enemy check", int(enemyCheckCount))
	if err != nil {
		return nil, err
	}
	c.Check = EnemyCheck(check)
	if c.Check == EnemyState {
		if c.StateID, err = r.Uint32(3, "state id"); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func parseCharacterCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	id, err := r.Int32(1, "character id")
	if err != nil {
		return nil, err
	}
	dir, err := r.Uint8(2, "direction")
	if err != nil {
		return nil, err
	}
	if err := checkDirection(dir, false); err != nil {
		return nil, err
	}
	return CharacterCondition{CharacterID: id, Direction: dir}, nil
}

func parseGoldCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	amount, err := r.Uint32(1, "gold")
	if err != nil {
		return nil, err
	}
	check, err := r.Enum(2, "gold check", int(goldCheckCount))
	if err != nil {
		return nil, err
	}
	return GoldCondition{Amount: amount, Check: GoldCheck(check)}, nil
}

func parseItemCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(2); err != nil {
		return nil, err
	}
	id, err := r.Uint32(1, "item id")
	if err != nil {
		return nil, err
	}
	return ItemCondition{ItemID: id}, nil
}

func parseEquipCondition(r *operand.Reader, armor bool) (Condition, error) {
	if err := r.ExpectLen(3); err != nil {
		return nil, err
	}
	id, err := r.Uint32(1, "equipment id")
	if err != nil {
		return nil, err
	}
	include, err := r.Bool(2, "include equipped")
	if err != nil {
		return nil, err
	}
	return EquipCondition{Armor: armor, ID: id, IncludeEquipped: include}, nil
}

func parseButtonCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(2); err != nil {
		return nil, err
	}
	button, err := r.String(1, "button")
	if err != nil {
		return nil, err
	}
	return ButtonCondition{Button: button}, nil
}

func parseScriptCondition(r *operand.Reader) (Condition, error) {
	if err := r.ExpectLen(2); err != nil {
		return nil, err
	}
	script, err := r.String(1, "script")
	if err != nil {
		return nil, err
	}
	return ScriptCondition{Script: script}, nil
}

func checkSelfSwitchName(name string) error {
	switch name {
	case "A", "B", "C", "D":
		return nil
	default:
		return fmt.Errorf("%w: unknown self switch %q", diag.ErrData, name)
	}
}

// checkDirection accepts the four facing directions, and 0 ("retain")
// when allowRetain is set.
func checkDirection(dir uint8, allowRetain bool) error {
	switch dir {
	case 2, 4, 6, 8:
		return nil
	case 0:
		if allowRetain {
			return nil
		}
	}
	return fmt.Errorf("%w: invalid direction %d", diag.ErrData, dir)
}
