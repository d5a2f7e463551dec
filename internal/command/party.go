package command

import (
	"github.com/eventpy/eventpy/internal/operand"
)

// ChangeGold adds or removes gold.
type ChangeGold struct {
	Decrease bool
	Amount   operand.MaybeRef[uint32]
}

// ParseChangeGold parses Change Gold.
func ParseChangeGold(params []any) (ChangeGold, error) {
	var c ChangeGold
	r := operand.NewReader(params)
	if err := r.ExpectLen(3); err != nil {
		return c, err
	}

	var err error
	if c.Decrease, err = r.IntBool(0, "decrease"); err != nil {
		return c, err
	}
	if c.Amount, err = operand.ReadMaybeRef(r, 1, 2, "amount", r.Uint32); err != nil {
		return c, err
	}
	return c, nil
}

// ChangeItems adds or removes an item.
type ChangeItems struct {
	ItemID   uint32
	Decrease bool
	Amount   operand.MaybeRef[uint32]
}

// ParseChangeItems parses Change Items.
func ParseChangeItems(params []any) (ChangeItems, error) {
	var c ChangeItems
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	var err error
	if c.ItemID, err = r.Uint32(0, "item id"); err != nil {
		return c, err
	}
	if c.Decrease, err = r.IntBool(1, "decrease"); err != nil {
		return c, err
	}
	if c.Amount, err = operand.ReadMaybeRef(r, 2, 3, "amount", r.Uint32); err != nil {
		return c, err
	}
	return c, nil
}

// ChangeEquipment adds or removes a weapon or armor.
type ChangeEquipment struct {
	ID              uint32
	Decrease        bool
	Amount          operand.MaybeRef[uint32]
	IncludeEquipped bool
}

// ParseChangeEquipment parses Change Weapons and Change Armors, which share
// one layout.
func ParseChangeEquipment(params []any) (ChangeEquipment, error) {
	var c ChangeEquipment
	r := operand.NewReader(params)
	if err := r.ExpectLen(5); err != nil {
		return c, err
	}

	var err error
	if c.ID, err = r.Uint32(0, "equipment id"); err != nil {
		return c, err
	}
	if c.Decrease, err = r.IntBool(1, "decrease"); err != nil {
		return c, err
	}
	if c.Amount, err = operand.ReadMaybeRef(r, 2, 3, "amount", r.Uint32); err != nil {
		return c, err
	}
	if c.IncludeEquipped, err = r.Bool(4, "include equipped"); err != nil {
		return c, err
	}
	return c, nil
}

// ChangePartyMember adds or removes an actor.
type ChangePartyMember struct {
	ActorID    uint32
	Remove     bool
	Initialize bool
}

// ParseChangePartyMember parses Change Party Member.
func ParseChangePartyMember(params []any) (ChangePartyMember, error) {
	var c ChangePartyMember
	r := operand.NewReader(params)
	if err := r.ExpectLen(3); err != nil {
		return c, err
	}

	var err error
	if c.ActorID, err = r.Uint32(0, "actor id"); err != nil {
		return c, err
	}
	if c.Remove, err = r.IntBool(1, "remove"); err != nil {
		return c, err
	}
	if c.Initialize, err = r.Bool(2, "initialize"); err != nil {
		return c, err
	}
	return c, nil
}

// ParseChangeSaveAccess returns true when saving gets enabled.
func ParseChangeSaveAccess(params []any) (bool, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(1); err != nil {
		return false, err
	}
	return r.IntBool(0, "enable")
}

// ActorTarget is the actor slot pair used by most actor commands. A literal
// ID of 0 addresses the whole party.
type ActorTarget = operand.MaybeRef[uint32]

func readActorTarget(r *operand.Reader) (ActorTarget, error) {
	return operand.ReadMaybeRef(r, 0, 1, "actor", r.Uint32)
}

// ChangeStat is Change HP, Change MP or Change Level.
type ChangeStat struct {
	Actor    ActorTarget
	Decrease bool
	Amount   operand.MaybeRef[uint32]
	// Flag is "allow knockout" for HP and "show level up" for Level.
	Flag bool
}

// ParseChangeHp parses Change HP.
func ParseChangeHp(params []any) (ChangeStat, error) {
	return parseChangeStat(params, 6)
}

// ParseChangeMp parses Change MP.
func ParseChangeMp(params []any) (ChangeStat, error) {
	return parseChangeStat(params, 5)
}

// ParseChangeLevel parses Change Level. The trailing show-level-up flag is
// missing in some MV data.
func ParseChangeLevel(params []any) (ChangeStat, error) {
	if len(params) == 5 {
		return parseChangeStat(params, 5)
	}
	return parseChangeStat(params, 6)
}

func parseChangeStat(params []any, n int) (ChangeStat, error) {
	var c ChangeStat
	r := operand.NewReader(params)
	if err := r.ExpectLen(n); err != nil {
		return c, err
	}

	var err error
	if c.Actor, err = readActorTarget(r); err != nil {
		return c, err
	}
	if c.Decrease, err = r.IntBool(2, "decrease"); err != nil {
		return c, err
	}
	if c.Amount, err = operand.ReadMaybeRef(r, 3, 4, "amount", r.Uint32); err != nil {
		return c, err
	}
	if n == 6 {
		if c.Flag, err = r.Bool(5, "flag"); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ActorToggle is Change State or Change Skill: add/learn or remove/forget.
type ActorToggle struct {
	Actor  ActorTarget
	Remove bool
	ID     uint32
}

// ParseActorToggle parses Change State and Change Skill.
func ParseActorToggle(params []any) (ActorToggle, error) {
	var c ActorToggle
	r := operand.NewReader(params)
	if err := r.ExpectLen(4); err != nil {
		return c, err
	}

	var err error
	if c.Actor, err = readActorTarget(r); err != nil {
		return c, err
	}
	if c.Remove, err = r.IntBool(2, "remove"); err != nil {
		return c, err
	}
	if c.ID, err = r.Uint32(3, "id"); err != nil {
		return c, err
	}
	return c, nil
}

// ParseRecoverAll parses Recover All.
func ParseRecoverAll(params []any) (ActorTarget, error) {
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return ActorTarget{}, err
	}
	return readActorTarget(r)
}

// ChangeClass switches an actor's class.
type ChangeClass struct {
	ActorID uint32
	ClassID uint32
	KeepExp bool
}

// ParseChangeClass parses Change Class.
func ParseChangeClass(params []any) (ChangeClass, error) {
	var c ChangeClass
	r := operand.NewReader(params)
	if err := r.ExpectLenBetween(2, 3); err != nil {
		return c, err
	}

	var err error
	if c.ActorID, err = r.Uint32(0, "actor id"); err != nil {
		return c, err
	}
	if c.ClassID, err = r.Uint32(1, "class id"); err != nil {
		return c, err
	}
	if r.Len() == 3 {
		if c.KeepExp, err = r.Bool(2, "keep exp"); err != nil {
			return c, err
		}
	}
	return c, nil
}

// ChangeActorImages swaps an actor's graphics.
type ChangeActorImages struct {
	ActorID        uint32
	CharacterName  string
	CharacterIndex uint32
	FaceName       string
	FaceIndex      uint32
	BattlerName    string
}

// ParseChangeActorImages parses Change Actor Images.
func ParseChangeActorImages(params []any) (ChangeActorImages, error) {
	var c ChangeActorImages
	r := operand.NewReader(params)
	if err := r.ExpectLen(6); err != nil {
		return c, err
	}

	var err error
	if c.ActorID, err = r.Uint32(0, "actor id"); err != nil {
		return c, err
	}
	if c.CharacterName, err = r.String(1, "character name"); err != nil {
		return c, err
	}
	if c.CharacterIndex, err = r.Uint32(2, "character index"); err != nil {
		return c, err
	}
	if c.FaceName, err = r.String(3, "face name"); err != nil {
		return c, err
	}
	if c.FaceIndex, err = r.Uint32(4, "face index"); err != nil {
		return c, err
	}
	if c.BattlerName, err = r.String(5, "battler name"); err != nil {
		return c, err
	}
	return c, nil
}

// NameInput opens the name entry screen.
type NameInput struct {
	ActorID  uint32
	MaxChars uint32
}

// ParseNameInput parses Name Input Processing.
func ParseNameInput(params []any) (NameInput, error) {
	var c NameInput
	r := operand.NewReader(params)
	if err := r.ExpectLen(2); err != nil {
		return c, err
	}

	var err error
	if c.ActorID, err = r.Uint32(0, "actor id"); err != nil {
		return c, err
	}
	if c.MaxChars, err = r.Uint32(1, "max characters"); err != nil {
		return c, err
	}
	return c, nil
}
