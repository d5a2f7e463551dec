package translate

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/command"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/script"
)

func controlSwitches(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseControlSwitches(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	out := make([]script.Stmt, 0, c.End-c.Start+1)
	for id := uint64(c.Start); id <= uint64(c.End); id++ {
		out = append(out, assign(s.name(Switches, uint32(id)), "=", script.Bool(c.On)))
	}
	return out, nil
}

func controlVariables(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseControlVariables(s.Features(), b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	value, err := s.variableOperand(c.Operand)
	if err != nil {
		return nil, err
	}

	op := c.Operate.Operator()
	out := make([]script.Stmt, 0, c.End-c.Start+1)
	for id := uint64(c.Start); id <= uint64(c.End); id++ {
		out = append(out, assign(s.variable(uint32(id)), op, value))
	}
	return out, nil
}

func (s *Scope) variableOperand(o command.VariableOperand) (script.Expr, error) {
	switch o := o.(type) {
	case command.ConstantOperand:
		return script.Int(o.Value), nil
	case command.VariableRefOperand:
		return s.variable(o.ID), nil
	case command.RandomOperand:
		// randrange excludes stop
		return script.CallOf("random.randrange",
			script.Kw("start", script.Int(int64(o.Min))),
			script.Kw("stop", script.Int(int64(o.Max)+1)),
		), nil
	case command.ScriptOperand:
		return script.CallOf("execute_script", script.Pos(script.Str(o.Script))), nil
	case command.GameDataOperand:
		return s.gameData(o)
	}
	return nil, fmt.Errorf("unsupported operand %T", o)
}

var (
	otherData = [...]script.Expr{
		command.OtherMapID:        script.CallOf("game_map.map_id"),
		command.OtherPartyMembers: script.CallOf("game_party.size"),
		command.OtherGold:         script.Name("game_party.gold"),
		command.OtherSteps:        script.Name("game_party.steps"),
		command.OtherPlayTime:     script.CallOf("game_system.playtime"),
		command.OtherTimer:        script.CallOf("game_timer.seconds"),
		command.OtherSaveCount:    script.Name("game_system.save_count"),
		command.OtherBattleCount:  script.Name("game_system.battle_count"),
		command.OtherWinCount:     script.Name("game_system.win_count"),
		command.OtherEscapeCount:  script.Name("game_system.escape_count"),
	}
	lastData = [...]script.Expr{
		command.LastUsedSkill:   script.Name("game_temp.last_used_skill_id"),
		command.LastUsedItem:    script.Name("game_temp.last_used_item_id"),
		command.LastActingActor: script.Name("game_temp.last_acting_actor_id"),
		command.LastActingEnemy: script.Name("game_temp.last_acting_enemy_index"),
		command.LastTargetActor: script.Name("game_temp.last_target_actor_id"),
		command.LastTargetEnemy: script.Name("game_temp.last_target_enemy_index"),
	}
	actorFields     = [...]string{command.ActorLevel: "level", command.ActorExp: "exp", command.ActorHp: "hp", command.ActorMp: "mp"}
	enemyFields     = [...]string{command.EnemyHp: "hp", command.EnemyMp: "mp"}
	characterFields = [...]string{
		command.CharacterMapX:      "map_x",
		command.CharacterMapY:      "map_y",
		command.CharacterDirection: "direction",
		command.CharacterScreenX:   "screen_x",
		command.CharacterScreenY:   "screen_y",
	}
)

// param reads basic parameter n of a battler.
func param(battler script.Expr, n int) script.Expr {
	return script.Call{
		Func: script.Attr{X: battler, Name: "param"},
		Args: []script.Arg{script.Kw("index", script.Int(int64(n)))},
	}
}

func (s *Scope) gameData(g command.GameDataOperand) (script.Expr, error) {
	id := uint32(g.ID)
	switch g.Kind {
	case command.GameDataItem:
		return script.CallOf("game_party.get_num_items", script.Kw("item", s.name(Items, id))), nil
	case command.GameDataWeapon:
		return script.CallOf("game_party.get_num_weapons", script.Kw("weapon", s.name(Weapons, id))), nil
	case command.GameDataArmor:
		return script.CallOf("game_party.get_num_armors", script.Kw("armor", s.name(Armors, id))), nil

	case command.GameDataActor:
		actor := s.name(Actors, id)
		if g.Field >= command.ActorParamBase {
			return param(actor, g.Field-command.ActorParamBase), nil
		}
		return script.Attr{X: actor, Name: actorFields[g.Field]}, nil

	case command.GameDataEnemy:
		enemy := script.Index{X: script.Name("game_troop.members"), Key: script.Int(int64(g.ID))}
		if g.Field >= command.EnemyParamBase {
			return param(enemy, g.Field-command.EnemyParamBase), nil
		}
		return script.Attr{X: enemy, Name: enemyFields[g.Field]}, nil

	case command.GameDataCharacter:
		return script.Attr{X: getCharacter(g.ID), Name: characterFields[g.Field]}, nil

	case command.GameDataParty:
		member := script.Index{X: script.Name("game_party.members"), Key: script.Int(int64(g.ID))}
		return script.Attr{X: member, Name: "actor_id"}, nil

	case command.GameDataOther:
		return otherData[g.Field], nil

	case command.GameDataLast:
		return lastData[g.Field], nil
	}
	return nil, fmt.Errorf("unsupported game data kind %d", g.Kind)
}

func controlSelfSwitch(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseControlSelfSwitch(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	target := script.Index{X: script.Name("game_self_switches"), Key: script.Str(c.Name)}
	return []script.Stmt{assign(target, "=", script.Bool(c.On))}, nil
}

func controlTimer(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseControlTimer(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	if c.Stop {
		return do("game_timer.stop"), nil
	}
	return do("game_timer.start", script.Kw("seconds", script.Int(int64(c.Seconds)))), nil
}

func changeGold(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeGold(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	op := "+="
	if c.Decrease {
		op = "-="
	}
	return []script.Stmt{assign(script.Name("game_party.gold"), op, ref(s, c.Amount))}, nil
}

func changeItems(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeItems(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("gain_item",
		script.Kw("item", s.name(Items, c.ItemID)),
		script.Kw("value", signed(c.Decrease, ref(s, c.Amount))),
	), nil
}

// changeEquipment covers weapons and armors, which share one layout.
func changeEquipment(fn string, cat Category, key string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		c, err := command.ParseChangeEquipment(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		return do(fn,
			script.Kw(key, s.name(cat, c.ID)),
			script.Kw("value", signed(c.Decrease, ref(s, c.Amount))),
			script.Kw("include_equipped", script.Bool(c.IncludeEquipped)),
		), nil
	}
}

func changePartyMember(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangePartyMember(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	actor := script.Kw("actor", s.name(Actors, c.ActorID))
	if c.Remove {
		return do("remove_party_member", actor), nil
	}
	return do("add_party_member", actor, script.Kw("initialize", script.Bool(c.Initialize))), nil
}

func changeSaveAccess(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	enable, err := command.ParseChangeSaveAccess(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	if enable {
		return do("enable_saving"), nil
	}
	return do("disable_saving"), nil
}
