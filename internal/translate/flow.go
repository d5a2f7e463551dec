package translate

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/command"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/script"
)

func conditionalBranch(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	header, err := command.ParseConditionalBranch(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	cond, err := s.condition(header.Condition)
	if err != nil {
		return nil, err
	}
	body, err := s.Blocks(b.Body)
	if err != nil {
		return nil, err
	}

	stmt := script.If{Branches: []script.Branch{{Cond: cond, Body: body}}}
	if alt := b.Alternate(); alt != nil {
		if stmt.Else, err = s.Blocks(alt.Body); err != nil {
			return nil, err
		}
		stmt.HasElse = true
	}
	return []script.Stmt{stmt}, nil
}

func (s *Scope) condition(c command.Condition) (script.Expr, error) {
	switch c := c.(type) {
	case command.SwitchCondition:
		return truth(c.On, s.name(Switches, c.ID)), nil

	case command.VariableCondition:
		return script.Binary{Op: c.Compare.Operator(), L: s.variable(c.ID), R: ref(s, c.Operand)}, nil

	case command.SelfSwitchCondition:
		get := script.CallOf("game_self_switches.get",
			script.Kw("map_id", script.Name("self.map_id")),
			script.Kw("event_id", script.Name("self.event_id")),
			script.Kw("name", script.Str(c.Name)),
		)
		return truth(c.On, get), nil

	case command.TimerCondition:
		op := ">="
		if c.AtMost {
			op = "<="
		}
		return script.Binary{Op: op, L: script.CallOf("game_timer.seconds"), R: script.Int(int64(c.Seconds))}, nil

	case command.ActorCondition:
		actor := string(s.name(Actors, c.ActorID))
		switch c.Check {
		case command.ActorInParty:
			return script.CallOf("game_party.members.contains", script.Kw("actor", script.Name(actor))), nil
		case command.ActorName:
			return script.Binary{Op: "==", L: script.Name(actor + ".name"), R: script.Str(c.Name)}, nil
		case command.ActorClass:
			return script.CallOf(actor+".is_class", script.Kw("klass", s.name(Classes, c.ArgID))), nil
		case command.ActorSkill:
			return script.CallOf(actor+".has_skill", script.Kw("skill", s.name(Skills, c.ArgID))), nil
		case command.ActorWeapon:
			return script.CallOf(actor+".has_weapon", script.Kw("weapon", s.name(Weapons, c.ArgID))), nil
		case command.ActorArmor:
			return script.CallOf(actor+".has_armor", script.Kw("armor", s.name(Armors, c.ArgID))), nil
		case command.ActorState:
			return script.CallOf(actor+".has_state", script.Kw("state", s.name(States, c.ArgID))), nil
		}

	case command.EnemyCondition:
		member := fmt.Sprintf("game_troop.members[%d]", c.Index)
		if c.Check == command.EnemyState {
			return script.CallOf(member+".is_state_affected", script.Kw("state", s.name(States, c.StateID))), nil
		}
		return script.CallOf(member + ".is_appeared"), nil

	case command.CharacterCondition:
		return script.Binary{
			Op: "==",
			L:  script.Attr{X: character(c.CharacterID), Name: "direction"},
			R:  script.Int(int64(c.Direction)),
		}, nil

	case command.GoldCondition:
		return script.Binary{Op: c.Check.Operator(), L: script.Name("game_party.gold"), R: script.Int(int64(c.Amount))}, nil

	case command.ItemCondition:
		return script.CallOf("game_party.has_item", script.Kw("item", s.name(Items, c.ItemID))), nil

	case command.EquipCondition:
		if c.Armor {
			return script.CallOf("game_party.has_armor",
				script.Kw("armor", s.name(Armors, c.ID)),
				script.Kw("include_equipped", script.Bool(c.IncludeEquipped)),
			), nil
		}
		return script.CallOf("game_party.has_weapon",
			script.Kw("weapon", s.name(Weapons, c.ID)),
			script.Kw("include_equipped", script.Bool(c.IncludeEquipped)),
		), nil

	case command.ButtonCondition:
		return script.CallOf("game_input.is_pressed", script.Kw("key_name", script.Str(c.Button))), nil

	case command.ScriptCondition:
		return script.CallOf("execute_script", script.Pos(script.Str(c.Script))), nil
	}
	return nil, fmt.Errorf("unsupported condition %T", c)
}

func truth(on bool, e script.Expr) script.Expr {
	if on {
		return e
	}
	return script.Not{X: e}
}

func loop(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	body, err := s.Blocks(b.Body)
	if err != nil {
		return nil, err
	}
	return []script.Stmt{script.While{Cond: script.Bool(true), Body: body}}, nil
}

func breakLoop(*Scope, *flow.Block) ([]script.Stmt, error) {
	return []script.Stmt{script.Break{}}, nil
}

func showChoices(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseShowChoices(b.Command.Parameters)
	if err != nil {
		return nil, err
	}

	choices := make([]script.Expr, len(c.Choices))
	for i, name := range c.Choices {
		choices[i] = script.Str(name)
	}
	out := doMultiline("show_choices",
		script.Kw("choices", script.List{Items: choices}),
		script.Kw("cancel_type", script.Int(c.CancelType)),
		script.Kw("default_type", script.Int(c.DefaultType)),
		script.Kw("position_type", script.Int(int64(c.Position))),
		script.Kw("background", script.Int(int64(c.Background))),
	)

	lead, err := s.Blocks(b.Body)
	if err != nil {
		return nil, err
	}
	out = append(out, lead...)

	var branches []script.Branch
	for _, arm := range b.Arms {
		body, err := s.Blocks(arm.Body)
		if err != nil {
			return nil, err
		}
		index := script.Int(-1)
		comment := "Cancel"
		if arm.Entry.Kind == registry.WhenChoice {
			when, err := command.ParseWhenChoice(arm.Command.Parameters)
			if err != nil {
				return nil, s.Fail(arm.Index, arm.Command.Code, err)
			}
			if int(when.Index) >= len(c.Choices) {
				return nil, s.Fail(arm.Index, arm.Command.Code,
					fmt.Errorf("%w: choice %d of %d", errChoiceRange, when.Index, len(c.Choices)))
			}
			index = script.Int(int64(when.Index))
			comment = when.Name
		}
		branches = append(branches, script.Branch{
			Cond:    script.Binary{Op: "==", L: script.CallOf("get_choice_index"), R: index},
			Comment: comment,
			Body:    body,
		})
	}
	if len(branches) > 0 {
		out = append(out, script.If{Branches: branches})
	}
	return out, nil
}

func battleProcessing(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseBattleProcessing(s.Features(), b.Command.Parameters)
	if err != nil {
		return nil, err
	}

	var troop script.Arg
	switch c.Source {
	case command.TroopConstant:
		id, _ := c.Troop.Value()
		troop = script.Kw("troop", s.name(Troops, id))
	case command.TroopVariable:
		idx, _ := c.Troop.Index()
		troop = script.Kw("troop_id", s.variable(idx))
	case command.TroopRandomEncounter:
		troop = script.Kw("troop_id", script.CallOf("game.random_encounter_troop_id"))
	}
	out := doMultiline("battle_processing",
		troop,
		script.Kw("can_escape", script.Bool(c.CanEscape)),
		script.Kw("can_lose", script.Bool(c.CanLose)),
	)

	var branches []script.Branch
	for _, arm := range b.Arms {
		body, err := s.Blocks(arm.Body)
		if err != nil {
			return nil, err
		}
		var check string
		switch arm.Entry.Kind {
		case registry.IfWin:
			check = "is_win"
		case registry.IfEscape:
			check = "is_escape"
		case registry.IfLose:
			check = "is_lose"
		}
		branches = append(branches, script.Branch{
			Cond: script.CallOf("game_battle_result." + check),
			Body: body,
		})
	}
	if len(branches) > 0 {
		out = append(out, script.If{Branches: branches})
	}
	return out, nil
}
