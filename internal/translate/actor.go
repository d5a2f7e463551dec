package translate

import (
	"github.com/eventpy/eventpy/internal/command"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/script"
)

func nameInput(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseNameInput(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("name_input_processing",
		script.Kw("actor", s.name(Actors, c.ActorID)),
		script.Kw("max_len", script.Int(int64(c.MaxChars))),
	), nil
}

func changeHp(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeHp(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("gain_hp",
		s.actorArg(c.Actor),
		script.Kw("value", signed(c.Decrease, ref(s, c.Amount))),
		script.Kw("allow_death", script.Bool(c.Flag)),
	), nil
}

func changeMp(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeMp(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("gain_mp",
		s.actorArg(c.Actor),
		script.Kw("value", signed(c.Decrease, ref(s, c.Amount))),
	), nil
}

func changeLevel(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeLevel(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("gain_level",
		s.actorArg(c.Actor),
		script.Kw("value", signed(c.Decrease, ref(s, c.Amount))),
		script.Kw("show_level_up", script.Bool(c.Flag)),
	), nil
}

// actorToggle covers Change State and Change Skill.
func actorToggle(add, remove string, cat Category, key string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		c, err := command.ParseActorToggle(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		fn := add
		if c.Remove {
			fn = remove
		}
		return do(fn, s.actorArg(c.Actor), script.Kw(key, s.name(cat, c.ID))), nil
	}
}

func recoverAll(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	target, err := command.ParseRecoverAll(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("recover_all", s.actorArg(target)), nil
}

func changeClass(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeClass(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("change_class",
		script.Kw("actor", s.name(Actors, c.ActorID)),
		script.Kw("klass", s.name(Classes, c.ClassID)),
		script.Kw("keep_exp", script.Bool(c.KeepExp)),
	), nil
}

func changeActorImages(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseChangeActorImages(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return doMultiline("change_actor_images",
		script.Kw("actor", s.name(Actors, c.ActorID)),
		script.Kw("character_name", script.Str(c.CharacterName)),
		script.Kw("character_index", script.Int(int64(c.CharacterIndex))),
		script.Kw("face_name", script.Str(c.FaceName)),
		script.Kw("face_index", script.Int(int64(c.FaceIndex))),
		script.Kw("battler_name", script.Str(c.BattlerName)),
	), nil
}

func forceAction(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseForceAction(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	subject := script.Kw("enemy_index", script.Int(int64(c.ID)))
	if c.IsActor {
		subject = script.Kw("actor", s.name(Actors, c.ID))
	}
	return do("force_action",
		subject,
		script.Kw("skill", s.name(Skills, c.SkillID)),
		script.Kw("target_index", script.Int(int64(c.TargetIndex))),
	), nil
}
