package translate

import (
	"github.com/eventpy/eventpy/internal/command"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/script"
)

func transferPlayer(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseTransferPlayer(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	var target script.Arg
	if idx, ok := c.MapID.Index(); ok {
		target = script.Kw("map_id", s.variable(idx))
	} else {
		id, _ := c.MapID.Value()
		target = script.Kw("map", s.name(Maps, id))
	}
	return doMultiline("transfer_player",
		target,
		script.Kw("x", ref(s, c.X)),
		script.Kw("y", ref(s, c.Y)),
		script.Kw("direction", script.Int(int64(c.Direction))),
		script.Kw("fade_type", script.Int(int64(c.FadeType))),
	), nil
}

func setEventLocation(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseSetEventLocation(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	args := []script.Arg{script.Kw("character_id", script.Int(int64(c.CharacterID)))}
	if c.Exchange {
		args = append(args, script.Kw("exchange_with", script.Int(int64(c.ExchangeWith))))
	} else {
		args = append(args, script.Kw("x", ref(s, c.X)), script.Kw("y", ref(s, c.Y)))
	}
	args = append(args, script.Kw("direction", script.Int(int64(c.Direction))))
	return doMultiline("set_event_location", args...), nil
}

func setMovementRoute(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseSetMovementRoute(b.Command.Parameters, b.Extra)
	if err != nil {
		return nil, err
	}
	return doMultiline("set_movement_route",
		script.Kw("character_id", script.Int(int64(c.CharacterID))),
		script.Kw("route", moveRoute(c.Route)),
	), nil
}

func changeTransparency(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	transparent, err := command.ParseChangeTransparency(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("change_transparency", script.Kw("set_transparent", script.Bool(transparent))), nil
}

func changePlayerFollowers(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	show, err := command.ParseChangePlayerFollowers(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	if show {
		return do("show_player_followers"), nil
	}
	return do("hide_player_followers"), nil
}

// characterEffect covers Show Animation and Show Balloon Icon.
func characterEffect(fn, key string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		c, err := command.ParseCharacterEffect(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		return do(fn,
			script.Kw("character_id", script.Int(int64(c.CharacterID))),
			script.Kw(key, script.Int(int64(c.EffectID))),
			script.Kw("wait", script.Bool(c.Wait)),
		), nil
	}
}

var locationFuncs = [...]string{
	command.LocationTerrainTag: "game_map.get_terrain_tag",
	command.LocationEventID:    "game_map.get_event_id",
	command.LocationTileLayer1: "game_map.get_tile_id",
	command.LocationTileLayer2: "game_map.get_tile_id",
	command.LocationTileLayer3: "game_map.get_tile_id",
	command.LocationTileLayer4: "game_map.get_tile_id",
	command.LocationRegionID:   "game_map.get_region_id",
}

func getLocationInfo(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseGetLocationInfo(b.Command.Parameters)
	if err != nil {
		return nil, err
	}

	var x, y script.Expr
	if c.ByCharacter {
		ch := getCharacter(c.CharacterID)
		x = script.Attr{X: ch, Name: "map_x"}
		y = script.Attr{X: ch, Name: "map_y"}
	} else {
		x, y = ref(s, c.X), ref(s, c.Y)
	}
	args := []script.Arg{script.Kw("x", x), script.Kw("y", y)}
	if c.Info >= command.LocationTileLayer1 && c.Info <= command.LocationTileLayer4 {
		layer := int64(c.Info - command.LocationTileLayer1)
		args = append(args, script.Kw("layer", script.Int(layer)))
	}
	value := script.CallOf(locationFuncs[c.Info], args...)
	return []script.Stmt{assign(s.variable(c.VariableID), "=", value)}, nil
}

func tintScreen(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseTintScreen(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return screenEffect("tint_screen", "tone", c), nil
}

func flashScreen(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseFlashScreen(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return screenEffect("flash_screen", "color", c), nil
}

func screenEffect(fn, key string, c command.ScreenEffect) []script.Stmt {
	return do(fn,
		script.Kw(key, intList(c.Color[:])),
		script.Kw("duration", script.Int(int64(c.Duration))),
		script.Kw("wait", script.Bool(c.Wait)),
	)
}

func shakeScreen(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseShakeScreen(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return do("shake_screen",
		script.Kw("power", script.Int(int64(c.Power))),
		script.Kw("speed", script.Int(int64(c.Speed))),
		script.Kw("duration", script.Int(int64(c.Duration))),
		script.Kw("wait", script.Bool(c.Wait)),
	), nil
}

// duration translates the commands whose only slot is a frame count.
func duration(fn string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		n, err := command.ParseSingleUint(b.Command.Parameters, "duration")
		if err != nil {
			return nil, err
		}
		return do(fn, script.Kw("duration", script.Int(int64(n)))), nil
	}
}

func showPicture(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	c, err := command.ParseShowPicture(b.Command.Parameters)
	if err != nil {
		return nil, err
	}
	return doMultiline("show_picture",
		script.Kw("picture_id", script.Int(int64(c.PictureID))),
		script.Kw("picture_name", script.Str(c.Name)),
		script.Kw("origin", script.Int(int64(c.Origin))),
		script.Kw("x", ref(s, c.X)),
		script.Kw("y", ref(s, c.Y)),
		script.Kw("scale_x", script.Int(int64(c.ScaleX))),
		script.Kw("scale_y", script.Int(int64(c.ScaleY))),
		script.Kw("opacity", script.Int(int64(c.Opacity))),
		script.Kw("blend_mode", script.Int(int64(c.BlendMode))),
	), nil
}

func erasePicture(s *Scope, b *flow.Block) ([]script.Stmt, error) {
	id, err := command.ParseSingleUint(b.Command.Parameters, "picture id")
	if err != nil {
		return nil, err
	}
	return do("erase_picture", script.Kw("picture_id", script.Int(int64(id)))), nil
}

func playAudio(fn string) HandlerFunc {
	return func(s *Scope, b *flow.Block) ([]script.Stmt, error) {
		audio, err := command.ParseAudio(b.Command.Parameters)
		if err != nil {
			return nil, err
		}
		return doMultiline(fn, script.Kw("audio", audioFile(audio))), nil
	}
}
