package translate

import (
	"fmt"

	"github.com/eventpy/eventpy/internal/diag"
	"github.com/eventpy/eventpy/internal/flow"
	"github.com/eventpy/eventpy/internal/registry"
	"github.com/eventpy/eventpy/internal/script"
)

var errChoiceRange = fmt.Errorf("%w: choice index out of range", diag.ErrData)

// registerBuiltins registers a handler for every leaf and opener kind.
// Arms, closers and continuation rows are consumed by their block.
func registerBuiltins(t *Translator) {
	t.Register(registry.NoOp, noOp)

	// Messages
	t.Register(registry.ShowText, showText)
	t.Register(registry.ShowChoices, showChoices, Logged())
	t.Register(registry.ShowScrollingText, showScrollingText)
	t.Register(registry.Comment, comment)

	// Flow control - compound kinds translate their children
	t.Register(registry.ConditionalBranch, conditionalBranch, Logged())
	t.Register(registry.Loop, loop, Logged())
	t.Register(registry.BreakLoop, breakLoop)
	t.Register(registry.ExitEventProcessing, call("exit_event_processing"))
	t.Register(registry.CommonEvent, commonEvent)
	t.Register(registry.Label, label("set_label"))
	t.Register(registry.JumpToLabel, label("jump_to_label"))

	// Game state
	t.Register(registry.ControlSwitches, controlSwitches)
	t.Register(registry.ControlVariables, controlVariables)
	t.Register(registry.ControlSelfSwitch, controlSelfSwitch)
	t.Register(registry.ControlTimer, controlTimer)

	// Party
	t.Register(registry.ChangeGold, changeGold)
	t.Register(registry.ChangeItems, changeItems)
	t.Register(registry.ChangeWeapons, changeEquipment("gain_weapon", Weapons, "weapon"))
	t.Register(registry.ChangeArmors, changeEquipment("gain_armor", Armors, "armor"))
	t.Register(registry.ChangePartyMember, changePartyMember)
	t.Register(registry.ChangeSaveAccess, changeSaveAccess)

	// Map and characters
	t.Register(registry.TransferPlayer, transferPlayer)
	t.Register(registry.SetEventLocation, setEventLocation)
	t.Register(registry.SetMovementRoute, setMovementRoute)
	t.Register(registry.ChangeTransparency, changeTransparency)
	t.Register(registry.ShowAnimation, characterEffect("show_animation", "animation_id"))
	t.Register(registry.ShowBalloonIcon, characterEffect("show_balloon_icon", "balloon_id"))
	t.Register(registry.ChangePlayerFollowers, changePlayerFollowers)
	t.Register(registry.GetLocationInfo, getLocationInfo)

	// Screen and pictures
	t.Register(registry.FadeoutScreen, call("fadeout_screen"))
	t.Register(registry.FadeinScreen, call("fadein_screen"))
	t.Register(registry.TintScreen, tintScreen)
	t.Register(registry.FlashScreen, flashScreen)
	t.Register(registry.ShakeScreen, shakeScreen)
	t.Register(registry.Wait, duration("wait"))
	t.Register(registry.ShowPicture, showPicture)
	t.Register(registry.ErasePicture, erasePicture)

	// Audio
	t.Register(registry.PlayBgm, playAudio("play_bgm"))
	t.Register(registry.FadeoutBgm, duration("fadeout_bgm"))
	t.Register(registry.SaveBgm, call("save_bgm"))
	t.Register(registry.ResumeBgm, call("resume_bgm"))
	t.Register(registry.PlayBgs, playAudio("play_bgs"))
	t.Register(registry.FadeoutBgs, duration("fadeout_bgs"))
	t.Register(registry.PlayMe, playAudio("play_me"))
	t.Register(registry.PlaySe, playAudio("play_se"))
	t.Register(registry.StopSe, call("stop_se"))

	// Battle
	t.Register(registry.BattleProcessing, battleProcessing, Logged())
	t.Register(registry.ForceAction, forceAction)
	t.Register(registry.AbortBattle, call("abort_battle"))

	// Actors
	t.Register(registry.NameInput, nameInput)
	t.Register(registry.ChangeHp, changeHp)
	t.Register(registry.ChangeMp, changeMp)
	t.Register(registry.ChangeState, actorToggle("add_state", "remove_state", States, "state"))
	t.Register(registry.RecoverAll, recoverAll)
	t.Register(registry.ChangeLevel, changeLevel)
	t.Register(registry.ChangeSkill, actorToggle("learn_skill", "forget_skill", Skills, "skill"))
	t.Register(registry.ChangeClass, changeClass)
	t.Register(registry.ChangeActorImages, changeActorImages)

	// System
	t.Register(registry.GameOver, call("game_over"))
	t.Register(registry.ReturnToTitle, call("return_to_title_screen"))
	t.Register(registry.Script, scriptLines)
	t.Register(registry.PluginCommand, pluginCommand, Logged())
}

func noOp(*Scope, *flow.Block) ([]script.Stmt, error) {
	return nil, nil
}

// call translates a parameterless command into a bare call.
func call(fn string) HandlerFunc {
	return func(*Scope, *flow.Block) ([]script.Stmt, error) {
		return do(fn), nil
	}
}
