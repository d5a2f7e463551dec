package registry

func leaf(code int, k Kind, min, max int) Entry {
	return Entry{Code: code, Kind: k, Role: RoleLeaf, MinParams: min, MaxParams: max}
}

func open(code int, k Kind, f Family, min, max int) Entry {
	return Entry{Code: code, Kind: k, Role: RoleOpen, Family: f, MinParams: min, MaxParams: max}
}

func arm(code int, k Kind, f Family, once bool, min, max int) Entry {
	return Entry{Code: code, Kind: k, Role: RoleArm, Family: f, Once: once, MinParams: min, MaxParams: max}
}

func closer(code int, k Kind, f Family) Entry {
	return Entry{Code: code, Kind: k, Role: RoleClose, Family: f, MinParams: 0, MaxParams: Unbounded}
}

func continuation(code int, k Kind, of Kind) Entry {
	return Entry{Code: code, Kind: k, Role: RoleContinuation, Continues: of, MinParams: 1, MaxParams: 1}
}

// shared holds every opcode whose layout is identical in MV and MZ.
var shared = []Entry{
	leaf(0, NoOp, 0, 0),

	leaf(101, ShowText, 4, 4),
	continuation(401, TextData, ShowText),

	open(102, ShowChoices, FamilyChoices, 2, 5),
	arm(402, WhenChoice, FamilyChoices, false, 2, 2),
	arm(403, WhenCancel, FamilyChoices, true, 0, 2),
	closer(404, ChoicesEnd, FamilyChoices),

	leaf(105, ShowScrollingText, 2, 2),
	continuation(405, ScrollingTextData, ShowScrollingText),

	leaf(108, Comment, 1, 1),
	continuation(408, CommentData, Comment),

	open(111, ConditionalBranch, FamilyConditional, 2, 6),
	arm(411, Else, FamilyConditional, true, 0, Unbounded),
	closer(412, ConditionalBranchEnd, FamilyConditional),

	open(112, Loop, FamilyLoop, 0, Unbounded),
	closer(413, RepeatAbove, FamilyLoop),
	leaf(113, BreakLoop, 0, Unbounded),

	leaf(115, ExitEventProcessing, 0, Unbounded),
	leaf(117, CommonEvent, 1, 1),
	leaf(118, Label, 1, 1),
	leaf(119, JumpToLabel, 1, 1),

	leaf(121, ControlSwitches, 3, 3),
	leaf(122, ControlVariables, 5, 7),
	leaf(123, ControlSelfSwitch, 2, 2),
	leaf(124, ControlTimer, 2, 2),
	leaf(125, ChangeGold, 3, 3),
	leaf(126, ChangeItems, 4, 4),
	leaf(127, ChangeWeapons, 5, 5),
	leaf(128, ChangeArmors, 5, 5),
	leaf(129, ChangePartyMember, 3, 3),
	leaf(134, ChangeSaveAccess, 1, 1),

	leaf(201, TransferPlayer, 6, 6),
	leaf(203, SetEventLocation, 5, 5),
	leaf(205, SetMovementRoute, 2, 2),
	continuation(505, MoveRouteData, SetMovementRoute),
	leaf(211, ChangeTransparency, 1, 1),
	leaf(212, ShowAnimation, 3, 3),
	leaf(213, ShowBalloonIcon, 3, 3),
	leaf(216, ChangePlayerFollowers, 1, 1),

	leaf(221, FadeoutScreen, 0, 0),
	leaf(222, FadeinScreen, 0, 0),
	leaf(223, TintScreen, 3, 3),
	leaf(224, FlashScreen, 3, 3),
	leaf(225, ShakeScreen, 4, 4),
	leaf(230, Wait, 1, 1),
	leaf(231, ShowPicture, 10, 10),
	leaf(235, ErasePicture, 1, 1),

	leaf(241, PlayBgm, 1, 1),
	leaf(242, FadeoutBgm, 1, 1),
	leaf(243, SaveBgm, 0, 0),
	leaf(244, ResumeBgm, 0, 0),
	leaf(245, PlayBgs, 1, 1),
	leaf(246, FadeoutBgs, 1, 1),
	leaf(249, PlayMe, 1, 1),
	leaf(250, PlaySe, 1, 1),
	leaf(251, StopSe, 0, 0),

	leaf(285, GetLocationInfo, 5, 5),

	{Code: 301, Kind: BattleProcessing, Role: RoleLeaf, Family: FamilyBattleResult, MinParams: 4, MaxParams: 4},
	arm(601, IfWin, FamilyBattleResult, true, 0, 0),
	arm(602, IfEscape, FamilyBattleResult, true, 0, 0),
	arm(603, IfLose, FamilyBattleResult, true, 0, 0),
	closer(604, BattleResultEnd, FamilyBattleResult),

	leaf(303, NameInput, 2, 2),
	leaf(311, ChangeHp, 6, 6),
	leaf(312, ChangeMp, 5, 5),
	leaf(313, ChangeState, 4, 4),
	leaf(314, RecoverAll, 2, 2),
	leaf(316, ChangeLevel, 5, 6),
	leaf(318, ChangeSkill, 4, 4),
	leaf(321, ChangeClass, 2, 3),
	leaf(322, ChangeActorImages, 6, 6),
	leaf(339, ForceAction, 4, 4),
	leaf(340, AbortBattle, 0, 0),

	leaf(353, GameOver, 0, 0),
	leaf(354, ReturnToTitle, 0, 0),

	leaf(355, Script, 1, 1),
	continuation(655, ScriptData, Script),
}

// overrides replace or add entries per variant.
var overrides = map[Variant][]Entry{
	MV: {
		leaf(356, PluginCommand, 1, 1),
	},
	MZ: {
		leaf(101, ShowText, 5, 5),
		open(102, ShowChoices, FamilyChoices, 5, 5),
		leaf(357, PluginCommand, 4, 4),
		continuation(657, PluginCommandData, PluginCommand),
	},
}
