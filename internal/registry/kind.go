package registry

import "fmt"

// Kind identifies one command family independently of its numeric code.
type Kind int

const (
	KindUnknown Kind = iota
	NoOp
	ShowText
	TextData
	ShowChoices
	WhenChoice
	WhenCancel
	ChoicesEnd
	ShowScrollingText
	ScrollingTextData
	Comment
	CommentData
	ConditionalBranch
	Else
	ConditionalBranchEnd
	Loop
	RepeatAbove
	BreakLoop
	ExitEventProcessing
	CommonEvent
	Label
	JumpToLabel
	ControlSwitches
	ControlVariables
	ControlSelfSwitch
	ControlTimer
	ChangeGold
	ChangeItems
	ChangeWeapons
	ChangeArmors
	ChangePartyMember
	ChangeSaveAccess
	TransferPlayer
	SetEventLocation
	SetMovementRoute
	MoveRouteData
	ChangeTransparency
	ShowAnimation
	ShowBalloonIcon
	ChangePlayerFollowers
	FadeoutScreen
	FadeinScreen
	TintScreen
	FlashScreen
	ShakeScreen
	Wait
	ShowPicture
	ErasePicture
	PlayBgm
	FadeoutBgm
	SaveBgm
	ResumeBgm
	PlayBgs
	FadeoutBgs
	PlayMe
	PlaySe
	StopSe
	GetLocationInfo
	BattleProcessing
	IfWin
	IfEscape
	IfLose
	BattleResultEnd
	NameInput
	ChangeHp
	ChangeMp
	ChangeState
	RecoverAll
	ChangeLevel
	ChangeSkill
	ChangeClass
	ChangeActorImages
	ForceAction
	AbortBattle
	GameOver
	ReturnToTitle
	Script
	ScriptData
	PluginCommand
	PluginCommandData
)

var kindNames = map[Kind]string{
	KindUnknown:           "Unknown",
	NoOp:                  "NoOp",
	ShowText:              "ShowText",
	TextData:              "TextData",
	ShowChoices:           "ShowChoices",
	WhenChoice:            "WhenChoice",
	WhenCancel:            "WhenCancel",
	ChoicesEnd:            "ChoicesEnd",
	ShowScrollingText:     "ShowScrollingText",
	ScrollingTextData:     "ScrollingTextData",
	Comment:               "Comment",
	CommentData:           "CommentData",
	ConditionalBranch:     "ConditionalBranch",
	Else:                  "Else",
	ConditionalBranchEnd:  "ConditionalBranchEnd",
	Loop:                  "Loop",
	RepeatAbove:           "RepeatAbove",
	BreakLoop:             "BreakLoop",
	ExitEventProcessing:   "ExitEventProcessing",
	CommonEvent:           "CommonEvent",
	Label:                 "Label",
	JumpToLabel:           "JumpToLabel",
	ControlSwitches:       "ControlSwitches",
	ControlVariables:      "ControlVariables",
	ControlSelfSwitch:     "ControlSelfSwitch",
	ControlTimer:          "ControlTimer",
	ChangeGold:            "ChangeGold",
	ChangeItems:           "ChangeItems",
	ChangeWeapons:         "ChangeWeapons",
	ChangeArmors:          "ChangeArmors",
	ChangePartyMember:     "ChangePartyMember",
	ChangeSaveAccess:      "ChangeSaveAccess",
	TransferPlayer:        "TransferPlayer",
	SetEventLocation:      "SetEventLocation",
	SetMovementRoute:      "SetMovementRoute",
	MoveRouteData:         "MoveRouteData",
	ChangeTransparency:    "ChangeTransparency",
	ShowAnimation:         "ShowAnimation",
	ShowBalloonIcon:       "ShowBalloonIcon",
	ChangePlayerFollowers: "ChangePlayerFollowers",
	FadeoutScreen:         "FadeoutScreen",
	FadeinScreen:          "FadeinScreen",
	TintScreen:            "TintScreen",
	FlashScreen:           "FlashScreen",
	ShakeScreen:           "ShakeScreen",
	Wait:                  "Wait",
	ShowPicture:           "ShowPicture",
	ErasePicture:          "ErasePicture",
	PlayBgm:               "PlayBgm",
	FadeoutBgm:            "FadeoutBgm",
	SaveBgm:               "SaveBgm",
	ResumeBgm:             "ResumeBgm",
	PlayBgs:               "PlayBgs",
	FadeoutBgs:            "FadeoutBgs",
	PlayMe:                "PlayMe",
	PlaySe:                "PlaySe",
	StopSe:                "StopSe",
	GetLocationInfo:       "GetLocationInfo",
	BattleProcessing:      "BattleProcessing",
	IfWin:                 "IfWin",
	IfEscape:              "IfEscape",
	IfLose:                "IfLose",
	BattleResultEnd:       "BattleResultEnd",
	NameInput:             "NameInput",
	ChangeHp:              "ChangeHp",
	ChangeMp:              "ChangeMp",
	ChangeState:           "ChangeState",
	RecoverAll:            "RecoverAll",
	ChangeLevel:           "ChangeLevel",
	ChangeSkill:           "ChangeSkill",
	ChangeClass:           "ChangeClass",
	ChangeActorImages:     "ChangeActorImages",
	ForceAction:           "ForceAction",
	AbortBattle:           "AbortBattle",
	GameOver:              "GameOver",
	ReturnToTitle:         "ReturnToTitle",
	Script:                "Script",
	ScriptData:            "ScriptData",
	PluginCommand:         "PluginCommand",
	PluginCommandData:     "PluginCommandData",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Role is the part a command plays in control-flow reconstruction.
type Role int

const (
	// RoleLeaf commands stand alone.
	RoleLeaf Role = iota
	// RoleOpen commands start a block that a RoleClose command ends.
	RoleOpen
	// RoleArm commands split an open block into branches.
	RoleArm
	// RoleClose commands end the innermost open block of their family.
	RoleClose
	// RoleContinuation rows carry extra data for the command right before them.
	RoleContinuation
)

func (r Role) String() string {
	switch r {
	case RoleLeaf:
		return "leaf"
	case RoleOpen:
		return "open"
	case RoleArm:
		return "arm"
	case RoleClose:
		return "close"
	case RoleContinuation:
		return "continuation"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Family groups the openers, arms and closers that belong together.
type Family int

const (
	FamilyNone Family = iota
	FamilyConditional
	FamilyLoop
	FamilyChoices
	FamilyBattleResult
)

func (f Family) String() string {
	switch f {
	case FamilyNone:
		return "none"
	case FamilyConditional:
		return "conditional branch"
	case FamilyLoop:
		return "loop"
	case FamilyChoices:
		return "show choices"
	case FamilyBattleResult:
		return "battle result"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}
