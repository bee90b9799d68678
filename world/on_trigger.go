package world

// TriggerContext is the state an OnTrigger action needs to apply
// itself: the party, the entity (if any) that caused the trigger to
// fire, and hooks back into the subsystems an action might touch.
// Fields are filled in by whatever caller fires a trigger; an action
// that doesn't need a field simply ignores it.
type TriggerContext struct {
	Party  *PartyStash
	Target *Entity

	// BlockUI disables UI input for the given duration in milliseconds.
	BlockUI func(millis int)
	// CheckEndTurn advances the turn manager if the active entity's
	// action points are exhausted.
	CheckEndTurn func()
	// FireScript invokes a named script function with (parent, target).
	FireScript func(scriptID, fn string, parent, target int)
	// ShowDialog surfaces a modal UI element; kind distinguishes
	// cutscene/merchant/confirm/menu/conversation.
	ShowDialog func(kind string, payload any)
	// ScrollView centers the area view on (x, y).
	ScrollView func(x, y int)
	// ScreenShake triggers a screen-shake effect.
	ScreenShake func()
	// LoadModule performs a cross-module transition.
	LoadModule func(data ModuleTransition)
	// SayLine floats text over the target.
	SayLine func(target *Entity, text string)
	// GameOver ends the run and returns to the main menu.
	GameOver func(text string)
	// SetFlag/SetNumFlag mutate a boolean/integer flag on either the
	// target entity or the player party, per onTarget.
	SetFlag    func(onTarget bool, flag string, value bool)
	SetNumFlag func(onTarget bool, flag string, delta int)
	// SetQuestState mutates the quest registry.
	SetQuestState func(quest, entry, state string)
}

// ModuleTransition carries the party (and optional stash) across a
// cross-module load.
type ModuleTransition struct {
	ModuleID   string
	AreaID     string
	X, Y       int
	CarryStash bool
}

// MerchantData configures a ShowMerchant action.
type MerchantData struct {
	LootTableID  string
	BuyFraction  float32
	SellFraction float32
	RefreshDays  int
}

// DialogData configures a ShowConfirm/ShowMenu action. OnSelectFunc is
// invoked with the chosen option's id for ShowMenu; ShowConfirm ignores
// it.
type DialogData struct {
	Title        string
	Text         string
	Options      []string
	OnSelectFunc string
}

// OnTrigger is one action a Trigger (or a dialog option) fires. Exactly
// one of the payload-shaped fields is meaningful for any given Kind;
// the rest are zero.
type OnTrigger struct {
	Kind OnTriggerKind

	Millis int

	AbilityID string
	Coins     int
	EntityID  string
	ItemID    string

	OnTarget bool
	Flag     string
	FlagVal  int

	Merchant MerchantData

	ConversationID string
	Text           string
	CutsceneID     string
	Frames         int

	ScriptID   string
	ScriptFunc string

	X, Y int

	Module ModuleTransition

	Dialog DialogData

	Quest      string
	QuestEntry string
	QuestState string
}

// OnTriggerKind enumerates every action a trigger or dialog can fire.
type OnTriggerKind int

const (
	ActionBlockUI OnTriggerKind = iota
	ActionCheckEndTurn
	ActionPlayerAbility
	ActionPlayerCoins
	ActionPartyMember
	ActionPartyItem
	ActionSetFlag
	ActionClearFlag
	ActionSetNumFlag
	ActionClearNumFlag
	ActionShowMerchant
	ActionStartConversation
	ActionSayLine
	ActionShowCutscene
	ActionFireScript
	ActionGameOverWindow
	ActionScrollView
	ActionScreenShake
	ActionLoadModule
	ActionShowConfirm
	ActionShowMenu
	ActionFadeOutIn
	ActionQuestState
	ActionNotQuestState
)

// Apply runs this action against ctx. Every branch guards the context
// hook it needs so a caller that only wires a subset of TriggerContext
// (tests, headless simulation) doesn't panic on an action it doesn't
// care about.
func (a OnTrigger) Apply(ctx *TriggerContext) {
	switch a.Kind {
	case ActionBlockUI:
		if ctx.BlockUI != nil {
			ctx.BlockUI(a.Millis)
		}
	case ActionCheckEndTurn:
		if ctx.CheckEndTurn != nil {
			ctx.CheckEndTurn()
		}
	case ActionPlayerAbility:
		if ctx.Party != nil {
			ctx.Party.GrantAbility(a.AbilityID)
		}
	case ActionPlayerCoins:
		if ctx.Party != nil {
			ctx.Party.AdjustCoins(a.Coins)
		}
	case ActionPartyMember:
		if ctx.Party != nil {
			ctx.Party.AddMember(a.EntityID)
		}
	case ActionPartyItem:
		if ctx.Party != nil {
			ctx.Party.AddItem(a.ItemID)
		}
	case ActionSetFlag:
		if ctx.SetFlag != nil {
			ctx.SetFlag(a.OnTarget, a.Flag, true)
		}
	case ActionClearFlag:
		if ctx.SetFlag != nil {
			ctx.SetFlag(a.OnTarget, a.Flag, false)
		}
	case ActionSetNumFlag:
		if ctx.SetNumFlag != nil {
			ctx.SetNumFlag(a.OnTarget, a.Flag, a.FlagVal)
		}
	case ActionClearNumFlag:
		if ctx.SetNumFlag != nil {
			ctx.SetNumFlag(a.OnTarget, a.Flag, -a.FlagVal)
		}
	case ActionShowMerchant:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("merchant", a.Merchant)
		}
	case ActionStartConversation:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("conversation", a.ConversationID)
		}
	case ActionSayLine:
		if ctx.SayLine != nil {
			ctx.SayLine(ctx.Target, a.Text)
		}
	case ActionShowCutscene:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("cutscene", a.CutsceneID)
		}
	case ActionFireScript:
		if ctx.FireScript != nil {
			parent, target := 0, 0
			ctx.FireScript(a.ScriptID, a.ScriptFunc, parent, target)
		}
	case ActionGameOverWindow:
		if ctx.GameOver != nil {
			ctx.GameOver(a.Text)
		}
	case ActionScrollView:
		if ctx.ScrollView != nil {
			ctx.ScrollView(a.X, a.Y)
		}
	case ActionScreenShake:
		if ctx.ScreenShake != nil {
			ctx.ScreenShake()
		}
	case ActionLoadModule:
		if ctx.LoadModule != nil {
			ctx.LoadModule(a.Module)
		}
	case ActionShowConfirm:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("confirm", a.Dialog)
		}
	case ActionShowMenu:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("menu", a.Dialog)
		}
	case ActionFadeOutIn:
		if ctx.ShowDialog != nil {
			ctx.ShowDialog("fade", nil)
		}
	case ActionQuestState:
		if ctx.SetQuestState != nil {
			ctx.SetQuestState(a.Quest, a.QuestEntry, a.QuestState)
		}
	case ActionNotQuestState:
		if ctx.SetQuestState != nil {
			ctx.SetQuestState(a.Quest, a.QuestEntry, "")
		}
	}
}
