package world

import "testing"

func TestPlayerCoinsActionAdjustsStash(t *testing.T) {
	party := NewPartyStash()
	ctx := &TriggerContext{Party: party}

	OnTrigger{Kind: ActionPlayerCoins, Coins: 50}.Apply(ctx)
	if party.Coins != 50 {
		t.Fatalf("expected 50 coins, got %d", party.Coins)
	}

	OnTrigger{Kind: ActionPlayerCoins, Coins: -200}.Apply(ctx)
	if party.Coins != 0 {
		t.Fatalf("expected coins to floor at 0, got %d", party.Coins)
	}
}

func TestPlayerAbilityActionGrants(t *testing.T) {
	party := NewPartyStash()
	ctx := &TriggerContext{Party: party}

	OnTrigger{Kind: ActionPlayerAbility, AbilityID: "fireball"}.Apply(ctx)

	if !party.HasAbility("fireball") {
		t.Fatalf("expected fireball to be granted")
	}
}

func TestSetFlagActionInvokesHookWithOnTarget(t *testing.T) {
	var gotOnTarget bool
	var gotFlag string
	var gotVal bool
	ctx := &TriggerContext{SetFlag: func(onTarget bool, flag string, value bool) {
		gotOnTarget, gotFlag, gotVal = onTarget, flag, value
	}}

	OnTrigger{Kind: ActionSetFlag, OnTarget: true, Flag: "met_elder"}.Apply(ctx)

	if !gotOnTarget || gotFlag != "met_elder" || !gotVal {
		t.Fatalf("unexpected hook call: onTarget=%v flag=%s val=%v", gotOnTarget, gotFlag, gotVal)
	}

	OnTrigger{Kind: ActionClearFlag, Flag: "met_elder"}.Apply(ctx)
	if gotVal {
		t.Fatalf("expected clear-flag action to call hook with false")
	}
}

func TestActionsWithNilHooksDoNotPanic(t *testing.T) {
	ctx := &TriggerContext{}
	actions := []OnTrigger{
		{Kind: ActionBlockUI, Millis: 500},
		{Kind: ActionCheckEndTurn},
		{Kind: ActionShowMerchant},
		{Kind: ActionFireScript, ScriptID: "s", ScriptFunc: "f"},
		{Kind: ActionQuestState, Quest: "main"},
	}
	for _, a := range actions {
		a.Apply(ctx)
	}
}
