package world

// PartyStash is the player's persistent inventory, coin purse, and
// membership roster — state that survives area transitions and is
// what OnTrigger actions like PlayerCoins/PartyMember/PartyItem mutate.
type PartyStash struct {
	Coins int

	MemberIDs []string
	AbilityIDs map[string]bool
	ItemCounts map[string]int

	Flags    map[string]bool
	NumFlags map[string]int
}

// NewPartyStash builds an empty stash.
func NewPartyStash() *PartyStash {
	return &PartyStash{
		AbilityIDs: make(map[string]bool),
		ItemCounts: make(map[string]int),
		Flags:      make(map[string]bool),
		NumFlags:   make(map[string]int),
	}
}

func (p *PartyStash) GrantAbility(id string) { p.AbilityIDs[id] = true }
func (p *PartyStash) HasAbility(id string) bool { return p.AbilityIDs[id] }

func (p *PartyStash) AdjustCoins(delta int) {
	p.Coins += delta
	if p.Coins < 0 {
		p.Coins = 0
	}
}

func (p *PartyStash) AddMember(entityID string) {
	for _, id := range p.MemberIDs {
		if id == entityID {
			return
		}
	}
	p.MemberIDs = append(p.MemberIDs, entityID)
}

func (p *PartyStash) AddItem(itemID string) { p.ItemCounts[itemID]++ }

func (p *PartyStash) SetFlag(flag string, value bool) {
	if value {
		p.Flags[flag] = true
	} else {
		delete(p.Flags, flag)
	}
}

func (p *PartyStash) AdjustNumFlag(flag string, delta int) {
	p.NumFlags[flag] += delta
	if p.NumFlags[flag] == 0 {
		delete(p.NumFlags, flag)
	}
}
