// Package resource loads, classifies, and merges the YAML content that
// describes every authored resource (themes, images, abilities, areas,
// tiles, and so on) across one or more content roots.
package resource

import "path/filepath"

// Kind classifies a loaded document by the top-level directory it was
// found under. The zero value, kindUnresolved, means "not yet
// classified" — the walk keeps descending through unclassified
// directories (e.g. "images") looking for a classified leaf
// (e.g. "images/animated").
type Kind string

const kindUnresolved Kind = ""

// kindSkip marks a directory whose contents are intentionally not YAML
// resources (Lua scripts, legacy theme trees handled elsewhere).
const kindSkip Kind = "skip"

const (
	KindTheme         Kind = "themes"
	KindFont          Kind = "fonts"
	KindAnimatedImage Kind = "images/animated"
	KindComposedImage Kind = "images/composed"
	KindSimpleImage   Kind = "images/simple"
	KindTimerImage    Kind = "images/timer"
	KindSpritesheet   Kind = "spritesheets"

	KindAbility       Kind = "abilities"
	KindAbilityList   Kind = "ability_lists"
	KindActor         Kind = "actors"
	KindAITemplate    Kind = "ai"
	KindArea          Kind = "areas"
	KindClass         Kind = "classes"
	KindConversation  Kind = "conversations"
	KindCutscene      Kind = "cutscenes"
	KindEncounter     Kind = "encounters"
	KindItem          Kind = "items"
	KindItemAdjective Kind = "item_adjectives"
	KindLootList      Kind = "loot_lists"
	KindProp          Kind = "props"
	KindQuest         Kind = "quests"
	KindRace          Kind = "races"
	KindSize          Kind = "sizes"
	KindTile          Kind = "tiles"
)

var dirKinds = map[string]Kind{
	"themes":          KindTheme,
	"fonts":           KindFont,
	"images/animated": KindAnimatedImage,
	"images/composed": KindComposedImage,
	"images/simple":   KindSimpleImage,
	"images/timer":    KindTimerImage,
	"spritesheets":    KindSpritesheet,

	"abilities":       KindAbility,
	"ability_lists":   KindAbilityList,
	"actors":          KindActor,
	"ai":              KindAITemplate,
	"areas":           KindArea,
	"classes":         KindClass,
	"conversations":   KindConversation,
	"cutscenes":       KindCutscene,
	"encounters":      KindEncounter,
	"items":           KindItem,
	"item_adjectives": KindItemAdjective,
	"loot_lists":      KindLootList,
	"props":           KindProp,
	"quests":          KindQuest,
	"races":           KindRace,
	"sizes":           KindSize,
	"tiles":           KindTile,

	"scripts": kindSkip,
	"theme":   kindSkip,
}

// kindFromRelPath classifies a path relative to a content root's top
// level, e.g. "images/animated" or "areas".
func kindFromRelPath(rel string) (Kind, bool) {
	k, ok := dirKinds[filepath.ToSlash(rel)]
	return k, ok
}
