// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "context"

// ArgBag is the external parsed CLI-like token stream an invoker supplies
// alongside an automation run (e.g. "-adv -b 2 -rr 3"). Ephemeral reads
// remove the value from the bag so a later sibling effect does not re-see
// it — mirrored here as "Take*" methods rather than a separate flag.
type ArgBag interface {
	// Last returns the most recently supplied value for key, or ok=false.
	Last(key string) (string, bool)
	// TakeLast is Last, but removes that most recent value from the bag
	// (ephemeral read); earlier values for key remain.
	TakeLast(key string) (string, bool)
	// LastInt parses Last as an integer, returning fallback on absence or parse failure.
	LastInt(key string, fallback int) int
	// TakeInt is LastInt, but ephemeral.
	TakeInt(key string, fallback int) int
	// LastBool reports whether key was supplied as a boolean flag.
	LastBool(key string) bool
	// TakeBool is LastBool, but ephemeral.
	TakeBool(key string) bool
	// Join concatenates the non-empty values supplied for key with sep;
	// ok=false if there are none.
	Join(key, sep string) (string, bool)
	// TakeJoin is Join, but ephemeral.
	TakeJoin(key, sep string) (string, bool)
	// All returns every value supplied for key, in supply order.
	All(key string) []string
	// TakeAll is All, but ephemeral.
	TakeAll(key string) []string
}

// Evaluator substitutes "{name}" placeholders from extraBindings into
// expression and evaluates any embedded arithmetic, returning the final
// string. It is the only consumer of meta-variables.
type Evaluator interface {
	Parse(expression string, extraBindings map[string]string) (string, error)
}

// CritKind reports whether a die roll landed as a critical hit, a fumble,
// or neither, per the natural-20 / natural-1 inspection of the d20 group.
type CritKind int

// Critical-hit classifications returned by DiceRoll.Crit.
const (
	CritNone CritKind = iota
	CritNatural20
	CritNatural1
)

// DiceRoll is the outcome of rolling a dice expression through a DiceRoller.
type DiceRoll interface {
	// Total is the summed numeric result.
	Total() int
	// Result is an inline-rendered description suitable for a report line.
	Result() string
	// Crit classifies the roll's d20 group, if any.
	Crit() CritKind
	// RawFaces returns the individual face values rolled for group index i.
	RawFaces(group int) []int
	// Consolidated re-renders the already-rolled faces as a literal,
	// re-displayable expression (used to stash a Roll node's result as a
	// meta-variable without re-rolling it).
	Consolidated() string
}

// DiceRoller rolls a dice expression string honoring kh/kl/ro/mi keep,
// reroll, and minimum-per-die modifiers, plus trailing "[type]" damage-type
// annotations consumed by resistance rewriting.
type DiceRoller interface {
	Roll(expr string, label string) (DiceRoll, error)
}

// SaveAbility names one of the six canonical ability saves.
type SaveAbility string

// The six canonical ability saves, in fixed resolution order.
const (
	SaveStrength     SaveAbility = "strengthSave"
	SaveDexterity    SaveAbility = "dexteritySave"
	SaveConstitution SaveAbility = "constitutionSave"
	SaveIntelligence SaveAbility = "intelligenceSave"
	SaveWisdom       SaveAbility = "wisdomSave"
	SaveCharisma     SaveAbility = "charismaSave"
)

// AllSaveAbilities lists the six canonical saves in match-order, used by
// InvalidSaveType substring resolution.
var AllSaveAbilities = []SaveAbility{
	SaveStrength, SaveDexterity, SaveConstitution,
	SaveIntelligence, SaveWisdom, SaveCharisma,
}

// Abbrev returns the three-letter uppercase abbreviation used in report lines.
func (s SaveAbility) Abbrev() string {
	str := string(s)
	if len(str) < 3 {
		return str
	}
	up := make([]byte, 3)
	for i := 0; i < 3; i++ {
		c := str[i]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		up[i] = c
	}
	return string(up)
}

// ResistSet groups a target's four disjoint damage-type classifications.
type ResistSet struct {
	Resist  []string
	Immune  []string
	Vuln    []string
	Neutral []string
}

// StatusEffect is an attached status effect as produced by an IEffect node.
// Concentration linkage is a parent-id back-reference, never an owning
// pointer, so a parent's removal can look up and cascade to children
// without the engine holding a reference cycle.
type StatusEffect interface {
	Name() string
	ID() string
	ParentID() string
	SetParentID(id string)
	String() string
}

// Target is the minimal shape the engine requires of a real (non-simple)
// target. Combatant and Character both satisfy it through the broader
// capability interfaces below, checked with type assertions exactly where
// the original probed attributes with hasattr.
type Target interface {
	GetName() string
}

// hasAC is satisfied by targets that expose an armor class.
type hasAC interface {
	AC() *int
}

// hasSaves is satisfied by targets that can roll an ability save.
type hasSaves interface {
	SaveDice(ability SaveAbility, baseAdv int) (string, error)
}

// hasResists is satisfied by targets that carry damage-type classifications.
type hasResists interface {
	Resists() ResistSet
}

// hasActiveEffects is satisfied by targets that can report attached
// effect-bonus strings by kind (e.g. "b" for attack bonus, "d" for damage).
type hasActiveEffects interface {
	ActiveEffects(kind string) []string
}

// hasAddEffect is satisfied by targets that can have a StatusEffect attached.
type hasAddEffect interface {
	AddEffect(effect StatusEffect)
}

// hasHP is satisfied by targets with numeric hit points (Combatant-shaped).
type hasHP interface {
	HP() *int
	ModHP(delta int, overheal bool)
	HPString(hide bool) string
	IsConcentrating() bool
	Controller() (userID string, isPrivate bool)
}

// hasCharacterHP is satisfied by player-character targets that track hit
// points through a narrower Character-shaped surface (no concentration).
type hasCharacterHP interface {
	ModifyHP(delta int)
	HPString(hide bool) string
}

// hasTempHP is satisfied by targets that can have their temporary HP
// replaced (not added to).
type hasTempHP interface {
	SetTempHP(amount int)
}

// Spell is the minimal caster-action record the engine needs: a base level
// (for cast-level comparisons and cantrip scaling). Default attack bonus and
// save DC come from the Caster, not from the Spell.
type Spell struct {
	Level int
}

// Caster is the minimal shape the engine requires of whoever is casting or
// attacking: a spellcasting level (for cantrip scaling) and default attack
// bonus / save DC lookups.
type Caster interface {
	core_Entity
	SpellAttackBonus() (int, bool)
	SpellSaveDC() (int, bool)
	CasterLevel() int
}

// hasCombatDefaults is satisfied by casters whose own features override the
// invoker-supplied reroll/critical-threshold arguments when present (e.g. a
// racial "reroll 1s" trait, a class feature that crits on 19-20).
type hasCombatDefaults interface {
	RerollDefault() (int, bool)
	CritonDefault() (int, bool)
}

// core_Entity mirrors github.com/KirkDiggler/rpg-toolkit/core.Entity's two
// accessors without importing it here, so this file stays dependency-free;
// the reference Combatant/Character in package combatant embed the real
// core.Entity.
type core_Entity interface {
	GetID() string
	GetType() string
}

// ResistanceRewriter rewrites a dice expression whose terms carry trailing
// "[type]" damage-type annotations into an expression reflecting ×0 / ×½ /
// ×2 / ×1 arithmetic for immune / resist / vuln / neutral types.
type ResistanceRewriter interface {
	Rewrite(expr string, resist, immune, vuln, neutral []string) string
}

// ChatTransport carries the final report to its destinations: the embed
// itself (owned by the caller) and the per-user private-message bursts
// accumulated on the context.
type ChatTransport interface {
	// SendPM delivers lines to a user, prefixed by an optional title.
	// Implementations must swallow delivery failures per §5/§7 — SendPM's
	// own error return is used only for logging by the caller, never to
	// abort the run.
	SendPM(ctx context.Context, userID string, title string, lines []string) error
}
