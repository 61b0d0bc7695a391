// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package combatant implements the automation engine's Target and Caster
// contracts over rpg-toolkit's core.Entity and mechanics/resources, the
// same foundation the toolkit's own dnd5e rulebook builds combat actors on.
package combatant

import (
	"fmt"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/mechanics/resources"

	automation "github.com/KirkDiggler/automation-engine"
)

// Combatant is the reference Target/Caster: a full combat actor with AC,
// saves, resistances, hit points and temporary hit points (each tracked as
// a resources.Resource), attached status-effect bonus strings, and
// concentration state.
type Combatant struct {
	id      string
	typ     string
	name    string
	userID  string
	private bool

	mu sync.RWMutex

	ac      *int
	saves   map[automation.SaveAbility]int
	resists automation.ResistSet

	hp     *resources.SimpleResource
	tempHP *resources.SimpleResource

	concentrating bool
	effects       []automation.StatusEffect
	activeBonus   map[string][]string

	spellAttackBonus *int
	spellSaveDC      *int
	casterLevel      int

	rerollDefault *int
	critonDefault *int
}

// Config seeds a new Combatant.
type Config struct {
	ID      string
	Type    string
	Name    string
	UserID  string
	Private bool

	AC          int
	Saves       map[automation.SaveAbility]int
	Resists     automation.ResistSet
	MaxHP       int
	CasterLevel int

	SpellAttackBonus *int
	SpellSaveDC      *int
}

// New builds a Combatant from cfg, standing up its HP/TempHP resources.
func New(cfg Config) *Combatant {
	var owner core.Entity = entityRef{id: cfg.ID, typ: cfg.Type}

	ac := cfg.AC
	c := &Combatant{
		id:          cfg.ID,
		typ:         cfg.Type,
		name:        cfg.Name,
		userID:      cfg.UserID,
		private:     cfg.Private,
		ac:          &ac,
		saves:       cfg.Saves,
		resists:     cfg.Resists,
		casterLevel: cfg.CasterLevel,
		activeBonus: map[string][]string{},

		spellAttackBonus: cfg.SpellAttackBonus,
		spellSaveDC:      cfg.SpellSaveDC,

		hp: resources.NewSimpleResource(resources.SimpleResourceConfig{
			ID:      cfg.ID + "-hp",
			Type:    resources.ResourceTypeCustom,
			Owner:   owner,
			Key:     "hit_points",
			Current: cfg.MaxHP,
			Maximum: cfg.MaxHP,
		}),
		tempHP: resources.NewSimpleResource(resources.SimpleResourceConfig{
			ID:      cfg.ID + "-temp-hp",
			Type:    resources.ResourceTypeCustom,
			Owner:   owner,
			Key:     "temp_hp",
			Current: 0,
			Maximum: 1 << 30,
		}),
	}
	if c.saves == nil {
		c.saves = map[automation.SaveAbility]int{}
	}
	return c
}

// entityRef is the minimal core.Entity a Combatant's owned resources point
// back to, without the Combatant itself needing to satisfy core.Entity's
// exact method set ahead of its other embeddings.
type entityRef struct {
	id  string
	typ string
}

func (e entityRef) GetID() string   { return e.id }
func (e entityRef) GetType() string { return e.typ }

// GetID implements core.Entity.
func (c *Combatant) GetID() string { return c.id }

// GetType implements core.Entity.
func (c *Combatant) GetType() string { return c.typ }

// GetName implements automation.Target.
func (c *Combatant) GetName() string { return c.name }

// AC implements the engine's hasAC capability.
func (c *Combatant) AC() *int { return c.ac }

// Resists implements the engine's hasResists capability.
func (c *Combatant) Resists() automation.ResistSet { return c.resists }

// SaveDice implements the engine's hasSaves capability: a d20 roll against
// the ability's stored modifier, honoring baseAdv (+1 advantage, -1
// disadvantage, 0 flat, +2 elvish accuracy's extra d20).
func (c *Combatant) SaveDice(ability automation.SaveAbility, baseAdv int) (string, error) {
	c.mu.RLock()
	mod, ok := c.saves[ability]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("combatant: %s has no %s", c.name, ability)
	}

	var d20 string
	switch {
	case baseAdv >= 2:
		d20 = "3d20kh1"
	case baseAdv == 1:
		d20 = "2d20kh1"
	case baseAdv <= -1:
		d20 = "2d20kl1"
	default:
		d20 = "1d20"
	}
	return fmt.Sprintf("%s+%d", d20, mod), nil
}

// ActiveEffects implements the engine's hasActiveEffects capability,
// returning the bonus-expression strings attached under kind (e.g. "b" for
// to-hit bonuses contributed by a status effect).
func (c *Combatant) ActiveEffects(kind string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.activeBonus[kind]...)
}

// AddActiveBonus attaches a bonus expression under kind, for status-effect
// wiring outside the engine's own IEffect flow (e.g. a persistent aura).
func (c *Combatant) AddActiveBonus(kind, expr string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeBonus[kind] = append(c.activeBonus[kind], expr)
}

// AddEffect implements the engine's hasAddEffect capability.
func (c *Combatant) AddEffect(effect automation.StatusEffect) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.effects = append(c.effects, effect)
	if effect.ParentID() == "" {
		c.concentrating = true
	}
}

// Effects returns every status effect currently attached.
func (c *Combatant) Effects() []automation.StatusEffect {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]automation.StatusEffect(nil), c.effects...)
}

// HP implements the engine's hasHP capability.
func (c *Combatant) HP() *int {
	v := c.hp.Current()
	return &v
}

// ModHP implements the engine's hasHP capability: delta is a signed change
// (negative for damage, positive for healing). overheal has no effect:
// healing is always clamped at the HP maximum by the underlying resource.
func (c *Combatant) ModHP(delta int, overheal bool) {
	if delta < 0 {
		absorbed := delta
		temp := c.tempHP.Current()
		if temp > 0 {
			used := -delta
			if used > temp {
				used = temp
			}
			c.tempHP.SetCurrent(temp - used)
			absorbed += used
		}
		if absorbed < 0 {
			need := -absorbed
			if need > c.hp.Current() {
				need = c.hp.Current()
			}
			_ = c.hp.Consume(need)
		}
		return
	}
	_ = overheal // the toolkit resource already clamps Restore at its configured maximum
	c.hp.Restore(delta)
}

// HPString implements the engine's hasHP/hasCharacterHP capability.
func (c *Combatant) HPString(hide bool) string {
	if hide {
		return bucketedHP(c.hp.Current(), c.hp.Maximum())
	}
	if t := c.tempHP.Current(); t > 0 {
		return fmt.Sprintf("%d/%d (+%d temp)", c.hp.Current(), c.hp.Maximum(), t)
	}
	return fmt.Sprintf("%d/%d", c.hp.Current(), c.hp.Maximum())
}

func bucketedHP(current, max int) string {
	if max <= 0 {
		return "Unknown"
	}
	pct := current * 100 / max
	switch {
	case current <= 0:
		return "Defeated"
	case pct >= 100:
		return "Healthy"
	case pct >= 50:
		return "Injured"
	case pct >= 10:
		return "Bloodied"
	default:
		return "Critical"
	}
}

// IsConcentrating implements the engine's hasHP capability.
func (c *Combatant) IsConcentrating() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.concentrating
}

// BreakConcentration clears concentration state, e.g. after a failed
// concentration save resolved outside the engine's own run.
func (c *Combatant) BreakConcentration() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.concentrating = false
}

// Controller implements the engine's hasHP capability.
func (c *Combatant) Controller() (string, bool) { return c.userID, c.private }

// SetTempHP implements the engine's hasTempHP capability: replaces, never adds to.
func (c *Combatant) SetTempHP(amount int) {
	c.tempHP.SetCurrent(amount)
}

// SpellAttackBonus implements the engine's Caster capability.
func (c *Combatant) SpellAttackBonus() (int, bool) {
	if c.spellAttackBonus == nil {
		return 0, false
	}
	return *c.spellAttackBonus, true
}

// SpellSaveDC implements the engine's Caster capability.
func (c *Combatant) SpellSaveDC() (int, bool) {
	if c.spellSaveDC == nil {
		return 0, false
	}
	return *c.spellSaveDC, true
}

// CasterLevel implements the engine's Caster capability.
func (c *Combatant) CasterLevel() int { return c.casterLevel }

// SetCombatDefaults configures the engine's optional hasCombatDefaults
// capability: a class/race feature overriding invoker-supplied reroll and
// critical-threshold arguments.
func (c *Combatant) SetCombatDefaults(reroll, criton *int) {
	c.rerollDefault = reroll
	c.critonDefault = criton
}

// RerollDefault implements the engine's optional hasCombatDefaults capability.
func (c *Combatant) RerollDefault() (int, bool) {
	if c.rerollDefault == nil {
		return 0, false
	}
	return *c.rerollDefault, true
}

// CritonDefault implements the engine's optional hasCombatDefaults capability.
func (c *Combatant) CritonDefault() (int, bool) {
	if c.critonDefault == nil {
		return 0, false
	}
	return *c.critonDefault, true
}
