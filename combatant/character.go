// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combatant

import (
	"fmt"
	"sync"

	automation "github.com/KirkDiggler/automation-engine"
)

// Character is a narrower Target than Combatant: a player character with
// plain integer hit points and no concentration tracking, satisfying only
// the engine's hasCharacterHP capability rather than the fuller hasHP one
// Combatant (an NPC/monster actor) exposes.
type Character struct {
	id   string
	typ  string
	name string

	mu      sync.RWMutex
	hp      int
	maxHP   int
	ac      *int
	saves   map[automation.SaveAbility]int
	resists automation.ResistSet
}

// CharacterConfig seeds a new Character.
type CharacterConfig struct {
	ID    string
	Type  string
	Name  string
	AC    int
	MaxHP int
	HP    int
	Saves map[automation.SaveAbility]int
}

// NewCharacter builds a Character from cfg.
func NewCharacter(cfg CharacterConfig) *Character {
	ac := cfg.AC
	hp := cfg.HP
	if hp == 0 {
		hp = cfg.MaxHP
	}
	saves := cfg.Saves
	if saves == nil {
		saves = map[automation.SaveAbility]int{}
	}
	return &Character{
		id:    cfg.ID,
		typ:   cfg.Type,
		name:  cfg.Name,
		hp:    hp,
		maxHP: cfg.MaxHP,
		ac:    &ac,
		saves: saves,
	}
}

// GetID implements core.Entity.
func (c *Character) GetID() string { return c.id }

// GetType implements core.Entity.
func (c *Character) GetType() string { return c.typ }

// GetName implements automation.Target.
func (c *Character) GetName() string { return c.name }

// AC implements the engine's hasAC capability.
func (c *Character) AC() *int { return c.ac }

// Resists implements the engine's hasResists capability.
func (c *Character) Resists() automation.ResistSet { return c.resists }

// SaveDice implements the engine's hasSaves capability.
func (c *Character) SaveDice(ability automation.SaveAbility, baseAdv int) (string, error) {
	c.mu.RLock()
	mod, ok := c.saves[ability]
	c.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("combatant: %s has no %s", c.name, ability)
	}
	d20 := "1d20"
	switch {
	case baseAdv >= 1:
		d20 = "2d20kh1"
	case baseAdv <= -1:
		d20 = "2d20kl1"
	}
	return fmt.Sprintf("%s+%d", d20, mod), nil
}

// ModifyHP implements the engine's hasCharacterHP capability: delta is a
// signed change, clamped to [0, maxHP].
func (c *Character) ModifyHP(delta int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hp += delta
	if c.hp < 0 {
		c.hp = 0
	}
	if c.hp > c.maxHP {
		c.hp = c.maxHP
	}
}

// HPString implements the engine's hasCharacterHP capability.
func (c *Character) HPString(hide bool) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if hide {
		return bucketedHP(c.hp, c.maxHP)
	}
	return fmt.Sprintf("%d/%d", c.hp, c.maxHP)
}
