// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// AutomationTarget wraps one element of the target list passed into a run.
// IsSimple is true for an absent target or a bare name with no stats. On
// such a target AC, Resists and ActiveEffects report absence, and the HP and
// effect mutators do nothing; SaveDice is the one probe that returns an
// error (ErrTarget).
type AutomationTarget struct {
	name   string
	target Target // nil when absent
}

func newAbsentTarget() *AutomationTarget {
	return &AutomationTarget{name: ""}
}

// NewAutomationTarget wraps a real Target implementation.
func NewAutomationTarget(t Target) *AutomationTarget {
	if t == nil {
		return newAbsentTarget()
	}
	return &AutomationTarget{name: t.GetName(), target: t}
}

// NewNamedTarget wraps a bare name with no backing stats — a "simple" target.
func NewNamedTarget(name string) *AutomationTarget {
	return &AutomationTarget{name: name}
}

// IsSimple reports whether this target has no backing stats: either absent
// or a bare name.
func (t *AutomationTarget) IsSimple() bool { return t.target == nil }

// Name returns the display name, or "the target" when absent.
func (t *AutomationTarget) Name() string {
	if t.name == "" && t.target == nil {
		return "the target"
	}
	return t.name
}

// AC returns the target's armor class, if it exposes one.
func (t *AutomationTarget) AC() (int, bool) {
	ac, ok := t.target.(hasAC)
	if !ok {
		return 0, false
	}
	v := ac.AC()
	if v == nil {
		return 0, false
	}
	return *v, true
}

// Resists returns the target's damage-type classifications, empty when the
// target does not expose them.
func (t *AutomationTarget) Resists() ResistSet {
	r, ok := t.target.(hasResists)
	if !ok {
		return ResistSet{}
	}
	return r.Resists()
}

// SaveDice returns the target's save dice expression for ability (the
// caller rolls it), honoring baseAdv (+1 advantage, -1 disadvantage, 0
// flat, +2 elvish accuracy).
func (t *AutomationTarget) SaveDice(ability SaveAbility, baseAdv int) (string, error) {
	s, ok := t.target.(hasSaves)
	if !ok {
		return "", ErrTarget(fmt.Sprintf("%s has no saves", t.Name()))
	}
	return s.SaveDice(ability, baseAdv)
}

// ActiveEffects returns combatant-attached bonus strings of kind (e.g. "b"
// for to-hit, "d" for damage), empty when the target does not track them.
func (t *AutomationTarget) ActiveEffects(kind string) []string {
	e, ok := t.target.(hasActiveEffects)
	if !ok {
		return nil
	}
	return e.ActiveEffects(kind)
}

// AddStatusEffect attaches effect to the target, when it supports that.
func (t *AutomationTarget) AddStatusEffect(effect StatusEffect) {
	if e, ok := t.target.(hasAddEffect); ok {
		e.AddEffect(effect)
	}
}

// Damage applies amount to the target's hit points, mutating HP and
// queuing a concentration-check line into the target's own section when a
// positive reduction lands on a concentrating combatant (DC = max(ceil
// (amount/2), 10)). Only the HP summary goes to the footer. Healing
// (negative amount) never triggers the concentration check.
func (t *AutomationTarget) Damage(ctx *AutomationContext, amount int) {
	if hp, ok := t.target.(hasHP); ok {
		wasConcentrating := hp.IsConcentrating()
		hp.ModHP(-amount, false)
		ctx.FooterQueue(fmt.Sprintf("%s: %s", t.Name(), hp.HPString(false)))
		if amount > 0 && wasConcentrating {
			dc := ceilDiv(amount, 2)
			if dc < 10 {
				dc = 10
			}
			ctx.Queue(fmt.Sprintf("**Concentration**: DC %d", dc))
		}
		return
	}
	if ch, ok := t.target.(hasCharacterHP); ok {
		ch.ModifyHP(-amount)
		ctx.FooterQueue(fmt.Sprintf("%s: %s", t.Name(), ch.HPString(false)))
	}
}

// SetTempHP replaces (not adds to) the target's temporary hit points.
func (t *AutomationTarget) SetTempHP(amount int) {
	if amount < 0 {
		amount = 0
	}
	if th, ok := t.target.(hasTempHP); ok {
		th.SetTempHP(amount)
	}
}
