// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// DamageEffect rolls a dice expression, rewriting it through cantrip
// scaling, up-casting, critical doubling, and resistance arithmetic before
// applying the total to the current target.
type DamageEffect struct {
	metaNode
	DiceExpr     string
	Higher       map[string]string
	CantripScale bool
}

func (d *DamageEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := d.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Damage")
	}

	dice, substituted, err := substituteAndShortCircuit(ctx, d.DiceExpr)
	if err != nil {
		return nil, rpgerrWrapNode(err, "Damage")
	}
	if substituted.skip {
		return nil, nil
	}

	dice = applyCantripAndUpcast(ctx, dice, d.CantripScale, d.Higher)

	minDie := ctx.Args.TakeInt("mi", 0)
	if minDie > 0 {
		dice = applyMinimum(dice, minDie)
	}

	weapon := ctx.Spell == nil
	inCrit := ctx.InCrit()
	if inCrit {
		critdice := ctx.Args.TakeInt("critdice", 0)
		dice = applyCritDouble(dice, critdice, weapon)
	}

	if extra, ok := d.extraDamage(ctx, substituted.suppressFold); ok {
		if inCrit {
			extra = applyCritDouble(extra, 0, weapon)
		}
		dice = dice + "+" + extra
	}

	if inCrit {
		if c, ok := ctx.Args.TakeJoin("c", "+"); ok && c != "" {
			dice = dice + "+" + c
		}
	}

	if ctx.Args.TakeBool("max") {
		dice = applyMaxClamp(dice)
	}

	resist, immune, vuln, neutral := resolveResistOverrides(ctx)
	if ctx.Resist != nil {
		dice = ctx.Resist.Rewrite(dice, resist, immune, vuln, neutral)
	}

	result, err := ctx.Roll.Roll(dice, "Damage")
	if err != nil {
		return nil, rpgerrWrapNode(err, "Damage")
	}
	ctx.Queue(fmt.Sprintf("**Damage**: %s", result.Result()))

	total := result.Total()
	if t := ctx.CurrentTarget(); t != nil {
		t.Damage(ctx, total)
	}
	return &total, nil
}

// extraDamage resolves the "-d" additive term, folding in combatant-
// attached "d" effects, unless the meta-var short-circuit has already
// folded it upstream.
//
// TODO: the suppressFold signal is derived by re-scanning the dice string
// for a meta-variable substring rather than tracking which upstream node
// already consumed "-d"; a rename collision between a meta-var name and an
// unrelated token could misfire this check (see DESIGN.md).
func (d *DamageEffect) extraDamage(ctx *AutomationContext, suppressFold bool) (string, bool) {
	if suppressFold {
		return "", false
	}
	extra, ok := ctx.Args.TakeJoin("d", "+")
	if s := ctx.Self(); s != nil {
		if effects := s.ActiveEffects("d"); len(effects) > 0 {
			for _, e := range effects {
				if extra == "" {
					extra = e
				} else {
					extra = extra + "+" + e
				}
				ok = true
			}
		}
	}
	return extra, ok && extra != ""
}

type substitutionResult struct {
	skip         bool
	suppressFold bool
}

// substituteAndShortCircuit runs dice through the evaluator, and applies
// the meta-var short-circuit rule of §4.6/§4.9: when dice refers to any
// known meta-variable, the "-d" fold was already applied upstream; when it
// equals a meta-variable token exactly and the current target is simple,
// the roll itself is skipped (it's purely informational).
func substituteAndShortCircuit(ctx *AutomationContext, dice string) (string, substitutionResult, error) {
	names := ctx.MetaVarNames()
	suppress := isMeta(dice, names, false)
	strictMeta := isMeta(dice, names, true)

	substituted, err := ctx.ParseAnnostr(dice)
	if err != nil {
		return "", substitutionResult{}, err
	}

	skip := false
	if strictMeta {
		if t := ctx.CurrentTarget(); t == nil || t.IsSimple() {
			skip = true
		}
	}
	return substituted, substitutionResult{skip: skip, suppressFold: suppress}, nil
}

// applyCantripAndUpcast applies cantrip auto-scale (if marked) then the
// up-cast delta for the current cast level, in that order.
func applyCantripAndUpcast(ctx *AutomationContext, dice string, cantripScale bool, higher map[string]string) string {
	if cantripScale {
		dice = ctx.CantripScale(dice)
	}
	if higher != nil {
		level := ctx.CastLevel()
		baseLevel := 0
		if ctx.Spell != nil {
			baseLevel = ctx.Spell.Level
		}
		if level != baseLevel {
			if delta, ok := higher[fmt.Sprintf("%d", level)]; ok {
				dice = upcastDelta(dice, delta)
			}
		}
	}
	return dice
}

// resolveResistOverrides resolves each of the four damage-type
// classifications independently: an invoker-supplied "-resist"/"-immune"/
// "-vuln"/"-neutral" list replaces the target's own classification for
// that category entirely, it never merges with it. A category the
// invoker left unset falls back to whatever the target naturally reports.
func resolveResistOverrides(ctx *AutomationContext) (resist, immune, vuln, neutral []string) {
	resist = ctx.Args.TakeAll("resist")
	immune = ctx.Args.TakeAll("immune")
	vuln = ctx.Args.TakeAll("vuln")
	neutral = ctx.Args.TakeAll("neutral")

	t := ctx.CurrentTarget()
	if t == nil {
		return
	}
	set := t.Resists()
	if len(resist) == 0 {
		resist = set.Resist
	}
	if len(immune) == 0 {
		immune = set.Immune
	}
	if len(vuln) == 0 {
		vuln = set.Vuln
	}
	if len(neutral) == 0 {
		neutral = set.Neutral
	}
	return
}
