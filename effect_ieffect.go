// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// IEffectEffect attaches a named status effect to the current target,
// linking it under any active concentration parent so the parent's removal
// cascades to it.
type IEffectEffect struct {
	metaNode
	Name        string
	Duration    string
	EffectsExpr string
	TickOnEnd   bool
}

// StatusEffectFactory constructs a StatusEffect for an IEffect node; the
// reference implementation lives in package statuseffect.
type StatusEffectFactory interface {
	New(name string, duration int, effects string, tickOnEnd bool) StatusEffect
}

func (ie *IEffectEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := ie.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "IEffect")
	}

	duration, err := ie.resolveDuration(ctx)
	if err != nil {
		return nil, err
	}

	effectsText, err := ctx.ParseAnnostr(ie.EffectsExpr)
	if err != nil {
		return nil, rpgerrWrapNode(err, "IEffect")
	}

	var effect StatusEffect
	if ctx.Effects != nil {
		effect = ctx.Effects.New(ie.Name, duration, effectsText, ie.TickOnEnd)
		if parent := ctx.ParentConcentration(); parent != nil {
			effect.SetParentID(parent.ID())
		}
		if t := ctx.CurrentTarget(); t != nil {
			t.AddStatusEffect(effect)
		}
	}

	label := ie.Name
	if effect != nil {
		label = effect.String()
	}
	ctx.EffectQueue(fmt.Sprintf("**Effect**: %s", label))
	return nil, nil
}

func (ie *IEffectEffect) resolveDuration(ctx *AutomationContext) (int, error) {
	if v, ok := ctx.Args.Last("dur"); ok {
		if n, err := parseInt(v); err == nil {
			return n, nil
		}
	}
	if n, err := parseInt(ie.Duration); err == nil {
		return n, nil
	}
	parsed, err := ctx.ParseAnnostr(ie.Duration)
	if err != nil {
		return 0, rpgerrWrapNode(err, "IEffect")
	}
	n, err := parseInt(parsed)
	if err != nil {
		if ctx.Roll == nil || !diceGroup.MatchString(parsed) {
			return 0, ErrInvalidArgument(fmt.Sprintf("ieffect duration %q is not numeric", ie.Duration))
		}
		roll, rerr := ctx.Roll.Roll(parsed, "Duration")
		if rerr != nil {
			return 0, rpgerrWrapNode(rerr, "IEffect")
		}
		return roll.Total(), nil
	}
	return n, nil
}
