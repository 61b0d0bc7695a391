// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// RollEffect is a pure meta-variable producer: it rolls an expression and
// stores the consolidated result under Name for later "{name}" substitution.
type RollEffect struct {
	metaNode
	DiceExpr     string
	Name         string
	Higher       map[string]string
	CantripScale bool
	Hidden       bool
}

func (r *RollEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := r.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Roll")
	}

	dice, err := ctx.ParseAnnostr(r.DiceExpr)
	if err != nil {
		return nil, rpgerrWrapNode(err, "Roll")
	}
	dice = applyCantripAndUpcast(ctx, dice, r.CantripScale, r.Higher)

	if !r.Hidden {
		if minDie := ctx.Args.TakeInt("mi", 0); minDie > 0 {
			dice = applyMinimum(dice, minDie)
		}
		if extra, ok := ctx.Args.TakeJoin("d", "+"); ok && extra != "" {
			dice = dice + "+" + extra
		}
	}
	if ctx.Args.TakeBool("max") {
		dice = applyMaxClamp(dice)
	}

	if !diceGroup.MatchString(dice) {
		return nil, ErrInvalidArgument(fmt.Sprintf("roll %q parsed no dice", r.DiceExpr))
	}

	result, err := ctx.Roll.Roll(dice, r.Name)
	if err != nil {
		return nil, rpgerrWrapNode(err, "Roll")
	}

	ctx.SetMetaVar(r.Name, result.Consolidated())
	if !r.Hidden {
		ctx.MetaQueue(fmt.Sprintf("%s: %s", r.Name, result.Result()))
	}
	return nil, nil
}
