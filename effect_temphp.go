// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// TempHPEffect rolls an amount and replaces (never adds to) the current
// target's temporary hit points.
type TempHPEffect struct {
	metaNode
	AmountExpr   string
	Higher       map[string]string
	CantripScale bool
}

func (th *TempHPEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := th.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "TempHP")
	}

	dice, substituted, err := substituteAndShortCircuit(ctx, th.AmountExpr)
	if err != nil {
		return nil, rpgerrWrapNode(err, "TempHP")
	}
	if substituted.skip {
		return nil, nil
	}

	dice = applyCantripAndUpcast(ctx, dice, th.CantripScale, th.Higher)
	if ctx.Args.TakeBool("max") {
		dice = applyMaxClamp(dice)
	}

	result, err := ctx.Roll.Roll(dice, "TempHP")
	if err != nil {
		return nil, rpgerrWrapNode(err, "TempHP")
	}

	total := result.Total()
	if total < 0 {
		total = 0
	}
	ctx.Queue(fmt.Sprintf("**Temp HP**: %s", result.Result()))

	if t := ctx.CurrentTarget(); t != nil {
		t.SetTempHP(total)
		if hp, ok := t.target.(hasHP); ok {
			ctx.FooterQueue(fmt.Sprintf("%s: %s", t.Name(), hp.HPString(false)))
		}
	}
	return nil, nil
}
