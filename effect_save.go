// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import (
	"fmt"
	"strings"
)

// SaveEffect resolves a saving throw and dispatches to Success or Fail.
type SaveEffect struct {
	metaNode
	Stat    string
	DCExpr  string
	Success []Effect
	Fail    []Effect
}

func (s *SaveEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := s.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Save")
	}

	dc, err := s.resolveDC(ctx)
	if err != nil {
		return nil, err
	}

	ability, err := s.resolveAbility(ctx)
	if err != nil {
		return nil, err
	}

	target := ctx.CurrentTarget()

	var success bool
	if target == nil || target.IsSimple() {
		ctx.MetaQueue(fmt.Sprintf("%s Save: Simple target, automatic failure.", ability.Abbrev()))
		success = false
	} else {
		ctx.MetaQueue(fmt.Sprintf("**DC**: %d", dc))
		success, err = s.rollAgainstTarget(ctx, target, ability, dc)
		if err != nil {
			return nil, err
		}
	}

	if success {
		sum, err := runChildren(ctx, s.Success)
		if err != nil {
			return nil, err
		}
		return &sum, nil
	}
	sum, err := runChildren(ctx, s.Fail)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

func (s *SaveEffect) rollAgainstTarget(ctx *AutomationContext, target *AutomationTarget, ability SaveAbility, dc int) (bool, error) {
	if ctx.Args.TakeBool("pass") {
		ctx.MetaQueue(fmt.Sprintf("%s Save: Automatic success!", ability.Abbrev()))
		return true, nil
	}
	if ctx.Args.TakeBool("fail") {
		ctx.MetaQueue(fmt.Sprintf("%s Save: Automatic failure!", ability.Abbrev()))
		return false, nil
	}

	adv := advFlat
	if ctx.Args.TakeBool("adv") {
		adv = advAdvantage
	} else if ctx.Args.TakeBool("dis") {
		adv = advDisadvantage
	}

	expr, err := target.SaveDice(ability, adv)
	if err != nil {
		return false, err
	}
	result, err := ctx.Roll.Roll(expr, ability.Abbrev()+" Save")
	if err != nil {
		return false, rpgerrWrapNode(err, "Save")
	}

	success := result.Total() >= dc
	suffix := "; Failure!"
	if success {
		suffix = "; Success!"
	}
	ctx.MetaQueue(fmt.Sprintf("%s Save: %s%s", ability.Abbrev(), result.Result(), suffix))
	return success, nil
}

func (s *SaveEffect) resolveDC(ctx *AutomationContext) (int, error) {
	if v, ok := ctx.Args.Last("dc"); ok {
		if n, err := parseInt(v); err == nil {
			return n, nil
		}
	}
	if s.DCExpr != "" {
		parsed, err := ctx.ParseAnnostr(s.DCExpr)
		if err != nil {
			return 0, rpgerrWrapNode(err, "Save")
		}
		n, err := parseInt(parsed)
		if err != nil {
			return 0, ErrAutomation(fmt.Sprintf("save DC %q did not evaluate to an integer", s.DCExpr))
		}
		return n, nil
	}
	if v, ok := ctx.DCOverride(); ok {
		return v, nil
	}
	if ctx.Caster != nil {
		if v, ok := ctx.Caster.SpellSaveDC(); ok {
			return v, nil
		}
	}
	return 0, ErrNoSpellDC()
}

func (s *SaveEffect) resolveAbility(ctx *AutomationContext) (SaveAbility, error) {
	stat := s.Stat
	if v, ok := ctx.Args.Last("save"); ok && v != "" {
		stat = v
	}
	lower := strings.ToLower(stat)
	for _, a := range AllSaveAbilities {
		if strings.Contains(strings.ToLower(string(a)), lower) {
			return a, nil
		}
	}
	return "", ErrInvalidSaveType(stat)
}
