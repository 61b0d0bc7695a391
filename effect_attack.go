// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import (
	"fmt"
	"strings"
)

// AttackEffect rolls an attack and dispatches to Hit or Miss children
// (or Hit-with-InCrit on a critical).
type AttackEffect struct {
	metaNode
	Hit       []Effect
	Miss      []Effect
	BonusExpr string
}

const (
	advDisadvantage = -1
	advFlat         = 0
	advAdvantage    = 1
	advElvish       = 2
)

func (a *AttackEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := a.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Attack")
	}

	bonus, err := a.resolveBonus(ctx)
	if err != nil {
		return nil, err
	}

	outcome, line, err := a.resolveOutcome(ctx, bonus)
	if err != nil {
		return nil, err
	}
	if line != "" {
		ctx.Queue(line)
	}

	switch outcome {
	case outcomeCrit:
		var total int
		err := ctx.withCrit(true, func() error {
			sum, err := runChildren(ctx, a.Hit)
			total = sum
			return err
		})
		if err != nil {
			return nil, err
		}
		return &total, nil
	case outcomeHit:
		sum, err := runChildren(ctx, a.Hit)
		if err != nil {
			return nil, err
		}
		return &sum, nil
	default: // outcomeMiss
		ctx.Queue("**Miss!**")
		sum, err := runChildren(ctx, a.Miss)
		if err != nil {
			return nil, err
		}
		return &sum, nil
	}
}

func runChildren(ctx *AutomationContext, children []Effect) (int, error) {
	var sum int
	for _, c := range children {
		dmg, err := c.Run(ctx)
		if err != nil {
			return 0, err
		}
		if dmg != nil {
			sum += *dmg
		}
	}
	return sum, nil
}

// resolveBonus resolves the attack bonus in priority order: explicit node
// expression > context override > caster spell attack bonus. The arg
// bag's "-b" extra is folded in separately at roll time, not here.
func (a *AttackEffect) resolveBonus(ctx *AutomationContext) (int, error) {
	if a.BonusExpr != "" {
		parsed, err := ctx.ParseAnnostr(a.BonusExpr)
		if err != nil {
			return 0, rpgerrWrapNode(err, "Attack")
		}
		n, err := parseInt(parsed)
		if err != nil {
			return 0, ErrAutomation(fmt.Sprintf("attack bonus %q did not evaluate to an integer", a.BonusExpr))
		}
		return n, nil
	}
	if v, ok := ctx.AttackBonusOverride(); ok {
		return v, nil
	}
	if ctx.Caster != nil {
		if v, ok := ctx.Caster.SpellAttackBonus(); ok {
			return v, nil
		}
	}
	if extra, ok := ctx.Args.Join("b", "+"); ok && extra != "" {
		// The "-b" extra alone satisfies the requirement; it is folded into
		// the roll expression later by resolveOutcome via TakeJoin.
		return 0, nil
	}
	return 0, ErrNoAttackBonus()
}

type attackOutcome int

const (
	outcomeMiss attackOutcome = iota
	outcomeHit
	outcomeCrit
)

func (a *AttackEffect) resolveOutcome(ctx *AutomationContext, bonus int) (attackOutcome, string, error) {
	if ctx.Args.TakeBool("hit") {
		return outcomeHit, "**Hit!**", nil
	}
	if ctx.Args.TakeBool("miss") {
		return outcomeMiss, "", nil
	}
	if ctx.Args.TakeBool("crit") {
		return outcomeCrit, "**Hit!**", nil
	}

	adv := a.resolveAdvantage(ctx)
	reroll := ctx.Args.TakeInt("reroll", 0)
	criton := ctx.Args.TakeInt("criton", 20)
	if defaults, ok := ctx.Caster.(hasCombatDefaults); ok {
		if r, ok := defaults.RerollDefault(); ok {
			reroll = r
		}
		if c, ok := defaults.CritonDefault(); ok {
			criton = c
		}
	}
	acOverride, hasACOverride := a.acOverride(ctx)

	extraBonus, _ := ctx.Args.TakeJoin("b", "+")
	if s := ctx.Self(); s != nil {
		if effects := s.ActiveEffects("b"); len(effects) > 0 {
			extraBonus = strings.Join(append([]string{extraBonus}, effects...), "+")
		}
	}

	d20 := formatD20(adv, reroll)
	expr := fmt.Sprintf("%s+%d", d20, bonus)
	if extraBonus != "" {
		expr = expr + "+" + extraBonus
	}

	result, err := ctx.Roll.Roll(expr, "Attack")
	if err != nil {
		return outcomeMiss, "", rpgerrWrapNode(err, "Attack")
	}
	line := fmt.Sprintf("**To Hit**: %s", result.Result())

	total := result.Total()
	natural := result.Crit()

	if d20Face(result.RawFaces(0), adv) >= criton {
		return outcomeCrit, line, nil
	}
	if natural == CritNatural20 {
		return outcomeCrit, line, nil
	}
	if natural == CritNatural1 {
		return outcomeMiss, line, nil
	}

	ac, known := acFor(ctx, acOverride, hasACOverride)
	if known && total < ac {
		return outcomeMiss, line, nil
	}
	return outcomeHit, line, nil
}

// d20Face picks the single face value the d20 group actually contributed
// to the roll, mirroring the keep-highest/keep-lowest selection formatD20
// encoded into the expression: highest of faces under advantage or elvish
// accuracy, lowest under disadvantage, the lone face otherwise.
func d20Face(faces []int, adv int) int {
	if len(faces) == 0 {
		return 0
	}
	best := faces[0]
	for _, f := range faces[1:] {
		if adv == advDisadvantage {
			if f < best {
				best = f
			}
		} else if f > best {
			best = f
		}
	}
	return best
}

func acFor(ctx *AutomationContext, override int, hasOverride bool) (int, bool) {
	if hasOverride {
		return override, true
	}
	if t := ctx.CurrentTarget(); t != nil {
		return t.AC()
	}
	return 0, false
}

func (a *AttackEffect) acOverride(ctx *AutomationContext) (int, bool) {
	v, ok := ctx.Args.Last("ac")
	if !ok {
		return 0, false
	}
	n, err := parseInt(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (a *AttackEffect) resolveAdvantage(ctx *AutomationContext) int {
	if ctx.Args.TakeBool("ea") {
		return advElvish
	}
	if ctx.Args.TakeBool("adv") {
		return advAdvantage
	}
	if ctx.Args.TakeBool("dis") {
		return advDisadvantage
	}
	return advFlat
}

// formatD20 renders the d20 portion of an attack roll for the given
// advantage state, suffixed with a reroll-once-below-N clause when reroll
// is positive.
func formatD20(adv, reroll int) string {
	var base string
	switch adv {
	case advAdvantage:
		base = "2d20kh1"
	case advElvish:
		base = "3d20kh1"
	case advDisadvantage:
		base = "2d20kl1"
	default:
		base = "1d20"
	}
	if reroll > 0 {
		base = fmt.Sprintf("%sro%d", base, reroll)
	}
	return base
}
