// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// TargetEffect binds ctx.CurrentTarget for the duration of its child list.
// Selector is one of "all", "each", "self", or a 1-based integer index.
type TargetEffect struct {
	metaNode
	Selector string
	Children []Effect
}

func (t *TargetEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := t.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Target")
	}

	targets, ok := t.resolveTargets(ctx)
	if !ok {
		return nil, nil
	}

	iterations := clampInt(ctx.Args.LastInt("rr", 1), 1, 25)

	for _, at := range targets {
		if _, err := t.runAgainst(ctx, at, iterations); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// resolveTargets expands the selector into the concrete targets this node
// binds against, in order. A false second return means "selector matched
// nothing, skip silently" (an out-of-range integer index).
func (t *TargetEffect) resolveTargets(ctx *AutomationContext) ([]*AutomationTarget, bool) {
	switch t.Selector {
	case "all", "each":
		return ctx.Targets(), true
	case "self":
		if ctx.Self() == nil {
			return nil, false
		}
		return []*AutomationTarget{ctx.Self()}, true
	default:
		idx, err := parseInt(t.Selector)
		if err != nil {
			return nil, false
		}
		targets := ctx.Targets()
		if idx < 1 || idx > len(targets) {
			return nil, false
		}
		return []*AutomationTarget{targets[idx-1]}, true
	}
}

// runAgainst executes the child list against at for the given iteration
// count, assembling the report per the four cases of §4.3.
func (t *TargetEffect) runAgainst(ctx *AutomationContext, at *AutomationTarget, iterations int) (int, error) {
	restore := ctx.bindTarget(at)
	defer restore()

	real := !at.IsSimple()

	if iterations <= 1 {
		sum, err := t.runChildrenOnce(ctx)
		if err != nil {
			return 0, err
		}
		if real {
			ctx.PushField(at.Name(), false, false)
		} else {
			ctx.PushField("", false, true)
		}
		return sum, nil
	}

	if real {
		return t.runMultiReal(ctx, at, iterations)
	}
	return t.runMultiSimple(ctx, iterations)
}

// runMultiReal is case 3: one field named after the target, containing
// every iteration's lines under a bold header, plus a trailing total.
func (t *TargetEffect) runMultiReal(ctx *AutomationContext, at *AutomationTarget, iterations int) (int, error) {
	header := "Iteration"
	if len(t.Children) == 1 {
		header = effectKind(t.Children[0])
	}

	var total int
	for i := 1; i <= iterations; i++ {
		ctx.Queue(fmt.Sprintf("__%s %d__", header, i))
		sum, err := t.runChildrenOnce(ctx)
		if err != nil {
			return 0, err
		}
		total += sum
	}
	if total != 0 {
		ctx.Queue(fmt.Sprintf("__Total Damage__: %d", total))
	}
	ctx.PushField(at.Name(), false, false)
	return total, nil
}

// runMultiSimple is case 4: each iteration becomes its own field titled
// "Iteration k", followed, when the summed damage is nonzero, by one inline
// "Total Damage" field.
func (t *TargetEffect) runMultiSimple(ctx *AutomationContext, iterations int) (int, error) {
	var total int
	for i := 1; i <= iterations; i++ {
		sum, err := t.runChildrenOnce(ctx)
		if err != nil {
			return 0, err
		}
		total += sum
		ctx.PushField(fmt.Sprintf("Iteration %d", i), false, false)
	}
	if total != 0 {
		ctx.Queue(fmt.Sprintf("%d", total))
		ctx.PushField("Total Damage", true, false)
	}
	return total, nil
}

func (t *TargetEffect) runChildrenOnce(ctx *AutomationContext) (int, error) {
	var sum int
	for _, child := range t.Children {
		dmg, err := child.Run(ctx)
		if err != nil {
			return 0, err
		}
		if dmg != nil {
			sum += *dmg
		}
	}
	return sum, nil
}
