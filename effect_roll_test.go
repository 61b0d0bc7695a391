// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "testing"

type rollFakeRoll struct{ total int }

func (f rollFakeRoll) Total() int           { return f.total }
func (f rollFakeRoll) Result() string       { return "1d20(15)=15" }
func (f rollFakeRoll) Crit() CritKind       { return CritNone }
func (f rollFakeRoll) RawFaces(int) []int   { return nil }
func (f rollFakeRoll) Consolidated() string { return "1d20(15)" }

type rollFakeRoller struct {
	result rollFakeRoll
	err    error
	expr   string
}

func (r *rollFakeRoller) Roll(expr, label string) (DiceRoll, error) {
	r.expr = expr
	if r.err != nil {
		return nil, r.err
	}
	return r.result, nil
}

func TestRollEffectStoresMetaVar(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &rollFakeRoller{result: rollFakeRoll{total: 15}}

	r := &RollEffect{DiceExpr: "1d20", Name: "v"}
	dmg, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if dmg != nil {
		t.Fatalf("RollEffect must never contribute damage, got %v", dmg)
	}
	got, ok := ctx.MetaVar("v")
	if !ok || got != "1d20(15)" {
		t.Fatalf("MetaVar(v) = %q, %v, want the consolidated roll stored", got, ok)
	}
	if len(ctx.metaLines) != 1 {
		t.Fatalf("expected a meta line for a visible roll, got %v", ctx.metaLines)
	}
}

func TestRollEffectHiddenSkipsMetaLineAndExtras(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["d"] = "1d4"
	roller := &rollFakeRoller{result: rollFakeRoll{total: 15}}
	ctx.Roll = roller

	r := &RollEffect{DiceExpr: "1d20", Name: "v", Hidden: true}
	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(ctx.metaLines) != 0 {
		t.Fatalf("expected no meta line for a hidden roll, got %v", ctx.metaLines)
	}
	if roller.expr != "1d20" {
		t.Fatalf("hidden roll must not fold in -d extras, rolled %q", roller.expr)
	}
}

func TestRollEffectInvalidDiceExpressionErrors(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &rollFakeRoller{}

	r := &RollEffect{DiceExpr: "not dice at all", Name: "v"}
	if _, err := r.Run(ctx); err == nil {
		t.Fatal("expected ErrInvalidArgument for an expression with no dice group")
	}
}

func TestRollEffectFoldsExtraDamageWhenNotHidden(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["d"] = "1d4"
	roller := &rollFakeRoller{result: rollFakeRoll{total: 15}}
	ctx.Roll = roller

	r := &RollEffect{DiceExpr: "1d20", Name: "v"}
	if _, err := r.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if roller.expr != "1d20+1d4" {
		t.Fatalf("rolled %q, want the -d extra folded in", roller.expr)
	}
}
