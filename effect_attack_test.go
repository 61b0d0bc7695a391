// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "testing"

// attackFakeRoll is a scripted DiceRoll for white-box AttackEffect tests.
type attackFakeRoll struct {
	total int
	crit  CritKind
	faces []int
}

func (f attackFakeRoll) Total() int     { return f.total }
func (f attackFakeRoll) Result() string { return "rolled" }
func (f attackFakeRoll) Crit() CritKind { return f.crit }
func (f attackFakeRoll) RawFaces(i int) []int {
	if i == 0 {
		return f.faces
	}
	return nil
}
func (f attackFakeRoll) Consolidated() string { return "rolled" }

type attackFakeRoller struct {
	rolls []attackFakeRoll
	exprs []string
}

func (r *attackFakeRoller) Roll(expr, label string) (DiceRoll, error) {
	r.exprs = append(r.exprs, expr)
	next := r.rolls[0]
	r.rolls = r.rolls[1:]
	return next, nil
}

func TestResolveOutcomeForcedHitSkipsRoll(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["hit"] = ""
	roller := &attackFakeRoller{}
	ctx.Roll = roller

	a := &AttackEffect{}
	outcome, line, err := a.resolveOutcome(ctx, 5)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeHit || line != "**Hit!**" {
		t.Fatalf("got outcome=%v line=%q, want forced hit", outcome, line)
	}
	if len(roller.exprs) != 0 {
		t.Fatal("a forced hit must not roll at all")
	}
}

func TestResolveOutcomeForcedMissSkipsRoll(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["miss"] = ""
	ctx.Roll = &attackFakeRoller{}

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 5)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeMiss {
		t.Fatalf("got outcome=%v, want forced miss", outcome)
	}
}

func TestResolveOutcomeForcedCritSkipsRoll(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["crit"] = ""
	roller := &attackFakeRoller{}
	ctx.Roll = roller

	a := &AttackEffect{}
	outcome, line, err := a.resolveOutcome(ctx, 5)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeCrit || line != "**Hit!**" {
		t.Fatalf("got outcome=%v line=%q, want a forced crit with no roll", outcome, line)
	}
	if len(roller.exprs) != 0 {
		t.Fatal("a forced crit must not roll at all")
	}
}

func TestResolveOutcomeCritonComparesD20FaceNotTotal(t *testing.T) {
	ctx := newTestContext()
	// d20 face 15 plus a generous bonus pushes the rendered total past 20,
	// but the crit threshold must compare the face alone.
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 21, crit: CritNone, faces: []int{15}}}}

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 6)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeHit {
		t.Fatalf("got outcome=%v, want a plain hit: d20 face 15 must not satisfy the default criton of 20", outcome)
	}
}

func TestResolveOutcomeCritonSatisfiedByD20FaceAlone(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["criton"] = "18"
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 19, crit: CritNone, faces: []int{18}}}}

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 1)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeCrit {
		t.Fatalf("got outcome=%v, want crit: d20 face 18 meets criton 18", outcome)
	}
}

func TestResolveOutcomeNaturalTwentyAlwaysCrits(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 25, crit: CritNatural20}}}

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 5)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeCrit {
		t.Fatalf("got outcome=%v, want crit on natural 20", outcome)
	}
}

func TestResolveOutcomeNaturalOneAlwaysMisses(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 19, crit: CritNatural1}}}

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 18)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeMiss {
		t.Fatalf("got outcome=%v, want miss on natural 1 even though total beats AC", outcome)
	}
}

func TestResolveOutcomeUnknownACAlwaysHits(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 1, crit: CritNone}}}
	at := NewNamedTarget("Shade") // simple target, AC unknown
	restore := ctx.bindTarget(at)
	defer restore()

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 0)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeHit {
		t.Fatalf("got outcome=%v, want hit when AC is unknown", outcome)
	}
}

func TestResolveOutcomeMissesBelowKnownAC(t *testing.T) {
	ctx := newTestContext()
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 10, crit: CritNone}}}
	at := NewAutomationTarget(&fakeHPTarget{name: "Orc", ac: 15})
	restore := ctx.bindTarget(at)
	defer restore()

	a := &AttackEffect{}
	outcome, _, err := a.resolveOutcome(ctx, 0)
	if err != nil {
		t.Fatalf("resolveOutcome failed: %v", err)
	}
	if outcome != outcomeMiss {
		t.Fatalf("got outcome=%v, want miss: total 10 < AC 15", outcome)
	}
}

func TestResolveBonusPriorityExplicitExpressionWins(t *testing.T) {
	ctx := newTestContext()
	a := &AttackEffect{BonusExpr: "7"}
	got, err := a.resolveBonus(ctx)
	if err != nil {
		t.Fatalf("resolveBonus failed: %v", err)
	}
	if got != 7 {
		t.Fatalf("resolveBonus = %d, want 7 from the explicit expression", got)
	}
}

func TestResolveBonusFallsBackToContextOverride(t *testing.T) {
	ctx := newTestContext()
	ctx.SetAttackBonusOverride(4)
	a := &AttackEffect{}
	got, err := a.resolveBonus(ctx)
	if err != nil {
		t.Fatalf("resolveBonus failed: %v", err)
	}
	if got != 4 {
		t.Fatalf("resolveBonus = %d, want 4 from the context override", got)
	}
}

func TestResolveBonusErrorsWithNoSourceAtAll(t *testing.T) {
	ctx := newTestContext()
	a := &AttackEffect{}
	if _, err := a.resolveBonus(ctx); err == nil {
		t.Fatal("expected ErrNoAttackBonus with no expression, override, caster, or -b extra")
	}
}

func TestResolveBonusAllowsBareDashBExtra(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["b"] = "1d4"
	a := &AttackEffect{}
	got, err := a.resolveBonus(ctx)
	if err != nil {
		t.Fatalf("resolveBonus failed: %v", err)
	}
	if got != 0 {
		t.Fatalf("resolveBonus = %d, want 0 (the -b extra is folded in at roll time, not here)", got)
	}
}

func TestFormatD20Tiers(t *testing.T) {
	cases := map[int]string{
		advFlat:         "1d20",
		advAdvantage:    "2d20kh1",
		advDisadvantage: "2d20kl1",
		advElvish:       "3d20kh1",
	}
	for adv, want := range cases {
		if got := formatD20(adv, 0); got != want {
			t.Errorf("formatD20(%d,0) = %q, want %q", adv, got, want)
		}
	}
	if got := formatD20(advFlat, 2); got != "1d20ro2" {
		t.Errorf("formatD20 with reroll = %q, want %q", got, "1d20ro2")
	}
}

func TestResolveAdvantagePriorityElvishOverAdvOverDis(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["ea"] = ""
	ctx.Args.(*stubArgBag).last["adv"] = ""
	a := &AttackEffect{}
	if got := a.resolveAdvantage(ctx); got != advElvish {
		t.Fatalf("resolveAdvantage = %d, want advElvish when both -ea and -adv are set", got)
	}
}

func TestRunCritScopeIsRestoredAfterAttackCompletes(t *testing.T) {
	ctx := newTestContext()
	ctx.Args.(*stubArgBag).last["crit"] = ""
	ctx.SetAttackBonusOverride(0)
	ctx.Roll = &attackFakeRoller{rolls: []attackFakeRoll{{total: 1, crit: CritNone}}}

	var sawCritDuringHit bool
	hit := &noopEffect{fn: func(c *AutomationContext) (*int, error) {
		sawCritDuringHit = c.InCrit()
		return nil, nil
	}}
	a := &AttackEffect{Hit: []Effect{hit}}

	if _, err := a.Run(ctx); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !sawCritDuringHit {
		t.Fatal("expected InCrit to be true while the Hit children ran under a forced crit")
	}
	if ctx.InCrit() {
		t.Fatal("expected InCrit to be restored to false once Attack.Run returns")
	}
}
