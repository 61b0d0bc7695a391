// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package combatant

import (
	"testing"

	automation "github.com/KirkDiggler/automation-engine"
)

func intPtr(v int) *int { return &v }

func TestNewDefaultsSavesMap(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Goblin", MaxHP: 7})
	if c.GetID() != "c1" || c.GetType() != "npc" || c.GetName() != "Goblin" {
		t.Fatalf("identity fields not wired correctly: %+v", c)
	}
	if got := *c.HP(); got != 7 {
		t.Fatalf("HP() = %d, want MaxHP 7", got)
	}
}

func TestModHPDamageAbsorbsIntoTempHPFirst(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Wizard", MaxHP: 20})
	c.SetTempHP(5)
	c.ModHP(-3, false)
	if got := *c.HP(); got != 20 {
		t.Fatalf("HP() = %d, want 20 (damage fully absorbed by temp hp)", got)
	}
}

func TestModHPDamageSpillsPastTempHP(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Wizard", MaxHP: 20})
	c.SetTempHP(5)
	c.ModHP(-8, false)
	if got := *c.HP(); got != 17 {
		t.Fatalf("HP() = %d, want 17 (5 absorbed, 3 spills into real hp)", got)
	}
}

func TestModHPDamageClampsAtZero(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Goblin", MaxHP: 10})
	c.ModHP(-99, false)
	if got := *c.HP(); got != 0 {
		t.Fatalf("HP() = %d, want 0 (lethal damage clamps, never goes negative or no-ops)", got)
	}
}

func TestModHPHealingClampsAtMax(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Goblin", MaxHP: 10})
	c.ModHP(-4, false)
	c.ModHP(999, false)
	if got := *c.HP(); got != 10 {
		t.Fatalf("HP() = %d, want 10 (healing clamps at max)", got)
	}
}

func TestSetTempHPReplacesNotAdds(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Cleric", MaxHP: 20})
	c.SetTempHP(5)
	c.SetTempHP(3)
	if got := c.HPString(false); got != "20/20 (+3 temp)" {
		t.Fatalf("HPString() = %q, want the replaced value reflected, not 5+3", got)
	}
}

func TestHPStringHiddenBuckets(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Troll", MaxHP: 20})
	c.ModHP(-19, false)
	if got := c.HPString(true); got != "Critical" {
		t.Fatalf("HPString(hide) = %q, want Critical at 1/20", got)
	}
}

func TestAddEffectSetsConcentrationOnlyWhenUnparented(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Bard", MaxHP: 10})
	c.AddEffect(&fakeStatusEffect{})
	if !c.IsConcentrating() {
		t.Fatal("adding a root (unparented) effect should start concentration")
	}
}

func TestAddEffectWithParentDoesNotSetConcentration(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Bard", MaxHP: 10})
	c.AddEffect(&fakeStatusEffect{parentID: "some-parent"})
	if c.IsConcentrating() {
		t.Fatal("adding a linked (child) effect should not itself start concentration")
	}
}

func TestBreakConcentrationClears(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Bard", MaxHP: 10})
	c.AddEffect(&fakeStatusEffect{})
	c.BreakConcentration()
	if c.IsConcentrating() {
		t.Fatal("BreakConcentration should clear concentration state")
	}
}

func TestSaveDiceUnknownAbilityErrors(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Goblin", MaxHP: 10})
	if _, err := c.SaveDice(automation.SaveWisdom, 0); err == nil {
		t.Fatal("expected an error for a save ability the combatant has no modifier for")
	}
}

func TestSaveDiceAdvantageTiers(t *testing.T) {
	c := New(Config{
		ID: "c1", Type: "npc", Name: "Goblin", MaxHP: 10,
		Saves: map[automation.SaveAbility]int{automation.SaveDexterity: 4},
	})
	cases := map[int]string{
		0:  "1d20+4",
		1:  "2d20kh1+4",
		2:  "3d20kh1+4",
		-1: "2d20kl1+4",
	}
	for adv, want := range cases {
		got, err := c.SaveDice(automation.SaveDexterity, adv)
		if err != nil {
			t.Fatalf("SaveDice(%d) failed: %v", adv, err)
		}
		if got != want {
			t.Errorf("SaveDice(%d) = %q, want %q", adv, got, want)
		}
	}
}

func TestSpellAttackBonusAndSaveDCOptional(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Wizard", MaxHP: 10})
	if _, ok := c.SpellAttackBonus(); ok {
		t.Fatal("expected no spell attack bonus configured")
	}
	c2 := New(Config{ID: "c2", Type: "npc", Name: "Wizard", MaxHP: 10, SpellAttackBonus: intPtr(6), SpellSaveDC: intPtr(15)})
	if got, ok := c2.SpellAttackBonus(); !ok || got != 6 {
		t.Fatalf("SpellAttackBonus() = %d, %v, want 6, true", got, ok)
	}
	if got, ok := c2.SpellSaveDC(); !ok || got != 15 {
		t.Fatalf("SpellSaveDC() = %d, %v, want 15, true", got, ok)
	}
}

func TestCombatDefaultsOptional(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Halfling", MaxHP: 10})
	if _, ok := c.RerollDefault(); ok {
		t.Fatal("expected no reroll default configured")
	}
	c.SetCombatDefaults(intPtr(1), intPtr(19))
	if got, ok := c.RerollDefault(); !ok || got != 1 {
		t.Fatalf("RerollDefault() = %d, %v, want 1, true", got, ok)
	}
	if got, ok := c.CritonDefault(); !ok || got != 19 {
		t.Fatalf("CritonDefault() = %d, %v, want 19, true", got, ok)
	}
}

func TestActiveEffectsReturnsACopy(t *testing.T) {
	c := New(Config{ID: "c1", Type: "npc", Name: "Bard", MaxHP: 10})
	c.AddActiveBonus("b", "1d4")
	got := c.ActiveEffects("b")
	got[0] = "mutated"
	if again := c.ActiveEffects("b"); again[0] != "1d4" {
		t.Fatal("ActiveEffects must return a copy, mutation leaked into the combatant")
	}
}

func TestControllerReportsPrivacy(t *testing.T) {
	c := New(Config{ID: "c1", Type: "pc", Name: "Hero", MaxHP: 10, UserID: "u1", Private: true})
	uid, private := c.Controller()
	if uid != "u1" || !private {
		t.Fatalf("Controller() = %q, %v, want u1, true", uid, private)
	}
}

type fakeStatusEffect struct {
	parentID string
}

func (f *fakeStatusEffect) Name() string       { return "Fake" }
func (f *fakeStatusEffect) ID() string         { return "fake-1" }
func (f *fakeStatusEffect) ParentID() string   { return f.parentID }
func (f *fakeStatusEffect) SetParentID(string) {}
func (f *fakeStatusEffect) String() string     { return "Fake" }
