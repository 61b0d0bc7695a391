// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

// AutomationContext is the mutable state threaded through a single
// Automation.Run. It is exclusively owned by that run: no field is
// accessed concurrently, and it is discarded once the report is built.
type AutomationContext struct {
	Invoker string
	Caster  Caster
	Spell   *Spell

	targets      []*AutomationTarget
	currentIndex int // -1 when no target bound
	current      *AutomationTarget
	self         *AutomationTarget

	Args    ArgBag
	Eval    Evaluator
	Roll    DiceRoller
	Resist  ResistanceRewriter
	Effects StatusEffectFactory

	abOverride *int
	dcOverride *int
	inCrit     bool

	parentConcentration StatusEffect

	metavars map[string]string

	section   []string // current unflushed buffer, Queue() target
	metaLines []string
	effect    []string
	footer    []string

	fields []reportField

	pms map[string][]string
}

type reportField struct {
	title  string
	body   string
	inline bool
}

// NewAutomationContext builds a fresh per-run context. targets may be
// empty, representing the implicit single absent target. self is the
// caster's own AutomationTarget representation, bound by the "self"
// selector; it may be nil when the caster cannot itself be targeted.
// Resist and Effects are optional and may be assigned on the returned
// context afterward; a run with no Damage/TempHP nodes needs no
// ResistanceRewriter, and one with no IEffect nodes needs no
// StatusEffectFactory.
func NewAutomationContext(invoker string, caster Caster, spell *Spell, targets []*AutomationTarget, self *AutomationTarget, args ArgBag, eval Evaluator, roller DiceRoller) *AutomationContext {
	if len(targets) == 0 {
		targets = []*AutomationTarget{newAbsentTarget()}
	}
	return &AutomationContext{
		Invoker:      invoker,
		Caster:       caster,
		Spell:        spell,
		targets:      targets,
		currentIndex: -1,
		self:         self,
		Args:         args,
		Eval:         eval,
		Roll:         roller,
		metavars:     map[string]string{},
		pms:          map[string][]string{},
	}
}

// Targets returns the full target list the automation was invoked against.
func (c *AutomationContext) Targets() []*AutomationTarget { return c.targets }

// Self returns the caster's own AutomationTarget representation, or nil.
func (c *AutomationContext) Self() *AutomationTarget { return c.self }

// CurrentTarget returns the target bound by the innermost Target node, or
// nil when none is bound.
func (c *AutomationContext) CurrentTarget() *AutomationTarget {
	if c.currentIndex < 0 {
		return nil
	}
	return c.current
}

// bindTarget sets the current target pointer, returning a restore function
// that callers must defer to clear it — mirroring the original's
// try/finally around self.target assignment.
func (c *AutomationContext) bindTarget(t *AutomationTarget) func() {
	prevIdx, prev := c.currentIndex, c.current
	c.currentIndex = 0
	c.current = t
	return func() {
		c.currentIndex = prevIdx
		c.current = prev
	}
}

// InCrit reports whether the run is currently inside a critical-hit branch.
func (c *AutomationContext) InCrit() bool { return c.inCrit }

// withCrit sets InCrit for the duration of fn, restoring the prior value
// afterward even if fn panics or errors — nested toggles nest correctly.
func (c *AutomationContext) withCrit(value bool, fn func() error) error {
	prev := c.inCrit
	c.inCrit = value
	defer func() { c.inCrit = prev }()
	return fn()
}

// CastLevel returns the invoker's "-l" override if present, else the
// spell's base level, else 0.
func (c *AutomationContext) CastLevel() int {
	if c.Args != nil {
		if lvl, ok := c.Args.Last("l"); ok {
			if n, err := parseInt(lvl); err == nil {
				return n
			}
		}
	}
	if c.Spell != nil {
		return c.Spell.Level
	}
	return 0
}

// AttackBonusOverride returns the context-level attack bonus override, if any.
func (c *AutomationContext) AttackBonusOverride() (int, bool) {
	if c.abOverride == nil {
		return 0, false
	}
	return *c.abOverride, true
}

// SetAttackBonusOverride installs a context-level attack bonus override.
func (c *AutomationContext) SetAttackBonusOverride(v int) { c.abOverride = &v }

// DCOverride returns the context-level save DC override, if any.
func (c *AutomationContext) DCOverride() (int, bool) {
	if c.dcOverride == nil {
		return 0, false
	}
	return *c.dcOverride, true
}

// SetDCOverride installs a context-level save DC override.
func (c *AutomationContext) SetDCOverride(v int) { c.dcOverride = &v }

// ParentConcentration returns the status effect new IEffect attachments
// should link under, if the run is resolving a concentration spell.
func (c *AutomationContext) ParentConcentration() StatusEffect { return c.parentConcentration }

// SetParentConcentration installs the concentration-parent status effect
// for the duration of the run.
func (c *AutomationContext) SetParentConcentration(e StatusEffect) { c.parentConcentration = e }

// MetaVar returns a previously stored meta-variable value.
func (c *AutomationContext) MetaVar(name string) (string, bool) {
	v, ok := c.metavars[name]
	return v, ok
}

// SetMetaVar stores a meta-variable value, overwriting any prior value
// under the same name within this run.
func (c *AutomationContext) SetMetaVar(name, value string) { c.metavars[name] = value }

// MetaVarNames returns every known meta-variable name, used by the
// heuristic substring check described in DESIGN.md.
func (c *AutomationContext) MetaVarNames() []string {
	names := make([]string, 0, len(c.metavars))
	for n := range c.metavars {
		names = append(names, n)
	}
	return names
}

// Queue appends text to the section currently being built; duplicates allowed.
func (c *AutomationContext) Queue(text string) {
	c.section = append(c.section, text)
}

// MetaQueue appends text to the meta section, deduplicated.
func (c *AutomationContext) MetaQueue(text string) {
	if !containsString(c.metaLines, text) {
		c.metaLines = append(c.metaLines, text)
	}
}

// EffectQueue appends text to the effect section, deduplicated.
func (c *AutomationContext) EffectQueue(text string) {
	if !containsString(c.effect, text) {
		c.effect = append(c.effect, text)
	}
}

// FooterQueue appends a footer line (duplicates allowed; footer lines are
// positional narration, e.g. repeated HP summaries across iterations).
func (c *AutomationContext) FooterQueue(text string) {
	c.footer = append(c.footer, text)
}

// PushField flushes the current section buffer as a named field. If
// toMeta, the buffered lines move into the meta section instead of
// becoming a field. An empty buffer is a no-op either way.
func (c *AutomationContext) PushField(title string, inline bool, toMeta bool) {
	if len(c.section) == 0 {
		return
	}
	if toMeta {
		for _, line := range c.section {
			c.MetaQueue(line)
		}
		c.section = nil
		return
	}
	c.fields = append(c.fields, reportField{title: title, body: joinLines(c.section), inline: inline})
	c.section = nil
}

// InsertMetaField flushes the accumulated meta lines as the first field of
// the final report, named "Meta".
func (c *AutomationContext) InsertMetaField() {
	if len(c.metaLines) == 0 {
		return
	}
	meta := reportField{title: "Meta", body: joinLines(c.metaLines), inline: false}
	c.fields = append([]reportField{meta}, c.fields...)
	c.metaLines = nil
}

// AddPM buckets a line for later private delivery to user.
func (c *AutomationContext) AddPM(user, message string) {
	c.pms[user] = append(c.pms[user], message)
}

// ParseAnnostr passes s through the external evaluator with the current
// meta-variable map as extra bindings.
func (c *AutomationContext) ParseAnnostr(s string) (string, error) {
	if c.Eval == nil {
		return s, nil
	}
	return c.Eval.Parse(s, c.metavars)
}

// CantripScale rewrites every NdM group inside dice by setting N to the
// caster-level tier (1/2/3/4 for <5/<11/<17/>=17) when the action is a
// spell; otherwise it returns dice unchanged.
func (c *AutomationContext) CantripScale(dice string) string {
	if c.Spell == nil {
		return dice
	}
	return cantripScaleDice(dice, c.CasterLevelForScaling())
}

// CasterLevelForScaling resolves the caster level used for cantrip-scale
// tiering: always the caster's own level, independent of any "-l" up-cast
// override (cantrip scaling tracks the caster, not the cast).
func (c *AutomationContext) CasterLevelForScaling() int {
	if c.Caster != nil {
		return c.Caster.CasterLevel()
	}
	return 0
}
