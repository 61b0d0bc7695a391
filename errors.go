// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import (
	"fmt"

	"github.com/KirkDiggler/rpg-toolkit/rpgerr"
)

// ErrNoAttackBonus is returned when an Attack node has neither an explicit
// bonus expression, a context override, a caster spell attack bonus, nor a
// "-b" extra in the argument bag.
func ErrNoAttackBonus() *rpgerr.Error {
	return rpgerr.New(rpgerr.CodePrerequisiteNotMet, "no attack bonus found")
}

// ErrNoSpellDC is returned when a Save node cannot resolve a DC from any source.
func ErrNoSpellDC() *rpgerr.Error {
	return rpgerr.New(rpgerr.CodePrerequisiteNotMet, "no spell save DC found")
}

// ErrInvalidSaveType is returned when a save ability name does not match any
// of the six canonical ability saves.
func ErrInvalidSaveType(save string) *rpgerr.Error {
	return rpgerr.New(rpgerr.CodeInvalidArgument, "invalid save type",
		rpgerr.WithMeta("save", save))
}

// ErrInvalidArgument is returned when a value that must be numeric (an
// IEffect duration, a Roll that parsed no dice) is not.
func ErrInvalidArgument(msg string, meta ...rpgerr.Option) *rpgerr.Error {
	return rpgerr.New(rpgerr.CodeInvalidArgument, msg, meta...)
}

// ErrAutomation is the generic automation-authoring error (a bonus or DC
// expression that did not evaluate to an integer, an unknown effect tag).
func ErrAutomation(msg string, meta ...rpgerr.Option) *rpgerr.Error {
	return rpgerr.New(rpgerr.CodeInvalidState, msg, meta...)
}

// ErrTarget is returned when a node requires a feature of the current
// target that it does not expose: a save roll against a target without
// saves. A missing AC or resistance list is reported as absent instead.
func ErrTarget(msg string, meta ...rpgerr.Option) *rpgerr.Error {
	return rpgerr.New(rpgerr.CodeInvalidTarget, msg, meta...)
}

// rpgerrWrapIndex wraps err with the failing node's index in the effect
// list, per §7's propagation policy (attach node type/index as metadata).
func rpgerrWrapIndex(err error, index int) *rpgerr.Error {
	return rpgerr.Wrap(err, fmt.Sprintf("effect[%d]", index), rpgerr.WithMeta("index", index))
}

// rpgerrWrapNode wraps err with the failing node's type, per §7.
func rpgerrWrapNode(err error, kind string) *rpgerr.Error {
	return rpgerr.Wrap(err, fmt.Sprintf("%s node failed", kind), rpgerr.WithMeta("node", kind))
}
