// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package diceroller

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/automation-engine"
)

type group struct {
	faces   []int
	dieSize int
}

// Result is the outcome of one Expr.Roll call, satisfying automation.DiceRoll.
type Result struct {
	raw      string
	label    string
	total    int
	rendered []string
	groups   []group
}

// Total returns the summed numeric result.
func (r *Result) Total() int { return r.total }

// Result renders the roll inline, e.g. "+2d6(3, 5) +3 = **11**".
func (r *Result) Result() string {
	return fmt.Sprintf("%s = **%d**", strings.Join(r.rendered, " "), r.total)
}

// Crit classifies the first d20 group's raw faces, matching the original's
// SingleDiceGroup/max_value == 20 inspection: any natural 20 among its
// faces is a crit, else any natural 1 is a fumble, else neither.
func (r *Result) Crit() automation.CritKind {
	for _, g := range r.groups {
		if g.dieSize != 20 {
			continue
		}
		saw1 := false
		for _, f := range g.faces {
			if f == 20 {
				return automation.CritNatural20
			}
			if f == 1 {
				saw1 = true
			}
		}
		if saw1 {
			return automation.CritNatural1
		}
		return automation.CritNone
	}
	return automation.CritNone
}

// RawFaces returns the individual face values rolled for group index i.
func (r *Result) RawFaces(i int) []int {
	if i < 0 || i >= len(r.groups) {
		return nil
	}
	return r.groups[i].faces
}

// Consolidated re-renders the already-rolled faces as a literal,
// re-displayable expression so a stored meta-variable can be redisplayed
// without re-rolling.
func (r *Result) Consolidated() string {
	return strings.Join(r.rendered, " ")
}
