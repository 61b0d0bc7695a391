// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// diceGroup matches one "NdM" token within a larger dice expression; N is
// optional (defaults to 1). Any kh/kl/ro/mi suffix that follows M (for
// example from an earlier rewrite pass) is left outside the match, so only
// the NdM part of a group is ever rewritten.
var diceGroup = regexp.MustCompile(`(\d*)[dD](\d+)`)

// cantripTier maps a caster level to the dice-count multiplier used by
// cantrip auto-scaling: 1 below level 5, 2 below 11, 3 below 17, 4 at 17+.
func cantripTier(casterLevel int) int {
	switch {
	case casterLevel >= 17:
		return 4
	case casterLevel >= 11:
		return 3
	case casterLevel >= 5:
		return 2
	default:
		return 1
	}
}

// cantripScaleDice rewrites every NdM group's count to the cantrip tier for
// casterLevel. Applying it twice for the same level is idempotent: the
// second pass computes the identical tier and writes the same count back.
func cantripScaleDice(dice string, casterLevel int) string {
	tier := cantripTier(casterLevel)
	return diceGroup.ReplaceAllString(dice, fmt.Sprintf("%dd$2", tier))
}

// upcastDelta appends delta to dice with a joining "+", when delta is
// non-empty. delta is itself a dice/modifier expression (e.g. "1d6").
func upcastDelta(dice, delta string) string {
	if delta == "" {
		return dice
	}
	return dice + "+" + delta
}

// applyMinimum rewrites every NdM group to NdMmiK, clamping each individual
// die's face to at least min.
func applyMinimum(dice string, min int) string {
	return diceGroup.ReplaceAllStringFunc(dice, func(tok string) string {
		parts := diceGroup.FindStringSubmatch(tok)
		return fmt.Sprintf("%sd%smi%d", parts[1], parts[2], min)
	})
}

// applyCritDouble doubles the count of every NdM group, adding critdice
// extra dice per group when weapon is true (spell damage never receives
// critdice, matching the original's "weapon = not a spell" rule).
func applyCritDouble(dice string, critdice int, weapon bool) string {
	return diceGroup.ReplaceAllStringFunc(dice, func(tok string) string {
		parts := diceGroup.FindStringSubmatch(tok)
		n := 1
		if parts[1] != "" {
			if v, err := strconv.Atoi(parts[1]); err == nil {
				n = v
			}
		}
		newN := 2 * n
		if weapon {
			newN += critdice
		}
		return fmt.Sprintf("%dd%s", newN, parts[2])
	})
}

// applyMaxClamp rewrites every NdM group to NdMmiM, forcing every die in
// the group to roll its maximum face.
func applyMaxClamp(dice string) string {
	return diceGroup.ReplaceAllStringFunc(dice, func(tok string) string {
		parts := diceGroup.FindStringSubmatch(tok)
		return fmt.Sprintf("%sd%smi%s", parts[1], parts[2], parts[2])
	})
}

// isMeta reports whether dice contains a "{name}" substring for any known
// meta-variable name. strict requires dice to equal "{name}" exactly; this
// mirrors the original's heuristic substring check verbatim (see
// DESIGN.md's Open Question decisions) rather than tracking substitution
// provenance.
func isMeta(dice string, names []string, strict bool) bool {
	for _, name := range names {
		token := "{" + name + "}"
		if strict {
			if dice == token {
				return true
			}
			continue
		}
		if strings.Contains(dice, token) {
			return true
		}
	}
	return false
}
