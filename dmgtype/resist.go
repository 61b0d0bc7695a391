// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package dmgtype

import (
	"fmt"
	"regexp"
	"strings"
)

// Rewriter implements the automation engine's ResistanceRewriter contract.
type Rewriter struct{}

// NewRewriter returns the reference ResistanceRewriter.
func NewRewriter() *Rewriter { return &Rewriter{} }

var typedTerm = regexp.MustCompile(`([+-]?)([^-+\[\]]+)\[(\w+)\]`)

// Rewrite classifies each "term[type]" in expr against the resist/
// immune/vuln/neutral lists and rewrites immune terms to "0", resist terms
// to "(term)/2", vuln terms to "(term)*2", leaving neutral and untyped
// terms untouched. The leading sign, if any, stays outside the rewritten
// term so it keeps acting as the separator between top-level chunks.
func (Rewriter) Rewrite(expr string, resist, immune, vuln, neutral []string) string {
	_ = neutral // untyped/neutral terms pass through unchanged; listed for symmetry with §4.12
	return typedTerm.ReplaceAllStringFunc(expr, func(tok string) string {
		m := typedTerm.FindStringSubmatch(tok)
		sign, term, kind := m[1], m[2], strings.ToLower(m[3])

		switch {
		case containsType(immune, kind):
			return sign + "0"
		case containsType(resist, kind):
			return fmt.Sprintf("%s(%s)/2", sign, term)
		case containsType(vuln, kind):
			return fmt.Sprintf("%s(%s)*2", sign, term)
		default:
			return sign + term
		}
	})
}

func containsType(list []string, kind string) bool {
	for _, t := range list {
		if strings.ToLower(t) == kind {
			return true
		}
	}
	return false
}
