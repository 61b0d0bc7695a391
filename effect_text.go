// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

const textMaxLen = 1020

// TextEffect enqueues descriptive text into the effect section, truncated
// to textMaxLen characters. An empty body is dropped entirely.
type TextEffect struct {
	metaNode
	Body string
}

func (t *TextEffect) Run(ctx *AutomationContext) (*int, error) {
	if err := t.runMeta(ctx); err != nil {
		return nil, rpgerrWrapNode(err, "Text")
	}
	if t.Body == "" {
		return nil, nil
	}
	ctx.EffectQueue(truncate(t.Body, textMaxLen))
	return nil, nil
}
