// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import "fmt"

// Effect is one node of an automation tree. Run executes the node against
// ctx and returns the damage it (and its descendants) contributed, or nil
// when the node contributes no damage total — only Attack, Save, and
// Damage ever return non-nil.
type Effect interface {
	Run(ctx *AutomationContext) (*int, error)
}

// metaNode is embedded by every concrete effect variant to share the
// "run meta effects before the body" prologue, mirroring the original
// base class's single run() override point.
type metaNode struct {
	meta []Effect
}

func (m *metaNode) runMeta(ctx *AutomationContext) error {
	for _, e := range m.meta {
		if _, err := e.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// effectKind returns the tag string for a concrete effect node, used only
// by the multi-iteration Target header when exactly one child exists (see
// DESIGN.md's Open Question decisions).
func effectKind(e Effect) string {
	switch e.(type) {
	case *TargetEffect:
		return "Target"
	case *AttackEffect:
		return "Attack"
	case *SaveEffect:
		return "Save"
	case *DamageEffect:
		return "Damage"
	case *TempHPEffect:
		return "TempHP"
	case *IEffectEffect:
		return "IEffect"
	case *RollEffect:
		return "Roll"
	case *TextEffect:
		return "Text"
	default:
		return fmt.Sprintf("%T", e)
	}
}

// EffectRecord is the tagged, deserialization-friendly representation of an
// effect node, matching the persisted/JSON-equivalent shape of §6. Fields
// irrelevant to Type are simply left zero.
type EffectRecord struct {
	Type string `json:"type"`
	Meta []EffectRecord `json:"meta,omitempty"`

	// Target
	Selector string         `json:"selector,omitempty"`
	Children []EffectRecord `json:"children,omitempty"`

	// Attack
	Hit       []EffectRecord `json:"hit,omitempty"`
	Miss      []EffectRecord `json:"miss,omitempty"`
	BonusExpr string         `json:"bonus,omitempty"`

	// Save
	Stat    string         `json:"stat,omitempty"`
	DCExpr  string         `json:"dc,omitempty"`
	Success []EffectRecord `json:"success,omitempty"`
	Fail    []EffectRecord `json:"fail,omitempty"`

	// Damage / TempHP / Roll
	DiceExpr     string            `json:"dice,omitempty"`
	AmountExpr   string            `json:"amount,omitempty"`
	Higher       map[string]string `json:"higher,omitempty"`
	CantripScale bool              `json:"cantripScale,omitempty"`
	Name         string            `json:"name,omitempty"`
	Hidden       bool              `json:"hidden,omitempty"`

	// IEffect
	Duration    string `json:"duration,omitempty"`
	EffectsExpr string `json:"effects,omitempty"`
	TickOnEnd   bool   `json:"tickOnEnd,omitempty"`

	// Text
	Body string `json:"text,omitempty"`
}

// DecodeEffects deserializes an ordered list of tagged records into a
// matching list of Effect nodes.
func DecodeEffects(records []EffectRecord) ([]Effect, error) {
	if len(records) == 0 {
		return nil, nil
	}
	out := make([]Effect, 0, len(records))
	for i, rec := range records {
		e, err := DecodeEffect(rec)
		if err != nil {
			return nil, rpgerrWrapIndex(err, i)
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeEffect deserializes a single tagged record, dispatching on its
// Type and recursing into any nested effect lists.
func DecodeEffect(rec EffectRecord) (Effect, error) {
	meta, err := DecodeEffects(rec.Meta)
	if err != nil {
		return nil, err
	}

	switch rec.Type {
	case "target":
		children, err := DecodeEffects(rec.Children)
		if err != nil {
			return nil, err
		}
		return &TargetEffect{
			metaNode: metaNode{meta: meta},
			Selector: rec.Selector,
			Children: children,
		}, nil

	case "attack":
		hit, err := DecodeEffects(rec.Hit)
		if err != nil {
			return nil, err
		}
		miss, err := DecodeEffects(rec.Miss)
		if err != nil {
			return nil, err
		}
		return &AttackEffect{
			metaNode:  metaNode{meta: meta},
			Hit:       hit,
			Miss:      miss,
			BonusExpr: rec.BonusExpr,
		}, nil

	case "save":
		success, err := DecodeEffects(rec.Success)
		if err != nil {
			return nil, err
		}
		fail, err := DecodeEffects(rec.Fail)
		if err != nil {
			return nil, err
		}
		return &SaveEffect{
			metaNode: metaNode{meta: meta},
			Stat:     rec.Stat,
			DCExpr:   rec.DCExpr,
			Success:  success,
			Fail:     fail,
		}, nil

	case "damage":
		return &DamageEffect{
			metaNode:     metaNode{meta: meta},
			DiceExpr:     rec.DiceExpr,
			Higher:       rec.Higher,
			CantripScale: rec.CantripScale,
		}, nil

	case "temphp":
		return &TempHPEffect{
			metaNode:     metaNode{meta: meta},
			AmountExpr:   rec.AmountExpr,
			Higher:       rec.Higher,
			CantripScale: rec.CantripScale,
		}, nil

	case "ieffect":
		return &IEffectEffect{
			metaNode:    metaNode{meta: meta},
			Name:        rec.Name,
			Duration:    rec.Duration,
			EffectsExpr: rec.EffectsExpr,
			TickOnEnd:   rec.TickOnEnd,
		}, nil

	case "roll":
		return &RollEffect{
			metaNode:     metaNode{meta: meta},
			DiceExpr:     rec.DiceExpr,
			Name:         rec.Name,
			Higher:       rec.Higher,
			CantripScale: rec.CantripScale,
			Hidden:       rec.Hidden,
		}, nil

	case "text":
		return &TextEffect{
			metaNode: metaNode{meta: meta},
			Body:     rec.Body,
		}, nil

	default:
		return nil, ErrAutomation(fmt.Sprintf("unknown effect type %q", rec.Type))
	}
}
