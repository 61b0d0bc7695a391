// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

package automation

import (
	"context"

	"github.com/rs/zerolog"
)

// Automation is an ordered list of root effects, built once from a
// declarative source and reused across runs.
type Automation struct {
	Root   []Effect
	logger zerolog.Logger
}

// New wraps an already-decoded effect list as a reusable Automation.
func New(root []Effect) *Automation {
	return &Automation{Root: root, logger: zerolog.Nop()}
}

// WithLogger attaches a structured logger used for per-run debug/warn
// lines; the zero value logs nothing.
func (a *Automation) WithLogger(l zerolog.Logger) *Automation {
	a.logger = l
	return a
}

// FromData deserializes an ordered list of tagged effect records into a
// reusable Automation.
func FromData(records []EffectRecord) (*Automation, error) {
	effects, err := DecodeEffects(records)
	if err != nil {
		return nil, err
	}
	return New(effects), nil
}

// AttackRecord is a legacy flat attack description: a damage dice
// expression, an optional attack bonus expression, and free-text details.
type AttackRecord struct {
	Damage  string
	Bonus   string
	Details string
}

// FromAttack synthesizes a trivial automation tree from a legacy attack
// record: a single Target(each) root containing either an Attack node
// (when Bonus is set, with the damage nested under its Hit branch) or the
// bare Damage node, followed by a Text node when Details is present.
func FromAttack(rec AttackRecord) *Automation {
	var hitChildren []Effect
	if rec.Damage != "" {
		hitChildren = append(hitChildren, &DamageEffect{DiceExpr: rec.Damage})
	}

	var children []Effect
	switch {
	case rec.Bonus != "":
		children = append(children, &AttackEffect{BonusExpr: rec.Bonus, Hit: hitChildren})
	case len(hitChildren) > 0:
		children = append(children, hitChildren...)
	}
	if rec.Details != "" {
		children = append(children, &TextEffect{Body: rec.Details})
	}

	target := &TargetEffect{Selector: "each", Children: children}
	return New([]Effect{target})
}

// Run walks the root effect list against actx, then assembles and delivers
// the final Report. ctx governs only the private-message delivery step; no
// effect node itself is cancellable mid-execution.
func (a *Automation) Run(ctx context.Context, actx *AutomationContext, phrase string, transport ChatTransport) (*Report, error) {
	log := a.logger.With().Str("invoker", actx.Invoker).Logger()
	log.Debug().Int("roots", len(a.Root)).Msg("running automation")

	for i, e := range a.Root {
		if _, err := e.Run(actx); err != nil {
			log.Debug().Err(err).Int("index", i).Msg("automation aborted")
			return nil, rpgerrWrapIndex(err, i)
		}
	}

	report := buildReport(actx, phrase)
	a.deliverPMs(ctx, transport, report, log)
	return report, nil
}

func (a *Automation) deliverPMs(ctx context.Context, transport ChatTransport, report *Report, log zerolog.Logger) {
	if transport == nil {
		return
	}
	for user, lines := range report.PMs {
		if err := transport.SendPM(ctx, user, "", lines); err != nil {
			log.Warn().Err(err).Str("user", user).Msg("pm delivery failed")
		}
	}
}
