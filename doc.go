// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package automation implements a declarative effect-tree interpreter for
// resolving the mechanical consequences of a tabletop role-playing action
// (spell, attack, feature) against a set of targets inside an ongoing
// combat.
//
// Purpose:
// Authors describe an action as a nested tree of typed effects (targeting,
// attack rolls, saving throws, damage, temporary hit points, status
// effects, auxiliary rolls, descriptive text). Automation.Run walks that
// tree, consuming invoker-supplied argument overrides, rolling dice,
// applying damage and resistance arithmetic, mutating combatant state, and
// emitting a structured report.
//
// Scope:
//   - Effect deserialization from a tagged data record
//   - Per-node evaluation semantics and child orchestration
//   - Dice-string rewriting (crit doubling, cantrip scale, up-cast, clamps)
//   - Report assembly (titled fields, meta section, footer, private messages)
//
// Non-Goals:
//   - Random number generation: delegated to the DiceRoller contract
//   - Meta-variable expression evaluation: delegated to the Evaluator contract
//   - Combatant/character data modeling: delegated to the Target contract
//   - Turn/initiative scheduling and persistence: owned by the host application
//
// Integration:
// This package defines the external contracts (ArgBag, Evaluator,
// DiceRoller, ResistanceRewriter, Target, ChatTransport, StatusEffectFactory)
// and ships one concrete, wired implementation of each under diceroller/,
// evaluator/, argbag/, dmgtype/, combatant/, transport/, and statuseffect/
// so the engine is runnable end to end. Host applications are free to
// substitute their own.
package automation
