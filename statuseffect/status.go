// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package statuseffect implements the automation engine's StatusEffect and
// StatusEffectFactory contracts. Concentration parentage is tracked by ID
// in a registry, the same shape as rpg-toolkit's condition
// RelationshipManager (relationships keyed by source/condition id, never an
// owning pointer), scaled down to the single "concentration parent" link
// an IEffect node needs.
package statuseffect

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/KirkDiggler/automation-engine"
)

// Effect is the reference StatusEffect: a named, timed effect attached to a
// target, optionally linked under a concentration parent by id.
type Effect struct {
	id        string
	name      string
	duration  int
	effects   string
	tickOnEnd bool

	mu       sync.RWMutex
	parentID string
}

// Name returns the effect's display name.
func (e *Effect) Name() string { return e.name }

// ID returns the effect's unique identifier.
func (e *Effect) ID() string { return e.id }

// ParentID returns the id of the concentration effect this one is linked
// under, or "" if unlinked.
func (e *Effect) ParentID() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.parentID
}

// SetParentID links this effect under a concentration parent by id.
func (e *Effect) SetParentID(id string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.parentID = id
}

// Duration reports the effect's remaining duration in rounds.
func (e *Effect) Duration() int { return e.duration }

// TickOnEnd reports whether the effect fires its trailing expression when
// its duration expires rather than only while active.
func (e *Effect) TickOnEnd() bool { return e.tickOnEnd }

// String renders the effect for report/footer lines: "Name (N rounds)".
func (e *Effect) String() string {
	if e.duration <= 0 {
		return e.name
	}
	return fmt.Sprintf("%s (%d rounds)", e.name, e.duration)
}

// Factory is the reference StatusEffectFactory: it mints Effects with
// sequential ids and tracks them in a registry, so a parent's removal can
// later look up and cascade to every child linked under its id.
type Factory struct {
	mu       sync.Mutex
	seq      uint64
	prefix   string
	byID     map[string]*Effect
	children map[string][]string
}

// NewFactory returns a registry-backed StatusEffectFactory. prefix names
// the minted ids (e.g. "combatant-42" produces "combatant-42-effect-1").
func NewFactory(prefix string) *Factory {
	return &Factory{
		prefix:   prefix,
		byID:     map[string]*Effect{},
		children: map[string][]string{},
	}
}

// New constructs and registers a new Effect, satisfying
// automation.StatusEffectFactory. Go requires interface methods to return
// the interface type exactly, so this wraps the concrete-returning
// newEffect rather than returning *Effect directly.
func (f *Factory) New(name string, duration int, effects string, tickOnEnd bool) automation.StatusEffect {
	return f.newEffect(name, duration, effects, tickOnEnd)
}

func (f *Factory) newEffect(name string, duration int, effects string, tickOnEnd bool) *Effect {
	n := atomic.AddUint64(&f.seq, 1)
	e := &Effect{
		id:        fmt.Sprintf("%s-effect-%d", f.prefix, n),
		name:      name,
		duration:  duration,
		effects:   effects,
		tickOnEnd: tickOnEnd,
	}

	f.mu.Lock()
	f.byID[e.id] = e
	f.mu.Unlock()

	return e
}

// Link records parent as e's concentration parent, both in e itself and in
// the registry's reverse index, so Cascade can later find e from parent's id.
func (f *Factory) Link(e *Effect, parentID string) {
	if parentID == "" {
		return
	}
	e.SetParentID(parentID)

	f.mu.Lock()
	f.children[parentID] = append(f.children[parentID], e.ID())
	f.mu.Unlock()
}

// Cascade returns every Effect transitively linked under parentID's
// concentration, for callers that need to remove an entire concentration
// group when its source breaks concentration. A child counts as linked
// whether it went through Link or only had SetParentID called on it.
func (f *Factory) Cascade(parentID string) []*Effect {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*Effect
	queue := []string{parentID}
	seen := map[string]bool{}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		childIDs := append([]string(nil), f.children[id]...)
		if id != "" {
			for cid, e := range f.byID {
				if e.ParentID() == id {
					childIDs = append(childIDs, cid)
				}
			}
		}
		for _, childID := range childIDs {
			if seen[childID] {
				continue
			}
			seen[childID] = true
			if e, ok := f.byID[childID]; ok {
				out = append(out, e)
			}
			queue = append(queue, childID)
		}
	}
	return out
}

// Lookup returns the registered effect for id, if any.
func (f *Factory) Lookup(id string) (*Effect, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.byID[id]
	return e, ok
}
