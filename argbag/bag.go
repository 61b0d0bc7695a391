// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package argbag implements the automation engine's ArgBag contract: a
// repeated "-flag value" token stream with ephemeral ("consume once")
// reads, the shape the reference Discord-command parser in the original
// produces and that no general-purpose flag library targets.
package argbag

import (
	"strconv"
	"strings"
)

// Bag is a map[string][]string parsed from "-flag value" tokens, in supply
// order, with ephemeral consumption implemented directly on the Take*
// methods rather than through a separate flag.
type Bag struct {
	values map[string][]string
}

// New builds an empty Bag.
func New() *Bag {
	return &Bag{values: map[string][]string{}}
}

// Parse tokenizes a command-line-like string of "-flag value" and bare
// "-flag" boolean pairs into a Bag. A flag followed by another flag (or
// end of input) is treated as a boolean with an empty string value.
func Parse(raw string) *Bag {
	b := New()
	fields := strings.Fields(raw)
	for i := 0; i < len(fields); i++ {
		tok := fields[i]
		if !strings.HasPrefix(tok, "-") {
			continue
		}
		key := strings.TrimPrefix(tok, "-")
		if i+1 < len(fields) && !strings.HasPrefix(fields[i+1], "-") {
			b.Add(key, fields[i+1])
			i++
			continue
		}
		b.Add(key, "")
	}
	return b
}

// Add appends value under key, preserving supply order.
func (b *Bag) Add(key, value string) {
	b.values[key] = append(b.values[key], value)
}

func (b *Bag) Last(key string) (string, bool) {
	vals := b.values[key]
	if len(vals) == 0 {
		return "", false
	}
	return vals[len(vals)-1], true
}

func (b *Bag) TakeLast(key string) (string, bool) {
	v, ok := b.Last(key)
	if ok {
		b.dropLast(key)
	}
	return v, ok
}

func (b *Bag) LastInt(key string, fallback int) int {
	v, ok := b.Last(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

func (b *Bag) TakeInt(key string, fallback int) int {
	n := b.LastInt(key, fallback)
	b.dropLast(key)
	return n
}

func (b *Bag) LastBool(key string) bool {
	_, ok := b.Last(key)
	return ok
}

func (b *Bag) TakeBool(key string) bool {
	ok := b.LastBool(key)
	if ok {
		b.dropLast(key)
	}
	return ok
}

func (b *Bag) Join(key, sep string) (string, bool) {
	vals := b.values[key]
	nonEmpty := filterEmpty(vals)
	if len(nonEmpty) == 0 {
		return "", false
	}
	return strings.Join(nonEmpty, sep), true
}

func (b *Bag) TakeJoin(key, sep string) (string, bool) {
	v, ok := b.Join(key, sep)
	if ok {
		delete(b.values, key)
	}
	return v, ok
}

func (b *Bag) All(key string) []string {
	return append([]string(nil), b.values[key]...)
}

func (b *Bag) TakeAll(key string) []string {
	vals := b.All(key)
	delete(b.values, key)
	return vals
}

// dropLast removes the most recently supplied value for key, deleting the
// key entirely once its value list empties.
func (b *Bag) dropLast(key string) {
	vals := b.values[key]
	if len(vals) == 0 {
		return
	}
	if len(vals) == 1 {
		delete(b.values, key)
		return
	}
	b.values[key] = vals[:len(vals)-1]
}

func filterEmpty(vals []string) []string {
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
