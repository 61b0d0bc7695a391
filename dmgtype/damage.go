// Copyright (C) 2024 Kirk Diggler
// SPDX-License-Identifier: GPL-3.0-or-later

// Package dmgtype holds D&D-style damage type constants and the reference
// ResistanceRewriter for the automation engine.
package dmgtype

import "github.com/KirkDiggler/rpg-toolkit/rpgerr"

// Type names one of the fixed damage types a dice term can be tagged with.
type Type string

// Damage type constants.
const (
	Bludgeoning Type = "bludgeoning"
	Piercing    Type = "piercing"
	Slashing    Type = "slashing"

	Acid      Type = "acid"
	Cold      Type = "cold"
	Fire      Type = "fire"
	Lightning Type = "lightning"
	Thunder   Type = "thunder"

	Force    Type = "force"
	Necrotic Type = "necrotic"
	Poison   Type = "poison"
	Psychic  Type = "psychic"
	Radiant  Type = "radiant"

	None Type = "none"
)

// All maps every damage type by its lowercase id for O(1) lookup.
var All = map[string]Type{
	"bludgeoning": Bludgeoning,
	"piercing":    Piercing,
	"slashing":    Slashing,
	"acid":        Acid,
	"cold":        Cold,
	"fire":        Fire,
	"lightning":   Lightning,
	"thunder":     Thunder,
	"force":       Force,
	"necrotic":    Necrotic,
	"poison":      Poison,
	"psychic":     Psychic,
	"radiant":     Radiant,
	"none":        None,
}

// Physical returns the three physical damage types.
func Physical() []Type { return []Type{Bludgeoning, Piercing, Slashing} }

// Elemental returns the five elemental damage types.
func Elemental() []Type { return []Type{Acid, Cold, Fire, Lightning, Thunder} }

// Magical returns the five purely magical damage types.
func Magical() []Type { return []Type{Force, Necrotic, Poison, Psychic, Radiant} }

// GetByID looks up a damage type by its lowercase id.
func GetByID(id string) (Type, error) {
	t, ok := All[id]
	if !ok {
		return "", rpgerr.New(rpgerr.CodeNotFound, "damage type not found",
			rpgerr.WithMeta("provided", id))
	}
	return t, nil
}

// Display renders the human-readable name of the damage type.
func (t Type) Display() string {
	switch t {
	case Acid:
		return "Acid"
	case Bludgeoning:
		return "Bludgeoning"
	case Cold:
		return "Cold"
	case Fire:
		return "Fire"
	case Force:
		return "Force"
	case Lightning:
		return "Lightning"
	case Necrotic:
		return "Necrotic"
	case Piercing:
		return "Piercing"
	case Poison:
		return "Poison"
	case Psychic:
		return "Psychic"
	case Radiant:
		return "Radiant"
	case Slashing:
		return "Slashing"
	case Thunder:
		return "Thunder"
	default:
		return string(t)
	}
}
