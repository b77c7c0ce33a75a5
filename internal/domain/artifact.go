package domain

import (
	"strings"
	"time"
)

// Rarity is the tier of a drawn artifact
type Rarity string

const (
	RarityCommon Rarity = "common"
	RarityRare   Rarity = "rare"
	RarityEpic   Rarity = "epic"
)

// Rarities lists every rarity from most to least common
var Rarities = []Rarity{RarityCommon, RarityRare, RarityEpic}

// Valid reports whether r is one of the known rarities
func (r Rarity) Valid() bool {
	switch r {
	case RarityCommon, RarityRare, RarityEpic:
		return true
	}
	return false
}

// PerkKey selects the passive effect an artifact grants
type PerkKey string

const (
	PerkXPBoost      PerkKey = "xp_boost_5"
	PerkStreakShield PerkKey = "streak_shield"
	PerkRerollBonus  PerkKey = "reroll_bonus"
	PerkThemePyro    PerkKey = "theme_pyro"
	PerkThemeCygnus  PerkKey = "theme_cygnus"
	PerkDropBoost    PerkKey = "drop_boost_5"
)

// IsTheme reports whether the perk unlocks a board theme on ownership
func (k PerkKey) IsTheme() bool {
	return strings.HasPrefix(string(k), "theme_")
}

// Payload fields read by the perk resolver
const (
	PayloadXPBoostPct   = "xp_boost_pct"
	PayloadDropBoostPct = "drop_boost_pct"
	PayloadShield       = "shield"
	PayloadRerollBonus  = "reroll_bonus"
	PayloadTheme        = "theme"
)

// DefaultTheme is always unlocked
const DefaultTheme = "Default"

// ArtifactTemplate is one entry of the static gacha catalog
type ArtifactTemplate struct {
	Name    string         `json:"name" validate:"required,max=64"`
	Rarity  Rarity         `json:"rarity" validate:"required,oneof=common rare epic"`
	PerkKey PerkKey        `json:"perk_key" validate:"required"`
	Data    map[string]any `json:"data"`
}

// Artifact is a drawn, owned collectible
type Artifact struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	PerkKey    PerkKey   `json:"perk_key"`
	Data       []byte    `json:"data"` // raw JSON payload as persisted
	Equipped   bool      `json:"equipped"`
	AcquiredAt time.Time `json:"acquired_at"`
}

// PerkSummary aggregates the passive bonuses active for a profile
type PerkSummary struct {
	XPBonusPct  float64  `json:"xp_bonus_pct"`
	GemBonusPct float64  `json:"gem_bonus_pct"`
	ShieldCount int      `json:"shield_count"`
	FreeReroll  bool     `json:"free_reroll"`
	Themes      []string `json:"themes"`
}
