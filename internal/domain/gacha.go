package domain

import "time"

// PityState holds the draw counters of one profile
type PityState struct {
	ProfileID int64 `json:"profile_id"`
	PityRare  int   `json:"pity_rare"` // draws since the last rare-or-better
	PityEpic  int   `json:"pity_epic"` // draws since the last epic
}

// WishLogEntry records one drawn artifact
type WishLogEntry struct {
	ID         int64     `json:"id"`
	ProfileID  int64     `json:"profile_id"`
	ArtifactID int64     `json:"artifact_id"`
	Name       string    `json:"name"`
	Rarity     Rarity    `json:"rarity"`
	PerkKey    PerkKey   `json:"perk_key"`
	CreatedAt  time.Time `json:"created_at"`
}

// WishResult is the outcome of a paid wish request
type WishResult struct {
	Artifacts []Artifact `json:"artifacts"`
	Cost      int64      `json:"cost"`
	Pity      PityState  `json:"pity"`
}
