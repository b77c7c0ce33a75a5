package repository

import (
	"context"
	"time"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

// Profile defines profile persistence. Every call is atomic on its own.
type Profile interface {
	// GetProfile returns nil, nil when the profile does not exist yet
	GetProfile(ctx context.Context, profileID int64) (*domain.Profile, error)
	// UpsertProfile writes the name and tags. Balances only change through
	// AddProfileXP, AddProfileGems and SpendProfileGems.
	UpsertProfile(ctx context.Context, profile *domain.Profile) error
	// EnsureProfile inserts a default profile if none exists
	EnsureProfile(ctx context.Context, profileID int64) error
	// LockProfile takes the write lock on the profile row for the rest of the transaction
	LockProfile(ctx context.Context, profileID int64) error
	// AddProfileXP adds delta, clamping the total at zero
	AddProfileXP(ctx context.Context, profileID, delta int64) error
	AddProfileGems(ctx context.Context, profileID, delta int64) error
	// SpendProfileGems subtracts cost only when the balance covers it
	SpendProfileGems(ctx context.Context, profileID, cost int64) (bool, error)
}

// Milestone defines the idempotency records
type Milestone interface {
	// ClaimMilestone inserts (bucket, key) if absent and reports whether it did
	ClaimMilestone(ctx context.Context, profileID int64, bucket, key string) (bool, error)
	CountMilestones(ctx context.Context, profileID int64, bucket, key string) (int, error)
	// ClaimAchievement inserts the achievement if absent and reports whether it did
	ClaimAchievement(ctx context.Context, profileID int64, achievement domain.Achievement) (bool, error)
}

// Artifact defines the artifact inventory
type Artifact interface {
	AddArtifact(ctx context.Context, profileID int64, name string, rarity domain.Rarity, perkKey domain.PerkKey, data []byte) (int64, error)
	// GetArtifact returns nil, nil when no such artifact exists for the profile
	GetArtifact(ctx context.Context, profileID, artifactID int64) (*domain.Artifact, error)
	ListArtifacts(ctx context.Context, profileID int64, equippedOnly bool) ([]domain.Artifact, error)
	// SetArtifactEquipped reports false when the artifact does not exist
	SetArtifactEquipped(ctx context.Context, profileID, artifactID int64, equipped bool) (bool, error)
	LogWish(ctx context.Context, entry domain.WishLogEntry) error
}

// Gacha defines pity state persistence
type Gacha interface {
	// GetPityState returns zero counters when the profile never drew
	GetPityState(ctx context.Context, profileID int64) (domain.PityState, error)
	SetPityState(ctx context.Context, state domain.PityState) error
}

// Talent defines talent level persistence
type Talent interface {
	GetTalentLevel(ctx context.Context, profileID int64, key domain.TalentKey) (int, error)
	SetTalentLevel(ctx context.Context, profileID int64, key domain.TalentKey, level int) error
	ListTalentLevels(ctx context.Context, profileID int64) (map[domain.TalentKey]int, error)
}

// Completion defines the daily task completion history
type Completion interface {
	SetTaskCompletion(ctx context.Context, profileID int64, day, taskID string, completed bool, at time.Time) error
	GetCompletions(ctx context.Context, profileID int64, day string) (map[string]bool, error)
	// ListCompletions returns the completed tasks of day, oldest first
	ListCompletions(ctx context.Context, profileID int64, day string) ([]domain.Completion, error)
	GetCompletionCountForDay(ctx context.Context, profileID int64, day string) (int, error)
	// GetCompletionCounts returns completed-task counts keyed by day for fromDay..toDay inclusive.
	// Days without completions are absent.
	GetCompletionCounts(ctx context.Context, profileID int64, fromDay, toDay string) (map[string]int, error)
}

// Queries is every storage operation the engine needs. Both a store and an
// open transaction satisfy it.
type Queries interface {
	Profile
	Milestone
	Artifact
	Gacha
	Talent
	Completion
}

// ProgressionTx is a transaction over Queries
type ProgressionTx interface {
	Tx
	Queries
}

// Progression is a storage engine for the progression aggregate
type Progression interface {
	Queries
	BeginTx(ctx context.Context) (ProgressionTx, error)
	Close() error
}
