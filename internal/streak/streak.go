// Package streak computes the run of consecutive days with at least one
// completed task, forgiving one missed day when a streak shield is equipped.
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/perk"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// DefaultLookbackDays bounds the walk when the caller passes no limit
const DefaultLookbackDays = 60

// ShieldMisses is how many zero days an equipped shield forgives, however
// many shields are equipped
const ShieldMisses = 1

// Repository is the storage the calculator reads
type Repository interface {
	repository.Completion
	repository.Artifact
}

// Service defines the streak calculator
type Service interface {
	EffectiveStreak(ctx context.Context, profileID int64, today time.Time, lookbackDays int) (int, error)
}

type service struct {
	repo  Repository
	perks *perk.Resolver
}

// NewService creates a streak calculator
func NewService(repo Repository, perks *perk.Resolver) Service {
	return &service{repo: repo, perks: perks}
}

// EffectiveStreak walks back from today over at most lookbackDays days
func (s *service) EffectiveStreak(ctx context.Context, profileID int64, today time.Time, lookbackDays int) (int, error) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	shield, err := s.perks.HasEquipped(ctx, s.repo, profileID, domain.PerkStreakShield)
	if err != nil {
		return 0, err
	}

	from := today.AddDate(0, 0, -(lookbackDays - 1))
	byDay, err := s.repo.GetCompletionCounts(ctx, profileID, domain.DayBucket(from), domain.DayBucket(today))
	if err != nil {
		return 0, fmt.Errorf("failed to read completion history: %w", err)
	}

	counts := make([]int, lookbackDays)
	for i := range counts {
		counts[i] = byDay[domain.DayBucket(today.AddDate(0, 0, -i))]
	}

	misses := 0
	if shield {
		misses = ShieldMisses
	}
	n := Walk(counts, misses)

	logger.FromContext(ctx).Debug("Streak computed", "profile_id", profileID, "streak", n, "shield", shield)
	return n, nil
}

// Walk counts consecutive days from counts[0] (today) backwards. A day with
// no completions ends the walk unless a miss is left to forgive it; a
// forgiven day still counts toward the streak.
func Walk(counts []int, misses int) int {
	streak := 0
	for _, c := range counts {
		if c > 0 {
			streak++
			continue
		}
		if misses > 0 {
			misses--
			streak++
			continue
		}
		break
	}
	return streak
}
