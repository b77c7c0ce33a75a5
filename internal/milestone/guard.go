// Package milestone guards one-time rewards. A claim is the insert of a
// unique (profile, bucket, key) record; only the caller whose insert
// succeeded may grant the reward.
package milestone

import (
	"context"
	"fmt"
	"strings"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// Guard claims milestones
type Guard struct {
	repo repository.Milestone
}

// NewGuard creates a Guard over a store
func NewGuard(repo repository.Milestone) *Guard {
	return &Guard{repo: repo}
}

// ClaimOnce reports whether this call was the first to claim (bucket, key)
func (g *Guard) ClaimOnce(ctx context.Context, profileID int64, bucket, key string) (bool, error) {
	return ClaimOnceTx(ctx, g.repo, profileID, bucket, key)
}

// IsClaimed reports whether (bucket, key) was already claimed
func (g *Guard) IsClaimed(ctx context.Context, profileID int64, bucket, key string) (bool, error) {
	n, err := g.repo.CountMilestones(ctx, profileID, bucket, key)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ClaimOnceTx claims through q, which may be an open transaction so the
// claim commits or rolls back together with the reward it guards
func ClaimOnceTx(ctx context.Context, q repository.Milestone, profileID int64, bucket, key string) (bool, error) {
	bucket = strings.TrimSpace(bucket)
	key = strings.TrimSpace(key)
	if bucket == "" || key == "" {
		return false, fmt.Errorf("%w: milestone bucket and key are required", domain.ErrInvalidInput)
	}

	claimed, err := q.ClaimMilestone(ctx, profileID, bucket, key)
	if err != nil {
		return false, err
	}

	logger.FromContext(ctx).Debug("Milestone claim", "profile_id", profileID, "bucket", bucket, "key", key, "claimed", claimed)
	return claimed, nil
}
