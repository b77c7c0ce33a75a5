package postgres

import (
	"context"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// ClaimMilestone inserts (bucket, key) if absent. The primary key makes the
// insert the claim, so concurrent callers see exactly one true.
func (q *queries) ClaimMilestone(ctx context.Context, profileID int64, bucket, key string) (bool, error) {
	query := `
		INSERT INTO milestones (profile_id, bucket, key)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	tag, err := q.db.Exec(ctx, query, profileID, bucket, key)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToClaimMilestone, err)
	}
	return tag.RowsAffected() == 1, nil
}

// CountMilestones returns 0 or 1 for a (bucket, key) pair
func (q *queries) CountMilestones(ctx context.Context, profileID int64, bucket, key string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM milestones
		WHERE profile_id = $1 AND bucket = $2 AND key = $3
	`
	var n int
	if err := q.db.QueryRow(ctx, query, profileID, bucket, key).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToCountMilestones, err)
	}
	return n, nil
}

// ClaimAchievement records the achievement if it was never unlocked
func (q *queries) ClaimAchievement(ctx context.Context, profileID int64, achievement domain.Achievement) (bool, error) {
	query := `
		INSERT INTO achievements (profile_id, key, title)
		VALUES ($1, $2, $3)
		ON CONFLICT DO NOTHING
	`
	tag, err := q.db.Exec(ctx, query, profileID, achievement.Key, achievement.Title)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToClaimAchievement, err)
	}
	return tag.RowsAffected() == 1, nil
}
