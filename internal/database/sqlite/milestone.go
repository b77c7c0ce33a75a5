package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// ClaimMilestone inserts (bucket, key) if absent and reports whether it did
func (q *queries) ClaimMilestone(ctx context.Context, profileID int64, bucket, key string) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO milestones (profile_id, bucket, key, claimed_at) VALUES (?, ?, ?, ?)`,
		profileID, bucket, key, toMillis(q.now()),
	)
	return inserted(res, err, database.ErrMsgFailedToClaimMilestone)
}

func (q *queries) CountMilestones(ctx context.Context, profileID int64, bucket, key string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM milestones WHERE profile_id = ? AND bucket = ? AND key = ?`,
		profileID, bucket, key,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToCountMilestones, err)
	}
	return n, nil
}

// ClaimAchievement records the achievement if it was never unlocked
func (q *queries) ClaimAchievement(ctx context.Context, profileID int64, achievement domain.Achievement) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievements (profile_id, key, title, unlocked_at) VALUES (?, ?, ?, ?)`,
		profileID, achievement.Key, achievement.Title, toMillis(q.now()),
	)
	return inserted(res, err, database.ErrMsgFailedToClaimAchievement)
}

func inserted(res sql.Result, err error, msg string) (bool, error) {
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", msg, err)
	}
	return n == 1, nil
}
