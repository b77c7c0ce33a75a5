package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// SetTaskCompletion marks a task of day as completed or not. Marking a task
// that is already completed keeps its first timestamp.
func (q *queries) SetTaskCompletion(ctx context.Context, profileID int64, day, taskID string, completed bool, at time.Time) error {
	query := `
		INSERT INTO completions (profile_id, day, task_id, completed, completed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (profile_id, day, task_id) DO UPDATE
		SET completed = excluded.completed,
		    completed_at = CASE WHEN completions.completed = 1 AND excluded.completed = 1
		                        THEN completions.completed_at
		                        ELSE excluded.completed_at END
	`
	var completedAt sql.NullInt64
	if completed {
		completedAt = sql.NullInt64{Int64: toMillis(at), Valid: true}
	}
	if _, err := q.db.ExecContext(ctx, query, profileID, day, taskID, boolToInt(completed), completedAt); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToSetCompletion, err)
	}
	return nil
}

func (q *queries) GetCompletions(ctx context.Context, profileID int64, day string) (map[string]bool, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT task_id, completed FROM completions WHERE profile_id = ? AND day = ?`,
		profileID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetCompletions, err)
	}
	defer rows.Close()

	result := make(map[string]bool)
	for rows.Next() {
		var (
			taskID    string
			completed int
		)
		if err := rows.Scan(&taskID, &completed); err != nil {
			return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToScanRow, err)
		}
		result[taskID] = completed != 0
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgRowIterationError, err)
	}
	return result, nil
}

func (q *queries) ListCompletions(ctx context.Context, profileID int64, day string) ([]domain.Completion, error) {
	query := `
		SELECT task_id, completed_at
		FROM completions
		WHERE profile_id = ? AND day = ? AND completed = 1
		ORDER BY completed_at, task_id
	`
	rows, err := q.db.QueryContext(ctx, query, profileID, day)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetCompletions, err)
	}
	defer rows.Close()

	var completions []domain.Completion
	for rows.Next() {
		var (
			c  domain.Completion
			at int64
		)
		if err := rows.Scan(&c.TaskID, &at); err != nil {
			return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToScanRow, err)
		}
		c.CompletedAt = fromMillis(at)
		completions = append(completions, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgRowIterationError, err)
	}
	return completions, nil
}

func (q *queries) GetCompletionCountForDay(ctx context.Context, profileID int64, day string) (int, error) {
	var n int
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM completions WHERE profile_id = ? AND day = ? AND completed = 1`,
		profileID, day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToCountCompletion, err)
	}
	return n, nil
}

func (q *queries) GetCompletionCounts(ctx context.Context, profileID int64, fromDay, toDay string) (map[string]int, error) {
	query := `
		SELECT day, COUNT(*)
		FROM completions
		WHERE profile_id = ? AND day BETWEEN ? AND ? AND completed = 1
		GROUP BY day
	`
	rows, err := q.db.QueryContext(ctx, query, profileID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToCountCompletion, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			day string
			n   int
		)
		if err := rows.Scan(&day, &n); err != nil {
			return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToScanRow, err)
		}
		counts[day] = n
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgRowIterationError, err)
	}
	return counts, nil
}
