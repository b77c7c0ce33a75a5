package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetTalentLevel returns 0 for a talent that was never upgraded
func (q *queries) GetTalentLevel(ctx context.Context, profileID int64, key domain.TalentKey) (int, error) {
	var level int
	err := q.db.QueryRowContext(ctx,
		`SELECT level FROM talents WHERE profile_id = ? AND talent_key = ?`,
		profileID, string(key),
	).Scan(&level)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetTalentLevel, err)
	}
	return level, nil
}

func (q *queries) SetTalentLevel(ctx context.Context, profileID int64, key domain.TalentKey, level int) error {
	query := `
		INSERT INTO talents (profile_id, talent_key, level)
		VALUES (?, ?, ?)
		ON CONFLICT (profile_id, talent_key) DO UPDATE
		SET level = excluded.level
	`
	if _, err := q.db.ExecContext(ctx, query, profileID, string(key), level); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToSetTalentLevel, err)
	}
	return nil
}

func (q *queries) ListTalentLevels(ctx context.Context, profileID int64) (map[domain.TalentKey]int, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT talent_key, level FROM talents WHERE profile_id = ?`, profileID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToListTalents, err)
	}
	defer rows.Close()

	levels := make(map[domain.TalentKey]int)
	for rows.Next() {
		var (
			key   string
			level int
		)
		if err := rows.Scan(&key, &level); err != nil {
			return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToScanRow, err)
		}
		levels[domain.TalentKey(key)] = level
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgRowIterationError, err)
	}
	return levels, nil
}
