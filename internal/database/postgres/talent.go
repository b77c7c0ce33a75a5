package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetTalentLevel returns 0 for a talent that was never upgraded
func (q *queries) GetTalentLevel(ctx context.Context, profileID int64, key domain.TalentKey) (int, error) {
	var level int
	err := q.db.QueryRow(ctx,
		`SELECT level FROM talents WHERE profile_id = $1 AND talent_key = $2`,
		profileID, string(key),
	).Scan(&level)
	if errors.Is(err, pgx.ErrNoRows) {
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
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id, talent_key) DO UPDATE
		SET level = EXCLUDED.level
	`
	if _, err := q.db.Exec(ctx, query, profileID, string(key), level); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToSetTalentLevel, err)
	}
	return nil
}

func (q *queries) ListTalentLevels(ctx context.Context, profileID int64) (map[domain.TalentKey]int, error) {
	rows, err := q.db.Query(ctx, `SELECT talent_key, level FROM talents WHERE profile_id = $1`, profileID)
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
