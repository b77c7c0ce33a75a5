package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetPityState returns zero counters when the profile never drew
func (q *queries) GetPityState(ctx context.Context, profileID int64) (domain.PityState, error) {
	state := domain.PityState{ProfileID: profileID}
	err := q.db.QueryRowContext(ctx,
		`SELECT pity_rare, pity_epic FROM gacha_state WHERE profile_id = ?`,
		profileID,
	).Scan(&state.PityRare, &state.PityEpic)
	if errors.Is(err, sql.ErrNoRows) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetPityState, err)
	}
	return state, nil
}

// SetPityState stores both counters
func (q *queries) SetPityState(ctx context.Context, state domain.PityState) error {
	query := `
		INSERT INTO gacha_state (profile_id, pity_rare, pity_epic, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (profile_id) DO UPDATE
		SET pity_rare = excluded.pity_rare,
		    pity_epic = excluded.pity_epic,
		    updated_at = excluded.updated_at
	`
	if _, err := q.db.ExecContext(ctx, query, state.ProfileID, state.PityRare, state.PityEpic, toMillis(q.now())); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToSetPityState, err)
	}
	return nil
}
