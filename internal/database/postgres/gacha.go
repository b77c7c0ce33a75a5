package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetPityState returns zero counters when the profile never drew
func (q *queries) GetPityState(ctx context.Context, profileID int64) (domain.PityState, error) {
	state := domain.PityState{ProfileID: profileID}
	err := q.db.QueryRow(ctx,
		`SELECT pity_rare, pity_epic FROM gacha_state WHERE profile_id = $1`,
		profileID,
	).Scan(&state.PityRare, &state.PityEpic)
	if errors.Is(err, pgx.ErrNoRows) {
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
		INSERT INTO gacha_state (profile_id, pity_rare, pity_epic)
		VALUES ($1, $2, $3)
		ON CONFLICT (profile_id) DO UPDATE
		SET pity_rare = EXCLUDED.pity_rare,
		    pity_epic = EXCLUDED.pity_epic,
		    updated_at = NOW()
	`
	if _, err := q.db.Exec(ctx, query, state.ProfileID, state.PityRare, state.PityEpic); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToSetPityState, err)
	}
	return nil
}
