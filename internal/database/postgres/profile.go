package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetProfile retrieves a profile (returns nil, nil if not found)
func (q *queries) GetProfile(ctx context.Context, profileID int64) (*domain.Profile, error) {
	query := `
		SELECT id, name, job_class, element, xp, gems, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`

	var (
		p        domain.Profile
		jobClass *string
		element  *string
	)
	err := q.db.QueryRow(ctx, query, profileID).Scan(
		&p.ID,
		&p.Name,
		&jobClass,
		&element,
		&p.XP,
		&p.Gems,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetProfile, err)
	}

	if jobClass != nil {
		jc := domain.JobClass(*jobClass)
		p.JobClass = &jc
	}
	if element != nil {
		el := domain.Element(*element)
		p.Element = &el
	}
	return &p, nil
}

// UpsertProfile writes the name and tags of a profile
func (q *queries) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, name, job_class, element)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    job_class = EXCLUDED.job_class,
		    element = EXCLUDED.element,
		    updated_at = NOW()
	`

	var jobClass, element *string
	if profile.JobClass != nil {
		s := string(*profile.JobClass)
		jobClass = &s
	}
	if profile.Element != nil {
		s := string(*profile.Element)
		element = &s
	}

	if _, err := q.db.Exec(ctx, query, profile.ID, profile.Name, jobClass, element); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// EnsureProfile inserts a default profile if none exists
func (q *queries) EnsureProfile(ctx context.Context, profileID int64) error {
	query := `
		INSERT INTO profiles (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO NOTHING
	`
	if _, err := q.db.Exec(ctx, query, profileID, domain.DefaultProfileName); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToEnsureProfile, err)
	}
	return nil
}

// LockProfile takes a row lock on the profile until the transaction ends
func (q *queries) LockProfile(ctx context.Context, profileID int64) error {
	var id int64
	err := q.db.QueryRow(ctx, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, profileID).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToLockProfile, err)
	}
	return nil
}

// AddProfileXP adds delta to the XP total, clamping at zero
func (q *queries) AddProfileXP(ctx context.Context, profileID, delta int64) error {
	query := `
		UPDATE profiles
		SET xp = GREATEST(0, xp + $2), updated_at = NOW()
		WHERE id = $1
	`
	return q.updateBalance(ctx, query, profileID, delta)
}

// AddProfileGems adds delta to the gem balance. The schema rejects a negative result.
func (q *queries) AddProfileGems(ctx context.Context, profileID, delta int64) error {
	query := `
		UPDATE profiles
		SET gems = gems + $2, updated_at = NOW()
		WHERE id = $1
	`
	return q.updateBalance(ctx, query, profileID, delta)
}

func (q *queries) updateBalance(ctx context.Context, query string, profileID, delta int64) error {
	tag, err := q.db.Exec(ctx, query, profileID, delta)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

// SpendProfileGems subtracts cost only when the balance covers it
func (q *queries) SpendProfileGems(ctx context.Context, profileID, cost int64) (bool, error) {
	query := `
		UPDATE profiles
		SET gems = gems - $2, updated_at = NOW()
		WHERE id = $1 AND gems >= $2
	`
	tag, err := q.db.Exec(ctx, query, profileID, cost)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	return tag.RowsAffected() == 1, nil
}
