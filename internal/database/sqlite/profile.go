package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

// GetProfile retrieves a profile (returns nil, nil if not found)
func (q *queries) GetProfile(ctx context.Context, profileID int64) (*domain.Profile, error) {
	query := `
		SELECT id, name, job_class, element, xp, gems, created_at, updated_at
		FROM profiles
		WHERE id = ?
	`

	var (
		p                    domain.Profile
		jobClass, element    sql.NullString
		createdAt, updatedAt int64
	)
	err := q.db.QueryRowContext(ctx, query, profileID).Scan(
		&p.ID,
		&p.Name,
		&jobClass,
		&element,
		&p.XP,
		&p.Gems,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetProfile, err)
	}

	if jobClass.Valid {
		jc := domain.JobClass(jobClass.String)
		p.JobClass = &jc
	}
	if element.Valid {
		el := domain.Element(element.String)
		p.Element = &el
	}
	p.CreatedAt = fromMillis(createdAt)
	p.UpdatedAt = fromMillis(updatedAt)
	return &p, nil
}

// UpsertProfile writes the name and tags of a profile
func (q *queries) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (id, name, job_class, element, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET name = excluded.name,
		    job_class = excluded.job_class,
		    element = excluded.element,
		    updated_at = excluded.updated_at
	`

	var jobClass, element sql.NullString
	if profile.JobClass != nil {
		jobClass = sql.NullString{String: string(*profile.JobClass), Valid: true}
	}
	if profile.Element != nil {
		element = sql.NullString{String: string(*profile.Element), Valid: true}
	}

	now := toMillis(q.now())
	if _, err := q.db.ExecContext(ctx, query, profile.ID, profile.Name, jobClass, element, now, now); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToUpsertProfile, err)
	}
	return nil
}

// EnsureProfile inserts a default profile if none exists
func (q *queries) EnsureProfile(ctx context.Context, profileID int64) error {
	query := `
		INSERT INTO profiles (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`
	now := toMillis(q.now())
	if _, err := q.db.ExecContext(ctx, query, profileID, domain.DefaultProfileName, now, now); err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToEnsureProfile, err)
	}
	return nil
}

// LockProfile turns the transaction into a write transaction. SQLite has no
// row locks; the first write takes the database-wide reserved lock.
func (q *queries) LockProfile(ctx context.Context, profileID int64) error {
	res, err := q.db.ExecContext(ctx, `UPDATE profiles SET updated_at = updated_at WHERE id = ?`, profileID)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToLockProfile, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToLockProfile, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

// AddProfileXP adds delta to the XP total, clamping at zero
func (q *queries) AddProfileXP(ctx context.Context, profileID, delta int64) error {
	query := `
		UPDATE profiles
		SET xp = MAX(0, xp + ?), updated_at = ?
		WHERE id = ?
	`
	return q.updateBalance(ctx, query, profileID, delta)
}

// AddProfileGems adds delta to the gem balance. The schema rejects a negative result.
func (q *queries) AddProfileGems(ctx context.Context, profileID, delta int64) error {
	query := `
		UPDATE profiles
		SET gems = gems + ?, updated_at = ?
		WHERE id = ?
	`
	return q.updateBalance(ctx, query, profileID, delta)
}

func (q *queries) updateBalance(ctx context.Context, query string, profileID, delta int64) error {
	res, err := q.db.ExecContext(ctx, query, delta, toMillis(q.now()), profileID)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", domain.ErrProfileNotFound, profileID)
	}
	return nil
}

// SpendProfileGems subtracts cost only when the balance covers it
func (q *queries) SpendProfileGems(ctx context.Context, profileID, cost int64) (bool, error) {
	query := `
		UPDATE profiles
		SET gems = gems - ?, updated_at = ?
		WHERE id = ? AND gems >= ?
	`
	res, err := q.db.ExecContext(ctx, query, cost, toMillis(q.now()), profileID, cost)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToUpdateBalances, err)
	}
	return n == 1, nil
}
