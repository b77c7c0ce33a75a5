package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

const artifactColumns = `id, profile_id, name, rarity, perk_key, data, equipped, acquired_at`

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// AddArtifact inserts an unequipped artifact and returns its id
func (q *queries) AddArtifact(ctx context.Context, profileID int64, name string, rarity domain.Rarity, perkKey domain.PerkKey, data []byte) (int64, error) {
	query := `
		INSERT INTO artifacts (profile_id, name, rarity, perk_key, data, equipped, acquired_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
	`
	res, err := q.db.ExecContext(ctx, query, profileID, name, string(rarity), string(perkKey), string(data), toMillis(q.now()))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToAddArtifact, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToAddArtifact, err)
	}
	return id, nil
}

// GetArtifact retrieves an artifact owned by the profile (returns nil, nil if not found)
func (q *queries) GetArtifact(ctx context.Context, profileID, artifactID int64) (*domain.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE profile_id = ? AND id = ?`

	a, err := scanArtifact(q.db.QueryRowContext(ctx, query, profileID, artifactID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToGetArtifact, err)
	}
	return a, nil
}

// ListArtifacts returns the profile's artifacts in acquisition order
func (q *queries) ListArtifacts(ctx context.Context, profileID int64, equippedOnly bool) ([]domain.Artifact, error) {
	query := `
		SELECT ` + artifactColumns + `
		FROM artifacts
		WHERE profile_id = ? AND (? = 0 OR equipped = 1)
		ORDER BY id
	`

	rows, err := q.db.QueryContext(ctx, query, profileID, boolToInt(equippedOnly))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToListArtifacts, err)
	}
	defer rows.Close()

	var artifacts []domain.Artifact
	for rows.Next() {
		a, err := scanArtifact(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", database.ErrMsgFailedToScanRow, err)
		}
		artifacts = append(artifacts, *a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", database.ErrMsgRowIterationError, err)
	}
	return artifacts, nil
}

// SetArtifactEquipped reports false when the artifact does not exist for the profile
func (q *queries) SetArtifactEquipped(ctx context.Context, profileID, artifactID int64, equipped bool) (bool, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE artifacts SET equipped = ? WHERE profile_id = ? AND id = ?`,
		boolToInt(equipped), profileID, artifactID,
	)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToEquipArtifact, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToEquipArtifact, err)
	}
	return n == 1, nil
}

// LogWish appends one drawn artifact to the wish log
func (q *queries) LogWish(ctx context.Context, entry domain.WishLogEntry) error {
	query := `
		INSERT INTO wish_log (profile_id, artifact_id, name, rarity, perk_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := q.db.ExecContext(ctx, query,
		entry.ProfileID, entry.ArtifactID, entry.Name, string(entry.Rarity), string(entry.PerkKey), toMillis(q.now()),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToLogWish, err)
	}
	return nil
}

func scanArtifact(row rowScanner) (*domain.Artifact, error) {
	var (
		a          domain.Artifact
		rarity     string
		perkKey    string
		data       string
		equipped   int
		acquiredAt int64
	)
	err := row.Scan(
		&a.ID,
		&a.ProfileID,
		&a.Name,
		&rarity,
		&perkKey,
		&data,
		&equipped,
		&acquiredAt,
	)
	if err != nil {
		return nil, err
	}
	a.Rarity = domain.Rarity(rarity)
	a.PerkKey = domain.PerkKey(perkKey)
	a.Data = []byte(data)
	a.Equipped = equipped != 0
	a.AcquiredAt = fromMillis(acquiredAt)
	return &a, nil
}
