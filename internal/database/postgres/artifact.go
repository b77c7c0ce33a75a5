package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/domain"
)

const artifactColumns = `id, profile_id, name, rarity, perk_key, data, equipped, acquired_at`

// AddArtifact inserts an unequipped artifact and returns its id
func (q *queries) AddArtifact(ctx context.Context, profileID int64, name string, rarity domain.Rarity, perkKey domain.PerkKey, data []byte) (int64, error) {
	query := `
		INSERT INTO artifacts (profile_id, name, rarity, perk_key, data, equipped)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id
	`
	var id int64
	if err := q.db.QueryRow(ctx, query, profileID, name, string(rarity), string(perkKey), string(data)).Scan(&id); err != nil {
		return 0, fmt.Errorf("%s: %w", database.ErrMsgFailedToAddArtifact, err)
	}
	return id, nil
}

// GetArtifact retrieves an artifact owned by the profile (returns nil, nil if not found)
func (q *queries) GetArtifact(ctx context.Context, profileID, artifactID int64) (*domain.Artifact, error) {
	query := `SELECT ` + artifactColumns + ` FROM artifacts WHERE profile_id = $1 AND id = $2`

	a, err := scanArtifact(q.db.QueryRow(ctx, query, profileID, artifactID))
	if errors.Is(err, pgx.ErrNoRows) {
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
		WHERE profile_id = $1 AND ($2 = FALSE OR equipped)
		ORDER BY id
	`

	rows, err := q.db.Query(ctx, query, profileID, equippedOnly)
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
	query := `
		UPDATE artifacts
		SET equipped = $3
		WHERE profile_id = $1 AND id = $2
	`
	tag, err := q.db.Exec(ctx, query, profileID, artifactID, equipped)
	if err != nil {
		return false, fmt.Errorf("%s: %w", database.ErrMsgFailedToEquipArtifact, err)
	}
	return tag.RowsAffected() == 1, nil
}

// LogWish appends one drawn artifact to the wish log
func (q *queries) LogWish(ctx context.Context, entry domain.WishLogEntry) error {
	query := `
		INSERT INTO wish_log (profile_id, artifact_id, name, rarity, perk_key)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := q.db.Exec(ctx, query, entry.ProfileID, entry.ArtifactID, entry.Name, string(entry.Rarity), string(entry.PerkKey))
	if err != nil {
		return fmt.Errorf("%s: %w", database.ErrMsgFailedToLogWish, err)
	}
	return nil
}

func scanArtifact(row pgx.Row) (*domain.Artifact, error) {
	var (
		a       domain.Artifact
		rarity  string
		perkKey string
		data    string
	)
	err := row.Scan(
		&a.ID,
		&a.ProfileID,
		&a.Name,
		&rarity,
		&perkKey,
		&data,
		&a.Equipped,
		&a.AcquiredAt,
	)
	if err != nil {
		return nil, err
	}
	a.Rarity = domain.Rarity(rarity)
	a.PerkKey = domain.PerkKey(perkKey)
	a.Data = []byte(data)
	return &a, nil
}
