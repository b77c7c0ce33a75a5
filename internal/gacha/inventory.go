package gacha

import (
	"context"
	"fmt"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

func (s *service) ListArtifacts(ctx context.Context, profileID int64, equippedOnly bool) ([]domain.Artifact, error) {
	return s.repo.ListArtifacts(ctx, profileID, equippedOnly)
}

// Equip marks an owned artifact as equipped. Equipping twice is a no-op.
func (s *service) Equip(ctx context.Context, profileID, artifactID int64) error {
	return s.setEquipped(ctx, profileID, artifactID, true)
}

func (s *service) Unequip(ctx context.Context, profileID, artifactID int64) error {
	return s.setEquipped(ctx, profileID, artifactID, false)
}

func (s *service) setEquipped(ctx context.Context, profileID, artifactID int64, equipped bool) error {
	err := s.ledger.RunInTx(ctx, profileID, opEquip, func(tx repository.ProgressionTx) error {
		ok, err := tx.SetArtifactEquipped(ctx, profileID, artifactID, equipped)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %d", domain.ErrArtifactNotFound, artifactID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info(LogMsgArtifactEquip, "profile_id", profileID, "artifact_id", artifactID, "equipped", equipped)
	return nil
}
