// Package talent manages the gem-bought talent levels and the combo bonus
// they unlock.
package talent

import (
	"context"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/ledger"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/metrics"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// Service defines talent operations
type Service interface {
	// Upgrade buys one level of key. False means nothing changed: the key
	// is unknown, the talent is maxed or the balance is short.
	Upgrade(ctx context.Context, profileID int64, key domain.TalentKey) (bool, error)
	Status(ctx context.Context, profileID int64) ([]domain.TalentStatus, error)

	// ApplyComboBonus grants the combo mastery XP when at least
	// ComboMinCompletions tasks were completed recently. It returns the XP
	// credited. There is no idempotency guard.
	ApplyComboBonus(ctx context.Context, profileID int64, recentCompletions int) (int64, error)
	ApplyComboBonusTx(ctx context.Context, tx repository.Queries, profileID int64, recentCompletions int) (int64, error)
}

type service struct {
	repo   repository.Talent
	ledger ledger.Service
}

// NewService creates a talent service
func NewService(repo repository.Talent, ledgerSvc ledger.Service) Service {
	return &service{repo: repo, ledger: ledgerSvc}
}

func (s *service) Upgrade(ctx context.Context, profileID int64, key domain.TalentKey) (bool, error) {
	log := logger.FromContext(ctx)

	def, ok := domain.LookupTalent(key)
	if !ok {
		log.Info(LogMsgUpgradeRejected, "profile_id", profileID, "talent", key, "reason", reasonUnknown)
		return false, nil
	}

	var upgraded bool
	var newLevel int
	reason := ""
	err := s.ledger.RunInTx(ctx, profileID, opUpgrade, func(tx repository.ProgressionTx) error {
		level, err := tx.GetTalentLevel(ctx, profileID, key)
		if err != nil {
			return err
		}
		if level >= def.MaxLevel {
			reason = reasonMaxLevel
			return nil
		}

		paid, err := s.ledger.SpendGemsTx(ctx, tx, profileID, domain.TalentUpgradeCost, PurposeUpgrade)
		if err != nil {
			return err
		}
		if !paid {
			reason = reasonFunds
			return nil
		}

		newLevel = level + 1
		if err := tx.SetTalentLevel(ctx, profileID, key, newLevel); err != nil {
			return err
		}
		upgraded = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if !upgraded {
		log.Info(LogMsgUpgradeRejected, "profile_id", profileID, "talent", key, "reason", reason)
		return false, nil
	}

	metrics.TalentUpgrades.WithLabelValues(string(key)).Inc()
	log.Info(LogMsgTalentUpgraded, "profile_id", profileID, "talent", key, "level", newLevel)
	return true, nil
}

// Status lists every talent with the profile's level, in catalog order
func (s *service) Status(ctx context.Context, profileID int64) ([]domain.TalentStatus, error) {
	levels, err := s.repo.ListTalentLevels(ctx, profileID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.TalentStatus, 0, len(domain.Talents))
	for _, t := range domain.Talents {
		out = append(out, domain.TalentStatus{Talent: t, Level: levels[t.Key]})
	}
	return out, nil
}

func (s *service) ApplyComboBonus(ctx context.Context, profileID int64, recentCompletions int) (int64, error) {
	var gained int64
	err := s.ledger.RunInTx(ctx, profileID, opCombo, func(tx repository.ProgressionTx) error {
		var err error
		gained, err = s.ApplyComboBonusTx(ctx, tx, profileID, recentCompletions)
		return err
	})
	return gained, err
}

func (s *service) ApplyComboBonusTx(ctx context.Context, tx repository.Queries, profileID int64, recentCompletions int) (int64, error) {
	if recentCompletions < ComboMinCompletions {
		return 0, nil
	}

	def, _ := domain.LookupTalent(domain.TalentComboMastery)
	level, err := tx.GetTalentLevel(ctx, profileID, domain.TalentComboMastery)
	if err != nil {
		return 0, err
	}
	bonus := int64(level) * def.XPBonusPerLevel
	if bonus <= 0 {
		return 0, nil
	}

	gained, err := s.ledger.AddXPTx(ctx, tx, profileID, bonus, SourceCombo)
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info(LogMsgComboApplied, "profile_id", profileID, "level", level, "xp", gained)
	return gained, nil
}
