// Package rewards turns player actions into XP and gems. Every one-time
// reward is claimed through the milestone guard in the same transaction
// that grants it.
package rewards

import (
	"context"
	"time"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/ledger"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/metrics"
	"github.com/osse101/TinyWins_Go/internal/milestone"
	"github.com/osse101/TinyWins_Go/internal/repository"
	"github.com/osse101/TinyWins_Go/internal/talent"
)

// Service defines the reward flows. Days are ISO dates ("2006-01-02") and
// double as the milestone bucket.
type Service interface {
	ClaimDailyLogin(ctx context.Context, profileID int64, day string) (bool, error)
	Commissions(day string) ([]domain.Commission, error)
	ClaimCommission(ctx context.Context, profileID int64, day, key string) (bool, error)
	ClaimWeeklyBoss(ctx context.Context, profileID int64, day string) (bool, error)

	// AwardTask grants the first-completion reward of taskID on day together
	// with any achievement it unlocks
	AwardTask(ctx context.Context, profileID int64, day, taskID string) (*domain.TaskReward, error)
	// CompleteTask records the completion, awards it and applies the combo bonus
	CompleteTask(ctx context.Context, profileID int64, day, taskID string, at time.Time) (*domain.TaskReward, error)
	UncompleteTask(ctx context.Context, profileID int64, day, taskID string) error
	// CheckBingoLines awards every fully completed line of board not yet
	// awarded on day and returns the keys of the lines awarded now
	CheckBingoLines(ctx context.Context, profileID int64, day string, board []string) ([]string, error)

	CanUseFreeReroll(ctx context.Context, profileID int64, day string) (bool, error)
	Reroll(ctx context.Context, profileID int64, day string) (domain.RerollResult, error)
}

type service struct {
	repo       repository.Progression
	ledger     ledger.Service
	talents    talent.Service
	guard      *milestone.Guard
	rerollCost int64
}

// NewService creates the reward service
func NewService(repo repository.Progression, ledgerSvc ledger.Service, talents talent.Service, rerollCost int64) Service {
	return &service{
		repo:       repo,
		ledger:     ledgerSvc,
		talents:    talents,
		guard:      milestone.NewGuard(repo),
		rerollCost: rerollCost,
	}
}

// grantTx credits r through the perk-aware ledger paths
func (s *service) grantTx(ctx context.Context, tx repository.Queries, profileID int64, r domain.Reward, kind string) (xp, gems int64, err error) {
	xp, err = s.ledger.AddXPTx(ctx, tx, profileID, r.XP, kind)
	if err != nil {
		return 0, 0, err
	}
	gems, err = s.ledger.GrantGemsTx(ctx, tx, profileID, r.Gems, kind)
	if err != nil {
		return 0, 0, err
	}
	metrics.RewardsClaimed.WithLabelValues(kind).Inc()
	return xp, gems, nil
}

// claimAndGrant claims (bucket, key) and grants r only if the claim was new
func (s *service) claimAndGrant(ctx context.Context, profileID int64, bucket, key string, r domain.Reward, kind string) (bool, error) {
	var claimed bool
	var xp, gems int64
	err := s.ledger.RunInTx(ctx, profileID, opClaim, func(tx repository.ProgressionTx) error {
		var err error
		claimed, err = milestone.ClaimOnceTx(ctx, tx, profileID, bucket, key)
		if err != nil || !claimed {
			return err
		}
		xp, gems, err = s.grantTx(ctx, tx, profileID, r, kind)
		return err
	})
	if err != nil {
		return false, err
	}

	log := logger.FromContext(ctx)
	if !claimed {
		log.Debug(LogMsgRewardAlreadyTaken, "profile_id", profileID, "bucket", bucket, "key", key)
		return false, nil
	}
	log.Info(LogMsgRewardClaimed, "profile_id", profileID, "kind", kind, "key", key, "xp", xp, "gems", gems)
	return true, nil
}
