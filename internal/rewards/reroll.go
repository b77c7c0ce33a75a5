package rewards

import (
	"context"
	"strconv"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/logger"
	"github.com/osse101/TinyWins_Go/internal/metrics"
	"github.com/osse101/TinyWins_Go/internal/milestone"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

// CanUseFreeReroll reports whether a reroll on day would be free. It does
// not consume anything.
func (s *service) CanUseFreeReroll(ctx context.Context, profileID int64, day string) (bool, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return false, err
	}

	has, err := s.ledger.Perks().HasEquipped(ctx, s.repo, profileID, domain.PerkRerollBonus)
	if err != nil || !has {
		return false, err
	}
	used, err := s.guard.IsClaimed(ctx, profileID, bucket, domain.KeyFreeReroll)
	if err != nil {
		return false, err
	}
	return !used, nil
}

// Reroll pays for a board reroll on day: free once per day with a reroll
// perk equipped, otherwise the reroll cost in gems. Allowed is false when
// the balance is short.
func (s *service) Reroll(ctx context.Context, profileID int64, day string) (domain.RerollResult, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return domain.RerollResult{}, err
	}

	var res domain.RerollResult
	err = s.ledger.RunInTx(ctx, profileID, opReroll, func(tx repository.ProgressionTx) error {
		has, err := s.ledger.Perks().HasEquipped(ctx, tx, profileID, domain.PerkRerollBonus)
		if err != nil {
			return err
		}
		if has {
			free, err := milestone.ClaimOnceTx(ctx, tx, profileID, bucket, domain.KeyFreeReroll)
			if err != nil {
				return err
			}
			if free {
				res = domain.RerollResult{Allowed: true, Free: true}
				return nil
			}
		}

		paid, err := s.ledger.SpendGemsTx(ctx, tx, profileID, s.rerollCost, PurposeReroll)
		if err != nil {
			return err
		}
		res = domain.RerollResult{Allowed: paid, Cost: s.rerollCost}
		return nil
	})
	if err != nil {
		return domain.RerollResult{}, err
	}

	if res.Allowed {
		metrics.RerollsConsumed.WithLabelValues(strconv.FormatBool(res.Free)).Inc()
	}
	logger.FromContext(ctx).Info(LogMsgReroll, "profile_id", profileID, "day", bucket,
		"allowed", res.Allowed, "free", res.Free, "cost", res.Cost)
	return res, nil
}
