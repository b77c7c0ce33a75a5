package rewards

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand/v2"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

// dayBucket validates day and returns it in canonical form
func dayBucket(day string) (string, error) {
	t, err := domain.ParseDay(day)
	if err != nil {
		return "", err
	}
	return domain.DayBucket(t), nil
}

func (s *service) ClaimDailyLogin(ctx context.Context, profileID int64, day string) (bool, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return false, err
	}
	return s.claimAndGrant(ctx, profileID, bucket, domain.KeyDailyLogin, domain.RewardDailyLogin, KindDailyLogin)
}

// Commissions returns the commissions offered on day. The same day always
// yields the same titles in the same order.
func (s *service) Commissions(day string) ([]domain.Commission, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return nil, err
	}
	return CommissionsFor(bucket), nil
}

// CommissionsFor shuffles the title pool with a seed derived from day and
// keeps the first CommissionsPerDay titles
func CommissionsFor(day string) []domain.Commission {
	h := fnv.New64a()
	_, _ = h.Write([]byte(day))
	rng := rand.New(rand.NewPCG(h.Sum64(), 0))

	titles := append([]string(nil), domain.CommissionTitles...)
	rng.Shuffle(len(titles), func(i, j int) { titles[i], titles[j] = titles[j], titles[i] })

	n := min(domain.CommissionsPerDay, len(titles))
	out := make([]domain.Commission, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Commission{Key: domain.CommissionKey(i + 1), Title: titles[i]})
	}
	return out
}

// ClaimCommission claims one of the day's commissions. Keys outside the
// day's offer fail with ErrUnknownCommission.
func (s *service) ClaimCommission(ctx context.Context, profileID int64, day, key string) (bool, error) {
	bucket, err := dayBucket(day)
	if err != nil {
		return false, err
	}

	known := false
	for _, c := range CommissionsFor(bucket) {
		if c.Key == key {
			known = true
			break
		}
	}
	if !known {
		return false, fmt.Errorf("%w: %q", domain.ErrUnknownCommission, key)
	}

	return s.claimAndGrant(ctx, profileID, bucket, key, domain.RewardCommission, KindCommission)
}

// ClaimWeeklyBoss grants the boss reward once per ISO week containing day
func (s *service) ClaimWeeklyBoss(ctx context.Context, profileID int64, day string) (bool, error) {
	t, err := domain.ParseDay(day)
	if err != nil {
		return false, err
	}
	return s.claimAndGrant(ctx, profileID, domain.BucketWeekly, domain.WeeklyBossKey(t), domain.RewardWeeklyBoss, KindWeeklyBoss)
}
