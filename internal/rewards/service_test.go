package rewards

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/ledger"
	"github.com/osse101/TinyWins_Go/internal/perk"
	"github.com/osse101/TinyWins_Go/internal/repository"
	"github.com/osse101/TinyWins_Go/internal/talent"
	"github.com/osse101/TinyWins_Go/internal/testing/leaktest"
	"github.com/osse101/TinyWins_Go/internal/testing/testdb"
)

const (
	profileID = domain.DefaultProfileID
	day       = "2026-10-19"
)

func newTestService(t *testing.T) (Service, repository.Progression) {
	t.Helper()
	store := testdb.NewSQLiteStore(t)
	require.NoError(t, store.EnsureProfile(context.Background(), profileID))

	ledgerSvc := ledger.NewService(store, perk.NewResolver(16), nil)
	return NewService(store, ledgerSvc, talent.NewService(store, ledgerSvc), 5), store
}

func balances(t *testing.T, store repository.Progression) (xp, gems int64) {
	t.Helper()
	p, err := store.GetProfile(context.Background(), profileID)
	require.NoError(t, err)
	return p.XP, p.Gems
}

func equip(t *testing.T, store repository.Progression, perkKey domain.PerkKey, data string) {
	t.Helper()
	ctx := context.Background()
	id, err := store.AddArtifact(ctx, profileID, "test", domain.RarityCommon, perkKey, []byte(data))
	require.NoError(t, err)
	_, err = store.SetArtifactEquipped(ctx, profileID, id, true)
	require.NoError(t, err)
}

func TestClaimDailyLogin(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ok, err := svc.ClaimDailyLogin(ctx, profileID, day)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ClaimDailyLogin(ctx, profileID, day)
	require.NoError(t, err)
	assert.False(t, ok)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(30), xp)
	assert.Equal(t, int64(20), gems)

	ok, err = svc.ClaimDailyLogin(ctx, profileID, "2026-10-20")
	require.NoError(t, err)
	assert.True(t, ok, "a new day is a new bucket")
}

func TestClaimDailyLogin_InvalidDay(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.ClaimDailyLogin(context.Background(), profileID, "19/10/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClaimDailyLogin_GemGrantUsesPerksAndTalents(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	equip(t, store, domain.PerkDropBoost, `{"drop_boost_pct":5}`)
	require.NoError(t, store.SetTalentLevel(ctx, profileID, domain.TalentElementalAttunement, 2))

	ok, err := svc.ClaimDailyLogin(ctx, profileID, day)
	require.NoError(t, err)
	require.True(t, ok)

	_, gems := balances(t, store)
	assert.Equal(t, int64(23), gems, "20 * 1.05 = 21, plus 2 from attunement")
}

func TestClaimDailyLogin_NegativeGemPerkStillClaims(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	equip(t, store, domain.PerkDropBoost, `{"drop_boost_pct":-200}`)

	ok, err := svc.ClaimDailyLogin(ctx, profileID, day)
	require.NoError(t, err)
	require.True(t, ok)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(30), xp)
	assert.Equal(t, int64(20), gems, "the bad payload adds no bonus")
}

func TestClaimDailyLogin_ConcurrentClaimsGrantOnce(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)
	svc, store := newTestService(t)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := svc.ClaimDailyLogin(ctx, profileID, day)
			assert.NoError(t, err)
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	_, gems := balances(t, store)
	assert.Equal(t, int64(20), gems)
	checker.Check(2)
}

func TestCommissions(t *testing.T) {
	svc, _ := newTestService(t)

	first, err := svc.Commissions(day)
	require.NoError(t, err)
	second, err := svc.Commissions(day)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same day, same commissions")

	require.Len(t, first, domain.CommissionsPerDay)
	seen := map[string]bool{}
	for i, c := range first {
		assert.Equal(t, fmt.Sprintf("commission-%d", i+1), c.Key)
		assert.Contains(t, domain.CommissionTitles, c.Title)
		assert.False(t, seen[c.Title], "titles are distinct")
		seen[c.Title] = true
	}

	varied := false
	for d := 1; d <= 14 && !varied; d++ {
		other := CommissionsFor(fmt.Sprintf("2026-11-%02d", d))
		varied = other[0].Title != first[0].Title || other[1].Title != first[1].Title
	}
	assert.True(t, varied, "the offer changes across days")

	_, err = svc.Commissions("tomorrow")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestClaimCommission(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClaimCommission(ctx, profileID, day, "commission-4")
	assert.ErrorIs(t, err, domain.ErrUnknownCommission)

	ok, err := svc.ClaimCommission(ctx, profileID, day, "commission-2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ClaimCommission(ctx, profileID, day, "commission-2")
	require.NoError(t, err)
	assert.False(t, ok)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(20), xp)
	assert.Equal(t, int64(12), gems)
}

func TestClaimWeeklyBoss(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	ok, err := svc.ClaimWeeklyBoss(ctx, profileID, "2026-10-19")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.ClaimWeeklyBoss(ctx, profileID, "2026-10-25")
	require.NoError(t, err)
	assert.False(t, ok, "Sunday is still the same ISO week")

	ok, err = svc.ClaimWeeklyBoss(ctx, profileID, "2026-10-26")
	require.NoError(t, err)
	assert.True(t, ok)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(240), xp)
	assert.Equal(t, int64(160), gems)
}

func TestCompleteTask_FirstBloodOnce(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)

	r, err := svc.CompleteTask(ctx, profileID, day, "walk", at)
	require.NoError(t, err)
	assert.True(t, r.Awarded)
	assert.Equal(t, []string{domain.AchievementFirstBlood.Key}, r.Achievements)
	assert.Equal(t, int64(20), r.XPGained)
	assert.Equal(t, int64(10), r.GemsGained)

	r, err = svc.CompleteTask(ctx, profileID, day, "read", at.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, r.Awarded)
	assert.Empty(t, r.Achievements)

	r, err = svc.CompleteTask(ctx, profileID, day, "walk", at.Add(2*time.Hour))
	require.NoError(t, err)
	assert.False(t, r.Awarded, "a task is awarded once per day")

	// achievements are once ever, not once per day
	r, err = svc.CompleteTask(ctx, profileID, "2026-10-20", "walk", at.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.True(t, r.Awarded)
	assert.Empty(t, r.Achievements)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(40), xp)
	assert.Equal(t, int64(20), gems)
}

func TestCompleteTask_BingoAchievement(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 19, 8, 0, 0, 0, time.Local)

	var last *domain.TaskReward
	for i := 0; i < domain.BoardSize; i++ {
		var err error
		last, err = svc.CompleteTask(ctx, profileID, day, fmt.Sprintf("t%d", i), at.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{domain.AchievementBingo.Key}, last.Achievements)
}

func TestCompleteTask_ComboBonus(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.SetTalentLevel(ctx, profileID, domain.TalentComboMastery, 2))
	at := time.Date(2026, 10, 19, 18, 0, 0, 0, time.Local)

	r, err := svc.CompleteTask(ctx, profileID, day, "a", at)
	require.NoError(t, err)
	assert.Zero(t, r.ComboXP, "a single completion is no combo")

	r, err = svc.CompleteTask(ctx, profileID, day, "b", at.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(4), r.ComboXP)
	assert.Equal(t, int64(14), r.XPGained)

	r, err = svc.CompleteTask(ctx, profileID, day, "c", at.Add(time.Hour))
	require.NoError(t, err)
	assert.Zero(t, r.ComboXP, "earlier completions fell out of the window")
}

func TestCompleteTask_RepeatKeepsFirstTime(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.SetTalentLevel(ctx, profileID, domain.TalentComboMastery, 2))
	at := time.Date(2026, 10, 19, 18, 0, 0, 0, time.Local)

	_, err := svc.CompleteTask(ctx, profileID, day, "a", at)
	require.NoError(t, err)
	r, err := svc.CompleteTask(ctx, profileID, day, "a", at.Add(9*time.Minute))
	require.NoError(t, err)
	assert.False(t, r.Awarded)

	r, err = svc.CompleteTask(ctx, profileID, day, "b", at.Add(12*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, r.ComboXP, "a still counts from its first completion")
}

func TestUncompleteTask(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	_, err := svc.CompleteTask(ctx, profileID, day, "a", time.Now())
	require.NoError(t, err)
	require.NoError(t, svc.UncompleteTask(ctx, profileID, day, "a"))

	n, err := store.GetCompletionCountForDay(ctx, profileID, day)
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.ErrorIs(t, svc.UncompleteTask(ctx, profileID, day, "  "), domain.ErrInvalidInput)
}

func TestCheckBingoLines(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	board := []string{"t0", "t1", "t2", "t3", "t4", "t5", "t6", "t7", "t8"}

	at := time.Date(2026, 10, 19, 7, 0, 0, 0, time.Local)
	for _, i := range []int{0, 1, 2, 4, 8} {
		require.NoError(t, store.SetTaskCompletion(ctx, profileID, day, board[i], true, at))
	}

	lines, err := svc.CheckBingoLines(ctx, profileID, day, board)
	require.NoError(t, err)
	assert.Equal(t, []string{"line-012", "line-048"}, lines)

	xp, gems := balances(t, store)
	assert.Equal(t, int64(50), xp)
	assert.Equal(t, int64(20), gems)

	lines, err = svc.CheckBingoLines(ctx, profileID, day, board)
	require.NoError(t, err)
	assert.Empty(t, lines, "each line pays once per day")

	_, err = svc.CheckBingoLines(ctx, profileID, day, board[:8])
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReroll_Paid(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	require.NoError(t, store.AddProfileGems(ctx, profileID, 3))

	res, err := svc.Reroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	require.NoError(t, store.AddProfileGems(ctx, profileID, 7))
	res, err = svc.Reroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.Equal(t, domain.RerollResult{Allowed: true, Cost: 5}, res)

	_, gems := balances(t, store)
	assert.Equal(t, int64(5), gems)
}

func TestReroll_FreeOncePerDayWithPerk(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	equip(t, store, domain.PerkRerollBonus, `{"reroll_bonus":1}`)
	require.NoError(t, store.AddProfileGems(ctx, profileID, 5))

	can, err := svc.CanUseFreeReroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.True(t, can)

	res, err := svc.Reroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.Equal(t, domain.RerollResult{Allowed: true, Free: true}, res)

	can, err = svc.CanUseFreeReroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.False(t, can)

	res, err = svc.Reroll(ctx, profileID, day)
	require.NoError(t, err)
	assert.Equal(t, domain.RerollResult{Allowed: true, Cost: 5}, res)

	can, err = svc.CanUseFreeReroll(ctx, profileID, "2026-10-20")
	require.NoError(t, err)
	assert.True(t, can)
}

func TestCanUseFreeReroll_WithoutPerk(t *testing.T) {
	svc, _ := newTestService(t)

	can, err := svc.CanUseFreeReroll(context.Background(), profileID, day)
	require.NoError(t, err)
	assert.False(t, can)
}
