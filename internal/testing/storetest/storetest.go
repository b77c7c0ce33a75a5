// Package storetest is a behavioral suite shared by every repository.Progression
// implementation. Each storage engine runs it from its own tests.
package storetest

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/repository"
)

var profileSeq atomic.Int64

// nextProfileID isolates subtests that share one database
func nextProfileID() int64 {
	return 1000 + profileSeq.Add(1)
}

// Run exercises store against the repository contract
func Run(t *testing.T, store repository.Progression) {
	t.Helper()

	t.Run("Profile", func(t *testing.T) { testProfile(t, store) })
	t.Run("Balances", func(t *testing.T) { testBalances(t, store) })
	t.Run("Milestones", func(t *testing.T) { testMilestones(t, store) })
	t.Run("ConcurrentClaims", func(t *testing.T) { testConcurrentClaims(t, store) })
	t.Run("Artifacts", func(t *testing.T) { testArtifacts(t, store) })
	t.Run("PityState", func(t *testing.T) { testPityState(t, store) })
	t.Run("Talents", func(t *testing.T) { testTalents(t, store) })
	t.Run("Completions", func(t *testing.T) { testCompletions(t, store) })
	t.Run("Transactions", func(t *testing.T) { testTransactions(t, store) })
}

func newProfile(t *testing.T, store repository.Progression) int64 {
	t.Helper()
	id := nextProfileID()
	require.NoError(t, store.EnsureProfile(context.Background(), id))
	return id
}

func testProfile(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := nextProfileID()

	p, err := store.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p, "profile should not exist before first access")

	require.NoError(t, store.EnsureProfile(ctx, id))
	require.NoError(t, store.EnsureProfile(ctx, id), "EnsureProfile must be idempotent")

	p, err = store.GetProfile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, domain.DefaultProfileName, p.Name)
	assert.Nil(t, p.JobClass)
	assert.Nil(t, p.Element)
	assert.Zero(t, p.XP)
	assert.Zero(t, p.Gems)

	mage, pyro := domain.JobMage, domain.ElementPyro
	p.JobClass, p.Element = &mage, &pyro
	require.NoError(t, store.UpsertProfile(ctx, p))

	p, err = store.GetProfile(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p.JobClass)
	require.NotNil(t, p.Element)
	assert.Equal(t, domain.JobMage, *p.JobClass)
	assert.Equal(t, domain.ElementPyro, *p.Element)

	p.JobClass = nil
	require.NoError(t, store.UpsertProfile(ctx, p))
	p, err = store.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, p.JobClass, "tag should be clearable")
	assert.NotNil(t, p.Element)
}

func testBalances(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	require.NoError(t, store.AddProfileXP(ctx, id, 105))
	require.NoError(t, store.AddProfileGems(ctx, id, 5))

	ok, err := store.SpendProfileGems(ctx, id, 10)
	require.NoError(t, err)
	assert.False(t, ok, "spend above balance must fail")

	p, err := store.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(105), p.XP)
	assert.Equal(t, int64(5), p.Gems, "failed spend must not mutate")

	ok, err = store.SpendProfileGems(ctx, id, 5)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.AddProfileXP(ctx, id, -500))
	p, err = store.GetProfile(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, p.XP, "xp clamps at zero")
	assert.Zero(t, p.Gems)

	err = store.AddProfileGems(ctx, id, -1)
	assert.Error(t, err, "balance can never go negative")

	err = store.AddProfileXP(ctx, nextProfileID(), 10)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func testMilestones(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	ok, err := store.ClaimMilestone(ctx, id, "2026-10-19", domain.KeyDailyLogin)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.ClaimMilestone(ctx, id, "2026-10-19", domain.KeyDailyLogin)
	require.NoError(t, err)
	assert.False(t, ok, "second claim must fail")

	ok, err = store.ClaimMilestone(ctx, id, "2026-10-20", domain.KeyDailyLogin)
	require.NoError(t, err)
	assert.True(t, ok, "another bucket is independent")

	n, err := store.CountMilestones(ctx, id, "2026-10-19", domain.KeyDailyLogin)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	ok, err = store.ClaimAchievement(ctx, id, domain.AchievementFirstBlood)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = store.ClaimAchievement(ctx, id, domain.AchievementFirstBlood)
	require.NoError(t, err)
	assert.False(t, ok)
}

func testConcurrentClaims(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	const workers = 8
	var (
		wg   sync.WaitGroup
		wins atomic.Int32
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.ClaimMilestone(ctx, id, domain.BucketWeekly, "weekly-boss-2026-43")
			if err != nil {
				t.Errorf("claim failed: %v", err)
				return
			}
			if ok {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load(), "exactly one claim may win")
}

func testArtifacts(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	first, err := store.AddArtifact(ctx, id, "Traveler's Charm", domain.RarityCommon, domain.PerkXPBoost, []byte(`{"xp_boost_pct":5}`))
	require.NoError(t, err)
	second, err := store.AddArtifact(ctx, id, "Pyro Emblem", domain.RarityRare, domain.PerkThemePyro, []byte(`{"theme":"Pyro"}`))
	require.NoError(t, err)
	assert.Greater(t, second, first)

	a, err := store.GetArtifact(ctx, id, first)
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Traveler's Charm", a.Name)
	assert.Equal(t, domain.RarityCommon, a.Rarity)
	assert.Equal(t, domain.PerkXPBoost, a.PerkKey)
	assert.JSONEq(t, `{"xp_boost_pct":5}`, string(a.Data))
	assert.False(t, a.Equipped, "new artifacts start unequipped")
	assert.False(t, a.AcquiredAt.IsZero())

	other := newProfile(t, store)
	a, err = store.GetArtifact(ctx, other, first)
	require.NoError(t, err)
	assert.Nil(t, a, "artifacts are scoped to their profile")

	ok, err := store.SetArtifactEquipped(ctx, id, first, true)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.SetArtifactEquipped(ctx, id, 999999, true)
	require.NoError(t, err)
	assert.False(t, ok)

	all, err := store.ListArtifacts(ctx, id, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, first, all[0].ID)

	equipped, err := store.ListArtifacts(ctx, id, true)
	require.NoError(t, err)
	require.Len(t, equipped, 1)
	assert.Equal(t, first, equipped[0].ID)

	require.NoError(t, store.LogWish(ctx, domain.WishLogEntry{
		ProfileID:  id,
		ArtifactID: second,
		Name:       "Pyro Emblem",
		Rarity:     domain.RarityRare,
		PerkKey:    domain.PerkThemePyro,
	}))
}

func testPityState(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	state, err := store.GetPityState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PityState{ProfileID: id}, state)

	require.NoError(t, store.SetPityState(ctx, domain.PityState{ProfileID: id, PityRare: 3, PityEpic: 17}))
	require.NoError(t, store.SetPityState(ctx, domain.PityState{ProfileID: id, PityRare: 4, PityEpic: 18}))

	state, err = store.GetPityState(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, state.PityRare)
	assert.Equal(t, 18, state.PityEpic)
}

func testTalents(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	level, err := store.GetTalentLevel(ctx, id, domain.TalentComboMastery)
	require.NoError(t, err)
	assert.Zero(t, level)

	require.NoError(t, store.SetTalentLevel(ctx, id, domain.TalentComboMastery, 1))
	require.NoError(t, store.SetTalentLevel(ctx, id, domain.TalentComboMastery, 2))

	level, err = store.GetTalentLevel(ctx, id, domain.TalentComboMastery)
	require.NoError(t, err)
	assert.Equal(t, 2, level)

	levels, err := store.ListTalentLevels(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[domain.TalentKey]int{domain.TalentComboMastery: 2}, levels)
}

func testCompletions(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)
	at := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t2", true, at.Add(time.Minute)))
	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t1", true, at))
	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t3", true, at))
	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t3", false, at))
	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-17", "t1", true, at.AddDate(0, 0, -2)))
	// completing again keeps the first timestamp
	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t1", true, at.Add(2*time.Hour)))

	n, err := store.GetCompletionCountForDay(ctx, id, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	done, err := store.GetCompletions(ctx, id, "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"t1": true, "t2": true, "t3": false}, done)

	list, err := store.ListCompletions(ctx, id, "2026-10-19")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "t1", list[0].TaskID)
	assert.Equal(t, "t2", list[1].TaskID)
	assert.True(t, list[0].CompletedAt.Equal(at), "got %v", list[0].CompletedAt)

	require.NoError(t, store.SetTaskCompletion(ctx, id, "2026-10-19", "t3", true, at.Add(3*time.Hour)))
	list, err = store.ListCompletions(ctx, id, "2026-10-19")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.True(t, list[2].CompletedAt.Equal(at.Add(3*time.Hour)), "uncompleted tasks get a fresh timestamp")

	counts, err := store.GetCompletionCounts(ctx, id, "2026-10-17", "2026-10-19")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"2026-10-17": 1, "2026-10-19": 3}, counts)
}

func testTransactions(t *testing.T, store repository.Progression) {
	ctx := context.Background()
	id := newProfile(t, store)

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.LockProfile(ctx, id))
		require.NoError(t, tx.AddProfileGems(ctx, id, 50))
		_, err = tx.ClaimMilestone(ctx, id, "2026-10-19", "rolled-back")
		require.NoError(t, err)
		require.NoError(t, tx.Rollback(ctx))

		p, err := store.GetProfile(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, p.Gems)

		n, err := store.CountMilestones(ctx, id, "2026-10-19", "rolled-back")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("commit keeps writes and closes the tx", func(t *testing.T) {
		err := repository.WithTx(ctx, store, func(tx repository.ProgressionTx) error {
			if err := tx.LockProfile(ctx, id); err != nil {
				return err
			}
			return tx.AddProfileGems(ctx, id, 30)
		})
		require.NoError(t, err)

		p, err := store.GetProfile(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(30), p.Gems)
	})

	t.Run("rollback after commit reports a closed tx", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))
		assert.ErrorIs(t, tx.Rollback(ctx), repository.ErrTxClosed)
	})

	t.Run("locking a missing profile fails", func(t *testing.T) {
		tx, err := store.BeginTx(ctx)
		require.NoError(t, err)
		defer repository.SafeRollback(ctx, tx)
		assert.ErrorIs(t, tx.LockProfile(ctx, nextProfileID()), domain.ErrProfileNotFound)
	})
}
