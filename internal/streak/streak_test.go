package streak

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/perk"
	"github.com/osse101/TinyWins_Go/internal/repository"
	"github.com/osse101/TinyWins_Go/internal/testing/testdb"
)

const profileID = domain.DefaultProfileID

func TestWalk(t *testing.T) {
	tests := []struct {
		name   string
		counts []int
		misses int
		want   int
	}{
		{"empty history", nil, 0, 0},
		{"nothing today", []int{0, 3, 3}, 0, 0},
		{"gap without shield", []int{1, 0, 1}, 0, 1},
		{"gap with shield", []int{1, 0, 1}, 1, 3},
		{"second gap ends walk", []int{2, 0, 1, 0, 1}, 1, 3},
		{"unbroken", []int{1, 4, 2, 1}, 0, 4},
		{"shield forgives today", []int{0, 1, 1}, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Walk(tt.counts, tt.misses))
		})
	}
}

func complete(t *testing.T, store repository.Progression, day time.Time, task string) {
	t.Helper()
	require.NoError(t, store.SetTaskCompletion(context.Background(), profileID, domain.DayBucket(day), task, true, day))
}

func equipShield(t *testing.T, store repository.Progression) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		id, err := store.AddArtifact(ctx, profileID, "Streak Shell", domain.RarityRare, domain.PerkStreakShield, []byte(`{"shield":1}`))
		require.NoError(t, err)
		_, err = store.SetArtifactEquipped(ctx, profileID, id, true)
		require.NoError(t, err)
	}
}

func TestEffectiveStreak(t *testing.T) {
	store := testdb.NewSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureProfile(ctx, profileID))
	svc := NewService(store, perk.NewResolver(16))

	today := time.Date(2026, 10, 19, 12, 0, 0, 0, time.Local)
	complete(t, store, today, "a")
	complete(t, store, today, "b")
	complete(t, store, today.AddDate(0, 0, -2), "a")
	complete(t, store, today.AddDate(0, 0, -4), "a")

	n, err := svc.EffectiveStreak(ctx, profileID, today, 60)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	// two shields still forgive only one day
	equipShield(t, store)
	n, err = svc.EffectiveStreak(ctx, profileID, today, 60)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = svc.EffectiveStreak(ctx, profileID, today, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "lookback bounds the walk")
}

func TestEffectiveStreak_UncompletedTasksDoNotCount(t *testing.T) {
	store := testdb.NewSQLiteStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureProfile(ctx, profileID))
	svc := NewService(store, perk.NewResolver(16))

	today := time.Date(2026, 10, 19, 9, 0, 0, 0, time.Local)
	complete(t, store, today, "a")
	complete(t, store, today.AddDate(0, 0, -1), "a")
	require.NoError(t, store.SetTaskCompletion(ctx, profileID, domain.DayBucket(today.AddDate(0, 0, -1)), "a", false, today))

	n, err := svc.EffectiveStreak(ctx, profileID, today, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
