package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/TinyWins_Go/internal/database"
	"github.com/osse101/TinyWins_Go/internal/repository"
	"github.com/osse101/TinyWins_Go/internal/testing/leaktest"
	"github.com/osse101/TinyWins_Go/internal/testing/storetest"
)

// setupStore starts a disposable postgres, migrates it and returns a Store.
// The test is skipped when docker is unavailable.
func setupStore(t *testing.T) *Store {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	var pgContainer *postgres.PostgresContainer
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = postgres.Run(ctx,
			"postgres:15-alpine",
			postgres.WithDatabase("testdb"),
			postgres.WithUsername("testuser"),
			postgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
	}()
	if err != nil || pgContainer == nil {
		t.Skipf("Skipping integration test: postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := database.NewPool(connStr, 10, time.Minute, 5*time.Minute)
	require.NoError(t, err)

	_, err = database.MigratePool(ctx, pool)
	require.NoError(t, err)

	store := NewStore(pool)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_Integration(t *testing.T) {
	store := setupStore(t)

	storetest.Run(t, store)

	t.Run("ConcurrentSpendNeverOverdraws", func(t *testing.T) {
		ctx := context.Background()
		const profileID int64 = 42
		require.NoError(t, store.EnsureProfile(ctx, profileID))
		require.NoError(t, store.AddProfileGems(ctx, profileID, 50))

		checker := leaktest.NewGoroutineChecker(t)

		var (
			wg  sync.WaitGroup
			mu  sync.Mutex
			won int
		)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := repository.WithTx(ctx, store, func(tx repository.ProgressionTx) error {
					if err := tx.LockProfile(ctx, profileID); err != nil {
						return err
					}
					ok, err := tx.SpendProfileGems(ctx, profileID, 10)
					if ok {
						mu.Lock()
						won++
						mu.Unlock()
					}
					return err
				})
				if err != nil {
					t.Errorf("spend tx failed: %v", err)
				}
			}()
		}
		wg.Wait()

		p, err := store.GetProfile(ctx, profileID)
		require.NoError(t, err)
		assert.Equal(t, 5, won)
		assert.Zero(t, p.Gems)

		checker.Check(2)
	})
}
