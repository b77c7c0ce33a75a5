package database

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/TinyWins_Go/internal/testing/leaktest"
)

var testDBConnString string

func TestMain(m *testing.M) {
	flag.Parse()

	var terminate func()
	if !testing.Short() {
		testDBConnString, terminate = setupContainer(context.Background())
	}

	code := m.Run()

	if terminate != nil {
		terminate()
	}
	os.Exit(code)
}

func setupContainer(ctx context.Context) (string, func()) {
	// testcontainers panics when no docker daemon is reachable
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Recovered from panic in setupContainer: %v\n", r)
		}
	}()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("tinywins"),
		postgres.WithUsername("tinywins"),
		postgres.WithPassword("tinywins"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Printf("WARNING: Failed to start postgres container: %v\n", err)
		return "", func() {}
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Printf("WARNING: Failed to get connection string: %v\n", err)
		_ = pgContainer.Terminate(ctx)
		return "", func() {}
	}

	return connStr, func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			fmt.Printf("Failed to terminate container: %v\n", err)
		}
	}
}

func requireDB(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	if testDBConnString == "" {
		t.Skip("Skipping integration test: database not available")
	}
}

// migratedPool returns a pool over a migrated schema with no profiles
func migratedPool(t *testing.T, maxConns int) *pgxpool.Pool {
	t.Helper()
	requireDB(t)

	pool, err := NewPool(testDBConnString, maxConns, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	ctx := context.Background()
	_, err = MigratePool(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, "TRUNCATE profiles CASCADE")
	require.NoError(t, err)
	return pool
}

func TestNewPool_InvalidConnString(t *testing.T) {
	_, err := NewPool("postgres://%zz", 5, time.Minute, time.Minute)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFailedToParseConnString)
}

func TestNewPool_MinConnsNeverExceedMax(t *testing.T) {
	requireDB(t)

	pool, err := NewPool(testDBConnString, 1, time.Minute, 5*time.Minute)
	require.NoError(t, err)
	defer pool.Close()

	cfg := pool.Config()
	assert.Equal(t, int32(1), cfg.MaxConns)
	assert.LessOrEqual(t, cfg.MinConns, cfg.MaxConns)
}

func TestMigratePool_Idempotent(t *testing.T) {
	pool := migratedPool(t, 5)
	ctx := context.Background()

	first, err := MigratePool(ctx, pool)
	require.NoError(t, err)
	assert.Positive(t, first)

	second, err := MigratePool(ctx, pool)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// the pool must survive the database/sql bridge being closed
	var n int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM profiles").Scan(&n))
	assert.Equal(t, 0, n)
}

// TestPool_ConcurrentBalanceUpdates hammers one profile row from many
// goroutines and checks every increment landed and every connection returned
func TestPool_ConcurrentBalanceUpdates(t *testing.T) {
	pool := migratedPool(t, 10)
	ctx := context.Background()

	_, err := pool.Exec(ctx, "INSERT INTO profiles (id) VALUES (1)")
	require.NoError(t, err)

	checker := leaktest.NewGoroutineChecker(t)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			if _, err := pool.Exec(ctx, "UPDATE profiles SET gems = gems + 1 WHERE id = 1"); err != nil {
				t.Errorf("Worker %d update failed: %v", id, err)
			}
		}(i)
	}
	wg.Wait()

	var gems int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT gems FROM profiles WHERE id = 1").Scan(&gems))
	assert.Equal(t, int64(workers), gems)
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns(), "All connections should be released")

	checker.Check(2)
}

// TestPool_CheckConstraintReleasesConnection verifies a rejected overdraw
// leaves the balance untouched and the connection back in the pool
func TestPool_CheckConstraintReleasesConnection(t *testing.T) {
	pool := migratedPool(t, 3)
	ctx := context.Background()

	_, err := pool.Exec(ctx, "INSERT INTO profiles (id, gems) VALUES (1, 5)")
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := pool.Exec(ctx, "UPDATE profiles SET gems = gems - 10 WHERE id = 1")
		assert.Error(t, err, "gems must not go negative")
	}

	var gems int64
	require.NoError(t, pool.QueryRow(ctx, "SELECT gems FROM profiles WHERE id = 1").Scan(&gems))
	assert.Equal(t, int64(5), gems)
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}
