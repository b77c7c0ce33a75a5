package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCLI points the CLI at a fresh SQLite file
func setupCLI(t *testing.T) {
	t.Helper()
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "tinywins.db"))
	t.Setenv("PROFILE_ID", "1")
	t.Setenv("WISH_COST", "10")
	t.Setenv("REROLL_COST", "5")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("METRICS_TEXTFILE", "")
	t.Setenv("ARTIFACT_CATALOG", "")
}

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	code, out, _ := runCLI(t)
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, out, "Usage: tinywins")

	code, out, _ = runCLI(t, "help")
	assert.Equal(t, exitOK, code)
	for _, name := range []string{"wish", "login", "complete", "upgrade", "streak", "simulate"} {
		assert.Contains(t, out, name)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	code, _, errOut := runCLI(t, "teleport")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, `unknown command "teleport"`)
}

func TestRun_FlagHelpIsNotAnError(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "wish", "-h")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out, "-seed")
}

func TestRun_Migrate(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "migrate")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Schema at version")
	assert.NotContains(t, out, "version 0 ")
}

func TestRun_LoginOncePerDay(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "login", "-day", "2026-03-02")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Daily login claimed")

	code, out, _ = runCLI(t, "login", "-day", "2026-03-02")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "already claimed")

	code, out, _ = runCLI(t, "profile")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Gems:")
}

func TestRun_GrantThenWish(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "wish", "-n", "3")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Not enough gems")
	assert.Contains(t, out, "cost 30")

	code, _, _ = runCLI(t, "grant", "-gems", "100")
	require.Equal(t, exitOK, code)

	code, out, _ = runCLI(t, "wish", "-n", "3", "-seed", "7")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Wish results")
	assert.Contains(t, out, "Spent 30 gems")

	code, out, _ = runCLI(t, "inventory")
	require.Equal(t, exitOK, code)
	assert.Equal(t, 3, strings.Count(out, "#"))

	code, out, _ = runCLI(t, "pity")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "guaranteed at 10")
}

func TestRun_Equip(t *testing.T) {
	setupCLI(t)

	code, _, errOut := runCLI(t, "equip", "abc")
	assert.Equal(t, exitUsage, code)
	assert.Contains(t, errOut, "not a number")

	code, _, _ = runCLI(t, "equip")
	assert.Equal(t, exitUsage, code)

	code, _, errOut = runCLI(t, "equip", "999")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "artifact not found")

	require.Equal(t, exitOK, first(runCLI(t, "grant", "-gems", "10")))
	require.Equal(t, exitOK, first(runCLI(t, "wish", "-seed", "1")))

	code, out, _ := runCLI(t, "equip", "1")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Artifact #1 equipped")

	code, out, _ = runCLI(t, "inventory", "-equipped")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "(equipped)")

	code, out, _ = runCLI(t, "unequip", "1")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "unequipped")
}

func TestRun_CompleteAndStreak(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "complete", "read", "walk")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "read: +")
	assert.Contains(t, out, "walk: +")

	code, out, _ = runCLI(t, "complete", "read")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "already awarded")

	code, out, _ = runCLI(t, "streak")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Streak: 1 day(s)")

	code, _, _ = runCLI(t, "complete")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Upgrade(t *testing.T) {
	setupCLI(t)

	code, out, _ := runCLI(t, "upgrade", "combo_mastery")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Cannot upgrade")

	require.Equal(t, exitOK, first(runCLI(t, "grant", "-gems", "20")))

	code, out, _ = runCLI(t, "upgrade", "combo_mastery")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "combo_mastery upgraded")

	code, out, _ = runCLI(t, "talents")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "1/5")
}

func TestRun_Simulate(t *testing.T) {
	setupCLI(t)

	outFile := filepath.Join(t.TempDir(), "sim.json")
	code, out, _ := runCLI(t, "simulate", "-trials", "200", "-seed", "3", "-out", outFile)
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Simulation (200 trials)")
	assert.Contains(t, out, "Draws to first epic")
	assert.FileExists(t, outFile)
}

func TestRun_GrantDisabledOutsideDev(t *testing.T) {
	setupCLI(t)
	t.Setenv("ENVIRONMENT", "prod")

	code, _, errOut := runCLI(t, "grant", "-gems", "10")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "disabled")
}

func TestRun_BadConfig(t *testing.T) {
	setupCLI(t)
	t.Setenv("WISH_COST", "ten")

	code, _, errOut := runCLI(t, "profile")
	assert.Equal(t, exitError, code)
	assert.Contains(t, errOut, "parse env")
}

func first(code int, _, _ string) int {
	return code
}
