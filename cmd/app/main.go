// Command tinywins drives the progression engine from the terminal
package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/TinyWins_Go/internal/bootstrap"
	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/logger"
)

// Exit codes
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func newRegistry() *Registry {
	r := NewRegistry()
	for _, cmd := range []Command{
		&CheckEnvCommand{},
		&MigrateCommand{},
		&ProfileCommand{},
		&SetProfileCommand{},
		&GrantCommand{},
		&LoginCommand{},
		&CompleteCommand{},
		&UncompleteCommand{},
		&BingoCommand{},
		&CommissionCommand{},
		&BossCommand{},
		&RerollCommand{},
		&WishCommand{},
		&PityCommand{},
		&SimulateCommand{},
		&InventoryCommand{},
		&EquipCommand{equip: true},
		&EquipCommand{equip: false},
		&ThemesCommand{},
		&TalentsCommand{},
		&UpgradeCommand{},
		&StreakCommand{},
	} {
		r.Register(cmd)
	}
	return r
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	registry := newRegistry()

	if len(args) < 1 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		registry.PrintHelp(stdout)
		if len(args) < 1 {
			return exitUsage
		}
		return exitOK
	}

	cmd, ok := registry.Get(args[0])
	if !ok {
		PrintError(stderr, "unknown command %q", args[0])
		registry.PrintHelp(stderr)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		PrintError(stderr, "%v", err)
		return exitError
	}
	bootstrap.SetupLoggerWithWriter(cfg, stderr)
	ctx = logger.WithRequestID(ctx, logger.GenerateRequestID())

	store, version, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		PrintError(stderr, "%v", err)
		return exitError
	}
	svcs, err := bootstrap.InitializeServices(cfg, store)
	if err != nil {
		_ = store.Close()
		PrintError(stderr, "%v", err)
		return exitError
	}
	defer bootstrap.Shutdown(ctx, svcs, cfg.MetricsTextfile)

	env := NewEnv(cfg, svcs, version, stdout)
	if err := cmd.Run(ctx, env, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if errors.Is(err, errUsage) {
			PrintError(stderr, "%v", err)
			return exitUsage
		}
		slog.Debug("Command failed", "command", cmd.Name(), "error", err)
		PrintError(stderr, "%v", err)
		return exitError
	}
	return exitOK
}
