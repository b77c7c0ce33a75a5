package main

import (
	"context"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

type TalentsCommand struct{}

func (c *TalentsCommand) Name() string        { return "talents" }
func (c *TalentsCommand) Description() string { return "Show talent levels" }

func (c *TalentsCommand) Run(ctx context.Context, env *Env, args []string) error {
	status, err := env.Services.Talents.Status(ctx, env.ProfileID())
	if err != nil {
		return err
	}

	PrintHeader(env.Out, "Talents")
	for _, t := range status {
		env.Printf("%-22s %-22s %d/%d\n", t.Key, t.Name, t.Level, t.MaxLevel)
	}
	env.Printf("Upgrades cost %d gems per level\n", domain.TalentUpgradeCost)
	return nil
}

type UpgradeCommand struct{}

func (c *UpgradeCommand) Name() string        { return "upgrade" }
func (c *UpgradeCommand) Description() string { return "Buy one level of a talent" }

func (c *UpgradeCommand) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usageErr("upgrade <talent key>")
	}
	key := domain.TalentKey(args[0])

	ok, err := env.Services.Talents.Upgrade(ctx, env.ProfileID(), key)
	if err != nil {
		return err
	}
	if !ok {
		PrintWarning(env.Out, "Cannot upgrade %s: unknown, maxed or not enough gems", key)
		return nil
	}
	PrintSuccess(env.Out, "%s upgraded", key)
	return nil
}

type StreakCommand struct{}

func (c *StreakCommand) Name() string        { return "streak" }
func (c *StreakCommand) Description() string { return "Show the current completion streak" }

func (c *StreakCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	lookback := fs.Int("lookback", env.Config.StreakLookback, "maximum days to walk back")
	if err := fs.Parse(args); err != nil {
		return err
	}

	n, err := env.Services.Streak.EffectiveStreak(ctx, env.ProfileID(), env.Now(), *lookback)
	if err != nil {
		return err
	}
	env.Printf("Streak: %d day(s)\n", n)
	return nil
}
