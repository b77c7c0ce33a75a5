package main

import (
	"context"
	"flag"
	"strings"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

func dayFlag(fs *flag.FlagSet, env *Env) *string {
	return fs.String("day", env.Today(), "ISO day (YYYY-MM-DD)")
}

func splitBoard(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

type LoginCommand struct{}

func (c *LoginCommand) Name() string        { return "login" }
func (c *LoginCommand) Description() string { return "Claim the daily login reward" }

func (c *LoginCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ok, err := env.Services.Rewards.ClaimDailyLogin(ctx, env.ProfileID(), *day)
	if err != nil {
		return err
	}
	if !ok {
		PrintWarning(env.Out, "Daily login for %s already claimed", *day)
		return nil
	}
	PrintSuccess(env.Out, "Daily login claimed: +%d XP, +%d gems", domain.RewardDailyLogin.XP, domain.RewardDailyLogin.Gems)
	return nil
}

type CompleteCommand struct{}

func (c *CompleteCommand) Name() string { return "complete" }
func (c *CompleteCommand) Description() string {
	return "Complete tasks and collect their rewards (-board t0,...,t8 also checks bingo lines)"
}

func (c *CompleteCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	board := fs.String("board", "", "comma separated task ids of today's 3x3 board")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return usageErr("complete [-day D] [-board ids] <task>...")
	}

	svc := env.Services.Rewards
	for _, task := range fs.Args() {
		r, err := svc.CompleteTask(ctx, env.ProfileID(), *day, task, env.Now())
		if err != nil {
			return err
		}
		if !r.Awarded {
			PrintWarning(env.Out, "%s: already awarded today", task)
			continue
		}
		env.Printf("✓ %s: +%d XP, +%d gems", task, r.XPGained, r.GemsGained)
		if r.ComboXP > 0 {
			env.Printf(" (combo +%d XP)", r.ComboXP)
		}
		for _, a := range r.Achievements {
			env.Printf(" [achievement: %s]", a)
		}
		env.Printf("\n")
	}

	if ids := splitBoard(*board); ids != nil {
		return printBingo(ctx, env, *day, ids)
	}
	return nil
}

type UncompleteCommand struct{}

func (c *UncompleteCommand) Name() string        { return "uncomplete" }
func (c *UncompleteCommand) Description() string { return "Clear a task completion (rewards are kept)" }

func (c *UncompleteCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return usageErr("uncomplete [-day D] <task>")
	}

	if err := env.Services.Rewards.UncompleteTask(ctx, env.ProfileID(), *day, fs.Arg(0)); err != nil {
		return err
	}
	PrintSuccess(env.Out, "%s cleared for %s", fs.Arg(0), *day)
	return nil
}

type BingoCommand struct{}

func (c *BingoCommand) Name() string        { return "bingo" }
func (c *BingoCommand) Description() string { return "Award completed bingo lines of a board" }

func (c *BingoCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}
	ids := fs.Args()
	if len(ids) == 1 {
		ids = splitBoard(ids[0])
	}
	if len(ids) != domain.BoardSize {
		return usageErr("bingo [-day D] <9 task ids>")
	}
	return printBingo(ctx, env, *day, ids)
}

func printBingo(ctx context.Context, env *Env, day string, board []string) error {
	lines, err := env.Services.Rewards.CheckBingoLines(ctx, env.ProfileID(), day, board)
	if err != nil {
		return err
	}
	for _, l := range lines {
		PrintSuccess(env.Out, "Bingo %s: +%d XP, +%d gems", l, domain.RewardBingoLine.XP, domain.RewardBingoLine.Gems)
	}
	return nil
}

type CommissionCommand struct{}

func (c *CommissionCommand) Name() string { return "commission" }
func (c *CommissionCommand) Description() string {
	return "List today's commissions, or claim one with: commission claim <key>"
}

func (c *CommissionCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := env.Services.Rewards
	switch {
	case fs.NArg() == 0:
		list, err := svc.Commissions(*day)
		if err != nil {
			return err
		}
		PrintHeader(env.Out, "Commissions "+*day)
		for _, cm := range list {
			n, err := env.Services.Store.CountMilestones(ctx, env.ProfileID(), *day, cm.Key)
			if err != nil {
				return err
			}
			mark := " "
			if n > 0 {
				mark = "x"
			}
			env.Printf("[%s] %-13s %s\n", mark, cm.Key, cm.Title)
		}
		return nil

	case fs.NArg() == 2 && fs.Arg(0) == "claim":
		ok, err := svc.ClaimCommission(ctx, env.ProfileID(), *day, fs.Arg(1))
		if err != nil {
			return err
		}
		if !ok {
			PrintWarning(env.Out, "%s already claimed", fs.Arg(1))
			return nil
		}
		PrintSuccess(env.Out, "%s claimed: +%d XP, +%d gems", fs.Arg(1), domain.RewardCommission.XP, domain.RewardCommission.Gems)
		return nil
	}
	return usageErr("commission [-day D] [claim <key>]")
}

type BossCommand struct{}

func (c *BossCommand) Name() string        { return "boss" }
func (c *BossCommand) Description() string { return "Claim this week's boss reward" }

func (c *BossCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	if err := fs.Parse(args); err != nil {
		return err
	}

	ok, err := env.Services.Rewards.ClaimWeeklyBoss(ctx, env.ProfileID(), *day)
	if err != nil {
		return err
	}
	if !ok {
		PrintWarning(env.Out, "Weekly boss already defeated this week")
		return nil
	}
	PrintSuccess(env.Out, "Weekly boss defeated: +%d XP, +%d gems", domain.RewardWeeklyBoss.XP, domain.RewardWeeklyBoss.Gems)
	return nil
}

type RerollCommand struct{}

func (c *RerollCommand) Name() string        { return "reroll" }
func (c *RerollCommand) Description() string { return "Pay for a board reroll (-check only reports)" }

func (c *RerollCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	day := dayFlag(fs, env)
	check := fs.Bool("check", false, "only report whether the next reroll is free")
	if err := fs.Parse(args); err != nil {
		return err
	}

	svc := env.Services.Rewards
	if *check {
		free, err := svc.CanUseFreeReroll(ctx, env.ProfileID(), *day)
		if err != nil {
			return err
		}
		env.Printf("Free reroll available: %s (otherwise %d gems)\n", yesNo(free), env.Config.RerollCost)
		return nil
	}

	res, err := svc.Reroll(ctx, env.ProfileID(), *day)
	if err != nil {
		return err
	}
	switch {
	case !res.Allowed:
		PrintWarning(env.Out, "Not enough gems to reroll (%d needed)", res.Cost)
	case res.Free:
		PrintSuccess(env.Out, "Free reroll used")
	default:
		PrintSuccess(env.Out, "Rerolled for %d gems", res.Cost)
	}
	return nil
}
