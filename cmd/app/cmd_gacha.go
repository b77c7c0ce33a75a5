package main

import (
	"context"
	"strconv"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/gacha"
	"github.com/osse101/TinyWins_Go/internal/utils"
)

type WishCommand struct{}

func (c *WishCommand) Name() string        { return "wish" }
func (c *WishCommand) Description() string { return "Spend gems to draw artifacts (-n count, -seed for a replayable draw)" }

func (c *WishCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	count := fs.Int("n", 1, "number of draws")
	seed := fs.Uint64("seed", 0, "seed for a reproducible draw; 0 draws from crypto/rand")
	if err := fs.Parse(args); err != nil {
		return err
	}

	rng := gacha.DefaultRNG()
	if *seed != 0 {
		rng = gacha.NewSeededRNG(*seed)
	}

	svc := env.Services.Gacha
	res, ok, err := svc.PurchaseWish(ctx, env.ProfileID(), *count, rng)
	if err != nil {
		return err
	}
	if !ok {
		PrintWarning(env.Out, "Not enough gems: %d wish(es) cost %d", *count, svc.WishCost(*count))
		return nil
	}

	PrintHeader(env.Out, "Wish results")
	for _, a := range res.Artifacts {
		printArtifact(env, a)
	}
	env.Printf("Spent %d gems. Pity: %d/%d rare, %d/%d epic\n",
		res.Cost, res.Pity.PityRare, gacha.HardPityRare+1, res.Pity.PityEpic, gacha.HardPityEpic+1)
	return nil
}

func printArtifact(env *Env, a domain.Artifact) {
	equipped := ""
	if a.Equipped {
		equipped = " (equipped)"
	}
	env.Printf("#%-5d %-18s %-6s %s%s\n", a.ID, a.Name, rarityLabel(a.Rarity), perkLabel(a.PerkKey), equipped)
}

type PityCommand struct{}

func (c *PityCommand) Name() string        { return "pity" }
func (c *PityCommand) Description() string { return "Show draws since the last rare and epic" }

func (c *PityCommand) Run(ctx context.Context, env *Env, args []string) error {
	state, err := env.Services.Gacha.Pity(ctx, env.ProfileID())
	if err != nil {
		return err
	}
	w, _ := gacha.WeightsFor(state)
	env.Printf("Rare pity: %d (guaranteed at %d)\n", state.PityRare, gacha.HardPityRare+1)
	env.Printf("Epic pity: %d (guaranteed at %d)\n", state.PityEpic, gacha.HardPityEpic+1)
	env.Printf("Next draw weights: common %d, rare %d, epic %d\n", w.Common, w.Rare, w.Epic)
	return nil
}

type SimulateCommand struct{}

func (c *SimulateCommand) Name() string        { return "simulate" }
func (c *SimulateCommand) Description() string { return "Monte Carlo the pity curve without touching the store" }

func (c *SimulateCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	trials := fs.Int("trials", gacha.DefaultSimulationTrials, "number of simulated profiles")
	seed := fs.Uint64("seed", 1, "simulation seed")
	out := fs.String("out", "", "also write the full result as JSON to this file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := gacha.Simulate(ctx, *trials, *seed)
	if err != nil {
		return err
	}
	if *out != "" {
		if err := utils.SaveJSON(*out, res); err != nil {
			return err
		}
	}

	PrintHeader(env.Out, "Simulation ("+strconv.Itoa(res.Trials)+" trials)")
	for _, r := range domain.Rarities {
		env.Printf("%-6s %5.2f%%\n", rarityLabel(r), res.RarityShare[r]*100)
	}
	env.Printf("Draws to first rare+: mean %.2f, p90 %.0f, max %d\n", res.DrawsToRare.Mean, res.DrawsToRare.P90, res.DrawsToRare.Max)
	env.Printf("Draws to first epic:  mean %.2f, p50 %.0f, p90 %.0f, p99 %.0f, max %d\n",
		res.DrawsToEpic.Mean, res.DrawsToEpic.P50, res.DrawsToEpic.P90, res.DrawsToEpic.P99, res.DrawsToEpic.Max)
	env.Printf("Epics forced by hard pity: %.1f%%\n", res.HardPityEpicShare*100)
	return nil
}

type InventoryCommand struct{}

func (c *InventoryCommand) Name() string        { return "inventory" }
func (c *InventoryCommand) Description() string { return "List owned artifacts (-equipped for equipped only)" }

func (c *InventoryCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	equippedOnly := fs.Bool("equipped", false, "only list equipped artifacts")
	if err := fs.Parse(args); err != nil {
		return err
	}

	arts, err := env.Services.Gacha.ListArtifacts(ctx, env.ProfileID(), *equippedOnly)
	if err != nil {
		return err
	}
	if len(arts) == 0 {
		env.Printf("No artifacts yet. Try: %s wish\n", appName)
		return nil
	}
	for _, a := range arts {
		printArtifact(env, a)
	}
	return nil
}

// EquipCommand serves both equip and unequip
type EquipCommand struct {
	equip bool
}

func (c *EquipCommand) Name() string {
	if c.equip {
		return "equip"
	}
	return "unequip"
}

func (c *EquipCommand) Description() string {
	if c.equip {
		return "Equip an artifact by id"
	}
	return "Unequip an artifact by id"
}

func (c *EquipCommand) Run(ctx context.Context, env *Env, args []string) error {
	if len(args) != 1 {
		return usageErr("%s <artifact id>", c.Name())
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return usageErr("artifact id %q is not a number", args[0])
	}

	svc := env.Services.Gacha
	if c.equip {
		err = svc.Equip(ctx, env.ProfileID(), id)
	} else {
		err = svc.Unequip(ctx, env.ProfileID(), id)
	}
	if err != nil {
		return err
	}
	if c.equip {
		PrintSuccess(env.Out, "Artifact #%d equipped", id)
	} else {
		PrintSuccess(env.Out, "Artifact #%d unequipped", id)
	}
	return nil
}

type ThemesCommand struct{}

func (c *ThemesCommand) Name() string        { return "themes" }
func (c *ThemesCommand) Description() string { return "List unlocked board themes" }

func (c *ThemesCommand) Run(ctx context.Context, env *Env, args []string) error {
	themes, err := env.Services.Perks.UnlockedThemes(ctx, env.Services.Store, env.ProfileID())
	if err != nil {
		return err
	}
	for _, t := range themes {
		env.Printf("- %s\n", t)
	}
	return nil
}
