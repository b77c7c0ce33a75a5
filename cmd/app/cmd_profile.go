package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/leveling"
)

var errUsage = errors.New("usage")

func usageErr(format string, a ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, a...))
}

type CheckEnvCommand struct{}

func (c *CheckEnvCommand) Name() string        { return "check-env" }
func (c *CheckEnvCommand) Description() string { return "Validate the .env schema version and driver settings" }

func (c *CheckEnvCommand) Run(ctx context.Context, env *Env, args []string) error {
	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return err
	}
	for _, w := range warnings {
		PrintWarning(env.Out, "%s", w)
	}
	PrintSuccess(env.Out, "Environment OK (driver %s)", env.Config.DBDriver)
	return nil
}

type MigrateCommand struct{}

func (c *MigrateCommand) Name() string        { return "migrate" }
func (c *MigrateCommand) Description() string { return "Apply pending schema migrations" }

// Run reports the version; opening the store already applied the migrations
func (c *MigrateCommand) Run(ctx context.Context, env *Env, args []string) error {
	PrintSuccess(env.Out, "Schema at version %d (%s)", env.SchemaVersion, env.Config.DBDriver)
	return nil
}

type ProfileCommand struct{}

func (c *ProfileCommand) Name() string        { return "profile" }
func (c *ProfileCommand) Description() string { return "Show level, balances and active bonuses" }

func (c *ProfileCommand) Run(ctx context.Context, env *Env, args []string) error {
	svcs := env.Services
	p, err := svcs.Ledger.GetProfile(ctx, env.ProfileID())
	if err != nil {
		return err
	}
	summary, err := svcs.Perks.Summary(ctx, svcs.Store, p.ID)
	if err != nil {
		return err
	}
	lvl := leveling.FromTotalXP(p.XP)

	PrintHeader(env.Out, p.Name)
	if p.JobClass != nil || p.Element != nil {
		env.Printf("Class:   %s %s\n", deref(p.JobClass), deref(p.Element))
	}
	env.Printf("Level:   %d (%d/%d XP)\n", lvl.Level, lvl.XPInLevel, lvl.XPCap)
	env.Printf("XP:      %d\n", p.XP)
	env.Printf("Gems:    %d\n", p.Gems)
	env.Printf("Bonuses: +%g%% XP, +%g%% gems, %d shield(s), free reroll: %s\n",
		summary.XPBonusPct, summary.GemBonusPct, summary.ShieldCount, yesNo(summary.FreeReroll))
	return nil
}

func deref[T ~string](v *T) string {
	if v == nil {
		return "-"
	}
	return string(*v)
}

type SetProfileCommand struct{}

func (c *SetProfileCommand) Name() string { return "set-profile" }
func (c *SetProfileCommand) Description() string {
	return "Rename the profile or set its class and element (-name, -job, -element)"
}

func (c *SetProfileCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	name := fs.String("name", "", "display name")
	job := fs.String("job", "", "job class: Warrior, Archer, Mage or Thief (\"none\" clears)")
	element := fs.String("element", "", "element: Pyro, Hydro, Electro or Cryo (\"none\" clears)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if len(set) == 0 {
		return usageErr("set at least one of -name, -job, -element")
	}

	svc := env.Services.Ledger
	id := env.ProfileID()

	if set["name"] {
		if _, err := svc.RenameProfile(ctx, id, strings.TrimSpace(*name)); err != nil {
			return err
		}
	}

	if set["job"] || set["element"] {
		cur, err := svc.GetProfile(ctx, id)
		if err != nil {
			return err
		}
		jc, el := deref(cur.JobClass), deref(cur.Element)
		if set["job"] {
			jc = *job
		}
		if set["element"] {
			el = *element
		}
		if _, err := svc.SetProfileTags(ctx, id, clearable(jc), clearable(el)); err != nil {
			return err
		}
	}

	p, err := svc.GetProfile(ctx, id)
	if err != nil {
		return err
	}
	PrintSuccess(env.Out, "%s: %s %s", p.Name, deref(p.JobClass), deref(p.Element))
	return nil
}

// clearable maps the display placeholders back to an empty tag
func clearable(v string) string {
	if v == "-" || strings.EqualFold(v, "none") {
		return ""
	}
	return v
}

type GrantCommand struct{}

func (c *GrantCommand) Name() string        { return "grant" }
func (c *GrantCommand) Description() string { return "Credit XP and raw gems (dev environment only)" }

func (c *GrantCommand) Run(ctx context.Context, env *Env, args []string) error {
	fs := newFlagSet(c, env.Out)
	xp := fs.Int64("xp", 0, "base XP, boosted by equipped XP perks")
	gems := fs.Int64("gems", 0, "gems, credited as-is")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if env.Config.Environment != "dev" && env.Config.Environment != "test" {
		return fmt.Errorf("grant is disabled in %s", env.Config.Environment)
	}

	id := env.ProfileID()
	if *xp != 0 {
		gained, err := env.Services.Ledger.AddXP(ctx, id, *xp)
		if err != nil {
			return err
		}
		PrintSuccess(env.Out, "+%d XP", gained)
	}
	if *gems != 0 {
		if err := env.Services.Ledger.AddGems(ctx, id, *gems); err != nil {
			return err
		}
		PrintSuccess(env.Out, "+%d gems", *gems)
	}
	return nil
}
