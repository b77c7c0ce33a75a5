package bootstrap

import (
	"log/slog"

	"github.com/osse101/TinyWins_Go/internal/concurrency"
	"github.com/osse101/TinyWins_Go/internal/config"
	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/gacha"
	"github.com/osse101/TinyWins_Go/internal/ledger"
	"github.com/osse101/TinyWins_Go/internal/perk"
	"github.com/osse101/TinyWins_Go/internal/repository"
	"github.com/osse101/TinyWins_Go/internal/rewards"
	"github.com/osse101/TinyWins_Go/internal/streak"
	"github.com/osse101/TinyWins_Go/internal/talent"
)

// Services holds every engine service wired over one store. All of them
// share one lock manager so their transactions on a profile serialize.
type Services struct {
	Store   repository.Progression
	Perks   *perk.Resolver
	Ledger  ledger.Service
	Gacha   gacha.Service
	Talents talent.Service
	Streak  streak.Service
	Rewards rewards.Service
}

// InitializeServices wires the services over store. The wish pool comes
// from cfg.ArtifactCatalog when set.
func InitializeServices(cfg *config.Config, store repository.Progression) (*Services, error) {
	var templates []domain.ArtifactTemplate
	if cfg.ArtifactCatalog != "" {
		var err error
		if templates, err = gacha.LoadCatalog(cfg.ArtifactCatalog); err != nil {
			return nil, err
		}
		slog.Info(LogMsgCatalogLoaded, "path", cfg.ArtifactCatalog, "templates", len(templates))
	}

	perks := perk.NewResolver(DefaultPerkCacheSize)
	locks := concurrency.NewLockManager()

	ledgerSvc := ledger.NewService(store, perks, locks)
	talentSvc := talent.NewService(store, ledgerSvc)

	return &Services{
		Store:   store,
		Perks:   perks,
		Ledger:  ledgerSvc,
		Gacha:   gacha.NewService(store, ledgerSvc, cfg.WishCost, templates),
		Talents: talentSvc,
		Streak:  streak.NewService(store, perks),
		Rewards: rewards.NewService(store, ledgerSvc, talentSvc, cfg.RerollCost),
	}, nil
}
