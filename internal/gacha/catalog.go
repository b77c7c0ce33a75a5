package gacha

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/utils"
)

// DefaultCatalog is the artifact pool wishes draw from
var DefaultCatalog = []domain.ArtifactTemplate{
	{Name: "Traveler's Charm", Rarity: domain.RarityCommon, PerkKey: domain.PerkXPBoost, Data: map[string]any{domain.PayloadXPBoostPct: 5}},
	{Name: "Streak Shell", Rarity: domain.RarityRare, PerkKey: domain.PerkStreakShield, Data: map[string]any{domain.PayloadShield: 1}},
	{Name: "Reroll Token", Rarity: domain.RarityCommon, PerkKey: domain.PerkRerollBonus, Data: map[string]any{domain.PayloadRerollBonus: 1}},
	{Name: "Pyro Emblem", Rarity: domain.RarityRare, PerkKey: domain.PerkThemePyro, Data: map[string]any{domain.PayloadTheme: "Pyro"}},
	{Name: "Cygnus Crest", Rarity: domain.RarityEpic, PerkKey: domain.PerkThemeCygnus, Data: map[string]any{domain.PayloadTheme: "Cygnus"}},
	{Name: "Lucky Feather", Rarity: domain.RarityRare, PerkKey: domain.PerkDropBoost, Data: map[string]any{domain.PayloadDropBoostPct: 5}},
}

// catalog groups templates by rarity once so draws don't rescan the pool
type catalog struct {
	all      []domain.ArtifactTemplate
	byRarity map[domain.Rarity][]domain.ArtifactTemplate
}

func newCatalog(templates []domain.ArtifactTemplate) *catalog {
	c := &catalog{
		all:      templates,
		byRarity: make(map[domain.Rarity][]domain.ArtifactTemplate, len(domain.Rarities)),
	}
	for _, t := range templates {
		c.byRarity[t.Rarity] = append(c.byRarity[t.Rarity], t)
	}
	return c
}

// pick chooses a template of rarity uniformly, falling back to the whole
// pool when no template has that rarity
func (c *catalog) pick(rng RandomSource, rarity domain.Rarity) domain.ArtifactTemplate {
	pool := c.byRarity[rarity]
	if len(pool) == 0 {
		pool = c.all
	}
	return pool[pickIndex(rng, len(pool))]
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadCatalog reads a JSON array of templates, replacing DefaultCatalog for
// deployments that ship their own pool
func LoadCatalog(path string) ([]domain.ArtifactTemplate, error) {
	var templates []domain.ArtifactTemplate
	if err := utils.LoadJSON(path, &templates); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}
	if err := ValidateCatalog(templates); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgLoadCatalog, err)
	}
	return templates, nil
}

// ValidateCatalog requires a non-empty pool with unique names and at least
// one template of every rarity, so no pity tier falls back to the whole pool
func ValidateCatalog(templates []domain.ArtifactTemplate) error {
	if len(templates) == 0 {
		return fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool, len(templates))
	tiers := make(map[domain.Rarity]bool, len(domain.Rarities))
	for i, t := range templates {
		if err := validate.Struct(t); err != nil {
			return fmt.Errorf("%w: template %d: %v", domain.ErrInvalidInput, i, err)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: duplicate template %q", domain.ErrInvalidInput, t.Name)
		}
		seen[t.Name] = true
		tiers[t.Rarity] = true
	}

	for _, r := range domain.Rarities {
		if !tiers[r] {
			return fmt.Errorf("%w: no %s template", domain.ErrInvalidInput, r)
		}
	}
	return nil
}
