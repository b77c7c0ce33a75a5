package gacha

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/domain"
	"github.com/osse101/TinyWins_Go/internal/utils"
)

func TestValidateCatalog_Default(t *testing.T) {
	assert.NoError(t, ValidateCatalog(DefaultCatalog))
}

func TestValidateCatalog_Rejects(t *testing.T) {
	common := domain.ArtifactTemplate{Name: "A", Rarity: domain.RarityCommon, PerkKey: domain.PerkXPBoost}
	rare := domain.ArtifactTemplate{Name: "B", Rarity: domain.RarityRare, PerkKey: domain.PerkStreakShield}
	epic := domain.ArtifactTemplate{Name: "C", Rarity: domain.RarityEpic, PerkKey: domain.PerkThemeCygnus}

	tests := []struct {
		name      string
		templates []domain.ArtifactTemplate
		want      string
	}{
		{"empty", nil, "catalog is empty"},
		{"missing epic", []domain.ArtifactTemplate{common, rare}, "no epic template"},
		{"duplicate name", []domain.ArtifactTemplate{common, rare, epic, common}, `duplicate template "A"`},
		{"unknown rarity", []domain.ArtifactTemplate{common, rare, epic, {Name: "D", Rarity: "legendary", PerkKey: domain.PerkXPBoost}}, "template 3"},
		{"blank name", []domain.ArtifactTemplate{common, rare, epic, {Rarity: domain.RarityRare, PerkKey: domain.PerkXPBoost}}, "template 3"},
		{"missing perk", []domain.ArtifactTemplate{common, rare, {Name: "C", Rarity: domain.RarityEpic}}, "template 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalog(tt.templates)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, utils.SaveJSON(path, DefaultCatalog))

	templates, err := LoadCatalog(path)
	require.NoError(t, err)
	require.Len(t, templates, len(DefaultCatalog))
	assert.Equal(t, DefaultCatalog[0].Name, templates[0].Name)
	// numbers come back as JSON numbers, which the perk resolver reads as float64
	assert.Equal(t, float64(5), templates[0].Data[domain.PayloadXPBoostPct])
}

func TestLoadCatalog_Errors(t *testing.T) {
	_, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgLoadCatalog)

	path := filepath.Join(t.TempDir(), "typo.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"name": "A", "rarty": "common"}]`), 0o600))
	_, err = LoadCatalog(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rarty")
}
