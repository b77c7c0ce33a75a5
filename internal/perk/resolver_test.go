package perk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

// mockArtifacts is a testify mock of repository.Artifact
type mockArtifacts struct {
	mock.Mock
}

func (m *mockArtifacts) AddArtifact(ctx context.Context, profileID int64, name string, rarity domain.Rarity, perkKey domain.PerkKey, data []byte) (int64, error) {
	args := m.Called(ctx, profileID, name, rarity, perkKey, data)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockArtifacts) GetArtifact(ctx context.Context, profileID, artifactID int64) (*domain.Artifact, error) {
	args := m.Called(ctx, profileID, artifactID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artifact), args.Error(1)
}

func (m *mockArtifacts) ListArtifacts(ctx context.Context, profileID int64, equippedOnly bool) ([]domain.Artifact, error) {
	args := m.Called(ctx, profileID, equippedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Artifact), args.Error(1)
}

func (m *mockArtifacts) SetArtifactEquipped(ctx context.Context, profileID, artifactID int64, equipped bool) (bool, error) {
	args := m.Called(ctx, profileID, artifactID, equipped)
	return args.Bool(0), args.Error(1)
}

func (m *mockArtifacts) LogWish(ctx context.Context, entry domain.WishLogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func artifact(id int64, perk domain.PerkKey, data string, equipped bool) domain.Artifact {
	return domain.Artifact{ID: id, ProfileID: 1, PerkKey: perk, Data: []byte(data), Equipped: equipped}
}

func TestParsePayload(t *testing.T) {
	assert.Equal(t, map[string]any{"xp_boost_pct": float64(5)}, ParsePayload([]byte(`{"xp_boost_pct":5}`)))
	assert.Empty(t, ParsePayload(nil))
	assert.Empty(t, ParsePayload([]byte(`not json`)))
	assert.Empty(t, ParsePayload([]byte(`[1,2,3]`)))
	assert.Empty(t, ParsePayload([]byte(`null`)))
}

func TestNumberField(t *testing.T) {
	p := ParsePayload([]byte(`{"a":5,"b":"7","c":2.5,"d":null,"e":-200,"f":1e300}`))
	assert.Equal(t, 5.0, NumberField(p, "a"))
	assert.Zero(t, NumberField(p, "b"), "strings are not numbers")
	assert.Equal(t, 2.5, NumberField(p, "c"), "fractions are kept")
	assert.Zero(t, NumberField(p, "d"))
	assert.Zero(t, NumberField(p, "e"), "negative values add nothing")
	assert.Zero(t, NumberField(p, "f"), "out of range values add nothing")
	assert.Zero(t, NumberField(p, "missing"))
}

func TestSumEquipped_Stacks(t *testing.T) {
	ctx := context.Background()
	repo := new(mockArtifacts)
	repo.On("ListArtifacts", ctx, int64(1), true).Return([]domain.Artifact{
		artifact(1, domain.PerkXPBoost, `{"xp_boost_pct":5}`, true),
		artifact(2, domain.PerkXPBoost, `{"xp_boost_pct":5}`, true),
		artifact(3, domain.PerkXPBoost, `garbage`, true),
		artifact(4, domain.PerkDropBoost, `{"drop_boost_pct":5}`, true),
	}, nil)

	r := NewResolver(16)

	xp, err := r.XPBonusPct(ctx, repo, 1)
	require.NoError(t, err)
	assert.Equal(t, 10.0, xp, "two charms stack, the malformed one adds nothing")

	gems, err := r.GemBonusPct(ctx, repo, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, gems)

	has, err := r.HasEquipped(ctx, repo, 1, domain.PerkStreakShield)
	require.NoError(t, err)
	assert.False(t, has)

	n, err := r.CountEquipped(ctx, repo, 1, domain.PerkXPBoost)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	repo.AssertExpectations(t)
}

func TestSumEquipped_FractionsSumBeforeRounding(t *testing.T) {
	ctx := context.Background()
	repo := new(mockArtifacts)
	repo.On("ListArtifacts", ctx, int64(1), true).Return([]domain.Artifact{
		artifact(1, domain.PerkXPBoost, `{"xp_boost_pct":2.5}`, true),
		artifact(2, domain.PerkXPBoost, `{"xp_boost_pct":2.5}`, true),
		artifact(3, domain.PerkDropBoost, `{"drop_boost_pct":-200}`, true),
	}, nil)

	r := NewResolver(16)

	xp, err := r.XPBonusPct(ctx, repo, 1)
	require.NoError(t, err)
	assert.Equal(t, 5.0, xp)

	gems, err := r.GemBonusPct(ctx, repo, 1)
	require.NoError(t, err)
	assert.Zero(t, gems)
}

func TestSumEquipped_StorageError(t *testing.T) {
	ctx := context.Background()
	repo := new(mockArtifacts)
	repo.On("ListArtifacts", ctx, int64(1), true).Return(nil, errors.New("db down"))

	_, err := NewResolver(0).XPBonusPct(ctx, repo, 1)
	assert.ErrorContains(t, err, "db down")
}

func TestUnlockedThemes(t *testing.T) {
	ctx := context.Background()
	repo := new(mockArtifacts)
	repo.On("ListArtifacts", ctx, int64(1), false).Return([]domain.Artifact{
		artifact(1, domain.PerkThemeCygnus, `{"theme":"Cygnus"}`, false),
		artifact(2, domain.PerkXPBoost, `{"theme":"NotATheme"}`, true),
		artifact(3, domain.PerkThemePyro, `{"theme":"Pyro"}`, false),
		artifact(4, domain.PerkThemePyro, `{"theme":"Pyro"}`, true),
		artifact(5, domain.PerkThemePyro, `{}`, true),
	}, nil)

	themes, err := NewResolver(16).UnlockedThemes(ctx, repo, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Default", "Cygnus", "Pyro"}, themes)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := new(mockArtifacts)
	repo.On("ListArtifacts", ctx, int64(1), false).Return([]domain.Artifact{
		artifact(1, domain.PerkXPBoost, `{"xp_boost_pct":5}`, true),
		artifact(2, domain.PerkXPBoost, `{"xp_boost_pct":5}`, false),
		artifact(3, domain.PerkStreakShield, `{"shield":1}`, true),
		artifact(4, domain.PerkStreakShield, `{"shield":1}`, true),
		artifact(5, domain.PerkRerollBonus, `{"reroll_bonus":1}`, true),
		artifact(6, domain.PerkThemePyro, `{"theme":"Pyro"}`, false),
	}, nil)

	s, err := NewResolver(16).Summary(ctx, repo, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.PerkSummary{
		XPBonusPct:  5,
		GemBonusPct: 0,
		ShieldCount: 2,
		FreeReroll:  true,
		Themes:      []string{"Default", "Pyro"},
	}, s)
}

func TestPayloadCache(t *testing.T) {
	r := NewResolver(2)
	a := artifact(7, domain.PerkXPBoost, `{"xp_boost_pct":5}`, true)

	assert.Equal(t, 5.0, NumberField(r.Payload(a), "xp_boost_pct"))
	assert.Equal(t, 1, r.cache.Len())

	p, ok := r.cache.Get(7, `{"xp_boost_pct":5}`)
	require.True(t, ok)
	assert.Equal(t, float64(5), p["xp_boost_pct"])

	// Same id with different text (another database) must not reuse the entry
	b := artifact(7, domain.PerkXPBoost, `{"xp_boost_pct":9}`, true)
	assert.Equal(t, 9.0, NumberField(r.Payload(b), "xp_boost_pct"))

	r.Payload(artifact(8, domain.PerkXPBoost, `{}`, true))
	r.Payload(artifact(9, domain.PerkXPBoost, `{}`, true))
	assert.Equal(t, 2, r.cache.Len(), "cache is bounded")

	r.cache.Clear()
	assert.Zero(t, r.cache.Len())
}
