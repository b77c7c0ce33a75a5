package gacha

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

type fixedRNG float64

func (f fixedRNG) Float64() float64 { return float64(f) }

func TestWeightsFor(t *testing.T) {
	tests := []struct {
		name     string
		state    domain.PityState
		want     Weights
		hardPity domain.Rarity
	}{
		{"fresh profile", domain.PityState{}, Weights{Common: 70, Rare: 25, Epic: 5}, ""},
		{"soft pity", domain.PityState{PityRare: 5, PityEpic: 12}, Weights{Common: 70, Rare: 30, Epic: 7}, ""},
		{"epic soft pity capped", domain.PityState{PityRare: 8, PityEpic: 48}, Weights{Common: 70, Rare: 33, Epic: 10}, ""},
		{"hard pity rare", domain.PityState{PityRare: 9, PityEpic: 9}, Weights{Rare: 100}, domain.RarityRare},
		{"hard pity epic", domain.PityState{PityRare: 2, PityEpic: 49}, Weights{Epic: 100}, domain.RarityEpic},
		{"epic wins over rare", domain.PityState{PityRare: 12, PityEpic: 60}, Weights{Epic: 100}, domain.RarityEpic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, hard := WeightsFor(tt.state)
			assert.Equal(t, tt.want, w)
			assert.Equal(t, tt.hardPity, hard)
		})
	}
}

func TestWeightsSample(t *testing.T) {
	w := BaseWeights

	assert.Equal(t, domain.RarityCommon, w.Sample(fixedRNG(0)))
	assert.Equal(t, domain.RarityCommon, w.Sample(fixedRNG(0.69)))
	assert.Equal(t, domain.RarityRare, w.Sample(fixedRNG(0.70)))
	assert.Equal(t, domain.RarityRare, w.Sample(fixedRNG(0.94)))
	assert.Equal(t, domain.RarityEpic, w.Sample(fixedRNG(0.95)))
	assert.Equal(t, domain.RarityEpic, w.Sample(fixedRNG(0.999999)))

	assert.Equal(t, domain.RarityEpic, Weights{Epic: 100}.Sample(fixedRNG(0)))
	assert.Equal(t, domain.RarityRare, Weights{Rare: 100}.Sample(fixedRNG(0.5)))
	assert.Equal(t, domain.RarityCommon, Weights{}.Sample(fixedRNG(0.5)))
}

func TestWeightsSample_Frequencies(t *testing.T) {
	rng := NewSeededRNG(42)
	const draws = 10000

	counts := map[domain.Rarity]int{}
	for i := 0; i < draws; i++ {
		counts[BaseWeights.Sample(rng)]++
	}

	assert.InDelta(t, 0.70, float64(counts[domain.RarityCommon])/draws, 0.02)
	assert.InDelta(t, 0.25, float64(counts[domain.RarityRare])/draws, 0.02)
	assert.InDelta(t, 0.05, float64(counts[domain.RarityEpic])/draws, 0.01)
}

func TestAdvance(t *testing.T) {
	start := domain.PityState{ProfileID: 3, PityRare: 4, PityEpic: 20}

	assert.Equal(t, domain.PityState{ProfileID: 3, PityRare: 5, PityEpic: 21}, Advance(start, domain.RarityCommon))
	assert.Equal(t, domain.PityState{ProfileID: 3, PityRare: 0, PityEpic: 21}, Advance(start, domain.RarityRare))
	assert.Equal(t, domain.PityState{ProfileID: 3}, Advance(start, domain.RarityEpic))
}

func TestCatalogPick(t *testing.T) {
	c := newCatalog(DefaultCatalog)

	for _, r := range domain.Rarities {
		for _, f := range []float64{0, 0.5, 0.999} {
			assert.Equal(t, r, c.pick(fixedRNG(f), r).Rarity)
		}
	}
	assert.Equal(t, "Cygnus Crest", c.pick(fixedRNG(0.3), domain.RarityEpic).Name)
}

func TestCatalogPick_FallsBackToWholePool(t *testing.T) {
	c := newCatalog([]domain.ArtifactTemplate{
		{Name: "A", Rarity: domain.RarityCommon},
		{Name: "B", Rarity: domain.RarityRare},
	})

	got := c.pick(fixedRNG(0.9), domain.RarityEpic)
	assert.Equal(t, "B", got.Name)
}

func TestSeededRNG_Reproducible(t *testing.T) {
	a, b := NewSeededRNG(7), NewSeededRNG(7)
	for i := 0; i < 100; i++ {
		x := a.Float64()
		assert.Equal(t, x, b.Float64())
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}

func TestDefaultRNG_Range(t *testing.T) {
	rng := DefaultRNG()
	for i := 0; i < 1000; i++ {
		x := rng.Float64()
		assert.GreaterOrEqual(t, x, 0.0)
		assert.Less(t, x, 1.0)
	}
}
