package gacha

import "github.com/osse101/TinyWins_Go/internal/domain"

// Weights are relative rarity weights for a single draw
type Weights struct {
	Common int `json:"common"`
	Rare   int `json:"rare"`
	Epic   int `json:"epic"`
}

// Total is the sum of all weights
func (w Weights) Total() int {
	return w.Common + w.Rare + w.Epic
}

// Sample picks a rarity with probability proportional to its weight
func (w Weights) Sample(rng RandomSource) domain.Rarity {
	total := w.Total()
	if total <= 0 {
		return domain.RarityCommon
	}

	roll := rng.Float64() * float64(total)
	switch {
	case roll < float64(w.Common):
		return domain.RarityCommon
	case roll < float64(w.Common+w.Rare):
		return domain.RarityRare
	case w.Epic > 0:
		return domain.RarityEpic
	case w.Rare > 0:
		return domain.RarityRare
	}
	return domain.RarityCommon
}

// WeightsFor returns the weights of the next draw given the pity counters.
// hardPity names the tier a hard pity forced, or is empty.
func WeightsFor(state domain.PityState) (w Weights, hardPity domain.Rarity) {
	if state.PityEpic >= HardPityEpic {
		return Weights{Epic: 100}, domain.RarityEpic
	}
	if state.PityRare >= HardPityRare {
		return Weights{Rare: 100}, domain.RarityRare
	}

	w = BaseWeights
	w.Rare += min(SoftPityRareCap, state.PityRare)
	w.Epic += min(SoftPityEpicCap, state.PityEpic/SoftPityEpicStep)
	return w, ""
}

// Advance updates the counters after a draw of rarity
func Advance(state domain.PityState, rarity domain.Rarity) domain.PityState {
	switch rarity {
	case domain.RarityEpic:
		state.PityRare = 0
		state.PityEpic = 0
	case domain.RarityRare:
		state.PityRare = 0
		state.PityEpic++
	default:
		state.PityRare++
		state.PityEpic++
	}
	return state
}
