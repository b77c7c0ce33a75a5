package gacha

import (
	"context"
	"math"
	"sort"

	"github.com/osse101/TinyWins_Go/internal/domain"
)

// Stats summarizes integer samples
type Stats struct {
	Mean   float64 `json:"mean"`
	Var    float64 `json:"var"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P90    float64 `json:"p90"`
	P99    float64 `json:"p99"`
	Max    int     `json:"max"`
}

// SimulationResult describes the pity curve observed over many fresh profiles
type SimulationResult struct {
	Trials      int                       `json:"trials"`
	Draws       int                       `json:"draws"`
	RarityShare map[domain.Rarity]float64 `json:"rarity_share"`
	DrawsToRare Stats                     `json:"draws_to_rare"`
	DrawsToEpic Stats                     `json:"draws_to_epic"`

	// HardPityEpicShare is the fraction of trials whose epic was forced
	HardPityEpicShare float64 `json:"hard_pity_epic_share"`
}

// Simulate runs trials from zero pity until the first epic and reports how
// many draws the first rare-or-better and the first epic took. Nothing is
// persisted.
func Simulate(ctx context.Context, trials int, seed uint64) (SimulationResult, error) {
	if trials <= 0 {
		trials = DefaultSimulationTrials
	}
	rng := NewSeededRNG(seed)

	toRare := make([]int, 0, trials)
	toEpic := make([]int, 0, trials)
	counts := make(map[domain.Rarity]int, len(domain.Rarities))
	forced := 0
	draws := 0

	for t := 0; t < trials; t++ {
		if t%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return SimulationResult{}, err
			}
		}

		var state domain.PityState
		firstRare := 0
		for n := 1; ; n++ {
			w, hardPity := WeightsFor(state)
			rarity := w.Sample(rng)
			counts[rarity]++
			draws++

			if firstRare == 0 && rarity != domain.RarityCommon {
				firstRare = n
			}
			if rarity == domain.RarityEpic {
				if hardPity == domain.RarityEpic {
					forced++
				}
				toRare = append(toRare, firstRare)
				toEpic = append(toEpic, n)
				break
			}
			state = Advance(state, rarity)
		}
	}

	share := make(map[domain.Rarity]float64, len(counts))
	for r, c := range counts {
		share[r] = float64(c) / float64(draws)
	}
	return SimulationResult{
		Trials:            trials,
		Draws:             draws,
		RarityShare:       share,
		DrawsToRare:       calcStats(toRare),
		DrawsToEpic:       calcStats(toEpic),
		HardPityEpicShare: float64(forced) / float64(trials),
	}, nil
}

// calcStats computes population mean, variance and interpolated percentiles
func calcStats(xs []int) Stats {
	n := len(xs)
	if n == 0 {
		return Stats{}
	}

	var sum float64
	for _, v := range xs {
		sum += float64(v)
	}
	mean := sum / float64(n)

	var acc float64
	for _, v := range xs {
		d := float64(v) - mean
		acc += d * d
	}
	variance := acc / float64(n)

	sorted := append([]int(nil), xs...)
	sort.Ints(sorted)
	percentile := func(p float64) float64 {
		pos := p * float64(n-1)
		i := int(math.Floor(pos))
		if i+1 >= n {
			return float64(sorted[n-1])
		}
		f := pos - float64(i)
		return float64(sorted[i])*(1-f) + float64(sorted[i+1])*f
	}

	return Stats{
		Mean:   mean,
		Var:    variance,
		StdDev: math.Sqrt(variance),
		P50:    percentile(0.50),
		P90:    percentile(0.90),
		P99:    percentile(0.99),
		Max:    sorted[n-1],
	}
}
