package scoring

import (
	"math"
	"sort"
)

// soloWalletScore is what a population of one normalizes to: with nobody
// to rank against, the wallet sits in the middle of the scale.
const soloWalletScore = 500

// Normalize maps raw scores to integers in [0, 1000] by quantile rank:
// each wallet's percentile within the run population, scaled linearly and
// rounded half-up. The spread is guaranteed regardless of how skewed the
// raw distribution is, at the cost of scores being relative to this run's
// population. Equal raw scores get equal final scores, and raw ordering is
// preserved (non-strictly, because of ties).
func Normalize(rawScores map[string]float64) map[string]int {
	final := make(map[string]int, len(rawScores))
	if len(rawScores) == 0 {
		return final
	}
	if len(rawScores) == 1 {
		for wallet := range rawScores {
			final[wallet] = soloWalletScore
		}
		return final
	}

	sorted := make([]float64, 0, len(rawScores))
	for _, score := range rawScores {
		sorted = append(sorted, score)
	}
	sort.Float64s(sorted)

	denominator := float64(len(sorted) - 1)
	for wallet, score := range rawScores {
		countBelow := sort.SearchFloat64s(sorted, score)
		percentile := float64(countBelow) / denominator
		final[wallet] = roundHalfUp(percentile * 1000)
	}

	return final
}

func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
