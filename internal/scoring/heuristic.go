package scoring

import (
	"math"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
)

// Weights is the fixed penalty/reward table for the heuristic model.
// Negative effects are expressed as penalties with positive magnitudes and
// explicit caps, so no single unbounded feature can dominate the score.
// Construct one explicitly and pass it into NewHeuristicScorer; nothing in
// this package mutates it after construction.
type Weights struct {
	BaseScore float64

	// penalties
	LiquidationPenalty     float64 // per liquidation event
	RiskyHealthFactor      float64 // min health factor below this is penalized
	HealthFactorPenalty    float64 // per unit the min proxy sits below RiskyHealthFactor
	HealthFactorPenaltyCap float64
	LeveragePenalty        float64 // per unit of borrow/deposit ratio
	LeveragePenaltyCap     float64
	FrequencyThreshold     float64 // tx/day above this reads as bot-like
	FrequencyPenalty       float64 // per tx/day over the threshold
	FrequencyPenaltyCap    float64

	// rewards
	AgeReward              float64 // per day of wallet age
	AgeRewardCap           float64
	MeanHealthFactorCap    float64 // mean proxy is clipped here before rewarding
	MeanHealthFactorReward float64 // per unit of (clipped) mean proxy, borrowers only
	RepayRatioReward       float64 // per unit of repay/borrow ratio
	RepayRatioRewardCap    float64
	NetDepositReward       float64 // per unit of log1p(net deposit USD)
	NetDepositRewardCap    float64
	ActiveDayReward        float64 // per unique active day
	ActiveDayRewardCap     float64
}

// DefaultWeights is the calibrated production table. Liquidations are the
// single biggest factor by a wide margin.
func DefaultWeights() Weights {
	return Weights{
		BaseScore: 500,

		LiquidationPenalty:     400,
		RiskyHealthFactor:      1.5,
		HealthFactorPenalty:    100,
		HealthFactorPenaltyCap: 300,
		LeveragePenalty:        50,
		LeveragePenaltyCap:     150,
		FrequencyThreshold:     10,
		FrequencyPenalty:       5,
		FrequencyPenaltyCap:    100,

		AgeReward:              0.3,
		AgeRewardCap:           75,
		MeanHealthFactorCap:    10,
		MeanHealthFactorReward: 10,
		RepayRatioReward:       50,
		RepayRatioRewardCap:    50,
		NetDepositReward:       5,
		NetDepositRewardCap:    75,
		ActiveDayReward:        1,
		ActiveDayRewardCap:     50,
	}
}

type HeuristicScorer struct {
	weights Weights
}

func NewHeuristicScorer(weights Weights) HeuristicScorer {
	return HeuristicScorer{weights: weights}
}

// Score maps one feature vector to an unbounded raw score, higher meaning
// more trustworthy. Pure function of the vector and the weight table.
func (s HeuristicScorer) Score(v domain.WalletFeatureVector) float64 {
	w := s.weights
	score := w.BaseScore

	score -= float64(v.LiquidationCount) * w.LiquidationPenalty

	if v.MinHealthFactorProxy < w.RiskyHealthFactor {
		score -= capAt((w.RiskyHealthFactor-v.MinHealthFactorProxy)*w.HealthFactorPenalty, w.HealthFactorPenaltyCap)
	}

	score -= capAt(v.BorrowToDepositRatio*w.LeveragePenalty, w.LeveragePenaltyCap)

	if v.TransactionFrequency > w.FrequencyThreshold {
		score -= capAt((v.TransactionFrequency-w.FrequencyThreshold)*w.FrequencyPenalty, w.FrequencyPenaltyCap)
	}

	score += capAt(v.WalletAgeDays*w.AgeReward, w.AgeRewardCap)

	// the no-debt sentinel makes non-borrowers look artificially healthy,
	// so the health reward only applies to wallets that actually borrowed
	if v.TotalBorrowUSD > 0 {
		score += math.Min(v.MeanHealthFactorProxy, w.MeanHealthFactorCap) * w.MeanHealthFactorReward
	}

	score += capAt(v.RepayToBorrowRatio*w.RepayRatioReward, w.RepayRatioRewardCap)
	score += capAt(math.Log1p(math.Max(v.NetDepositUSD, 0))*w.NetDepositReward, w.NetDepositRewardCap)
	score += capAt(float64(v.UniqueActiveDays)*w.ActiveDayReward, w.ActiveDayRewardCap)

	return score
}

func capAt(value, limit float64) float64 {
	if value > limit {
		return limit
	}
	return value
}
