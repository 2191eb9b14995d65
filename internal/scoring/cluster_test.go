package scoring

import (
	"fmt"
	"testing"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// retailVector is a typical small depositor; outlierVector is far away on
// every informative axis.
func retailVector(wallet string) domain.WalletFeatureVector {
	return domain.WalletFeatureVector{
		Wallet:                wallet,
		WalletAgeDays:         15,
		TotalTransactions:     5,
		UniqueActiveDays:      5,
		TransactionFrequency:  1,
		NetDepositUSD:         1000,
		MinHealthFactorProxy:  domain.HealthFactorNoDebt,
		MeanHealthFactorProxy: domain.HealthFactorNoDebt,
		RepayToBorrowRatio:    domain.RepayRatioNeverBorrowed,
		AssetDiversity:        1,
	}
}

func outlierVector(wallet string) domain.WalletFeatureVector {
	v := retailVector(wallet)
	v.WalletAgeDays = 0
	v.NetDepositUSD = 0
	v.LiquidationCount = 5
	v.MinHealthFactorProxy = 0.2
	v.RepayToBorrowRatio = 0
	return v
}

func Test_Clusterer_Cluster(t *testing.T) {
	clusterer := NewClusterer(DefaultClusterConfig())

	t.Run("population too small degrades to all noise", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{
			retailVector("0xaaa"),
			retailVector("0xbbb"),
		}

		out := clusterer.Cluster(vectors)

		require.True(t, out.Degraded)
		require.Equal(t, 2, out.NoiseCount)
		require.Len(t, out.Assignments, 2)
		for _, assignment := range out.Assignments {
			require.True(t, assignment.IsNoise())
		}
	})

	t.Run("constant feature space degrades", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{}
		for i := 0; i < 20; i++ {
			vectors = append(vectors, retailVector(fmt.Sprintf("0x%03d", i)))
		}

		out := clusterer.Cluster(vectors)

		require.True(t, out.Degraded)
		require.Equal(t, "degenerate feature space", out.Reason)
	})

	t.Run("dense cohort clusters, outliers stay noise", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{}
		for i := 0; i < 10; i++ {
			vectors = append(vectors, retailVector(fmt.Sprintf("0xretail%02d", i)))
		}
		vectors = append(vectors, outlierVector("0xout1"), outlierVector("0xout2"))

		out := clusterer.Cluster(vectors)

		require.False(t, out.Degraded)
		require.Equal(t, 1, out.Clusters)
		require.Equal(t, 2, out.NoiseCount)
		require.True(t, out.Assignments["0xout1"].IsNoise())
		require.True(t, out.Assignments["0xout2"].IsNoise())
		require.Equal(t, domain.ClusterAssignment(0), out.Assignments["0xretail00"])

		// every wallet gets exactly one assignment
		require.Len(t, out.Assignments, len(vectors))
	})

	t.Run("identical input yields identical assignments", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{}
		for i := 0; i < 10; i++ {
			vectors = append(vectors, retailVector(fmt.Sprintf("0xretail%02d", i)))
		}
		vectors = append(vectors, outlierVector("0xout1"), outlierVector("0xout2"))

		first := clusterer.Cluster(vectors)
		second := clusterer.Cluster(vectors)

		require.Equal(t, "", cmp.Diff(first.Assignments, second.Assignments))
	})
}

func Test_Clusterer_AdjustScores(t *testing.T) {
	clusterer := NewClusterer(DefaultClusterConfig())

	t.Run("members of liquidation-heavy clusters are penalized", func(t *testing.T) {
		liquidated := retailVector("0xbad1")
		liquidated.LiquidationCount = 2
		alsoLiquidated := retailVector("0xbad2")
		alsoLiquidated.LiquidationCount = 1
		bystander := retailVector("0xbystander")
		noise := retailVector("0xnoise")
		noise.LiquidationCount = 9

		vectors := []domain.WalletFeatureVector{liquidated, alsoLiquidated, bystander, noise}
		outcome := ClusterOutcome{
			Assignments: map[string]domain.ClusterAssignment{
				"0xbad1":      0,
				"0xbad2":      0,
				"0xbystander": 0,
				"0xnoise":     domain.NoiseCluster,
			},
			Clusters:   1,
			NoiseCount: 1,
		}

		raw := map[string]float64{
			"0xbad1":      400,
			"0xbad2":      450,
			"0xbystander": 500,
			"0xnoise":     300,
		}

		adjusted := clusterer.AdjustScores(raw, vectors, outcome)

		penalty := DefaultClusterConfig().DistressedPenalty
		require.Equal(t, 400-penalty, adjusted["0xbad1"])
		require.Equal(t, 500-penalty, adjusted["0xbystander"])
		// noise wallets never take cluster adjustments
		require.Equal(t, 300.0, adjusted["0xnoise"])
	})

	t.Run("healthy clusters are untouched", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{
			retailVector("0xaaa"),
			retailVector("0xbbb"),
		}
		outcome := ClusterOutcome{
			Assignments: map[string]domain.ClusterAssignment{
				"0xaaa": 0,
				"0xbbb": 0,
			},
			Clusters: 1,
		}
		raw := map[string]float64{"0xaaa": 600, "0xbbb": 610}

		adjusted := clusterer.AdjustScores(raw, vectors, outcome)

		require.Equal(t, "", cmp.Diff(raw, adjusted))
	})

	t.Run("degraded outcome passes scores through unchanged", func(t *testing.T) {
		vectors := []domain.WalletFeatureVector{retailVector("0xaaa")}
		outcome := ClusterOutcome{
			Assignments: map[string]domain.ClusterAssignment{"0xaaa": domain.NoiseCluster},
			Degraded:    true,
			Reason:      "population too small to cluster",
		}
		raw := map[string]float64{"0xaaa": 512}

		adjusted := clusterer.AdjustScores(raw, vectors, outcome)

		require.Equal(t, "", cmp.Diff(raw, adjusted))
	})
}
