package scoring

import (
	"math"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/montanaflynn/stats"
)

// ClusterConfig tunes the density-based wallet clustering. Distances are
// measured in standardized (z-scored) feature space.
type ClusterConfig struct {
	Eps            float64 // neighborhood radius
	MinClusterSize int     // neighbors (incl. self) needed for a core point
	MinPopulation  int     // below this, clustering degrades immediately

	// advisory score adjustment
	DistressedShare   float64 // cluster share of liquidated wallets that marks it distressed
	DistressedPenalty float64 // raw-score penalty applied to distressed cluster members
}

func DefaultClusterConfig() ClusterConfig {
	return ClusterConfig{
		Eps:               1.25,
		MinClusterSize:    5,
		MinPopulation:     10,
		DistressedShare:   0.5,
		DistressedPenalty: 50,
	}
}

// ClusterOutcome is a tagged stage result: a degraded outcome (all noise,
// heuristic-only scoring) is an anticipated mode, not an error.
type ClusterOutcome struct {
	Assignments map[string]domain.ClusterAssignment
	Clusters    int
	NoiseCount  int
	Degraded    bool
	Reason      string
}

type Clusterer struct {
	config ClusterConfig
}

func NewClusterer(config ClusterConfig) Clusterer {
	return Clusterer{config: config}
}

// Cluster groups the run's full wallet population by feature-space density.
// Every vector gets exactly one assignment; wallets in no dense region are
// labeled noise rather than forced into a cluster. The input must already
// be in sorted wallet order - labels are deterministic given that order.
func (c Clusterer) Cluster(vectors []domain.WalletFeatureVector) ClusterOutcome {
	if len(vectors) < c.config.MinPopulation {
		return c.allNoise(vectors, "population too small to cluster")
	}

	matrix, ok := standardize(clusterMatrix(vectors))
	if !ok {
		return c.allNoise(vectors, "degenerate feature space")
	}

	labels := dbscan(matrix, c.config.Eps, c.config.MinClusterSize)

	outcome := ClusterOutcome{Assignments: map[string]domain.ClusterAssignment{}}
	for i, v := range vectors {
		assignment := domain.ClusterAssignment(labels[i])
		outcome.Assignments[v.Wallet] = assignment
		if assignment.IsNoise() {
			outcome.NoiseCount++
		} else if int(assignment)+1 > outcome.Clusters {
			outcome.Clusters = int(assignment) + 1
		}
	}

	if outcome.Clusters == 0 {
		outcome.Degraded = true
		outcome.Reason = "no dense regions found"
	}

	return outcome
}

// AdjustScores applies the advisory cluster signal to raw scores: members
// of clusters dominated by liquidated wallets take a bounded penalty.
// Noise wallets and degraded outcomes pass through untouched, so scoring
// never depends on clustering having worked.
func (c Clusterer) AdjustScores(rawScores map[string]float64, vectors []domain.WalletFeatureVector, outcome ClusterOutcome) map[string]float64 {
	adjusted := make(map[string]float64, len(rawScores))
	for wallet, score := range rawScores {
		adjusted[wallet] = score
	}
	if outcome.Degraded {
		return adjusted
	}

	members := map[domain.ClusterAssignment]int{}
	liquidated := map[domain.ClusterAssignment]int{}
	for _, v := range vectors {
		assignment := outcome.Assignments[v.Wallet]
		if assignment.IsNoise() {
			continue
		}
		members[assignment]++
		if v.LiquidationCount > 0 {
			liquidated[assignment]++
		}
	}

	for _, v := range vectors {
		assignment := outcome.Assignments[v.Wallet]
		if assignment.IsNoise() {
			continue
		}
		share := float64(liquidated[assignment]) / float64(members[assignment])
		if share >= c.config.DistressedShare {
			adjusted[v.Wallet] -= c.config.DistressedPenalty
		}
	}

	return adjusted
}

func (c Clusterer) allNoise(vectors []domain.WalletFeatureVector, reason string) ClusterOutcome {
	assignments := make(map[string]domain.ClusterAssignment, len(vectors))
	for _, v := range vectors {
		assignments[v.Wallet] = domain.NoiseCluster
	}
	return ClusterOutcome{
		Assignments: assignments,
		NoiseCount:  len(vectors),
		Degraded:    true,
		Reason:      reason,
	}
}

// clusterMatrix picks the behavioral feature subset used for proximity.
// Heavy-tailed scale features are log-compressed so whales don't stretch
// the space.
func clusterMatrix(vectors []domain.WalletFeatureVector) [][]float64 {
	matrix := make([][]float64, len(vectors))
	for i, v := range vectors {
		matrix[i] = []float64{
			v.WalletAgeDays,
			v.TransactionFrequency,
			math.Log1p(float64(v.TotalTransactions)),
			float64(v.LiquidationCount),
			v.MinHealthFactorProxy,
			v.RepayToBorrowRatio,
			v.BorrowToDepositRatio,
			math.Log1p(math.Max(v.NetDepositUSD, 0)),
			float64(v.AssetDiversity),
		}
	}
	return matrix
}

// standardize z-scores each column in place. Constant columns carry no
// density information and collapse to zero; if every column is constant
// the matrix is degenerate and the bool comes back false.
func standardize(matrix [][]float64) ([][]float64, bool) {
	if len(matrix) == 0 {
		return matrix, false
	}

	informative := false
	for col := 0; col < len(matrix[0]); col++ {
		column := make([]float64, len(matrix))
		for row := range matrix {
			column[row] = matrix[row][col]
		}

		mean, err := stats.Mean(column)
		if err != nil {
			return nil, false
		}
		stdev, err := stats.StandardDeviationPopulation(column)
		if err != nil {
			return nil, false
		}

		if stdev == 0 {
			for row := range matrix {
				matrix[row][col] = 0
			}
			continue
		}

		informative = true
		for row := range matrix {
			matrix[row][col] = (matrix[row][col] - mean) / stdev
		}
	}

	return matrix, informative
}

// dbscan is a plain density-based scan: core points (>= minPts neighbors
// within eps, counting themselves) seed clusters that expand through
// density-reachable points; everything else stays noise (-1). Points are
// visited in input order, so labels are stable for a fixed input order.
func dbscan(matrix [][]float64, eps float64, minPts int) []int {
	const unvisited = -2

	labels := make([]int, len(matrix))
	for i := range labels {
		labels[i] = unvisited
	}

	nextCluster := 0
	for i := range matrix {
		if labels[i] != unvisited {
			continue
		}

		neighbors := regionQuery(matrix, i, eps)
		if len(neighbors) < minPts {
			labels[i] = domain.NoiseCluster
			continue
		}

		cluster := nextCluster
		nextCluster++
		labels[i] = cluster

		queue := append([]int{}, neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == domain.NoiseCluster {
				labels[j] = cluster
			}
			if labels[j] != unvisited {
				continue
			}
			labels[j] = cluster

			jNeighbors := regionQuery(matrix, j, eps)
			if len(jNeighbors) >= minPts {
				queue = append(queue, jNeighbors...)
			}
		}
	}

	return labels
}

func regionQuery(matrix [][]float64, i int, eps float64) []int {
	neighbors := []int{}
	for j := range matrix {
		if euclidean(matrix[i], matrix[j]) <= eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for k := range a {
		d := a[k] - b[k]
		sum += d * d
	}
	return math.Sqrt(sum)
}
