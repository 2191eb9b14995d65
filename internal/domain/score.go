package domain

// NoiseCluster marks wallets the clusterer could not place in any
// density-connected group. Bot-like and outlier wallets land here rather
// than being absorbed into a majority cluster.
const NoiseCluster = -1

// ClusterAssignment is a non-negative cluster id or NoiseCluster. Cluster
// ids are arbitrary labels, not ordered.
type ClusterAssignment int

// IsNoise reports whether the wallet was left unclustered.
func (c ClusterAssignment) IsNoise() bool {
	return c == NoiseCluster
}

// ScoreRow is the only entity that leaves the pipeline: one row of the
// published wallet score table.
type ScoreRow struct {
	Wallet       string `csv:"userWallet" json:"userWallet"`
	CreditScore  int    `csv:"credit_score" json:"creditScore"`
	ClusterLabel int    `csv:"cluster_label" json:"clusterLabel"`
}
