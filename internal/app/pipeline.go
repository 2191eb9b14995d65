package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/ananya868/aave-credit-scoring/internal/features"
	"github.com/ananya868/aave-credit-scoring/internal/loader"
	"github.com/ananya868/aave-credit-scoring/internal/logger"
	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/ananya868/aave-credit-scoring/internal/scoring"
	"github.com/google/uuid"
)

type PipelineHandler struct {
	TransactionRepository repository.TransactionRepository
	ScoreRepository       repository.ScoreRepository
	Scorer                scoring.HeuristicScorer
	Clusterer             scoring.Clusterer
}

// RunSummary is the diagnostic record of one full pipeline run. Non-fatal
// conditions (dropped records, degraded clustering) surface here instead
// of as errors.
type RunSummary struct {
	RunID              uuid.UUID     `json:"runID"`
	Wallets            int           `json:"wallets"`
	ProcessedRecords   int           `json:"processedRecords"`
	DroppedRecords     int           `json:"droppedRecords"`
	Clusters           int           `json:"clusters"`
	NoiseWallets       int           `json:"noiseWallets"`
	ClusteringDegraded bool          `json:"clusteringDegraded"`
	DegradedReason     string        `json:"degradedReason,omitempty"`
	Duration           time.Duration `json:"duration"`
}

// Run executes the whole pipeline - load, aggregate, score, cluster,
// normalize, publish - recomputing every wallet from scratch. Unreadable
// input aborts before any scoring; clustering failure degrades to
// heuristic-only scoring; a wallet reaching normalization without a
// feature vector is a pipeline defect and aborts the run.
func (h PipelineHandler) Run(ctx context.Context) (*RunSummary, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	runID := uuid.New()

	records, err := h.TransactionRepository.List()
	if err != nil {
		return nil, fmt.Errorf("load stage failed: %w", err)
	}

	loadResult := loader.Load(records)
	if loadResult.Dropped > 0 {
		log.Warnw("dropped malformed transaction records",
			"runID", runID,
			"dropped", loadResult.Dropped,
			"processed", loadResult.Processed,
		)
	}

	vectors := features.AggregateAll(loadResult.TransactionsByWallet)

	rawScores := make(map[string]float64, len(vectors))
	for _, v := range vectors {
		rawScores[v.Wallet] = h.Scorer.Score(v)
	}

	outcome := h.Clusterer.Cluster(vectors)
	if outcome.Degraded {
		log.Warnw("clustering degraded, scoring heuristic-only",
			"runID", runID,
			"reason", outcome.Reason,
		)
	}

	adjusted := h.Clusterer.AdjustScores(rawScores, vectors, outcome)
	finalScores := scoring.Normalize(adjusted)

	rows, err := assembleRows(loadResult.Wallets(), finalScores, outcome)
	if err != nil {
		return nil, fmt.Errorf("normalize stage failed: %w", err)
	}

	if err := h.ScoreRepository.Replace(rows); err != nil {
		return nil, fmt.Errorf("publish stage failed: %w", err)
	}

	summary := &RunSummary{
		RunID:              runID,
		Wallets:            len(rows),
		ProcessedRecords:   loadResult.Processed,
		DroppedRecords:     loadResult.Dropped,
		Clusters:           outcome.Clusters,
		NoiseWallets:       outcome.NoiseCount,
		ClusteringDegraded: outcome.Degraded,
		DegradedReason:     outcome.Reason,
		Duration:           time.Since(start),
	}

	log.Infow("scoring pipeline complete",
		"runID", runID,
		"wallets", summary.Wallets,
		"dropped", summary.DroppedRecords,
		"clusters", summary.Clusters,
		"durationMs", summary.Duration.Milliseconds(),
	)

	return summary, nil
}

// assembleRows materializes the published table, highest score first.
// Every wallet that survived loading must have a final score and a cluster
// assignment by now - a miss is an invariant violation, not a skippable
// wallet.
func assembleRows(wallets []string, finalScores map[string]int, outcome scoring.ClusterOutcome) ([]domain.ScoreRow, error) {
	rows := make([]domain.ScoreRow, 0, len(wallets))
	for _, wallet := range wallets {
		score, ok := finalScores[wallet]
		if !ok {
			return nil, fmt.Errorf("wallet %s has no final score", wallet)
		}
		assignment, ok := outcome.Assignments[wallet]
		if !ok {
			return nil, fmt.Errorf("wallet %s has no cluster assignment", wallet)
		}
		rows = append(rows, domain.ScoreRow{
			Wallet:       wallet,
			CreditScore:  score,
			ClusterLabel: int(assignment),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreditScore != rows[j].CreditScore {
			return rows[i].CreditScore > rows[j].CreditScore
		}
		return rows[i].Wallet < rows[j].Wallet
	})

	return rows, nil
}
