package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ananya868/aave-credit-scoring/internal/app"
	"github.com/ananya868/aave-credit-scoring/internal/config"
	"github.com/ananya868/aave-credit-scoring/internal/logger"
	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/ananya868/aave-credit-scoring/internal/scoring"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		inputPath  string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:          "score-wallets",
		Short:        "Run the full wallet credit scoring pipeline once and write the score table",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if inputPath == "" {
				inputPath = cfg.TransactionsPath
			}
			if outputPath == "" {
				outputPath = cfg.ScoresPath
			}

			return runPipeline(inputPath, outputPath)
		},
	}

	cmd.Flags().StringVar(&inputPath, "input", "", "path to the raw transaction JSON log")
	cmd.Flags().StringVar(&outputPath, "output", "", "path the score CSV is written to")

	return cmd
}

func runPipeline(inputPath, outputPath string) error {
	l := logger.New()
	scoreRepository := repository.NewCsvScoreRepository(outputPath)

	handler := app.PipelineHandler{
		TransactionRepository: repository.NewFileTransactionRepository(inputPath),
		ScoreRepository:       scoreRepository,
		Scorer:                scoring.NewHeuristicScorer(scoring.DefaultWeights()),
		Clusterer:             scoring.NewClusterer(scoring.DefaultClusterConfig()),
	}

	ctx := context.WithValue(context.Background(), logger.ContextKey, l)
	summary, err := handler.Run(ctx)
	if err != nil {
		return err
	}

	rows, err := scoreRepository.List()
	if err != nil {
		return err
	}

	fmt.Printf("scored %d wallets (%d records processed, %d dropped) in %s\n",
		summary.Wallets, summary.ProcessedRecords, summary.DroppedRecords, summary.Duration)
	if summary.ClusteringDegraded {
		fmt.Printf("clustering degraded: %s\n", summary.DegradedReason)
	} else {
		fmt.Printf("found %d behavioral clusters, %d noise wallets\n", summary.Clusters, summary.NoiseWallets)
	}

	fmt.Println("\ntop wallets:")
	for i := 0; i < len(rows) && i < 10; i++ {
		fmt.Printf("  %s  %4d  cluster=%d\n", rows[i].Wallet, rows[i].CreditScore, rows[i].ClusterLabel)
	}
	fmt.Println("\nbottom wallets:")
	start := len(rows) - 10
	if start < 0 {
		start = 0
	}
	for i := start; i < len(rows); i++ {
		fmt.Printf("  %s  %4d  cluster=%d\n", rows[i].Wallet, rows[i].CreditScore, rows[i].ClusterLabel)
	}

	return nil
}
