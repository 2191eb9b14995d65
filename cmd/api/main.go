package main

import (
	"log"

	"github.com/ananya868/aave-credit-scoring/api"
	"github.com/ananya868/aave-credit-scoring/internal/app"
	"github.com/ananya868/aave-credit-scoring/internal/config"
	"github.com/ananya868/aave-credit-scoring/internal/logger"
	"github.com/ananya868/aave-credit-scoring/internal/repository"
	"github.com/ananya868/aave-credit-scoring/internal/scoring"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	l := logger.New()
	scoreRepository := repository.NewCsvScoreRepository(cfg.ScoresPath)

	handler := &api.ApiHandler{
		PipelineHandler: app.PipelineHandler{
			TransactionRepository: repository.NewFileTransactionRepository(cfg.TransactionsPath),
			ScoreRepository:       scoreRepository,
			Scorer:                scoring.NewHeuristicScorer(scoring.DefaultWeights()),
			Clusterer:             scoring.NewClusterer(scoring.DefaultClusterConfig()),
		},
		ScoreRepository: scoreRepository,
		Logger:          l,
	}

	if err := handler.StartApi(cfg.APIPort); err != nil {
		l.Fatal(err)
	}
}
