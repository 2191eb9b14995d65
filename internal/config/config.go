package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds everything the binaries need from the environment. Pipeline
// tunables (weights, clustering knobs) stay in code as explicit values
// passed to constructors; only deployment concerns live here.
type Config struct {
	APIPort          int    `envconfig:"API_PORT" default:"3009"`
	TransactionsPath string `envconfig:"TRANSACTIONS_PATH" default:"data/raw/user-wallet-transactions.json"`
	ScoresPath       string `envconfig:"SCORES_PATH" default:"output/wallet_scores.csv"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("scoring", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
