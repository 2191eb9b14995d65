package repository

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/gocarina/gocsv"
)

// ErrScoreNotFound distinguishes "wallet absent from the latest run" from
// real failures. The service boundary maps it to a 404.
var ErrScoreNotFound = errors.New("wallet not found in score table")

type ScoreRepository interface {
	Replace(rows []domain.ScoreRow) error
	Get(wallet string) (*domain.ScoreRow, error)
	List() ([]domain.ScoreRow, error)
}

type csvScoreRepositoryHandler struct {
	Path string
}

func NewCsvScoreRepository(path string) ScoreRepository {
	return csvScoreRepositoryHandler{Path: path}
}

// Replace atomically swaps the published score table for the given rows.
// Writing to a temp file and renaming means a fatal failure mid-write never
// leaves a partial table behind as "final".
func (h csvScoreRepositoryHandler) Replace(rows []domain.ScoreRow) error {
	dir := filepath.Dir(h.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "wallet_scores_*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp score file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gocsv.MarshalFile(&rows, tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write score table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp score file: %w", err)
	}

	if err := os.Rename(tmp.Name(), h.Path); err != nil {
		return fmt.Errorf("failed to publish score table: %w", err)
	}

	return nil
}

func (h csvScoreRepositoryHandler) Get(wallet string) (*domain.ScoreRow, error) {
	rows, err := h.List()
	if err != nil {
		return nil, err
	}

	wallet = strings.ToLower(wallet)
	for _, row := range rows {
		if strings.ToLower(row.Wallet) == wallet {
			out := row
			return &out, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrScoreNotFound, wallet)
}

func (h csvScoreRepositoryHandler) List() ([]domain.ScoreRow, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open score table %s: %w", h.Path, err)
	}
	defer f.Close()

	rows := []domain.ScoreRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse score table %s: %w", h.Path, err)
	}

	return rows, nil
}
