package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
)

type TransactionRepository interface {
	List() ([]domain.RawTransactionRecord, error)
}

type fileTransactionRepositoryHandler struct {
	Path string
}

func NewFileTransactionRepository(path string) TransactionRepository {
	return fileTransactionRepositoryHandler{Path: path}
}

// List reads the whole transaction log upfront. Any failure here is fatal
// for the run: a log we cannot parse at all means nothing can be scored.
func (h fileTransactionRepositoryHandler) List() ([]domain.RawTransactionRecord, error) {
	f, err := os.ReadFile(h.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transaction log %s: %w", h.Path, err)
	}

	records := []domain.RawTransactionRecord{}
	if err := json.Unmarshal(f, &records); err != nil {
		return nil, fmt.Errorf("failed to parse transaction log %s: %w", h.Path, err)
	}

	return records, nil
}
