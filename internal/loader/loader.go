package loader

import (
	"sort"
	"strings"
	"time"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/shopspring/decimal"
)

// LoadResult is the loader's contract with the rest of the pipeline:
// validated transactions grouped by wallet, time-ascending within each
// group, plus the count of malformed records that were dropped. Dropped
// records are never fatal, but they are never silent either.
type LoadResult struct {
	TransactionsByWallet map[string][]domain.Transaction
	Processed            int
	Dropped              int
}

// Wallets returns the wallet addresses in sorted order. Downstream steps
// iterate in this order so runs over identical input are deterministic.
func (r LoadResult) Wallets() []string {
	wallets := make([]string, 0, len(r.TransactionsByWallet))
	for w := range r.TransactionsByWallet {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)
	return wallets
}

// Load validates and normalizes raw records. A record survives if it has a
// wallet address, a recognized action, a parseable amount and a positive
// timestamp; everything else is dropped and counted.
func Load(records []domain.RawTransactionRecord) LoadResult {
	byWallet := map[string][]domain.Transaction{}
	dropped := 0

	for _, record := range records {
		tx, ok := validate(record)
		if !ok {
			dropped++
			continue
		}
		byWallet[tx.Wallet] = append(byWallet[tx.Wallet], tx)
	}

	for wallet := range byWallet {
		txns := byWallet[wallet]
		sort.SliceStable(txns, func(i, j int) bool {
			return txns[i].Timestamp.Before(txns[j].Timestamp)
		})
	}

	return LoadResult{
		TransactionsByWallet: byWallet,
		Processed:            len(records) - dropped,
		Dropped:              dropped,
	}
}

func validate(record domain.RawTransactionRecord) (domain.Transaction, bool) {
	wallet := strings.ToLower(strings.TrimSpace(record.UserWallet))
	if wallet == "" {
		return domain.Transaction{}, false
	}

	action, ok := domain.ParseActionKind(strings.ToLower(record.Action))
	if !ok {
		return domain.Transaction{}, false
	}

	if record.Timestamp <= 0 {
		return domain.Transaction{}, false
	}

	amount, err := decimal.NewFromString(record.ActionData.Amount)
	if err != nil {
		return domain.Transaction{}, false
	}

	// Valuation metadata is optional: a missing price means we cannot value
	// the event in USD, not that the event didn't happen.
	amountUSD := decimal.Zero
	if price, err := decimal.NewFromString(record.ActionData.AssetPriceUSD); err == nil {
		amountUSD = amount.Mul(price)
	}

	return domain.Transaction{
		Wallet:    wallet,
		Action:    action,
		Asset:     record.ActionData.AssetSymbol,
		Amount:    amount,
		AmountUSD: amountUSD,
		Timestamp: time.Unix(record.Timestamp, 0).UTC(),
	}, true
}
