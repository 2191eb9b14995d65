package features

import (
	"testing"
	"time"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func tx(action domain.ActionKind, ts time.Time, amountUSD float64) domain.Transaction {
	return domain.Transaction{
		Wallet:    "0xabc",
		Action:    action,
		Asset:     "USDC",
		Amount:    decimal.NewFromFloat(amountUSD),
		AmountUSD: decimal.NewFromFloat(amountUSD),
		Timestamp: ts,
	}
}

func Test_Aggregate(t *testing.T) {
	day0 := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("single transaction wallet has age zero", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
		})

		require.Equal(t, 0.0, v.WalletAgeDays)
		require.Equal(t, 1, v.TotalTransactions)
		require.Equal(t, 1, v.UniqueActiveDays)
		require.Equal(t, 1.0, v.TransactionFrequency)
	})

	t.Run("wallet that never borrowed gets fully healthy repay ratio", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
		})

		require.Equal(t, domain.RepayRatioNeverBorrowed, v.RepayToBorrowRatio)
		require.Equal(t, domain.HealthFactorNoDebt, v.MinHealthFactorProxy)
	})

	t.Run("borrows without repayment give ratio zero", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
			tx(domain.ActionBorrow, day0.Add(time.Hour), 50),
		})

		require.Equal(t, 0.0, v.RepayToBorrowRatio)
	})

	t.Run("health factor proxy tracks worst collateral over debt", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
			tx(domain.ActionBorrow, day0.Add(time.Hour), 50),
			tx(domain.ActionRepay, day0.Add(2*time.Hour), 25),
		})

		require.Equal(t, 1.0, v.MinHealthFactorProxy)
		require.Equal(t, 0.5, v.RepayToBorrowRatio)
		require.Equal(t, 0.5, v.BorrowToDepositRatio)
	})

	t.Run("liquidation events are counted but do not move balances", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
			tx(domain.ActionLiquidationCall, day0.Add(time.Hour), 40),
		})

		require.Equal(t, 1, v.LiquidationCount)
		require.Equal(t, 100.0, v.TotalDepositUSD)
		require.Equal(t, domain.HealthFactorNoDebt, v.MinHealthFactorProxy)
	})

	t.Run("borrowing with zero deposits caps leverage at the sentinel", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionBorrow, day0, 50),
		})

		require.Equal(t, domain.LeverageRatioNoDeposits, v.BorrowToDepositRatio)
	})

	t.Run("wallet age spans first to last transaction", func(t *testing.T) {
		v := Aggregate("0xabc", []domain.Transaction{
			tx(domain.ActionDeposit, day0, 100),
			tx(domain.ActionDeposit, day0.AddDate(0, 0, 10), 100),
		})

		require.Equal(t, 10.0, v.WalletAgeDays)
		require.Equal(t, 2, v.UniqueActiveDays)
	})

	t.Run("re-aggregation of the same transactions is bit-identical", func(t *testing.T) {
		txns := []domain.Transaction{
			tx(domain.ActionDeposit, day0, 123.456),
			tx(domain.ActionBorrow, day0.Add(time.Hour), 77.7),
			tx(domain.ActionRepay, day0.AddDate(0, 0, 3), 33.3),
			tx(domain.ActionRedeem, day0.AddDate(0, 0, 5), 11.1),
		}

		first := Aggregate("0xabc", txns)
		second := Aggregate("0xabc", txns)

		require.Equal(t, "", cmp.Diff(first, second))
	})
}

func Test_AggregateAll(t *testing.T) {
	day0 := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	vectors := AggregateAll(map[string][]domain.Transaction{
		"0xbbb": {tx(domain.ActionDeposit, day0, 1)},
		"0xaaa": {tx(domain.ActionDeposit, day0, 1)},
	})

	require.Len(t, vectors, 2)
	require.Equal(t, "0xaaa", vectors[0].Wallet)
	require.Equal(t, "0xbbb", vectors[1].Wallet)
}
