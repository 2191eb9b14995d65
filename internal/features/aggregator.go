package features

import (
	"sort"
	"time"

	"github.com/ananya868/aave-credit-scoring/internal/domain"
	"github.com/shopspring/decimal"
)

// AggregateAll builds one feature vector per wallet, visiting wallets in
// sorted address order so the output slice is deterministic.
func AggregateAll(txnsByWallet map[string][]domain.Transaction) []domain.WalletFeatureVector {
	wallets := make([]string, 0, len(txnsByWallet))
	for w := range txnsByWallet {
		wallets = append(wallets, w)
	}
	sort.Strings(wallets)

	vectors := make([]domain.WalletFeatureVector, 0, len(wallets))
	for _, w := range wallets {
		vectors = append(vectors, Aggregate(w, txnsByWallet[w]))
	}
	return vectors
}

// Aggregate computes a wallet's feature vector in a single forward scan of
// its time-ordered transactions. Every field is finite: undefined ratios
// resolve to the sentinels defined in the domain package.
func Aggregate(wallet string, txns []domain.Transaction) domain.WalletFeatureVector {
	v := domain.WalletFeatureVector{
		Wallet:                wallet,
		MinHealthFactorProxy:  domain.HealthFactorNoDebt,
		MeanHealthFactorProxy: domain.HealthFactorNoDebt,
		RepayToBorrowRatio:    domain.RepayRatioNeverBorrowed,
	}
	if len(txns) == 0 {
		return v
	}

	var (
		totalUSD   decimal.Decimal
		deposit    decimal.Decimal
		borrow     decimal.Decimal
		repay      decimal.Decimal
		redeem     decimal.Decimal
		collateral decimal.Decimal
		debt       decimal.Decimal

		proxySum   float64
		proxyCount int
		minProxy   = domain.HealthFactorNoDebt

		activeDays = map[string]struct{}{}
		assets     = map[string]struct{}{}
		firstTs    = txns[0].Timestamp
		lastTs     = txns[0].Timestamp
	)

	for _, tx := range txns {
		if tx.Timestamp.Before(firstTs) {
			firstTs = tx.Timestamp
		}
		if tx.Timestamp.After(lastTs) {
			lastTs = tx.Timestamp
		}
		activeDays[tx.Timestamp.Format(time.DateOnly)] = struct{}{}
		if tx.Asset != "" {
			assets[tx.Asset] = struct{}{}
		}
		totalUSD = totalUSD.Add(tx.AmountUSD)

		switch tx.Action {
		case domain.ActionDeposit:
			v.DepositCount++
			deposit = deposit.Add(tx.AmountUSD)
			collateral = collateral.Add(tx.AmountUSD)
		case domain.ActionBorrow:
			v.BorrowCount++
			borrow = borrow.Add(tx.AmountUSD)
			collateral = collateral.Sub(tx.AmountUSD)
			debt = debt.Add(tx.AmountUSD)
		case domain.ActionRepay:
			v.RepayCount++
			repay = repay.Add(tx.AmountUSD)
			collateral = collateral.Add(tx.AmountUSD)
			debt = debt.Sub(tx.AmountUSD)
		case domain.ActionRedeem:
			v.RedeemCount++
			redeem = redeem.Add(tx.AmountUSD)
			collateral = collateral.Sub(tx.AmountUSD)
		case domain.ActionLiquidationCall:
			v.LiquidationCount++
			// liquidation does not move our collateral/debt proxy; the
			// count itself is the risk signal
			continue
		}

		proxy := healthFactorProxy(collateral, debt)
		proxySum += proxy
		proxyCount++
		if proxy < minProxy {
			minProxy = proxy
		}
	}

	v.TotalTransactions = len(txns)
	v.UniqueActiveDays = len(activeDays)
	v.AssetDiversity = len(assets)
	v.WalletAgeDays = lastTs.Sub(firstTs).Hours() / 24
	v.TransactionFrequency = float64(v.TotalTransactions) / float64(v.UniqueActiveDays)

	v.TotalDepositUSD = deposit.InexactFloat64()
	v.TotalBorrowUSD = borrow.InexactFloat64()
	v.TotalRepayUSD = repay.InexactFloat64()
	v.TotalRedeemUSD = redeem.InexactFloat64()
	v.NetDepositUSD = deposit.Sub(redeem).InexactFloat64()
	v.AvgTransactionUSD = totalUSD.Div(decimal.NewFromInt(int64(len(txns)))).InexactFloat64()

	if proxyCount > 0 {
		v.MinHealthFactorProxy = minProxy
		v.MeanHealthFactorProxy = proxySum / float64(proxyCount)
	}

	if borrow.IsPositive() {
		v.RepayToBorrowRatio = repay.Div(borrow).InexactFloat64()
	}

	switch {
	case deposit.IsPositive():
		v.BorrowToDepositRatio = borrow.Div(deposit).InexactFloat64()
		if v.BorrowToDepositRatio > domain.LeverageRatioNoDeposits {
			v.BorrowToDepositRatio = domain.LeverageRatioNoDeposits
		}
	case borrow.IsPositive():
		// borrowed with no observed deposits: maximally leveraged as far
		// as this log can tell
		v.BorrowToDepositRatio = domain.LeverageRatioNoDeposits
	}

	return v
}

// healthFactorProxy approximates collateral value over debt value from the
// running balances. Debt-free (or negative-debt) snapshots resolve to the
// no-debt sentinel, and the proxy is capped there so a near-zero debt
// cannot blow the feature up past "no debt at all".
func healthFactorProxy(collateral, debt decimal.Decimal) float64 {
	if !debt.IsPositive() {
		return domain.HealthFactorNoDebt
	}
	proxy := collateral.Div(debt).InexactFloat64()
	if proxy > domain.HealthFactorNoDebt {
		return domain.HealthFactorNoDebt
	}
	return proxy
}
