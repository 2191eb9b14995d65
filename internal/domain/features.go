package domain

const (
	// HealthFactorNoDebt stands in for the health-factor proxy of a wallet
	// that has no outstanding debt at observation time. Mirrors treating
	// collateral/0 as "effectively infinite" without letting Inf into the
	// feature space.
	HealthFactorNoDebt = 1000.0

	// RepayRatioNeverBorrowed is the repay/borrow ratio assigned to wallets
	// that never borrowed. A wallet with no debt history is fully healthy
	// on this axis.
	RepayRatioNeverBorrowed = 1.0

	// LeverageRatioNoDeposits caps borrow/deposit for wallets that borrowed
	// without any observed deposits, keeping the feature finite.
	LeverageRatioNoDeposits = 10.0
)

// WalletFeatureVector summarizes one wallet's behavior across its full
// transaction history. Exactly one exists per wallet seen in the input, and
// every field is finite. Read-only after aggregation.
type WalletFeatureVector struct {
	Wallet string

	// history / stability
	WalletAgeDays        float64
	TotalTransactions    int
	UniqueActiveDays     int
	TransactionFrequency float64

	// financial scale, all USD
	TotalDepositUSD   float64
	TotalBorrowUSD    float64
	TotalRepayUSD     float64
	TotalRedeemUSD    float64
	NetDepositUSD     float64
	AvgTransactionUSD float64

	// activity counts per action kind
	DepositCount int
	BorrowCount  int
	RepayCount   int
	RedeemCount  int

	// risk
	LiquidationCount      int
	MinHealthFactorProxy  float64
	MeanHealthFactorProxy float64

	// behavioral ratios
	RepayToBorrowRatio   float64
	BorrowToDepositRatio float64

	AssetDiversity int
}
