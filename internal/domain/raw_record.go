package domain

// RawTransactionRecord is one untyped record from the transaction log,
// exactly as the input file carries it. Validation and normalization into
// Transaction happens in the loader, not here.
type RawTransactionRecord struct {
	UserWallet string        `json:"userWallet"`
	Network    string        `json:"network"`
	Protocol   string        `json:"protocol"`
	TxHash     string        `json:"txHash"`
	Action     string        `json:"action"`
	Timestamp  int64         `json:"timestamp"`
	ActionData RawActionData `json:"actionData"`
}

// RawActionData carries the protocol metadata needed for USD valuation.
// Amounts and prices arrive as strings in the source log.
type RawActionData struct {
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	AssetSymbol   string `json:"assetSymbol"`
	AssetPriceUSD string `json:"assetPriceUSD"`
}
