package modeldto

import "github.com/shopspring/decimal"

type (
	Statistics struct {
		TransactionCount int64 `json:"transaction_count"`
		Profit           int64 `json:"profit"`
	}
	WalletView struct {
		Address   string          `json:"address"`
		AmountBTC decimal.Decimal `json:"amount_in_btc"`
		AmountUSD decimal.Decimal `json:"amount_in_usd"`
	}
)
