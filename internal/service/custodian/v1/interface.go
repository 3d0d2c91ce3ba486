// Package custodian defines the wallet management contract.
package custodian

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modeldto"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/shopspring/decimal"
)

// Custodian opens wallets and exposes them to their owners.
type Custodian interface {
	CreateWallet(ctx context.Context, user modelentity.User) (modelentity.Wallet, error)
	CreateWalletWith(ctx context.Context, wallet modelentity.Wallet) (modelentity.Wallet, error)
	GetWallet(ctx context.Context, address string, user *modelentity.User, validateOwner bool) (modelentity.Wallet, error)
	GetUserWallets(ctx context.Context, user modelentity.User) ([]modelentity.Wallet, error)
	GetWalletView(ctx context.Context, address string, user modelentity.User) (modeldto.WalletView, error)
	TearDown(ctx context.Context) error
}

// Converter prices satoshi amounts in USD.
type Converter interface {
	SatoshiToBTC(satoshi int64) decimal.Decimal
	ToUSD(ctx context.Context, btc decimal.Decimal) (decimal.Decimal, error)
}
