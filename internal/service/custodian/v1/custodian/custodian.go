// Package custodian provides wallet management on top of the account storage.
package custodian

import (
	"context"
	"fmt"

	"github.com/danilovkiri/dk-go-wallet/internal/config"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modeldto"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	custodianAPI "github.com/danilovkiri/dk-go-wallet/internal/service/custodian/v1"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/danilovkiri/dk-go-wallet/internal/service/secretary/v1"
	"github.com/danilovkiri/dk-go-wallet/internal/service/validator"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	"github.com/rs/zerolog"
)

// Custodian defines attributes of a struct available to its methods.
type Custodian struct {
	storage   storage.Accounts
	generator secretary.Generator
	converter custodianAPI.Converter
	cfg       *config.WalletConfig
	log       *zerolog.Logger
}

// InitService initializes a wallet management service.
func InitService(st storage.Accounts, gen secretary.Generator, conv custodianAPI.Converter, cfg *config.WalletConfig, log *zerolog.Logger) (*Custodian, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil account storage was passed to service initializer"}
	}
	if gen == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil generator was passed to service initializer"}
	}
	if conv == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil converter was passed to service initializer"}
	}
	if cfg == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil wallet config was passed to service initializer"}
	}
	if log == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil logger was passed to service initializer"}
	}
	return &Custodian{storage: st, generator: gen, converter: conv, cfg: cfg, log: log}, nil
}

// CreateWallet opens a wallet for user holding the default balance.
func (c *Custodian) CreateWallet(ctx context.Context, user modelentity.User) (modelentity.Wallet, error) {
	return c.CreateWalletWith(ctx, modelentity.Wallet{
		Balance: c.cfg.DefaultBalance,
		UserID:  user.ID,
	})
}

// CreateWalletWith persists wallet as given, generating an address if it is empty.
func (c *Custodian) CreateWalletWith(ctx context.Context, wallet modelentity.Wallet) (modelentity.Wallet, error) {
	if wallet.Balance < 0 {
		return modelentity.Wallet{}, &serviceErrors.InvalidAmountError{Msg: fmt.Sprintf("initial balance must be non-negative, got %d", wallet.Balance)}
	}
	if wallet.Address == "" {
		wallet.Address = c.generator.NewWalletAddress()
	}
	if err := c.storage.AddNewWallet(ctx, wallet); err != nil {
		return modelentity.Wallet{}, err
	}
	c.log.Info().Str("address", wallet.Address).Str("user", wallet.UserID.String()).Msg("wallet opening done")
	return wallet, nil
}

// GetWallet retrieves a wallet, checking that user owns it when validateOwner is set.
func (c *Custodian) GetWallet(ctx context.Context, address string, user *modelentity.User, validateOwner bool) (modelentity.Wallet, error) {
	wallet, err := c.storage.GetWallet(ctx, address)
	if err != nil {
		return modelentity.Wallet{}, err
	}
	if validateOwner {
		if err = validator.ValidateWalletOwner(wallet, user); err != nil {
			return modelentity.Wallet{}, err
		}
	}
	return wallet, nil
}

// GetUserWallets retrieves every wallet of user, possibly none.
func (c *Custodian) GetUserWallets(ctx context.Context, user modelentity.User) ([]modelentity.Wallet, error) {
	return c.storage.GetUserWallets(ctx, user.ID)
}

// GetWalletView retrieves an owned wallet with its balance in BTC and USD.
func (c *Custodian) GetWalletView(ctx context.Context, address string, user modelentity.User) (modeldto.WalletView, error) {
	wallet, err := c.GetWallet(ctx, address, &user, true)
	if err != nil {
		return modeldto.WalletView{}, err
	}
	amountBTC := c.converter.SatoshiToBTC(wallet.Balance)
	amountUSD, err := c.converter.ToUSD(ctx, amountBTC)
	if err != nil {
		return modeldto.WalletView{}, err
	}
	return modeldto.WalletView{
		Address:   wallet.Address,
		AmountBTC: amountBTC,
		AmountUSD: amountUSD,
	}, nil
}

// TearDown clears the account storage.
func (c *Custodian) TearDown(ctx context.Context) error {
	return c.storage.TearDownWallets(ctx)
}
