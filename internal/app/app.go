// Package app wires storage and services together and owns their lifecycle.
package app

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/api/rest/client"
	"github.com/danilovkiri/dk-go-wallet/internal/config"
	"github.com/danilovkiri/dk-go-wallet/internal/service/custodian/v1"
	custodianService "github.com/danilovkiri/dk-go-wallet/internal/service/custodian/v1/custodian"
	"github.com/danilovkiri/dk-go-wallet/internal/service/registrar/v1"
	registrarService "github.com/danilovkiri/dk-go-wallet/internal/service/registrar/v1/registrar"
	secretaryService "github.com/danilovkiri/dk-go-wallet/internal/service/secretary/v1/secretary"
	"github.com/danilovkiri/dk-go-wallet/internal/service/settler/v1"
	settlerService "github.com/danilovkiri/dk-go-wallet/internal/service/settler/v1/settler"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1/inmemory"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1/inpsql"
	"github.com/rs/zerolog"
)

// App holds the services callers use and the storage they share.
type App struct {
	Storage      storage.Storage
	Users        registrar.Registrar
	Wallets      custodian.Custodian
	Transactions settler.Settler
	log          *zerolog.Logger
}

// InitApp builds the storage selected by cfg and the services on top of it.
// An empty DSN selects volatile in-memory storage.
func InitApp(ctx context.Context, cfg *config.Config, log *zerolog.Logger) (*App, error) {
	var st storage.Storage
	if cfg.StorageConfig.DatabaseDSN == "" {
		st = inmemory.InitStorage(log)
	} else {
		psql, err := inpsql.InitStorage(ctx, cfg.StorageConfig, log)
		if err != nil {
			return nil, err
		}
		st = psql
	}
	app, err := NewApp(st, client.InitClient(cfg.ConverterConfig, log), cfg.WalletConfig, log)
	if err != nil {
		st.Close()
		return nil, err
	}
	return app, nil
}

// NewApp builds the services on top of an already initialized storage.
func NewApp(st storage.Storage, conv custodian.Converter, walletCfg *config.WalletConfig, log *zerolog.Logger) (*App, error) {
	gen := secretaryService.NewSecretaryService()
	users, err := registrarService.InitService(st, gen, log)
	if err != nil {
		return nil, err
	}
	wallets, err := custodianService.InitService(st, gen, conv, walletCfg, log)
	if err != nil {
		return nil, err
	}
	transactions, err := settlerService.InitService(st, st, gen, log)
	if err != nil {
		return nil, err
	}
	return &App{
		Storage:      st,
		Users:        users,
		Wallets:      wallets,
		Transactions: transactions,
		log:          log,
	}, nil
}

// TearDown clears every store, dependants first.
func (a *App) TearDown(ctx context.Context) error {
	if err := a.Storage.TearDownTransactions(ctx); err != nil {
		return err
	}
	if err := a.Wallets.TearDown(ctx); err != nil {
		return err
	}
	return a.Users.TearDown(ctx)
}

// Close releases the storage.
func (a *App) Close() error {
	a.log.Info().Msg("application shutdown attempted")
	return a.Storage.Close()
}
