package app

import (
	"context"
	"errors"
	"testing"

	"github.com/danilovkiri/dk-go-wallet/internal/config"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1/inmemory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatRate struct{}

func (flatRate) SatoshiToBTC(satoshi int64) decimal.Decimal {
	return decimal.New(satoshi, -8)
}

func (flatRate) ToUSD(_ context.Context, btc decimal.Decimal) (decimal.Decimal, error) {
	return btc.Mul(decimal.NewFromInt(10000)), nil
}

func newTestApp(t *testing.T) *App {
	log := zerolog.Nop()
	application, err := NewApp(inmemory.InitStorage(&log), flatRate{}, &config.WalletConfig{DefaultBalance: 1000}, &log)
	require.NoError(t, err)
	t.Cleanup(func() { application.Close() })
	return application
}

func TestInitAppSelectsInMemoryStorage(t *testing.T) {
	log := zerolog.Nop()
	cfg := &config.Config{
		StorageConfig:   &config.StorageConfig{},
		WalletConfig:    &config.WalletConfig{DefaultBalance: 1000},
		ConverterConfig: &config.ConverterConfig{TickerAddress: "http://localhost"},
	}
	application, err := InitApp(context.Background(), cfg, &log)
	require.NoError(t, err)
	defer application.Close()
	_, ok := application.Storage.(*inmemory.Storage)
	assert.True(t, ok)
}

func TestTransferFlow(t *testing.T) {
	ctx := context.Background()
	application := newTestApp(t)

	alice, err := application.Users.CreateUser(ctx, modelentity.User{Email: "alice@example.com"})
	require.NoError(t, err)
	bob, err := application.Users.CreateUser(ctx, modelentity.User{Email: "bob@example.com"})
	require.NoError(t, err)
	aliceWallet, err := application.Wallets.CreateWallet(ctx, alice)
	require.NoError(t, err)
	bobWallet, err := application.Wallets.CreateWallet(ctx, bob)
	require.NoError(t, err)

	sender, err := application.Users.GetUserByAPIKey(ctx, alice.APIKey)
	require.NoError(t, err)
	settled, err := application.Transactions.CreateTransaction(ctx, modelentity.Transaction{
		FromAddress: aliceWallet.Address,
		ToAddress:   bobWallet.Address,
		Amount:      500,
	}, &sender, true)
	require.NoError(t, err)
	assert.Equal(t, int64(7), settled.Fee)

	_, err = application.Transactions.CreateTransaction(ctx, modelentity.Transaction{
		FromAddress: bobWallet.Address,
		ToAddress:   aliceWallet.Address,
		Amount:      10,
	}, &sender, true)
	var wrongOwner *serviceErrors.WrongOwnerError
	assert.True(t, errors.As(err, &wrongOwner))

	view, err := application.Wallets.GetWalletView(ctx, aliceWallet.Address, alice)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("0.00000493").Equal(view.AmountBTC))
	assert.True(t, decimal.RequireFromString("0.0493").Equal(view.AmountUSD))

	bobTransactions, err := application.Transactions.GetUserTransactions(ctx, bob)
	require.NoError(t, err)
	assert.Equal(t, []modelentity.Transaction{settled}, bobTransactions)

	statistics, err := application.Transactions.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), statistics.TransactionCount)
	assert.Equal(t, int64(7), statistics.Profit)

	require.NoError(t, application.TearDown(ctx))
	statistics, err = application.Transactions.GetStatistics(ctx)
	require.NoError(t, err)
	assert.Zero(t, statistics.TransactionCount)
	_, err = application.Users.GetUserByID(ctx, alice.ID)
	assert.Error(t, err)
	wallets, err := application.Wallets.GetUserWallets(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, wallets)
}
