// Package storage defines the contracts of the identity, account and ledger stores.
package storage

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/google/uuid"
)

// Identity holds user records.
type Identity interface {
	AddNewUser(ctx context.Context, user modelentity.User) error
	GetUserByID(ctx context.Context, userID uuid.UUID) (modelentity.User, error)
	GetUserByEmail(ctx context.Context, email string) (modelentity.User, error)
	GetUserByAPIKey(ctx context.Context, apiKey string) (modelentity.User, error)
	TearDownUsers(ctx context.Context) error
}

// Accounts holds wallet records.
//
// GetUserWallets returns an empty slice and no error for a user without wallets.
// UpdateBalance overwrites the balance and is atomic with respect to concurrent readers.
type Accounts interface {
	AddNewWallet(ctx context.Context, wallet modelentity.Wallet) error
	GetWallet(ctx context.Context, address string) (modelentity.Wallet, error)
	GetUserWallets(ctx context.Context, userID uuid.UUID) ([]modelentity.Wallet, error)
	UpdateBalance(ctx context.Context, address string, balance int64) error
	TearDownWallets(ctx context.Context) error
}

// Ledger holds the append-only collection of settled transactions.
//
// GetTransactionCount and GetProfit are computed from the stored records on every call.
type Ledger interface {
	AddNewTransaction(ctx context.Context, transaction modelentity.Transaction) error
	GetTransaction(ctx context.Context, transactionID uuid.UUID) (modelentity.Transaction, error)
	GetTransactions(ctx context.Context) ([]modelentity.Transaction, error)
	FilterTransactions(ctx context.Context, address string) ([]modelentity.Transaction, error)
	GetTransactionCount(ctx context.Context) (int64, error)
	GetProfit(ctx context.Context) (int64, error)
	TearDownTransactions(ctx context.Context) error
}

// Settlement is the view of the stores a settlement needs.
type Settlement interface {
	Accounts
	Ledger
}

// Transactor runs fn as a single unit of work: either every write fn makes
// through st is applied, or none is. A non-nil error from fn aborts the unit.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, st Settlement) error) error
}

// Storage is implemented by every backend.
type Storage interface {
	Identity
	Settlement
	Transactor
	Close() error
}
