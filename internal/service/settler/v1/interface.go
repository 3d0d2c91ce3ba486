// Package settler defines the settlement engine contract.
package settler

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modeldto"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/google/uuid"
)

// Settler validates, prices and settles transfers between wallets.
type Settler interface {
	CreateTransaction(ctx context.Context, transaction modelentity.Transaction, sender *modelentity.User, validateSender bool) (modelentity.Transaction, error)
	GetTransaction(ctx context.Context, transactionID uuid.UUID) (modelentity.Transaction, error)
	GetTransactions(ctx context.Context) ([]modelentity.Transaction, error)
	FilterTransactions(ctx context.Context, wallet modelentity.Wallet) ([]modelentity.Transaction, error)
	GetUserTransactions(ctx context.Context, user modelentity.User) ([]modelentity.Transaction, error)
	GetStatistics(ctx context.Context) (modeldto.Statistics, error)
}
