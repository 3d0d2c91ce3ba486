// Package inpsql implements durable storage in a PostgreSQL database.
package inpsql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danilovkiri/dk-go-wallet/internal/config"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk-go-wallet/internal/storage/v1/errors"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/rs/zerolog"
)

var _ storage.Storage = (*Storage)(nil)

// Storage owns a DB handle and implements the identity, account and ledger stores on top of it.
type Storage struct {
	DB  *sql.DB
	log *zerolog.Logger
	qs  queries
}

// InitStorage opens a connection pool for cfg.DatabaseDSN and creates the schema.
func InitStorage(ctx context.Context, cfg *config.StorageConfig, log *zerolog.Logger) (*Storage, error) {
	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	st, err := NewStorage(ctx, db, log)
	if err != nil {
		db.Close()
		return nil, err
	}
	return st, nil
}

// NewStorage wraps an already opened DB handle and creates the schema.
func NewStorage(ctx context.Context, db *sql.DB, log *zerolog.Logger) (*Storage, error) {
	st := Storage{
		DB:  db,
		log: log,
		qs:  queries{q: db},
	}
	if err := st.createTables(ctx); err != nil {
		log.Error().Err(err).Msg("creating tables failed")
		return nil, err
	}
	log.Info().Msg("PSQL DB connection was established")
	return &st, nil
}

// run executes fn in a separate goroutine and gives up as soon as ctx is done.
func (s *Storage) run(ctx context.Context, action string, fn func() error) error {
	chanEr := make(chan error, 1)
	go func() {
		chanEr <- fn()
	}()
	select {
	case <-ctx.Done():
		s.log.Error().Err(ctx.Err()).Msg(fmt.Sprintf("%s failed", action))
		return &storageErrors.ContextTimeoutExceededError{Err: ctx.Err()}
	case methodErr := <-chanEr:
		if methodErr != nil {
			s.log.Error().Err(methodErr).Msg(fmt.Sprintf("%s failed", action))
			return methodErr
		}
		s.log.Info().Msg(fmt.Sprintf("%s done", action))
		return nil
	}
}

func (s *Storage) AddNewUser(ctx context.Context, user modelentity.User) error {
	return s.run(ctx, fmt.Sprintf("adding new user %s", user.ID), func() error {
		return s.qs.AddNewUser(ctx, user)
	})
}

func (s *Storage) GetUserByID(ctx context.Context, userID uuid.UUID) (modelentity.User, error) {
	var user modelentity.User
	err := s.run(ctx, fmt.Sprintf("getting user %s", userID), func() (err error) {
		user, err = s.qs.GetUserByID(ctx, userID)
		return err
	})
	if err != nil {
		return modelentity.User{}, err
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (modelentity.User, error) {
	var user modelentity.User
	err := s.run(ctx, "getting user by email", func() (err error) {
		user, err = s.qs.GetUserByEmail(ctx, email)
		return err
	})
	if err != nil {
		return modelentity.User{}, err
	}
	return user, nil
}

func (s *Storage) GetUserByAPIKey(ctx context.Context, apiKey string) (modelentity.User, error) {
	var user modelentity.User
	err := s.run(ctx, "getting user by api key", func() (err error) {
		user, err = s.qs.GetUserByAPIKey(ctx, apiKey)
		return err
	})
	if err != nil {
		return modelentity.User{}, err
	}
	return user, nil
}

func (s *Storage) TearDownUsers(ctx context.Context) error {
	return s.run(ctx, "users teardown", func() error {
		return s.qs.TearDownUsers(ctx)
	})
}

func (s *Storage) AddNewWallet(ctx context.Context, wallet modelentity.Wallet) error {
	return s.run(ctx, fmt.Sprintf("adding new wallet %s", wallet.Address), func() error {
		return s.qs.AddNewWallet(ctx, wallet)
	})
}

func (s *Storage) GetWallet(ctx context.Context, address string) (modelentity.Wallet, error) {
	var wallet modelentity.Wallet
	err := s.run(ctx, fmt.Sprintf("getting wallet %s", address), func() (err error) {
		wallet, err = s.qs.GetWallet(ctx, address)
		return err
	})
	if err != nil {
		return modelentity.Wallet{}, err
	}
	return wallet, nil
}

func (s *Storage) GetUserWallets(ctx context.Context, userID uuid.UUID) ([]modelentity.Wallet, error) {
	var wallets []modelentity.Wallet
	err := s.run(ctx, fmt.Sprintf("getting wallets of user %s", userID), func() (err error) {
		wallets, err = s.qs.GetUserWallets(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return wallets, nil
}

func (s *Storage) UpdateBalance(ctx context.Context, address string, balance int64) error {
	return s.run(ctx, fmt.Sprintf("updating balance of wallet %s", address), func() error {
		return s.qs.UpdateBalance(ctx, address, balance)
	})
}

func (s *Storage) TearDownWallets(ctx context.Context) error {
	return s.run(ctx, "wallets teardown", func() error {
		return s.qs.TearDownWallets(ctx)
	})
}

func (s *Storage) AddNewTransaction(ctx context.Context, transaction modelentity.Transaction) error {
	return s.run(ctx, fmt.Sprintf("adding new transaction %s", transaction.ID), func() error {
		return s.qs.AddNewTransaction(ctx, transaction)
	})
}

func (s *Storage) GetTransaction(ctx context.Context, transactionID uuid.UUID) (modelentity.Transaction, error) {
	var transaction modelentity.Transaction
	err := s.run(ctx, fmt.Sprintf("getting transaction %s", transactionID), func() (err error) {
		transaction, err = s.qs.GetTransaction(ctx, transactionID)
		return err
	})
	if err != nil {
		return modelentity.Transaction{}, err
	}
	return transaction, nil
}

func (s *Storage) GetTransactions(ctx context.Context) ([]modelentity.Transaction, error) {
	var transactions []modelentity.Transaction
	err := s.run(ctx, "getting transactions", func() (err error) {
		transactions, err = s.qs.GetTransactions(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Storage) FilterTransactions(ctx context.Context, address string) ([]modelentity.Transaction, error) {
	var transactions []modelentity.Transaction
	err := s.run(ctx, fmt.Sprintf("filtering transactions of wallet %s", address), func() (err error) {
		transactions, err = s.qs.FilterTransactions(ctx, address)
		return err
	})
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

func (s *Storage) GetTransactionCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.run(ctx, "counting transactions", func() (err error) {
		count, err = s.qs.GetTransactionCount(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Storage) GetProfit(ctx context.Context) (int64, error) {
	var profit int64
	err := s.run(ctx, "summing fees", func() (err error) {
		profit, err = s.qs.GetProfit(ctx)
		return err
	})
	if err != nil {
		return 0, err
	}
	return profit, nil
}

func (s *Storage) TearDownTransactions(ctx context.Context) error {
	return s.run(ctx, "transactions teardown", func() error {
		return s.qs.TearDownTransactions(ctx)
	})
}

// RunInTx runs fn inside a DB transaction. Wallet reads made through the view
// lock the selected rows until commit or rollback.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context, st storage.Settlement) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("beginning transaction failed")
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	if err = fn(ctx, queries{q: tx, lockRows: true}); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			s.log.Error().Err(rollbackErr).Msg("rolling back transaction failed")
		}
		s.log.Warn().Err(err).Msg("transaction rolled back")
		return err
	}
	if err = tx.Commit(); err != nil {
		s.log.Error().Err(err).Msg("committing transaction failed")
		return &storageErrors.ExecutionPSQLError{Err: err}
	}
	return nil
}

// Close releases the DB handle.
func (s *Storage) Close() error {
	s.log.Info().Msg("PSQL DB connection is closing")
	return s.DB.Close()
}

func (s *Storage) createTables(ctx context.Context) error {
	ddl := []string{
		createUsersTableQuery,
		createWalletsTableQuery,
		createTransactionsTableQuery,
	}
	for _, subquery := range ddl {
		_, err := s.DB.ExecContext(ctx, subquery)
		if err != nil {
			return &storageErrors.ExecutionPSQLError{Err: err}
		}
	}
	return nil
}
