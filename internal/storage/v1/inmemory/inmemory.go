// Package inmemory implements volatile map-backed storage.
package inmemory

import (
	"context"
	"sync"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk-go-wallet/internal/storage/v1/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var _ storage.Storage = (*Storage)(nil)

// Storage keeps users, wallets and transactions in maps guarded by a single RW lock.
type Storage struct {
	mu  sync.RWMutex
	st  *state
	log *zerolog.Logger
}

// InitStorage initializes an empty in-memory storage.
func InitStorage(log *zerolog.Logger) *Storage {
	log.Info().Msg("in-memory storage initialized")
	return &Storage{
		st:  newState(),
		log: log,
	}
}

func (s *Storage) AddNewUser(_ context.Context, user modelentity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.addUser(user); err != nil {
		s.log.Error().Err(err).Msg("adding new user failed")
		return err
	}
	s.log.Info().Str("user", user.ID.String()).Msg("adding new user done")
	return nil
}

func (s *Storage) GetUserByID(_ context.Context, userID uuid.UUID) (modelentity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.st.users[userID]
	if !ok {
		return modelentity.User{}, &storageErrors.NotFoundError{Entity: "user", ID: userID.String()}
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (modelentity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.st.emails[email]
	if !ok {
		return modelentity.User{}, &storageErrors.NotFoundError{Entity: "user with email", ID: email}
	}
	return s.st.users[userID], nil
}

func (s *Storage) GetUserByAPIKey(_ context.Context, apiKey string) (modelentity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.st.apiKeys[apiKey]
	if !ok {
		return modelentity.User{}, &storageErrors.NotFoundError{Entity: "user with api key", ID: apiKey}
	}
	return s.st.users[userID], nil
}

func (s *Storage) TearDownUsers(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.users = make(map[uuid.UUID]modelentity.User)
	s.st.emails = make(map[string]uuid.UUID)
	s.st.apiKeys = make(map[string]uuid.UUID)
	s.log.Info().Msg("users teardown done")
	return nil
}

func (s *Storage) AddNewWallet(_ context.Context, wallet modelentity.Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.st.addWallet(wallet); err != nil {
		s.log.Error().Err(err).Msg("adding new wallet failed")
		return err
	}
	s.log.Info().Str("address", wallet.Address).Msg("adding new wallet done")
	return nil
}

func (s *Storage) GetWallet(_ context.Context, address string) (modelentity.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getWallet(address)
}

func (s *Storage) GetUserWallets(_ context.Context, userID uuid.UUID) ([]modelentity.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.userWallets(userID), nil
}

func (s *Storage) UpdateBalance(_ context.Context, address string, balance int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.st.updateBalance(address, balance)
	return err
}

func (s *Storage) TearDownWallets(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.wallets = make(map[string]modelentity.Wallet)
	s.log.Info().Msg("wallets teardown done")
	return nil
}

func (s *Storage) AddNewTransaction(_ context.Context, transaction modelentity.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.addTransaction(transaction)
}

func (s *Storage) GetTransaction(_ context.Context, transactionID uuid.UUID) (modelentity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.getTransaction(transactionID)
}

func (s *Storage) GetTransactions(_ context.Context) ([]modelentity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.filterTransactions(func(modelentity.Transaction) bool { return true }), nil
}

func (s *Storage) FilterTransactions(_ context.Context, address string) ([]modelentity.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.filterTransactions(func(t modelentity.Transaction) bool { return t.Touches(address) }), nil
}

func (s *Storage) GetTransactionCount(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.st.transactions)), nil
}

func (s *Storage) GetProfit(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.profit(), nil
}

func (s *Storage) TearDownTransactions(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.transactions = make(map[uuid.UUID]modelentity.Transaction)
	s.log.Info().Msg("transactions teardown done")
	return nil
}

// RunInTx holds the write lock while fn runs, so readers observe either the
// state before the unit or after it. Writes made through the view are undone
// in reverse order when fn fails.
func (s *Storage) RunInTx(ctx context.Context, fn func(ctx context.Context, st storage.Settlement) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := &txView{st: s.st}
	if err := fn(ctx, view); err != nil {
		view.rollback()
		s.log.Warn().Err(err).Msg("unit of work rolled back")
		return err
	}
	return nil
}

// Close is a no-op kept for parity with durable storage.
func (s *Storage) Close() error {
	return nil
}
