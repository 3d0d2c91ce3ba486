// Package settler provides the settlement engine moving value between wallets.
package settler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modeldto"
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/danilovkiri/dk-go-wallet/internal/service/fee"
	"github.com/danilovkiri/dk-go-wallet/internal/service/secretary/v1"
	"github.com/danilovkiri/dk-go-wallet/internal/service/validator"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	storageErrors "github.com/danilovkiri/dk-go-wallet/internal/storage/v1/errors"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// restoreTimeout bounds compensating writes, which run even if the caller's context is done.
const restoreTimeout = 5 * time.Second

// Settler defines attributes of a struct available to its methods.
type Settler struct {
	// mu serializes settlements so that no two of them read the same balance.
	mu         sync.Mutex
	accounts   storage.Accounts
	ledger     storage.Ledger
	transactor storage.Transactor
	generator  secretary.Generator
	log        *zerolog.Logger
}

// InitService initializes the settlement engine. When accounts and ledger are
// backed by the same storage implementing storage.Transactor, every settlement
// runs as a single storage transaction; otherwise balance writes are
// compensated on failure.
func InitService(accounts storage.Accounts, ledger storage.Ledger, gen secretary.Generator, log *zerolog.Logger) (*Settler, error) {
	if accounts == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil account storage was passed to service initializer"}
	}
	if ledger == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil ledger storage was passed to service initializer"}
	}
	if gen == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil generator was passed to service initializer"}
	}
	if log == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil logger was passed to service initializer"}
	}
	settler := &Settler{
		accounts:  accounts,
		ledger:    ledger,
		generator: gen,
		log:       log,
	}
	accountsTx, ok := accounts.(storage.Transactor)
	if ledgerTx, ledgerOk := ledger.(storage.Transactor); ok && ledgerOk && accountsTx == ledgerTx {
		settler.transactor = accountsTx
	}
	return settler, nil
}

// CreateTransaction settles a transfer of transaction.Amount from
// transaction.FromAddress to transaction.ToAddress. The fee is computed here and
// charged to the sender on top of the amount; the recipient receives the amount.
// With validateSender set, sender must own the source wallet.
func (s *Settler) CreateTransaction(ctx context.Context, transaction modelentity.Transaction, sender *modelentity.User, validateSender bool) (modelentity.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var settled modelentity.Transaction
	var err error
	if s.transactor != nil {
		err = s.transactor.RunInTx(ctx, func(ctx context.Context, st storage.Settlement) error {
			var txErr error
			settled, txErr = s.settle(ctx, st, st, transaction, sender, validateSender, nil)
			return txErr
		})
	} else {
		j := &journal{}
		settled, err = s.settle(ctx, s.accounts, s.ledger, transaction, sender, validateSender, j)
		if err != nil {
			s.compensate(j)
		}
	}
	if err != nil {
		s.log.Error().Err(err).Str("from", transaction.FromAddress).Str("to", transaction.ToAddress).Msg("settlement failed")
		return modelentity.Transaction{}, err
	}
	s.log.Info().
		Str("transaction", settled.ID.String()).
		Int64("amount", settled.Amount).
		Int64("fee", settled.Fee).
		Msg("settlement done")
	return settled, nil
}

func (s *Settler) settle(ctx context.Context, accounts storage.Accounts, ledger storage.Ledger, transaction modelentity.Transaction, sender *modelentity.User, validateSender bool, j *journal) (modelentity.Transaction, error) {
	fromWallet, err := accounts.GetWallet(ctx, transaction.FromAddress)
	if err != nil {
		return modelentity.Transaction{}, err
	}
	if validateSender {
		if err = validator.ValidateWalletOwner(fromWallet, sender); err != nil {
			return modelentity.Transaction{}, err
		}
	}
	toWallet, err := accounts.GetWallet(ctx, transaction.ToAddress)
	if err != nil {
		return modelentity.Transaction{}, err
	}

	if transaction.Amount <= 0 {
		return modelentity.Transaction{}, &serviceErrors.InvalidAmountError{Msg: fmt.Sprintf("amount must be positive, got %d", transaction.Amount)}
	}
	transaction.Fee = fee.Calculate(transaction.Amount)
	if transaction.Amount > math.MaxInt64-transaction.Fee {
		return modelentity.Transaction{}, &serviceErrors.InvalidAmountError{Msg: fmt.Sprintf("amount %d is too large", transaction.Amount)}
	}
	total := transaction.Amount + transaction.Fee
	if fromWallet.Balance < total {
		return modelentity.Transaction{}, &serviceErrors.NotEnoughBalanceError{
			Msg: fmt.Sprintf("not enough balance in wallet %s, present - %v, required - %v", fromWallet.Address, fromWallet.Balance, total),
		}
	}

	senderBalance := fromWallet.Balance - total
	recipientBalance := toWallet.Balance + transaction.Amount
	if toWallet.Address == fromWallet.Address {
		// a self-transfer only burns the fee
		recipientBalance = senderBalance + transaction.Amount
	} else if toWallet.Balance > math.MaxInt64-transaction.Amount {
		return modelentity.Transaction{}, &serviceErrors.InvalidAmountError{Msg: fmt.Sprintf("wallet %s cannot hold %d more", toWallet.Address, transaction.Amount)}
	}

	if transaction.ID == uuid.Nil {
		transaction.ID = s.generator.NewTransactionID()
	} else if err = ensureAbsent(ctx, ledger, transaction.ID); err != nil {
		return modelentity.Transaction{}, err
	}

	if err = accounts.UpdateBalance(ctx, fromWallet.Address, senderBalance); err != nil {
		return modelentity.Transaction{}, err
	}
	j.record(fromWallet.Address, fromWallet.Balance)
	if err = accounts.UpdateBalance(ctx, toWallet.Address, recipientBalance); err != nil {
		return modelentity.Transaction{}, err
	}
	j.record(toWallet.Address, toWallet.Balance)
	if err = ledger.AddNewTransaction(ctx, transaction); err != nil {
		return modelentity.Transaction{}, err
	}
	return transaction, nil
}

// ensureAbsent fails with AlreadyExistsError if the ledger holds transactionID.
func ensureAbsent(ctx context.Context, ledger storage.Ledger, transactionID uuid.UUID) error {
	_, err := ledger.GetTransaction(ctx, transactionID)
	if err == nil {
		return &storageErrors.AlreadyExistsError{Entity: "transaction", ID: transactionID.String()}
	}
	var notFoundError *storageErrors.NotFoundError
	if errors.As(err, &notFoundError) {
		return nil
	}
	return err
}

// compensate restores the balances recorded in j, latest first.
func (s *Settler) compensate(j *journal) {
	ctx, cancel := context.WithTimeout(context.Background(), restoreTimeout)
	defer cancel()
	for i := len(j.entries) - 1; i >= 0; i-- {
		entry := j.entries[i]
		if err := s.accounts.UpdateBalance(ctx, entry.address, entry.balance); err != nil {
			s.log.Error().Err(err).Str("address", entry.address).Int64("balance", entry.balance).Msg("restoring balance failed")
		}
	}
}

// journal keeps the balances overwritten by a settlement. A nil journal records nothing.
type journal struct {
	entries []journalEntry
}

type journalEntry struct {
	address string
	balance int64
}

func (j *journal) record(address string, balance int64) {
	if j == nil {
		return
	}
	j.entries = append(j.entries, journalEntry{address: address, balance: balance})
}

// GetTransaction retrieves a settled transaction.
func (s *Settler) GetTransaction(ctx context.Context, transactionID uuid.UUID) (modelentity.Transaction, error) {
	return s.ledger.GetTransaction(ctx, transactionID)
}

// GetTransactions retrieves every settled transaction.
func (s *Settler) GetTransactions(ctx context.Context) ([]modelentity.Transaction, error) {
	return s.ledger.GetTransactions(ctx)
}

// FilterTransactions retrieves transactions sent from or to wallet.
func (s *Settler) FilterTransactions(ctx context.Context, wallet modelentity.Wallet) ([]modelentity.Transaction, error) {
	return s.ledger.FilterTransactions(ctx, wallet.Address)
}

// GetUserTransactions retrieves transactions touching any wallet of user, each once.
func (s *Settler) GetUserTransactions(ctx context.Context, user modelentity.User) ([]modelentity.Transaction, error) {
	wallets, err := s.accounts.GetUserWallets(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	seen := make(map[uuid.UUID]struct{})
	transactions := make([]modelentity.Transaction, 0)
	for _, wallet := range wallets {
		walletTransactions, err := s.ledger.FilterTransactions(ctx, wallet.Address)
		if err != nil {
			return nil, err
		}
		for _, transaction := range walletTransactions {
			if _, ok := seen[transaction.ID]; ok {
				continue
			}
			seen[transaction.ID] = struct{}{}
			transactions = append(transactions, transaction)
		}
	}
	return transactions, nil
}

// GetStatistics retrieves the number of settled transactions and the sum of their fees.
func (s *Settler) GetStatistics(ctx context.Context) (modeldto.Statistics, error) {
	count, err := s.ledger.GetTransactionCount(ctx)
	if err != nil {
		return modeldto.Statistics{}, err
	}
	profit, err := s.ledger.GetProfit(ctx)
	if err != nil {
		return modeldto.Statistics{}, err
	}
	return modeldto.Statistics{
		TransactionCount: count,
		Profit:           profit,
	}, nil
}
