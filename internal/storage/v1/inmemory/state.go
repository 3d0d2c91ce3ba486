package inmemory

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	storageErrors "github.com/danilovkiri/dk-go-wallet/internal/storage/v1/errors"
	"github.com/google/uuid"
)

// state holds the records. Callers are responsible for locking.
type state struct {
	users        map[uuid.UUID]modelentity.User
	emails       map[string]uuid.UUID
	apiKeys      map[string]uuid.UUID
	wallets      map[string]modelentity.Wallet
	transactions map[uuid.UUID]modelentity.Transaction
}

func newState() *state {
	return &state{
		users:        make(map[uuid.UUID]modelentity.User),
		emails:       make(map[string]uuid.UUID),
		apiKeys:      make(map[string]uuid.UUID),
		wallets:      make(map[string]modelentity.Wallet),
		transactions: make(map[uuid.UUID]modelentity.Transaction),
	}
}

func (st *state) addUser(user modelentity.User) error {
	if _, ok := st.users[user.ID]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "user", ID: user.ID.String()}
	}
	if _, ok := st.emails[user.Email]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "user with email", ID: user.Email}
	}
	if _, ok := st.apiKeys[user.APIKey]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "user with api key", ID: user.APIKey}
	}
	st.users[user.ID] = user
	st.emails[user.Email] = user.ID
	st.apiKeys[user.APIKey] = user.ID
	return nil
}

func (st *state) addWallet(wallet modelentity.Wallet) error {
	if _, ok := st.wallets[wallet.Address]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "wallet", ID: wallet.Address}
	}
	st.wallets[wallet.Address] = wallet
	return nil
}

func (st *state) getWallet(address string) (modelentity.Wallet, error) {
	wallet, ok := st.wallets[address]
	if !ok {
		return modelentity.Wallet{}, &storageErrors.NotFoundError{Entity: "wallet", ID: address}
	}
	return wallet, nil
}

func (st *state) userWallets(userID uuid.UUID) []modelentity.Wallet {
	wallets := make([]modelentity.Wallet, 0)
	for _, wallet := range st.wallets {
		if wallet.UserID == userID {
			wallets = append(wallets, wallet)
		}
	}
	return wallets
}

// updateBalance returns the overwritten balance.
func (st *state) updateBalance(address string, balance int64) (int64, error) {
	wallet, ok := st.wallets[address]
	if !ok {
		return 0, &storageErrors.NotFoundError{Entity: "wallet", ID: address}
	}
	previous := wallet.Balance
	wallet.Balance = balance
	st.wallets[address] = wallet
	return previous, nil
}

func (st *state) addTransaction(transaction modelentity.Transaction) error {
	if _, ok := st.transactions[transaction.ID]; ok {
		return &storageErrors.AlreadyExistsError{Entity: "transaction", ID: transaction.ID.String()}
	}
	st.transactions[transaction.ID] = transaction
	return nil
}

func (st *state) getTransaction(transactionID uuid.UUID) (modelentity.Transaction, error) {
	transaction, ok := st.transactions[transactionID]
	if !ok {
		return modelentity.Transaction{}, &storageErrors.NotFoundError{Entity: "transaction", ID: transactionID.String()}
	}
	return transaction, nil
}

func (st *state) filterTransactions(keep func(modelentity.Transaction) bool) []modelentity.Transaction {
	transactions := make([]modelentity.Transaction, 0)
	for _, transaction := range st.transactions {
		if keep(transaction) {
			transactions = append(transactions, transaction)
		}
	}
	return transactions
}

func (st *state) profit() int64 {
	var profit int64
	for _, transaction := range st.transactions {
		profit += transaction.Fee
	}
	return profit
}

// txView exposes the state to a unit of work and journals its writes.
type txView struct {
	st   *state
	undo []func()
}

func (v *txView) rollback() {
	for i := len(v.undo) - 1; i >= 0; i-- {
		v.undo[i]()
	}
	v.undo = nil
}

func (v *txView) AddNewWallet(_ context.Context, wallet modelentity.Wallet) error {
	if err := v.st.addWallet(wallet); err != nil {
		return err
	}
	v.undo = append(v.undo, func() { delete(v.st.wallets, wallet.Address) })
	return nil
}

func (v *txView) GetWallet(_ context.Context, address string) (modelentity.Wallet, error) {
	return v.st.getWallet(address)
}

func (v *txView) GetUserWallets(_ context.Context, userID uuid.UUID) ([]modelentity.Wallet, error) {
	return v.st.userWallets(userID), nil
}

func (v *txView) UpdateBalance(_ context.Context, address string, balance int64) error {
	previous, err := v.st.updateBalance(address, balance)
	if err != nil {
		return err
	}
	v.undo = append(v.undo, func() { _, _ = v.st.updateBalance(address, previous) })
	return nil
}

func (v *txView) TearDownWallets(_ context.Context) error {
	wallets := v.st.wallets
	v.st.wallets = make(map[string]modelentity.Wallet)
	v.undo = append(v.undo, func() { v.st.wallets = wallets })
	return nil
}

func (v *txView) AddNewTransaction(_ context.Context, transaction modelentity.Transaction) error {
	if err := v.st.addTransaction(transaction); err != nil {
		return err
	}
	v.undo = append(v.undo, func() { delete(v.st.transactions, transaction.ID) })
	return nil
}

func (v *txView) GetTransaction(_ context.Context, transactionID uuid.UUID) (modelentity.Transaction, error) {
	return v.st.getTransaction(transactionID)
}

func (v *txView) GetTransactions(_ context.Context) ([]modelentity.Transaction, error) {
	return v.st.filterTransactions(func(modelentity.Transaction) bool { return true }), nil
}

func (v *txView) FilterTransactions(_ context.Context, address string) ([]modelentity.Transaction, error) {
	return v.st.filterTransactions(func(t modelentity.Transaction) bool { return t.Touches(address) }), nil
}

func (v *txView) GetTransactionCount(_ context.Context) (int64, error) {
	return int64(len(v.st.transactions)), nil
}

func (v *txView) GetProfit(_ context.Context) (int64, error) {
	return v.st.profit(), nil
}

func (v *txView) TearDownTransactions(_ context.Context) error {
	transactions := v.st.transactions
	v.st.transactions = make(map[uuid.UUID]modelentity.Transaction)
	v.undo = append(v.undo, func() { v.st.transactions = transactions })
	return nil
}
