// Package modelstorage provides types for querying relational DB.

package modelstorage

import (
	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/google/uuid"
)

type UserStorageEntry struct {
	ID     string `db:"id"`
	Email  string `db:"email"`
	APIKey string `db:"api_key"`
}

type WalletStorageEntry struct {
	Address string `db:"address"`
	Amount  int64  `db:"amount"`
	UserID  string `db:"user_id"`
}

type TransactionStorageEntry struct {
	ID          string `db:"id"`
	FromAddress string `db:"from_address"`
	ToAddress   string `db:"to_address"`
	Amount      int64  `db:"amount"`
	Fee         int64  `db:"fee"`
}

func (e UserStorageEntry) ToEntity() (modelentity.User, error) {
	userID, err := uuid.Parse(e.ID)
	if err != nil {
		return modelentity.User{}, err
	}
	return modelentity.User{ID: userID, Email: e.Email, APIKey: e.APIKey}, nil
}

func (e WalletStorageEntry) ToEntity() (modelentity.Wallet, error) {
	userID, err := uuid.Parse(e.UserID)
	if err != nil {
		return modelentity.Wallet{}, err
	}
	return modelentity.Wallet{Address: e.Address, Balance: e.Amount, UserID: userID}, nil
}

func (e TransactionStorageEntry) ToEntity() (modelentity.Transaction, error) {
	transactionID, err := uuid.Parse(e.ID)
	if err != nil {
		return modelentity.Transaction{}, err
	}
	return modelentity.Transaction{
		ID:          transactionID,
		FromAddress: e.FromAddress,
		ToAddress:   e.ToAddress,
		Amount:      e.Amount,
		Fee:         e.Fee,
	}, nil
}
