// Package modelentity provides the ledger entities shared by storage and services.
package modelentity

import "github.com/google/uuid"

type (
	// User is a registered wallet owner. A zero ID or an empty APIKey is filled in on registration.
	User struct {
		ID     uuid.UUID `json:"id"`
		Email  string    `json:"email"`
		APIKey string    `json:"api_key"`
	}
	// Wallet holds a balance in satoshi owned by a single user. An empty Address is filled in on creation.
	Wallet struct {
		Address string    `json:"address"`
		Balance int64     `json:"amount"`
		UserID  uuid.UUID `json:"user_id"`
	}
	// Transaction is an immutable ledger entry. Fee is always computed by the settlement engine.
	Transaction struct {
		ID          uuid.UUID `json:"id"`
		FromAddress string    `json:"from_address"`
		ToAddress   string    `json:"to_address"`
		Amount      int64     `json:"amount"`
		Fee         int64     `json:"fee"`
	}
)

// Touches reports whether the transaction has address as its sender or recipient.
func (t Transaction) Touches(address string) bool {
	return t.FromAddress == address || t.ToAddress == address
}
