// Package secretary provides generation of identifiers and credentials.
package secretary

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/google/uuid"
)

// Secretary generates random UUID-based tokens.
type Secretary struct{}

// NewSecretaryService initializes a secretary service.
func NewSecretaryService() *Secretary {
	return &Secretary{}
}

// NewUserID generates a random user identifier.
func (s *Secretary) NewUserID() uuid.UUID {
	return uuid.New()
}

// NewTransactionID generates a random transaction identifier.
func (s *Secretary) NewTransactionID() uuid.UUID {
	return uuid.New()
}

// NewWalletAddress generates a random wallet address.
func (s *Secretary) NewWalletAddress() string {
	return uuid.New().String()
}

// NewAPIKey generates a 64 hex digit credential derived from two random UUIDs.
func (s *Secretary) NewAPIKey() string {
	first, second := uuid.New(), uuid.New()
	sum := sha256.Sum256(append(first[:], second[:]...))
	return hex.EncodeToString(sum[:])
}
