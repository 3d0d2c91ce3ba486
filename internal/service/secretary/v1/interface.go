// Package secretary provides generation of identifiers and credentials.
package secretary

import "github.com/google/uuid"

// Generator defines a set of methods for types producing fresh opaque tokens.
type Generator interface {
	NewUserID() uuid.UUID
	NewTransactionID() uuid.UUID
	NewWalletAddress() string
	NewAPIKey() string
}
