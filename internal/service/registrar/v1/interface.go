// Package registrar defines the user registration contract.
package registrar

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	"github.com/google/uuid"
)

// Registrar registers users and looks them up.
type Registrar interface {
	CreateUser(ctx context.Context, user modelentity.User) (modelentity.User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (modelentity.User, error)
	GetUserByEmail(ctx context.Context, email string) (modelentity.User, error)
	GetUserByAPIKey(ctx context.Context, apiKey string) (modelentity.User, error)
	GetAPIKeyByID(ctx context.Context, userID uuid.UUID) (string, error)
	GetAPIKeyByEmail(ctx context.Context, email string) (string, error)
	TearDown(ctx context.Context) error
}
