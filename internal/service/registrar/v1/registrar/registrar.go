// Package registrar provides user registration on top of the identity storage.
package registrar

import (
	"context"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/danilovkiri/dk-go-wallet/internal/service/secretary/v1"
	"github.com/danilovkiri/dk-go-wallet/internal/service/validator"
	"github.com/danilovkiri/dk-go-wallet/internal/storage/v1"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Registrar defines attributes of a struct available to its methods.
type Registrar struct {
	storage   storage.Identity
	generator secretary.Generator
	log       *zerolog.Logger
}

// InitService initializes a user registration service.
func InitService(st storage.Identity, gen secretary.Generator, log *zerolog.Logger) (*Registrar, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil identity storage was passed to service initializer"}
	}
	if gen == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil generator was passed to service initializer"}
	}
	if log == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil logger was passed to service initializer"}
	}
	return &Registrar{storage: st, generator: gen, log: log}, nil
}

// CreateUser fills in a missing identifier and API key, validates the email and persists the user.
func (r *Registrar) CreateUser(ctx context.Context, user modelentity.User) (modelentity.User, error) {
	if user.ID == uuid.Nil {
		user.ID = r.generator.NewUserID()
	}
	if user.APIKey == "" {
		user.APIKey = r.generator.NewAPIKey()
	}
	if err := validator.ValidateUser(user); err != nil {
		r.log.Error().Err(err).Msg("user registration failed")
		return modelentity.User{}, err
	}
	if err := r.storage.AddNewUser(ctx, user); err != nil {
		return modelentity.User{}, err
	}
	r.log.Info().Str("user", user.ID.String()).Msg("user registration done")
	return user, nil
}

func (r *Registrar) GetUserByID(ctx context.Context, userID uuid.UUID) (modelentity.User, error) {
	return r.storage.GetUserByID(ctx, userID)
}

func (r *Registrar) GetUserByEmail(ctx context.Context, email string) (modelentity.User, error) {
	return r.storage.GetUserByEmail(ctx, email)
}

func (r *Registrar) GetUserByAPIKey(ctx context.Context, apiKey string) (modelentity.User, error) {
	return r.storage.GetUserByAPIKey(ctx, apiKey)
}

func (r *Registrar) GetAPIKeyByID(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := r.storage.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.APIKey, nil
}

func (r *Registrar) GetAPIKeyByEmail(ctx context.Context, email string) (string, error) {
	user, err := r.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.APIKey, nil
}

// TearDown clears the identity storage.
func (r *Registrar) TearDown(ctx context.Context) error {
	return r.storage.TearDownUsers(ctx)
}
