package validator

import (
	"errors"
	"testing"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@mail-server.co.uk",
		"a_b-c@d.e",
	}
	for _, email := range valid {
		assert.True(t, IsValidEmail(email), email)
	}
	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user name@example.com",
		"user@exa_mple.com",
		"user@@example.com",
	}
	for _, email := range invalid {
		assert.False(t, IsValidEmail(email), email)
	}
}

func TestValidateUser(t *testing.T) {
	assert.NoError(t, ValidateUser(modelentity.User{Email: "user@example.com"}))

	err := ValidateUser(modelentity.User{Email: "broken"})
	var wrongEmailError *serviceErrors.WrongEmailError
	assert.True(t, errors.As(err, &wrongEmailError))
}

func TestValidateWalletOwner(t *testing.T) {
	owner := modelentity.User{ID: uuid.New(), Email: "owner@example.com"}
	stranger := modelentity.User{ID: uuid.New(), Email: "stranger@example.com"}
	wallet := modelentity.Wallet{Address: "address_1", Balance: 10, UserID: owner.ID}

	assert.True(t, OwnershipMatches(wallet, owner))
	assert.False(t, OwnershipMatches(wallet, stranger))
	assert.NoError(t, ValidateWalletOwner(wallet, &owner))

	var wrongOwnerError *serviceErrors.WrongOwnerError
	assert.True(t, errors.As(ValidateWalletOwner(wallet, &stranger), &wrongOwnerError))
	assert.True(t, errors.As(ValidateWalletOwner(wallet, nil), &wrongOwnerError))
}
