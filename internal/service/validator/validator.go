// Package validator provides format and ownership predicates.
package validator

import (
	"fmt"
	"regexp"

	"github.com/danilovkiri/dk-go-wallet/internal/models/modelentity"
	serviceErrors "github.com/danilovkiri/dk-go-wallet/internal/service/errors"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// IsValidEmail reports whether s looks like local-part@domain.tld.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// OwnershipMatches reports whether user owns wallet.
func OwnershipMatches(wallet modelentity.Wallet, user modelentity.User) bool {
	return wallet.UserID == user.ID
}

// ValidateUser checks the user email.
func ValidateUser(user modelentity.User) error {
	if !IsValidEmail(user.Email) {
		return &serviceErrors.WrongEmailError{Msg: fmt.Sprintf("wrong email: %s", user.Email)}
	}
	return nil
}

// ValidateWalletOwner checks that user owns wallet. A nil user owns nothing.
func ValidateWalletOwner(wallet modelentity.Wallet, user *modelentity.User) error {
	if user == nil || !OwnershipMatches(wallet, *user) {
		return &serviceErrors.WrongOwnerError{Msg: fmt.Sprintf("wallet %s is not owned by the requesting user", wallet.Address)}
	}
	return nil
}
