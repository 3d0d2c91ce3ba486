// Package errors provides custom service error types.

package errors

type (
	ServiceFoundNilArgument struct {
		Msg string
	}
	// WrongOwnerError is returned when a wallet is accessed on behalf of a user who does not own it.
	WrongOwnerError struct {
		Msg string
	}
	// NotEnoughBalanceError is returned when the sender cannot cover amount and fee.
	NotEnoughBalanceError struct {
		Msg string
	}
	// WrongEmailError is returned when an email fails format validation.
	WrongEmailError struct {
		Msg string
	}
	// InvalidAmountError is returned for non-positive or overflowing transfer amounts.
	InvalidAmountError struct {
		Msg string
	}
	// ConversionError is returned when the exchange rate cannot be retrieved.
	ConversionError struct {
		Msg string
		Err error
	}
)

func (e *ServiceFoundNilArgument) Error() string {
	return e.Msg
}

func (e *WrongOwnerError) Error() string {
	return e.Msg
}

func (e *NotEnoughBalanceError) Error() string {
	return e.Msg
}

func (e *WrongEmailError) Error() string {
	return e.Msg
}

func (e *InvalidAmountError) Error() string {
	return e.Msg
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
