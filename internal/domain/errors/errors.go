package errors

import "errors"

var (
	ErrNotRegistered         = errors.New("account not registered")
	ErrSessionExpired        = errors.New("checkout session expired")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrInvalidPaymentChoice  = errors.New("invalid payment type")
	ErrProductNotFound       = errors.New("product not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrEncryptionUnavailable = errors.New("address encryption unavailable")
	ErrInvalidCountry        = errors.New("unknown country")
	ErrInvalidRating         = errors.New("rating must be between 1 and 5")
	ErrInvalidSecretPhrase   = errors.New("secret phrase must not be empty")
	ErrAlreadyExists         = errors.New("already exists")
	ErrNotFound              = errors.New("not found")
)
