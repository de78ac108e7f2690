package dto

// RegisterRequest carries the secret phrase plus the caller's transport
// identity.
type RegisterRequest struct {
	SecretPhrase string `json:"secret_phrase"`
	ChatID       int64  `json:"chat_id"`
	Username     string `json:"username"`
}

// RegisterResponse reports whether an existing account was greeted back.
type RegisterResponse struct {
	Greeted bool `json:"greeted"`
}

// CountryRequest selects the account country.
type CountryRequest struct {
	Country string `json:"country"`
}

// AccountResponse describes the caller's account.
type AccountResponse struct {
	DisplayName string  `json:"display_name"`
	Country     *string `json:"country,omitempty"`
	Coupon      *string `json:"coupon,omitempty"`
}

// ErrorResponse carries user-facing error text.
type ErrorResponse struct {
	Error string `json:"error"`
}
