package model

import "time"

// Account represents a shop customer identified by a secret phrase.
// The phrase is both username and password: whoever presents it owns the
// account, and a new transport identity re-binds to it on login.
type Account struct {
	ID           int64
	SecretPhrase string
	TransportID  *int64
	DisplayName  string
	Country      *string
	Coupon       *string
	CreatedAt    time.Time
}

// Countries available during registration.
var Countries = []string{"USA", "UK", "Nigeria", "India", "Other"}

// ValidCountry reports whether the value belongs to the fixed country set.
func ValidCountry(country string) bool {
	for _, c := range Countries {
		if c == country {
			return true
		}
	}
	return false
}
