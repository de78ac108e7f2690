package auth

import "time"

// Strategy issues and verifies session tokens carrying an account id.
// There is no second credential behind the token: the secret phrase alone
// authenticates, the token only keeps the transport session sticky.
type Strategy interface {
	IssueToken(accountID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

type Options struct {
	TTL time.Duration
}
