package test

import (
	"context"
	"strconv"

	pkgAuth "github.com/mkruglov/marketbot/internal/pkg/auth"
)

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(accountID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(accountID)
	}
	return "token-" + strconv.FormatInt(accountID, 10), nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to the override or returns the predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// EncryptorStub simulates the address encryption collaborator.
type EncryptorStub struct {
	EncryptFn   func(context.Context, string) ([]byte, error)
	PublicKeyFn func(context.Context) (string, error)
}

// Encrypt returns a recognizable blob unless overridden.
func (s EncryptorStub) Encrypt(ctx context.Context, plaintext string) ([]byte, error) {
	if s.EncryptFn != nil {
		return s.EncryptFn(ctx, plaintext)
	}
	return []byte("enc:" + plaintext), nil
}

// PublicKey returns a placeholder PEM unless overridden.
func (s EncryptorStub) PublicKey(ctx context.Context) (string, error) {
	if s.PublicKeyFn != nil {
		return s.PublicKeyFn(ctx)
	}
	return "-----BEGIN NACL PUBLIC KEY-----\nstub\n-----END NACL PUBLIC KEY-----\n", nil
}

var _ pkgAuth.Strategy = StrategyStub{}
