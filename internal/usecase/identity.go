package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// IdentityUseCase resolves transport identities to accounts and registers
// new accounts by secret phrase.
//
// Known weakness, inherited deliberately: the phrase is the only credential,
// and presenting a known phrase re-binds the caller's transport identity to
// that account. Anyone who learns a phrase owns the account.
type IdentityUseCase struct {
	accounts repository.AccountRepository
}

// NewIdentityUseCase constructs IdentityUseCase.
func NewIdentityUseCase(accounts repository.AccountRepository) *IdentityUseCase {
	return &IdentityUseCase{accounts: accounts}
}

// Resolve finds the account bound to a transport identity. Every call reads
// the store fresh; there is no cache to go stale.
func (u *IdentityUseCase) Resolve(ctx context.Context, transportID int64) (*model.Account, error) {
	acc, err := u.accounts.GetByTransportID(ctx, transportID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotRegistered
		}
		return nil, err
	}
	return acc, nil
}

// RegisterOrGreet creates an account for a new phrase, or re-binds the
// transport identity to the existing account ("welcome back"). Existing
// account content (country, cart, coupon, order history) is never touched.
func (u *IdentityUseCase) RegisterOrGreet(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, bool, error) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return nil, false, domainErrors.ErrInvalidSecretPhrase
	}

	acc, err := u.accounts.GetByPhrase(ctx, phrase)
	if err == nil {
		return u.greet(ctx, acc, transportID, displayName)
	}
	if !errors.Is(err, domainErrors.ErrNotFound) {
		return nil, false, err
	}

	created, err := u.accounts.Create(ctx, phrase, transportID, displayName)
	if err == nil {
		return created, false, nil
	}
	if !errors.Is(err, domainErrors.ErrAlreadyExists) {
		return nil, false, err
	}

	// Lost a race with a concurrent registration of the same phrase;
	// the phrase now exists, so this caller is greeted back.
	acc, err = u.accounts.GetByPhrase(ctx, phrase)
	if err != nil {
		return nil, false, err
	}
	return u.greet(ctx, acc, transportID, displayName)
}

func (u *IdentityUseCase) greet(ctx context.Context, acc *model.Account, transportID int64, displayName string) (*model.Account, bool, error) {
	if err := u.accounts.BindTransport(ctx, acc.ID, transportID, displayName); err != nil {
		return nil, false, err
	}
	acc.TransportID = &transportID
	acc.DisplayName = displayName
	return acc, true, nil
}

// SetCountry stores the account's country, validated against the fixed set.
func (u *IdentityUseCase) SetCountry(ctx context.Context, accountID int64, country string) error {
	country = strings.TrimSpace(country)
	if !model.ValidCountry(country) {
		return domainErrors.ErrInvalidCountry
	}
	return u.accounts.SetCountry(ctx, accountID, country)
}

// GetByID fetches an account by identifier.
func (u *IdentityUseCase) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	acc, err := u.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotRegistered
		}
		return nil, err
	}
	return acc, nil
}
