package repository

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, phrase string, transportID int64, displayName string) (*model.Account, error)
	GetByPhrase(ctx context.Context, phrase string) (*model.Account, error)
	GetByTransportID(ctx context.Context, transportID int64) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	// BindTransport re-points a transport identity at the account, unbinding
	// it from any other account so an identity maps to at most one phrase.
	BindTransport(ctx context.Context, accountID, transportID int64, displayName string) error
	SetCountry(ctx context.Context, accountID int64, country string) error
	SetCoupon(ctx context.Context, accountID int64, code string) error
}
