package repository

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// PaymentRepository exposes the operator's payment destination addresses.
type PaymentRepository interface {
	Config(ctx context.Context) (*model.PaymentConfig, error)
}

// KeyRepository persists the encryption collaborator's key material.
type KeyRepository interface {
	LoadKeys(ctx context.Context) (*model.KeyPair, error)
	SaveKeys(ctx context.Context, keys *model.KeyPair) error
}
