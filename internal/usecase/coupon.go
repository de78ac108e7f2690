package usecase

import (
	"context"

	"github.com/mkruglov/marketbot/internal/config"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// CouponUseCase manages the single coupon slot per account. Applying always
// writes the configured code; finalization consumes it.
type CouponUseCase struct {
	accounts repository.AccountRepository
	code     string
}

// NewCouponUseCase constructs CouponUseCase.
func NewCouponUseCase(accounts repository.AccountRepository, cfg *config.Config) *CouponUseCase {
	return &CouponUseCase{accounts: accounts, code: cfg.CouponCode}
}

// Apply attaches the discount code to the account and returns the code.
func (u *CouponUseCase) Apply(ctx context.Context, accountID int64) (string, error) {
	if err := u.accounts.SetCoupon(ctx, accountID, u.code); err != nil {
		return "", err
	}
	return u.code, nil
}
