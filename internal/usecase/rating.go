package usecase

import (
	"context"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
)

// RatingUseCase records 1-5 satisfaction votes.
type RatingUseCase struct {
	ratings repository.RatingRepository
}

// NewRatingUseCase constructs RatingUseCase.
func NewRatingUseCase(ratings repository.RatingRepository) *RatingUseCase {
	return &RatingUseCase{ratings: ratings}
}

// Submit appends a vote after validating its range.
func (u *RatingUseCase) Submit(ctx context.Context, accountID int64, value int) (*model.Rating, error) {
	if value < 1 || value > 5 {
		return nil, domainErrors.ErrInvalidRating
	}
	return u.ratings.Add(ctx, accountID, value)
}

// Summary aggregates all votes.
func (u *RatingUseCase) Summary(ctx context.Context) (*model.RatingSummary, error) {
	return u.ratings.Summary(ctx)
}
