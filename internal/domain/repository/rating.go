package repository

import (
	"context"

	"github.com/mkruglov/marketbot/internal/domain/model"
)

// RatingRepository appends and aggregates ratings.
type RatingRepository interface {
	Add(ctx context.Context, accountID int64, value int) (*model.Rating, error)
	Summary(ctx context.Context) (*model.RatingSummary, error)
}
