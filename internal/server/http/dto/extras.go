package dto

import "github.com/mkruglov/marketbot/internal/domain/model"

// CouponResponse reports the coupon code now attached to the account.
type CouponResponse struct {
	Coupon string `json:"coupon"`
}

// RatingRequest submits one 1..5 rating.
type RatingRequest struct {
	Value int `json:"value"`
}

// RatingSummaryResponse aggregates all ratings received so far.
type RatingSummaryResponse struct {
	Count   int64   `json:"count"`
	Average float64 `json:"average"`
}

// NewRatingSummaryResponse maps a rating summary to wire form.
func NewRatingSummaryResponse(s model.RatingSummary) RatingSummaryResponse {
	return RatingSummaryResponse{Count: s.Count, Average: s.Average}
}

// PublicKeyResponse carries the PEM-encoded address encryption key.
type PublicKeyResponse struct {
	PublicKey string `json:"public_key"`
}
