package model

import "time"

// Rating is a 1-5 satisfaction vote. Append-only.
type Rating struct {
	ID        int64
	AccountID int64
	Value     int
	CreatedAt time.Time
}

// RatingSummary aggregates submitted ratings.
type RatingSummary struct {
	Count   int64
	Average float64
}
