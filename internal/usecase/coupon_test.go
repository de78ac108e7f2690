package usecase_test

import (
	"context"
	"fmt"
	"testing"

	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	testhelpers "github.com/mkruglov/marketbot/internal/test"
	"github.com/mkruglov/marketbot/internal/usecase"
)

func TestCouponApply(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	uc := usecase.NewCouponUseCase(repo, orderConfig())
	ctx := context.Background()

	acc, err := repo.Create(ctx, "phrase", 1, "alice")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	code, err := uc.Apply(ctx, acc.ID)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if code != "SAVE10" {
		t.Fatalf("code = %q, want SAVE10", code)
	}
	if got := repo.ByID[acc.ID].Coupon; got == nil || *got != "SAVE10" {
		t.Fatalf("coupon not stored, got %v", got)
	}

	// Applying again is harmless; the slot holds a single code.
	if _, err := uc.Apply(ctx, acc.ID); err != nil {
		t.Fatalf("second apply: %v", err)
	}
}

func TestCouponApplyRepositoryError(t *testing.T) {
	repo := testhelpers.NewAccountRepositoryStub()
	repo.Err = fmt.Errorf("db down")
	uc := usecase.NewCouponUseCase(repo, orderConfig())

	if _, err := uc.Apply(context.Background(), 1); err == nil {
		t.Fatal("expected repository error")
	}
}

func TestRatingSubmitValidRange(t *testing.T) {
	repo := &testhelpers.RatingRepositoryStub{}
	uc := usecase.NewRatingUseCase(repo)
	ctx := context.Background()

	for _, v := range []int{1, 3, 5} {
		if _, err := uc.Submit(ctx, 1, v); err != nil {
			t.Fatalf("value %d: %v", v, err)
		}
	}
	for _, v := range []int{0, 6, -1, 100} {
		if _, err := uc.Submit(ctx, 1, v); err != domainErrors.ErrInvalidRating {
			t.Fatalf("value %d: expected ErrInvalidRating, got %v", v, err)
		}
	}

	summary, err := uc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary.Count != 3 {
		t.Fatalf("count = %d, want 3", summary.Count)
	}
	if summary.Average != 3.0 {
		t.Fatalf("average = %f, want 3.0", summary.Average)
	}
}
