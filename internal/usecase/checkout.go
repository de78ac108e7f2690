package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/mkruglov/marketbot/internal/adapter/addresscrypt"
	domainErrors "github.com/mkruglov/marketbot/internal/domain/errors"
	"github.com/mkruglov/marketbot/internal/domain/model"
	"github.com/mkruglov/marketbot/internal/domain/repository"
	"github.com/mkruglov/marketbot/internal/session"
)

// skipToken maps to empty delivery notes.
const skipToken = "skip"

// StepResult is the outcome of feeding one message into the checkout flow.
// While the flow is running only Stage is set; once Done, Order and PayTo
// carry the finalization outcome.
type StepResult struct {
	Stage session.Stage
	Done  bool
	Order *model.Order
	PayTo string
}

// CheckoutUseCase drives the linear checkout conversation:
// address -> notes -> payment type -> order. Nothing is persisted until the
// payment step succeeds, so cancelling mid-flow costs nothing.
type CheckoutUseCase struct {
	drafts    *session.Store
	carts     repository.CartRepository
	encryptor addresscrypt.Encryptor
	orders    *OrderUseCase
}

// NewCheckoutUseCase constructs CheckoutUseCase.
func NewCheckoutUseCase(drafts *session.Store, carts repository.CartRepository, encryptor addresscrypt.Encryptor, orders *OrderUseCase) *CheckoutUseCase {
	return &CheckoutUseCase{drafts: drafts, carts: carts, encryptor: encryptor, orders: orders}
}

// Start opens a checkout draft for the session. Refused with ErrEmptyCart
// when there is nothing to buy; the caller's menu state is unchanged.
func (u *CheckoutUseCase) Start(ctx context.Context, sessionKey string, accountID int64) (session.Draft, error) {
	lines, err := u.carts.Lines(ctx, accountID)
	if err != nil {
		return session.Draft{}, err
	}
	if len(lines) == 0 {
		return session.Draft{}, domainErrors.ErrEmptyCart
	}
	return u.drafts.Begin(sessionKey, accountID), nil
}

// Submit advances the draft with one message from the user.
func (u *CheckoutUseCase) Submit(ctx context.Context, sessionKey string, accountID int64, text string) (*StepResult, error) {
	draft, ok := u.drafts.Peek(sessionKey)
	if !ok || draft.AccountID != accountID {
		return nil, domainErrors.ErrSessionExpired
	}

	switch draft.Stage {
	case session.StageAwaitingAddress:
		return u.acceptAddress(ctx, sessionKey, text)
	case session.StageAwaitingNotes:
		return u.acceptNotes(sessionKey, text)
	case session.StageAwaitingPayment:
		return u.acceptPayment(ctx, sessionKey, draft, text)
	}
	return nil, domainErrors.ErrSessionExpired
}

// Cancel discards the draft. The persisted cart and account are untouched.
func (u *CheckoutUseCase) Cancel(sessionKey string) {
	u.drafts.Remove(sessionKey)
}

func (u *CheckoutUseCase) acceptAddress(ctx context.Context, sessionKey, text string) (*StepResult, error) {
	address := strings.TrimSpace(text)
	if address == "" {
		// Re-prompt; not an error.
		return &StepResult{Stage: session.StageAwaitingAddress}, nil
	}

	blob, err := u.encryptor.Encrypt(ctx, address)
	if err != nil {
		// The draft must not advance past address capture.
		return nil, err
	}

	updated, ok := u.drafts.Update(sessionKey, func(d *session.Draft) {
		d.AddressPlain = address
		d.AddressEncrypted = blob
		d.Stage = session.StageAwaitingNotes
	})
	if !ok {
		return nil, domainErrors.ErrSessionExpired
	}
	return &StepResult{Stage: updated.Stage}, nil
}

func (u *CheckoutUseCase) acceptNotes(sessionKey, text string) (*StepResult, error) {
	notes := strings.TrimSpace(text)
	if strings.EqualFold(notes, skipToken) {
		notes = ""
	}

	updated, ok := u.drafts.Update(sessionKey, func(d *session.Draft) {
		d.Notes = notes
		d.Stage = session.StageAwaitingPayment
	})
	if !ok {
		return nil, domainErrors.ErrSessionExpired
	}
	return &StepResult{Stage: updated.Stage}, nil
}

func (u *CheckoutUseCase) acceptPayment(ctx context.Context, sessionKey string, draft session.Draft, text string) (*StepResult, error) {
	method, ok := model.ParsePaymentMethod(text)
	if !ok {
		// Self-loop: the caller re-prompts, the draft stays put.
		return nil, domainErrors.ErrInvalidPaymentChoice
	}

	order, payTo, err := u.orders.Finalize(ctx, draft.AccountID, repository.CheckoutDraft{
		AddressEncrypted: draft.AddressEncrypted,
		Notes:            draft.Notes,
		Payment:          method,
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrEmptyCart) {
			// Someone emptied the cart mid-flow; abort the whole checkout.
			u.drafts.Remove(sessionKey)
		}
		return nil, err
	}

	u.drafts.Remove(sessionKey)
	return &StepResult{Done: true, Order: order, PayTo: payTo}, nil
}
