package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/domain"
	"storefront/internal/payment"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCartEmpty     = errors.New("cart is empty")
	ErrPaymentFailed = errors.New("payment processing failed")

	// ErrOrderNotRecorded means the gateway charge succeeded but the
	// order insert failed. The buyer has been charged with no order on
	// record; it must never be reported as success.
	ErrOrderNotRecorded = errors.New("payment succeeded but order was not recorded")
)

// CheckoutService orchestrates the checkout pipeline: gateway token
// issuance and payment submission followed by order persistence.
//
// Resubmitting the same nonce and cart after ErrOrderNotRecorded may
// charge the buyer twice; there is no idempotency key on submission.
type CheckoutService interface {
	ClientToken(ctx context.Context) (string, error)
	SubmitPayment(ctx context.Context, buyerID uuid.UUID, nonce string, items []domain.CartItem) (*domain.Order, error)
}

type checkoutService struct {
	gateway   payment.Gateway
	orderRepo repository.OrderRepository
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(gateway payment.Gateway, orderRepo repository.OrderRepository) CheckoutService {
	return &checkoutService{
		gateway:   gateway,
		orderRepo: orderRepo,
	}
}

// ClientToken obtains a gateway token for the client's payment UI.
// Gateway errors are surfaced, not retried.
func (s *checkoutService) ClientToken(ctx context.Context) (string, error) {
	token, err := s.gateway.ClientToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// SubmitPayment charges the cart total and records the order. The
// charge is attempted only after the non-empty-cart check passes, and
// the order is persisted only after the charge succeeds.
func (s *checkoutService) SubmitPayment(ctx context.Context, buyerID uuid.UUID, nonce string, items []domain.CartItem) (*domain.Order, error) {
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price)
	}

	result, err := s.gateway.Sale(ctx, payment.SaleRequest{
		Amount: total,
		Nonce:  nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}
	if !result.Success {
		return nil, ErrPaymentFailed
	}

	products := make([]domain.OrderProduct, len(items))
	for i, item := range items {
		products[i] = domain.OrderProduct{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price,
			Position:  i,
		}
	}

	order := &domain.Order{
		ID:       uuid.New(),
		Products: products,
		Payment: domain.Payment{
			Success:       true,
			TransactionID: result.TransactionID,
		},
		BuyerID:   buyerID,
		Status:    domain.StatusNotProcess,
		Total:     total,
		CreatedAt: time.Now(),
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderNotRecorded, err)
	}

	return order, nil
}
