// Package payment wraps the external payment gateway behind a small
// interface so the checkout pipeline and its tests depend on an
// explicit call-with-result contract instead of the SDK.
package payment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrTokenGeneration = errors.New("failed to generate client token")
	ErrTransaction     = errors.New("transaction failed")
)

// SaleRequest is a single charge submission. Amount is the exact cart
// total; Nonce is the opaque payment-method token from the client SDK.
type SaleRequest struct {
	Amount decimal.Decimal
	Nonce  string
}

// SaleResult is the gateway's outcome for a submitted transaction.
type SaleResult struct {
	Success       bool
	TransactionID string
}

// Gateway is the payment gateway contract: client token generation for
// the payment UI and transaction submission at checkout.
type Gateway interface {
	ClientToken(ctx context.Context) (string, error)
	Sale(ctx context.Context, req SaleRequest) (*SaleResult, error)
}
