package payment

import (
	"context"
	"fmt"

	braintree "github.com/braintree-go/braintree-go"

	"storefront/internal/config"
)

type braintreeGateway struct {
	bt *braintree.Braintree
}

// NewBraintreeGateway builds a Gateway backed by the Braintree SDK.
func NewBraintreeGateway(cfg config.BraintreeConfig) Gateway {
	env := braintree.Sandbox
	if cfg.Environment == "production" {
		env = braintree.Production
	}

	return &braintreeGateway{
		bt: braintree.New(env, cfg.MerchantID, cfg.PublicKey, cfg.PrivateKey),
	}
}

func (g *braintreeGateway) ClientToken(ctx context.Context) (string, error) {
	token, err := g.bt.ClientToken().Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return token, nil
}

func (g *braintreeGateway) Sale(ctx context.Context, req SaleRequest) (*SaleResult, error) {
	// Braintree decimals are an unscaled integer plus a scale; prices
	// are stored with two decimal places.
	amount := braintree.NewDecimal(req.Amount.Shift(2).IntPart(), 2)

	tx, err := g.bt.Transaction().Create(ctx, &braintree.TransactionRequest{
		Type:               "sale",
		Amount:             amount,
		PaymentMethodNonce: req.Nonce,
		Options: &braintree.TransactionOptions{
			SubmitForSettlement: true,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransaction, err)
	}

	return &SaleResult{
		Success:       true,
		TransactionID: tx.Id,
	}, nil
}
