// Package payments wraps the Stripe API used to start card payments
package payments

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// StripeGateway creates payment intents through the Stripe API
type StripeGateway struct {
	api    *client.API
	logger *zap.Logger
}

// NewStripeGateway creates a gateway authenticated with the given secret key
func NewStripeGateway(secretKey string, logger *zap.Logger) *StripeGateway {
	return newStripeGateway(secretKey, nil, logger)
}

// newStripeGateway allows tests to point the client at a fake backend
func newStripeGateway(secretKey string, backends *stripe.Backends, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{
		api:    client.New(secretKey, backends),
		logger: logger,
	}
}

// CreatePaymentIntent starts a card payment of amount (in the currency's smallest unit)
// and returns the client secret the browser needs to confirm it
func (g *StripeGateway) CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	intent, err := g.api.PaymentIntents.New(params)
	if err != nil {
		g.logger.Error("failed to create payment intent",
			zap.Int64("amount", amount),
			zap.String("currency", currency),
			zap.Error(err),
		)
		return "", fmt.Errorf("failed to create payment intent: %w", err)
	}

	g.logger.Debug("payment intent created", zap.String("intent_id", intent.ID), zap.Int64("amount", amount))
	return intent.ClientSecret, nil
}
