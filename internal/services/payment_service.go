package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/repositories"
	"go.uber.org/zap"
)

// ErrInvalidPrice is returned for prices that cannot be charged
var ErrInvalidPrice = errors.New("invalid price")

// PaymentGateway is the interface that wraps the payment provider call.
type PaymentGateway interface {
	// Method CreatePaymentIntent starts a payment of "amount" in the smallest unit of "currency".
	//
	// It returns the client secret used by the browser to confirm the payment.
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

type paymentService struct {
	store   DocumentStore
	gateway PaymentGateway
	logger  *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(store DocumentStore, gateway PaymentGateway, logger *zap.Logger) *paymentService {
	return &paymentService{
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

// CreateIntent converts a dollar price to cents and opens a USD card payment for it
func (s *paymentService) CreateIntent(ctx context.Context, price float64) (*models.PaymentIntentResponse, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}

	amount := int64(math.Round(price * 100))
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrice, price)
	}

	clientSecret, err := s.gateway.CreatePaymentIntent(ctx, amount, models.CurrencyUSD)
	if err != nil {
		return nil, err
	}

	return &models.PaymentIntentResponse{ClientSecret: clientSecret}, nil
}

// Record stores a completed payment
func (s *paymentService) Record(ctx context.Context, payment models.Document) (*models.InsertResult, error) {
	result, err := s.store.InsertOne(ctx, payment)
	if err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("id", result.InsertedID),
		zap.String("email", payment.String(models.PaymentFieldEmail)),
	)
	return result, nil
}

// ListByEmail returns the payments recorded for "email"
func (s *paymentService) ListByEmail(ctx context.Context, email string) ([]models.Document, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	return s.store.Find(ctx, repositories.Filter{repositories.Eq(models.PaymentFieldEmail, email)}, repositories.FindOptions{})
}
