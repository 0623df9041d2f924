package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/middleware"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// PaymentService is the interface that wraps methods for payment business logic.
type PaymentService interface {
	// Method CreateIntent opens a card payment for "price" dollars at the payment provider.
	//
	// Non-positive prices are rejected with services.ErrInvalidPrice.
	CreateIntent(ctx context.Context, price float64) (*models.PaymentIntentResponse, error)
	// Method Record stores a payment completed by the client.
	Record(ctx context.Context, payment models.Document) (*models.InsertResult, error)
	// Method ListByEmail retrieves the payments recorded for "email".
	ListByEmail(ctx context.Context, email string) ([]models.Document, error)
}

// PaymentHandler handles HTTP requests for payments
type PaymentHandler struct {
	BaseHandler
	service PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(svc PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all payment handler routes
func (h *PaymentHandler) RegisterRoutes(r chi.Router, authMiddleware Middleware) {
	r.Post("/create-payment-intent", h.CreateIntent)
	r.Post("/payments", h.Record)
	r.With(authMiddleware, middleware.SelfQueryMiddleware(models.PaymentFieldEmail)).Get("/payments", h.ListByEmail)
}

// CreateIntent handles POST /create-payment-intent
// @Summary Create payment intent
// @Description Convert a dollar price to cents and open a USD card payment
// @Tags payments
// @Accept json
// @Produce json
// @Param request body models.PaymentIntentRequest true "Price in dollars"
// @Success 200 {object} models.PaymentIntentResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	var req models.PaymentIntentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.CreateIntent(r.Context(), req.Price)
	if err != nil {
		h.respondServiceError(w, r, err, "create payment intent")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Record handles POST /payments
// @Summary Record payment
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body object true "Payment document"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /payments [post]
func (h *PaymentHandler) Record(w http.ResponseWriter, r *http.Request) {
	payment, err := decodeDocument(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Record(r.Context(), payment)
	if err != nil {
		h.respondServiceError(w, r, err, "record payment")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListByEmail handles GET /payments
// @Summary List own payments
// @Tags payments
// @Produce json
// @Security ApiKeyAuth
// @Param email query string true "Caller email"
// @Success 200 {array} object
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /payments [get]
func (h *PaymentHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	payments, err := h.service.ListByEmail(r.Context(), r.URL.Query().Get(models.PaymentFieldEmail))
	if err != nil {
		h.respondServiceError(w, r, err, "get payments")
		return
	}

	h.respondJSON(w, http.StatusOK, payments)
}
