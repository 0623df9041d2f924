package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/auth"
	"go.uber.org/zap"
)

// TokenIssuer is the interface that wraps the Issue method.
//
// Issue signs "claims" into a session token. Claims without an email are rejected with auth.ErrInvalidClaims.
type TokenIssuer interface {
	Issue(claims auth.Claims) (string, error)
}

// TokenResponse carries a freshly issued session token
type TokenResponse struct {
	Token string `json:"token"`
}

// AuthHandler handles session token requests
type AuthHandler struct {
	BaseHandler
	issuer TokenIssuer
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(issuer TokenIssuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{logger: logger},
		issuer:      issuer,
	}
}

// RegisterRoutes registers the token route
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/jwt", h.IssueToken)
}

// IssueToken handles POST /jwt
// @Summary Issue session token
// @Description Sign the posted identity claims into a token valid for the configured expiry
// @Tags auth
// @Accept json
// @Produce json
// @Param claims body object true "Identity claims, must contain email"
// @Success 200 {object} handlers.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var claims auth.Claims
	if err := decodeJSON(r, &claims); err != nil || claims == nil {
		h.respondError(w, http.StatusBadRequest, errInvalidBody.Error())
		return
	}

	token, err := h.issuer.Issue(claims)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidClaims) {
			h.respondError(w, http.StatusBadRequest, "email claim is required")
			return
		}
		h.logger.Error("failed to issue token", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}

	h.respondJSON(w, http.StatusOK, TokenResponse{Token: token})
}
