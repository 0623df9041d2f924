package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/middleware"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// UserService is the interface that wraps methods for user business logic.
type UserService interface {
	// Method List retrieves every registered user.
	List(ctx context.Context) ([]models.Document, error)
	// Method Create registers "user" unless its email is already taken.
	//
	// The result is either *models.InsertResult or, for a known email, *models.UserExistsResponse.
	// A user without an email is rejected with services.ErrInvalidInput.
	Create(ctx context.Context, user models.Document) (any, error)
	// Method UpdateProfile sets the non-empty fields of "req" on the user with "email" and grants the gold badge.
	UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.UpdateResult, error)
	// Method PromoteToAdmin grants the admin role to the user with "id".
	//
	// If "id" is malformed, services.ErrInvalidID is returned together with "nil" value.
	PromoteToAdmin(ctx context.Context, id string) (*models.UpdateResult, error)
	// Method Delete removes the user with "id".
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
	// Method IsAdmin reports whether the user with "email" currently holds the admin role.
	IsAdmin(ctx context.Context, email string) (bool, error)
}

// UserHandler handles HTTP requests for users
type UserHandler struct {
	BaseHandler
	service UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all user handler routes
func (h *UserHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware Middleware) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Patch("/{email}", h.UpdateProfile)
		r.With(authMiddleware, middleware.SelfMiddleware("email")).Get("/admin/{email}", h.AdminStatus)
		r.With(authMiddleware, adminMiddleware).Patch("/admin/{id}", h.PromoteToAdmin)
		r.With(authMiddleware, adminMiddleware).Delete("/{id}", h.Delete)
	})
}

// List handles GET /users
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} map[string]string
// @Router /users [get]
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "get users")
		return
	}

	h.respondJSON(w, http.StatusOK, users)
}

// Create handles POST /users
// @Summary Register user
// @Description Store a user on first sign-in; an already known email is reported instead of inserted
// @Tags users
// @Accept json
// @Produce json
// @Param user body object true "User document, must contain email"
// @Success 200 {object} models.InsertResult
// @Success 200 {object} models.UserExistsResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, err := decodeDocument(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), user)
	if err != nil {
		h.respondServiceError(w, r, err, "create user")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// UpdateProfile handles PATCH /users/{email}
// @Summary Update profile
// @Description Set name, email and image of a user and grant the gold badge
// @Tags users
// @Accept json
// @Produce json
// @Param email path string true "User email"
// @Param profile body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{email} [patch]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.UpdateProfile(r.Context(), middleware.URLParam(r, "email"), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "update profile")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// AdminStatus handles GET /users/admin/{email}
// @Summary Check admin status
// @Description Report whether the caller holds the admin role; the path email must match the token
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param email path string true "Caller email"
// @Success 200 {object} models.AdminStatusResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/admin/{email} [get]
func (h *UserHandler) AdminStatus(w http.ResponseWriter, r *http.Request) {
	admin, err := h.service.IsAdmin(r.Context(), middleware.URLParam(r, "email"))
	if err != nil {
		h.respondServiceError(w, r, err, "check admin status")
		return
	}

	h.respondJSON(w, http.StatusOK, models.AdminStatusResponse{Admin: admin})
}

// PromoteToAdmin handles PATCH /users/admin/{id}
// @Summary Promote user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/admin/{id} [patch]
func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.PromoteToAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "promote user")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /users/{id}
// @Summary Delete user
// @Tags users
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /users/{id} [delete]
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "delete user")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
