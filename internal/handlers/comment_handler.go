package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/middleware"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// CommentService is the interface that wraps methods for comment business logic.
type CommentService interface {
	// Method ListByPost retrieves the comments of the post with "postID", or every comment when it is empty.
	ListByPost(ctx context.Context, postID string) ([]models.Document, error)
	// Method Create stores "comment" as written by "commenterEmail".
	Create(ctx context.Context, comment models.Document, commenterEmail string) (*models.InsertResult, error)
	// Method Delete removes the comment with "id".
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// CommentHandler handles HTTP requests for comments
type CommentHandler struct {
	BaseHandler
	service CommentService
}

// NewCommentHandler creates a new comment handler
func NewCommentHandler(svc CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all comment handler routes
func (h *CommentHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware Middleware) {
	r.Route("/comments", func(r chi.Router) {
		r.Get("/", h.List)
		r.With(authMiddleware).Post("/", h.Create)
		r.With(authMiddleware, adminMiddleware).Delete("/{id}", h.Delete)
	})
}

// List handles GET /comments
// @Summary List comments
// @Tags comments
// @Produce json
// @Param postId query string false "Post ID"
// @Success 200 {array} object
// @Failure 500 {object} map[string]string
// @Router /comments [get]
func (h *CommentHandler) List(w http.ResponseWriter, r *http.Request) {
	comments, err := h.service.ListByPost(r.Context(), r.URL.Query().Get(models.CommentFieldPostID))
	if err != nil {
		h.respondServiceError(w, r, err, "get comments")
		return
	}

	h.respondJSON(w, http.StatusOK, comments)
}

// Create handles POST /comments
// @Summary Create comment
// @Tags comments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param comment body object true "Comment document, must contain postId"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /comments [post]
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	comment, err := decodeDocument(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), comment, email)
	if err != nil {
		h.respondServiceError(w, r, err, "create comment")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /comments/{id}
// @Summary Delete comment
// @Tags comments
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Comment ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /comments/{id} [delete]
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "delete comment")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
