package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/middleware"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// PostService is the interface that wraps methods for post business logic.
type PostService interface {
	// Method List retrieves one page of posts.
	//
	// "page" is zero-based and "size" is clamped to the allowed page size.
	// A non-empty "search" keeps only posts whose tag contains it, ignoring case.
	List(ctx context.Context, page, size int64, search string) ([]models.Document, error)
	// Method Count returns the number of posts.
	Count(ctx context.Context) (int64, error)
	// Method Create stores "post".
	Create(ctx context.Context, post models.Document) (*models.InsertResult, error)
	// Method ListByAuthor retrieves the posts of "authorEmail", or all posts when it is empty.
	ListByAuthor(ctx context.Context, authorEmail string) ([]models.Document, error)
	// Method DeleteOwn removes the post with "id" if "authorEmail" wrote it; otherwise nothing is deleted.
	DeleteOwn(ctx context.Context, id, authorEmail string) (*models.DeleteResult, error)
	// Method Delete removes the post with "id".
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// PostHandler handles HTTP requests for posts
type PostHandler struct {
	BaseHandler
	service PostService
}

// NewPostHandler creates a new post handler
func NewPostHandler(svc PostService, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all post handler routes
func (h *PostHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware Middleware) {
	r.Get("/posts", h.List)
	r.Post("/posts", h.Create)
	r.With(authMiddleware, adminMiddleware).Delete("/posts/{id}", h.Delete)
	r.Get("/postsCount", h.Count)
	r.Get("/specificPosts", h.ListByAuthor)
	r.With(authMiddleware).Delete("/specificPosts/{id}", h.DeleteOwn)
}

// List handles GET /posts
// @Summary List posts
// @Description Get one page of posts, optionally filtered by tag
// @Tags posts
// @Produce json
// @Param page query int false "Zero-based page, default: 0"
// @Param size query int false "Page size, default: 10, max: 100"
// @Param search query string false "Case-insensitive tag substring"
// @Success 200 {array} object
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts [get]
func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid page parameter")
		return
	}
	size, err := queryInt(r, "size")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid size parameter")
		return
	}

	posts, err := h.service.List(r.Context(), page, size, r.URL.Query().Get("search"))
	if err != nil {
		h.respondServiceError(w, r, err, "get posts")
		return
	}

	h.respondJSON(w, http.StatusOK, posts)
}

// Count handles GET /postsCount
// @Summary Count posts
// @Tags posts
// @Produce json
// @Success 200 {object} models.CountResponse
// @Failure 500 {object} map[string]string
// @Router /postsCount [get]
func (h *PostHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "count posts")
		return
	}

	h.respondJSON(w, http.StatusOK, models.CountResponse{Count: count})
}

// Create handles POST /posts
// @Summary Create post
// @Tags posts
// @Accept json
// @Produce json
// @Param post body object true "Post document"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts [post]
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	post, err := decodeDocument(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), post)
	if err != nil {
		h.respondServiceError(w, r, err, "create post")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// ListByAuthor handles GET /specificPosts
// @Summary List posts of an author
// @Tags posts
// @Produce json
// @Param authorEmail query string false "Author email"
// @Success 200 {array} object
// @Failure 500 {object} map[string]string
// @Router /specificPosts [get]
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListByAuthor(r.Context(), r.URL.Query().Get("authorEmail"))
	if err != nil {
		h.respondServiceError(w, r, err, "get posts")
		return
	}

	h.respondJSON(w, http.StatusOK, posts)
}

// DeleteOwn handles DELETE /specificPosts/{id}
// @Summary Delete own post
// @Description Delete a post written by the caller; posts of other authors are left untouched
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /specificPosts/{id} [delete]
func (h *PostHandler) DeleteOwn(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.EmailFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	result, err := h.service.DeleteOwn(r.Context(), chi.URLParam(r, "id"), email)
	if err != nil {
		h.respondServiceError(w, r, err, "delete post")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /posts/{id}
// @Summary Delete post
// @Tags posts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Post ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /posts/{id} [delete]
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "delete post")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// queryInt parses an optional integer query parameter, returning 0 when absent
func queryInt(r *http.Request, key string) (int64, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0, nil
	}
	return strconv.ParseInt(value, 10, 64)
}
