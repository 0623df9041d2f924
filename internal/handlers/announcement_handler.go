package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/talkbridge/backend/internal/models"
	"go.uber.org/zap"
)

// AnnouncementService is the interface that wraps methods for announcement business logic.
type AnnouncementService interface {
	// Method List retrieves every announcement.
	List(ctx context.Context) ([]models.Document, error)
	// Method Count returns the number of announcements.
	Count(ctx context.Context) (int64, error)
	// Method Get retrieves the announcement with "id".
	//
	// If it does not exist, services.ErrNotFound is returned together with "nil" value.
	Get(ctx context.Context, id string) (models.Document, error)
	// Method Create stores "announcement".
	Create(ctx context.Context, announcement models.Document) (*models.InsertResult, error)
	// Method Update overwrites title, description, author name and image of the announcement with "id".
	Update(ctx context.Context, id string, req *models.UpdateAnnouncementRequest) (*models.UpdateResult, error)
	// Method Delete removes the announcement with "id".
	Delete(ctx context.Context, id string) (*models.DeleteResult, error)
}

// AnnouncementHandler handles HTTP requests for announcements
type AnnouncementHandler struct {
	BaseHandler
	service AnnouncementService
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(svc AnnouncementService, logger *zap.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler: BaseHandler{logger: logger},
		service:     svc,
	}
}

// RegisterRoutes registers all announcement handler routes
func (h *AnnouncementHandler) RegisterRoutes(r chi.Router, authMiddleware, adminMiddleware Middleware) {
	r.Get("/announcementsCount", h.Count)
	r.Route("/announcements", func(r chi.Router) {
		r.Get("/", h.List)
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware, adminMiddleware)
			r.Post("/", h.Create)
			r.Get("/{id}", h.Get)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

// List handles GET /announcements
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200 {array} object
// @Failure 500 {object} map[string]string
// @Router /announcements [get]
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.service.List(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "get announcements")
		return
	}

	h.respondJSON(w, http.StatusOK, announcements)
}

// Count handles GET /announcementsCount
// @Summary Count announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} models.CountResponse
// @Failure 500 {object} map[string]string
// @Router /announcementsCount [get]
func (h *AnnouncementHandler) Count(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.Count(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "count announcements")
		return
	}

	h.respondJSON(w, http.StatusOK, models.CountResponse{Count: count})
}

// Get handles GET /announcements/{id}
// @Summary Get announcement
// @Tags announcements
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} object
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /announcements/{id} [get]
func (h *AnnouncementHandler) Get(w http.ResponseWriter, r *http.Request) {
	announcement, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "get announcement")
		return
	}

	h.respondJSON(w, http.StatusOK, announcement)
}

// Create handles POST /announcements
// @Summary Create announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param announcement body object true "Announcement document"
// @Success 200 {object} models.InsertResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /announcements [post]
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	announcement, err := decodeDocument(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Create(r.Context(), announcement)
	if err != nil {
		h.respondServiceError(w, r, err, "create announcement")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Update handles PATCH /announcements/{id}
// @Summary Update announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Param announcement body models.UpdateAnnouncementRequest true "Announcement fields"
// @Success 200 {object} models.UpdateResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /announcements/{id} [patch]
func (h *AnnouncementHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAnnouncementRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "update announcement")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /announcements/{id}
// @Summary Delete announcement
// @Tags announcements
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Announcement ID"
// @Success 200 {object} models.DeleteResult
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondServiceError(w, r, err, "delete announcement")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}
