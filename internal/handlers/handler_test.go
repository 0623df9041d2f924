package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talkbridge/backend/internal/auth"
	"github.com/talkbridge/backend/internal/middleware"
	"github.com/talkbridge/backend/internal/models"
	"github.com/talkbridge/backend/internal/services"
	"go.uber.org/zap/zaptest"
)

const testID = "5b0c6f4e-2f4f-4f3a-9a5e-1c2d3e4f5a6b"

// passThrough stands in for a guard that admits every request
func passThrough(next http.Handler) http.Handler { return next }

// withClaims stands in for the auth guard, attaching a fixed identity
func withClaims(email string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithClaims(r.Context(), auth.Claims{"email": email})))
		})
	}
}

// mockUserService is a mock implementation of UserService
type mockUserService struct {
	users        []models.Document
	createResult any
	admin        bool
	err          error
	lastEmail    string
	lastID       string
	lastProfile  *models.UpdateProfileRequest
}

func (m *mockUserService) List(ctx context.Context) ([]models.Document, error) {
	return m.users, m.err
}

func (m *mockUserService) Create(ctx context.Context, user models.Document) (any, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.createResult, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, email string, req *models.UpdateProfileRequest) (*models.UpdateResult, error) {
	m.lastEmail = email
	m.lastProfile = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockUserService) PromoteToAdmin(ctx context.Context, id string) (*models.UpdateResult, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockUserService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *mockUserService) IsAdmin(ctx context.Context, email string) (bool, error) {
	m.lastEmail = email
	return m.admin, m.err
}

// mockPostService is a mock implementation of PostService
type mockPostService struct {
	posts      []models.Document
	count      int64
	err        error
	lastPage   int64
	lastSize   int64
	lastSearch string
	lastID     string
	lastEmail  string
}

func (m *mockPostService) List(ctx context.Context, page, size int64, search string) ([]models.Document, error) {
	m.lastPage, m.lastSize, m.lastSearch = page, size, search
	return m.posts, m.err
}

func (m *mockPostService) Count(ctx context.Context) (int64, error) {
	return m.count, m.err
}

func (m *mockPostService) Create(ctx context.Context, post models.Document) (*models.InsertResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: testID}, nil
}

func (m *mockPostService) ListByAuthor(ctx context.Context, authorEmail string) ([]models.Document, error) {
	m.lastEmail = authorEmail
	return m.posts, m.err
}

func (m *mockPostService) DeleteOwn(ctx context.Context, id, authorEmail string) (*models.DeleteResult, error) {
	m.lastID, m.lastEmail = id, authorEmail
	if m.err != nil {
		return nil, m.err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func (m *mockPostService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	m.lastID = id
	if m.err != nil {
		return nil, m.err
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

// mockAnnouncementService is a mock implementation of AnnouncementService
type mockAnnouncementService struct {
	announcement models.Document
	err          error
	lastUpdate   *models.UpdateAnnouncementRequest
}

func (m *mockAnnouncementService) List(ctx context.Context) ([]models.Document, error) {
	return []models.Document{m.announcement}, m.err
}

func (m *mockAnnouncementService) Count(ctx context.Context) (int64, error) {
	return 1, m.err
}

func (m *mockAnnouncementService) Get(ctx context.Context, id string) (models.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.announcement, nil
}

func (m *mockAnnouncementService) Create(ctx context.Context, announcement models.Document) (*models.InsertResult, error) {
	return &models.InsertResult{Acknowledged: true, InsertedID: testID}, m.err
}

func (m *mockAnnouncementService) Update(ctx context.Context, id string, req *models.UpdateAnnouncementRequest) (*models.UpdateResult, error) {
	m.lastUpdate = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockAnnouncementService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, m.err
}

// mockPaymentService is a mock implementation of PaymentService
type mockPaymentService struct {
	err       error
	lastPrice float64
	lastEmail string
}

func (m *mockPaymentService) CreateIntent(ctx context.Context, price float64) (*models.PaymentIntentResponse, error) {
	m.lastPrice = price
	if m.err != nil {
		return nil, m.err
	}
	return &models.PaymentIntentResponse{ClientSecret: "pi_123_secret_456"}, nil
}

func (m *mockPaymentService) Record(ctx context.Context, payment models.Document) (*models.InsertResult, error) {
	return &models.InsertResult{Acknowledged: true, InsertedID: testID}, m.err
}

func (m *mockPaymentService) ListByEmail(ctx context.Context, email string) ([]models.Document, error) {
	m.lastEmail = email
	return []models.Document{{"email": email}}, m.err
}

// mockCommentService is a mock implementation of CommentService
type mockCommentService struct {
	err           error
	lastPostID    string
	lastCommenter string
}

func (m *mockCommentService) ListByPost(ctx context.Context, postID string) ([]models.Document, error) {
	m.lastPostID = postID
	return []models.Document{}, m.err
}

func (m *mockCommentService) Create(ctx context.Context, comment models.Document, commenterEmail string) (*models.InsertResult, error) {
	m.lastCommenter = commenterEmail
	if m.err != nil {
		return nil, m.err
	}
	return &models.InsertResult{Acknowledged: true, InsertedID: testID}, nil
}

func (m *mockCommentService) Delete(ctx context.Context, id string) (*models.DeleteResult, error) {
	return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, m.err
}

// mockIssuer is a mock implementation of TokenIssuer
type mockIssuer struct {
	token string
	err   error
}

func (m *mockIssuer) Issue(claims auth.Claims) (string, error) {
	return m.token, m.err
}

// mockPinger is a mock implementation of Pinger
type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(ctx context.Context) error {
	return m.err
}

func serve(t *testing.T, router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_IssueToken(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		issuer         TokenIssuer
		expectedStatus int
	}{
		{
			name:           "success with real issuer",
			body:           `{"email":"a@x.io"}`,
			issuer:         auth.NewTokenGenerator("secret", time.Hour),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing email",
			body:           `{"name":"a"}`,
			issuer:         auth.NewTokenGenerator("secret", time.Hour),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid json",
			body:           `{`,
			issuer:         &mockIssuer{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "signing failure",
			body:           `{"email":"a@x.io"}`,
			issuer:         &mockIssuer{err: errors.New("boom")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewAuthHandler(tt.issuer, zaptest.NewLogger(t)).RegisterRoutes(r)

			w := serve(t, r, http.MethodPost, "/jwt", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				var resp TokenResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}

func TestUserHandler_Create(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockUserService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "inserted",
			body:           `{"email":"a@x.io"}`,
			svc:            &mockUserService{createResult: &models.InsertResult{Acknowledged: true, InsertedID: testID}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"acknowledged":true,"insertedId":"` + testID + `"}`,
		},
		{
			name:           "already exists",
			body:           `{"email":"a@x.io"}`,
			svc:            &mockUserService{createResult: &models.UserExistsResponse{Message: "User Already exists"}},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"message":"User Already exists","insertedId":null}`,
		},
		{
			name:           "not an object",
			body:           `[1,2]`,
			svc:            &mockUserService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing email",
			body:           `{}`,
			svc:            &mockUserService{err: services.ErrInvalidInput},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "store failure",
			body:           `{"email":"a@x.io"}`,
			svc:            &mockUserService{err: errors.New("database error")},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"failed to create user"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewUserHandler(tt.svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

			w := serve(t, r, http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
			}
		})
	}
}

func TestUserHandler_Routes(t *testing.T) {
	svc := &mockUserService{admin: true}
	r := chi.NewRouter()
	NewUserHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, withClaims("a@x.io"), passThrough)

	w := serve(t, r, http.MethodPatch, "/users/a@x.io", `{"name":"A"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.io", svc.lastEmail)
	assert.Equal(t, "A", svc.lastProfile.Name)

	w = serve(t, r, http.MethodGet, "/users/admin/a@x.io", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"admin":true}`, w.Body.String())

	w = serve(t, r, http.MethodGet, "/users/admin/b@x.io", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, r, http.MethodPatch, "/users/admin/"+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testID, svc.lastID)

	w = serve(t, r, http.MethodDelete, "/users/"+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"acknowledged":true,"deletedCount":1}`, w.Body.String())
}

func TestUserHandler_InvalidID(t *testing.T) {
	svc := &mockUserService{err: services.ErrInvalidID}
	r := chi.NewRouter()
	NewUserHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

	w := serve(t, r, http.MethodDelete, "/users/nope", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostHandler_List(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedStatus int
		expectedPage   int64
		expectedSize   int64
		expectedSearch string
	}{
		{name: "defaults", query: "", expectedStatus: http.StatusOK},
		{name: "all parameters", query: "?page=2&size=5&search=music", expectedStatus: http.StatusOK, expectedPage: 2, expectedSize: 5, expectedSearch: "music"},
		{name: "invalid page", query: "?page=abc", expectedStatus: http.StatusBadRequest},
		{name: "invalid size", query: "?size=1.5", expectedStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockPostService{posts: []models.Document{{"tag": "Music"}}}
			r := chi.NewRouter()
			NewPostHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

			w := serve(t, r, http.MethodGet, "/posts"+tt.query, "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedPage, svc.lastPage)
				assert.Equal(t, tt.expectedSize, svc.lastSize)
				assert.Equal(t, tt.expectedSearch, svc.lastSearch)
			}
		})
	}
}

func TestPostHandler_Routes(t *testing.T) {
	svc := &mockPostService{count: 7}
	r := chi.NewRouter()
	NewPostHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, withClaims("a@x.io"), passThrough)

	w := serve(t, r, http.MethodGet, "/postsCount", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":7}`, w.Body.String())

	w = serve(t, r, http.MethodPost, "/posts", `{"tag":"go","authorEmail":"a@x.io"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = serve(t, r, http.MethodGet, "/specificPosts?authorEmail=b@x.io", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b@x.io", svc.lastEmail)

	w = serve(t, r, http.MethodDelete, "/specificPosts/"+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testID, svc.lastID)
	assert.Equal(t, "a@x.io", svc.lastEmail)

	w = serve(t, r, http.MethodDelete, "/posts/"+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPostHandler_DeleteOwn_WithoutClaims(t *testing.T) {
	svc := &mockPostService{}
	r := chi.NewRouter()
	NewPostHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

	w := serve(t, r, http.MethodDelete, "/specificPosts/"+testID, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, svc.lastID)
}

func TestAnnouncementHandler(t *testing.T) {
	t.Run("get found", func(t *testing.T) {
		svc := &mockAnnouncementService{announcement: models.Document{"_id": testID, "title": "t"}}
		r := chi.NewRouter()
		NewAnnouncementHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

		w := serve(t, r, http.MethodGet, "/announcements/"+testID, "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"_id":"`+testID+`","title":"t"}`, w.Body.String())
	})

	t.Run("get not found", func(t *testing.T) {
		svc := &mockAnnouncementService{err: services.ErrNotFound}
		r := chi.NewRouter()
		NewAnnouncementHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

		w := serve(t, r, http.MethodGet, "/announcements/"+testID, "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update decodes fields", func(t *testing.T) {
		svc := &mockAnnouncementService{}
		r := chi.NewRouter()
		NewAnnouncementHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, passThrough)

		w := serve(t, r, http.MethodPatch, "/announcements/"+testID, `{"title":"t","description":"d","authorName":"n","image":"i"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, svc.lastUpdate)
		assert.Equal(t, models.UpdateAnnouncementRequest{Title: "t", Description: "d", AuthorName: "n", Image: "i"}, *svc.lastUpdate)
	})

	t.Run("guards protect mutations only", func(t *testing.T) {
		deny := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
			})
		}
		svc := &mockAnnouncementService{announcement: models.Document{"title": "t"}}
		r := chi.NewRouter()
		NewAnnouncementHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough, deny)

		assert.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/announcements", "").Code)
		assert.Equal(t, http.StatusOK, serve(t, r, http.MethodGet, "/announcementsCount", "").Code)
		assert.Equal(t, http.StatusForbidden, serve(t, r, http.MethodPost, "/announcements", `{"title":"t"}`).Code)
		assert.Equal(t, http.StatusForbidden, serve(t, r, http.MethodDelete, "/announcements/"+testID, "").Code)
	})
}

func TestPaymentHandler_CreateIntent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		svc            *mockPaymentService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "success",
			body:           `{"price":10}`,
			svc:            &mockPaymentService{},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"clientSecret":"pi_123_secret_456"}`,
		},
		{
			name:           "invalid price",
			body:           `{"price":0}`,
			svc:            &mockPaymentService{err: services.ErrInvalidPrice},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "price not a number",
			body:           `{"price":"ten"}`,
			svc:            &mockPaymentService{},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "provider failure",
			body:           `{"price":10}`,
			svc:            &mockPaymentService{err: errors.New("stripe down")},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := chi.NewRouter()
			NewPaymentHandler(tt.svc, zaptest.NewLogger(t)).RegisterRoutes(r, passThrough)

			w := serve(t, r, http.MethodPost, "/create-payment-intent", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, w.Body.String())
				assert.Equal(t, 10.0, tt.svc.lastPrice)
			}
		})
	}
}

func TestPaymentHandler_ListByEmail(t *testing.T) {
	svc := &mockPaymentService{}
	r := chi.NewRouter()
	NewPaymentHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, withClaims("a@x.io"))

	w := serve(t, r, http.MethodGet, "/payments?email=a@x.io", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.io", svc.lastEmail)

	w = serve(t, r, http.MethodGet, "/payments?email=b@x.io", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(t, r, http.MethodPost, "/payments", `{"email":"a@x.io","price":10}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCommentHandler(t *testing.T) {
	svc := &mockCommentService{}
	r := chi.NewRouter()
	NewCommentHandler(svc, zaptest.NewLogger(t)).RegisterRoutes(r, withClaims("a@x.io"), passThrough)

	w := serve(t, r, http.MethodGet, "/comments?postId="+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testID, svc.lastPostID)

	w = serve(t, r, http.MethodPost, "/comments", `{"postId":"`+testID+`","text":"hi"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a@x.io", svc.lastCommenter)

	w = serve(t, r, http.MethodDelete, "/comments/"+testID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthHandler(t *testing.T) {
	r := chi.NewRouter()
	NewHealthHandler(&mockPinger{}, zaptest.NewLogger(t)).RegisterRoutes(r)

	w := serve(t, r, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "TalkBridge is running", w.Body.String())

	w = serve(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	r = chi.NewRouter()
	NewHealthHandler(&mockPinger{err: errors.New("down")}, zaptest.NewLogger(t)).RegisterRoutes(r)
	w = serve(t, r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
