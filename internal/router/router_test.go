package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/auth"
	"inkwell/internal/config"
	"inkwell/internal/handler"
	"inkwell/internal/model"
	"inkwell/internal/service"
)

const testSecret = "test-secret"

type stubAuthService struct{}

func (stubAuthService) Signup(ctx context.Context, name, email, password string) (string, error) {
	return "stub-token", nil
}

func (stubAuthService) Signin(ctx context.Context, email, password string) (string, error) {
	return "stub-token", nil
}

type stubBlogService struct{}

func (stubBlogService) CreatePost(ctx context.Context, authorID uuid.UUID, title, content string, published bool) (*model.Post, error) {
	return &model.Post{ID: uuid.New(), Title: title, Content: content, Published: published, AuthorID: authorID}, nil
}

func (stubBlogService) GetPost(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	return &model.Post{ID: id, Title: "t"}, nil
}

func (stubBlogService) ListPublished(ctx context.Context, page, limit int) ([]model.Post, service.Pagination, error) {
	return []model.Post{}, service.Pagination{Page: 1, Limit: 10}, nil
}

func (stubBlogService) UpdatePost(ctx context.Context, id, authorID uuid.UUID, title, content string, published bool) (*model.Post, error) {
	return &model.Post{ID: id, Title: title, Content: content, Published: published, AuthorID: authorID}, nil
}

func (stubBlogService) PublishPost(ctx context.Context, id, authorID uuid.UUID) error { return nil }

func (stubBlogService) DeletePost(ctx context.Context, id, authorID uuid.UUID) error { return nil }

type stubProfileService struct{}

func (stubProfileService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return &model.User{ID: userID, Name: "A", Email: "a@x.com"}, nil
}

func (stubProfileService) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	return &model.User{ID: userID, Name: "A"}, nil
}

func newTestServer() *echo.Echo {
	e := echo.New()
	cfg := &config.Config{
		JWTSecret:          testSecret,
		RateLimitAuthRPS:   100,
		RateLimitAuthBurst: 100,
	}
	Register(
		e,
		cfg,
		handler.NewUserHandler(stubAuthService{}),
		handler.NewBlogHandler(stubBlogService{}),
		handler.NewProfileHandler(stubProfileService{}),
	)
	return e
}

func issueTestToken(t *testing.T, expiry time.Duration) string {
	t.Helper()
	claims := &auth.Claims{
		UserID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func doRequest(e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthGate_RejectsAllTokenFailuresAlike(t *testing.T) {
	e := newTestServer()

	tests := []struct {
		name  string
		token string
	}{
		{"missing header", ""},
		{"garbage token", "not-a-jwt"},
		{"expired token", issueTestToken(t, -time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, "/api/v1/user/verifyToken", tt.token, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, "unauthorized", body["message"])
		})
	}
}

func TestAuthGate_AllowsValidToken(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/user/verifyToken", issueTestToken(t, time.Hour), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestSignup_Envelope(t *testing.T) {
	e := newTestServer()

	t.Run("valid input returns token", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/user/signup", "",
			`{"name":"A","email":"a@x.com","password":"secret1"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "stub-token", body["token"])
	})

	t.Run("schema violation is a 400", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/user/signup", "",
			`{"name":"A","password":"secret1"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
	})

	t.Run("short password is a 400", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/user/signup", "",
			`{"email":"a@x.com","password":"abc"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPublicProfile_NoAuthRequired(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/profile/"+uuid.New().String(), "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestPublicProfile_BadIDIs404(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/profile/not-a-uuid", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBlogBulk_RequiresAuth(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/api/v1/blog/bulk", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/v1/blog/bulk", issueTestToken(t, time.Hour), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Contains(t, body, "pagination")
}

func TestCreatePost_ValidationAndOwnership(t *testing.T) {
	e := newTestServer()
	token := issueTestToken(t, time.Hour)

	t.Run("missing title is a 400", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/blog", token, `{"content":"c"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("title only succeeds with defaults", func(t *testing.T) {
		rec := doRequest(e, http.MethodPost, "/api/v1/blog", token, `{"title":"T"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.NotEmpty(t, body["id"])
	})
}

func TestHealthz(t *testing.T) {
	e := newTestServer()

	rec := doRequest(e, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
