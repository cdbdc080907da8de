//go:build unit

package middleware_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"turnos-service/internal/domain/admin"
	"turnos-service/internal/handler/httperr"
	"turnos-service/internal/handler/middleware"
	"turnos-service/internal/pkg/clock"
	"turnos-service/internal/pkg/config"
	"turnos-service/internal/pkg/cookie"
	"turnos-service/internal/pkg/errs"
	"turnos-service/internal/pkg/jwt"
	"turnos-service/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthMiddlewareTestSuite struct {
	suite.Suite
	router  *gin.Engine
	clock   *clock.MockClock
	jwt     *jwt.Service
	account admin.Account
}

func (s *AuthMiddlewareTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.clock = clock.NewMockClock(time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC))
	s.jwt = jwt.NewService("test-jwt-secret", time.Hour, s.clock)
	s.account = admin.NewAccount("admin", "admin123", false)

	auth := middleware.NewAuthMiddleware(usecase.NewTokenValidator(s.jwt))
	s.router = gin.New()
	s.router.GET("/private", auth.RequireAdmin(), func(c *gin.Context) {
		id, ok := middleware.GetAccountID(c)
		s.True(ok)
		role, ok := middleware.GetRole(c)
		s.True(ok)
		c.JSON(http.StatusOK, gin.H{"id": id.String(), "role": string(role)})
	})
}

func TestAuthMiddlewareSuite(t *testing.T) {
	suite.Run(t, new(AuthMiddlewareTestSuite))
}

func (s *AuthMiddlewareTestSuite) token() string {
	token, err := s.jwt.GenerateToken(s.account)
	s.Require().NoError(err)
	return token
}

func (s *AuthMiddlewareTestSuite) TestRequireAdmin() {
	s.Run("bearer header", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+s.token())
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Body.String(), s.account.ID().String())
	})

	s.Run("session cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: cookie.SessionCookieName, Value: s.token()})
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)

		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("missing token", func() {
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("malformed token", func() {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("expired token", func() {
		token := s.token()
		s.clock.Add(2 * time.Hour)
		defer s.clock.Add(-2 * time.Hour)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("token signed with another secret", func() {
		other := jwt.NewService("another-secret", time.Hour, s.clock)
		token, err := other.GenerateToken(s.account)
		s.Require().NoError(err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func TestErrorHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.ErrorHandler())
	r.GET("/public-error", func(c *gin.Context) {
		_ = c.Error(&gin.Error{
			Err:  errors.New("boom"),
			Type: gin.ErrorTypePublic,
			Meta: httperr.New(http.StatusConflict, "ocupado"),
		})
	})
	r.GET("/panic", func(*gin.Context) { panic("kaboom") })
	r.GET("/silent", func(*gin.Context) {})

	for _, tc := range []struct {
		path       string
		wantStatus int
		wantError  string
	}{
		{path: "/public-error", wantStatus: http.StatusConflict, wantError: "ocupado"},
		{path: "/panic", wantStatus: http.StatusInternalServerError, wantError: "Error interno del servidor"},
		{path: "/silent", wantStatus: http.StatusInternalServerError, wantError: "Error interno del servidor"},
	} {
		t.Run(tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.JSONEq(t, `{"error":"`+tc.wantError+`"}`, w.Body.String())
		})
	}
}

func TestRequestIDPropagation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger := slog.New(middleware.ContextHandler{Handler: slog.NewJSONHandler(&buf, nil)})

	var seen string
	r := gin.New()
	r.Use(middleware.NewLogger(config.NewTestConfig().Log).LoggingMiddleware())
	r.GET("/", func(c *gin.Context) {
		seen = middleware.RequestIDFromContext(c.Request.Context())
		logger.InfoContext(c.Request.Context(), "inside")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, "req-123", seen)
	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
	assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	assert.Empty(t, middleware.RequestIDFromContext(context.Background()))
}

func TestLoggingStackOnServerError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig().Log
	cfg.Level = "info"

	serve := func(status int) string {
		var buf bytes.Buffer
		r := gin.New()
		r.Use(middleware.NewLoggerWithWriter(cfg, &buf).LoggingMiddleware())
		r.GET("/", func(c *gin.Context) {
			httperr.AbortWithError(c, status, errs.Wrap(errs.New("calendar down"), "create event"), "fallo", nil)
		})
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		return buf.String()
	}

	t.Run("5xx carries the error stack", func(t *testing.T) {
		out := serve(http.StatusBadGateway)
		assert.Contains(t, out, "level=ERROR")
		assert.Contains(t, out, "stack=")
		assert.Contains(t, out, "calendar down")
	})

	t.Run("4xx logs the error without stack", func(t *testing.T) {
		out := serve(http.StatusConflict)
		assert.Contains(t, out, "level=WARN")
		assert.Contains(t, out, "calendar down")
		assert.NotContains(t, out, "stack=")
	})
}
