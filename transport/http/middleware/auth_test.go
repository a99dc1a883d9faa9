package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"parkflow/config"
	"parkflow/infras/jwt"
	jwtMocks "parkflow/infras/jwt/mocks"
	otelMocks "parkflow/infras/otel/mocks"
	"parkflow/permissions"
	"parkflow/shared/constant"
	"parkflow/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const rules = `{
  "endpoints": [
    {"method": "GET", "path": "/v1/lots/nearby", "public": true},
    {"method": "PATCH", "path": "/v1/lots/{id}/settings", "roles": ["business"]}
  ]
}`

func newRouter(t *testing.T, tokens jwt.JWT) http.Handler {
	t.Helper()

	perms, err := permissions.Parse([]byte(rules))
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	mw := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), perms, cfg)

	ok := func(w http.ResponseWriter, r *http.Request) {
		user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(user))
	}

	router := chi.NewRouter()
	router.Use(mw.APIKey, mw.Auth, mw.RBAC)
	router.Get("/v1/lots/nearby", ok)
	router.Patch("/v1/lots/{id}/settings", ok)

	return router
}

func TestAuthRole(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		mock     func(tokens *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/lots/nearby",
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodPatch,
			path:     "/v1/lots/lot-1/settings",
			wantCode: http.StatusUnauthorized,
			wantBody: "Missing authorization header",
		},
		{
			name:     "wrong scheme",
			method:   http.MethodPatch,
			path:     "/v1/lots/lot-1/settings",
			headers:  map[string]string{constant.RequestHeaderAuthorization: "Token abc"},
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid authorization header format",
		},
		{
			name:    "expired token",
			method:  http.MethodPatch,
			path:    "/v1/lots/lot-1/settings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			mock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Token has expired",
		},
		{
			name:    "owner may change settings",
			method:  http.MethodPatch,
			path:    "/v1/lots/lot-1/settings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			mock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(&jwt.Claims{
					UserID: "owner-1",
					Email:  "owner@parkflow.test",
					Role:   constant.RoleBusiness,
				}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "owner-1",
		},
		{
			name:    "driver may not change settings",
			method:  http.MethodPatch,
			path:    "/v1/lots/lot-1/settings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			mock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(&jwt.Claims{
					UserID: "driver-1",
					Email:  "driver@parkflow.test",
					Role:   constant.RoleUser,
				}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "token without identity",
			method:  http.MethodPatch,
			path:    "/v1/lots/lot-1/settings",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer abc"},
			mock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("abc", jwt.AccessToken).Return(&jwt.Claims{Role: constant.RoleBusiness}, nil)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: "Invalid token claims",
		},
		{
			name:     "internal api key",
			method:   http.MethodPatch,
			path:     "/v1/lots/lot-1/settings",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			wantCode: http.StatusOK,
		},
		{
			name:     "wrong api key",
			method:   http.MethodPatch,
			path:     "/v1/lots/lot-1/settings",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			tokens := jwtMocks.NewMockJWT(ctrl)
			if tt.mock != nil {
				tt.mock(tokens)
			}

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newRouter(t, tokens).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestAuthAcceptsWebsocketQueryToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tokens := jwtMocks.NewMockJWT(ctrl)
	tokens.EXPECT().ValidateToken("ws-token", jwt.AccessToken).Return(&jwt.Claims{
		UserID: "owner-1",
		Email:  "owner@parkflow.test",
		Role:   constant.RoleBusiness,
	}, nil)

	req := httptest.NewRequest(http.MethodPatch, "/v1/lots/lot-1/settings?token=ws-token", nil)
	req.Header.Set("Connection", "Upgrade")
	req.Header.Set("Upgrade", "websocket")

	rec := httptest.NewRecorder()
	newRouter(t, tokens).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner-1", rec.Body.String())
}
