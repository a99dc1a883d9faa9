package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"parkflow/config"
	"parkflow/infras/jwt"
	"parkflow/infras/otel"
	"parkflow/permissions"
	"parkflow/shared/constant"
	"parkflow/shared/failure"
	"parkflow/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type trustedKey struct{}

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRole struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRole{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

func trusted(r *http.Request) bool {
	ok, _ := r.Context().Value(trustedKey{}).(bool)

	return ok
}

// route resolves the chi pattern of the request before the router has run.
func route(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	return rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path)
}

func (m *authRole) rule(r *http.Request) permissions.Permission {
	return m.permission.FindPermissions(route(r), r.Method)
}

func (m *authRole) public(r *http.Request) bool {
	return trusted(r) || m.permission.Public || m.rule(r).Public
}

// bearer reads the Authorization header. Browsers cannot set headers on a
// websocket handshake, so upgrades may pass the token as a query parameter.
func bearer(r *http.Request) string {
	header := r.Header.Get(constant.RequestHeaderAuthorization)
	if header != "" || !websocket.IsWebSocketUpgrade(r) {
		return header
	}

	if token := r.URL.Query().Get(constant.RequestParamToken); token != "" {
		return "Bearer " + token
	}

	return ""
}

func tokenMessage(err error) string {
	switch {
	case errors.Is(err, jwt.ErrExpiredToken):
		return "Token has expired"
	case errors.Is(err, jwt.ErrInvalidClaim):
		return "Invalid token claims"
	case errors.Is(err, jwt.ErrInvalidToken):
		return "Invalid token"
	default:
		return "Token validation failed"
	}
}

func reject(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	response.WithError(w, err)
}

// Auth puts the caller's identity on the request context. Public routes and
// trusted internal calls pass through untouched.
func (m *authRole) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")
		defer scope.End()

		if m.public(r) {
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"http.route":  route(r),
			"http.method": r.Method,
		})

		header := bearer(r)
		if header == "" {
			reject(w, scope, failure.Unauthorized("Missing authorization header"))

			return
		}

		token, err := jwt.ExtractTokenFromHeader(header)
		if err != nil {
			reject(w, scope, failure.Unauthorized("Invalid authorization header format"))

			return
		}

		claims, err := m.jwtService.ValidateToken(token, jwt.AccessToken)
		if err != nil {
			reject(w, scope, failure.Unauthorized(tokenMessage(err)))

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			log.Warn().Str("tokenID", claims.ID).Msg("access token without identity")
			reject(w, scope, failure.Unauthorized(tokenMessage(jwt.ErrInvalidClaim)))

			return
		}

		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC admits the caller when its role is listed for the route. It relies on
// Auth having run first.
func (m *authRole) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")
		defer scope.End()

		if m.public(r) {
			next.ServeHTTP(w, r)

			return
		}

		rule := m.rule(r)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)

		if !rule.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user.role":     role,
				"allowed_roles": rule.Roles,
			})
			reject(w, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r)
	})
}

// APIKey marks requests carrying the internal API key as trusted. A wrong key
// is refused outright rather than treated as a client call.
func (m *authRole) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")
		defer scope.End()

		key := r.Header.Get(constant.RequestHeaderAPIKey)
		if key == "" {
			scope.SetAttribute("http.source", "client")
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		expected := m.cfg.App.APIKey
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			reject(w, scope, failure.ForbiddenError)

			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, trustedKey{}, true)))
	})
}
