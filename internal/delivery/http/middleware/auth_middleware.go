package middleware

import (
	"context"
	"net/http"
	"strings"

	"hospital-management/internal/domain/entity"
	"hospital-management/internal/service"
	"hospital-management/pkg/jwt"
	"hospital-management/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	AccountIDKey contextKey = "account_id"
	RoleKey      contextKey = "role"
	TokenIDKey   contextKey = "token_id"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session_token"

// LoginPath is where requests without a usable session are sent.
const LoginPath = "/login/"

type AuthMiddleware struct {
	jwtService   *jwt.JWTService
	sessionStore service.SessionStore
	log          *logrus.Logger
}

func NewAuthMiddleware(jwtService *jwt.JWTService, sessionStore service.SessionStore, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		sessionStore: sessionStore,
		log:          log,
	}
}

// Identify attaches the session to the request context when there is a live
// one and lets every request through.
func (m *AuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.resolve(r)
		if err != nil || claims == nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// Authenticate requires a live session and redirects to the login page
// otherwise.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.resolve(r)
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if claims == nil {
			response.Redirect(w, r, LoginPath)
			return
		}
		next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
	})
}

// resolve returns the claims of a valid, not revoked session token, nil
// when there is none. An error means the session store could not be read.
func (m *AuthMiddleware) resolve(r *http.Request) (*jwt.Claims, error) {
	tokenString := sessionToken(r)
	if tokenString == "" {
		return nil, nil
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		return nil, nil
	}

	active, err := m.sessionStore.IsActive(r.Context(), claims.AccountID, claims.TokenID)
	if err != nil {
		m.log.Warnf("Failed to check session %s: %+v", claims.TokenID, err)
		return nil, err
	}
	if !active {
		return nil, nil
	}
	return claims, nil
}

// sessionToken reads the token from the session cookie, then from a
// "Bearer <token>" Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

func withClaims(ctx context.Context, claims *jwt.Claims) context.Context {
	ctx = context.WithValue(ctx, AccountIDKey, claims.AccountID)
	ctx = context.WithValue(ctx, RoleKey, entity.Role(claims.Role))
	ctx = context.WithValue(ctx, TokenIDKey, claims.TokenID)
	return ctx
}

// GetAccountIDFromContext extracts account ID from context
func GetAccountIDFromContext(ctx context.Context) (uint, bool) {
	accountID, ok := ctx.Value(AccountIDKey).(uint)
	return accountID, ok
}

// GetRoleFromContext extracts role from context
func GetRoleFromContext(ctx context.Context) (entity.Role, bool) {
	role, ok := ctx.Value(RoleKey).(entity.Role)
	return role, ok
}

// GetTokenIDFromContext extracts token ID from context
func GetTokenIDFromContext(ctx context.Context) (string, bool) {
	tokenID, ok := ctx.Value(TokenIDKey).(string)
	return tokenID, ok
}
