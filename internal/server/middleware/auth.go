package middleware

import (
	"log/slog"
	"net/http"

	"github.com/iudanet/flashsync/internal/server/handlers"
	"github.com/iudanet/flashsync/internal/server/jwt"
)

// Authenticator resolves the account a request acts for
type Authenticator interface {
	Authenticate(r *http.Request) (accountID string, ok bool)
}

// TokenValidator validates access tokens
type TokenValidator interface {
	ValidateAccessToken(token string) (*jwt.Claims, error)
}

// TokenAuthenticator authenticates requests by the JWT access token from the
// Authorization header or the token cookie
type TokenAuthenticator struct {
	tokens TokenValidator
	logger *slog.Logger
}

// NewTokenAuthenticator creates an Authenticator backed by tokens
func NewTokenAuthenticator(tokens TokenValidator, logger *slog.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{tokens: tokens, logger: logger}
}

// Authenticate returns the account id from a valid access token
func (a *TokenAuthenticator) Authenticate(r *http.Request) (string, bool) {
	token, ok := jwt.TokenFromRequest(r)
	if !ok {
		return "", false
	}

	claims, err := a.tokens.ValidateAccessToken(token)
	if err != nil {
		a.logger.WarnContext(r.Context(), "Invalid access token", "error", err)
		return "", false
	}

	return claims.UserID, true
}

// AuthMiddleware пропускает только аутентифицированные запросы
// Остальные получают 401 с пустым телом
func AuthMiddleware(logger *slog.Logger, auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := auth.Authenticate(r)
			if !ok || accountID == "" {
				logger.DebugContext(r.Context(), "Unauthenticated request", "path", r.URL.Path)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			ctx := handlers.WithAccount(r.Context(), accountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
