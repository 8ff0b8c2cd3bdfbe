package jwt

import (
	"net/http"
	"strings"
)

// CookieName is the cookie carrying the access token for browser clients
const CookieName = "token"

// TokenFromRequest extracts the access token from the Authorization header
// ("Bearer <token>") or, if there is no header, from the token cookie.
// A malformed Authorization header is not retried against the cookie.
func TokenFromRequest(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	return cookie.Value, true
}
