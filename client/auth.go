package client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// setAuth attaches the configured bearer token to the request. An
// expired token is still attached (the server is authoritative), but a
// warning is logged so the operator sees why calls start failing.
func (c *Client) setAuth(req *http.Request) {
	if c.token == "" {
		return
	}
	if TokenExpired(c.token, time.Now()) {
		slog.Warn("bearer token is expired", "path", req.URL.Path)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
}

// TokenExpired reports whether the JWT bearer token carries an exp claim
// in the past. The signature is not verified here; only the server can
// do that. A token that does not parse as a JWT, or carries no exp
// claim, is treated as not expired and left for the server to judge.
func TokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
