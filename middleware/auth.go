package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/shivraj416/egram/pkg/logger"
)

// Authorizer decides whether a supplied admin credential is valid. Every
// mutating route passes through exactly one of these; swapping the scheme
// never touches the handlers.
type Authorizer interface {
	Authorize(credential string) bool
}

// SecretAuthorizer grants access when the credential equals one fixed shared
// secret. This matches the site's original single-password model.
type SecretAuthorizer struct {
	Secret string
}

func (a *SecretAuthorizer) Authorize(credential string) bool {
	return a.Secret != "" && credential == a.Secret
}

// TokenAuthorizer accepts an HMAC-signed JWT carrying an "admin" claim, for
// deployments that hand out per-admin tokens instead of the shared secret.
type TokenAuthorizer struct {
	Key string
}

func (a *TokenAuthorizer) Authorize(credential string) bool {
	if credential == "" || a.Key == "" {
		return false
	}

	token, err := jwt.Parse(credential, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(a.Key), nil
	})
	if err != nil || !token.Valid {
		logger.Sugar.Infof("Invalid admin token: %v", err)
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	isAdmin, _ := claims["admin"].(bool)
	return isAdmin
}

// AdminCredential pulls the caller's credential from the request. Checked in
// order: X-Admin-Token header, Authorization bearer token, then the "token"
// query parameter (the browser WebSocket API cannot set headers, and admin
// pages reuse the same extraction).
func AdminCredential(r *http.Request) string {
	if cred := r.Header.Get("X-Admin-Token"); cred != "" {
		return cred
	}
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// AdminOnly rejects the request with 401 before any load or mutation happens
// unless the authorizer accepts the supplied credential.
func AdminOnly(auth Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !auth.Authorize(AdminCredential(r)) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{
					"status":  "error",
					"message": "Unauthorized: invalid admin credential",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
