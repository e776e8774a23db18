package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSecretAuthorizer(t *testing.T) {
	auth := &SecretAuthorizer{Secret: "shiva"}

	assert.True(t, auth.Authorize("shiva"))
	assert.False(t, auth.Authorize("Shiva"))
	assert.False(t, auth.Authorize(""))

	// An empty configured secret must never authorize anything.
	empty := &SecretAuthorizer{}
	assert.False(t, empty.Authorize(""))
}

func signToken(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestTokenAuthorizer(t *testing.T) {
	auth := &TokenAuthorizer{Key: "jwt-secret"}

	assert.True(t, auth.Authorize(signToken(t, "jwt-secret", jwt.MapClaims{"admin": true})))
	assert.False(t, auth.Authorize(signToken(t, "jwt-secret", jwt.MapClaims{"admin": false})))
	assert.False(t, auth.Authorize(signToken(t, "jwt-secret", jwt.MapClaims{})))
	assert.False(t, auth.Authorize(signToken(t, "other-key", jwt.MapClaims{"admin": true})))
	assert.False(t, auth.Authorize("not-a-token"))
	assert.False(t, auth.Authorize(""))
}

func TestAdminCredentialExtractionOrder(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/admin/members?token=from-query", nil)
	req.Header.Set("Authorization", "Bearer from-bearer")
	req.Header.Set("X-Admin-Token", "from-header")
	assert.Equal(t, "from-header", AdminCredential(req))

	req.Header.Del("X-Admin-Token")
	assert.Equal(t, "from-bearer", AdminCredential(req))

	req.Header.Del("Authorization")
	assert.Equal(t, "from-query", AdminCredential(req))
}

func TestAdminOnlyMiddleware(t *testing.T) {
	auth := &SecretAuthorizer{Secret: "shiva"}
	var reached bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	})
	protected := AdminOnly(auth)(next)

	req := httptest.NewRequest(http.MethodPost, "/admin/members", nil)
	req.Header.Set("X-Admin-Token", "wrong")
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached, "handler must not run on bad credential")
	assert.JSONEq(t, `{"status":"error","message":"Unauthorized: invalid admin credential"}`, rec.Body.String())

	req.Header.Set("X-Admin-Token", "shiva")
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, reached)
}
