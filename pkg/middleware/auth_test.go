package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"game-review/pkg/token"
	"game-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestCodec(t *testing.T) *token.Codec {
	t.Helper()
	return token.NewCodec("test-secret", time.Hour)
}

func signFor(t *testing.T, codec *token.Codec, isAdmin bool) string {
	t.Helper()
	signed, err := codec.Sign("3e2dd6e1-64d8-4564-b85e-7c54a24a2e16", "alice@example.com", "Alice Smith", isAdmin)
	require.NoError(t, err)
	return signed
}

// echoPrincipal writes the authenticated user's ID, proving the claims
// made it into the request context.
func echoPrincipal(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Write([]byte(principal.UserID))
}

func TestAuthenticateBearerHeader(t *testing.T) {
	codec := newTestCodec(t)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, codec, false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "3e2dd6e1-64d8-4564-b85e-7c54a24a2e16", w.Body.String())
}

func TestAuthenticateRawAuthorizationHeader(t *testing.T) {
	codec := newTestCodec(t)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", signFor(t, codec, false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateAccessTokenHeader(t *testing.T) {
	codec := newTestCodec(t)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("x-access-token", signFor(t, codec, false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticateMissingToken(t *testing.T) {
	codec := newTestCodec(t)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateInvalidToken(t *testing.T) {
	codec := newTestCodec(t)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateWrongSecret(t *testing.T) {
	codec := newTestCodec(t)
	other := token.NewCodec("another-secret", time.Hour)
	handler := Authenticate(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, other, false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	codec := newTestCodec(t)
	handler := RequireAdmin(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, codec, true))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRejectsNonAdmin(t *testing.T) {
	codec := newTestCodec(t)
	handler := RequireAdmin(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signFor(t, codec, false))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminMissingTokenIsUnauthorized(t *testing.T) {
	codec := newTestCodec(t)
	handler := RequireAdmin(codec, zap.NewNop())(http.HandlerFunc(echoPrincipal))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	// Authentication fails before the admin check runs
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExtractTokenPrecedence(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer from-auth")
	req.Header.Set("x-access-token", "from-fallback")

	assert.Equal(t, "from-auth", extractToken(req))
}

func TestExtractTokenMalformedBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer one two")

	// Too many parts is neither a Bearer header nor a raw token
	assert.Equal(t, "", extractToken(req))
}
