package adaptor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"game-review/pkg/token"
	"game-review/pkg/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requestWithPrincipal(method, target string, isAdmin bool) *http.Request {
	claims := &token.Claims{
		UserID:   "3e2dd6e1-64d8-4564-b85e-7c54a24a2e16",
		Email:    "alice@example.com",
		FullName: "Alice Smith",
		IsAdmin:  isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(utils.SetPrincipalContext(req.Context(), claims))
}

func TestGetProfileOmitsTokenInternals(t *testing.T) {
	handler := NewAuthHandler(nil, zap.NewNop())

	w := httptest.NewRecorder()
	handler.GetProfile(w, requestWithPrincipal(http.MethodGet, "/api/auth/profile", false))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Status bool           `json:"status"`
		Data   map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.True(t, body.Status)
	assert.Equal(t, "3e2dd6e1-64d8-4564-b85e-7c54a24a2e16", body.Data["id"])
	assert.Equal(t, "alice@example.com", body.Data["email"])
	assert.Equal(t, "Alice Smith", body.Data["fullName"])
	assert.Equal(t, false, body.Data["is_admin"])

	// Registered JWT claims never reach the client
	assert.NotContains(t, body.Data, "exp")
	assert.NotContains(t, body.Data, "iat")
}

func TestGetAdminPanelOmitsTokenInternals(t *testing.T) {
	handler := NewAuthHandler(nil, zap.NewNop())

	w := httptest.NewRecorder()
	handler.GetAdminPanel(w, requestWithPrincipal(http.MethodGet, "/api/auth/admin", true))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			User map[string]any `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, true, body.Data.User["is_admin"])
	assert.NotContains(t, body.Data.User, "exp")
	assert.NotContains(t, body.Data.User, "iat")
}

func TestGetProfileWithoutPrincipal(t *testing.T) {
	handler := NewAuthHandler(nil, zap.NewNop())

	w := httptest.NewRecorder()
	handler.GetProfile(w, httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
