package middleware

import (
	"net/http"
	"strings"

	"game-review/pkg/token"
	"game-review/pkg/utils"

	"go.uber.org/zap"
)

// extractToken pulls the bearer token from the request. Three strategies,
// checked in order: the standard "Bearer <token>" header, a raw token in
// the Authorization header, and the x-access-token header used by tooling
// that cannot set Authorization.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "" {
			return parts[1]
		}

		// Raw token without the Bearer prefix
		if !strings.Contains(authHeader, " ") {
			return authHeader
		}
	}

	return r.Header.Get("x-access-token")
}

// Authenticate validates the bearer token and attaches the resulting
// claims to the request context as the authenticated principal.
func Authenticate(codec *token.Codec, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				utils.ResponseUnauthorized(w, "Missing authentication token")
				return
			}

			claims, err := codec.Verify(tokenString)
			if err != nil {
				logger.Warn("Token verification failed",
					zap.String("path", r.URL.Path),
					zap.Error(err))
				utils.ResponseUnauthorized(w, "Invalid authentication token")
				return
			}

			ctx := utils.SetPrincipalContext(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin composes Authenticate with a single admin predicate, so
// token extraction and verification exist in exactly one place. The
// is_admin flag comes from the token claims at issuance time.
func RequireAdmin(codec *token.Codec, logger *zap.Logger) func(http.Handler) http.Handler {
	authenticate := Authenticate(codec, logger)

	return func(next http.Handler) http.Handler {
		adminCheck := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := utils.GetPrincipalFromContext(r.Context())
			if !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			if !principal.IsAdmin {
				logger.Warn("Non-admin access attempt",
					zap.String("user_id", principal.UserID),
					zap.String("path", r.URL.Path))
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})

		return authenticate(adminCheck)
	}
}
