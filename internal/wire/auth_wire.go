// internal/wire/auth_wire.go
package wire

import (
	"game-review/internal/adaptor"
	"game-review/pkg/middleware"
	"game-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r *chi.Mux, handler *adaptor.AuthHandler, codec *token.Codec, logger *zap.Logger) {
	r.Route("/api/auth", func(r chi.Router) {
		// Public routes
		r.Post("/register", handler.Register)
		r.Post("/login", handler.Login)
		r.Post("/validate", handler.Validate)

		// Protected routes
		r.With(middleware.Authenticate(codec, logger)).Get("/profile", handler.GetProfile)
		r.With(middleware.RequireAdmin(codec, logger)).Get("/admin", handler.GetAdminPanel)
	})
}
