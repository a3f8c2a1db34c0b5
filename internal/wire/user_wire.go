// internal/wire/user_wire.go
package wire

import (
	"game-review/internal/adaptor"
	"game-review/pkg/middleware"
	"game-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r *chi.Mux, handler *adaptor.UserHandler, codec *token.Codec, logger *zap.Logger) {
	r.Route("/api/admin/users", func(r chi.Router) {
		// Admin only
		r.Use(middleware.RequireAdmin(codec, logger))

		r.Get("/", handler.GetAllUsers)
		r.Post("/", handler.CreateUser)
		r.Get("/{id}", handler.GetUser)
		r.Put("/{id}", handler.UpdateUser)
		r.Delete("/{id}", handler.DeleteUser)
	})
}
