// internal/wire/review_wire.go
package wire

import (
	"game-review/internal/adaptor"
	"game-review/pkg/middleware"
	"game-review/pkg/token"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(r *chi.Mux, handler *adaptor.ReviewHandler, codec *token.Codec, logger *zap.Logger) {
	r.Route("/api/reviews", func(r chi.Router) {
		// Public routes
		r.Get("/by-name/{name}", handler.GetReviewsByName)
		r.Get("/statistics/{name}", handler.GetGameStatistics)

		// Admin only
		r.With(middleware.RequireAdmin(codec, logger)).Get("/all", handler.GetAllReviews)

		// Authenticated routes, scoped to the caller's own reviews
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(codec, logger))

			r.Post("/", handler.CreateReview)
			r.Get("/my-reviews", handler.GetMyReviews)
			r.Get("/{name}", handler.GetMyReviewForGame)
			r.Put("/{name}", handler.UpdateMyReview)
			r.Delete("/{name}", handler.DeleteMyReview)
		})
	})
}
