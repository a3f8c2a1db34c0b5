// internal/wire/wire.go
package wire

import (
	"net/http"
	"time"

	"game-review/internal/adaptor"
	"game-review/internal/data/repository"
	"game-review/internal/usecase"
	"game-review/pkg/mailer"
	"game-review/pkg/middleware"
	"game-review/pkg/token"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring constructs every dependency once, at process start, and
// threads them explicitly into the handlers and gates.
func Wiring(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, logger *zap.Logger) *App {
	codec := token.NewCodec(
		config.JWT.Secret,
		time.Duration(config.JWT.ExpiryHours)*time.Hour,
	)

	service := usecase.NewService(repo, codec, mail, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, codec, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	codec *token.Codec,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-access-token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Apply routes
	wireAuth(r, handler.Auth, codec, logger)
	wireUser(r, handler.User, codec, logger)
	wireReview(r, handler.Review, codec, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
