package adaptor

import (
	"net/http"

	"game-review/internal/usecase"
	"game-review/pkg/apperror"
	"game-review/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	User   *UserHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		User:   NewUserHandler(service.User, log),
		Review: NewReviewHandler(service.Review, log),
	}
}

// handleServiceError renders a typed service error. Services return
// *apperror.AppError, so the mapping to a status code lives in one place;
// anything untyped is treated as internal and kept opaque to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	if appErr.Type == apperror.InternalError {
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	log.Warn(operation+" rejected",
		zap.Int("status", appErr.StatusCode()),
		zap.String("message", appErr.Message),
	)
	utils.ResponseJSON(w, appErr.StatusCode(), false, appErr.Message, nil, nil)
}
