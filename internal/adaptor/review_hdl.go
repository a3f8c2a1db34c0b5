package adaptor

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"game-review/internal/dto/request"
	"game-review/internal/usecase"
	"game-review/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// gameNameParam decodes the {name} URL segment; game titles carry
// spaces and punctuation, so the segment arrives percent-encoded.
func gameNameParam(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// CreateReview handles POST /api/reviews (authenticated)
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.CreateReview(r.Context(), principal.UserID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create review")
		return
	}

	utils.ResponseCreated(w, "Review created successfully", review)
}

// GetMyReviews handles GET /api/reviews/my-reviews (authenticated)
func (h *ReviewHandler) GetMyReviews(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviews, err := h.service.GetMyReviews(r.Context(), principal.UserID)
	if err != nil {
		handleServiceError(w, h.log, err, "get my reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetAllReviews handles GET /api/reviews/all (admin only)
func (h *ReviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.GetAllReviews(r.Context())
	if err != nil {
		handleServiceError(w, h.log, err, "get all reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetReviewsByName handles GET /api/reviews/by-name/{name} (public)
func (h *ReviewHandler) GetReviewsByName(w http.ResponseWriter, r *http.Request) {
	name := gameNameParam(r)
	if name == "" {
		utils.ResponseBadRequest(w, "Game name is required", nil)
		return
	}

	reviews, err := h.service.GetReviewsByName(r.Context(), name)
	if err != nil {
		handleServiceError(w, h.log, err, "get reviews by game")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetGameStatistics handles GET /api/reviews/statistics/{name} (public)
func (h *ReviewHandler) GetGameStatistics(w http.ResponseWriter, r *http.Request) {
	name := gameNameParam(r)
	if name == "" {
		utils.ResponseBadRequest(w, "Game name is required", nil)
		return
	}

	stats, err := h.service.GetGameStatistics(r.Context(), name)
	if err != nil {
		handleServiceError(w, h.log, err, "get game statistics")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetMyReviewForGame handles GET /api/reviews/{name} (authenticated)
func (h *ReviewHandler) GetMyReviewForGame(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	name := gameNameParam(r)
	if name == "" {
		utils.ResponseBadRequest(w, "Game name is required", nil)
		return
	}

	review, err := h.service.GetMyReviewForGame(r.Context(), principal.UserID, name)
	if err != nil {
		handleServiceError(w, h.log, err, "get my review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// UpdateMyReview handles PUT /api/reviews/{name} (authenticated)
func (h *ReviewHandler) UpdateMyReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	name := gameNameParam(r)
	if name == "" {
		utils.ResponseBadRequest(w, "Game name is required", nil)
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), principal.UserID, name, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteMyReview handles DELETE /api/reviews/{name} (authenticated)
func (h *ReviewHandler) DeleteMyReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := utils.GetPrincipalFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	name := gameNameParam(r)
	if name == "" {
		utils.ResponseBadRequest(w, "Game name is required", nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), principal.UserID, name); err != nil {
		handleServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf("Your review of %q has been deleted", name), nil)
}
