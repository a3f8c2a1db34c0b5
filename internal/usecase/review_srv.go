package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"game-review/internal/data/entity"
	"game-review/internal/data/repository"
	"game-review/internal/dto/request"
	"game-review/internal/dto/response"
	"game-review/pkg/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetMyReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	GetAllReviews(ctx context.Context) ([]response.ReviewResponse, error)
	GetReviewsByName(ctx context.Context, gameName string) ([]response.ReviewResponse, error)
	GetMyReviewForGame(ctx context.Context, userID, gameName string) (*response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, gameName string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, gameName string) error

	// Stats
	GetGameStatistics(ctx context.Context, gameName string) (*response.GameStatistics, error)
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) CreateReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	// One review per user per game
	existingReview, err := s.repo.Review.FindByUserAndName(ctx, userUUID, req.GameName)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to check existing review", err)
	}
	if existingReview != nil {
		return nil, apperror.NewConflictError(
			fmt.Sprintf("You have already reviewed %q. Use the update operation to change your review.", req.GameName), nil)
	}

	review := &entity.Review{
		UserID:   userUUID,
		GameName: req.GameName,
		Rating:   req.Rating,
		Opinion:  req.Opinion,
		RatedAt:  time.Now(),
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("game_name", req.GameName),
		)
		return nil, apperror.NewInternalError("Failed to create review", err)
	}

	// Re-read to pick up the reviewer projection
	created, err := s.repo.Review.FindByUserAndName(ctx, userUUID, req.GameName)
	if err != nil || created == nil {
		s.log.Error("Failed to reload created review", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to reload review", err)
	}

	s.log.Info("Review created",
		zap.String("user_id", userID),
		zap.String("game_name", req.GameName),
		zap.Int("rating", req.Rating),
	)

	resp := response.ReviewToResponse(created)
	return &resp, nil
}

func (s *reviewService) GetMyReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	reviews, err := s.repo.Review.FindAllByUser(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user reviews", zap.Error(err), zap.String("user_id", userID))
		return nil, apperror.NewInternalError("Failed to get reviews", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetAllReviews(ctx context.Context) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindAll(ctx)
	if err != nil {
		s.log.Error("Failed to get all reviews", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to get reviews", err)
	}

	s.log.Info("All reviews retrieved", zap.Int("count", len(reviews)))

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetReviewsByName(ctx context.Context, gameName string) ([]response.ReviewResponse, error) {
	reviews, err := s.repo.Review.FindByName(ctx, gameName)
	if err != nil {
		s.log.Error("Failed to get reviews by game", zap.Error(err), zap.String("game_name", gameName))
		return nil, apperror.NewInternalError("Failed to get reviews", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetMyReviewForGame(ctx context.Context, userID, gameName string) (*response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	review, err := s.repo.Review.FindByUserAndName(ctx, userUUID, gameName)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("game_name", gameName))
		return nil, apperror.NewInternalError("Failed to find review", err)
	}
	if review == nil {
		return nil, apperror.NewNotFoundError(
			fmt.Sprintf("No review of yours found for %q", gameName), nil)
	}

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, gameName string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	review, err := s.repo.Review.FindByUserAndName(ctx, userUUID, gameName)
	if err != nil {
		s.log.Error("Failed to find review for update", zap.Error(err), zap.String("game_name", gameName))
		return nil, apperror.NewInternalError("Failed to find review", err)
	}
	if review == nil {
		return nil, apperror.NewNotFoundError(
			fmt.Sprintf("No review found for %q. Create one first.", gameName), nil)
	}

	// Only supplied fields change
	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Opinion != nil {
		review.Opinion = *req.Opinion
	}

	// rated_at always moves forward on update
	review.RatedAt = time.Now()

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("game_name", gameName),
		)
		return nil, apperror.NewInternalError("Failed to update review", err)
	}

	s.log.Info("Review updated",
		zap.String("user_id", userID),
		zap.String("game_name", gameName),
	)

	resp := response.ReviewToResponse(review)
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, gameName string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return apperror.NewBadRequestError("Invalid user ID", err)
	}

	review, err := s.repo.Review.FindByUserAndName(ctx, userUUID, gameName)
	if err != nil {
		s.log.Error("Failed to find review for delete", zap.Error(err), zap.String("game_name", gameName))
		return apperror.NewInternalError("Failed to find review", err)
	}
	if review == nil {
		return apperror.NewNotFoundError(
			fmt.Sprintf("No review found for %q", gameName), nil)
	}

	if err := s.repo.Review.Delete(ctx, userUUID, gameName); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("game_name", gameName),
		)
		return apperror.NewInternalError("Failed to delete review", err)
	}

	return nil
}

func (s *reviewService) GetGameStatistics(ctx context.Context, gameName string) (*response.GameStatistics, error) {
	reviews, err := s.repo.Review.FindByName(ctx, gameName)
	if err != nil {
		s.log.Error("Failed to get reviews for stats", zap.Error(err), zap.String("game_name", gameName))
		return nil, apperror.NewInternalError("Failed to get reviews", err)
	}

	avgRating, err := s.repo.Review.AverageRating(ctx, gameName)
	if err != nil {
		s.log.Error("Failed to get average rating", zap.Error(err), zap.String("game_name", gameName))
		return nil, apperror.NewInternalError("Failed to get average rating", err)
	}

	return &response.GameStatistics{
		GameName:      gameName,
		TotalReviews:  len(reviews),
		AverageRating: math.Round(avgRating*100) / 100, // half-up to 2 decimals
		Reviews:       response.ReviewsToResponse(reviews),
	}, nil
}
