package response

import (
	"time"

	"game-review/internal/data/entity"
)

type ReviewResponse struct {
	Name    string         `json:"name"`
	Rating  int            `json:"rating"`
	Opinion string         `json:"opinion"`
	RatedAt time.Time      `json:"rated_at"`
	User    ReviewerDetail `json:"user"`
}

// ReviewerDetail identifies the review author
type ReviewerDetail struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// GameStatistics aggregates every review of one game
type GameStatistics struct {
	GameName      string           `json:"gameName"`
	TotalReviews  int              `json:"totalReviews"`
	AverageRating float64          `json:"averageRating"`
	Reviews       []ReviewResponse `json:"reviews"`
}

// Helper converter
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		Name:    review.GameName,
		Rating:  review.Rating,
		Opinion: review.Opinion,
		RatedAt: review.RatedAt,
		User: ReviewerDetail{
			ID:        review.Reviewer.ID.String(),
			Email:     review.Reviewer.Email,
			FirstName: review.Reviewer.FirstName,
			LastName:  review.Reviewer.LastName,
		},
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = ReviewToResponse(review)
	}
	return responses
}
