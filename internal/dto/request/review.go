package request

type CreateReviewRequest struct {
	GameName string `json:"name" validate:"required,min=1"`
	Rating   int    `json:"rating" validate:"min=0,max=10"`
	Opinion  string `json:"opinion" validate:"required,min=1"`
}

// UpdateReviewRequest changes only the fields that are present
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
	Opinion *string `json:"opinion,omitempty" validate:"omitempty,min=1"`
}
