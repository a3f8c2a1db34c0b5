package repository

import (
	"context"
	"fmt"

	"game-review/internal/data/entity"
	"game-review/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByUserAndName(ctx context.Context, userID uuid.UUID, gameName string) (*entity.Review, error)
	FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	FindAll(ctx context.Context) ([]*entity.Review, error)
	FindByName(ctx context.Context, gameName string) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) error
	Delete(ctx context.Context, userID uuid.UUID, gameName string) error

	// Business queries
	AverageRating(ctx context.Context, gameName string) (float64, error)
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

// reviewColumns joins the owning user so projections carry the reviewer
const reviewColumns = `
	SELECT r.user_id, r.game_name, r.rating, r.opinion, r.rated_at,
	       u.id, u.email, u.first_name, u.last_name
	FROM reviews r
	JOIN users u ON u.id = r.user_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	var review entity.Review
	err := row.Scan(
		&review.UserID,
		&review.GameName,
		&review.Rating,
		&review.Opinion,
		&review.RatedAt,
		&review.Reviewer.ID,
		&review.Reviewer.Email,
		&review.Reviewer.FirstName,
		&review.Reviewer.LastName,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (user_id, game_name, rating, opinion, rated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		review.UserID,
		review.GameName,
		review.Rating,
		review.Opinion,
		review.RatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("game_name", review.GameName),
		)
		return fmt.Errorf("create review for %q by user %s: %w",
			review.GameName, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByUserAndName(ctx context.Context, userID uuid.UUID, gameName string) (*entity.Review, error) {
	query := reviewColumns + `
		WHERE r.user_id = $1 AND r.game_name = $2
		LIMIT 1
	`

	review, err := scanReview(r.db.QueryRow(ctx, query, userID, gameName))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by user and game",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("game_name", gameName),
		)
		return nil, fmt.Errorf("find review for %q by user %s: %w",
			gameName, userID.String(), err)
	}

	return review, nil
}

func (r *reviewRepository) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := reviewColumns + `
		WHERE r.user_id = $1
		ORDER BY r.rated_at DESC
	`

	return r.queryReviews(ctx, query, userID)
}

func (r *reviewRepository) FindAll(ctx context.Context) ([]*entity.Review, error) {
	query := reviewColumns + `
		ORDER BY r.rated_at DESC
	`

	return r.queryReviews(ctx, query)
}

func (r *reviewRepository) FindByName(ctx context.Context, gameName string) ([]*entity.Review, error) {
	query := reviewColumns + `
		WHERE r.game_name = $1
		ORDER BY r.rated_at DESC
	`

	return r.queryReviews(ctx, query, gameName)
}

func (r *reviewRepository) queryReviews(ctx context.Context, query string, args ...any) ([]*entity.Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reviews", zap.Error(err))
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate review rows: %w", err)
	}

	return reviews, nil
}

func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	query := `
		UPDATE reviews
		SET rating = $3, opinion = $4, rated_at = $5
		WHERE user_id = $1 AND game_name = $2
	`

	result, err := r.db.Exec(ctx, query,
		review.UserID,
		review.GameName,
		review.Rating,
		review.Opinion,
		review.RatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("game_name", review.GameName),
		)
		return fmt.Errorf("update review for %q by user %s: %w",
			review.GameName, review.UserID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review for %q by user %s not found",
			review.GameName, review.UserID.String())
	}

	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, userID uuid.UUID, gameName string) error {
	query := `DELETE FROM reviews WHERE user_id = $1 AND game_name = $2`

	result, err := r.db.Exec(ctx, query, userID, gameName)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("game_name", gameName),
		)
		return fmt.Errorf("delete review for %q by user %s: %w",
			gameName, userID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review for %q by user %s not found",
			gameName, userID.String())
	}

	r.log.Info("Review deleted",
		zap.String("user_id", userID.String()),
		zap.String("game_name", gameName))
	return nil
}

// AverageRating returns the arithmetic mean of ratings for a game,
// or 0 when the game has no reviews.
func (r *reviewRepository) AverageRating(ctx context.Context, gameName string) (float64, error) {
	query := `SELECT COALESCE(AVG(rating), 0) FROM reviews WHERE game_name = $1`

	var avgRating float64
	err := r.db.QueryRow(ctx, query, gameName).Scan(&avgRating)
	if err != nil {
		r.log.Error("Failed to get average rating",
			zap.Error(err),
			zap.String("game_name", gameName),
		)
		return 0, fmt.Errorf("get average rating for %q: %w", gameName, err)
	}

	return avgRating, nil
}
