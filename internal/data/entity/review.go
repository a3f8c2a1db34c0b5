package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is identified by (user_id, game_name): at most one review per
// user per game, enforced by the composite primary key. RatedAt is set
// at creation and refreshed on every update.
type Review struct {
	UserID   uuid.UUID `db:"user_id"`
	GameName string    `db:"game_name"`
	Rating   int       `db:"rating"` // 0-10
	Opinion  string    `db:"opinion"`
	RatedAt  time.Time `db:"rated_at"`

	// Reviewer fields joined from users for response projections
	Reviewer Reviewer
}

// Reviewer is the public slice of the owning user
type Reviewer struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
}
