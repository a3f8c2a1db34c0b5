package repository

import (
	"game-review/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User   UserRepository
	Review ReviewRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Review: NewReviewRepository(db, log),
	}
}
