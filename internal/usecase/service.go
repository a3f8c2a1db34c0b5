package usecase

import (
	"game-review/internal/data/repository"
	"game-review/pkg/mailer"
	"game-review/pkg/token"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	User   UserService
	Review ReviewService
}

func NewService(repo *repository.Repository, codec *token.Codec, mail mailer.Mailer, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, codec, mail, log),
		User:   NewUserService(repo.User, log),
		Review: NewReviewService(repo, log),
	}
}
