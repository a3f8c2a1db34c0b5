package usecase

import (
	"context"
	"errors"
	"time"

	"game-review/internal/data/entity"
	"game-review/internal/data/repository"
	"game-review/internal/dto/request"
	"game-review/internal/dto/response"
	"game-review/pkg/apperror"
	"game-review/pkg/mailer"
	"game-review/pkg/token"
	"game-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// loginFailedMessage is shared by the unknown-email, inactive-account and
// wrong-password cases so the response never reveals which one occurred.
const loginFailedMessage = "Incorrect email or password"

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Validate(ctx context.Context, req *request.ValidateRequest) (*response.AuthResponse, error)
}

type authService struct {
	repo  *repository.Repository
	codec *token.Codec
	mail  mailer.Mailer
	log   *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	codec *token.Codec,
	mail mailer.Mailer,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:  repo,
		codec: codec,
		mail:  mail,
		log:   log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.RegisterResponse, error) {
	// 1. Check email is not already taken
	existingUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to check email", err)
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("A user with this email already exists", nil)
	}

	// 2. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to process password", err)
	}

	// 3. Create user entity, pending validation
	now := time.Now()
	validationCode := uuid.NewString()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:          req.Email,
		PasswordHash:   hashedPassword,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		IsActive:       false,
		IsAdmin:        false,
		ValidationCode: &validationCode,
	}

	// 4. Save user. A concurrent registration can slip past the pre-check,
	// so the unique index is the backstop.
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("A user with this email already exists", err)
		}
		s.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to create account", err)
	}

	// 5. Send validation email (fire-and-forget; registration already succeeded)
	go s.sendValidationEmail(user.Email, user.FirstName, validationCode)

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.RegisterResponse{
		Message: "User created successfully. A validation email has been sent.",
		User:    response.UserToResponse(user),
	}, nil
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	// 1. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for login", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to find user", err)
	}
	if user == nil {
		s.log.Warn("Login for unknown email", zap.String("email", req.Email))
		return nil, apperror.NewUnauthorizedError(loginFailedMessage, nil)
	}

	// 2. Account must be validated first
	if !user.IsActive {
		s.log.Warn("Login on non-activated account", zap.String("user_id", user.ID.String()))
		return nil, apperror.NewUnauthorizedError(loginFailedMessage, nil)
	}

	// 3. Check password
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperror.NewUnauthorizedError(loginFailedMessage, nil)
	}

	// 4. Issue token
	accessToken, err := s.makeToken(user)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.NewInternalError("Failed to create token", err)
	}

	s.log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return &response.AuthResponse{
		Message:     "Login successful",
		User:        response.UserToResponse(user),
		AccessToken: accessToken,
	}, nil
}

func (s *authService) Validate(ctx context.Context, req *request.ValidateRequest) (*response.AuthResponse, error) {
	// 1. Find user by email
	user, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to find user for validation", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to find user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}

	// 2. Already validated accounts stay untouched
	if user.IsActive {
		return nil, apperror.NewBadRequestError("Account already validated", nil)
	}

	// 3. The code must match exactly
	if user.ValidationCode == nil || *user.ValidationCode != req.ValidationCode {
		return nil, apperror.NewBadRequestError("Incorrect validation code", nil)
	}

	// 4. Activate: is_active and validation_code flip together
	if err := s.repo.User.Activate(ctx, req.Email); err != nil {
		s.log.Error("Failed to activate user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to activate account", err)
	}

	// 5. Re-read the activated record before issuing the token
	updatedUser, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil || updatedUser == nil {
		s.log.Error("Failed to reload activated user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to reload account", err)
	}

	accessToken, err := s.makeToken(updatedUser)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", updatedUser.ID.String()))
		return nil, apperror.NewInternalError("Failed to create token", err)
	}

	s.log.Info("Account validated",
		zap.String("user_id", updatedUser.ID.String()),
		zap.String("email", updatedUser.Email))

	return &response.AuthResponse{
		Message:     "Account validated successfully",
		User:        response.UserToResponse(updatedUser),
		AccessToken: accessToken,
	}, nil
}

// ==================== HELPER METHODS ====================

func (s *authService) makeToken(user *entity.User) (string, error) {
	return s.codec.Sign(user.ID.String(), user.Email, user.FullName(), user.IsAdmin)
}

func (s *authService) sendValidationEmail(email, firstName, code string) {
	if err := s.mail.SendValidationCode(email, firstName, code); err != nil {
		// Logged and swallowed: mail delivery never fails a registration
		s.log.Error("Failed to send validation email",
			zap.Error(err),
			zap.String("email", email))
	}
}
