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
	"game-review/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService interface {
	GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error)
	GetUser(ctx context.Context, userID string) (*response.UserResponse, error)
	CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	log      *zap.Logger
}

func NewUserService(userRepo repository.UserRepository, log *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		log:      log.With(zap.String("service", "user")),
	}
}

func (us *userService) GetAllUsers(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.UserResponse], error) {
	// Set defaults
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PerPage < 1 {
		req.PerPage = 10
	}
	if req.PerPage > 100 {
		req.PerPage = 100
	}

	users, err := us.userRepo.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		us.log.Error("Failed to get all users",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, apperror.NewInternalError("Failed to get users", err)
	}

	total, err := us.userRepo.CountAll(ctx)
	if err != nil {
		us.log.Error("Failed to count users", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to count users", err)
	}

	userResponses := make([]response.UserResponse, len(users))
	for i, user := range users {
		userResponses[i] = response.UserToResponse(user)
	}

	us.log.Info("Users retrieved",
		zap.Int("count", len(users)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(userResponses, req.Page, req.PerPage, total), nil
}

func (us *userService) GetUser(ctx context.Context, userID string) (*response.UserResponse, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user", zap.Error(err), zap.String("id", userID))
		return nil, apperror.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

// CreateUser is the admin-gated creation path. It may grant is_admin and
// skip the validation flow by creating the account active; an inactive
// account still gets a validation code so it can be activated later.
func (us *userService) CreateUser(ctx context.Context, req *request.CreateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewBadRequestError(utils.FormatValidationErrors(errs), nil)
	}

	existingUser, err := us.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		us.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to check email", err)
	}
	if existingUser != nil {
		return nil, apperror.NewConflictError("A user with this email already exists", nil)
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		us.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.NewInternalError("Failed to process password", err)
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Email:        req.Email,
		PasswordHash: hashedPassword,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		IsActive:     req.IsActive,
		IsAdmin:      req.IsAdmin,
	}

	if !req.IsActive {
		code := uuid.NewString()
		user.ValidationCode = &code
	}

	if err := us.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("A user with this email already exists", err)
		}
		us.log.Error("Failed to create user", zap.Error(err), zap.String("email", req.Email))
		return nil, apperror.NewInternalError("Failed to create user", err)
	}

	us.log.Info("User created by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.Bool("is_admin", user.IsAdmin),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// UpdateUser is the admin-gated update path. Only supplied fields change.
// Flipping is_active keeps the activation invariant: an active account
// never carries a validation code, an inactive one always does.
func (us *userService) UpdateUser(ctx context.Context, userID string, req *request.UpdateUserRequest) (*response.UserResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, apperror.NewBadRequestError(utils.FormatValidationErrors(errs), nil)
	}

	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid user ID", err)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for update", zap.Error(err), zap.String("id", userID))
		return nil, apperror.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User not found", nil)
	}

	if req.Email != nil && *req.Email != user.Email {
		existingUser, err := us.userRepo.FindByEmail(ctx, *req.Email)
		if err != nil {
			us.log.Error("Failed to check email", zap.Error(err), zap.String("email", *req.Email))
			return nil, apperror.NewInternalError("Failed to check email", err)
		}
		if existingUser != nil {
			return nil, apperror.NewConflictError("A user with this email already exists", nil)
		}
		user.Email = *req.Email
	}

	if req.Password != nil {
		hashedPassword, err := utils.HashPassword(*req.Password)
		if err != nil {
			us.log.Error("Failed to hash password", zap.Error(err))
			return nil, apperror.NewInternalError("Failed to process password", err)
		}
		user.PasswordHash = hashedPassword
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.IsAdmin != nil {
		user.IsAdmin = *req.IsAdmin
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
		if user.IsActive {
			user.ValidationCode = nil
		} else if user.ValidationCode == nil {
			code := uuid.NewString()
			user.ValidationCode = &code
		}
	}

	user.UpdatedAt = time.Now()

	if err := us.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, apperror.NewConflictError("A user with this email already exists", err)
		}
		us.log.Error("Failed to update user", zap.Error(err), zap.String("id", userID))
		return nil, apperror.NewInternalError("Failed to update user", err)
	}

	us.log.Info("User updated by admin",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
	)

	resp := response.UserToResponse(user)
	return &resp, nil
}

// DeleteUser removes the account; the user's reviews cascade with it
func (us *userService) DeleteUser(ctx context.Context, userID string) error {
	id, err := uuid.Parse(userID)
	if err != nil {
		return apperror.NewBadRequestError("Invalid user ID", err)
	}

	user, err := us.userRepo.FindByID(ctx, id)
	if err != nil {
		us.log.Error("Failed to get user for delete", zap.Error(err), zap.String("id", userID))
		return apperror.NewInternalError("Failed to get user", err)
	}
	if user == nil {
		return apperror.NewNotFoundError("User not found", nil)
	}

	if err := us.userRepo.Delete(ctx, id); err != nil {
		us.log.Error("Failed to delete user", zap.Error(err), zap.String("id", userID))
		return apperror.NewInternalError("Failed to delete user", err)
	}

	us.log.Info("User deleted", zap.String("user_id", id.String()), zap.String("email", user.Email))
	return nil
}
