package response

import (
	"game-review/internal/data/entity"
	"game-review/pkg/token"
)

// UserResponse is the public user projection: never the password hash,
// never the validation code.
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsActive  bool   `json:"is_active"`
	IsAdmin   bool   `json:"is_admin"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type AuthResponse struct {
	Message     string       `json:"message"`
	User        UserResponse `json:"user"`
	AccessToken string       `json:"access_token"`
}

// ProfileResponse is the authenticated caller's identity. Registered JWT
// claims (exp, iat) stay out of the API surface.
type ProfileResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	IsAdmin  bool   `json:"is_admin"`
}

// Helper converters

func PrincipalToResponse(claims *token.Claims) ProfileResponse {
	return ProfileResponse{
		ID:       claims.UserID,
		Email:    claims.Email,
		FullName: claims.FullName,
		IsAdmin:  claims.IsAdmin,
	}
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsActive:  user.IsActive,
		IsAdmin:   user.IsAdmin,
	}
}
