package auth

import "clubhub/internal/domain"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email" validate:"required,email"`
	Password  string `json:"password" binding:"required,min=8" validate:"required,min=8"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=player coach"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token,omitempty"`
}

// TokenPair is what every successful register/login/refresh hands back.
// Expiry values are seconds so clients can schedule renewal without
// parsing the tokens.
type TokenPair struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	AccessExpiresIn  int64  `json:"access_token_expires_in"`
	RefreshExpiresIn int64  `json:"refresh_token_expires_in"`
}

type AuthResult struct {
	User   *domain.User
	Tokens TokenPair
}

type LogoutResult struct {
	Revoked int64
}

type UserPublic struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	ClubID    *int64 `json:"club_id,omitempty"`
	TeamID    *int64 `json:"team_id,omitempty"`
	Onboarded bool   `json:"onboarded"`
}

func toUserPublic(u *domain.User) UserPublic {
	return UserPublic{
		ID:        u.ID,
		Email:     u.Email,
		Role:      string(u.Role),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		ClubID:    u.ClubID,
		TeamID:    u.TeamID,
		Onboarded: u.Onboarded,
	}
}
