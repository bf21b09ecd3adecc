package domain

import "time"

type UserRole string

const (
	RolePlayer UserRole = "player"
	RoleCoach  UserRole = "coach"
	RoleAdmin  UserRole = "admin"
)

type User struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	// Club/team membership is managed by the club module; nullable here
	// because freshly registered users belong to nothing yet.
	ClubID    *int64    `json:"club_id,omitempty"`
	TeamID    *int64    `json:"team_id,omitempty"`
	Onboarded bool      `json:"onboarded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
