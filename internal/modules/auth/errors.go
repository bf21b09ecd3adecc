package auth

import "errors"

// The closed set of failures this module surfaces. Handlers map these
// onto HTTP codes; nothing else escapes the service untyped.
var (
	ErrValidation          = errors.New("invalid input")
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenReused  = errors.New("refresh token reused")
	ErrUserNotFound        = errors.New("user not found")
)
