// Package auth provides authentication and authorization domain logic.
package auth

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"ferropos/internal/core/apperror"
)

// Roles known to the system.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents a system user.
type User struct {
	ID               int64     `db:"id" json:"id"`
	Username         string    `db:"username" json:"username"`
	Email            string    `db:"email" json:"email"`
	PasswordHash     string    `db:"password_hash" json:"-"`
	Role             string    `db:"role" json:"role"`
	RegistrationDate time.Time `db:"registration_date" json:"registrationDate"`
}

// NewUser creates a new user with a hashed password.
func NewUser(username, email, passwordHash, role string) *User {
	return &User{
		Username:         strings.TrimSpace(username),
		Email:            strings.TrimSpace(email),
		PasswordHash:     passwordHash,
		Role:             role,
		RegistrationDate: time.Now().UTC(),
	}
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate validates user data.
func (u *User) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Username) == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if u.Email != "" {
		if _, err := mail.ParseAddress(u.Email); err != nil {
			return apperror.NewValidation("invalid email address").WithDetail("field", "email")
		}
	}
	if u.Role != RoleAdmin && u.Role != RoleCashier {
		return apperror.NewValidation("invalid role").
			WithDetail("field", "role").
			WithDetail("value", u.Role)
	}
	return nil
}

// Credentials for login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Token is an issued access token with its expiry.
type Token struct {
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
	TokenType   string    `json:"tokenType"`
}

// RegisterRequest for administrative user creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}
