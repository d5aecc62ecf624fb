package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// User is an admin account able to sign in to the CMS. Public visitors
// are anonymous; there are no roles.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
}

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
}
