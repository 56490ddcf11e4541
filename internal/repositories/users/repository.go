// Package users provides the repository interface and types for
// persisting accounts.
package users

import (
	"context"

	"github.com/dmforge/initiative-api/internal/entities"
)

// Repository persists user accounts. Emails are unique, compared
// case-insensitively.
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	GetByEmail(ctx context.Context, input GetByEmailInput) (*GetByEmailOutput, error)
}

// CreateInput contains parameters for storing a new user
type CreateInput struct {
	User *entities.User
}

// CreateOutput contains the stored user
type CreateOutput struct {
	User *entities.User
}

// GetInput contains parameters for fetching a user by id
type GetInput struct {
	ID string
}

// GetOutput contains the fetched user
type GetOutput struct {
	User *entities.User
}

// GetByEmailInput contains parameters for fetching a user by email
type GetByEmailInput struct {
	Email string
}

// GetByEmailOutput contains the fetched user
type GetByEmailOutput struct {
	User *entities.User
}
