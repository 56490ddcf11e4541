// Package groups provides the repository interface and types for
// persisting player groups.
package groups

import (
	"context"

	"github.com/dmforge/initiative-api/internal/entities"
)

// Repository persists saved party rosters.
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
	ListForOwner(ctx context.Context, input ListForOwnerInput) (*ListForOwnerOutput, error)
}

// CreateInput contains parameters for storing a new group
type CreateInput struct {
	Group *entities.PlayerGroup
}

// CreateOutput contains the stored group
type CreateOutput struct {
	Group *entities.PlayerGroup
}

// GetInput contains parameters for fetching a group
type GetInput struct {
	ID string
}

// GetOutput contains the fetched group
type GetOutput struct {
	Group *entities.PlayerGroup
}

// UpdateInput contains parameters for replacing a group
type UpdateInput struct {
	Group *entities.PlayerGroup
}

// UpdateOutput contains the updated group
type UpdateOutput struct {
	Group *entities.PlayerGroup
}

// DeleteInput contains parameters for deleting a group
type DeleteInput struct {
	ID string
}

// DeleteOutput is the result of deleting a group
type DeleteOutput struct{}

// ListForOwnerInput contains parameters for listing an owner's groups
type ListForOwnerInput struct {
	OwnerID string
}

// ListForOwnerOutput contains the owner's groups
type ListForOwnerOutput struct {
	Groups []*entities.PlayerGroup
}
