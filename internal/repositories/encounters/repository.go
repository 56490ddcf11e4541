// Package encounters provides the repository interface and types for
// persisting prepared encounters.
package encounters

import (
	"context"

	"github.com/dmforge/initiative-api/internal/entities"
)

// Repository persists encounters. Unlike battles, encounters are prep
// material and do not expire.
type Repository interface {
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)
	Get(ctx context.Context, input GetInput) (*GetOutput, error)
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)
	ListForOwner(ctx context.Context, input ListForOwnerInput) (*ListForOwnerOutput, error)
}

// CreateInput contains parameters for storing a new encounter
type CreateInput struct {
	Encounter *entities.Encounter
}

// CreateOutput contains the stored encounter
type CreateOutput struct {
	Encounter *entities.Encounter
}

// GetInput contains parameters for fetching an encounter
type GetInput struct {
	ID string
}

// GetOutput contains the fetched encounter
type GetOutput struct {
	Encounter *entities.Encounter
}

// UpdateInput contains parameters for replacing an encounter
type UpdateInput struct {
	Encounter *entities.Encounter
}

// UpdateOutput contains the updated encounter
type UpdateOutput struct {
	Encounter *entities.Encounter
}

// DeleteInput contains parameters for deleting an encounter
type DeleteInput struct {
	ID string
}

// DeleteOutput is the result of deleting an encounter
type DeleteOutput struct{}

// ListForOwnerInput contains parameters for listing an owner's encounters
type ListForOwnerInput struct {
	OwnerID string
}

// ListForOwnerOutput contains the owner's encounters
type ListForOwnerOutput struct {
	Encounters []*entities.Encounter
}
