// Package battles provides the repository interface and types for
// persisting battles.
package battles

import (
	"context"
	"time"

	"github.com/dmforge/initiative-api/internal/entities"
)

// Repository persists battles. Writes are last-write-wins: concurrent
// operators editing the same battle resolve at the document level, the
// repository does no conflict merging.
type Repository interface {
	// Create stores a new battle with a TTL.
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get fetches a battle by id.
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// GetActive fetches the owner's active battle, if any.
	GetActive(ctx context.Context, input GetActiveInput) (*GetActiveOutput, error)

	// GetLatestActive fetches the most recently updated active battle
	// across all owners. Backs the public polling snapshot.
	GetLatestActive(ctx context.Context, input GetLatestActiveInput) (*GetLatestActiveOutput, error)

	// Update replaces a stored battle and refreshes its TTL.
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete removes a battle and its index entries.
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListForOwner returns all of an owner's live battles.
	ListForOwner(ctx context.Context, input ListForOwnerInput) (*ListForOwnerOutput, error)
}

// CreateInput contains parameters for storing a new battle
type CreateInput struct {
	Battle *entities.Battle
	TTL    time.Duration
}

// CreateOutput contains the stored battle
type CreateOutput struct {
	Battle *entities.Battle
}

// GetInput contains parameters for fetching a battle
type GetInput struct {
	ID string
}

// GetOutput contains the fetched battle
type GetOutput struct {
	Battle *entities.Battle
}

// GetActiveInput contains parameters for fetching an owner's active battle
type GetActiveInput struct {
	OwnerID string
}

// GetActiveOutput contains the active battle
type GetActiveOutput struct {
	Battle *entities.Battle
}

// GetLatestActiveInput contains parameters for fetching the newest active battle
type GetLatestActiveInput struct{}

// GetLatestActiveOutput contains the newest active battle
type GetLatestActiveOutput struct {
	Battle *entities.Battle
}

// UpdateInput contains parameters for replacing a battle
type UpdateInput struct {
	Battle *entities.Battle
	TTL    time.Duration
}

// UpdateOutput contains the updated battle
type UpdateOutput struct {
	Battle *entities.Battle
}

// DeleteInput contains parameters for deleting a battle
type DeleteInput struct {
	ID string
}

// DeleteOutput is the result of deleting a battle
type DeleteOutput struct{}

// ListForOwnerInput contains parameters for listing an owner's battles
type ListForOwnerInput struct {
	OwnerID string
}

// ListForOwnerOutput contains the owner's battles
type ListForOwnerOutput struct {
	Battles []*entities.Battle
}
