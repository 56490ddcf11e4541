package group

import "github.com/dmforge/initiative-api/internal/entities"

// CreateGroupInput contains parameters for saving a new party roster
type CreateGroupInput struct {
	OwnerID    string
	Name       string
	Characters []entities.GroupCharacter
}

// CreateGroupOutput contains the stored group
type CreateGroupOutput struct {
	Group *entities.PlayerGroup
}

// GetGroupInput contains parameters for fetching a group
type GetGroupInput struct {
	OwnerID string
	GroupID string
}

// GetGroupOutput contains the fetched group
type GetGroupOutput struct {
	Group *entities.PlayerGroup
}

// ListGroupsInput contains parameters for listing an owner's groups
type ListGroupsInput struct {
	OwnerID string
}

// ListGroupsOutput contains the owner's groups
type ListGroupsOutput struct {
	Groups []*entities.PlayerGroup
}

// UpdateGroupInput contains parameters for replacing a group's name and
// roster
type UpdateGroupInput struct {
	OwnerID    string
	GroupID    string
	Name       string
	Characters []entities.GroupCharacter
}

// UpdateGroupOutput contains the updated group
type UpdateGroupOutput struct {
	Group *entities.PlayerGroup
}

// DeleteGroupInput contains parameters for deleting a group
type DeleteGroupInput struct {
	OwnerID string
	GroupID string
}

// DeleteGroupOutput is the result of deleting a group
type DeleteGroupOutput struct{}
