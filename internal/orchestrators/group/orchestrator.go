// Package group implements saved party roster management.
package group

import (
	"context"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/groups"
)

// Service defines the interface for group operations
type Service interface {
	CreateGroup(ctx context.Context, input *CreateGroupInput) (*CreateGroupOutput, error)
	GetGroup(ctx context.Context, input *GetGroupInput) (*GetGroupOutput, error)
	ListGroups(ctx context.Context, input *ListGroupsInput) (*ListGroupsOutput, error)
	UpdateGroup(ctx context.Context, input *UpdateGroupInput) (*UpdateGroupOutput, error)
	DeleteGroup(ctx context.Context, input *DeleteGroupInput) (*DeleteGroupOutput, error)
}

// Config holds the dependencies for the group orchestrator
type Config struct {
	GroupRepo   groups.Repository
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.GroupRepo == nil {
		vb.RequiredField("GroupRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	groupRepo groups.Repository
	idGen     idgen.Generator
}

// NewOrchestrator creates a new group orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		groupRepo: cfg.GroupRepo,
		idGen:     cfg.IDGenerator,
	}, nil
}

var _ Service = (*orchestrator)(nil)

func (o *orchestrator) CreateGroup(ctx context.Context, input *CreateGroupInput) (*CreateGroupOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("ownerId", input.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	g := &entities.PlayerGroup{
		ID:         o.idGen.Generate(),
		OwnerID:    input.OwnerID,
		Name:       input.Name,
		Characters: input.Characters,
	}

	out, err := o.groupRepo.Create(ctx, groups.CreateInput{Group: g})
	if err != nil {
		return nil, err
	}
	return &CreateGroupOutput{Group: out.Group}, nil
}

func (o *orchestrator) GetGroup(ctx context.Context, input *GetGroupInput) (*GetGroupOutput, error) {
	g, err := o.loadOwned(ctx, input.OwnerID, input.GroupID)
	if err != nil {
		return nil, err
	}
	return &GetGroupOutput{Group: g}, nil
}

func (o *orchestrator) ListGroups(ctx context.Context, input *ListGroupsInput) (*ListGroupsOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.groupRepo.ListForOwner(ctx, groups.ListForOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}
	return &ListGroupsOutput{Groups: out.Groups}, nil
}

func (o *orchestrator) UpdateGroup(ctx context.Context, input *UpdateGroupInput) (*UpdateGroupOutput, error) {
	g, err := o.loadOwned(ctx, input.OwnerID, input.GroupID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		g.Name = input.Name
	}
	g.Characters = input.Characters

	out, err := o.groupRepo.Update(ctx, groups.UpdateInput{Group: g})
	if err != nil {
		return nil, err
	}
	return &UpdateGroupOutput{Group: out.Group}, nil
}

func (o *orchestrator) DeleteGroup(ctx context.Context, input *DeleteGroupInput) (*DeleteGroupOutput, error) {
	if _, err := o.loadOwned(ctx, input.OwnerID, input.GroupID); err != nil {
		return nil, err
	}

	if _, err := o.groupRepo.Delete(ctx, groups.DeleteInput{ID: input.GroupID}); err != nil {
		return nil, err
	}
	return &DeleteGroupOutput{}, nil
}

func (o *orchestrator) loadOwned(ctx context.Context, ownerID, groupID string) (*entities.PlayerGroup, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}
	if groupID == "" {
		return nil, errors.InvalidArgument("group ID is required")
	}

	out, err := o.groupRepo.Get(ctx, groups.GetInput{ID: groupID})
	if err != nil {
		return nil, err
	}
	if out.Group.OwnerID != ownerID {
		return nil, errors.PermissionDenied("group belongs to another user")
	}
	return out.Group, nil
}
