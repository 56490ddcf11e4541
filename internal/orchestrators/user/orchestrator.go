// Package user implements account registration and login.
package user

import (
	"context"
	"log/slog"
	"strings"

	"github.com/dmforge/initiative-api/internal/auth"
	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/users"
)

// Service defines the interface for account operations
type Service interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetUser(ctx context.Context, input *GetUserInput) (*GetUserOutput, error)
}

// Config holds the dependencies for the user orchestrator
type Config struct {
	UserRepo    users.Repository
	AuthService *auth.Service
	IDGenerator idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.UserRepo == nil {
		vb.RequiredField("UserRepo")
	}
	if c.AuthService == nil {
		vb.RequiredField("AuthService")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	userRepo users.Repository
	authSvc  *auth.Service
	idGen    idgen.Generator
}

// NewOrchestrator creates a new user orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		userRepo: cfg.UserRepo,
		authSvc:  cfg.AuthService,
		idGen:    cfg.IDGenerator,
	}, nil
}

var _ Service = (*orchestrator)(nil)

func (o *orchestrator) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	username := strings.TrimSpace(input.Username)

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("email", email, vb)
	errors.ValidateRequired("username", username, vb)
	errors.ValidateRequired("password", input.Password, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, errors.InvalidArgument("email is not valid")
	}

	hash, err := o.authSvc.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	u := &entities.User{
		ID:           o.idGen.Generate(),
		Email:        email,
		Username:     username,
		PasswordHash: hash,
	}

	created, err := o.userRepo.Create(ctx, users.CreateInput{User: u})
	if err != nil {
		return nil, err
	}

	token, err := o.authSvc.IssueToken(created.User.ID)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user registered", "user_id", created.User.ID)
	return &RegisterOutput{User: created.User, Token: token}, nil
}

func (o *orchestrator) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("email", email, vb)
	errors.ValidateRequired("password", input.Password, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.userRepo.GetByEmail(ctx, users.GetByEmailInput{Email: email})
	if err != nil {
		// Do not leak which accounts exist.
		if errors.IsNotFound(err) {
			return nil, errors.Unauthenticated("invalid credentials")
		}
		return nil, err
	}

	if err := o.authSvc.CheckPassword(out.User.PasswordHash, input.Password); err != nil {
		return nil, err
	}

	token, err := o.authSvc.IssueToken(out.User.ID)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: out.User, Token: token}, nil
}

func (o *orchestrator) GetUser(ctx context.Context, input *GetUserInput) (*GetUserOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	out, err := o.userRepo.Get(ctx, users.GetInput{ID: input.UserID})
	if err != nil {
		return nil, err
	}
	return &GetUserOutput{User: out.User}, nil
}
