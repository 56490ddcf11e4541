package users_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/repositories/users"
	"github.com/dmforge/initiative-api/internal/testutils"
)

type RedisUsersTestSuite struct {
	suite.Suite
	cleanup func()
	repo    users.Repository
	ctx     context.Context
}

func (s *RedisUsersTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := users.NewRedisRepository(&users.Config{
		Client: client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisUsersTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisUsersTestSuite) TestCreateAndGet() {
	_, err := s.repo.Create(s.ctx, users.CreateInput{User: &entities.User{
		ID:           "usr_1",
		Email:        "dm@example.com",
		Username:     "dungeon_master",
		PasswordHash: "$2a$10$hash",
	}})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, users.GetInput{ID: "usr_1"})
	s.Require().NoError(err)
	s.Equal("dungeon_master", got.User.Username)
	// The hash must survive storage even though it never serializes
	// through the entity's own JSON tags.
	s.Equal("$2a$10$hash", got.User.PasswordHash)
	s.False(got.User.CreatedAt.IsZero())
}

func (s *RedisUsersTestSuite) TestGetByEmail() {
	_, err := s.repo.Create(s.ctx, users.CreateInput{User: &entities.User{
		ID:           "usr_1",
		Email:        "DM@Example.com",
		Username:     "dm",
		PasswordHash: "h",
	}})
	s.Require().NoError(err)

	// Lookup is case-insensitive.
	got, err := s.repo.GetByEmail(s.ctx, users.GetByEmailInput{Email: "dm@example.com"})
	s.Require().NoError(err)
	s.Equal("usr_1", got.User.ID)

	_, err = s.repo.GetByEmail(s.ctx, users.GetByEmailInput{Email: "nobody@example.com"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisUsersTestSuite) TestDuplicateEmail() {
	_, err := s.repo.Create(s.ctx, users.CreateInput{User: &entities.User{
		ID: "usr_1", Email: "dm@example.com", Username: "dm", PasswordHash: "h",
	}})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, users.CreateInput{User: &entities.User{
		ID: "usr_2", Email: "DM@EXAMPLE.COM", Username: "other", PasswordHash: "h",
	}})
	s.True(errors.IsAlreadyExists(err))
}

func TestRedisUsersTestSuite(t *testing.T) {
	suite.Run(t, new(RedisUsersTestSuite))
}
