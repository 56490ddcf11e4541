package battles_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/repositories/battles"
	"github.com/dmforge/initiative-api/internal/testutils"
)

type RedisBattlesTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	cleanup func()
	repo    battles.Repository
	ctx     context.Context
}

func (s *RedisBattlesTestSuite) SetupTest() {
	client, mr, cleanup := testutils.CreateTestRedis(s.T())
	s.mr = mr
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := battles.NewRedisRepository(&battles.Config{
		Client: client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisBattlesTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisBattlesTestSuite) newBattle(id string, active bool) *entities.Battle {
	return &entities.Battle{
		ID:           id,
		OwnerID:      "usr_dm",
		Name:         "Goblin Ambush",
		CurrentRound: 1,
		IsActive:     active,
		Characters: []entities.BattleCharacter{
			{ID: "ch_1", Name: "Thorin", Initiative: 15},
		},
	}
}

func (s *RedisBattlesTestSuite) TestCreateAndGet() {
	battle := s.newBattle("btl_1", true)

	out, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: battle, TTL: time.Hour})
	s.Require().NoError(err)
	s.False(out.Battle.ExpiresAt.IsZero())

	got, err := s.repo.Get(s.ctx, battles.GetInput{ID: "btl_1"})
	s.Require().NoError(err)
	s.Equal("Goblin Ambush", got.Battle.Name)
	s.Len(got.Battle.Characters, 1)
	s.Equal("Thorin", got.Battle.Characters[0].Name)
}

func (s *RedisBattlesTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: nil})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: &entities.Battle{OwnerID: "usr_dm"}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: &entities.Battle{ID: "btl_1"}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisBattlesTestSuite) TestGetMissing() {
	_, err := s.repo.Get(s.ctx, battles.GetInput{ID: "btl_ghost"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisBattlesTestSuite) TestGetActive() {
	_, err := s.repo.GetActive(s.ctx, battles.GetActiveInput{OwnerID: "usr_dm"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", true)})
	s.Require().NoError(err)

	got, err := s.repo.GetActive(s.ctx, battles.GetActiveInput{OwnerID: "usr_dm"})
	s.Require().NoError(err)
	s.Equal("btl_1", got.Battle.ID)
}

func (s *RedisBattlesTestSuite) TestDeactivateClearsPointer() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", true)})
	s.Require().NoError(err)

	battle := s.newBattle("btl_1", false)
	_, err = s.repo.Update(s.ctx, battles.UpdateInput{Battle: battle})
	s.Require().NoError(err)

	_, err = s.repo.GetActive(s.ctx, battles.GetActiveInput{OwnerID: "usr_dm"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisBattlesTestSuite) TestGetLatestActive() {
	_, err := s.repo.GetLatestActive(s.ctx, battles.GetLatestActiveInput{})
	s.True(errors.IsNotFound(err))

	first := s.newBattle("btl_1", true)
	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: first})
	s.Require().NoError(err)

	second := s.newBattle("btl_2", true)
	second.OwnerID = "usr_other"
	// Force a later UpdatedAt than the first battle.
	time.Sleep(5 * time.Millisecond)
	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: second})
	s.Require().NoError(err)

	got, err := s.repo.GetLatestActive(s.ctx, battles.GetLatestActiveInput{})
	s.Require().NoError(err)
	s.Equal("btl_2", got.Battle.ID)
}

func (s *RedisBattlesTestSuite) TestUpdate() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", true)})
	s.Require().NoError(err)

	battle := s.newBattle("btl_1", true)
	battle.CurrentRound = 3
	out, err := s.repo.Update(s.ctx, battles.UpdateInput{Battle: battle})
	s.Require().NoError(err)
	s.Equal(3, out.Battle.CurrentRound)

	got, err := s.repo.Get(s.ctx, battles.GetInput{ID: "btl_1"})
	s.Require().NoError(err)
	s.Equal(3, got.Battle.CurrentRound)
}

func (s *RedisBattlesTestSuite) TestUpdateMissing() {
	_, err := s.repo.Update(s.ctx, battles.UpdateInput{Battle: s.newBattle("btl_ghost", false)})
	s.True(errors.IsNotFound(err))
}

func (s *RedisBattlesTestSuite) TestDelete() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", true)})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, battles.DeleteInput{ID: "btl_1"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, battles.GetInput{ID: "btl_1"})
	s.True(errors.IsNotFound(err))

	// The active pointer goes with it.
	_, err = s.repo.GetActive(s.ctx, battles.GetActiveInput{OwnerID: "usr_dm"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, battles.DeleteInput{ID: "btl_1"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisBattlesTestSuite) TestListForOwner() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", false)})
	s.Require().NoError(err)
	_, err = s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_2", true)})
	s.Require().NoError(err)

	out, err := s.repo.ListForOwner(s.ctx, battles.ListForOwnerInput{OwnerID: "usr_dm"})
	s.Require().NoError(err)
	s.Len(out.Battles, 2)

	out, err = s.repo.ListForOwner(s.ctx, battles.ListForOwnerInput{OwnerID: "usr_other"})
	s.Require().NoError(err)
	s.Empty(out.Battles)
}

func (s *RedisBattlesTestSuite) TestExpiryPrunesIndex() {
	_, err := s.repo.Create(s.ctx, battles.CreateInput{Battle: s.newBattle("btl_1", true), TTL: time.Minute})
	s.Require().NoError(err)

	s.mr.FastForward(2 * time.Minute)

	_, err = s.repo.Get(s.ctx, battles.GetInput{ID: "btl_1"})
	s.True(errors.IsNotFound(err))

	out, err := s.repo.ListForOwner(s.ctx, battles.ListForOwnerInput{OwnerID: "usr_dm"})
	s.Require().NoError(err)
	s.Empty(out.Battles)
}

func TestRedisBattlesTestSuite(t *testing.T) {
	suite.Run(t, new(RedisBattlesTestSuite))
}
