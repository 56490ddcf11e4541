package group_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/group"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/groups"
	"github.com/dmforge/initiative-api/internal/testutils"
)

const testOwner = "usr_dm"

type GroupOrchestratorTestSuite struct {
	suite.Suite
	cleanup func()
	svc     group.Service
	ctx     context.Context
}

func (s *GroupOrchestratorTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.ctx = context.Background()

	repo, err := groups.NewRedisRepository(&groups.Config{
		Client: client,
		Clock:  clock.New(),
	})
	s.Require().NoError(err)

	svc, err := group.NewOrchestrator(&group.Config{
		GroupRepo:   repo,
		IDGenerator: idgen.NewSequential("grp"),
	})
	s.Require().NoError(err)
	s.svc = svc
}

func (s *GroupOrchestratorTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *GroupOrchestratorTestSuite) createGroup() *entities.PlayerGroup {
	out, err := s.svc.CreateGroup(s.ctx, &group.CreateGroupInput{
		OwnerID: testOwner,
		Name:    "Tuesday Party",
		Characters: []entities.GroupCharacter{
			{Name: "Vex"},
			{Name: "Grog", ImageURL: "https://example.com/grog.png"},
		},
	})
	s.Require().NoError(err)
	return out.Group
}

func (s *GroupOrchestratorTestSuite) TestCreateGroup() {
	g := s.createGroup()

	s.NotEmpty(g.ID)
	s.Equal("Tuesday Party", g.Name)
	s.Len(g.Characters, 2)
}

func (s *GroupOrchestratorTestSuite) TestCreateGroup_Validation() {
	_, err := s.svc.CreateGroup(s.ctx, &group.CreateGroupInput{OwnerID: testOwner})
	s.True(errors.IsInvalidArgument(err))
}

func (s *GroupOrchestratorTestSuite) TestGetGroup_Ownership() {
	g := s.createGroup()

	_, err := s.svc.GetGroup(s.ctx, &group.GetGroupInput{
		OwnerID: "usr_other",
		GroupID: g.ID,
	})
	s.True(errors.IsPermissionDenied(err))
}

func (s *GroupOrchestratorTestSuite) TestUpdateGroup() {
	g := s.createGroup()

	out, err := s.svc.UpdateGroup(s.ctx, &group.UpdateGroupInput{
		OwnerID:    testOwner,
		GroupID:    g.ID,
		Name:       "Thursday Party",
		Characters: []entities.GroupCharacter{{Name: "Vex"}},
	})
	s.Require().NoError(err)
	s.Equal("Thursday Party", out.Group.Name)
	s.Len(out.Group.Characters, 1)
}

func (s *GroupOrchestratorTestSuite) TestListGroups() {
	s.createGroup()

	out, err := s.svc.ListGroups(s.ctx, &group.ListGroupsInput{OwnerID: testOwner})
	s.Require().NoError(err)
	s.Len(out.Groups, 1)

	empty, err := s.svc.ListGroups(s.ctx, &group.ListGroupsInput{OwnerID: "usr_other"})
	s.Require().NoError(err)
	s.Empty(empty.Groups)
}

func (s *GroupOrchestratorTestSuite) TestDeleteGroup() {
	g := s.createGroup()

	_, err := s.svc.DeleteGroup(s.ctx, &group.DeleteGroupInput{
		OwnerID: testOwner,
		GroupID: g.ID,
	})
	s.Require().NoError(err)

	_, err = s.svc.GetGroup(s.ctx, &group.GetGroupInput{
		OwnerID: testOwner,
		GroupID: g.ID,
	})
	s.True(errors.IsNotFound(err))
}

func TestGroupOrchestratorTestSuite(t *testing.T) {
	suite.Run(t, new(GroupOrchestratorTestSuite))
}
