package v1alpha1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dmforge/initiative-api/internal/auth"
	"github.com/dmforge/initiative-api/internal/entities"
	v1alpha1 "github.com/dmforge/initiative-api/internal/handlers/api/v1alpha1"
	"github.com/dmforge/initiative-api/internal/orchestrators/battle"
	"github.com/dmforge/initiative-api/internal/orchestrators/encounter"
	"github.com/dmforge/initiative-api/internal/orchestrators/group"
	"github.com/dmforge/initiative-api/internal/orchestrators/user"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/battles"
	"github.com/dmforge/initiative-api/internal/repositories/encounters"
	"github.com/dmforge/initiative-api/internal/repositories/groups"
	"github.com/dmforge/initiative-api/internal/repositories/users"
	"github.com/dmforge/initiative-api/internal/testutils"
)

type RouterTestSuite struct {
	suite.Suite
	cleanup func()
	server  *httptest.Server
	token   string
}

func (s *RouterTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup

	battleRepo, err := battles.NewRedisRepository(&battles.Config{Client: client, Clock: clock.New()})
	s.Require().NoError(err)
	encounterRepo, err := encounters.NewRedisRepository(&encounters.Config{Client: client, Clock: clock.New()})
	s.Require().NoError(err)
	groupRepo, err := groups.NewRedisRepository(&groups.Config{Client: client, Clock: clock.New()})
	s.Require().NoError(err)
	userRepo, err := users.NewRedisRepository(&users.Config{Client: client, Clock: clock.New()})
	s.Require().NoError(err)

	authSvc, err := auth.NewService(&auth.Config{Secret: "test-secret", TokenTTL: time.Hour})
	s.Require().NoError(err)

	userSvc, err := user.NewOrchestrator(&user.Config{
		UserRepo:    userRepo,
		AuthService: authSvc,
		IDGenerator: idgen.NewSequential("usr"),
	})
	s.Require().NoError(err)

	battleSvc, err := battle.NewOrchestrator(&battle.Config{
		BattleRepo:  battleRepo,
		GroupRepo:   groupRepo,
		IDGenerator: idgen.NewSequential("ch"),
		Clock:       clock.New(),
		BattleTTL:   8 * time.Hour,
	})
	s.Require().NoError(err)

	encounterSvc, err := encounter.NewOrchestrator(&encounter.Config{
		EncounterRepo: encounterRepo,
		BattleService: battleSvc,
		IDGenerator:   idgen.NewSequential("cb"),
	})
	s.Require().NoError(err)

	groupSvc, err := group.NewOrchestrator(&group.Config{
		GroupRepo:   groupRepo,
		IDGenerator: idgen.NewSequential("grp"),
	})
	s.Require().NoError(err)

	router, err := v1alpha1.NewRouter(&v1alpha1.RouterConfig{
		AuthService:      authSvc,
		UserService:      userSvc,
		BattleService:    battleSvc,
		EncounterService: encounterSvc,
		GroupService:     groupSvc,
	})
	s.Require().NoError(err)

	s.server = httptest.NewServer(router)
	s.token = s.registerUser("dm@example.com")
}

func (s *RouterTestSuite) TearDownTest() {
	s.server.Close()
	s.cleanup()
}

func (s *RouterTestSuite) registerUser(email string) string {
	status, body := s.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email":    email,
		"username": "TheDM",
		"password": "hunter22",
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	var resp struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Require().NotEmpty(resp.Token)
	return resp.Token
}

// do issues a request and returns the status code and raw body. An
// empty token leaves the request unauthenticated.
func (s *RouterTestSuite) do(method, path, token string, payload any) (int, []byte) {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, body)
	s.Require().NoError(err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.server.Client().Do(req)
	s.Require().NoError(err)
	defer func() { _ = resp.Body.Close() }()

	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	s.Require().NoError(err)
	return resp.StatusCode, buf.Bytes()
}

func (s *RouterTestSuite) decodeBattle(body []byte) *entities.Battle {
	var resp struct {
		Battle *entities.Battle `json:"battle"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	return resp.Battle
}

func (s *RouterTestSuite) createBattle(name string) *entities.Battle {
	status, body := s.do(http.MethodPost, "/api/battles", s.token, map[string]any{"name": name})
	s.Require().Equal(http.StatusCreated, status, string(body))
	b := s.decodeBattle(body)
	s.Require().NotNil(b)
	return b
}

func (s *RouterTestSuite) TestLogin() {
	status, body := s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "dm@example.com",
		"password": "hunter22",
	})
	s.Equal(http.StatusOK, status, string(body))

	status, _ = s.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "dm@example.com",
		"password": "wrong",
	})
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterTestSuite) TestMe() {
	status, body := s.do(http.MethodGet, "/api/auth/me", s.token, nil)
	s.Require().Equal(http.StatusOK, status, string(body))

	var resp struct {
		User *entities.User `json:"user"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Equal("dm@example.com", resp.User.Email)
}

func (s *RouterTestSuite) TestAuthRequired() {
	status, _ := s.do(http.MethodGet, "/api/battles", "", nil)
	s.Equal(http.StatusUnauthorized, status)

	status, _ = s.do(http.MethodGet, "/api/battles", "not-a-token", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *RouterTestSuite) TestBattleLifecycle() {
	b := s.createBattle("Goblin Ambush")

	status, body := s.do(http.MethodPost, fmt.Sprintf("/api/battles/%s/characters", b.ID), s.token, map[string]any{
		"name":       "Vex",
		"initiative": 17,
	})
	s.Require().Equal(http.StatusOK, status, string(body))

	status, body = s.do(http.MethodPost, fmt.Sprintf("/api/battles/%s/characters", b.ID), s.token, map[string]any{
		"name":       "Goblin Boss",
		"isNpc":      true,
		"initiative": 12,
	})
	s.Require().Equal(http.StatusOK, status, string(body))
	updated := s.decodeBattle(body)
	s.Require().Len(updated.Characters, 2)
	s.Equal("Vex", updated.Characters[0].Name)

	status, body = s.do(http.MethodPost, fmt.Sprintf("/api/battles/%s/next", b.ID), s.token, nil)
	s.Require().Equal(http.StatusOK, status, string(body))
	s.Equal(1, s.decodeBattle(body).CurrentTurnIndex)

	status, _ = s.do(http.MethodDelete, "/api/battles/"+b.ID, s.token, nil)
	s.Equal(http.StatusNoContent, status)

	status, _ = s.do(http.MethodGet, "/api/battles/"+b.ID, s.token, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *RouterTestSuite) TestOwnershipIsolation() {
	b := s.createBattle("Private Fight")

	other := s.registerUser("other@example.com")
	status, _ := s.do(http.MethodGet, "/api/battles/"+b.ID, other, nil)
	s.Equal(http.StatusForbidden, status)
}

func (s *RouterTestSuite) TestPublicBattle() {
	// Nothing active yet.
	status, body := s.do(http.MethodGet, "/api/battles/active", "", nil)
	s.Require().Equal(http.StatusOK, status)
	s.Nil(s.decodeBattle(body))

	b := s.createBattle("Showdown")
	_, body = s.do(http.MethodPost, fmt.Sprintf("/api/battles/%s/characters", b.ID), s.token, map[string]any{
		"name":       "Hidden Horror",
		"isNpc":      true,
		"initiative": 20,
		"imageUrl":   "https://example.com/horror.png",
	})
	s.Require().NotNil(s.decodeBattle(body))

	status, body = s.do(http.MethodGet, "/api/battles/active", "", nil)
	s.Require().Equal(http.StatusOK, status)
	public := s.decodeBattle(body)
	s.Require().NotNil(public)
	s.Require().Len(public.Characters, 1)
	s.Equal("?", public.Characters[0].Name)
	s.Empty(public.Characters[0].ImageURL)
}

func (s *RouterTestSuite) TestGroupCRUD() {
	status, body := s.do(http.MethodPost, "/api/groups", s.token, map[string]any{
		"name":       "Tuesday Party",
		"characters": []map[string]any{{"name": "Vex"}, {"name": "Grog"}},
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	var resp struct {
		Group *entities.PlayerGroup `json:"group"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Require().NotNil(resp.Group)
	s.Len(resp.Group.Characters, 2)

	status, _ = s.do(http.MethodDelete, "/api/groups/"+resp.Group.ID, s.token, nil)
	s.Equal(http.StatusNoContent, status)
}

func (s *RouterTestSuite) TestEncounterImportFlow() {
	csv := "name,hp,ac,actions\nGoblin,7 (2d6),15,Scimitar. Melee Weapon Attack.\n"

	status, body := s.do(http.MethodPost, "/api/encounters/import", s.token, map[string]any{"text": csv})
	s.Require().Equal(http.StatusOK, status, string(body))

	var parsed struct {
		Creatures []entities.Creature `json:"creatures"`
	}
	s.Require().NoError(json.Unmarshal(body, &parsed))
	s.Require().Len(parsed.Creatures, 1)

	status, body = s.do(http.MethodPost, "/api/encounters/combatants", s.token, map[string]any{
		"items": []map[string]any{{"creature": parsed.Creatures[0], "count": 2}},
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	var resp struct {
		Encounter *entities.Encounter `json:"encounter"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.Require().NotNil(resp.Encounter)
	s.Equal("Imported Encounter (1 types)", resp.Encounter.Name)
	s.Require().Len(resp.Encounter.Combatants, 2)
	s.Equal("Goblin #1", resp.Encounter.Combatants[0].DisplayName)
}

func (s *RouterTestSuite) TestCombatantHP() {
	status, body := s.do(http.MethodPost, "/api/encounters/combatants", s.token, map[string]any{
		"name": "Warrens",
		"items": []map[string]any{
			{"creature": map[string]any{"name": "Goblin", "maxHp": 7, "ac": 15}, "count": 1},
		},
	})
	s.Require().Equal(http.StatusCreated, status, string(body))

	var resp struct {
		Encounter *entities.Encounter `json:"encounter"`
	}
	s.Require().NoError(json.Unmarshal(body, &resp))
	encID := resp.Encounter.ID
	cbID := resp.Encounter.Combatants[0].ID

	status, body = s.do(http.MethodPost,
		fmt.Sprintf("/api/encounters/%s/combatants/%s/hp", encID, cbID), s.token,
		map[string]any{"amount": -5})
	s.Require().Equal(http.StatusOK, status, string(body))

	var cbResp struct {
		Combatant *entities.Combatant `json:"combatant"`
	}
	s.Require().NoError(json.Unmarshal(body, &cbResp))
	s.Equal(2, cbResp.Combatant.CurrentHP)

	status, _ = s.do(http.MethodPost,
		fmt.Sprintf("/api/encounters/%s/combatants/%s/hp-text", encID, cbID), s.token,
		map[string]any{"input": "garbage"})
	s.Equal(http.StatusBadRequest, status)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
