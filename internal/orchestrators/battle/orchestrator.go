// Package battle implements the battle orchestrator: lifecycle, turn
// order, and the public snapshot.
package battle

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/initiative"
	"github.com/dmforge/initiative-api/internal/pkg/clock"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/battles"
	"github.com/dmforge/initiative-api/internal/repositories/groups"
)

// Lair actions conventionally act at initiative 20.
const (
	lairInitiative = 20
	lairName       = "Lair Actions"
)

// Service defines the interface for battle operations
type Service interface {
	CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error)
	GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error)
	ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error)
	GetPublicBattle(ctx context.Context, input *GetPublicBattleInput) (*GetPublicBattleOutput, error)
	UpdateBattle(ctx context.Context, input *UpdateBattleInput) (*UpdateBattleOutput, error)
	DeleteBattle(ctx context.Context, input *DeleteBattleInput) (*DeleteBattleOutput, error)
	EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error)
	ActivateBattle(ctx context.Context, input *ActivateBattleInput) (*ActivateBattleOutput, error)
	RefreshExpiration(ctx context.Context, input *RefreshExpirationInput) (*RefreshExpirationOutput, error)

	AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error)
	AddGroup(ctx context.Context, input *AddGroupInput) (*AddGroupOutput, error)
	AddLair(ctx context.Context, input *AddLairInput) (*AddLairOutput, error)
	RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error)
	SetInitiative(ctx context.Context, input *SetInitiativeInput) (*SetInitiativeOutput, error)
	ToggleReveal(ctx context.Context, input *ToggleRevealInput) (*ToggleRevealOutput, error)
	SwapOrder(ctx context.Context, input *SwapOrderInput) (*SwapOrderOutput, error)

	NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error)
	PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error)
	ResetTurns(ctx context.Context, input *ResetTurnsInput) (*ResetTurnsOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	BattleRepo  battles.Repository
	GroupRepo   groups.Repository
	IDGenerator idgen.Generator
	Clock       clock.Clock

	// BattleTTL is how long a battle lives without activity. Every
	// write refreshes it.
	BattleTTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.BattleRepo == nil {
		vb.RequiredField("BattleRepo")
	}
	if c.GroupRepo == nil {
		vb.RequiredField("GroupRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.BattleTTL <= 0 {
		vb.Field("BattleTTL", "must be positive")
	}

	return vb.Build()
}

type orchestrator struct {
	battleRepo battles.Repository
	groupRepo  groups.Repository
	idGen      idgen.Generator
	clock      clock.Clock
	battleTTL  time.Duration
}

// NewOrchestrator creates a new battle orchestrator with the provided
// dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		battleRepo: cfg.BattleRepo,
		groupRepo:  cfg.GroupRepo,
		idGen:      cfg.IDGenerator,
		clock:      cfg.Clock,
		battleTTL:  cfg.BattleTTL,
	}, nil
}

var _ Service = (*orchestrator)(nil)

func (o *orchestrator) CreateBattle(ctx context.Context, input *CreateBattleInput) (*CreateBattleOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("ownerId", input.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	// One active battle per owner: retire the previous one.
	if err := o.deactivateCurrent(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	b := &entities.Battle{
		ID:           o.idGen.Generate(),
		OwnerID:      input.OwnerID,
		Name:         input.Name,
		CurrentRound: 1,
		IsActive:     true,
		CreatedAt:    now,
	}

	if input.GroupID != "" {
		if err := o.seedFromGroup(ctx, b, input.GroupID); err != nil {
			return nil, err
		}
	}

	out, err := o.battleRepo.Create(ctx, battles.CreateInput{Battle: b, TTL: o.battleTTL})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle created",
		"battle_id", out.Battle.ID,
		"owner_id", input.OwnerID,
		"characters", len(out.Battle.Characters),
	)
	return &CreateBattleOutput{Battle: out.Battle}, nil
}

// seedFromGroup adds every group member as a revealed PC at initiative
// 0, in roster order.
func (o *orchestrator) seedFromGroup(ctx context.Context, b *entities.Battle, groupID string) error {
	groupOut, err := o.groupRepo.Get(ctx, groups.GetInput{ID: groupID})
	if err != nil {
		return err
	}
	if groupOut.Group.OwnerID != b.OwnerID {
		return errors.PermissionDenied("group belongs to another user")
	}

	tracker := initiative.NewTracker(b)
	for _, member := range groupOut.Group.Characters {
		tracker.Add(entities.BattleCharacter{
			ID:         o.idGen.Generate(),
			Name:       member.Name,
			ImageURL:   member.ImageURL,
			IsNPC:      false,
			IsRevealed: true,
			Initiative: 0,
		})
	}
	return nil
}

func (o *orchestrator) GetBattle(ctx context.Context, input *GetBattleInput) (*GetBattleOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}
	return &GetBattleOutput{Battle: b}, nil
}

func (o *orchestrator) ListBattles(ctx context.Context, input *ListBattlesInput) (*ListBattlesOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.battleRepo.ListForOwner(ctx, battles.ListForOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}
	return &ListBattlesOutput{Battles: out.Battles}, nil
}

func (o *orchestrator) GetPublicBattle(ctx context.Context, input *GetPublicBattleInput) (*GetPublicBattleOutput, error) {
	var b *entities.Battle

	if input != nil && input.BattleID != "" {
		out, err := o.battleRepo.Get(ctx, battles.GetInput{ID: input.BattleID})
		if err != nil {
			if errors.IsNotFound(err) {
				return &GetPublicBattleOutput{Battle: nil}, nil
			}
			return nil, err
		}
		b = out.Battle
	} else {
		out, err := o.battleRepo.GetLatestActive(ctx, battles.GetLatestActiveInput{})
		if err != nil {
			if errors.IsNotFound(err) {
				return &GetPublicBattleOutput{Battle: nil}, nil
			}
			return nil, err
		}
		b = out.Battle
	}

	return &GetPublicBattleOutput{Battle: b.PublicView()}, nil
}

func (o *orchestrator) UpdateBattle(ctx context.Context, input *UpdateBattleInput) (*UpdateBattleOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, errors.InvalidArgument("name is required")
	}

	b.Name = input.Name
	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &UpdateBattleOutput{Battle: saved}, nil
}

func (o *orchestrator) DeleteBattle(ctx context.Context, input *DeleteBattleInput) (*DeleteBattleOutput, error) {
	if _, err := o.loadOwned(ctx, input.OwnerID, input.BattleID); err != nil {
		return nil, err
	}

	if _, err := o.battleRepo.Delete(ctx, battles.DeleteInput{ID: input.BattleID}); err != nil {
		return nil, err
	}
	return &DeleteBattleOutput{}, nil
}

func (o *orchestrator) EndBattle(ctx context.Context, input *EndBattleInput) (*EndBattleOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	b.IsActive = false
	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &EndBattleOutput{Battle: saved}, nil
}

func (o *orchestrator) ActivateBattle(ctx context.Context, input *ActivateBattleInput) (*ActivateBattleOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	if err := o.deactivateCurrent(ctx, input.OwnerID); err != nil {
		return nil, err
	}

	b.IsActive = true
	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ActivateBattleOutput{Battle: saved}, nil
}

func (o *orchestrator) RefreshExpiration(ctx context.Context, input *RefreshExpirationInput) (*RefreshExpirationOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &RefreshExpirationOutput{Battle: saved}, nil
}

func (o *orchestrator) AddCharacter(ctx context.Context, input *AddCharacterInput) (*AddCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	tracker := initiative.NewTracker(b)
	tracker.Add(entities.BattleCharacter{
		ID:         o.idGen.Generate(),
		Name:       input.Name,
		IsNPC:      input.IsNPC,
		IsRevealed: !input.IsNPC,
		Initiative: input.Initiative,
		ImageURL:   input.ImageURL,
	})

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &AddCharacterOutput{Battle: saved}, nil
}

func (o *orchestrator) AddGroup(ctx context.Context, input *AddGroupInput) (*AddGroupOutput, error) {
	if input == nil || input.GroupID == "" {
		return nil, errors.InvalidArgument("group ID is required")
	}

	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	if err := o.seedFromGroup(ctx, b, input.GroupID); err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &AddGroupOutput{Battle: saved}, nil
}

func (o *orchestrator) AddLair(ctx context.Context, input *AddLairInput) (*AddLairOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	for _, ch := range b.Characters {
		if ch.IsLair {
			return nil, errors.AlreadyExists("battle already has lair actions")
		}
	}

	tracker := initiative.NewTracker(b)
	tracker.Add(entities.BattleCharacter{
		ID:         o.idGen.Generate(),
		Name:       lairName,
		IsNPC:      true,
		IsRevealed: true,
		Initiative: lairInitiative,
		IsLair:     true,
	})

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &AddLairOutput{Battle: saved}, nil
}

func (o *orchestrator) RemoveCharacter(ctx context.Context, input *RemoveCharacterInput) (*RemoveCharacterOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	if err := initiative.NewTracker(b).Remove(input.CharacterID); err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &RemoveCharacterOutput{Battle: saved}, nil
}

func (o *orchestrator) SetInitiative(ctx context.Context, input *SetInitiativeInput) (*SetInitiativeOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	if err := initiative.NewTracker(b).SetInitiative(input.CharacterID, input.Initiative); err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &SetInitiativeOutput{Battle: saved}, nil
}

func (o *orchestrator) ToggleReveal(ctx context.Context, input *ToggleRevealInput) (*ToggleRevealOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range b.Characters {
		if b.Characters[i].ID == input.CharacterID {
			b.Characters[i].IsRevealed = !b.Characters[i].IsRevealed
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NotFoundf("character %q not in battle", input.CharacterID)
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ToggleRevealOutput{Battle: saved}, nil
}

func (o *orchestrator) SwapOrder(ctx context.Context, input *SwapOrderInput) (*SwapOrderOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	tracker := initiative.NewTracker(b)
	switch input.Direction {
	case SwapUp:
		err = tracker.MoveUp(input.CharacterID)
	case SwapDown:
		err = tracker.MoveDown(input.CharacterID)
	default:
		return nil, errors.InvalidArgumentf("unknown swap direction %q", input.Direction)
	}
	if err != nil {
		return nil, err
	}

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &SwapOrderOutput{Battle: saved}, nil
}

func (o *orchestrator) NextTurn(ctx context.Context, input *NextTurnInput) (*NextTurnOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	initiative.NewTracker(b).Next()

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &NextTurnOutput{Battle: saved}, nil
}

func (o *orchestrator) PreviousTurn(ctx context.Context, input *PreviousTurnInput) (*PreviousTurnOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	initiative.NewTracker(b).Previous()

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &PreviousTurnOutput{Battle: saved}, nil
}

func (o *orchestrator) ResetTurns(ctx context.Context, input *ResetTurnsInput) (*ResetTurnsOutput, error) {
	b, err := o.loadOwned(ctx, input.OwnerID, input.BattleID)
	if err != nil {
		return nil, err
	}

	initiative.NewTracker(b).Reset()

	saved, err := o.save(ctx, b)
	if err != nil {
		return nil, err
	}
	return &ResetTurnsOutput{Battle: saved}, nil
}

// loadOwned fetches a battle and verifies ownership.
func (o *orchestrator) loadOwned(ctx context.Context, ownerID, battleID string) (*entities.Battle, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}
	if battleID == "" {
		return nil, errors.InvalidArgument("battle ID is required")
	}

	out, err := o.battleRepo.Get(ctx, battles.GetInput{ID: battleID})
	if err != nil {
		return nil, err
	}
	if out.Battle.OwnerID != ownerID {
		return nil, errors.PermissionDenied("battle belongs to another user")
	}
	return out.Battle, nil
}

// save persists the battle and refreshes its TTL.
func (o *orchestrator) save(ctx context.Context, b *entities.Battle) (*entities.Battle, error) {
	out, err := o.battleRepo.Update(ctx, battles.UpdateInput{Battle: b, TTL: o.battleTTL})
	if err != nil {
		return nil, err
	}
	return out.Battle, nil
}

// deactivateCurrent retires the owner's active battle, if any.
func (o *orchestrator) deactivateCurrent(ctx context.Context, ownerID string) error {
	out, err := o.battleRepo.GetActive(ctx, battles.GetActiveInput{OwnerID: ownerID})
	if err != nil {
		if errors.IsNotFound(err) {
			return nil
		}
		return err
	}

	out.Battle.IsActive = false
	if _, err := o.save(ctx, out.Battle); err != nil {
		return err
	}

	slog.InfoContext(ctx, "deactivated previous battle",
		"battle_id", out.Battle.ID,
		"owner_id", ownerID,
	)
	return nil
}
