// Package encounter implements the encounter orchestrator: prep-time
// creature management, CSV import, and live resource tracking.
package encounter

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
	"github.com/dmforge/initiative-api/internal/orchestrators/battle"
	"github.com/dmforge/initiative-api/internal/pkg/idgen"
	"github.com/dmforge/initiative-api/internal/repositories/encounters"
	"github.com/dmforge/initiative-api/internal/statblock"
)

// Service defines the interface for encounter operations
type Service interface {
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error)
	GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error)
	ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error)
	UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error)
	DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error)

	// ParseStatBlocks turns raw CSV text into creature templates without
	// persisting anything.
	ParseStatBlocks(ctx context.Context, input *ParseStatBlocksInput) (*ParseStatBlocksOutput, error)

	// ImportCreatures instances templates into an encounter, new or
	// existing.
	ImportCreatures(ctx context.Context, input *ImportCreaturesInput) (*ImportCreaturesOutput, error)

	AdjustHP(ctx context.Context, input *AdjustHPInput) (*AdjustHPOutput, error)
	ApplyHPText(ctx context.Context, input *ApplyHPTextInput) (*ApplyHPTextOutput, error)
	SetTempHP(ctx context.Context, input *SetTempHPInput) (*SetTempHPOutput, error)
	ToggleSpellSlot(ctx context.Context, input *ToggleSpellSlotInput) (*ToggleSpellSlotOutput, error)
	ToggleLegendaryAction(ctx context.Context, input *ToggleLegendaryActionInput) (*ToggleLegendaryActionOutput, error)
	ToggleLegendaryResistance(ctx context.Context, input *ToggleLegendaryResistanceInput) (*ToggleLegendaryResistanceOutput, error)
	RefillLegendaryActions(ctx context.Context, input *RefillLegendaryActionsInput) (*RefillLegendaryActionsOutput, error)
	ToggleRecharge(ctx context.Context, input *ToggleRechargeInput) (*ToggleRechargeOutput, error)
	ToggleLimited(ctx context.Context, input *ToggleLimitedInput) (*ToggleLimitedOutput, error)
	RenameCombatant(ctx context.Context, input *RenameCombatantInput) (*RenameCombatantOutput, error)
	DuplicateCombatant(ctx context.Context, input *DuplicateCombatantInput) (*DuplicateCombatantOutput, error)
	DeleteCombatant(ctx context.Context, input *DeleteCombatantInput) (*DeleteCombatantOutput, error)
	SendToBattle(ctx context.Context, input *SendToBattleInput) (*SendToBattleOutput, error)
}

// Config holds the dependencies for the encounter orchestrator
type Config struct {
	EncounterRepo encounters.Repository
	BattleService battle.Service
	IDGenerator   idgen.Generator
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.EncounterRepo == nil {
		vb.RequiredField("EncounterRepo")
	}
	if c.BattleService == nil {
		vb.RequiredField("BattleService")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	encounterRepo encounters.Repository
	battleService battle.Service
	idGen         idgen.Generator
}

// NewOrchestrator creates a new encounter orchestrator with the
// provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		encounterRepo: cfg.EncounterRepo,
		battleService: cfg.BattleService,
		idGen:         cfg.IDGenerator,
	}, nil
}

var _ Service = (*orchestrator)(nil)

func (o *orchestrator) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*CreateEncounterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("name", input.Name, vb)
	errors.ValidateRequired("ownerId", input.OwnerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	enc := &entities.Encounter{
		ID:          o.idGen.Generate(),
		OwnerID:     input.OwnerID,
		Name:        input.Name,
		Description: input.Description,
	}

	out, err := o.encounterRepo.Create(ctx, encounters.CreateInput{Encounter: enc})
	if err != nil {
		return nil, err
	}
	return &CreateEncounterOutput{Encounter: out.Encounter}, nil
}

func (o *orchestrator) GetEncounter(ctx context.Context, input *GetEncounterInput) (*GetEncounterOutput, error) {
	enc, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
	if err != nil {
		return nil, err
	}
	return &GetEncounterOutput{Encounter: enc}, nil
}

func (o *orchestrator) ListEncounters(ctx context.Context, input *ListEncountersInput) (*ListEncountersOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}

	out, err := o.encounterRepo.ListForOwner(ctx, encounters.ListForOwnerInput{OwnerID: input.OwnerID})
	if err != nil {
		return nil, err
	}
	return &ListEncountersOutput{Encounters: out.Encounters}, nil
}

func (o *orchestrator) UpdateEncounter(ctx context.Context, input *UpdateEncounterInput) (*UpdateEncounterOutput, error) {
	enc, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		enc.Name = input.Name
	}
	enc.Description = input.Description

	saved, err := o.save(ctx, enc)
	if err != nil {
		return nil, err
	}
	return &UpdateEncounterOutput{Encounter: saved}, nil
}

func (o *orchestrator) DeleteEncounter(ctx context.Context, input *DeleteEncounterInput) (*DeleteEncounterOutput, error) {
	if _, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID); err != nil {
		return nil, err
	}

	if _, err := o.encounterRepo.Delete(ctx, encounters.DeleteInput{ID: input.EncounterID}); err != nil {
		return nil, err
	}
	return &DeleteEncounterOutput{}, nil
}

func (o *orchestrator) ParseStatBlocks(ctx context.Context, input *ParseStatBlocksInput) (*ParseStatBlocksOutput, error) {
	if input == nil || input.Text == "" {
		return nil, errors.InvalidArgument("text is required")
	}

	creatures, err := statblock.Parse(input.Text)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "parsed stat blocks", "creatures", len(creatures))
	return &ParseStatBlocksOutput{Creatures: creatures}, nil
}

func (o *orchestrator) ImportCreatures(ctx context.Context, input *ImportCreaturesInput) (*ImportCreaturesOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if len(input.Items) == 0 {
		return nil, errors.InvalidArgument("nothing to import")
	}
	for _, item := range input.Items {
		if item.Creature.Name == "" {
			return nil, errors.InvalidArgument("creature name is required")
		}
		if item.Creature.MaxHP <= 0 {
			return nil, errors.InvalidArgumentf("creature %q must have positive HP", item.Creature.Name)
		}
		if item.Creature.AC <= 0 {
			return nil, errors.InvalidArgumentf("creature %q must have an armor class", item.Creature.Name)
		}
	}

	var enc *entities.Encounter
	if input.EncounterID != "" {
		loaded, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
		if err != nil {
			return nil, err
		}
		enc = loaded
	} else {
		if input.OwnerID == "" {
			return nil, errors.InvalidArgument("owner ID is required")
		}
		name := input.Name
		if name == "" {
			name = fmt.Sprintf("Imported Encounter (%d types)", len(input.Items))
		}
		enc = &entities.Encounter{
			ID:      o.idGen.Generate(),
			OwnerID: input.OwnerID,
			Name:    name,
		}
		if _, err := o.encounterRepo.Create(ctx, encounters.CreateInput{Encounter: enc}); err != nil {
			return nil, err
		}
	}

	for _, item := range input.Items {
		count := item.Count
		if count < 1 {
			count = 1
		}
		for i := 1; i <= count; i++ {
			cb := entities.NewCombatant(o.idGen.Generate(), enc.ID, item.Creature, i, count)
			enc.Combatants = append(enc.Combatants, cb)
		}
	}

	saved, err := o.save(ctx, enc)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "imported creatures",
		"encounter_id", saved.ID,
		"templates", len(input.Items),
		"combatants", len(saved.Combatants),
	)
	return &ImportCreaturesOutput{Encounter: saved}, nil
}

func (o *orchestrator) AdjustHP(ctx context.Context, input *AdjustHPInput) (*AdjustHPOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			cb.AdjustHP(input.Amount)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return &AdjustHPOutput{Combatant: cb}, nil
}

func (o *orchestrator) ApplyHPText(ctx context.Context, input *ApplyHPTextInput) (*ApplyHPTextOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ApplyHPInput(input.Input)
		})
	if err != nil {
		return nil, err
	}
	return &ApplyHPTextOutput{Combatant: cb}, nil
}

func (o *orchestrator) SetTempHP(ctx context.Context, input *SetTempHPInput) (*SetTempHPOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			cb.SetTempHP(input.Value)
			return nil
		})
	if err != nil {
		return nil, err
	}
	return &SetTempHPOutput{Combatant: cb}, nil
}

func (o *orchestrator) ToggleSpellSlot(ctx context.Context, input *ToggleSpellSlotInput) (*ToggleSpellSlotOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ToggleSpellSlot(input.Level, input.Pip)
		})
	if err != nil {
		return nil, err
	}
	return &ToggleSpellSlotOutput{Combatant: cb}, nil
}

func (o *orchestrator) ToggleLegendaryAction(ctx context.Context, input *ToggleLegendaryActionInput) (*ToggleLegendaryActionOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ToggleLegendaryAction(input.Pip)
		})
	if err != nil {
		return nil, err
	}
	return &ToggleLegendaryActionOutput{Combatant: cb}, nil
}

func (o *orchestrator) ToggleLegendaryResistance(ctx context.Context, input *ToggleLegendaryResistanceInput) (*ToggleLegendaryResistanceOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ToggleLegendaryResistance(input.Pip)
		})
	if err != nil {
		return nil, err
	}
	return &ToggleLegendaryResistanceOutput{Combatant: cb}, nil
}

func (o *orchestrator) RefillLegendaryActions(ctx context.Context, input *RefillLegendaryActionsInput) (*RefillLegendaryActionsOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.RefillLegendaryActions()
		})
	if err != nil {
		return nil, err
	}
	return &RefillLegendaryActionsOutput{Combatant: cb}, nil
}

func (o *orchestrator) ToggleRecharge(ctx context.Context, input *ToggleRechargeInput) (*ToggleRechargeOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ToggleRecharge(input.Index)
		})
	if err != nil {
		return nil, err
	}
	return &ToggleRechargeOutput{Combatant: cb}, nil
}

func (o *orchestrator) ToggleLimited(ctx context.Context, input *ToggleLimitedInput) (*ToggleLimitedOutput, error) {
	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			return cb.ToggleLimited(input.Index, input.Pip)
		})
	if err != nil {
		return nil, err
	}
	return &ToggleLimitedOutput{Combatant: cb}, nil
}

func (o *orchestrator) RenameCombatant(ctx context.Context, input *RenameCombatantInput) (*RenameCombatantOutput, error) {
	if input.DisplayName == "" {
		return nil, errors.InvalidArgument("display name is required")
	}

	cb, err := o.mutateCombatant(ctx, input.OwnerID, input.EncounterID, input.CombatantID,
		func(cb *entities.Combatant) error {
			cb.DisplayName = input.DisplayName
			return nil
		})
	if err != nil {
		return nil, err
	}
	return &RenameCombatantOutput{Combatant: cb}, nil
}

func (o *orchestrator) DuplicateCombatant(ctx context.Context, input *DuplicateCombatantInput) (*DuplicateCombatantOutput, error) {
	enc, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
	if err != nil {
		return nil, err
	}

	cb := enc.FindCombatant(input.CombatantID)
	if cb == nil {
		return nil, errors.NotFoundf("combatant %q not in encounter", input.CombatantID)
	}

	dup := cb.Duplicate(o.idGen.Generate(), enc.NextOrdinal(cb.BaseName))
	enc.Combatants = append(enc.Combatants, dup)

	if _, err := o.save(ctx, enc); err != nil {
		return nil, err
	}
	return &DuplicateCombatantOutput{Combatant: dup}, nil
}

func (o *orchestrator) DeleteCombatant(ctx context.Context, input *DeleteCombatantInput) (*DeleteCombatantOutput, error) {
	enc, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
	if err != nil {
		return nil, err
	}

	if !enc.RemoveCombatant(input.CombatantID) {
		return nil, errors.NotFoundf("combatant %q not in encounter", input.CombatantID)
	}

	if _, err := o.save(ctx, enc); err != nil {
		return nil, err
	}
	return &DeleteCombatantOutput{}, nil
}

func (o *orchestrator) SendToBattle(ctx context.Context, input *SendToBattleInput) (*SendToBattleOutput, error) {
	enc, err := o.loadOwned(ctx, input.OwnerID, input.EncounterID)
	if err != nil {
		return nil, err
	}

	cb := enc.FindCombatant(input.CombatantID)
	if cb == nil {
		return nil, errors.NotFoundf("combatant %q not in encounter", input.CombatantID)
	}

	out, err := o.battleService.AddCharacter(ctx, &battle.AddCharacterInput{
		OwnerID:    input.OwnerID,
		BattleID:   input.BattleID,
		Name:       cb.DisplayName,
		IsNPC:      true,
		Initiative: input.Initiative,
	})
	if err != nil {
		return nil, err
	}
	return &SendToBattleOutput{Battle: out.Battle}, nil
}

// loadOwned fetches an encounter and verifies ownership.
func (o *orchestrator) loadOwned(ctx context.Context, ownerID, encounterID string) (*entities.Encounter, error) {
	if ownerID == "" {
		return nil, errors.InvalidArgument("owner ID is required")
	}
	if encounterID == "" {
		return nil, errors.InvalidArgument("encounter ID is required")
	}

	out, err := o.encounterRepo.Get(ctx, encounters.GetInput{ID: encounterID})
	if err != nil {
		return nil, err
	}
	if out.Encounter.OwnerID != ownerID {
		return nil, errors.PermissionDenied("encounter belongs to another user")
	}
	return out.Encounter, nil
}

func (o *orchestrator) save(ctx context.Context, enc *entities.Encounter) (*entities.Encounter, error) {
	out, err := o.encounterRepo.Update(ctx, encounters.UpdateInput{Encounter: enc})
	if err != nil {
		return nil, err
	}
	return out.Encounter, nil
}

// mutateCombatant loads the encounter, applies fn to one combatant, and
// saves. Nothing is persisted when fn fails, so a rejected toggle leaves
// state untouched.
func (o *orchestrator) mutateCombatant(
	ctx context.Context,
	ownerID, encounterID, combatantID string,
	fn func(*entities.Combatant) error,
) (*entities.Combatant, error) {
	enc, err := o.loadOwned(ctx, ownerID, encounterID)
	if err != nil {
		return nil, err
	}

	cb := enc.FindCombatant(combatantID)
	if cb == nil {
		return nil, errors.NotFoundf("combatant %q not in encounter", combatantID)
	}

	if err := fn(cb); err != nil {
		return nil, err
	}

	if _, err := o.save(ctx, enc); err != nil {
		return nil, err
	}
	return cb, nil
}
