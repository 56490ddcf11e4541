package encounter

import "github.com/dmforge/initiative-api/internal/entities"

// CreateEncounterInput contains parameters for creating an encounter
type CreateEncounterInput struct {
	OwnerID     string
	Name        string
	Description string
}

// CreateEncounterOutput contains the created encounter
type CreateEncounterOutput struct {
	Encounter *entities.Encounter
}

// GetEncounterInput contains parameters for fetching an encounter
type GetEncounterInput struct {
	OwnerID     string
	EncounterID string
}

// GetEncounterOutput contains the fetched encounter
type GetEncounterOutput struct {
	Encounter *entities.Encounter
}

// ListEncountersInput contains parameters for listing an owner's encounters
type ListEncountersInput struct {
	OwnerID string
}

// ListEncountersOutput contains the owner's encounters
type ListEncountersOutput struct {
	Encounters []*entities.Encounter
}

// UpdateEncounterInput contains parameters for renaming an encounter
type UpdateEncounterInput struct {
	OwnerID     string
	EncounterID string
	Name        string
	Description string
}

// UpdateEncounterOutput contains the updated encounter
type UpdateEncounterOutput struct {
	Encounter *entities.Encounter
}

// DeleteEncounterInput contains parameters for deleting an encounter
type DeleteEncounterInput struct {
	OwnerID     string
	EncounterID string
}

// DeleteEncounterOutput is the result of deleting an encounter
type DeleteEncounterOutput struct{}

// ParseStatBlocksInput contains raw CSV text to parse
type ParseStatBlocksInput struct {
	Text string
}

// ParseStatBlocksOutput contains the parsed creature templates
type ParseStatBlocksOutput struct {
	Creatures []entities.Creature
}

// ImportItem pairs a creature template with a copy count.
type ImportItem struct {
	Creature entities.Creature
	Count    int
}

// ImportCreaturesInput contains parameters for instancing templates into
// an encounter. EncounterID empty means create a new encounter (named
// Name, or auto-named from the template count).
type ImportCreaturesInput struct {
	OwnerID     string
	EncounterID string
	Name        string
	Items       []ImportItem
}

// ImportCreaturesOutput contains the destination encounter
type ImportCreaturesOutput struct {
	Encounter *entities.Encounter
}

// AdjustHPInput contains parameters for a signed HP change
type AdjustHPInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Amount      int
}

// AdjustHPOutput contains the updated combatant
type AdjustHPOutput struct {
	Combatant *entities.Combatant
}

// ApplyHPTextInput contains parameters for the free-text HP field
type ApplyHPTextInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Input       string
}

// ApplyHPTextOutput contains the updated combatant
type ApplyHPTextOutput struct {
	Combatant *entities.Combatant
}

// SetTempHPInput contains parameters for replacing temp HP
type SetTempHPInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Value       int
}

// SetTempHPOutput contains the updated combatant
type SetTempHPOutput struct {
	Combatant *entities.Combatant
}

// ToggleSpellSlotInput contains parameters for a spell slot pip toggle
type ToggleSpellSlotInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Level       int
	Pip         int
}

// ToggleSpellSlotOutput contains the updated combatant
type ToggleSpellSlotOutput struct {
	Combatant *entities.Combatant
}

// ToggleLegendaryActionInput contains parameters for a legendary action pip
type ToggleLegendaryActionInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Pip         int
}

// ToggleLegendaryActionOutput contains the updated combatant
type ToggleLegendaryActionOutput struct {
	Combatant *entities.Combatant
}

// ToggleLegendaryResistanceInput contains parameters for a resistance pip
type ToggleLegendaryResistanceInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Pip         int
}

// ToggleLegendaryResistanceOutput contains the updated combatant
type ToggleLegendaryResistanceOutput struct {
	Combatant *entities.Combatant
}

// RefillLegendaryActionsInput contains parameters for the top-of-turn refill
type RefillLegendaryActionsInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
}

// RefillLegendaryActionsOutput contains the updated combatant
type RefillLegendaryActionsOutput struct {
	Combatant *entities.Combatant
}

// ToggleRechargeInput contains parameters for flipping a recharge ability
type ToggleRechargeInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Index       int
}

// ToggleRechargeOutput contains the updated combatant
type ToggleRechargeOutput struct {
	Combatant *entities.Combatant
}

// ToggleLimitedInput contains parameters for a limited-use pip toggle
type ToggleLimitedInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	Index       int
	Pip         int
}

// ToggleLimitedOutput contains the updated combatant
type ToggleLimitedOutput struct {
	Combatant *entities.Combatant
}

// RenameCombatantInput contains parameters for renaming a combatant
type RenameCombatantInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	DisplayName string
}

// RenameCombatantOutput contains the updated combatant
type RenameCombatantOutput struct {
	Combatant *entities.Combatant
}

// DuplicateCombatantInput contains parameters for copying a combatant
type DuplicateCombatantInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
}

// DuplicateCombatantOutput contains the fresh copy
type DuplicateCombatantOutput struct {
	Combatant *entities.Combatant
}

// DeleteCombatantInput contains parameters for removing a combatant
type DeleteCombatantInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
}

// DeleteCombatantOutput is the result of removing a combatant
type DeleteCombatantOutput struct{}

// SendToBattleInput contains parameters for pushing a combatant into a
// battle's turn order
type SendToBattleInput struct {
	OwnerID     string
	EncounterID string
	CombatantID string
	BattleID    string
	Initiative  int
}

// SendToBattleOutput contains the updated battle
type SendToBattleOutput struct {
	Battle *entities.Battle
}
