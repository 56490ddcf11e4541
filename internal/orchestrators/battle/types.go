package battle

import "github.com/dmforge/initiative-api/internal/entities"

// SwapDirection names the two tie-break swap directions.
type SwapDirection string

// Swap directions
const (
	SwapUp   SwapDirection = "up"
	SwapDown SwapDirection = "down"
)

// CreateBattleInput contains parameters for creating a battle
type CreateBattleInput struct {
	OwnerID string
	Name    string
	// GroupID optionally seeds the battle with a saved party.
	GroupID string
}

// CreateBattleOutput contains the created battle
type CreateBattleOutput struct {
	Battle *entities.Battle
}

// GetBattleInput contains parameters for fetching a battle
type GetBattleInput struct {
	OwnerID  string
	BattleID string
}

// GetBattleOutput contains the fetched battle
type GetBattleOutput struct {
	Battle *entities.Battle
}

// ListBattlesInput contains parameters for listing an owner's battles
type ListBattlesInput struct {
	OwnerID string
}

// ListBattlesOutput contains the owner's battles
type ListBattlesOutput struct {
	Battles []*entities.Battle
}

// GetPublicBattleInput contains parameters for the public snapshot.
// BattleID is optional; when empty the newest active battle is served.
type GetPublicBattleInput struct {
	BattleID string
}

// GetPublicBattleOutput contains the redacted battle, or nil when no
// battle is live.
type GetPublicBattleOutput struct {
	Battle *entities.Battle
}

// UpdateBattleInput contains parameters for renaming a battle
type UpdateBattleInput struct {
	OwnerID  string
	BattleID string
	Name     string
}

// UpdateBattleOutput contains the renamed battle
type UpdateBattleOutput struct {
	Battle *entities.Battle
}

// DeleteBattleInput contains parameters for deleting a battle
type DeleteBattleInput struct {
	OwnerID  string
	BattleID string
}

// DeleteBattleOutput is the result of deleting a battle
type DeleteBattleOutput struct{}

// EndBattleInput contains parameters for deactivating a battle
type EndBattleInput struct {
	OwnerID  string
	BattleID string
}

// EndBattleOutput contains the deactivated battle
type EndBattleOutput struct {
	Battle *entities.Battle
}

// ActivateBattleInput contains parameters for activating a battle
type ActivateBattleInput struct {
	OwnerID  string
	BattleID string
}

// ActivateBattleOutput contains the activated battle
type ActivateBattleOutput struct {
	Battle *entities.Battle
}

// RefreshExpirationInput contains parameters for extending a battle's life
type RefreshExpirationInput struct {
	OwnerID  string
	BattleID string
}

// RefreshExpirationOutput contains the refreshed battle
type RefreshExpirationOutput struct {
	Battle *entities.Battle
}

// AddCharacterInput contains parameters for adding one character
type AddCharacterInput struct {
	OwnerID  string
	BattleID string

	Name       string
	IsNPC      bool
	Initiative int
	ImageURL   string
}

// AddCharacterOutput contains the updated battle
type AddCharacterOutput struct {
	Battle *entities.Battle
}

// AddGroupInput contains parameters for bulk-adding a saved party
type AddGroupInput struct {
	OwnerID  string
	BattleID string
	GroupID  string
}

// AddGroupOutput contains the updated battle
type AddGroupOutput struct {
	Battle *entities.Battle
}

// AddLairInput contains parameters for adding the lair pseudo-combatant
type AddLairInput struct {
	OwnerID  string
	BattleID string
}

// AddLairOutput contains the updated battle
type AddLairOutput struct {
	Battle *entities.Battle
}

// RemoveCharacterInput contains parameters for removing a character
type RemoveCharacterInput struct {
	OwnerID     string
	BattleID    string
	CharacterID string
}

// RemoveCharacterOutput contains the updated battle
type RemoveCharacterOutput struct {
	Battle *entities.Battle
}

// SetInitiativeInput contains parameters for editing initiative
type SetInitiativeInput struct {
	OwnerID     string
	BattleID    string
	CharacterID string
	Initiative  int
}

// SetInitiativeOutput contains the updated battle
type SetInitiativeOutput struct {
	Battle *entities.Battle
}

// ToggleRevealInput contains parameters for toggling NPC visibility
type ToggleRevealInput struct {
	OwnerID     string
	BattleID    string
	CharacterID string
}

// ToggleRevealOutput contains the updated battle
type ToggleRevealOutput struct {
	Battle *entities.Battle
}

// SwapOrderInput contains parameters for a tie-break swap
type SwapOrderInput struct {
	OwnerID     string
	BattleID    string
	CharacterID string
	Direction   SwapDirection
}

// SwapOrderOutput contains the updated battle
type SwapOrderOutput struct {
	Battle *entities.Battle
}

// NextTurnInput contains parameters for advancing the turn
type NextTurnInput struct {
	OwnerID  string
	BattleID string
}

// NextTurnOutput contains the updated battle
type NextTurnOutput struct {
	Battle *entities.Battle
}

// PreviousTurnInput contains parameters for stepping the turn back
type PreviousTurnInput struct {
	OwnerID  string
	BattleID string
}

// PreviousTurnOutput contains the updated battle
type PreviousTurnOutput struct {
	Battle *entities.Battle
}

// ResetTurnsInput contains parameters for resetting to round one
type ResetTurnsInput struct {
	OwnerID  string
	BattleID string
}

// ResetTurnsOutput contains the updated battle
type ResetTurnsOutput struct {
	Battle *entities.Battle
}
