package entities

import "time"

// BattleCharacter is one row of a battle's turn order. NPCs can be
// hidden from players until the DM reveals them.
type BattleCharacter struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsNPC      bool   `json:"isNpc"`
	IsRevealed bool   `json:"isRevealed"`
	Initiative int    `json:"initiative"`
	ImageURL   string `json:"imageUrl"`
	IsLair     bool   `json:"isLair"`

	// SortOrder breaks initiative ties: lower sorts first among equal
	// initiatives. Assigned as max+1 on insert so later additions land
	// after earlier ones.
	SortOrder int `json:"sortOrder"`
}

// Battle is a running initiative tracker owned by one DM. At most one
// battle per owner is active at a time; players poll the active battle
// through the public endpoint.
type Battle struct {
	ID               string            `json:"id"`
	OwnerID          string            `json:"ownerId"`
	Name             string            `json:"name"`
	Characters       []BattleCharacter `json:"characters"`
	CurrentTurnIndex int               `json:"currentTurnIndex"`
	CurrentRound     int               `json:"currentRound"`
	IsActive         bool              `json:"isActive"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	ExpiresAt        time.Time         `json:"expiresAt"`
}

// PublicView returns a copy safe to serve to players: unrevealed NPCs
// get a placeholder name and lose their image.
func (b *Battle) PublicView() *Battle {
	out := *b
	out.Characters = make([]BattleCharacter, len(b.Characters))
	copy(out.Characters, b.Characters)

	for i := range out.Characters {
		ch := &out.Characters[i]
		if ch.IsNPC && !ch.IsRevealed {
			ch.Name = "?"
			ch.ImageURL = ""
		}
	}
	return &out
}
