package entities

import "time"

// GroupCharacter is a player character stored in a reusable group.
type GroupCharacter struct {
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl"`
}

// PlayerGroup is a saved party roster. Starting a battle from a group
// seeds every member as a revealed PC at initiative 0.
type PlayerGroup struct {
	ID         string           `json:"id"`
	OwnerID    string           `json:"ownerId"`
	Name       string           `json:"name"`
	Characters []GroupCharacter `json:"characters"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}
