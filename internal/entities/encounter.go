package entities

import (
	"strings"
	"time"
)

// Encounter is a prepared set of combatants a DM builds ahead of a
// session, usually by importing a stat block CSV.
type Encounter struct {
	ID          string       `json:"id"`
	OwnerID     string       `json:"ownerId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Combatants  []*Combatant `json:"combatants"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// NextOrdinal returns the instance number the next copy of baseName
// should carry: one more than the count of combatants sharing that base
// name.
func (e *Encounter) NextOrdinal(baseName string) int {
	count := 0
	for _, cb := range e.Combatants {
		if strings.EqualFold(cb.BaseName, baseName) {
			count++
		}
	}
	return count + 1
}

// FindCombatant returns the combatant with the given ID, or nil.
func (e *Encounter) FindCombatant(id string) *Combatant {
	for _, cb := range e.Combatants {
		if cb.ID == id {
			return cb
		}
	}
	return nil
}

// RemoveCombatant deletes the combatant with the given ID, reporting
// whether it was present.
func (e *Encounter) RemoveCombatant(id string) bool {
	for i, cb := range e.Combatants {
		if cb.ID == id {
			e.Combatants = append(e.Combatants[:i], e.Combatants[i+1:]...)
			return true
		}
	}
	return false
}
