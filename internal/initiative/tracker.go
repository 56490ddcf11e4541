// Package initiative implements the turn-order engine for battles.
//
// Combat order is a pure function of stored fields: a stable sort by
// initiative descending, then sortOrder ascending. sortOrder is assigned
// once at insertion and only ever changes through an explicit tie-break
// swap between equal-initiative neighbors.
//
// Every mutation that can reorder the list follows the same protocol:
// record the id of the character whose turn it is, apply the mutation,
// re-sort, and point currentTurnIndex at that id's new position. Turn
// identity survives adds, removals, and initiative edits.
package initiative

import (
	"sort"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
)

// Tracker mutates a battle's turn order in place. It does not persist;
// callers save the battle after a successful operation.
type Tracker struct {
	battle *entities.Battle
}

// NewTracker wraps a battle. The battle's character slice stays in
// creation order; combat order is always derived via Sorted.
func NewTracker(b *entities.Battle) *Tracker {
	return &Tracker{battle: b}
}

// Sorted returns the characters in combat order.
func (t *Tracker) Sorted() []entities.BattleCharacter {
	out := make([]entities.BattleCharacter, len(t.battle.Characters))
	copy(out, t.battle.Characters)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Initiative != out[j].Initiative {
			return out[i].Initiative > out[j].Initiative
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// Current returns the character whose turn it is. ok is false for an
// empty battle.
func (t *Tracker) Current() (entities.BattleCharacter, bool) {
	sorted := t.Sorted()
	if len(sorted) == 0 {
		return entities.BattleCharacter{}, false
	}

	idx := t.battle.CurrentTurnIndex
	if idx < 0 || idx >= len(sorted) {
		idx = 0
	}
	return sorted[idx], true
}

// Add inserts a character, assigning the next sortOrder so it lands
// after existing characters with the same initiative. The current
// actor's identity is preserved across the re-sort.
func (t *Tracker) Add(ch entities.BattleCharacter) {
	curID, hasCur := t.currentID()

	ch.SortOrder = t.nextSortOrder()
	t.battle.Characters = append(t.battle.Characters, ch)

	if hasCur {
		t.remap(curID)
	}
}

// Remove deletes a character by id. If the removed character held the
// current turn, the previous numeric index is clamped into the new list
// bounds, so the turn passes to whoever now occupies that slot. An empty
// result resets the index to 0.
func (t *Tracker) Remove(id string) error {
	curID, _ := t.currentID()
	oldIndex := t.battle.CurrentTurnIndex

	found := false
	for i, ch := range t.battle.Characters {
		if ch.ID == id {
			t.battle.Characters = append(t.battle.Characters[:i], t.battle.Characters[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return errors.NotFoundf("character %q not in battle", id)
	}

	n := len(t.battle.Characters)
	if n == 0 {
		t.battle.CurrentTurnIndex = 0
		return nil
	}

	if id == curID {
		if oldIndex >= n {
			oldIndex = n - 1
		}
		if oldIndex < 0 {
			oldIndex = 0
		}
		t.battle.CurrentTurnIndex = oldIndex
		return nil
	}

	t.remap(curID)
	return nil
}

// SetInitiative updates a character's initiative and re-sorts,
// preserving the current actor's identity.
func (t *Tracker) SetInitiative(id string, initiative int) error {
	curID, hasCur := t.currentID()

	ch := t.find(id)
	if ch == nil {
		return errors.NotFoundf("character %q not in battle", id)
	}
	ch.Initiative = initiative

	if hasCur {
		t.remap(curID)
	}
	return nil
}

// MoveUp swaps a character with the neighbor above it in combat order.
// Allowed only when the two share the same initiative; the swap
// exchanges their sortOrder values.
func (t *Tracker) MoveUp(id string) error {
	return t.swapWithNeighbor(id, -1)
}

// MoveDown swaps a character with the neighbor below it in combat order.
func (t *Tracker) MoveDown(id string) error {
	return t.swapWithNeighbor(id, 1)
}

func (t *Tracker) swapWithNeighbor(id string, delta int) error {
	sorted := t.Sorted()

	pos := -1
	for i, ch := range sorted {
		if ch.ID == id {
			pos = i
			break
		}
	}
	if pos < 0 {
		return errors.NotFoundf("character %q not in battle", id)
	}

	neighborPos := pos + delta
	if neighborPos < 0 || neighborPos >= len(sorted) {
		return errors.FailedPrecondition("no neighbor to swap with")
	}
	if sorted[neighborPos].Initiative != sorted[pos].Initiative {
		return errors.FailedPrecondition("can only reorder characters with equal initiative")
	}

	curID, hasCur := t.currentID()

	a := t.find(sorted[pos].ID)
	b := t.find(sorted[neighborPos].ID)
	a.SortOrder, b.SortOrder = b.SortOrder, a.SortOrder

	if hasCur {
		t.remap(curID)
	}
	return nil
}

// Next advances the turn. Wrapping past the end starts a new round.
// No-op on an empty battle.
func (t *Tracker) Next() {
	n := len(t.battle.Characters)
	if n == 0 {
		return
	}

	t.battle.CurrentTurnIndex = (t.battle.CurrentTurnIndex + 1) % n
	if t.battle.CurrentTurnIndex == 0 {
		t.battle.CurrentRound++
	}
}

// Previous steps the turn backward. Wrapping before the start rewinds
// the round, never below 1. No-op on an empty battle.
func (t *Tracker) Previous() {
	n := len(t.battle.Characters)
	if n == 0 {
		return
	}

	if t.battle.CurrentTurnIndex == 0 {
		t.battle.CurrentTurnIndex = n - 1
		t.battle.CurrentRound = max(t.battle.CurrentRound-1, 1)
		return
	}
	t.battle.CurrentTurnIndex--
}

// Reset returns the battle to the top of round one.
func (t *Tracker) Reset() {
	t.battle.CurrentTurnIndex = 0
	t.battle.CurrentRound = 1
}

func (t *Tracker) find(id string) *entities.BattleCharacter {
	for i := range t.battle.Characters {
		if t.battle.Characters[i].ID == id {
			return &t.battle.Characters[i]
		}
	}
	return nil
}

func (t *Tracker) currentID() (string, bool) {
	sorted := t.Sorted()
	if len(sorted) == 0 {
		return "", false
	}

	idx := t.battle.CurrentTurnIndex
	if idx < 0 || idx >= len(sorted) {
		idx = 0
	}
	return sorted[idx].ID, true
}

func (t *Tracker) remap(id string) {
	sorted := t.Sorted()
	if len(sorted) == 0 {
		t.battle.CurrentTurnIndex = 0
		return
	}

	for i, ch := range sorted {
		if ch.ID == id {
			t.battle.CurrentTurnIndex = i
			return
		}
	}
	t.battle.CurrentTurnIndex = 0
}

func (t *Tracker) nextSortOrder() int {
	next := 0
	for _, ch := range t.battle.Characters {
		if ch.SortOrder >= next {
			next = ch.SortOrder + 1
		}
	}
	return next
}
