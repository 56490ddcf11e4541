package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmforge/initiative-api/internal/errors"
)

// SpellSlotState tracks remaining spell slots for one level.
type SpellSlotState struct {
	Max     int `json:"max"`
	Current int `json:"current"`
}

// RechargeState is the live state of a recharge ability. Recharge
// abilities are binary: available or spent.
type RechargeState struct {
	Name       string `json:"name"`
	RechargeOn int    `json:"rechargeOn"`
	Available  bool   `json:"available"`
}

// LimitedState is the live state of a limited-use ability.
type LimitedState struct {
	Name        string `json:"name"`
	MaxUses     int    `json:"maxUses"`
	CurrentUses int    `json:"currentUses"`
}

// Combatant is an instanced creature inside an encounter, carrying live
// HP and per-resource tracker state. Created by stamping a Creature
// template; all resources start full.
type Combatant struct {
	ID          string `json:"id"`
	EncounterID string `json:"encounterId"`
	BaseName    string `json:"baseName"`
	DisplayName string `json:"displayName"`

	Creature Creature `json:"creature"`

	CurrentHP int `json:"currentHp"`
	TempHP    int `json:"tempHp"`

	SpellSlots map[int]*SpellSlotState `json:"spellSlotsState"`
	Recharge   []RechargeState         `json:"rechargeState"`
	Limited    []LimitedState          `json:"limitedState"`

	LegendaryActionsRemaining    int `json:"legendaryActionsRemaining"`
	LegendaryResistanceRemaining int `json:"legendaryResistanceRemaining"`
}

// NewCombatant instances a creature template. copyNum is 1-based; the
// display name carries a "#k" ordinal only when more than one copy is
// being created.
func NewCombatant(id, encounterID string, c Creature, copyNum, totalCopies int) *Combatant {
	displayName := c.Name
	if totalCopies > 1 {
		displayName = fmt.Sprintf("%s #%d", c.Name, copyNum)
	}

	cb := &Combatant{
		ID:          id,
		EncounterID: encounterID,
		BaseName:    c.Name,
		DisplayName: displayName,
		Creature:    c,
		CurrentHP:   c.MaxHP,
		TempHP:      0,
	}
	cb.resetResources()
	return cb
}

// Duplicate copies a combatant with fresh resource state. ordinal is the
// 1-based instance number among same-template combatants; HP and resource
// depletion are not carried over.
func (cb *Combatant) Duplicate(id string, ordinal int) *Combatant {
	cp := NewCombatant(id, cb.EncounterID, cb.Creature, ordinal, 2)
	cp.BaseName = cb.BaseName
	cp.DisplayName = fmt.Sprintf("%s #%d", cb.BaseName, ordinal)
	return cp
}

func (cb *Combatant) resetResources() {
	c := cb.Creature

	cb.SpellSlots = make(map[int]*SpellSlotState, len(c.SpellSlots))
	for level, maxSlots := range c.SpellSlots {
		cb.SpellSlots[level] = &SpellSlotState{Max: maxSlots, Current: maxSlots}
	}

	cb.Recharge = make([]RechargeState, len(c.RechargeAbilities))
	for i, a := range c.RechargeAbilities {
		cb.Recharge[i] = RechargeState{Name: a.Name, RechargeOn: a.RechargeOn, Available: true}
	}

	cb.Limited = make([]LimitedState, len(c.LimitedAbilities))
	for i, a := range c.LimitedAbilities {
		cb.Limited[i] = LimitedState{Name: a.Name, MaxUses: a.MaxUses, CurrentUses: a.MaxUses}
	}

	cb.LegendaryActionsRemaining = c.LegendaryActionsCount
	cb.LegendaryResistanceRemaining = c.LegendaryResistanceCount
}

// TogglePip applies the uniform pip-row rule: clicking an available pip
// (pip < current) spends it and every higher pip, snapping current to
// pip; clicking a used pip restores up through it, snapping current to
// pip+1.
func TogglePip(current, pip int) int {
	if pip < current {
		return pip
	}
	return pip + 1
}

// ToggleSpellSlot toggles pip `pip` of the slot row for the given level.
func (cb *Combatant) ToggleSpellSlot(level, pip int) error {
	slots, ok := cb.SpellSlots[level]
	if !ok {
		return errors.InvalidArgumentf("no spell slots at level %d", level)
	}
	if pip < 0 || pip >= slots.Max {
		return errors.InvalidArgumentf("slot index %d out of range for level %d", pip, level)
	}

	slots.Current = TogglePip(slots.Current, pip)
	return nil
}

// ToggleLegendaryAction toggles pip `pip` of the legendary action row.
func (cb *Combatant) ToggleLegendaryAction(pip int) error {
	if !cb.Creature.HasLegendary {
		return errors.FailedPrecondition("combatant has no legendary actions")
	}
	if pip < 0 || pip >= cb.Creature.LegendaryActionsCount {
		return errors.InvalidArgumentf("legendary action index %d out of range", pip)
	}

	cb.LegendaryActionsRemaining = TogglePip(cb.LegendaryActionsRemaining, pip)
	return nil
}

// ToggleLegendaryResistance toggles pip `pip` of the legendary resistance
// row. There is no refill shortcut for resistance; restoring goes through
// the pip rule only.
func (cb *Combatant) ToggleLegendaryResistance(pip int) error {
	if !cb.Creature.HasLegendaryResistance {
		return errors.FailedPrecondition("combatant has no legendary resistance")
	}
	if pip < 0 || pip >= cb.Creature.LegendaryResistanceCount {
		return errors.InvalidArgumentf("legendary resistance index %d out of range", pip)
	}

	cb.LegendaryResistanceRemaining = TogglePip(cb.LegendaryResistanceRemaining, pip)
	return nil
}

// RefillLegendaryActions restores legendary actions to max, called at the
// top of the creature's turn.
func (cb *Combatant) RefillLegendaryActions() error {
	if !cb.Creature.HasLegendary {
		return errors.FailedPrecondition("combatant has no legendary actions")
	}
	cb.LegendaryActionsRemaining = cb.Creature.LegendaryActionsCount
	return nil
}

// ToggleRecharge flips a recharge ability between available and spent.
func (cb *Combatant) ToggleRecharge(index int) error {
	if index < 0 || index >= len(cb.Recharge) {
		return errors.InvalidArgumentf("recharge ability index %d out of range", index)
	}
	cb.Recharge[index].Available = !cb.Recharge[index].Available
	return nil
}

// ToggleLimited toggles pip `pip` of a limited-use ability row.
func (cb *Combatant) ToggleLimited(index, pip int) error {
	if index < 0 || index >= len(cb.Limited) {
		return errors.InvalidArgumentf("limited ability index %d out of range", index)
	}
	ability := &cb.Limited[index]
	if pip < 0 || pip >= ability.MaxUses {
		return errors.InvalidArgumentf("use index %d out of range for %q", pip, ability.Name)
	}

	ability.CurrentUses = TogglePip(ability.CurrentUses, pip)
	return nil
}

// AdjustHP applies a signed HP delta. Damage (negative amounts) is
// absorbed by temp HP first; only the remainder reduces current HP,
// floored at 0. Healing adds directly to current HP, capped at max, and
// never touches temp HP.
func (cb *Combatant) AdjustHP(amount int) {
	if amount < 0 {
		cb.applyDamage(-amount)
		return
	}

	cb.CurrentHP = min(cb.Creature.MaxHP, cb.CurrentHP+amount)
}

func (cb *Combatant) applyDamage(damage int) {
	if cb.TempHP >= damage {
		cb.TempHP -= damage
		return
	}

	damage -= cb.TempHP
	cb.TempHP = 0
	cb.CurrentHP = max(0, cb.CurrentHP-damage)
}

// SetTempHP replaces the temp HP value (not additive), floored at 0.
func (cb *Combatant) SetTempHP(value int) {
	cb.TempHP = max(0, value)
}

// ApplyHPInput interprets a free-text HP field: "+N" heals, "-N" damages
// (through temp HP), and a bare number sets current HP directly, clamped
// to [0, max].
func (cb *Combatant) ApplyHPInput(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return errors.InvalidArgument("hp input is empty")
	}

	switch {
	case strings.HasPrefix(input, "+"):
		amount, err := strconv.Atoi(input[1:])
		if err != nil {
			return errors.InvalidArgumentf("invalid hp input %q", input)
		}
		cb.CurrentHP = min(cb.Creature.MaxHP, cb.CurrentHP+amount)
	case strings.HasPrefix(input, "-"):
		damage, err := strconv.Atoi(input[1:])
		if err != nil {
			return errors.InvalidArgumentf("invalid hp input %q", input)
		}
		cb.applyDamage(damage)
	default:
		value, err := strconv.Atoi(input)
		if err != nil {
			return errors.InvalidArgumentf("invalid hp input %q", input)
		}
		cb.CurrentHP = max(0, min(cb.Creature.MaxHP, value))
	}

	return nil
}
