// Package entities defines the core data model: creature templates,
// instanced combatants with live resource state, battles, player groups,
// and users.
package entities

// AbilityScores holds the six D&D ability scores. Unset scores default
// to 10 at parse/entry time.
type AbilityScores struct {
	Strength     int `json:"str"`
	Dexterity    int `json:"dex"`
	Constitution int `json:"con"`
	Intelligence int `json:"int"`
	Wisdom       int `json:"wis"`
	Charisma     int `json:"cha"`
}

// DefaultAbilityScores returns all-10 scores.
func DefaultAbilityScores() AbilityScores {
	return AbilityScores{
		Strength:     10,
		Dexterity:    10,
		Constitution: 10,
		Intelligence: 10,
		Wisdom:       10,
		Charisma:     10,
	}
}

// RechargeAbility is an ability that becomes available again on a die
// roll of RechargeOn-6, e.g. "Fire Breath (Recharge 5-6)".
type RechargeAbility struct {
	Name       string `json:"name"`
	RechargeOn int    `json:"rechargeOn"` // 2-6
}

// LimitedAbility is an ability usable a fixed number of times per day.
type LimitedAbility struct {
	Name    string `json:"name"`
	MaxUses int    `json:"maxUses"` // >= 1
}

// Creature is a reusable, stateless stat-block template. Instancing a
// Creature produces a Combatant with live HP and resource state; the
// template itself is never mutated after parsing or authoring.
type Creature struct {
	Name      string `json:"name"`
	MaxHP     int    `json:"maxHp"`
	HPFormula string `json:"hpFormula"` // display string, e.g. "195 (17d12 + 85)"
	AC        int    `json:"ac"`
	ACText    string `json:"acText"` // display string, e.g. "18 (natural armor)"
	Size      string `json:"size"`
	Type      string `json:"type"`
	CR        string `json:"cr"` // free-form, may include fractions
	Speed     string `json:"speed"`

	Abilities AbilityScores `json:"stats"`

	Senses              string `json:"senses"`
	SavingThrows        string `json:"savingThrows"`
	Skills              string `json:"skills"`
	Resistances         string `json:"resistances"`
	Immunities          string `json:"immunities"`
	ConditionImmunities string `json:"conditionImmunities"`

	Traits           string `json:"traits"`
	Actions          string `json:"actions"`
	BonusActions     string `json:"bonusActions"`
	Reactions        string `json:"reactions"`
	LegendaryActions string `json:"legendaryActions"`
	LairActions      string `json:"lairActions"`

	IsSpellcaster bool        `json:"isSpellcaster"`
	SpellDC       int         `json:"spellDc"`
	SpellAttack   int         `json:"spellAttack"`
	SpellSlots    map[int]int `json:"spellSlots"` // level 1-9 -> max slots
	Spells        string      `json:"spells"`

	HasLegendary             bool `json:"hasLegendary"`
	LegendaryActionsCount    int  `json:"legendaryActionsCount"`
	HasLegendaryResistance   bool `json:"hasLegendaryResistance"`
	LegendaryResistanceCount int  `json:"legendaryResistanceCount"`

	RechargeAbilities []RechargeAbility `json:"rechargeAbilities"`
	LimitedAbilities  []LimitedAbility  `json:"limitedAbilities"`
}
