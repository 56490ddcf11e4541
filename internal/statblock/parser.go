// Package statblock parses creature stat blocks out of CSV exports.
//
// The input is raw text from third-party tooling: multi-line quoted
// fields, inconsistent column order, and transcoding artifacts are all
// expected. Parsing is permissive: malformed rows are skipped, numeric
// fields fall back to defaults, and only a structurally empty document
// is an error.
package statblock

import (
	"strings"

	"github.com/dmforge/initiative-api/internal/entities"
	"github.com/dmforge/initiative-api/internal/errors"
)

// Parse turns CSV text into creature templates. The first row is the
// header; data rows are indexed by header name, not position. Rows with
// fewer than three fields or no name are dropped.
func Parse(text string) ([]entities.Creature, error) {
	rows := tokenizeRows(normalize(text))
	if len(rows) < 2 {
		return nil, errors.InvalidArgument("csv must have a header row and at least one data row")
	}

	headers := headerMap(rows[0])

	var creatures []entities.Creature
	for _, row := range rows[1:] {
		if len(row) < 3 {
			continue
		}
		c, ok := extractCreature(row, headers)
		if ok {
			creatures = append(creatures, c)
		}
	}
	return creatures, nil
}

// headerMap canonicalizes header cells to lowercase letters only, so
// "Saving Throws", "saving-throws", and "SavingThrows" all map to the
// same key.
func headerMap(header []string) map[string]int {
	m := make(map[string]int, len(header))
	for i, h := range header {
		key := canonicalKey(h)
		if key != "" {
			m[key] = i
		}
	}
	return m
}

func canonicalKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func extractCreature(row []string, headers map[string]int) (entities.Creature, bool) {
	get := func(key string) string {
		idx, ok := headers[key]
		if !ok || idx >= len(row) {
			return ""
		}
		// Some exports encode line breaks inside cells as tabs.
		v := strings.ReplaceAll(row[idx], "\t\t", "\n\n")
		return strings.ReplaceAll(v, "\t", "\n")
	}

	name := get("name")
	if name == "" {
		return entities.Creature{}, false
	}

	hpText := get("hp")
	acText := get("ac")
	traits := get("traits")
	actions := get("actions")
	bonusActions := get("bonusactions")
	legendaryText := get("legendaryactions")

	hasLegRes, legResCount := extractLegendaryResistance(traits)
	hasLegendary, legActCount := extractLegendaryActions(legendaryText)

	actionsAndTraits := actions + " " + traits
	isSpellcaster := detectSpellcaster(actionsAndTraits)

	c := entities.Creature{
		Name:      name,
		MaxHP:     leadingInt(hpText, 10),
		HPFormula: hpText,
		AC:        leadingInt(acText, 10),
		ACText:    acText,
		Size:      get("size"),
		Type:      get("type"),
		CR:        cleanCR(get("cr")),
		Speed:     get("speed"),
		Abilities: entities.AbilityScores{
			Strength:     leadingInt(get("strength"), 10),
			Dexterity:    leadingInt(get("dexterity"), 10),
			Constitution: leadingInt(get("constitution"), 10),
			Intelligence: leadingInt(get("intelligence"), 10),
			Wisdom:       leadingInt(get("wisdom"), 10),
			Charisma:     leadingInt(get("charisma"), 10),
		},
		Senses:              get("senses"),
		SavingThrows:        get("savingthrows"),
		Skills:              get("skills"),
		Resistances:         get("damageresistances"),
		Immunities:          get("damageimmunities"),
		ConditionImmunities: get("conditionimmunities"),
		Traits:              traits,
		Actions:             actions,
		BonusActions:        bonusActions,
		Reactions:           get("reactions"),
		LegendaryActions:    legendaryText,
		LairActions:         get("lairactions"),

		IsSpellcaster: isSpellcaster,
		SpellDC:       extractSpellDC(actionsAndTraits),
		SpellAttack:   extractSpellAttack(actionsAndTraits),
		SpellSlots:    extractSpellSlots(actionsAndTraits),
		Spells:        extractSpellsBlock(traits + " " + actions),

		HasLegendary:             hasLegendary,
		LegendaryActionsCount:    legActCount,
		HasLegendaryResistance:   hasLegRes,
		LegendaryResistanceCount: legResCount,

		RechargeAbilities: extractRecharge(actions + " " + bonusActions),
		LimitedAbilities:  extractLimited(actions, traits),
	}

	return c, true
}
