package statblock

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmforge/initiative-api/internal/errors"
)

func TestParse_BasicCreature(t *testing.T) {
	csv := "Name,HP,AC\n\"Goblin\",\"7 (2d6)\",\"15\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	c := creatures[0]
	assert.Equal(t, "Goblin", c.Name)
	assert.Equal(t, 7, c.MaxHP)
	assert.Equal(t, "7 (2d6)", c.HPFormula)
	assert.Equal(t, 15, c.AC)
}

func TestParse_HeaderOrderIrrelevant(t *testing.T) {
	csv := "AC,Name,HP\n15,Goblin,7\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, "Goblin", creatures[0].Name)
	assert.Equal(t, 7, creatures[0].MaxHP)
	assert.Equal(t, 15, creatures[0].AC)
}

func TestParse_HeaderCanonicalization(t *testing.T) {
	csv := "Name,HP,AC,Saving Throws,Damage Resistances\nOgre,59,11,\"Con +5\",\"fire\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, "Con +5", creatures[0].SavingThrows)
	assert.Equal(t, "fire", creatures[0].Resistances)
}

func TestParse_QuotedNewlinesPreserved(t *testing.T) {
	csv := "Name,HP,AC,Traits\n\"Lich\",135,17,\"Line1\n\nLine2\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, "Line1\n\nLine2", creatures[0].Traits)
}

func TestParse_EscapedQuotes(t *testing.T) {
	csv := "Name,HP,AC\n\"The \"\"Butcher\"\"\",30,14\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, `The "Butcher"`, creatures[0].Name)
}

func TestParse_TooFewRows(t *testing.T) {
	_, err := Parse("Name,HP,AC\n")
	assert.True(t, errors.IsInvalidArgument(err))

	_, err = Parse("")
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestParse_SkipsMalformedRows(t *testing.T) {
	csv := "Name,HP,AC\n" +
		"Goblin,7,15\n" +
		"OnlyTwo,5\n" + // fewer than three fields
		",12,10\n" + // no name
		"Ogre,59,11\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 2)
	assert.Equal(t, "Goblin", creatures[0].Name)
	assert.Equal(t, "Ogre", creatures[1].Name)
}

func TestParse_TrailingBlankLines(t *testing.T) {
	csv := "Name,HP,AC\nGoblin,7,15\n\n\n,,\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	assert.Len(t, creatures, 1)
}

func TestParse_Defaults(t *testing.T) {
	csv := "Name,HP,AC\nMystery,unknown,none\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, 10, creatures[0].MaxHP)
	assert.Equal(t, 10, creatures[0].AC)
}

func TestParse_CRStripsXP(t *testing.T) {
	csv := "Name,HP,AC,CR\nDragon,256,19,\"14 (11 500 XP)\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, "14", creatures[0].CR)
}

func TestParse_AbilityScores(t *testing.T) {
	csv := "Name,HP,AC,Strength,Dexterity,Constitution,Intelligence,Wisdom,Charisma\n" +
		"Ogre,59,11,19 (+4),8 (-1),16 (+3),5,7,7\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	s := creatures[0].Abilities
	assert.Equal(t, 19, s.Strength)
	assert.Equal(t, 8, s.Dexterity)
	assert.Equal(t, 16, s.Constitution)
	assert.Equal(t, 5, s.Intelligence)
}

func TestParse_LegendaryResistance(t *testing.T) {
	csv := "Name,HP,AC,Traits\n" +
		"\"Lich\",135,17,\"Legendary Resistance (3/Day). If the lich fails a saving throw, it can choose to succeed instead.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	c := creatures[0]
	assert.True(t, c.HasLegendaryResistance)
	assert.Equal(t, 3, c.LegendaryResistanceCount)
}

func TestParse_LegendaryActions(t *testing.T) {
	t.Run("default count", func(t *testing.T) {
		csv := "Name,HP,AC,Legendary Actions\n" +
			"\"Dragon\",256,19,\"Detect. The dragon makes a Wisdom check.\"\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)
		assert.True(t, creatures[0].HasLegendary)
		assert.Equal(t, 3, creatures[0].LegendaryActionsCount)
	})

	t.Run("explicit count", func(t *testing.T) {
		csv := "Name,HP,AC,Legendary Actions\n" +
			"\"Dragon\",256,19,\"The dragon can take 2 legendary actions.\"\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)
		assert.Equal(t, 2, creatures[0].LegendaryActionsCount)
	})

	t.Run("empty text means none", func(t *testing.T) {
		csv := "Name,HP,AC,Legendary Actions\nGoblin,7,15,\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)
		assert.False(t, creatures[0].HasLegendary)
	})
}

func TestParse_RechargeDedup(t *testing.T) {
	csv := "Name,HP,AC,Actions\n" +
		"\"Dragon\",256,19,\"Fire Breath (Recharge 5–6). The dragon exhales fire. Fire Breath (Recharge 5–6). Duplicated text.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	abilities := creatures[0].RechargeAbilities
	require.Len(t, abilities, 1)
	assert.Equal(t, "Fire Breath", abilities[0].Name)
	assert.Equal(t, 5, abilities[0].RechargeOn)
}

func TestParse_RechargeDashVariants(t *testing.T) {
	csv := "Name,HP,AC,Actions,Bonus Actions\n" +
		"\"Behir\",168,17,\"Lightning Breath (Recharge 5-6). Zap.\",\"Swallow (Recharge 6-6). Gulp.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	abilities := creatures[0].RechargeAbilities
	require.Len(t, abilities, 2)
	assert.Equal(t, "Lightning Breath", abilities[0].Name)
	assert.Equal(t, 5, abilities[0].RechargeOn)
	assert.Equal(t, "Swallow", abilities[1].Name)
	assert.Equal(t, 6, abilities[1].RechargeOn)
}

func TestParse_LimitedUseAbilities(t *testing.T) {
	t.Run("per-day list explodes", func(t *testing.T) {
		csv := "Name,HP,AC,Traits\n" +
			"\"Drow Mage\",45,12,\"1/day each: detect magic, levitate (self only), dispel magic.\"\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)

		abilities := creatures[0].LimitedAbilities
		require.Len(t, abilities, 3)
		assert.Equal(t, "detect magic", abilities[0].Name)
		assert.Equal(t, 1, abilities[0].MaxUses)
		// Parenthetical annotation is stripped.
		assert.Equal(t, "levitate", abilities[1].Name)
		assert.Equal(t, "dispel magic", abilities[2].Name)
	})

	t.Run("named trait format", func(t *testing.T) {
		csv := "Name,HP,AC,Traits\n" +
			"\"Deva\",136,17,\"Healing Touch (3/Day). The deva touches a creature.\"\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)

		abilities := creatures[0].LimitedAbilities
		require.Len(t, abilities, 1)
		assert.Equal(t, "Healing Touch", abilities[0].Name)
		assert.Equal(t, 3, abilities[0].MaxUses)
	})

	t.Run("legendary resistance is excluded", func(t *testing.T) {
		csv := "Name,HP,AC,Traits\n" +
			"\"Lich\",135,17,\"Legendary Resistance (3/Day)\"\n"

		creatures, err := Parse(csv)
		require.NoError(t, err)
		require.Len(t, creatures, 1)
		assert.Empty(t, creatures[0].LimitedAbilities)
	})
}

func TestParse_Spellcasting(t *testing.T) {
	csv := "Name,HP,AC,Traits\n" +
		"\"Archmage\",99,12,\"Spellcasting. The archmage is an 18th-level spellcaster (spell save DC 17, +9 to hit with spell attacks). " +
		"1st-level (4 slots): magic missile. 2nd-level (3 slots): mirror image.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	c := creatures[0]
	assert.True(t, c.IsSpellcaster)
	assert.Equal(t, 17, c.SpellDC)
	assert.Equal(t, 9, c.SpellAttack)
	assert.Equal(t, map[int]int{1: 4, 2: 3}, c.SpellSlots)
	assert.Contains(t, c.Spells, "Spellcasting")
}

func TestParse_SpellcastingDefaults(t *testing.T) {
	csv := "Name,HP,AC,Traits\n\"Cultist\",9,12,\"Innate Spellcasting. At will: darkness.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)

	c := creatures[0]
	assert.True(t, c.IsSpellcaster)
	assert.Equal(t, 13, c.SpellDC)
	assert.Equal(t, 5, c.SpellAttack)
	assert.Empty(t, c.SpellSlots)
}

func TestParse_NonSpellcaster(t *testing.T) {
	csv := "Name,HP,AC,Actions\nOgre,59,11,\"Greatclub. Melee Weapon Attack.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.False(t, creatures[0].IsSpellcaster)
}

func TestParse_TabEncodedLineBreaks(t *testing.T) {
	csv := "Name,HP,AC,Actions\n\"Goblin\",7,15,\"Scimitar.\t\tShortbow.\"\n"

	creatures, err := Parse(csv)
	require.NoError(t, err)
	require.Len(t, creatures, 1)
	assert.Equal(t, "Scimitar.\n\nShortbow.", creatures[0].Actions)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a\nb\nc", normalize("a\r\nb\rc"))
	assert.Equal(t, "it's", normalize("itâ€™s"))
	assert.Equal(t, "Recharge 5–6", normalize("Recharge 5â€\"6"))
	assert.Equal(t, " ", normalize("Â "))
}

func TestTokenizeRows(t *testing.T) {
	t.Run("last row without trailing newline", func(t *testing.T) {
		rows := tokenizeRows("a,b\nc,d")
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"c", "d"}, rows[1])
	})

	t.Run("fields are trimmed", func(t *testing.T) {
		rows := tokenizeRows("a ,  b\n")
		require.Len(t, rows, 1)
		assert.Equal(t, []string{"a", "b"}, rows[0])
	})

	t.Run("all-empty rows dropped", func(t *testing.T) {
		rows := tokenizeRows("a,b\n,\n\n")
		assert.Len(t, rows, 1)
	})
}
