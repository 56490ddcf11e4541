package statblock

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dmforge/initiative-api/internal/entities"
)

// Extraction is regex-driven and intentionally permissive: third-party
// exports are inconsistent, so every numeric coercion falls back to a
// sane default instead of failing the row.

var (
	leadingIntRe   = regexp.MustCompile(`^(\d+)`)
	crXPRe         = regexp.MustCompile(`(?i)\s*\([^)]*XP\)\s*$`)
	legResistRe    = regexp.MustCompile(`(?i)Legendary Resistance\s*\((\d+)/Day`)
	legActCountRe  = regexp.MustCompile(`(?i)can take (\d+) legendary action`)
	rechargeRe     = regexp.MustCompile(`(?i)([A-Za-z][^.]*?)\s*\(Recharge\s*(\d+)[–\-—]6\)`)
	limitedListRe  = regexp.MustCompile(`(\d+)/[Dd]ay(?:\s+each)?[:\s]+([^.]+?)(?:\.|\n|$)`)
	limitedNamedRe = regexp.MustCompile(`([A-Za-z][^.]*?)\s*\((\d+)/[Dd]ay\)`)
	parentheticRe  = regexp.MustCompile(`\([^)]*\)`)
	listSplitRe    = regexp.MustCompile(`,|;`)
	spellDCRe      = regexp.MustCompile(`(?i)spell save DC\s*(\d+)`)
	spellAtkRe     = regexp.MustCompile(`(?i)\+(\d+)\s*to hit with spell`)
	spellSlotRe    = regexp.MustCompile(`(?i)(\d+)(?:st|nd|rd|th)[-\s]*level\s*\((\d+)\s*slots?\)`)
	spellBlockRe   = regexp.MustCompile(`(?i)spellcasting`)
)

// leadingInt parses the digit run at the start of s, falling back to
// def. Handles values like "195 (17d12 + 85)" or "18 (natural armor)".
func leadingInt(s string, def int) int {
	m := leadingIntRe.FindStringSubmatch(s)
	if m == nil {
		return def
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return def
	}
	return n
}

// cleanCR strips trailing XP annotations, turning "14 (11 500 XP)" into
// "14".
func cleanCR(s string) string {
	return strings.TrimSpace(crXPRe.ReplaceAllString(s, ""))
}

// extractLegendaryResistance reports whether the traits mention
// Legendary Resistance and how many uses per day (default 3).
func extractLegendaryResistance(traits string) (bool, int) {
	m := legResistRe.FindStringSubmatch(traits)
	if m == nil {
		return false, 3
	}
	count := 3
	if n, err := strconv.Atoi(m[1]); err == nil {
		count = n
	}
	return true, count
}

// extractLegendaryActions reports whether the legendary-actions text is
// non-empty and the action count: 3 unless the text says "can take N
// legendary actions".
func extractLegendaryActions(text string) (bool, int) {
	has := strings.TrimSpace(text) != ""
	count := 3
	if m := legActCountRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			count = n
		}
	}
	return has, count
}

// extractRecharge finds "<Name> (Recharge N-6)" abilities, accepting
// hyphen, en-dash, or em-dash. Duplicate names keep the first-seen
// threshold.
func extractRecharge(text string) []entities.RechargeAbility {
	var out []entities.RechargeAbility
	for _, m := range rechargeRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		seen := false
		for _, a := range out {
			if a.Name == name {
				seen = true
				break
			}
		}
		if seen {
			continue
		}
		threshold, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, entities.RechargeAbility{Name: name, RechargeOn: threshold})
	}
	return out
}

// extractLimited finds limited-use abilities with two independent
// patterns. Pattern 1 explodes "N/Day each: A, B, C" lists found in
// actions and traits; pattern 2 matches "<Name> (N/Day)" in traits only,
// skipping Legendary Resistance (tracked separately). The two patterns
// dedupe within themselves but are not reconciled with each other.
func extractLimited(actions, traits string) []entities.LimitedAbility {
	var out []entities.LimitedAbility

	containsName := func(name string) bool {
		for _, a := range out {
			if strings.Contains(a.Name, name) {
				return true
			}
		}
		return false
	}

	listText := actions + " " + traits
	for _, m := range limitedListRe.FindAllStringSubmatch(listText, -1) {
		uses, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		for _, item := range listSplitRe.Split(m[2], -1) {
			name := strings.TrimSpace(parentheticRe.ReplaceAllString(strings.TrimSpace(item), ""))
			if len(name) > 1 && !containsName(name) {
				out = append(out, entities.LimitedAbility{Name: name, MaxUses: uses})
			}
		}
	}

	exactName := func(name string) bool {
		for _, a := range out {
			if a.Name == name {
				return true
			}
		}
		return false
	}

	for _, m := range limitedNamedRe.FindAllStringSubmatch(traits, -1) {
		name := strings.TrimSpace(m[1])
		if exactName(name) || strings.Contains(strings.ToLower(name), "legendary resistance") {
			continue
		}
		uses, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		out = append(out, entities.LimitedAbility{Name: name, MaxUses: uses})
	}

	return out
}

// detectSpellcaster looks for any of the markers a stat block uses to
// describe casting.
func detectSpellcaster(actionsAndTraits string) bool {
	t := strings.ToLower(actionsAndTraits)
	return strings.Contains(t, "spellcasting") ||
		strings.Contains(t, "spell save dc") ||
		strings.Contains(t, "spell attack") ||
		strings.Contains(t, "slots)")
}

// extractSpellDC returns the first "spell save DC N", default 13.
func extractSpellDC(text string) int {
	if m := spellDCRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 13
}

// extractSpellAttack returns the first "+N to hit with spell", default 5.
func extractSpellAttack(text string) int {
	if m := spellAtkRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}
	return 5
}

// extractSpellSlots records level to slot count for "1st-level (4
// slots)" style runs, levels 1 through 9. Later matches for the same
// level win.
func extractSpellSlots(text string) map[int]int {
	slots := make(map[int]int)
	for _, m := range spellSlotRe.FindAllStringSubmatch(text, -1) {
		level, err1 := strconv.Atoi(m[1])
		count, err2 := strconv.Atoi(m[2])
		if err1 != nil || err2 != nil {
			continue
		}
		if level >= 1 && level <= 9 {
			slots[level] = count
		}
	}
	return slots
}

// extractSpellsBlock returns the text from the first "spellcasting"
// mention up to the next blank line, else to the end of text.
func extractSpellsBlock(text string) string {
	loc := spellBlockRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	rest := text[loc[0]:]
	if end := strings.Index(rest, "\n\n"); end >= 0 {
		return rest[:end]
	}
	return rest
}
