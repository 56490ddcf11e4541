package statblock

import "strings"

// mojibake pairs repair byte sequences that show up when UTF-8 export
// text gets re-decoded as Latin-1. This is a fixed best-effort table,
// not an encoding detector. Order matters: the longer smart-quote
// sequences must be tried before the bare "â€" fallback.
var mojibake = [][2]string{
	{"â€\"", "–"},
	{"â€\"\"", "—"},
	{"Â ", " "},
	{"â€™", "'"},
	{"â€œ", `"`},
	{"â€", `"`},
}

// normalize converts line endings to bare newlines and repairs common
// transcoding artifacts before tokenizing.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, pair := range mojibake {
		text = strings.ReplaceAll(text, pair[0], pair[1])
	}
	return text
}
