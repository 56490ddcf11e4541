package statblock

import "strings"

// tokenizeRows splits CSV text into rows of trimmed fields using a
// two-state character scanner. Newlines inside quoted fields are kept
// literally, which is what lets multi-paragraph ability text survive as
// a single cell. A doubled quote inside a quoted field emits a literal
// quote. Rows whose fields are all empty are discarded.
func tokenizeRows(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	endField := func() {
		row = append(row, strings.TrimSpace(field.String()))
		field.Reset()
	}
	endRow := func() {
		endField()
		for _, f := range row {
			if f != "" {
				rows = append(rows, row)
				break
			}
		}
		row = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
				continue
			}
			field.WriteRune(ch)
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			endField()
		case '\n':
			endRow()
		default:
			field.WriteRune(ch)
		}
	}
	endRow()

	return rows
}
