package model

import "unicode/utf8"

// TruncateRunes caps s at maxRunes runes (Unicode-safe) and appends marker
// when the cap was hit. Text at or under the cap passes through unchanged.
func TruncateRunes(s string, maxRunes int, marker string) string {
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxRunes]) + marker
}
