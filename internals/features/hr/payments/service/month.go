package service

import "strings"

// canonicalMonths in calendar order; index+1 is the month number.
var canonicalMonths = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// NormalizeMonth matches the input case-insensitively against the 12
// canonical month names. On a match it returns the canonical form; any
// other string is trimmed and returned unchanged so validation can
// reject it with a precise message. Idempotent.
func NormalizeMonth(input string) string {
	trimmed := strings.TrimSpace(input)
	for _, name := range canonicalMonths {
		if strings.EqualFold(trimmed, name) {
			return name
		}
	}
	return trimmed
}

// MonthIndex returns the 1-based calendar index of a canonical month
// name, or 0 when the name is not canonical.
func MonthIndex(canonical string) int {
	for i, name := range canonicalMonths {
		if canonical == name {
			return i + 1
		}
	}
	return 0
}
