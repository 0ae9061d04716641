package helper

import "strings"

// IsUniqueViolation sniffs driver error text for unique-constraint
// failures. Kept string-based on purpose: the same check covers pgx in
// production ("duplicate key value violates unique constraint") and
// sqlite in tests ("UNIQUE constraint failed").
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}
