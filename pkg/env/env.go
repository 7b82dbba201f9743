// Package env reads process environment variables that sit outside the
// INVENTAIRE-prefixed envconfig struct, such as LOG_FORMAT.
package env

import "os"

// Get returns the variable's value, or fallback when it is unset or empty.
// Empty counts as unset: the legacy deploy scripts export blank values for
// everything they do not configure.
func Get(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
