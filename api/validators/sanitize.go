package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the value at maxLen
// bytes. Barcode and building-name path segments run through this before
// reaching the services; maxLen <= 0 disables the cap.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		trimmed = trimmed[:maxLen]
	}
	return trimmed
}
