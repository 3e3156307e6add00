package domain

import "strings"

const SecretCodeLength = 6

// SanitizeCode keeps ASCII digits only and truncates to SecretCodeLength.
func SanitizeCode(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if b.Len() == SecretCodeLength {
			break
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
