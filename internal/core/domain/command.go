package domain

import (
	"strings"
)

// ParseCommand returns the lowercased first word of a message, without a trailing @botname.
func ParseCommand(text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ""
	}

	token := strings.ToLower(fields[0])
	if i := strings.Index(token, "@"); i > 0 {
		token = token[:i]
	}

	return token
}

// ParseCommandArgs returns every word after the first one.
func ParseCommandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return nil
	}

	return fields[1:]
}

// ContainsAny reports whether text contains one of the phrases, ignoring case.
func ContainsAny(text string, phrases []string) bool {
	lower := strings.ToLower(text)
	for _, p := range phrases {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(lower, p) {
			return true
		}
	}

	return false
}
