// Package naming implements the identifier conventions shared by all
// generators: case conversion, pluralization, and identifier sanitization.
// Every function is pure; generators rely on byte-stable output.
package naming

import (
	"strings"
	"unicode"
)

// PascalCase splits s on hyphens, underscores and whitespace and
// capitalizes the first rune of each segment. The rest of each segment
// keeps its casing, so already-cased words pass through unchanged.
func PascalCase(s string) string {
	var b strings.Builder
	for _, word := range splitWords(s) {
		runes := []rune(word)
		b.WriteRune(unicode.ToUpper(runes[0]))
		b.WriteString(string(runes[1:]))
	}
	return b.String()
}

// CamelCase is PascalCase with the first rune lowered.
func CamelCase(s string) string {
	pascal := PascalCase(s)
	if pascal == "" {
		return ""
	}
	runes := []rune(pascal)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

// Plural applies a small set of English pluralization rules, checked in
// order: consonant+y -> ies, s/x/ch/sh -> +es, fe -> ves, f -> ves,
// otherwise +s. Irregular nouns are not handled ("Person" becomes
// "Persons"); this is a documented limitation, not a bug.
func Plural(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "y") && hasConsonantBefore(lower, len(lower)-1):
		return s[:len(s)-1] + "ies"
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return s + "es"
	case strings.HasSuffix(lower, "fe"):
		return s[:len(s)-2] + "ves"
	case strings.HasSuffix(lower, "f"):
		return s[:len(s)-1] + "ves"
	default:
		return s + "s"
	}
}

// Singular reverses Plural for the common cases. Used when deriving
// entity names from introspected table names; best effort only.
func Singular(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	switch {
	case strings.HasSuffix(lower, "ies") && len(s) > 3:
		return s[:len(s)-3] + "y"
	case strings.HasSuffix(lower, "ves") && len(s) > 3:
		return s[:len(s)-3] + "f"
	case strings.HasSuffix(lower, "ses"), strings.HasSuffix(lower, "xes"),
		strings.HasSuffix(lower, "ches"), strings.HasSuffix(lower, "shes"):
		return s[:len(s)-2]
	case strings.HasSuffix(lower, "s") && !strings.HasSuffix(lower, "ss"):
		return s[:len(s)-1]
	default:
		return s
	}
}

// SanitizeIdentifier strips every character outside [A-Za-z0-9_].
func SanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

func splitWords(s string) []string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == '_' || unicode.IsSpace(r)
	})
	return words
}

// hasConsonantBefore reports whether the byte before index i is an ASCII
// consonant. Vowel+y words ("Day") pluralize with a plain s.
func hasConsonantBefore(lower string, i int) bool {
	if i == 0 {
		return false
	}
	prev := lower[i-1]
	if prev < 'a' || prev > 'z' {
		return false
	}
	switch prev {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	}
	return true
}
