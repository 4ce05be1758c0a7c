package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stateAliases maps normalized shorthand spellings to the canonical
// state name stored in the states table. Keys must be in Normalize()
// form (lowercase, no accents).
var stateAliases = map[string]string{
	"cdmx":             "Ciudad de México",
	"ciudad de mexico": "Ciudad de México",
	"edomex":           "Estado de México",
	"mexico":           "Estado de México",
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanValue removes accents and surrounding whitespace but keeps the
// original casing. Raw cell values pass through here before matching.
func CleanValue(value string) string {
	cleaned, _, err := transform.String(stripAccents, value)
	if err != nil {
		cleaned = value
	}
	return strings.TrimSpace(cleaned)
}

// Normalize produces a canonical comparison key: lowercase, accents and
// punctuation stripped, whitespace collapsed. Not a display value.
func Normalize(value string) string {
	s := strings.ToLower(value)
	s, _, err := transform.String(stripAccents, s)
	if err != nil {
		s = strings.ToLower(value)
	}
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// CapitalizeFirst upper-cases the first rune and lower-cases the rest,
// producing a presentable display form from arbitrary-case input.
func CapitalizeFirst(value string) string {
	if value == "" {
		return ""
	}
	r := []rune(strings.ToLower(value))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// FormatZip left-pads a postal code to exactly 5 characters with zeros.
func FormatZip(zip string) string {
	zip = strings.TrimSpace(zip)
	for len(zip) < 5 {
		zip = "0" + zip
	}
	return zip
}

// NormalizeStateName resolves known aliases (cdmx, edomex, ...) to the
// canonical state name; unknown names fall back to CapitalizeFirst.
func NormalizeStateName(name string) string {
	if canonical, ok := stateAliases[Normalize(name)]; ok {
		return canonical
	}
	return CapitalizeFirst(name)
}

func NormalizeCityName(name string) string {
	return CapitalizeFirst(Normalize(name))
}

// IsAffirmative reports whether a spreadsheet cell represents "yes".
// Spanish sources use "sí"/"si"; exported files sometimes use booleans.
func IsAffirmative(value string) bool {
	switch Normalize(value) {
	case "si", "yes", "true", "1":
		return true
	}
	return false
}
