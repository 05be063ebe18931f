package extract

import "strings"

// Canonical respondent titles expected by the downstream record system.
const (
	MinisterPublicSafetyEN = "Minister of Public Safety"
	MinisterImmigrationEN  = "Minister of Immigration, Refugees and Citizenship"
	MinisterImmigrationFR  = "Ministre de l’Immigration, des Réfugiés et de la Citoyenneté"
	MinisterPublicSafetyFR = "Ministre de la Sécurité publique"
)

// ClassifyMinister maps raw respondent lines to a canonical ministerial
// title. Only the first matched line is inspected, uppercased. The four
// substring tests are mutually exclusive and run in a fixed priority
// order, English before French regardless of the document's language;
// that order is policy, not an accident, and changes behavior on
// ambiguous input. If no test matches, the input is returned unchanged.
// Nil or empty input returns nil.
func ClassifyMinister(matches []string) []string {
	if len(matches) == 0 {
		return nil
	}
	title := matches[0]
	if title != strings.ToUpper(title) {
		title = strings.ToUpper(title)
	}
	switch {
	case strings.Contains(title, "SAFETY") || strings.Contains(title, "EMERGENCY"):
		return []string{MinisterPublicSafetyEN}
	case strings.Contains(title, "CITIZENSHIP") ||
		strings.Contains(title, "IMMIGRATION") ||
		strings.Contains(title, "REFUGEES"):
		return []string{MinisterImmigrationEN}
	case strings.Contains(title, "L’IMMIGRATION") ||
		strings.Contains(title, "RÉFUGIÉS") ||
		strings.Contains(title, "CITOYENNETÉ"):
		return []string{MinisterImmigrationFR}
	case strings.Contains(title, "SÉCURITÉ") || strings.Contains(title, "PUBLIQUE"):
		return []string{MinisterPublicSafetyFR}
	}
	return matches
}
