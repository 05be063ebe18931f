package extract

import "regexp"

// Anchor phrases for French proceeding documents. The federal-court
// anchor tolerates a hyphen or space between the words.
var (
	frFileNumberRe   = regexp.MustCompile(`(?i)numéro de dossier de la cour`)
	frFederalCourtRe = regexp.MustCompile(`(?i)cour[ \-]?fédérale`)
)

// DetectLanguage classifies a document's language. French requires BOTH
// anchor phrases to be present, case-insensitively; everything else is
// English. Pure predicate, no side effects.
func DetectLanguage(text string) Language {
	if frFileNumberRe.MatchString(text) && frFederalCourtRe.MatchString(text) {
		return LanguageFrench
	}
	return LanguageEnglish
}
