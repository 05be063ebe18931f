package extract

// Language identifies the language of a proceeding document.
type Language string

const (
	LanguageEnglish Language = "English"
	LanguageFrench  Language = "French"
)

// IsValid checks if the language value is one the pipeline produces.
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageFrench
}

// Document is one PDF attachment's normalized, page-concatenated text
// together with its detected language. It is immutable once built and
// lives only for the duration of a single attachment's processing.
type Document struct {
	Text     string
	Language Language
}
