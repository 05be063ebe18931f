package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Language
	}{
		{
			name:     "both anchors present",
			text:     "Numéro de dossier de la cour : IMM-1-23\nCOUR FÉDÉRALE",
			expected: LanguageFrench,
		},
		{
			name:     "hyphenated federal court",
			text:     "numéro de dossier de la cour\ncour-fédérale",
			expected: LanguageFrench,
		},
		{
			name:     "federal court alone is not enough",
			text:     "Cour fédérale\nDemande d'autorisation",
			expected: LanguageEnglish,
		},
		{
			name:     "file number alone is not enough",
			text:     "numéro de dossier de la cour IMM-1-23",
			expected: LanguageEnglish,
		},
		{
			name:     "english document",
			text:     "FEDERAL COURT\nCourt File Number: IMM-1-23",
			expected: LanguageEnglish,
		},
		{
			name:     "empty text",
			text:     "",
			expected: LanguageEnglish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.text))
		})
	}
}
