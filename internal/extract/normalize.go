package extract

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes to compatibility form and drops every code point
// that does not encode to ASCII. Accented characters lose their accents
// (the combining mark is dropped), anything else non-ASCII disappears.
var asciiFold = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
)

// NormalizeText canonicalizes raw PDF text to plain printable ASCII.
// It is total: it never fails, and in the worst case returns the empty
// string. Downstream patterns assume they only ever see normalized text,
// so this must be applied to every page before it is appended.
func NormalizeText(text string) string {
	out, _, err := transform.String(asciiFold, text)
	if err != nil {
		return ""
	}
	return out
}

// NormalizeNumbers reduces each candidate string to its digit characters,
// preserving order, and trims a single trailing newline artifact.
//
// A nil or empty input returns nil so callers can tell "no candidates"
// apart from "candidates that contained no digits": the latter yields
// one empty string per raw match, which keeps the count invariants
// (one normalized entry per raw match) intact.
func NormalizeNumbers(candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		var b strings.Builder
		for _, r := range c {
			if r >= '0' && r <= '9' {
				b.WriteRune(r)
			}
		}
		out = append(out, strings.TrimSuffix(b.String(), "\n"))
	}
	return out
}
