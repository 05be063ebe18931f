package extract

import (
	"strconv"
	"strings"
)

// Record maps every schema field to its resolved value. After extraction
// completes it holds exactly one entry per schema field, empty string for
// anything that did not match.
type Record map[FieldKey]string

// Values returns the record's values in schema (column) order.
func (r Record) Values() []string {
	schema := Schema()
	vals := make([]string, 0, len(schema))
	for _, k := range schema {
		vals = append(vals, r[k])
	}
	return vals
}

// Extractor runs the pattern catalog against one document's text and
// resolves every schema field, including the derived ones.
type Extractor struct {
	catalog  *Catalog
	observer Observer
}

// NewExtractor creates an extractor over the given catalog. A nil
// observer defaults to the no-op observer.
func NewExtractor(catalog *Catalog, observer Observer) *Extractor {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Extractor{catalog: catalog, observer: observer}
}

// Extract resolves all fields for one document. Absence of a match is
// never an error: every field resolves to a string, possibly empty, so
// the output column count stays fixed. The same normalized text always
// yields byte-identical results.
func (e *Extractor) Extract(doc Document) Record {
	e.observer.DocumentStart(doc.Language, len(doc.Text))

	rec := make(Record, len(Schema()))
	for _, rule := range e.catalog.Rules() {
		var raw int
		switch rule.Behavior {
		case BehaviorFirstMatch:
			raw = e.resolveFirstMatch(rule, doc.Text, rec)
		case BehaviorApplicant:
			raw = e.resolveApplicant(rule, doc.Text, rec)
		case BehaviorRespondent:
			raw = e.resolveRespondent(rule, doc.Text, rec)
		case BehaviorNumberList:
			raw = e.resolveNumberList(rule, doc.Text, rec)
		case BehaviorDate:
			raw = e.resolveDate(rule, doc.Text, rec)
		case BehaviorAddressBlock:
			raw = e.resolveAddressBlock(rule, doc.Text, rec)
		}
		e.observer.FieldResolved(rule.Key, raw)
	}
	return rec
}

// resolveFirstMatch takes the first raw match verbatim. For prepared-by
// the pattern's capture group carries the name; other first-match rules
// have no groups and the whole match is the value.
func (e *Extractor) resolveFirstMatch(rule Rule, text string, rec Record) int {
	if rule.Pattern.NumSubexp() > 0 {
		matches := rule.Pattern.FindAllStringSubmatch(text, -1)
		if len(matches) > 0 {
			rec[rule.Key] = matches[0][1]
		} else {
			rec[rule.Key] = ""
		}
		return len(matches)
	}
	matches := rule.Pattern.FindAllString(text, -1)
	if len(matches) > 0 {
		rec[rule.Key] = matches[0]
	} else {
		rec[rule.Key] = ""
	}
	return len(matches)
}

// resolveApplicant resolves the applicant-name block and its three
// derived fields. Only the first raw match feeds the name splitter; the
// applicant count comes from splitting that same match on commas, the
// conjunction "and" or line breaks and dropping empty fragments.
func (e *Extractor) resolveApplicant(rule Rule, text string, rec Record) int {
	firstKey, lastKey, countKey := rule.Derives[0], rule.Derives[1], rule.Derives[2]

	matches := rule.Pattern.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		rec[rule.Key] = ""
		rec[firstKey] = ""
		rec[lastKey] = ""
		rec[countKey] = "0"
		return 0
	}

	fullName := strings.TrimSpace(matches[0][1])
	first, last, _ := SplitName(fullName)
	rec[rule.Key] = fullName
	rec[firstKey] = first
	rec[lastKey] = last
	rec[countKey] = strconv.Itoa(countApplicants(matches[0][1]))
	return len(matches)
}

// countApplicants counts the name fragments in one applicant block.
func countApplicants(block string) int {
	count := 0
	for _, frag := range applicantSplitRe.Split(block, -1) {
		if strings.Trim(frag, " ") != "" {
			count++
		}
	}
	return count
}

// resolveRespondent routes raw respondent lines through the minister
// classifier and keeps the first resulting entry. Only the first raw
// line is ever relevant; extra respondent lines are ignored.
func (e *Extractor) resolveRespondent(rule Rule, text string, rec Record) int {
	matches := rule.Pattern.FindAllString(text, -1)
	titles := ClassifyMinister(matches)
	if len(titles) > 0 {
		rec[rule.Key] = titles[0]
	} else {
		rec[rule.Key] = ""
	}
	return len(matches)
}

// resolveNumberList digit-normalizes every raw match, joins the entries
// line by line, and derives the count from the raw match list. Entries
// that normalize to the empty string still count: one entry per raw
// match is the invariant.
func (e *Extractor) resolveNumberList(rule Rule, text string, rec Record) int {
	countKey := rule.Derives[0]

	var matches []string
	if rule.Pattern.NumSubexp() > 0 {
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			matches = append(matches, m[1])
		}
	} else {
		matches = rule.Pattern.FindAllString(text, -1)
	}

	var b strings.Builder
	for _, n := range NormalizeNumbers(matches) {
		b.WriteString(n)
		b.WriteString("\n")
	}
	rec[rule.Key] = b.String()
	rec[countKey] = strconv.Itoa(len(matches))
	return len(matches)
}

// resolveDate extracts the phrase after "dated at" up to the line end,
// then re-matches a strict month/day/year token inside it.
func (e *Extractor) resolveDate(rule Rule, text string, rec Record) int {
	rec[rule.Key] = ""
	phrase := rule.Pattern.FindStringSubmatch(text)
	if phrase == nil {
		return 0
	}
	tokens := dateTokenRe.FindAllString(phrase[1], -1)
	if len(tokens) > 0 {
		rec[rule.Key] = tokens[0]
	}
	return len(tokens)
}

// resolveAddressBlock joins every matched five-line block (four context
// lines plus the postal-code line) with blank-line separators and
// derives the address count from the raw match list.
func (e *Extractor) resolveAddressBlock(rule Rule, text string, rec Record) int {
	countKey := rule.Derives[0]

	matches := rule.Pattern.FindAllString(text, -1)
	var b strings.Builder
	for _, block := range matches {
		b.WriteString(block)
		b.WriteString("\n\n")
	}
	rec[rule.Key] = b.String()
	rec[countKey] = strconv.Itoa(len(matches))
	return len(matches)
}
