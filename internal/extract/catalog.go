package extract

import (
	"fmt"
	"regexp"
)

// FieldKey identifies one scraped output column. The order of Schema()
// defines the output column order and must not change without a matching
// change in the downstream record layout.
type FieldKey string

const (
	FieldStudyPermit       FieldKey = "study_permit"
	FieldCourtFileNumber   FieldKey = "court_file_number"
	FieldApplicantCount    FieldKey = "applicant_count"
	FieldApplicantName     FieldKey = "applicant_name"
	FieldFirstName         FieldKey = "first_name"
	FieldLastName          FieldKey = "last_name"
	FieldRespondent        FieldKey = "respondent"
	FieldUCINumber         FieldKey = "uci_number"
	FieldUCICount          FieldKey = "uci_count"
	FieldApplicationNumber FieldKey = "application_number"
	FieldApplicationCount  FieldKey = "application_count"
	FieldDate              FieldKey = "date"
	FieldPreparedBy        FieldKey = "prepared_by"
	FieldAddress           FieldKey = "address"
	FieldAddressCount      FieldKey = "address_count"
)

// Title returns the column heading used in the delivered record set.
func (k FieldKey) Title() string {
	return fieldTitles[k]
}

var fieldTitles = map[FieldKey]string{
	FieldStudyPermit:       "RPA PDF Study Permit",
	FieldCourtFileNumber:   "RPA PDF Court File Number",
	FieldApplicantCount:    "RPA PDF Number of Applicants",
	FieldApplicantName:     "RPA PDF Applicant Name",
	FieldFirstName:         "RPA PDF First Name",
	FieldLastName:          "RPA PDF Last Name",
	FieldRespondent:        "RPA PDF Respondent",
	FieldUCINumber:         "RPA PDF UCI Number",
	FieldUCICount:          "RPA PDF Number of UCI Numbers",
	FieldApplicationNumber: "RPA PDF Application Number",
	FieldApplicationCount:  "RPA PDF Number of Application Numbers",
	FieldDate:              "RPA PDF Date",
	FieldPreparedBy:        "RPA PDF Prepared By",
	FieldAddress:           "RPA PDF Address",
	FieldAddressCount:      "RPA PDF Address Count",
}

// Schema returns every output field key in column order. Derived fields
// (first/last name, the count fields) appear here even though no rule
// matches them independently.
func Schema() []FieldKey {
	return []FieldKey{
		FieldStudyPermit,
		FieldCourtFileNumber,
		FieldApplicantCount,
		FieldApplicantName,
		FieldFirstName,
		FieldLastName,
		FieldRespondent,
		FieldUCINumber,
		FieldUCICount,
		FieldApplicationNumber,
		FieldApplicationCount,
		FieldDate,
		FieldPreparedBy,
		FieldAddress,
		FieldAddressCount,
	}
}

// ColumnTitles returns the headings for the scraped columns in schema order.
func ColumnTitles() []string {
	schema := Schema()
	titles := make([]string, 0, len(schema))
	for _, k := range schema {
		titles = append(titles, k.Title())
	}
	return titles
}

// Behavior tags how a rule's raw matches are resolved into field values.
// Dispatch in the extractor is a switch over this tag.
type Behavior string

const (
	// BehaviorFirstMatch takes the first raw match verbatim.
	BehaviorFirstMatch Behavior = "first_match"
	// BehaviorApplicant resolves the applicant-name block and derives
	// first name, last name and applicant count from it.
	BehaviorApplicant Behavior = "applicant"
	// BehaviorRespondent routes raw matches through the minister classifier.
	BehaviorRespondent Behavior = "respondent"
	// BehaviorNumberList digit-normalizes every raw match and joins them
	// line by line, deriving a count field.
	BehaviorNumberList Behavior = "number_list"
	// BehaviorDate re-matches a strict month/day/year token inside the
	// "dated at" phrase.
	BehaviorDate Behavior = "date"
	// BehaviorAddressBlock joins the matched five-line address blocks with
	// blank lines and derives the address count.
	BehaviorAddressBlock Behavior = "address_block"
)

func (b Behavior) isValid() bool {
	switch b {
	case BehaviorFirstMatch, BehaviorApplicant, BehaviorRespondent,
		BehaviorNumberList, BehaviorDate, BehaviorAddressBlock:
		return true
	}
	return false
}

// Rule binds one pattern to one output field. Derives lists the fields
// computed from this rule's raw matches; derived fields never get a rule
// of their own.
type Rule struct {
	Key      FieldKey
	Behavior Behavior
	Pattern  *regexp.Regexp
	Derives  []FieldKey
}

// Extraction patterns. Each operates over the entire normalized document
// text, never per-page. The UCI pattern accepts 10-digit, 8-digit and
// 2-4-4 grouped forms; a trailing dot is consumed so normalization sees
// the full token. The application-number pattern captures the token in
// group 1 because the leading separator has to be consumed to anchor it.
var (
	studyPermitRe  = regexp.MustCompile(`[sS]tudy [pP]ermit`)
	courtFileRe    = regexp.MustCompile(`(?s)\bIMM-\d{3,5}-\d{2}`)
	applicantRe    = regexp.MustCompile(`(?is)\bBetween:\s*(.*?\s)\bApplicant\b`)
	respondentRe   = regexp.MustCompile(`(?im)^(?:The\s)?Minister.*$`)
	uciNumberRe    = regexp.MustCompile(`\b(?:\d{10}|\d{2}\s*-\s*\d{4}\s*-\s*\d{4}|\d{8})(?:\b|\.)`)
	applicationRe  = regexp.MustCompile(`(?s)\s([A-Za-z]\s?\d{9,10})`)
	datedAtRe      = regexp.MustCompile(`.*[Dd][Aa][Tt][Ee][Dd] at ([^\n\r]*)`)
	dateTokenRe    = regexp.MustCompile(`\b([A-Za-z]+\s+\d{1,2},\s+\d{4})\b`)
	preparedByRe   = regexp.MustCompile(`(?i)prepared by ([^.:\r\n]*)`)
	addressBlockRe = regexp.MustCompile(`(?:.*\n){4}.*[A-Za-z]\d[A-Za-z] \d[A-Za-z]\d`)

	// applicantSplitRe separates the applicant block into individual
	// applicants: commas, the conjunction "and" in any case, or line
	// breaks. A conjunction inside a single legal name over-counts;
	// known fragility, kept to match the delivered counts.
	applicantSplitRe = regexp.MustCompile(`,|[aA][nN][dD]|\n`)
)

// Catalog is the ordered table of extraction rules. Rule order follows
// schema order of the rules' own keys; derived fields are written by the
// rule that derives them, exactly once.
type Catalog struct {
	rules []Rule
}

// NewCatalog returns the catalog for the targeted proceeding template.
func NewCatalog() *Catalog {
	return &Catalog{rules: []Rule{
		{Key: FieldStudyPermit, Behavior: BehaviorFirstMatch, Pattern: studyPermitRe},
		{Key: FieldCourtFileNumber, Behavior: BehaviorFirstMatch, Pattern: courtFileRe},
		{
			Key:      FieldApplicantName,
			Behavior: BehaviorApplicant,
			Pattern:  applicantRe,
			Derives:  []FieldKey{FieldFirstName, FieldLastName, FieldApplicantCount},
		},
		{Key: FieldRespondent, Behavior: BehaviorRespondent, Pattern: respondentRe},
		{
			Key:      FieldUCINumber,
			Behavior: BehaviorNumberList,
			Pattern:  uciNumberRe,
			Derives:  []FieldKey{FieldUCICount},
		},
		{
			Key:      FieldApplicationNumber,
			Behavior: BehaviorNumberList,
			Pattern:  applicationRe,
			Derives:  []FieldKey{FieldApplicationCount},
		},
		{Key: FieldDate, Behavior: BehaviorDate, Pattern: datedAtRe},
		{Key: FieldPreparedBy, Behavior: BehaviorFirstMatch, Pattern: preparedByRe},
		{
			Key:      FieldAddress,
			Behavior: BehaviorAddressBlock,
			Pattern:  addressBlockRe,
			Derives:  []FieldKey{FieldAddressCount},
		},
	}}
}

// Rules returns the rules in evaluation order.
func (c *Catalog) Rules() []Rule {
	return c.rules
}

// Validate checks that the catalog and schema are consistent: every
// schema field is produced exactly once (by a rule or a derivation),
// every rule has a compiled pattern and a known behavior, and every
// derivation target exists in the schema. An inconsistent catalog would
// silently corrupt every output row, so this runs once at startup and
// any error is fatal.
func (c *Catalog) Validate() error {
	inSchema := make(map[FieldKey]bool, len(Schema()))
	for _, k := range Schema() {
		if inSchema[k] {
			return fmt.Errorf("catalog: field %q appears twice in schema", k)
		}
		inSchema[k] = true
	}

	produced := make(map[FieldKey]int)
	for _, r := range c.rules {
		if r.Pattern == nil {
			return fmt.Errorf("catalog: rule %q has no pattern", r.Key)
		}
		if !r.Behavior.isValid() {
			return fmt.Errorf("catalog: rule %q has unknown behavior %q", r.Key, r.Behavior)
		}
		if !inSchema[r.Key] {
			return fmt.Errorf("catalog: rule %q is not in the schema", r.Key)
		}
		produced[r.Key]++
		for _, d := range r.Derives {
			if !inSchema[d] {
				return fmt.Errorf("catalog: rule %q derives undefined field %q", r.Key, d)
			}
			produced[d]++
		}
		switch r.Behavior {
		case BehaviorNumberList, BehaviorAddressBlock:
			if len(r.Derives) != 1 {
				return fmt.Errorf("catalog: rule %q must derive exactly its count field", r.Key)
			}
		case BehaviorApplicant:
			if len(r.Derives) != 3 {
				return fmt.Errorf("catalog: rule %q must derive first name, last name and count", r.Key)
			}
		}
	}

	for _, k := range Schema() {
		switch produced[k] {
		case 0:
			return fmt.Errorf("catalog: field %q is never produced", k)
		case 1:
		default:
			return fmt.Errorf("catalog: field %q is produced %d times", k, produced[k])
		}
	}
	return nil
}
