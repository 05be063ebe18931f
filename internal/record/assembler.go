// Package record assembles extracted fields into fixed-order output rows
// and writes them out as CSV or XLSX.
package record

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/lexflow/aljr2lex/internal/extract"
)

// Attachment metadata columns preceding the scraped fields.
var metadataTitles = []string{
	"RPA Record Number",
	"RPA Record Status",
	"RPA Record Created On",
	"RPA Record Region",
	"RPA Record Type",
	"RPA Email File Name",
	"RPA Email Attachment Name",
	"RPA Email Attachments Count",
	"RPA Email Sender",
	"RPA Email Receiver",
	"RPA Email Subject",
	"RPA Email Date",
	"RPA Email Body",
	"RPA PDF Language",
}

// Header returns the full column header: the fixed metadata prefix
// followed by one column per scraped field in schema order.
func Header() []string {
	return append(append([]string{}, metadataTitles...), extract.ColumnTitles()...)
}

// Metadata carries the per-attachment email context for one row.
type Metadata struct {
	EmailFileName   string
	AttachmentName  string
	AttachmentIndex int
	Sender          string
	Receiver        string
	Subject         string
	Date            string
	Body            string
}

// Assembler builds output rows. Status, Region and RecordType are run
// constants; CreatedOn is the run's single timestamp, shared by every
// row of the batch.
type Assembler struct {
	Status     string
	CreatedOn  string
	Region     string
	RecordType string

	// newID generates the row's record identifier; overridable in tests.
	newID func() string
}

// NewAssembler creates an assembler with random 128-bit record IDs.
func NewAssembler(status, createdOn, region, recordType string) *Assembler {
	return &Assembler{
		Status:     status,
		CreatedOn:  createdOn,
		Region:     region,
		RecordType: recordType,
		newID:      uuid.NewString,
	}
}

// Assemble produces one fixed-order output row for one PDF attachment.
// The row length is always len(Header()) regardless of how many fields
// matched; the record identifier is fresh per row and independent of
// any field content.
func (a *Assembler) Assemble(meta Metadata, language extract.Language, rec extract.Record) []string {
	row := make([]string, 0, len(metadataTitles)+len(extract.Schema()))
	row = append(row,
		a.newID(),
		a.Status,
		a.CreatedOn,
		a.Region,
		a.RecordType,
		meta.EmailFileName,
		meta.AttachmentName,
		strconv.Itoa(meta.AttachmentIndex),
		meta.Sender,
		meta.Receiver,
		meta.Subject,
		meta.Date,
		meta.Body,
		string(language),
	)
	return append(row, rec.Values()...)
}
