// Package msg reads archived Outlook .msg files and exposes them as plain
// message records. The extraction core never touches this package's types
// beyond the attachment metadata it is handed.
package msg

import "strings"

// Attachment is one attachment of a message: its long file name, declared
// MIME type and raw payload.
type Attachment struct {
	LongFilename string
	MIMEType     string
	Data         []byte
}

// IsPDF reports whether both the file extension and the declared MIME
// type identify the attachment as a PDF. Both must agree; mislabeled
// attachments are skipped rather than guessed at.
func (a Attachment) IsPDF() bool {
	return strings.HasSuffix(strings.ToLower(a.LongFilename), ".pdf") &&
		strings.ToLower(a.MIMEType) == "application/pdf"
}

// Message is the plain record the pipeline consumes for one email.
type Message struct {
	FileName    string
	Sender      string
	Receiver    string
	Subject     string
	Date        string
	Body        string
	Attachments []Attachment
}

// Source enumerates message files and reads them one at a time.
type Source interface {
	// Files returns the message file paths in processing order.
	Files() ([]string, error)
	// Read parses a single message file.
	Read(path string) (*Message, error)
}
