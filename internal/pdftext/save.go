// Package pdftext persists PDF attachments and turns them into one
// normalized, page-concatenated text string for the extraction core.
package pdftext

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexflow/aljr2lex/internal/msg"
)

// Saver writes attachment payloads into a target folder.
type Saver struct {
	dir string
}

// NewSaver creates a saver for the given output folder, creating it if
// needed.
func NewSaver(dir string) (*Saver, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create attachment folder: %w", err)
	}
	return &Saver{dir: dir}, nil
}

// SaveAttachment persists an attachment payload and returns the saved
// path. An existing file with the same name is never overwritten; a
// numbered suffix is appended instead, since different emails routinely
// carry identically named notices.
func (s *Saver) SaveAttachment(att msg.Attachment) (string, error) {
	if len(att.Data) == 0 {
		return "", fmt.Errorf("attachment %q has no payload", att.LongFilename)
	}

	name := filepath.Base(att.LongFilename)
	if name == "." || name == string(filepath.Separator) {
		return "", fmt.Errorf("attachment has no usable file name")
	}

	path := filepath.Join(s.dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 1; ; i++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(s.dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
	}

	if err := os.WriteFile(path, att.Data, 0o640); err != nil {
		return "", fmt.Errorf("save attachment %q: %w", name, err)
	}
	return path, nil
}
