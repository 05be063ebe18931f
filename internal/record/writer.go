package record

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Output formats.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// Writer serializes assembled rows. Implementations own their underlying
// file; Close flushes and releases it.
type Writer interface {
	WriteHeader(header []string) error
	WriteRow(row []string) error
	Close() error
}

// NewWriter opens a writer for the given format at the given path.
func NewWriter(format, path string) (Writer, error) {
	switch format {
	case FormatCSV:
		return newCSVWriter(path)
	case FormatXLSX:
		return newXLSXWriter(path)
	}
	return nil, fmt.Errorf("unknown output format %q", format)
}

// csvWriter streams rows straight to disk.
type csvWriter struct {
	file *os.File
	w    *csv.Writer
}

func newCSVWriter(path string) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return &csvWriter{file: f, w: csv.NewWriter(f)}, nil
}

func (c *csvWriter) WriteHeader(header []string) error {
	return c.WriteRow(header)
}

func (c *csvWriter) WriteRow(row []string) error {
	if err := c.w.Write(row); err != nil {
		return fmt.Errorf("write output row: %w", err)
	}
	return nil
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		c.file.Close()
		return fmt.Errorf("flush output: %w", err)
	}
	return c.file.Close()
}
