// Package pipeline drives the batch: messages in, output rows out.
// Processing is strictly sequential; one attachment is fully extracted
// and written before the next is considered.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lexflow/aljr2lex/internal/extract"
	"github.com/lexflow/aljr2lex/internal/msg"
	"github.com/lexflow/aljr2lex/internal/record"
)

// AttachmentSaver persists one attachment payload.
type AttachmentSaver interface {
	SaveAttachment(att msg.Attachment) (string, error)
}

// PDFValidator checks a saved attachment before extraction.
type PDFValidator interface {
	ValidateFile(path string) error
}

// TextExtractor produces the normalized page-concatenated text of a PDF.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Summary holds the run counters. They are owned here, written once per
// iteration, and never read or touched by the extraction core.
type Summary struct {
	MessagesTotal      int
	MessagesProcessed  int
	MessagesSkipped    int
	PDFAttachments     int
	RowsWritten        int
	AttachmentsSkipped int
}

// Runner wires the collaborators around the extraction core.
type Runner struct {
	Source    msg.Source
	Saver     AttachmentSaver
	Validator PDFValidator
	Text      TextExtractor
	Extractor *extract.Extractor
	Assembler *record.Assembler
	Writer    record.Writer
	Logger    *zap.Logger
}

// Run processes every message in the source. Message- and attachment-
// level failures are logged and skipped; only output-writer failures and
// context cancellation abort the batch, since rows already depend on the
// writer being intact.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	if err := r.Writer.WriteHeader(record.Header()); err != nil {
		return summary, fmt.Errorf("write header: %w", err)
	}

	files, err := r.Source.Files()
	if err != nil {
		return summary, fmt.Errorf("enumerate messages: %w", err)
	}
	summary.MessagesTotal = len(files)

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		m, err := r.Source.Read(path)
		if err != nil {
			r.Logger.Warn("message.skipped", zap.String("file", path), zap.Error(err))
			summary.MessagesSkipped++
			summary.MessagesProcessed++
			continue
		}

		pdfIndex := 0
		for _, att := range m.Attachments {
			if !att.IsPDF() {
				continue
			}
			pdfIndex++
			summary.PDFAttachments++

			row, err := r.processAttachment(m, att, pdfIndex)
			if err != nil {
				r.Logger.Warn("attachment.skipped",
					zap.String("message", m.FileName),
					zap.String("attachment", att.LongFilename),
					zap.Error(err),
				)
				summary.AttachmentsSkipped++
				continue
			}

			if err := r.Writer.WriteRow(row); err != nil {
				return summary, fmt.Errorf("write row for %s: %w", att.LongFilename, err)
			}
			summary.RowsWritten++
		}

		summary.MessagesProcessed++
		r.Logger.Info("message.processed",
			zap.String("file", m.FileName),
			zap.Int("processed", summary.MessagesProcessed),
			zap.Int("total", summary.MessagesTotal),
			zap.Int("pdf_attachments", pdfIndex),
		)
	}

	r.Logger.Info("run.finished",
		zap.Int("messages", summary.MessagesProcessed),
		zap.Int("pdf_attachments", summary.PDFAttachments),
		zap.Int("rows", summary.RowsWritten),
		zap.Int("attachments_skipped", summary.AttachmentsSkipped),
	)
	return summary, nil
}

// processAttachment runs one attachment end to end: save, validate,
// extract text, detect language, extract fields, assemble the row. Any
// failure here is isolated to this attachment.
func (r *Runner) processAttachment(m *msg.Message, att msg.Attachment, pdfIndex int) ([]string, error) {
	path, err := r.Saver.SaveAttachment(att)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	if err := r.Validator.ValidateFile(path); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	text, err := r.Text.ExtractText(path)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	doc := extract.Document{Text: text, Language: extract.DetectLanguage(text)}
	rec := r.Extractor.Extract(doc)

	meta := record.Metadata{
		EmailFileName:   m.FileName,
		AttachmentName:  att.LongFilename,
		AttachmentIndex: pdfIndex,
		Sender:          m.Sender,
		Receiver:        m.Receiver,
		Subject:         m.Subject,
		Date:            m.Date,
		Body:            m.Body,
	}
	return r.Assembler.Assemble(meta, doc.Language, rec), nil
}
