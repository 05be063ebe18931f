package pdftext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lexflow/aljr2lex/internal/msg"
)

func TestSaveAttachment(t *testing.T) {
	dir := t.TempDir()
	saver, err := NewSaver(filepath.Join(dir, "out"))
	require.NoError(t, err)

	att := msg.Attachment{LongFilename: "Notice.pdf", MIMEType: "application/pdf", Data: []byte("%PDF-1.4")}

	path, err := saver.SaveAttachment(att)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "out", "Notice.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, att.Data, data)
}

func TestSaveAttachmentCollision(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	att := msg.Attachment{LongFilename: "Notice.pdf", Data: []byte("first")}
	first, err := saver.SaveAttachment(att)
	require.NoError(t, err)

	att.Data = []byte("second")
	second, err := saver.SaveAttachment(att)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, "Notice (1).pdf", filepath.Base(second))

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, []byte("first"), data, "existing file must not be overwritten")
}

func TestSaveAttachmentEmptyPayload(t *testing.T) {
	saver, err := NewSaver(t.TempDir())
	require.NoError(t, err)

	_, err = saver.SaveAttachment(msg.Attachment{LongFilename: "Notice.pdf"})
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	v := NewValidator(1024)

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, v.ValidateFile(filepath.Join(dir, "nope.pdf")))
	})

	t.Run("empty path", func(t *testing.T) {
		assert.Error(t, v.ValidateFile(""))
	})

	t.Run("directory", func(t *testing.T) {
		assert.Error(t, v.ValidateFile(dir))
	})

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(dir, "notice.txt")
		require.NoError(t, os.WriteFile(path, []byte("text"), 0o644))
		assert.Error(t, v.ValidateFile(path))
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0o644))
		assert.Error(t, v.ValidateFile(path))
	})

	t.Run("oversized file", func(t *testing.T) {
		path := filepath.Join(dir, "big.pdf")
		require.NoError(t, os.WriteFile(path, make([]byte, 2048), 0o644))
		assert.Error(t, v.ValidateFile(path))
	})

	t.Run("not a real PDF", func(t *testing.T) {
		path := filepath.Join(dir, "fake.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 but truncated"), 0o644))
		assert.Error(t, v.ValidateFile(path))
	})
}

func TestExtractTextRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf"), 0o644))

	e := NewExtractor(0)
	_, err := e.ExtractText(path)
	assert.Error(t, err)
}
