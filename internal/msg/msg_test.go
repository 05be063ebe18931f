package msg

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf16Bytes(s string) []byte {
	var out []byte
	for _, r := range s {
		out = append(out, byte(r), byte(r>>8))
	}
	return out
}

func TestStringProp(t *testing.T) {
	streams := map[string][]byte{
		"__substg1.0_0037001F": utf16Bytes("Court package\x00"),
		"__substg1.0_0C1A001E": []byte("Registry Clerk\x00"),
	}

	assert.Equal(t, "Court package", stringProp(streams, propSubject))
	assert.Equal(t, "Registry Clerk", stringProp(streams, propSenderName))
	assert.Equal(t, "", stringProp(streams, propBody))
}

func TestFirstProp(t *testing.T) {
	streams := map[string][]byte{
		"__substg1.0_0C1F001F": utf16Bytes("clerk@court.example"),
	}

	// Sender name absent, falls back to sender email.
	assert.Equal(t, "clerk@court.example", firstProp(streams, propSenderName, propSenderEmail))
	assert.Equal(t, "", firstProp(streams, propBody))
}

func TestJoinReceivers(t *testing.T) {
	tests := []struct {
		name     string
		addrs    []string
		expected string
	}{
		{
			name:     "separator spacing removed",
			addrs:    []string{"a@x.example", "b@y.example"},
			expected: "a@x.exampleb@y.example",
		},
		{
			name:     "inner spaces removed",
			addrs:    []string{"Jane Doe <jane@x.example>"},
			expected: "JaneDoe<jane@x.example>",
		},
		{
			name:     "no recipients",
			addrs:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, joinReceivers(tt.addrs))
		})
	}
}

func TestSubmitTime(t *testing.T) {
	entry := func(tag uint32, ft uint64) []byte {
		b := make([]byte, 16)
		binary.LittleEndian.PutUint32(b, tag)
		binary.LittleEndian.PutUint64(b[8:], ft)
		return b
	}

	// 2023-04-18 12:00:00 UTC as FILETIME ticks.
	const ft = uint64(11644473600+1681819200) * 10_000_000

	props := make([]byte, messagePropHeader)
	props = append(props, entry(tagClientSubmitTime, ft)...)
	assert.Equal(t, "Tue, 18 Apr 2023 12:00:00 +0000", submitTime(props))

	t.Run("delivery time fallback", func(t *testing.T) {
		props := make([]byte, messagePropHeader)
		props = append(props, entry(tagMessageDeliveryTime, ft)...)
		assert.Equal(t, "Tue, 18 Apr 2023 12:00:00 +0000", submitTime(props))
	})

	t.Run("no time properties", func(t *testing.T) {
		assert.Equal(t, "", submitTime(make([]byte, messagePropHeader)))
		assert.Equal(t, "", submitTime(nil))
	})
}

func TestAttachmentIsPDF(t *testing.T) {
	tests := []struct {
		name string
		att  Attachment
		want bool
	}{
		{
			name: "extension and mime agree",
			att:  Attachment{LongFilename: "Notice.PDF", MIMEType: "application/pdf"},
			want: true,
		},
		{
			name: "mime disagrees",
			att:  Attachment{LongFilename: "notice.pdf", MIMEType: "application/octet-stream"},
			want: false,
		},
		{
			name: "extension disagrees",
			att:  Attachment{LongFilename: "notice.docx", MIMEType: "application/pdf"},
			want: false,
		},
		{
			name: "empty attachment",
			att:  Attachment{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.att.IsPDF())
		})
	}
}

func TestDirectorySourceFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.msg", "a.MSG", "skip.pdf", "note.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.msg"), 0o755))

	files, err := NewDirectorySource(dir).Files()
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a.MSG"), files[0])
	assert.Equal(t, filepath.Join(dir, "b.msg"), files[1])
}

func TestReadFileRejectsNonContainer(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.msg")
	require.NoError(t, os.WriteFile(path, []byte("not a compound file"), 0o644))

	_, err := ReadFile(path)
	assert.Error(t, err)
}
