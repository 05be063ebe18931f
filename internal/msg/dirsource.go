package msg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DirectorySource yields the .msg files of one folder, non-recursively,
// in name order.
type DirectorySource struct {
	dir string
}

// NewDirectorySource creates a source over the given folder.
func NewDirectorySource(dir string) *DirectorySource {
	return &DirectorySource{dir: dir}
}

// Files lists the folder's .msg files.
func (s *DirectorySource) Files() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read message folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(e.Name()), ".msg") {
			files = append(files, filepath.Join(s.dir, e.Name()))
		}
	}
	return files, nil
}

// Read parses one message file.
func (s *DirectorySource) Read(path string) (*Message, error) {
	return ReadFile(path)
}
