package infra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore accepts uploaded bytes, writes them under a local directory, and
// returns a URL where the router serves them (the file-storage collaborator:
// accepts bytes, returns a URL).
type FileStore struct {
	dir     string
	baseURL string
}

// NewFileStore creates the upload directory if needed. baseURL is the public
// origin the files are served from, e.g. http://localhost:8000.
func NewFileStore(dir, baseURL string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create upload dir: %w", err)
	}
	return &FileStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Dir returns the backing directory so the router can mount it as a static route.
func (s *FileStore) Dir() string { return s.dir }

// Save writes r to disk under a timestamped name and returns the serving URL.
// prefix namespaces the file (e.g. "product-images", "shop-logos").
func (s *FileStore) Save(prefix, filename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%s_%d_%s", prefix, time.Now().UnixMilli(), sanitize(filename))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("storage: create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("storage: write file: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}

// sanitize strips path separators and whitespace from client-supplied names.
func sanitize(name string) string {
	name = filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		}
		return '-'
	}, name)
}
