package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileStore keeps one file per key in a directory.
// Writes go to a temporary file that is renamed over the target.
type FileStore struct {
	fs  afero.Fs
	dir string
	ext string
}

// NewFileStore creates a FileStore rooted at dir. Files are named <key><ext>.
// Use afero.NewOsFs() for real storage or afero.NewMemMapFs() in tests.
func NewFileStore(fsys afero.Fs, dir, ext string) *FileStore {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return &FileStore{fs: fsys, dir: dir, ext: ext}
}

// Path returns the file backing key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+s.ext)
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.Path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read %s: %w", s.Path(key), err)
	}
	return data, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("create directory %s: %w", s.dir, err)
	}

	path := s.Path(key)
	tmp := path + ".tmp"
	defer func() { _ = s.fs.Remove(tmp) }()

	if err := afero.WriteFile(s.fs, tmp, data, 0600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	return nil
}

// Close implements Store. FileStore holds no open handles.
func (s *FileStore) Close() error {
	return nil
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid blob key: %q", key)
	}
	return nil
}
