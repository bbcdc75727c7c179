package blob

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Supported backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "tasks.db"

// Options selects and configures a backend.
type Options struct {
	Backend string
	Dir     string
	// Ext is the file extension used by the file backend (e.g. ".json").
	Ext string
	// Fs overrides the filesystem used by the file backend.
	Fs afero.Fs
}

// Open creates the store described by opts.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case "", BackendFile:
		fsys := opts.Fs
		if fsys == nil {
			fsys = afero.NewOsFs()
		}
		return NewFileStore(fsys, opts.Dir, opts.Ext), nil
	case BackendSQLite:
		if err := afero.NewOsFs().MkdirAll(opts.Dir, 0700); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", opts.Dir, err)
		}
		return OpenSQLite(ctx, filepath.Join(opts.Dir, DatabaseFile))
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", opts.Backend)
	}
}
