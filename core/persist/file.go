package persist

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"serverlister/core/reconcile"
)

// FileBackend stores the server list of one game in a local JSON file.
type FileBackend struct {
	dir   string
	game  string
	clock func() time.Time
}

// NewFileBackend creates a backend for <dir>/<game>-servers.json.
func NewFileBackend(dir, game string) *FileBackend {
	if dir == "" {
		dir = "."
	}
	return &FileBackend{dir: dir, game: game, clock: time.Now}
}

// Path returns the document path.
func (b *FileBackend) Path() string {
	return filepath.Join(b.dir, FileName(b.game))
}

// Load reads the document. A missing file is reported as not found.
func (b *FileBackend) Load(ctx context.Context) ([]reconcile.ServerRecord, bool, error) {
	f, err := os.Open(b.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to open %s: %w", b.Path(), err)
	}
	defer f.Close()

	records, err := Decode(f)
	if err != nil {
		return nil, true, fmt.Errorf("%s: %w", b.Path(), err)
	}
	return records, true, nil
}

// Save writes the document to a temporary file and renames it over the
// previous one.
func (b *FileBackend) Save(ctx context.Context, records []reconcile.ServerRecord) (err error) {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, FileName(b.game)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = Encode(tmp, b.game, records, b.clock()); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err = os.Rename(tmp.Name(), b.Path()); err != nil {
		return fmt.Errorf("failed to move temp file: %w", err)
	}
	return nil
}
