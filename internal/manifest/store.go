package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bOutputs = []byte("outputs") // out path -> entry json
	bMeta    = []byte("meta")    // build info
)

// Store is the manifest of the last build: one fingerprint per generated
// file, kept in a bbolt database next to the site.
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. "./.folio/manifest.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("manifest: missing path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", opt.Path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
