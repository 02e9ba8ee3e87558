package manifest

import (
	"encoding/json"
	"time"

	bolt "go.etcd.io/bbolt"

	"folio/internal/domain/build"
)

var keyBuiltAt = []byte("built_at")

// Entries maps an output path, relative to the public directory and with
// forward slashes, to the fingerprint of its content.
type Entries map[string]build.Fingerprint

// Load returns the entries of the last committed build. A fresh manifest has
// none.
func (s *Store) Load() (Entries, error) {
	out := Entries{}
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bOutputs)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var fp build.Fingerprint
			if err := json.Unmarshal(v, &fp); err != nil {
				return err
			}
			out[string(k)] = fp
			return nil
		})
	})
	return out, err
}

// Commit replaces the manifest with entries and returns the paths of the
// previous build that are no longer produced.
func (s *Store) Commit(entries Entries, builtAt time.Time) ([]string, error) {
	var stale []string
	err := s.db.Update(func(tx *bolt.Tx) error {
		if old := tx.Bucket(bOutputs); old != nil {
			if err := old.ForEach(func(k, _ []byte) error {
				if _, ok := entries[string(k)]; !ok {
					stale = append(stale, string(k))
				}
				return nil
			}); err != nil {
				return err
			}
			if err := tx.DeleteBucket(bOutputs); err != nil {
				return err
			}
		}

		b, err := tx.CreateBucket(bOutputs)
		if err != nil {
			return err
		}
		for path, fp := range entries {
			v, err := json.Marshal(fp)
			if err != nil {
				return err
			}
			if err := b.Put([]byte(path), v); err != nil {
				return err
			}
		}

		meta, err := tx.CreateBucketIfNotExists(bMeta)
		if err != nil {
			return err
		}
		ts, err := builtAt.UTC().MarshalText()
		if err != nil {
			return err
		}
		return meta.Put(keyBuiltAt, ts)
	})
	if err != nil {
		return nil, err
	}
	return stale, nil
}

// BuiltAt is the time of the last commit, zero before the first one.
func (s *Store) BuiltAt() (time.Time, error) {
	var t time.Time
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bMeta)
		if b == nil {
			return nil
		}
		v := b.Get(keyBuiltAt)
		if v == nil {
			return nil
		}
		return t.UnmarshalText(v)
	})
	return t, err
}
