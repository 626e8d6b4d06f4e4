// Package state persists the provider's working state in a bbolt KV db:
// the active filter config and the last derived travel data. A restarted
// daemon serves immediately from the snapshot while the exported JSON in
// the data dir remains the canonical source.
package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wandermap/traveld/params"
	"go.etcd.io/bbolt"
)

type State struct {
	DB *bbolt.DB
}

// Open opens (creating if necessary) the state db under dataDir.
func Open(dataDir string) (*State, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, err
	}
	db, err := bbolt.Open(filepath.Join(dataDir, params.StateDBName), 0600, nil)
	if err != nil {
		return nil, err
	}
	return &State{DB: db}, nil
}

func (s *State) Close() error {
	return s.DB.Close()
}

// StoreKVMarshalJSON marshals v and stores it at key in the state bucket.
func (s *State) StoreKVMarshalJSON(key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.DB.Update(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(params.StateBucket)
		if err != nil {
			return err
		}
		return bucket.Put(key, data)
	})
}

// ReadKVUnmarshalJSON reads key from the state bucket into v.
// A missing bucket or key returns os.ErrNotExist.
func (s *State) ReadKVUnmarshalJSON(key []byte, v any) error {
	var data []byte
	err := s.DB.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(params.StateBucket)
		if bucket == nil {
			return fmt.Errorf("%w: no state bucket", os.ErrNotExist)
		}
		got := bucket.Get(key)
		if got == nil {
			return fmt.Errorf("%w: no value at %s", os.ErrNotExist, key)
		}
		data = append(data, got...)
		return nil
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
