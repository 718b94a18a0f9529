// Package storage keeps produced artifacts (compressed archives and
// reconstructed files) in a BadgerDB key-value store, keyed by the
// download name.
package storage

import (
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
)

var ErrNotFound = errors.New("blob not found")

type BlobStore struct {
	db *badger.DB
}

func NewBlobStore(path string) (*BlobStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Disable default logger

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}
	return &BlobStore{db: db}, nil
}

func (s *BlobStore) Put(name string, data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), data)
	})
}

func (s *BlobStore) Get(name string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BlobStore) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(name))
	})
}

func (s *BlobStore) Close() error {
	return s.db.Close()
}
