package store

import (
	"bytes"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"github.com/sirupsen/logrus"

	"naturalrights/internal/domain"
)

var recordsBucket = []byte("records")

// BoltStore persists records in a single BoltDB bucket keyed by soul.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string, log logrus.FieldLogger) (*BoltStore, error) {
	if log == nil {
		log = logrus.New()
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %q: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(recordsBucket)
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	log.WithFields(logrus.Fields{"backend": "bolt", "path": path}).Info("store opened")
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Get(soul string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(recordsBucket).Get([]byte(soul))
		if data == nil {
			return nil
		}
		value = append([]byte(nil), data...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (s *BoltStore) Put(soul string, record []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Put([]byte(soul), record)
	})
}

func (s *BoltStore) Delete(soul string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(recordsBucket).Delete([]byte(soul))
	})
}

func (s *BoltStore) ListDocumentGrants(documentSoul string) ([]domain.Grant, error) {
	prefix := []byte(GrantsPrefix(documentSoul))
	var grants []domain.Grant
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(recordsBucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, v = c.Next() {
			g, err := decodeGrant(string(k), v)
			if err != nil {
				return err
			}
			grants = append(grants, g)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return grants, nil
}

// Close releases the database file lock.
func (s *BoltStore) Close() error { return s.db.Close() }

// Compile-time assertion that BoltStore implements domain.Store.
var _ domain.Store = (*BoltStore)(nil)
