package store

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	"naturalrights/internal/domain"
)

// BadgerConfig configures a BadgerStore.
type BadgerConfig struct {
	Path       string // directory; ignored when InMemory is set
	InMemory   bool
	SyncWrites bool
	Logger     logrus.FieldLogger
}

// BadgerStore persists records in a Badger key-value database, one key per soul.
type BadgerStore struct {
	db  *badger.DB
	log logrus.FieldLogger
}

// NewBadgerStore opens (or creates) the database described by cfg.
func NewBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.Path == "" && !cfg.InMemory {
		return nil, errors.New("badger store: path required")
	}

	opts := badger.DefaultOptions(cfg.Path)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts.Logger = nil
	opts.SyncWrites = cfg.SyncWrites

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger %q: %w", cfg.Path, err)
	}
	cfg.Logger.WithFields(logrus.Fields{
		"backend":   "badger",
		"path":      cfg.Path,
		"in_memory": cfg.InMemory,
	}).Info("store opened")
	return &BadgerStore{db: db, log: cfg.Logger}, nil
}

func (s *BadgerStore) Get(soul string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(soul))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("badger get %s: %w", soul, err)
	}
	return value, nil
}

func (s *BadgerStore) Put(soul string, record []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(soul), record)
	})
}

func (s *BadgerStore) Delete(soul string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(soul))
	})
}

func (s *BadgerStore) ListDocumentGrants(documentSoul string) ([]domain.Grant, error) {
	prefix := []byte(GrantsPrefix(documentSoul))
	var grants []domain.Grant
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			g, err := decodeGrant(string(item.Key()), v)
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

// Close syncs and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.db.Sync(); err != nil {
		s.log.WithError(err).Warn("badger sync before close")
	}
	return s.db.Close()
}

// Compile-time assertion that BadgerStore implements domain.Store.
var _ domain.Store = (*BadgerStore)(nil)
