package app

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"naturalrights/internal/config"
	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
	"naturalrights/internal/engine"
	"naturalrights/internal/server"
	"naturalrights/internal/store"
)

// Node is the server side: the open Store, the engine over it and the HTTP
// front end.
type Node struct {
	Store  domain.Store
	Rights *engine.Service
	HTTP   *server.Server

	close func() error
}

// NewNode opens the configured Store backend and builds the engine and HTTP
// server on top of it.
func NewNode(cfg config.Config, log *logrus.Logger) (*Node, error) {
	st, closeStore, err := OpenStore(cfg.Store, log)
	if err != nil {
		return nil, err
	}
	rightsSvc := engine.New(st, crypto.NewSuite(), engine.WithLogger(log.WithField("component", "engine")))
	return &Node{
		Store:  st,
		Rights: rightsSvc,
		HTTP:   server.New(rightsSvc, log.WithField("component", "http")),
		close:  closeStore,
	}, nil
}

// Close releases the Store.
func (n *Node) Close() error { return n.close() }

// OpenStore opens the backend named in cfg. The returned func closes it.
func OpenStore(cfg config.StoreConfig, log logrus.FieldLogger) (domain.Store, func() error, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), func() error { return nil }, nil
	case config.BackendBadger:
		s, err := store.NewBadgerStore(store.BadgerConfig{
			Path:       cfg.Path,
			SyncWrites: cfg.SyncWrites,
			Logger:     log,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendBolt:
		s, err := store.NewBoltStore(cfg.Path, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
