package store_test

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/domain"
	"naturalrights/internal/store"
)

type closer interface{ Close() error }

// backends opens every domain.Store implementation on fresh storage.
func backends(t *testing.T) map[string]domain.Store {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	badgerStore, err := store.NewBadgerStore(store.BadgerConfig{
		Path:   filepath.Join(t.TempDir(), "badger"),
		Logger: log,
	})
	require.NoError(t, err)

	boltStore, err := store.NewBoltStore(filepath.Join(t.TempDir(), "records.db"), log)
	require.NoError(t, err)

	all := map[string]domain.Store{
		"memory": store.NewMemoryStore(),
		"badger": badgerStore,
		"bolt":   boltStore,
	}
	t.Cleanup(func() {
		for _, s := range all {
			if c, ok := s.(closer); ok {
				_ = c.Close()
			}
		}
	})
	return all
}

func TestBackends_GetPutDelete(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get("users/missing")
			require.NoError(t, err)
			assert.Nil(t, got, "missing soul reads as nil")

			require.NoError(t, s.Put("users/alice", []byte(`{"id":"alice"}`)))
			got, err = s.Get("users/alice")
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"alice"}`, string(got))

			require.NoError(t, s.Put("users/alice", []byte(`{"id":"alice","cryptPubKey":"k"}`)))
			got, err = s.Get("users/alice")
			require.NoError(t, err)
			assert.JSONEq(t, `{"id":"alice","cryptPubKey":"k"}`, string(got))

			require.NoError(t, s.Delete("users/alice"))
			got, err = s.Get("users/alice")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Delete("users/alice"), "deleting a missing soul is not an error")
		})
	}
}

func TestBackends_ListDocumentGrants_PrefixIsolation(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			db := store.NewDatabase(s)

			require.NoError(t, db.PutDocument(domain.Document{ID: "doc", CryptUserID: "alice"}))
			require.NoError(t, db.PutDocument(domain.Document{ID: "doc2", CryptUserID: "alice"}))
			require.NoError(t, db.PutGrant(domain.Grant{DocumentID: "doc", Kind: domain.GrantKind("user"), ID: "bob", EncCryptPrivKey: "k1"}))
			require.NoError(t, db.PutGrant(domain.Grant{DocumentID: "doc", Kind: domain.GrantKind("group"), ID: "team", CanSign: true}))
			require.NoError(t, db.PutGrant(domain.Grant{DocumentID: "doc2", Kind: domain.GrantKind("user"), ID: "carol"}))

			grants, err := db.GetDocumentGrants("doc")
			require.NoError(t, err)
			require.Len(t, grants, 2)

			byID := map[string]domain.Grant{}
			for _, g := range grants {
				assert.Equal(t, "doc", g.DocumentID)
				byID[g.ID] = g
			}
			assert.Equal(t, "k1", byID["bob"].EncCryptPrivKey)
			assert.True(t, byID["team"].CanSign)

			require.NoError(t, db.DeleteGrant("doc", domain.GrantKind("user"), "bob"))
			grants, err = db.GetDocumentGrants("doc")
			require.NoError(t, err)
			require.Len(t, grants, 1)
			assert.Equal(t, "team", grants[0].ID)

			grants, err = db.GetDocumentGrants("missing")
			require.NoError(t, err)
			assert.Empty(t, grants)
		})
	}
}

func TestBadgerStore_Reopen(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "badger")
	s, err := store.NewBadgerStore(store.BadgerConfig{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Put("groups/g", []byte(`{"id":"g"}`)))
	require.NoError(t, s.Close())

	s, err = store.NewBadgerStore(store.BadgerConfig{Path: dir})
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get("groups/g")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"g"}`, string(got))
}

func TestNewBadgerStore_RequiresPath(t *testing.T) {
	_, err := store.NewBadgerStore(store.BadgerConfig{})
	assert.Error(t, err)
}
