package app_test

import (
	"context"
	"io"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/app"
	"naturalrights/internal/config"
)

const passphrase = "Correct-Horse-42"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func startNode(t *testing.T, storeCfg config.StoreConfig) string {
	t.Helper()
	cfg := config.Default()
	cfg.Store = storeCfg
	node, err := app.NewNode(cfg, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = node.Close() })

	ts := httptest.NewServer(node.HTTP.Router())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestOpenStore_UnknownBackend(t *testing.T) {
	_, _, err := app.OpenStore(config.StoreConfig{Backend: "tape"}, quietLogger())
	assert.Error(t, err)
}

func TestWire_RegisterAndReload(t *testing.T) {
	for _, sc := range []config.StoreConfig{
		{Backend: config.BackendMemory},
		{Backend: config.BackendBolt, Path: filepath.Join(t.TempDir(), "rights.db")},
		{Backend: config.BackendBadger, Path: filepath.Join(t.TempDir(), "badger")},
	} {
		t.Run(sc.Backend, func(t *testing.T) {
			ctx := context.Background()
			url := startNode(t, sc)
			home := t.TempDir()

			w, err := app.NewWire(app.Config{Home: home, ServerURL: url})
			require.NoError(t, err)
			_, _, err = w.Devices.GenerateDevice(passphrase)
			require.NoError(t, err)

			_, err = w.RegisteredClient(passphrase)
			assert.ErrorIs(t, err, app.ErrNotRegistered)

			c, err := w.Client(passphrase)
			require.NoError(t, err)
			rootID, err := c.InitializeUser(ctx)
			require.NoError(t, err)
			require.NoError(t, w.SaveAccount(c.UserID, rootID))

			// A fresh wire over the same home acts for the saved user.
			w2, err := app.NewWire(app.Config{Home: home, ServerURL: url})
			require.NoError(t, err)
			c2, err := w2.RegisteredClient(passphrase)
			require.NoError(t, err)
			assert.Equal(t, c.UserID, c2.UserID)

			docID, keys, err := c2.CreateDocument(ctx)
			require.NoError(t, err)
			key, err := c2.DecryptDocumentEncryptionKey(ctx, docID)
			require.NoError(t, err)
			assert.Equal(t, keys.PrivKey, key)
		})
	}
}

func TestNewWire_RequiresServer(t *testing.T) {
	_, err := app.NewWire(app.Config{Home: t.TempDir()})
	assert.Error(t, err)
}
