package rights_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
	"naturalrights/internal/engine"
	"naturalrights/internal/services/rights"
	"naturalrights/internal/store"
)

type world struct {
	t   *testing.T
	svc *engine.Service
	p   *crypto.Suite
}

func newWorld(t *testing.T) *world {
	log := logrus.New()
	log.SetOutput(io.Discard)
	p := crypto.NewSuite()
	return &world{t: t, svc: engine.New(store.NewMemoryStore(), p, engine.WithLogger(log)), p: p}
}

func (w *world) device() domain.DeviceKeys {
	crypt, err := w.p.GenCryptKeyPair()
	require.NoError(w.t, err)
	sign, err := w.p.GenSignKeyPair()
	require.NoError(w.t, err)
	return domain.DeviceKeys{Crypt: crypt, Sign: sign}
}

func (w *world) user() *rights.Client {
	c := rights.New(w.svc, w.p, w.device(), "")
	_, err := c.InitializeUser(context.Background())
	require.NoError(w.t, err)
	require.NotEmpty(w.t, c.UserID)
	return c
}

func requireFailure(t *testing.T, err error, msg string) {
	t.Helper()
	var reqErr *rights.RequestError
	require.True(t, errors.As(err, &reqErr), "want *RequestError, got %v", err)
	require.NotEmpty(t, reqErr.Failures)
	assert.Equal(t, msg, reqErr.Failures[0].Error)
}

func TestInitializeUser_RootDocument(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	c := rights.New(w.svc, w.p, w.device(), "")

	rootID, err := c.InitializeUser(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, rootID)

	res, err := c.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, rootID, res.RootDocumentID)
	assert.Equal(t, c.UserID, res.UserID)

	cts, err := c.EncryptDocumentTexts(ctx, rootID, []string{"settings"})
	require.NoError(t, err)
	pts, err := c.DecryptDocumentTexts(ctx, rootID, cts)
	require.NoError(t, err)
	assert.Equal(t, []string{"settings"}, pts)
}

func TestDocumentSharing(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice, bob, eve := w.user(), w.user(), w.user()

	docID, _, err := alice.CreateDocument(ctx)
	require.NoError(t, err)
	cts, err := alice.EncryptDocumentTexts(ctx, docID, []string{"one", "two"})
	require.NoError(t, err)

	require.NoError(t, alice.GrantReadAccess(ctx, docID, types.GrantUser, bob.UserID))
	pts, err := bob.DecryptDocumentTexts(ctx, docID, cts)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, pts)

	_, err = eve.DecryptDocumentTexts(ctx, docID, cts)
	requireFailure(t, err, "Unauthorized")

	require.NoError(t, alice.RevokeAccess(ctx, docID, types.GrantUser, bob.UserID))
	_, err = bob.DecryptDocumentEncryptionKey(ctx, docID)
	requireFailure(t, err, "Unauthorized")
}

func TestDocumentKeyRotation(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice := w.user()

	docID, first, err := alice.CreateDocument(ctx)
	require.NoError(t, err)
	second, err := alice.UpdateDocumentEncryption(ctx, docID)
	require.NoError(t, err)
	assert.NotEqual(t, first.PubKey, second.PubKey)

	key, err := alice.DecryptDocumentEncryptionKey(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, second.PrivKey, key)
}

func TestGroupFlows(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice, bob, carol := w.user(), w.user(), w.user()

	groupID, err := alice.CreateGroup(ctx)
	require.NoError(t, err)
	docID, _, err := alice.CreateDocument(ctx)
	require.NoError(t, err)
	cts, err := alice.EncryptDocumentTexts(ctx, docID, []string{"minutes"})
	require.NoError(t, err)

	require.NoError(t, alice.GrantReadAccess(ctx, docID, types.GrantGroup, groupID))
	require.NoError(t, alice.AddReaderToGroup(ctx, groupID, bob.UserID))

	pts, err := bob.DecryptDocumentTexts(ctx, docID, cts)
	require.NoError(t, err)
	assert.Equal(t, []string{"minutes"}, pts)

	// Readers cannot recruit.
	err = bob.AddReaderToGroup(ctx, groupID, carol.UserID)
	requireFailure(t, err, "Unauthorized")

	require.NoError(t, alice.AddAdminToGroup(ctx, groupID, bob.UserID))
	require.NoError(t, bob.AddReaderToGroup(ctx, groupID, carol.UserID))
	pts, err = carol.DecryptDocumentTexts(ctx, docID, cts)
	require.NoError(t, err)
	assert.Equal(t, []string{"minutes"}, pts)

	require.NoError(t, alice.RemoveAdminFromGroup(ctx, groupID, bob.UserID))
	_, err = bob.GetKeyPairs(ctx, types.KeyGroup, groupID)
	requireFailure(t, err, "Unauthorized")

	require.NoError(t, carol.RemoveMemberFromGroup(ctx, groupID, carol.UserID))
	_, err = carol.DecryptDocumentEncryptionKey(ctx, docID)
	requireFailure(t, err, "Unauthorized")
}

func TestSigning(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice, bob := w.user(), w.user()

	docID, _, err := alice.CreateDocument(ctx)
	require.NoError(t, err)

	sigs, err := alice.SignDocumentTexts(ctx, docID, []string{"contract"})
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.True(t, w.p.Verify(docID, sigs[0], rights.HashForSignature("contract")))

	_, err = bob.SignDocumentHashes(ctx, docID, []string{"h"})
	requireFailure(t, err, "Unauthorized")

	require.NoError(t, alice.GrantSignAccess(ctx, docID, types.GrantUser, bob.UserID))
	_, err = bob.SignDocumentHashes(ctx, docID, []string{"h"})
	require.NoError(t, err)

	// Signing rights do not include reading.
	_, err = bob.DecryptDocumentEncryptionKey(ctx, docID)
	requireFailure(t, err, "Unauthorized")
}

func TestGroupSigning(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice, bob := w.user(), w.user()

	groupID, err := alice.CreateGroup(ctx)
	require.NoError(t, err)
	docID, _, err := alice.CreateDocument(ctx)
	require.NoError(t, err)
	require.NoError(t, alice.GrantSignAccess(ctx, docID, types.GrantGroup, groupID))
	require.NoError(t, alice.AddReaderToGroup(ctx, groupID, bob.UserID))

	_, err = bob.SignDocumentHashes(ctx, docID, []string{"h"})
	requireFailure(t, err, "Unauthorized")

	require.NoError(t, alice.AddSignerToGroup(ctx, groupID, bob.UserID))
	_, err = bob.SignDocumentHashes(ctx, docID, []string{"h"})
	require.NoError(t, err)
}

func TestSecondDevice(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice := w.user()
	docID, docKeys, err := alice.CreateDocument(ctx)
	require.NoError(t, err)

	laptop := rights.New(w.svc, w.p, w.device(), "")
	res, err := laptop.Login(ctx)
	require.NoError(t, err)
	assert.Empty(t, res.UserID)

	require.NoError(t, alice.AuthorizeDevice(ctx, laptop.DeviceID()))
	res, err = laptop.Login(ctx)
	require.NoError(t, err)
	assert.Equal(t, alice.UserID, res.UserID)
	assert.Equal(t, alice.UserID, laptop.UserID)

	key, err := laptop.DecryptDocumentEncryptionKey(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, docKeys.PrivKey, key)

	require.NoError(t, alice.RemoveDevice(ctx, laptop.DeviceID()))
	_, err = laptop.DecryptDocumentEncryptionKey(ctx, docID)
	require.Error(t, err)
}

func TestAddDevice(t *testing.T) {
	ctx := context.Background()
	w := newWorld(t)
	alice := w.user()
	docID, docKeys, err := alice.CreateDocument(ctx)
	require.NoError(t, err)

	phoneKeys := w.device()
	require.NoError(t, alice.AddDevice(ctx, phoneKeys.ID(), phoneKeys.Crypt.PubKey))

	phone := rights.New(w.svc, w.p, phoneKeys, alice.UserID)
	key, err := phone.DecryptDocumentEncryptionKey(ctx, docID)
	require.NoError(t, err)
	assert.Equal(t, docKeys.PrivKey, key)
}

func TestRequestError_Message(t *testing.T) {
	err := &rights.RequestError{Failures: []domain.Result{
		{Type: types.ActionGrantAccess, Error: "Unauthorized"},
		{Type: types.ActionSignDocument, Error: "No access"},
	}}
	assert.Equal(t, "rights request failed: GrantAccess: Unauthorized; SignDocument: No access", err.Error())
}
