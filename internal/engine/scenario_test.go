package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/domain/types"
)

func TestScenario_UserGrantAndRevoke(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()
	eve := h.register()
	docID, key := h.createDocument(alice)

	pt, r := h.decryptDocument(alice, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, key.PrivKey, pt)

	requireOK(t, h.do(alice, action(t, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID:      docID,
		Kind:            types.GrantUser,
		ID:              bob.id,
		EncCryptPrivKey: h.encrypt(bob.crypt.PubKey, key.PrivKey),
	})))

	pt, r = h.decryptDocument(bob, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, key.PrivKey, pt)

	_, r = h.decryptDocument(eve, docID)
	assert.Equal(t, "Unauthorized", r.Error)

	requireOK(t, h.do(alice, action(t, types.ActionRevokeAccess, types.RevokeAccessPayload{
		DocumentID: docID, Kind: types.GrantUser, ID: bob.id,
	})))
	_, r = h.decryptDocument(bob, docID)
	assert.Equal(t, "Unauthorized", r.Error)

	// Revoking twice is not an error.
	requireOK(t, h.do(alice, action(t, types.ActionRevokeAccess, types.RevokeAccessPayload{
		DocumentID: docID, Kind: types.GrantUser, ID: bob.id,
	})))
}

func TestScenario_GroupReaderAndAdminPromotion(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()
	carol := h.register()
	docID, key := h.createDocument(alice)
	g := h.createGroup(alice)

	requireOK(t, h.do(alice,
		action(t, types.ActionGrantAccess, types.GrantAccessPayload{
			DocumentID:      docID,
			Kind:            types.GrantGroup,
			ID:              g.id,
			EncCryptPrivKey: h.encrypt(g.crypt.PubKey, key.PrivKey),
		}),
		h.addMember(g, bob, false),
	))

	pt, r := h.decryptDocument(bob, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, key.PrivKey, pt)

	res := h.do(bob, h.addMember(g, carol, false))
	assert.Equal(t, "Unauthorized", res[0].Error)

	requireOK(t, h.do(alice, action(t, types.ActionAddAdminToGroup, types.AddAdminToGroupPayload{
		GroupID:         g.id,
		UserID:          bob.id,
		EncCryptPrivKey: h.encrypt(bob.crypt.PubKey, g.crypt.PrivKey),
	})))
	requireOK(t, h.do(bob, h.addMember(g, carol, false)))

	pt, r = h.decryptDocument(carol, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, key.PrivKey, pt)

	// Bob can now fetch the group key, re-targeted to his device.
	res = h.do(bob, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyGroup, ID: g.id}))
	requireOK(t, res)
	kp := decode[types.GetKeyPairsResult](t, res[0])
	groupPriv, err := h.p.Decrypt(bob.device.Crypt, kp.EncCryptPrivKey)
	require.NoError(t, err)
	assert.Equal(t, g.crypt.PrivKey, groupPriv)
}

func TestSignDocument(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()
	carol := h.register()
	docID, key := h.createDocument(alice)
	g := h.createGroup(alice)

	res := h.do(alice, action(t, types.ActionSignDocument, types.SignDocumentPayload{
		DocumentID: docID, Hashes: []string{"h1", "h2"},
	}))
	requireOK(t, res)
	out := decode[types.SignDocumentResult](t, res[0])
	require.Len(t, out.Signatures, 2)
	assert.True(t, h.p.Verify(docID, out.Signatures[0], "h1"))
	assert.True(t, h.p.Verify(docID, out.Signatures[1], "h2"))

	res = h.do(bob, action(t, types.ActionSignDocument, types.SignDocumentPayload{DocumentID: docID, Hashes: []string{"h"}}))
	assert.Equal(t, "Unauthorized", res[0].Error)

	// Group signing needs canSign on both the grant and the membership.
	requireOK(t, h.do(alice,
		action(t, types.ActionGrantAccess, types.GrantAccessPayload{
			DocumentID:      docID,
			Kind:            types.GrantGroup,
			ID:              g.id,
			EncCryptPrivKey: h.encrypt(g.crypt.PubKey, key.PrivKey),
			CanSign:         types.Bool(true),
		}),
		h.addMember(g, bob, true),
		h.addMember(g, carol, false),
	))
	res = h.do(bob, action(t, types.ActionSignDocument, types.SignDocumentPayload{DocumentID: docID, Hashes: []string{"h"}}))
	requireOK(t, res)
	res = h.do(carol, action(t, types.ActionSignDocument, types.SignDocumentPayload{DocumentID: docID, Hashes: []string{"h"}}))
	assert.Equal(t, "Unauthorized", res[0].Error)
}

func TestGrantAccess_SignDelegationNeedsSignAccess(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()
	carol := h.register()
	docID, key := h.createDocument(alice)

	requireOK(t, h.do(alice, action(t, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID:      docID,
		Kind:            types.GrantUser,
		ID:              bob.id,
		EncCryptPrivKey: h.encrypt(bob.crypt.PubKey, key.PrivKey),
	})))

	res := h.do(bob, action(t, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID:      docID,
		Kind:            types.GrantUser,
		ID:              carol.id,
		EncCryptPrivKey: h.encrypt(carol.crypt.PubKey, key.PrivKey),
		CanSign:         types.Bool(true),
	}))
	assert.Equal(t, "Unauthorized", res[0].Error)

	res = h.do(bob, action(t, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID: docID, Kind: "team", ID: carol.id,
	}))
	assert.Equal(t, "Invalid grant kind", res[0].Error)
}

func TestUpdateDocument(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()
	docID, _ := h.createDocument(alice)
	next := h.cryptKeyPair()

	res := h.do(alice, action(t, types.ActionUpdateDocument, types.UpdateDocumentPayload{
		DocumentID:      docID,
		CryptUserID:     bob.id,
		CryptPubKey:     next.PubKey,
		EncCryptPrivKey: h.encrypt(bob.crypt.PubKey, next.PrivKey),
	}))
	assert.Equal(t, "Document owner cannot change", res[0].Error)

	requireOK(t, h.do(alice, action(t, types.ActionUpdateDocument, types.UpdateDocumentPayload{
		DocumentID:      docID,
		CryptPubKey:     next.PubKey,
		EncCryptPrivKey: h.encrypt(alice.crypt.PubKey, next.PrivKey),
	})))
	pt, r := h.decryptDocument(alice, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, next.PrivKey, pt)

	doc, err := h.svc.DB.GetDocument(docID)
	require.NoError(t, err)
	assert.Equal(t, alice.id, doc.CryptUserID)
	assert.Equal(t, alice.id, doc.CreatorID)
}

func TestCreateDocument_MustBeOwnAndCreator(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()

	res := h.do(alice, action(t, types.ActionCreateDocument, types.CreateDocumentPayload{
		CryptUserID: bob.id, CreatorID: alice.id, CryptPubKey: "x", EncCryptPrivKey: "y",
	}))
	assert.Equal(t, "Unauthorized", res[0].Error)
}

func TestInitializeUser_WithRootDocument(t *testing.T) {
	h := newHarness(t)
	a := h.newAccount()
	root := h.cryptKeyPair()

	batch := h.registrationBatch(a)
	batch[0] = action(t, types.ActionInitializeUser, types.InitializeUserPayload{
		UserID:                 a.id,
		CryptPubKey:            a.crypt.PubKey,
		EncCryptPrivKey:        h.encrypt(a.crypt.PubKey, a.crypt.PrivKey),
		EncSignPrivKey:         h.encrypt(a.crypt.PubKey, a.sign.PrivKey),
		RootDocCryptPubKey:     root.PubKey,
		RootDocEncCryptPrivKey: h.encrypt(a.crypt.PubKey, root.PrivKey),
	})
	res := h.send(a.id, a.device, batch...)
	requireOK(t, res)
	rootID := decode[types.InitializeUserResult](t, res[0]).RootDocumentID
	require.NotEmpty(t, rootID)

	res = h.do(a, action(t, types.ActionLogin, types.LoginPayload{}))
	requireOK(t, res)
	assert.Equal(t, types.LoginResult{UserID: a.id, RootDocumentID: rootID}, decode[types.LoginResult](t, res[0]))

	pt, r := h.decryptDocument(a, rootID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, root.PrivKey, pt)

	user, err := h.svc.DB.GetUser(a.id)
	require.NoError(t, err)
	assert.Equal(t, a.id, user.SignPubKey)
}
