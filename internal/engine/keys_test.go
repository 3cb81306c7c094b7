package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/domain/types"
)

func TestGetPubKeys(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	docID, key := h.createDocument(alice)
	g := h.createGroup(alice)

	res := h.do(alice,
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyUser, ID: alice.id}),
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyGroup, ID: g.id}),
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyDocument, ID: docID}),
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyDevice, ID: alice.device.ID()}),
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyUser, ID: "ghost"}),
	)
	requireOK(t, res[:4])

	user := decode[types.GetPubKeysResult](t, res[0])
	assert.Equal(t, alice.crypt.PubKey, user.CryptPubKey)
	assert.Equal(t, alice.sign.PubKey, user.SignPubKey)

	grp := decode[types.GetPubKeysResult](t, res[1])
	assert.Equal(t, g.crypt.PubKey, grp.CryptPubKey)
	assert.Empty(t, grp.SignPubKey)

	doc := decode[types.GetPubKeysResult](t, res[2])
	assert.Equal(t, key.PubKey, doc.CryptPubKey)
	assert.Equal(t, docID, doc.SignPubKey)

	dev := decode[types.GetPubKeysResult](t, res[3])
	assert.Equal(t, alice.device.Crypt.PubKey, dev.CryptPubKey)

	assert.Equal(t, "User does not exist", res[4].Error)
}

func TestGetKeyPairs_User(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	bob := h.register()

	res := h.do(alice, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyUser, ID: alice.id}))
	requireOK(t, res)
	out := decode[types.GetKeyPairsResult](t, res[0])

	cryptPriv, err := h.p.Decrypt(alice.device.Crypt, out.EncCryptPrivKey)
	require.NoError(t, err)
	assert.Equal(t, alice.crypt.PrivKey, cryptPriv)
	signPriv, err := h.p.Decrypt(alice.device.Crypt, out.EncSignPrivKey)
	require.NoError(t, err)
	assert.Equal(t, alice.sign.PrivKey, signPriv)

	res = h.do(bob, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyUser, ID: alice.id}))
	assert.Equal(t, "Unauthorized", res[0].Error)

	res = h.do(alice, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyDocument, ID: "d"}))
	assert.Equal(t, "Invalid key kind", res[0].Error)
}

func TestGetKeyPairs_GroupCreator(t *testing.T) {
	h := newHarness(t)
	alice := h.register()
	g := h.createGroup(alice)

	res := h.do(alice, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyGroup, ID: g.id}))
	requireOK(t, res)
	out := decode[types.GetKeyPairsResult](t, res[0])
	assert.Empty(t, out.SignPubKey)
	assert.Empty(t, out.EncSignPrivKey)

	priv, err := h.p.Decrypt(alice.device.Crypt, out.EncCryptPrivKey)
	require.NoError(t, err)
	assert.Equal(t, g.crypt.PrivKey, priv)
}
