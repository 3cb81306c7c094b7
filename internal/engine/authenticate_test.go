package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
	"naturalrights/internal/engine"
)

func TestRegistrationBatch_CreatesUserAndBoundDevice(t *testing.T) {
	h := newHarness(t)
	a := h.register()

	user, err := h.svc.DB.GetUser(a.id)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, a.crypt.PubKey, user.CryptPubKey)

	device, err := h.svc.DB.GetDevice(a.device.ID())
	require.NoError(t, err)
	require.NotNil(t, device)
	assert.Equal(t, a.id, device.UserID)
	assert.Equal(t, a.transform, device.CryptTransformKey)
}

func TestRegistrationBatch_RejectedForExistingUser(t *testing.T) {
	h := newHarness(t)
	a := h.register()

	intruder := h.newDevice()
	batch := h.registrationBatch(&account{
		id:        a.id,
		crypt:     a.crypt,
		sign:      a.sign,
		device:    intruder,
		transform: h.transformKey(a.crypt, intruder.Crypt.PubKey),
	})
	for _, r := range h.send(a.id, intruder, batch...) {
		assert.False(t, r.Success)
		assert.Equal(t, engine.ErrAuthentication.Error(), r.Error)
	}
}

func TestAuthentication_BadSignatureFailsEveryAction(t *testing.T) {
	h := newHarness(t)
	a := h.register()

	actions := []domain.Action{
		action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyUser, ID: a.id}),
		action(t, types.ActionLogin, types.LoginPayload{}),
	}
	body, err := json.Marshal(actions)
	require.NoError(t, err)
	other := h.newDevice()
	sig, err := h.p.Sign(other.Sign, string(body))
	require.NoError(t, err)

	resp, err := h.svc.ProcessRequest(domain.Request{
		UserID:    a.id,
		DeviceID:  a.device.ID(),
		Signature: sig,
		Body:      string(body),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	for i, r := range resp.Results {
		assert.False(t, r.Success)
		assert.Equal(t, "Authentication error", r.Error)
		assert.Equal(t, actions[i].Type, r.Type)
		assert.JSONEq(t, string(actions[i].Payload), string(r.Payload))
	}
}

func TestAuthentication_UnknownDeviceOnlyBootstraps(t *testing.T) {
	h := newHarness(t)
	stranger := h.newDevice()

	res := h.send("", stranger, action(t, types.ActionGetPubKeys, types.KeysPayload{Kind: types.KeyUser, ID: "x"}))
	assert.Equal(t, "Authentication error", res[0].Error)
}

func TestAuthentication_EmptySignature(t *testing.T) {
	h := newHarness(t)
	resp, err := h.svc.ProcessRequest(domain.Request{DeviceID: "abc", Body: `[{"type":"Login","payload":{}}]`})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Authentication error", resp.Results[0].Error)
}

func TestProcessRequest_MalformedBody(t *testing.T) {
	h := newHarness(t)
	_, err := h.svc.ProcessRequest(domain.Request{DeviceID: "abc", Signature: "x", Body: `{"not":"a list"}`})
	assert.ErrorIs(t, err, engine.ErrMalformedRequest)
}

func TestLogin_UnboundDeviceThenAuthorize(t *testing.T) {
	h := newHarness(t)
	a := h.register()
	laptop := h.newDevice()

	res := h.send("", laptop, action(t, types.ActionLogin, types.LoginPayload{CryptPubKey: laptop.Crypt.PubKey}))
	requireOK(t, res)
	assert.Equal(t, types.LoginResult{}, decode[types.LoginResult](t, res[0]))

	// The new device is known but bound to nobody, so it cannot act as a.
	res = h.send(a.id, laptop, action(t, types.ActionGetKeyPairs, types.KeysPayload{Kind: types.KeyUser, ID: a.id}))
	assert.Equal(t, "Unauthorized", res[0].Error)

	requireOK(t, h.do(a, action(t, types.ActionAuthorizeDevice, types.AuthorizeDevicePayload{
		DeviceID:          laptop.ID(),
		UserID:            a.id,
		CryptTransformKey: h.transformKey(a.crypt, laptop.Crypt.PubKey),
	})))

	res = h.send("", laptop, action(t, types.ActionLogin, types.LoginPayload{}))
	requireOK(t, res)
	assert.Equal(t, a.id, decode[types.LoginResult](t, res[0]).UserID)

	docID, key := h.createDocument(a)
	laptopAccount := &account{id: a.id, crypt: a.crypt, sign: a.sign, device: laptop}
	pt, r := h.decryptDocument(laptopAccount, docID)
	require.True(t, r.Success, r.Error)
	assert.Equal(t, key.PrivKey, pt)
}

func TestAuthorizeDevice_CannotStealBoundDevice(t *testing.T) {
	h := newHarness(t)
	a := h.register()
	eve := h.register()

	res := h.do(eve, action(t, types.ActionAuthorizeDevice, types.AuthorizeDevicePayload{
		DeviceID:          a.device.ID(),
		UserID:            eve.id,
		CryptTransformKey: h.transformKey(eve.crypt, a.device.Crypt.PubKey),
	}))
	assert.Equal(t, "Unauthorized", res[0].Error)
}

func TestRemoveDevice(t *testing.T) {
	h := newHarness(t)
	a := h.register()
	phone := h.newDevice()
	requireOK(t, h.do(a, action(t, types.ActionAddDevice, types.AddDevicePayload{
		DeviceID:          phone.ID(),
		UserID:            a.id,
		CryptPubKey:       phone.Crypt.PubKey,
		SignPubKey:        phone.Sign.PubKey,
		CryptTransformKey: h.transformKey(a.crypt, phone.Crypt.PubKey),
	})))

	requireOK(t, h.do(a, action(t, types.ActionRemoveDevice, types.RemoveDevicePayload{DeviceID: phone.ID(), UserID: a.id})))
	device, err := h.svc.DB.GetDevice(phone.ID())
	require.NoError(t, err)
	assert.Nil(t, device)

	res := h.do(a, action(t, types.ActionRemoveDevice, types.RemoveDevicePayload{DeviceID: phone.ID(), UserID: a.id}))
	assert.Equal(t, "Device does not exist", res[0].Error)
}
