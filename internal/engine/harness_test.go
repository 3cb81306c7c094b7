package engine_test

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
	"naturalrights/internal/engine"
	"naturalrights/internal/store"
)

type harness struct {
	t   *testing.T
	svc *engine.Service
	p   *crypto.Suite
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	p := crypto.NewSuite()
	return &harness{
		t:   t,
		svc: engine.New(store.NewMemoryStore(), p, engine.WithLogger(log)),
		p:   p,
	}
}

// account is a registered user together with the one device it acts from.
type account struct {
	id        string
	crypt     domain.KeyPair
	sign      domain.KeyPair
	device    domain.DeviceKeys
	transform string
}

func (h *harness) cryptKeyPair() domain.KeyPair {
	kp, err := h.p.GenCryptKeyPair()
	require.NoError(h.t, err)
	return kp
}

func (h *harness) signKeyPair() domain.KeyPair {
	kp, err := h.p.GenSignKeyPair()
	require.NoError(h.t, err)
	return kp
}

func (h *harness) newDevice() domain.DeviceKeys {
	return domain.DeviceKeys{Crypt: h.cryptKeyPair(), Sign: h.signKeyPair()}
}

func (h *harness) encrypt(pub, pt string) string {
	ct, err := h.p.Encrypt(pub, pt)
	require.NoError(h.t, err)
	return ct
}

func (h *harness) transformKey(from domain.KeyPair, to string) string {
	tk, err := h.p.GenTransformKey(from, to)
	require.NoError(h.t, err)
	return tk
}

// newAccount builds the keys of a user and its first device without sending
// anything.
func (h *harness) newAccount() *account {
	a := &account{crypt: h.cryptKeyPair(), sign: h.signKeyPair(), device: h.newDevice()}
	a.id = a.sign.PubKey
	a.transform = h.transformKey(a.crypt, a.device.Crypt.PubKey)
	return a
}

func (h *harness) registrationBatch(a *account) []domain.Action {
	return []domain.Action{
		action(h.t, types.ActionInitializeUser, types.InitializeUserPayload{
			UserID:          a.id,
			SignPubKey:      a.sign.PubKey,
			CryptPubKey:     a.crypt.PubKey,
			EncCryptPrivKey: h.encrypt(a.crypt.PubKey, a.crypt.PrivKey),
			EncSignPrivKey:  h.encrypt(a.crypt.PubKey, a.sign.PrivKey),
		}),
		action(h.t, types.ActionAddDevice, types.AddDevicePayload{
			DeviceID:          a.device.ID(),
			UserID:            a.id,
			CryptPubKey:       a.device.Crypt.PubKey,
			SignPubKey:        a.device.Sign.PubKey,
			CryptTransformKey: a.transform,
		}),
	}
}

func (h *harness) register() *account {
	a := h.newAccount()
	requireOK(h.t, h.send(a.id, a.device, h.registrationBatch(a)...))
	return a
}

// send signs the batch with dev and submits it.
func (h *harness) send(userID string, dev domain.DeviceKeys, actions ...domain.Action) []domain.Result {
	h.t.Helper()
	body, err := json.Marshal(actions)
	require.NoError(h.t, err)
	sig, err := h.p.Sign(dev.Sign, string(body))
	require.NoError(h.t, err)

	resp, err := h.svc.ProcessRequest(domain.Request{
		UserID:    userID,
		DeviceID:  dev.ID(),
		Signature: sig,
		Body:      string(body),
	})
	require.NoError(h.t, err)
	require.Len(h.t, resp.Results, len(actions))
	return resp.Results
}

func (h *harness) do(a *account, actions ...domain.Action) []domain.Result {
	h.t.Helper()
	return h.send(a.id, a.device, actions...)
}

// createDocument creates a document owned by a and returns its id and key.
func (h *harness) createDocument(a *account) (string, domain.KeyPair) {
	h.t.Helper()
	key := h.cryptKeyPair()
	res := h.do(a, action(h.t, types.ActionCreateDocument, types.CreateDocumentPayload{
		CryptUserID:     a.id,
		CryptPubKey:     key.PubKey,
		CreatorID:       a.id,
		EncCryptPrivKey: h.encrypt(a.crypt.PubKey, key.PrivKey),
	}))
	requireOK(h.t, res)
	out := decode[types.CreateDocumentResult](h.t, res[0])
	require.NotEmpty(h.t, out.DocumentID)
	return out.DocumentID, key
}

// decryptDocument runs DecryptDocument as a and opens the returned key with
// a's device key.
func (h *harness) decryptDocument(a *account, documentID string) (string, domain.Result) {
	h.t.Helper()
	res := h.do(a, action(h.t, types.ActionDecryptDocument, types.DecryptDocumentPayload{DocumentID: documentID}))
	if !res[0].Success {
		return "", res[0]
	}
	out := decode[types.DecryptDocumentResult](h.t, res[0])
	pt, err := h.p.Decrypt(a.device.Crypt, out.EncCryptPrivKey)
	require.NoError(h.t, err)
	return pt, res[0]
}

type group struct {
	id    string
	crypt domain.KeyPair
}

// createGroup creates a group administered by a.
func (h *harness) createGroup(a *account) group {
	h.t.Helper()
	g := group{id: h.signKeyPair().PubKey, crypt: h.cryptKeyPair()}
	requireOK(h.t, h.do(a, action(h.t, types.ActionCreateGroup, types.CreateGroupPayload{
		GroupID:         g.id,
		UserID:          a.id,
		CryptPubKey:     g.crypt.PubKey,
		EncCryptPrivKey: h.encrypt(a.crypt.PubKey, g.crypt.PrivKey),
	})))
	return g
}

func (h *harness) addMember(g group, member *account, canSign bool) domain.Action {
	return action(h.t, types.ActionAddMemberToGroup, types.AddMemberToGroupPayload{
		GroupID:           g.id,
		UserID:            member.id,
		CryptTransformKey: h.transformKey(g.crypt, member.crypt.PubKey),
		CanSign:           types.Bool(canSign),
	})
}

func action(t *testing.T, typ domain.ActionType, payload any) domain.Action {
	t.Helper()
	a, err := types.NewAction(typ, payload)
	require.NoError(t, err)
	return a
}

func decode[T any](t *testing.T, r domain.Result) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(r.Payload, &out))
	return out
}

func requireOK(t *testing.T, results []domain.Result) {
	t.Helper()
	for i, r := range results {
		require.Truef(t, r.Success, "action %d (%s) failed: %s", i, r.Type, r.Error)
	}
}
