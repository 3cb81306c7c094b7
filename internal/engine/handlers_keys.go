package engine

import (
	"fmt"

	"naturalrights/internal/domain/types"
)

type getPubKeys struct {
	caller
	p types.KeysPayload
}

func newGetPubKeys(c caller, p types.KeysPayload) Handler { return &getPubKeys{caller: c, p: p} }

// CheckIsAuthorized always passes; public keys are public.
func (h *getPubKeys) CheckIsAuthorized(*Service) (bool, error) { return true, nil }

func (h *getPubKeys) Execute(s *Service) (any, error) {
	res := types.GetPubKeysResult{KeysPayload: h.p}
	switch h.p.Kind {
	case types.KeyUser:
		u, err := s.DB.GetUser(h.p.ID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrUserNotFound
		}
		res.SignPubKey, res.CryptPubKey = u.SignPubKey, u.CryptPubKey
	case types.KeyGroup:
		g, err := s.DB.GetGroup(h.p.ID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrGroupNotFound
		}
		res.CryptPubKey = g.CryptPubKey
	case types.KeyDocument:
		d, err := s.DB.GetDocument(h.p.ID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, ErrDocumentNotFound
		}
		res.SignPubKey, res.CryptPubKey = d.ID, d.CryptPubKey
	case types.KeyDevice:
		d, err := s.DB.GetDevice(h.p.ID)
		if err != nil {
			return nil, err
		}
		if d == nil {
			return nil, ErrDeviceNotFound
		}
		res.SignPubKey, res.CryptPubKey = d.SignPubKey, d.CryptPubKey
	default:
		return nil, ErrInvalidKeyKind
	}
	return res, nil
}

type getKeyPairs struct {
	caller
	p types.KeysPayload
}

func newGetKeyPairs(c caller, p types.KeysPayload) Handler { return &getKeyPairs{caller: c, p: p} }

func (h *getKeyPairs) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID == "" {
		return false, nil
	}
	switch h.p.Kind {
	case types.KeyUser:
		return h.p.ID == h.userID, nil
	case types.KeyGroup:
		return s.IsGroupAdmin(h.p.ID, h.userID)
	default:
		return false, ErrInvalidKeyKind
	}
}

// Execute returns the private keys re-targeted to the acting device, so only
// that device can open them.
func (h *getKeyPairs) Execute(s *Service) (any, error) {
	device, err := s.DB.GetDevice(h.deviceID)
	if err != nil {
		return nil, err
	}
	if device == nil || device.UserID != h.userID || device.CryptTransformKey == "" {
		return nil, ErrDeviceNotFound
	}
	toDevice := func(ciphertext string) (string, error) {
		if ciphertext == "" {
			return "", nil
		}
		out, err := s.Primitives.ApplyTransform(device.CryptTransformKey, ciphertext)
		if err != nil {
			return "", fmt.Errorf("user to device transform: %w", err)
		}
		return out, nil
	}

	res := types.GetKeyPairsResult{KeysPayload: h.p}
	switch h.p.Kind {
	case types.KeyUser:
		u, err := s.DB.GetUser(h.p.ID)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, ErrUserNotFound
		}
		res.SignPubKey, res.CryptPubKey = u.SignPubKey, u.CryptPubKey
		if res.EncCryptPrivKey, err = toDevice(u.EncCryptPrivKey); err != nil {
			return nil, err
		}
		if res.EncSignPrivKey, err = toDevice(u.EncSignPrivKey); err != nil {
			return nil, err
		}
	case types.KeyGroup:
		g, err := s.DB.GetGroup(h.p.ID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			return nil, ErrGroupNotFound
		}
		key := g.EncCryptPrivKey
		if g.UserID != h.userID {
			m, err := s.DB.GetMembership(g.ID, h.userID)
			if err != nil {
				return nil, err
			}
			if m == nil {
				return nil, ErrMembershipNotFound
			}
			key = m.EncGroupCryptPrivKey
		}
		res.CryptPubKey = g.CryptPubKey
		if res.EncCryptPrivKey, err = toDevice(key); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidKeyKind
	}
	return res, nil
}
