package engine

import (
	"fmt"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

type initializeUser struct {
	caller
	p types.InitializeUserPayload
}

func newInitializeUser(c caller, p types.InitializeUserPayload) Handler {
	return &initializeUser{caller: c, p: p}
}

func (h *initializeUser) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID == "" || h.p.UserID != h.userID {
		return false, nil
	}
	existing, err := s.DB.GetUser(h.p.UserID)
	if err != nil || existing != nil {
		return false, err
	}
	device, err := s.DB.GetDevice(h.deviceID)
	if err != nil {
		return false, err
	}
	return device == nil || !device.Bound(), nil
}

func (h *initializeUser) Execute(s *Service) (any, error) {
	user := domain.User{
		ID:              h.p.UserID,
		CryptPubKey:     h.p.CryptPubKey,
		SignPubKey:      h.p.SignPubKey,
		EncCryptPrivKey: h.p.EncCryptPrivKey,
		EncSignPrivKey:  h.p.EncSignPrivKey,
	}
	if user.SignPubKey == "" {
		user.SignPubKey = user.ID
	}

	withRoot := h.p.RootDocCryptPubKey != "" || h.p.RootDocEncCryptPrivKey != ""
	if withRoot {
		if h.p.RootDocCryptPubKey == "" || h.p.RootDocEncCryptPrivKey == "" {
			return nil, fmt.Errorf("%w: root document needs both keys", ErrInvalidPayload)
		}
		doc, err := s.newDocument(user.ID, user.ID, h.p.RootDocCryptPubKey, h.p.RootDocEncCryptPrivKey)
		if err != nil {
			return nil, err
		}
		user.RootDocumentID = doc.ID
	}

	if err := s.DB.PutUser(user); err != nil {
		return nil, err
	}
	return types.InitializeUserResult{
		InitializeUserPayload: h.p,
		RootDocumentID:        user.RootDocumentID,
	}, nil
}

type login struct {
	caller
	p types.LoginPayload
}

func newLogin(c caller, p types.LoginPayload) Handler { return &login{caller: c, p: p} }

// CheckIsAuthorized always passes; the envelope signature is the proof.
func (h *login) CheckIsAuthorized(*Service) (bool, error) { return true, nil }

func (h *login) Execute(s *Service) (any, error) {
	if h.userID == "" {
		device, err := s.DB.GetDevice(h.deviceID)
		if err != nil {
			return nil, err
		}
		if device == nil {
			err = s.DB.PutDevice(domain.Device{
				ID:          h.deviceID,
				SignPubKey:  h.deviceID,
				CryptPubKey: h.p.CryptPubKey,
			})
			if err != nil {
				return nil, err
			}
		}
		return types.LoginResult{}, nil
	}

	user, err := s.DB.GetUser(h.userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return types.LoginResult{UserID: user.ID, RootDocumentID: user.RootDocumentID}, nil
}

type addDevice struct {
	caller
	p types.AddDevicePayload
}

func newAddDevice(c caller, p types.AddDevicePayload) Handler { return &addDevice{caller: c, p: p} }

func (h *addDevice) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID == "" || h.p.UserID != h.userID || h.p.DeviceID == "" {
		return false, nil
	}
	return s.deviceClaimable(h.p.DeviceID, h.p.UserID)
}

func (h *addDevice) Execute(s *Service) (any, error) {
	device := domain.Device{
		ID:                h.p.DeviceID,
		UserID:            h.p.UserID,
		SignPubKey:        h.p.SignPubKey,
		CryptPubKey:       h.p.CryptPubKey,
		CryptTransformKey: h.p.CryptTransformKey,
	}
	if device.SignPubKey == "" {
		device.SignPubKey = device.ID
	}
	if err := s.DB.PutDevice(device); err != nil {
		return nil, err
	}
	return types.AddDeviceResult{
		DeviceID:    device.ID,
		UserID:      device.UserID,
		CryptPubKey: device.CryptPubKey,
		SignPubKey:  device.SignPubKey,
	}, nil
}

type authorizeDevice struct {
	caller
	p types.AuthorizeDevicePayload
}

func newAuthorizeDevice(c caller, p types.AuthorizeDevicePayload) Handler {
	return &authorizeDevice{caller: c, p: p}
}

func (h *authorizeDevice) CheckIsAuthorized(s *Service) (bool, error) {
	if h.userID == "" || h.p.UserID != h.userID {
		return false, nil
	}
	return s.deviceClaimable(h.p.DeviceID, h.p.UserID)
}

func (h *authorizeDevice) Execute(s *Service) (any, error) {
	device, err := s.DB.GetDevice(h.p.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrDeviceNotFound
	}
	device.UserID = h.p.UserID
	device.CryptTransformKey = h.p.CryptTransformKey
	if err := s.DB.PutDevice(*device); err != nil {
		return nil, err
	}
	return h.p, nil
}

type removeDevice struct {
	caller
	p types.RemoveDevicePayload
}

func newRemoveDevice(c caller, p types.RemoveDevicePayload) Handler {
	return &removeDevice{caller: c, p: p}
}

// CheckIsAuthorized lets a user remove any of their devices, and an unbound
// device remove itself.
func (h *removeDevice) CheckIsAuthorized(*Service) (bool, error) {
	if h.userID != "" {
		return h.p.UserID == h.userID, nil
	}
	return h.p.DeviceID == h.deviceID, nil
}

func (h *removeDevice) Execute(s *Service) (any, error) {
	device, err := s.DB.GetDevice(h.p.DeviceID)
	if err != nil {
		return nil, err
	}
	if device == nil || device.UserID != h.p.UserID {
		return nil, ErrDeviceNotFound
	}
	if err := s.DB.DeleteDevice(device.ID); err != nil {
		return nil, err
	}
	return h.p, nil
}

// deviceClaimable reports whether deviceID is free or already bound to userID.
func (s *Service) deviceClaimable(deviceID, userID string) (bool, error) {
	device, err := s.DB.GetDevice(deviceID)
	if err != nil {
		return false, err
	}
	return device == nil || !device.Bound() || device.UserID == userID, nil
}
