package engine

import (
	"bytes"
	"encoding/json"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// authenticate verifies the envelope signature and returns the acting user.
//
// A known device with a signing key must have signed the body; it acts as the
// user it is bound to. Any other device is only accepted for the bootstrap
// batches: the registration pair for a user that does not exist yet, or a
// single Login. Both must be signed by the key the device id names.
func (s *Service) authenticate(req domain.Request, actions []domain.Action) (string, error) {
	if req.DeviceID == "" || req.Signature == "" {
		return "", ErrAuthentication
	}

	device, err := s.DB.GetDevice(req.DeviceID)
	if err != nil {
		return "", err
	}

	if device != nil && device.SignPubKey != "" {
		if !s.Primitives.Verify(device.SignPubKey, req.Signature, req.Body) {
			return "", ErrAuthentication
		}
		if device.Bound() {
			return device.UserID, nil
		}
		registering, err := s.isRegistration(req, actions)
		if err != nil {
			return "", err
		}
		if registering {
			return req.UserID, nil
		}
		return "", nil
	}

	if !s.Primitives.Verify(req.DeviceID, req.Signature, req.Body) {
		return "", ErrAuthentication
	}
	registering, err := s.isRegistration(req, actions)
	if err != nil {
		return "", err
	}
	switch {
	case registering:
		return req.UserID, nil
	case len(actions) == 1 && actions[0].Type == types.ActionLogin:
		return "", nil
	}
	return "", ErrAuthentication
}

// isRegistration reports whether actions is exactly
// [InitializeUser(U), AddDevice(U, this device)] for the envelope's user U,
// and U does not exist yet.
func (s *Service) isRegistration(req domain.Request, actions []domain.Action) (bool, error) {
	if req.UserID == "" || len(actions) != 2 {
		return false, nil
	}
	if actions[0].Type != types.ActionInitializeUser || actions[1].Type != types.ActionAddDevice {
		return false, nil
	}

	var initUser types.InitializeUserPayload
	var addDevice types.AddDevicePayload
	if !peek(actions[0].Payload, &initUser) || !peek(actions[1].Payload, &addDevice) {
		return false, nil
	}
	if initUser.UserID != req.UserID || addDevice.UserID != req.UserID {
		return false, nil
	}
	if addDevice.DeviceID != req.DeviceID {
		return false, nil
	}
	if addDevice.SignPubKey != "" && addDevice.SignPubKey != req.DeviceID {
		return false, nil
	}

	existing, err := s.DB.GetUser(req.UserID)
	if err != nil {
		return false, err
	}
	return existing == nil, nil
}

// peek decodes raw leniently; the handler decodes it again strictly.
func peek(raw json.RawMessage, out any) bool {
	if len(bytes.TrimSpace(raw)) == 0 {
		return false
	}
	return json.Unmarshal(raw, out) == nil
}
