package engine

import (
	"fmt"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// Credentials is the access path from a user to a document.
//
// Grant is nil on the owner path; Membership is set only on the group path.
type Credentials struct {
	Document   domain.Document
	Grant      *domain.Grant
	Membership *domain.Membership
}

// HasKey reports whether the path carries key material, i.e. whether it
// grants read access and not only signing.
func (c *Credentials) HasKey() bool {
	switch {
	case c.Membership != nil:
		return c.Grant.EncCryptPrivKey != "" && c.Membership.CryptTransformKey != ""
	case c.Grant != nil:
		return c.Grant.EncCryptPrivKey != ""
	default:
		return c.Document.EncCryptPrivKey != ""
	}
}

// ResolveCredentials finds how userID reaches documentID: as owner, through a
// user grant, or through a group grant plus a membership in that group, in
// that order. It returns nil when there is no path or no document.
func (s *Service) ResolveCredentials(userID, documentID string) (*Credentials, error) {
	if userID == "" {
		return nil, nil
	}
	doc, err := s.DB.GetDocument(documentID)
	if err != nil || doc == nil {
		return nil, err
	}
	if doc.CryptUserID == userID {
		return &Credentials{Document: *doc}, nil
	}

	grants, err := s.DB.GetDocumentGrants(documentID)
	if err != nil {
		return nil, err
	}
	for i := range grants {
		if grants[i].Kind == types.GrantUser && grants[i].ID == userID {
			return &Credentials{Document: *doc, Grant: &grants[i]}, nil
		}
	}
	for i := range grants {
		if grants[i].Kind != types.GrantGroup {
			continue
		}
		m, err := s.DB.GetMembership(grants[i].ID, userID)
		if err != nil {
			return nil, err
		}
		if m != nil {
			return &Credentials{Document: *doc, Grant: &grants[i], Membership: m}, nil
		}
	}
	return nil, nil
}

// UserDocumentDecryptKey returns the document key encrypted to userID, or ""
// when the user has no key path.
func (s *Service) UserDocumentDecryptKey(userID, documentID string) (string, error) {
	creds, err := s.ResolveCredentials(userID, documentID)
	if err != nil || creds == nil || !creds.HasKey() {
		return "", err
	}
	switch {
	case creds.Membership != nil:
		key, err := s.Primitives.ApplyTransform(creds.Membership.CryptTransformKey, creds.Grant.EncCryptPrivKey)
		if err != nil {
			return "", fmt.Errorf("group to member transform: %w", err)
		}
		return key, nil
	case creds.Grant != nil:
		return creds.Grant.EncCryptPrivKey, nil
	default:
		return creds.Document.EncCryptPrivKey, nil
	}
}

// DeviceDocumentDecryptKey chains the device's transform onto the user key,
// yielding the only form of the key ever returned to a client.
func (s *Service) DeviceDocumentDecryptKey(userID, deviceID, documentID string) (string, error) {
	device, err := s.DB.GetDevice(deviceID)
	if err != nil {
		return "", err
	}
	if device == nil || device.UserID != userID {
		return "", ErrDeviceNotFound
	}
	userKey, err := s.UserDocumentDecryptKey(userID, documentID)
	if err != nil || userKey == "" || device.CryptTransformKey == "" {
		return "", err
	}
	key, err := s.Primitives.ApplyTransform(device.CryptTransformKey, userKey)
	if err != nil {
		return "", fmt.Errorf("user to device transform: %w", err)
	}
	return key, nil
}

// HasReadAccess reports whether userID can obtain the document key.
func (s *Service) HasReadAccess(userID, documentID string) (bool, error) {
	creds, err := s.ResolveCredentials(userID, documentID)
	if err != nil || creds == nil {
		return false, err
	}
	return creds.HasKey(), nil
}

// HasSignAccess reports whether userID may have the server co-sign with the
// document key: as its creator or owner, through a user grant with canSign,
// or through a canSign group grant combined with a canSign membership.
func (s *Service) HasSignAccess(userID, documentID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	doc, err := s.DB.GetDocument(documentID)
	if err != nil || doc == nil {
		return false, err
	}
	if doc.CreatorID == userID || doc.CryptUserID == userID {
		return true, nil
	}

	grants, err := s.DB.GetDocumentGrants(documentID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if !g.CanSign {
			continue
		}
		switch g.Kind {
		case types.GrantUser:
			if g.ID == userID {
				return true, nil
			}
		case types.GrantGroup:
			m, err := s.DB.GetMembership(g.ID, userID)
			if err != nil {
				return false, err
			}
			if m != nil && m.CanSign {
				return true, nil
			}
		}
	}
	return false, nil
}

// IsGroupAdmin reports whether userID created groupID or holds the group
// private key through its membership.
func (s *Service) IsGroupAdmin(groupID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	m, err := s.DB.GetMembership(groupID, userID)
	if err != nil {
		return false, err
	}
	if m != nil && m.IsAdmin() {
		return true, nil
	}
	g, err := s.DB.GetGroup(groupID)
	if err != nil || g == nil {
		return false, err
	}
	return g.UserID == userID, nil
}
