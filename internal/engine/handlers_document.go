package engine

import (
	"fmt"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// newDocument generates the document signing key pair, whose public half is
// the document id, and persists the document.
func (s *Service) newDocument(ownerID, creatorID, cryptPubKey, encCryptPrivKey string) (domain.Document, error) {
	kp, err := s.Primitives.GenSignKeyPair()
	if err != nil {
		return domain.Document{}, fmt.Errorf("document sign key: %w", err)
	}
	existing, err := s.DB.GetDocument(kp.PubKey)
	if err != nil {
		return domain.Document{}, err
	}
	if existing != nil {
		return domain.Document{}, ErrDocumentExists
	}

	doc := domain.Document{
		ID:              kp.PubKey,
		CryptUserID:     ownerID,
		CryptPubKey:     cryptPubKey,
		EncCryptPrivKey: encCryptPrivKey,
		CreatorID:       creatorID,
		SignPrivKey:     kp.PrivKey,
	}
	if err := s.DB.PutDocument(doc); err != nil {
		return domain.Document{}, err
	}
	return doc, nil
}

type createDocument struct {
	caller
	p types.CreateDocumentPayload
}

func newCreateDocument(c caller, p types.CreateDocumentPayload) Handler {
	return &createDocument{caller: c, p: p}
}

func (h *createDocument) CheckIsAuthorized(*Service) (bool, error) {
	return h.userID != "" && h.p.CryptUserID == h.userID && h.p.CreatorID == h.userID, nil
}

func (h *createDocument) Execute(s *Service) (any, error) {
	doc, err := s.newDocument(h.p.CryptUserID, h.p.CreatorID, h.p.CryptPubKey, h.p.EncCryptPrivKey)
	if err != nil {
		return nil, err
	}
	return types.CreateDocumentResult{CreateDocumentPayload: h.p, DocumentID: doc.ID}, nil
}

type signDocument struct {
	caller
	p types.SignDocumentPayload
}

func newSignDocument(c caller, p types.SignDocumentPayload) Handler {
	return &signDocument{caller: c, p: p}
}

func (h *signDocument) CheckIsAuthorized(s *Service) (bool, error) {
	return s.HasSignAccess(h.userID, h.p.DocumentID)
}

func (h *signDocument) Execute(s *Service) (any, error) {
	doc, err := s.DB.GetDocument(h.p.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}

	kp := domain.KeyPair{PubKey: doc.ID, PrivKey: doc.SignPrivKey}
	signatures := make([]string, 0, len(h.p.Hashes))
	for _, hash := range h.p.Hashes {
		sig, err := s.Primitives.Sign(kp, hash)
		if err != nil {
			return nil, fmt.Errorf("sign: %w", err)
		}
		signatures = append(signatures, sig)
	}
	return types.SignDocumentResult{SignDocumentPayload: h.p, Signatures: signatures}, nil
}

type grantAccess struct {
	caller
	p types.GrantAccessPayload
}

func newGrantAccess(c caller, p types.GrantAccessPayload) Handler {
	return &grantAccess{caller: c, p: p}
}

// CheckIsAuthorized requires read access, and sign access as well when the
// grant hands out signing.
func (h *grantAccess) CheckIsAuthorized(s *Service) (bool, error) {
	ok, err := s.HasReadAccess(h.userID, h.p.DocumentID)
	if err != nil || !ok {
		return false, err
	}
	if h.p.CanSign != nil && *h.p.CanSign {
		return s.HasSignAccess(h.userID, h.p.DocumentID)
	}
	return true, nil
}

func (h *grantAccess) Execute(s *Service) (any, error) {
	if !h.p.Kind.Valid() || h.p.ID == "" {
		return nil, ErrInvalidGrantKind
	}
	g, err := s.DB.GetGrant(h.p.DocumentID, h.p.Kind, h.p.ID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		g = &domain.Grant{DocumentID: h.p.DocumentID, Kind: h.p.Kind, ID: h.p.ID}
	}
	if h.p.EncCryptPrivKey != "" {
		g.EncCryptPrivKey = h.p.EncCryptPrivKey
	}
	if h.p.CanSign != nil {
		g.CanSign = *h.p.CanSign
	}
	if err := s.DB.PutGrant(*g); err != nil {
		return nil, err
	}
	return h.p, nil
}

type revokeAccess struct {
	caller
	p types.RevokeAccessPayload
}

func newRevokeAccess(c caller, p types.RevokeAccessPayload) Handler {
	return &revokeAccess{caller: c, p: p}
}

func (h *revokeAccess) CheckIsAuthorized(s *Service) (bool, error) {
	return s.HasReadAccess(h.userID, h.p.DocumentID)
}

func (h *revokeAccess) Execute(s *Service) (any, error) {
	if !h.p.Kind.Valid() {
		return nil, ErrInvalidGrantKind
	}
	if err := s.DB.DeleteGrant(h.p.DocumentID, h.p.Kind, h.p.ID); err != nil {
		return nil, err
	}
	return h.p, nil
}

type decryptDocument struct {
	caller
	p types.DecryptDocumentPayload
}

func newDecryptDocument(c caller, p types.DecryptDocumentPayload) Handler {
	return &decryptDocument{caller: c, p: p}
}

func (h *decryptDocument) CheckIsAuthorized(s *Service) (bool, error) {
	return s.HasReadAccess(h.userID, h.p.DocumentID)
}

func (h *decryptDocument) Execute(s *Service) (any, error) {
	key, err := s.DeviceDocumentDecryptKey(h.userID, h.deviceID, h.p.DocumentID)
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, ErrNoAccess
	}
	return types.DecryptDocumentResult{DocumentID: h.p.DocumentID, EncCryptPrivKey: key}, nil
}

type updateDocument struct {
	caller
	p types.UpdateDocumentPayload
}

func newUpdateDocument(c caller, p types.UpdateDocumentPayload) Handler {
	return &updateDocument{caller: c, p: p}
}

func (h *updateDocument) CheckIsAuthorized(s *Service) (bool, error) {
	return s.HasReadAccess(h.userID, h.p.DocumentID)
}

// Execute re-keys the document. Existing grants are left as they are; the
// caller re-issues them for the new key.
func (h *updateDocument) Execute(s *Service) (any, error) {
	doc, err := s.DB.GetDocument(h.p.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrDocumentNotFound
	}
	if h.p.CryptUserID != "" && h.p.CryptUserID != doc.CryptUserID {
		return nil, ErrOwnerChange
	}
	if h.p.CryptPubKey != "" {
		doc.CryptPubKey = h.p.CryptPubKey
	}
	if h.p.EncCryptPrivKey != "" {
		doc.EncCryptPrivKey = h.p.EncCryptPrivKey
	}
	if err := s.DB.PutDocument(*doc); err != nil {
		return nil, err
	}
	return h.p, nil
}
