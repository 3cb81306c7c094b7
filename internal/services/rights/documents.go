package rights

import (
	"context"
	"crypto/sha256"
	"errors"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// ErrNoDocumentAccess is returned when the server hands back no document key.
var ErrNoDocumentAccess = errors.New("no document access")

// CreateDocument creates a document owned by this user and returns its id and
// encryption key pair.
func (c *Client) CreateDocument(ctx context.Context) (string, domain.KeyPair, error) {
	userPubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyUser, c.UserID)
	if err != nil {
		return "", domain.KeyPair{}, err
	}
	docKeys, err := c.primitives.GenCryptKeyPair()
	if err != nil {
		return "", domain.KeyPair{}, err
	}
	encCryptPrivKey, err := c.primitives.Encrypt(userPubKey, docKeys.PrivKey)
	if err != nil {
		return "", domain.KeyPair{}, err
	}
	res, err := requestOne[types.CreateDocumentResult](ctx, c, types.ActionCreateDocument, types.CreateDocumentPayload{
		CryptUserID:     c.UserID,
		CreatorID:       c.UserID,
		CryptPubKey:     docKeys.PubKey,
		EncCryptPrivKey: encCryptPrivKey,
	})
	if err != nil {
		return "", domain.KeyPair{}, err
	}
	return res.DocumentID, docKeys, nil
}

// GrantReadAccess encrypts the document key to the grantee and grants it.
func (c *Client) GrantReadAccess(ctx context.Context, documentID string, kind types.GrantKind, id string) error {
	granteePubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyKind(kind), id)
	if err != nil {
		return err
	}
	docPrivKey, err := c.DecryptDocumentEncryptionKey(ctx, documentID)
	if err != nil {
		return err
	}
	encCryptPrivKey, err := c.primitives.Encrypt(granteePubKey, docPrivKey)
	if err != nil {
		return err
	}
	_, err = requestOne[types.GrantAccessPayload](ctx, c, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID:      documentID,
		Kind:            kind,
		ID:              id,
		EncCryptPrivKey: encCryptPrivKey,
	})
	return err
}

// GrantSignAccess lets the grantee have the server sign with the document key.
func (c *Client) GrantSignAccess(ctx context.Context, documentID string, kind types.GrantKind, id string) error {
	_, err := requestOne[types.GrantAccessPayload](ctx, c, types.ActionGrantAccess, types.GrantAccessPayload{
		DocumentID: documentID,
		Kind:       kind,
		ID:         id,
		CanSign:    types.Bool(true),
	})
	return err
}

// RevokeAccess removes a grant. Keys already fetched stay usable; rotate
// with UpdateDocumentEncryption.
func (c *Client) RevokeAccess(ctx context.Context, documentID string, kind types.GrantKind, id string) error {
	_, err := requestOne[types.RevokeAccessPayload](ctx, c, types.ActionRevokeAccess, types.RevokeAccessPayload{
		DocumentID: documentID,
		Kind:       kind,
		ID:         id,
	})
	return err
}

// UpdateDocumentEncryption rotates the document key and returns the new pair.
func (c *Client) UpdateDocumentEncryption(ctx context.Context, documentID string) (domain.KeyPair, error) {
	userPubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyUser, c.UserID)
	if err != nil {
		return domain.KeyPair{}, err
	}
	docKeys, err := c.primitives.GenCryptKeyPair()
	if err != nil {
		return domain.KeyPair{}, err
	}
	encCryptPrivKey, err := c.primitives.Encrypt(userPubKey, docKeys.PrivKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	_, err = requestOne[types.UpdateDocumentPayload](ctx, c, types.ActionUpdateDocument, types.UpdateDocumentPayload{
		DocumentID:      documentID,
		CryptUserID:     c.UserID,
		CryptPubKey:     docKeys.PubKey,
		EncCryptPrivKey: encCryptPrivKey,
	})
	if err != nil {
		return domain.KeyPair{}, err
	}
	return docKeys, nil
}

// SignDocumentHashes has the server sign each hash with the document key.
func (c *Client) SignDocumentHashes(ctx context.Context, documentID string, hashes []string) ([]string, error) {
	res, err := requestOne[types.SignDocumentResult](ctx, c, types.ActionSignDocument, types.SignDocumentPayload{
		DocumentID: documentID,
		Hashes:     hashes,
	})
	if err != nil {
		return nil, err
	}
	return res.Signatures, nil
}

// SignDocumentTexts hashes each text with HashForSignature and signs the hashes.
func (c *Client) SignDocumentTexts(ctx context.Context, documentID string, texts []string) ([]string, error) {
	hashes := make([]string, len(texts))
	for i, t := range texts {
		hashes[i] = HashForSignature(t)
	}
	return c.SignDocumentHashes(ctx, documentID, hashes)
}

// HashForSignature is the SHA-256 of text, base64url encoded.
func HashForSignature(text string) string {
	sum := sha256.Sum256([]byte(text))
	return crypto.B64(sum[:])
}

// DecryptDocumentEncryptionKey fetches the document private key through the
// server's transform chain and opens it with the device key.
func (c *Client) DecryptDocumentEncryptionKey(ctx context.Context, documentID string) (string, error) {
	res, err := requestOne[types.DecryptDocumentResult](ctx, c, types.ActionDecryptDocument, types.DecryptDocumentPayload{
		DocumentID: documentID,
	})
	if err != nil {
		return "", err
	}
	if res.EncCryptPrivKey == "" {
		return "", ErrNoDocumentAccess
	}
	return c.primitives.Decrypt(c.device.Crypt, res.EncCryptPrivKey)
}

// EncryptDocumentTexts encrypts each plaintext to the document key.
func (c *Client) EncryptDocumentTexts(ctx context.Context, documentID string, plaintexts []string) ([]string, error) {
	docPubKey, err := c.GetEncryptionPublicKey(ctx, types.KeyDocument, documentID)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(plaintexts))
	for i, pt := range plaintexts {
		if out[i], err = c.primitives.Encrypt(docPubKey, pt); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// DecryptDocumentTexts opens ciphertexts produced by EncryptDocumentTexts.
func (c *Client) DecryptDocumentTexts(ctx context.Context, documentID string, ciphertexts []string) ([]string, error) {
	privKey, err := c.DecryptDocumentEncryptionKey(ctx, documentID)
	if err != nil {
		return nil, err
	}

	docKeys := domain.KeyPair{PrivKey: privKey}
	out := make([]string, len(ciphertexts))
	for i, ct := range ciphertexts {
		if out[i], err = c.primitives.Decrypt(docKeys, ct); err != nil {
			return nil, err
		}
	}
	return out, nil
}
