package rights

import (
	"context"

	"naturalrights/internal/domain"
	"naturalrights/internal/domain/types"
)

// GetPublicKeys returns the public keys of a user, group, document or device.
func (c *Client) GetPublicKeys(ctx context.Context, kind types.KeyKind, id string) (types.GetPubKeysResult, error) {
	return requestOne[types.GetPubKeysResult](ctx, c, types.ActionGetPubKeys, types.KeysPayload{Kind: kind, ID: id})
}

// GetKeyPairs returns the private keys of a user or group, encrypted to this device.
func (c *Client) GetKeyPairs(ctx context.Context, kind types.KeyKind, id string) (types.GetKeyPairsResult, error) {
	return requestOne[types.GetKeyPairsResult](ctx, c, types.ActionGetKeyPairs, types.KeysPayload{Kind: kind, ID: id})
}

func (c *Client) GetEncryptionPublicKey(ctx context.Context, kind types.KeyKind, id string) (string, error) {
	keys, err := c.GetPublicKeys(ctx, kind, id)
	if err != nil {
		return "", err
	}
	return keys.CryptPubKey, nil
}

// GetEncryptionKeyPair fetches and opens the encryption key pair of a user or
// group this device may act for.
func (c *Client) GetEncryptionKeyPair(ctx context.Context, kind types.KeyKind, id string) (domain.KeyPair, error) {
	pairs, err := c.GetKeyPairs(ctx, kind, id)
	if err != nil {
		return domain.KeyPair{}, err
	}
	priv, err := c.primitives.Decrypt(c.device.Crypt, pairs.EncCryptPrivKey)
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{PubKey: pairs.CryptPubKey, PrivKey: priv}, nil
}
