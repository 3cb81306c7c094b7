package crypto

import (
	"fmt"

	"naturalrights/internal/domain"
)

// Suite implements domain.Primitives with Ristretto255 proxy re-encryption
// and Ed25519 signatures. It holds no state and is safe for concurrent use.
type Suite struct{}

// NewSuite returns the default primitives suite.
func NewSuite() *Suite { return &Suite{} }

// GenCryptKeyPair returns a new encryption key pair.
func (Suite) GenCryptKeyPair() (domain.KeyPair, error) {
	priv, pub, err := GenerateRistretto()
	if err != nil {
		return domain.KeyPair{}, err
	}
	sk, err := priv.MarshalBinary()
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer Wipe(sk)
	pk, err := pub.MarshalBinary()
	if err != nil {
		return domain.KeyPair{}, err
	}
	return domain.KeyPair{PubKey: B64(pk), PrivKey: B64(sk)}, nil
}

// GenSignKeyPair returns a new signing key pair. The private half is the
// Ed25519 seed.
func (Suite) GenSignKeyPair() (domain.KeyPair, error) {
	priv, pub, err := GenerateEd25519()
	if err != nil {
		return domain.KeyPair{}, err
	}
	defer Wipe(priv)
	return domain.KeyPair{PubKey: B64(pub), PrivKey: B64(priv.Seed())}, nil
}

// Sign signs text with keyPair.PrivKey.
func (Suite) Sign(keyPair domain.KeyPair, text string) (string, error) {
	sig, err := SignEd25519(keyPair.PrivKey, []byte(text))
	if err != nil {
		return "", err
	}
	return B64(sig), nil
}

// Verify reports whether signature is a valid signature of text by pubKey.
func (Suite) Verify(pubKey, signature, text string) bool {
	sig, err := UnB64(signature)
	if err != nil {
		return false
	}
	return VerifyEd25519(pubKey, []byte(text), sig)
}

// Encrypt encrypts plaintext to pubKey.
func (Suite) Encrypt(pubKey, plaintext string) (string, error) {
	pub, err := decodeElement(pubKey)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}
	c, err := encryptCapsule(pub, []byte(plaintext))
	if err != nil {
		return "", err
	}
	return encodeJSON(c)
}

// Decrypt opens a ciphertext addressed, directly or through transforms, to
// keyPair.
func (Suite) Decrypt(keyPair domain.KeyPair, ciphertext string) (string, error) {
	priv, err := decodeScalar(keyPair.PrivKey)
	if err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	var c capsule
	if err := decodeJSON(ciphertext, &c); err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}
	pt, err := c.open(priv)
	if err != nil {
		return "", err
	}
	return string(pt), nil
}

// GenTransformKey returns a key that re-targets ciphertexts for from.PubKey to
// toPubKey.
func (Suite) GenTransformKey(from domain.KeyPair, toPubKey string) (string, error) {
	priv, err := decodeScalar(from.PrivKey)
	if err != nil {
		return "", fmt.Errorf("transform key: %w", err)
	}
	to, err := decodeElement(toPubKey)
	if err != nil {
		return "", fmt.Errorf("transform key: %w", err)
	}
	t, err := newTransform(priv, to)
	if err != nil {
		return "", err
	}
	return encodeJSON(t)
}

// ApplyTransform re-targets ciphertext with transformKey. It never decrypts.
func (Suite) ApplyTransform(transformKey, ciphertext string) (string, error) {
	var t transform
	if err := decodeJSON(transformKey, &t); err != nil {
		return "", fmt.Errorf("apply transform: %w", err)
	}
	var c capsule
	if err := decodeJSON(ciphertext, &c); err != nil {
		return "", fmt.Errorf("apply transform: %w", err)
	}
	out, err := t.apply(c)
	if err != nil {
		return "", err
	}
	return encodeJSON(out)
}

// Compile-time assertion that Suite implements domain.Primitives.
var _ domain.Primitives = Suite{}
