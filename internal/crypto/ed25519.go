package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
)

var errSignKeySize = errors.New("ed25519: malformed key")

// GenerateEd25519 returns a new Ed25519 signing key pair.
func GenerateEd25519() (priv ed25519.PrivateKey, pub ed25519.PublicKey, err error) {
	pub, priv, err = ed25519.GenerateKey(rand.Reader)
	return priv, pub, err
}

// SignEd25519 signs msg with the private key encoded by B64 (seed or full key).
func SignEd25519(encodedPriv string, msg []byte) ([]byte, error) {
	raw, err := UnB64(encodedPriv)
	if err != nil {
		return nil, fmt.Errorf("decode sign key: %w", err)
	}
	defer Wipe(raw)

	var priv ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		priv = ed25519.PrivateKey(append([]byte(nil), raw...))
	default:
		return nil, errSignKeySize
	}
	defer Wipe(priv)
	return ed25519.Sign(priv, msg), nil
}

// VerifyEd25519 verifies sig over msg with the B64 encoded public key.
// Malformed inputs verify as false.
func VerifyEd25519(encodedPub string, msg, sig []byte) bool {
	pub, err := UnB64(encodedPub)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return false
	}
	if len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), msg, sig)
}
