package interfaces

import domaintypes "naturalrights/internal/domain/types"

// Primitives is the cryptographic suite the engine and clients run on.
//
// Keys, signatures and ciphertexts are opaque strings. Encrypt produces a
// ciphertext for pubKey; ApplyTransform re-targets such a ciphertext to the
// public key a transform key was generated for, without decrypting it.
type Primitives interface {
	GenCryptKeyPair() (domaintypes.KeyPair, error)
	GenSignKeyPair() (domaintypes.KeyPair, error)
	Sign(keyPair domaintypes.KeyPair, text string) (string, error)
	Verify(pubKey, signature, text string) bool
	Encrypt(pubKey, plaintext string) (string, error)
	Decrypt(keyPair domaintypes.KeyPair, ciphertext string) (string, error)
	GenTransformKey(from domaintypes.KeyPair, toPubKey string) (string, error)
	ApplyTransform(transformKey, ciphertext string) (string, error)
}
