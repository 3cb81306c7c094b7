// Package crypto provides the primitives suite used by naturalrights.
//
// Contents
//
//   - Proxy re-encryption over Ristretto255 (GenCryptKeyPair, Encrypt,
//     Decrypt, GenTransformKey, ApplyTransform on Suite)
//   - Ed25519 key generation, signing and verification (GenerateEd25519,
//     SignEd25519, VerifyEd25519)
//   - Unpadded base64url encoding for keys and ciphertexts (B64, UnB64)
//   - Best-effort memory wiping for sensitive byte slices (Wipe)
//   - Short public-key fingerprints for display (FingerprintID)
//
// # Notes
//
// A ciphertext may pass through any number of transforms; each transform adds
// one layer, and only the holder of the last target key can open it. Layer
// keys are derived with HKDF-SHA256 and sealed with ChaCha20-Poly1305.
package crypto
