package crypto

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"runtime"
	"strings"
)

// B64 returns unpadded base64url, the encoding of every key, id and
// ciphertext on the wire. It never contains '/', so ids are safe in souls.
func B64(b []byte) string { return base64.RawURLEncoding.EncodeToString(b) }

// UnB64 decodes a string produced by B64.
func UnB64(s string) ([]byte, error) { return base64.RawURLEncoding.DecodeString(s) }

// FingerprintID returns a short fingerprint of an encoded public key for
// comparing devices by eye: the first 10 bytes of its SHA-256 as five groups
// of four hex digits.
func FingerprintID(id string) (string, error) {
	pub, err := UnB64(id)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(pub)
	h := hex.EncodeToString(sum[:10])

	groups := make([]string, 0, len(h)/4)
	for i := 0; i < len(h); i += 4 {
		groups = append(groups, h[i:i+4])
	}
	return strings.Join(groups, " "), nil
}

// Wipe zeroes b. Best effort: copies made elsewhere are not reached.
//
//go:noinline
func Wipe(b []byte) {
	clear(b)
	runtime.KeepAlive(b)
}
