package device

import (
	"fmt"
	"unicode"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
)

const (
	// minPassphraseLength defines the minimum number of characters required for a passphrase.
	minPassphraseLength = 12
)

var (
	// ErrWeakPassphrase is returned when the passphrase fails the strength policy.
	ErrWeakPassphrase = fmt.Errorf(
		"passphrase is too weak (must be at least %d characters and include upper, lower, "+
			"number, and symbol)",
		minPassphraseLength,
	)
)

// Service creates and unlocks the key pairs of this device.
//
// A device holds:
//   - an encryption key pair, the final hop of every document key;
//   - a signing key pair whose public half is the device id and signs every
//     request batch.
type Service struct {
	store      domain.DeviceKeyStore
	primitives domain.Primitives
}

// New returns a device service backed by the given store.
func New(s domain.DeviceKeyStore, p domain.Primitives) *Service {
	return &Service{store: s, primitives: p}
}

// GenerateDevice creates fresh device keys, saves them encrypted with the
// passphrase, and returns them with a short fingerprint of the device id.
func (s *Service) GenerateDevice(passphrase string) (domain.DeviceKeys, string, error) {
	if !isSecurePassphrase(passphrase) {
		return domain.DeviceKeys{}, "", ErrWeakPassphrase
	}

	cryptKeys, err := s.primitives.GenCryptKeyPair()
	if err != nil {
		return domain.DeviceKeys{}, "", err
	}
	signKeys, err := s.primitives.GenSignKeyPair()
	if err != nil {
		return domain.DeviceKeys{}, "", err
	}

	keys := domain.DeviceKeys{Crypt: cryptKeys, Sign: signKeys}
	if err := s.store.SaveDeviceKeys(passphrase, keys); err != nil {
		return domain.DeviceKeys{}, "", err
	}
	fp, err := fingerprint(keys)
	if err != nil {
		return domain.DeviceKeys{}, "", err
	}
	return keys, fp, nil
}

// LoadDevice decrypts and returns the local device keys.
func (s *Service) LoadDevice(passphrase string) (domain.DeviceKeys, error) {
	return s.store.LoadDeviceKeys(passphrase)
}

// FingerprintDevice returns a short fingerprint of the local device id.
func (s *Service) FingerprintDevice(passphrase string) (string, error) {
	keys, err := s.store.LoadDeviceKeys(passphrase)
	if err != nil {
		return "", err
	}
	return fingerprint(keys)
}

func fingerprint(keys domain.DeviceKeys) (string, error) {
	fp, err := crypto.FingerprintID(keys.ID())
	if err != nil {
		return "", fmt.Errorf("device id: %w", err)
	}
	return fp, nil
}

// isSecurePassphrase enforces a basic strength policy.
func isSecurePassphrase(passphrase string) bool {
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	if len(passphrase) < minPassphraseLength {
		return false
	}
	for _, r := range passphrase {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r), unicode.IsSymbol(r):
			hasSymbol = true
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// Compile-time assertion that Service implements domain.DeviceService.
var _ domain.DeviceService = (*Service)(nil)
