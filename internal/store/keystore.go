package store

import (
	"encoding/json"
	"errors"
	"sync"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
)

const deviceKeysFilename = "device.json.enc"

// ErrNoDeviceKeys is returned when no device keys were saved yet.
var ErrNoDeviceKeys = errors.New("no device keys; run init first")

// DeviceKeyFileStore persists this device's key pairs to disk, sealed with a
// passphrase.
type DeviceKeyFileStore struct {
	file homeFile
	mu   sync.Mutex
}

// NewDeviceKeyFileStore returns a DeviceKeyFileStore rooted at dir.
func NewDeviceKeyFileStore(dir string) *DeviceKeyFileStore {
	return &DeviceKeyFileStore{file: fileIn(dir, deviceKeysFilename)}
}

// SaveDeviceKeys writes the encrypted device keys to disk.
func (s *DeviceKeyFileStore) SaveDeviceKeys(passphrase string, keys domain.DeviceKeys) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	defer crypto.Wipe(raw)

	N, r, p := scryptParamsDefault()
	ct, err := encrypt(passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return s.file.save(ct)
}

// LoadDeviceKeys reads and decrypts the device keys.
func (s *DeviceKeyFileStore) LoadDeviceKeys(passphrase string) (domain.DeviceKeys, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := s.file.load()
	if err != nil {
		return domain.DeviceKeys{}, err
	}
	if b == nil {
		return domain.DeviceKeys{}, ErrNoDeviceKeys
	}
	pt, err := decrypt(passphrase, b)
	if err != nil {
		return domain.DeviceKeys{}, err
	}
	defer crypto.Wipe(pt)

	var keys domain.DeviceKeys
	if err := json.Unmarshal(pt, &keys); err != nil {
		return domain.DeviceKeys{}, err
	}
	return keys, nil
}

// Exists reports whether device keys were saved in dir.
func (s *DeviceKeyFileStore) Exists() bool {
	return s.file.exists()
}

// Compile-time assertion that DeviceKeyFileStore implements domain.DeviceKeyStore.
var _ domain.DeviceKeyStore = (*DeviceKeyFileStore)(nil)
