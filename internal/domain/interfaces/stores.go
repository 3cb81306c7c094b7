package interfaces

import domaintypes "naturalrights/internal/domain/types"

// Store is the server-side keyed persistence for the six record kinds.
//
// Records are addressed by souls such as "documents/{id}". Get returns
// nil, nil for a missing soul. Put and Delete are atomic per soul only.
type Store interface {
	Get(soul string) ([]byte, error)
	Put(soul string, record []byte) error
	Delete(soul string) error
	// ListDocumentGrants returns every grant stored beneath documentSoul.
	ListDocumentGrants(documentSoul string) ([]domaintypes.Grant, error)
}

// DeviceKeyStore keeps this device's key pairs on local disk, sealed with a
// passphrase.
type DeviceKeyStore interface {
	SaveDeviceKeys(passphrase string, keys domaintypes.DeviceKeys) error
	LoadDeviceKeys(passphrase string) (domaintypes.DeviceKeys, error)
}
