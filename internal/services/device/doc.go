// Package device manages creation, encryption and loading of this device's
// keys.
//
// It enforces the passphrase policy, generates the encryption and signing key
// pairs through domain.Primitives, and persists them via the
// domain.DeviceKeyStore.
package device
