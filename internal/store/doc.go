// Package store provides persistence for naturalrights.
//
// Server side, it implements domain.Store three ways (MemoryStore,
// BadgerStore, BoltStore) and layers typed record access on top of any of
// them (Database). Records are JSON documents addressed by souls:
//
//	users/{id}
//	devices/{id}
//	groups/{id}
//	groups/{groupId}/members/{userId}
//	documents/{id}
//	documents/{id}/grants/{kind}/{id}
//
// Client side, it keeps the device key pairs sealed with a passphrase
// (DeviceKeyFileStore, scrypt + ChaCha20-Poly1305) and the per-server
// account profiles (AccountFileStore) under the configured home directory.
// File writes go through a temp file and an atomic rename.
package store
