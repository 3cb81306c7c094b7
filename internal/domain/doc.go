// Package domain defines the records, wire messages and collaborator contracts
// shared across the engine, the stores and the clients.
// It contains plain types (types) and contracts (interfaces) only.
package domain
