package interfaces

import (
	"context"

	domaintypes "naturalrights/internal/domain/types"
)

// RightsService accepts signed action batches, locally or over the network.
type RightsService interface {
	Request(ctx context.Context, req domaintypes.Request) (domaintypes.Response, error)
}

// DeviceService creates and unlocks the local device identity.
type DeviceService interface {
	GenerateDevice(passphrase string) (domaintypes.DeviceKeys, string, error)
	LoadDevice(passphrase string) (domaintypes.DeviceKeys, error)
	FingerprintDevice(passphrase string) (string, error)
}
