package app

import (
	"errors"
	"net/http"

	"naturalrights/internal/crypto"
	"naturalrights/internal/domain"
	"naturalrights/internal/relay"
	devicesvc "naturalrights/internal/services/device"
	"naturalrights/internal/services/rights"
	"naturalrights/internal/store"
)

// ErrNotRegistered is returned when this device has no user on the server yet.
var ErrNotRegistered = errors.New("device is not registered with this server; run register or login first")

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	ServerURL  string
	DeviceKeys *store.DeviceKeyFileStore
	Accounts   domain.AccountStore
	Devices    domain.DeviceService
	Rights     domain.RightsService
	Primitives domain.Primitives
	HTTP       *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.ServerURL == "" {
		return nil, errors.New("server URL is required")
	}

	// File-based stores
	deviceKeys := store.NewDeviceKeyFileStore(cfg.Home)
	accounts := store.NewAccountFileStore(cfg.Home)

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	primitives := crypto.NewSuite()
	return &Wire{
		ServerURL:  cfg.ServerURL,
		DeviceKeys: deviceKeys,
		Accounts:   accounts,
		Devices:    devicesvc.New(deviceKeys, primitives),
		Rights:     relay.NewHTTP(cfg.ServerURL, httpClient),
		Primitives: primitives,
		HTTP:       httpClient,
	}, nil
}

// Client unlocks the device keys and returns a rights client acting for the
// user saved for this server, if any.
func (w *Wire) Client(passphrase string) (*rights.Client, error) {
	keys, err := w.Devices.LoadDevice(passphrase)
	if err != nil {
		return nil, err
	}
	profile, _, err := w.Accounts.LoadAccountProfile(w.ServerURL)
	if err != nil {
		return nil, err
	}
	return rights.New(w.Rights, w.Primitives, keys, profile.UserID), nil
}

// RegisteredClient is Client for commands that need a user.
func (w *Wire) RegisteredClient(passphrase string) (*rights.Client, error) {
	c, err := w.Client(passphrase)
	if err != nil {
		return nil, err
	}
	if c.UserID == "" {
		return nil, ErrNotRegistered
	}
	return c, nil
}

// SaveAccount records which user this device acts for on the server.
func (w *Wire) SaveAccount(userID, rootDocumentID string) error {
	return w.Accounts.SaveAccountProfile(domain.AccountProfile{
		ServerURL:      w.ServerURL,
		UserID:         userID,
		RootDocumentID: rootDocumentID,
	})
}
