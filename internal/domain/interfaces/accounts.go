package interfaces

import domaintypes "naturalrights/internal/domain/types"

// AccountStore persists which user this device acts for on each server.
type AccountStore interface {
	SaveAccountProfile(profile domaintypes.AccountProfile) error
	LoadAccountProfile(serverURL string) (domaintypes.AccountProfile, bool, error)
}
