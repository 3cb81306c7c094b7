package engine

import "errors"

// The text of each error is what clients see in Result.Error.
var (
	// ErrMalformedRequest is returned by ProcessRequest for a body that is not
	// a JSON array of actions. No results are produced.
	ErrMalformedRequest = errors.New("Malformed request")

	ErrAuthentication    = errors.New("Authentication error")
	ErrUnauthorized      = errors.New("Unauthorized")
	ErrInvalidActionType = errors.New("Invalid action type")
	ErrInvalidPayload    = errors.New("Invalid action payload")
	ErrInternal          = errors.New("Internal error")

	ErrNoMembership       = errors.New("No membership for user")
	ErrNoAccess           = errors.New("No access")
	ErrUserNotFound       = errors.New("User does not exist")
	ErrDeviceNotFound     = errors.New("Device does not exist")
	ErrMembershipNotFound = errors.New("Membership does not exist")
	ErrGroupNotFound      = errors.New("Group does not exist")
	ErrDocumentNotFound   = errors.New("Document does not exist")
	ErrDocumentExists     = errors.New("Document already exists")
	ErrInvalidGrantKind   = errors.New("Invalid grant kind")
	ErrInvalidKeyKind     = errors.New("Invalid key kind")
	ErrOwnerChange        = errors.New("Document owner cannot change")
)
