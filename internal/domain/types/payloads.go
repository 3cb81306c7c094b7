package types

// Payloads and results of every action kind. Field names follow the wire
// protocol. A nil *bool means "leave the stored value unchanged".

type InitializeUserPayload struct {
	UserID                 string `json:"userId"`
	SignPubKey             string `json:"signPubKey,omitempty"`
	CryptPubKey            string `json:"cryptPubKey"`
	EncCryptPrivKey        string `json:"encCryptPrivKey"`
	EncSignPrivKey         string `json:"encSignPrivKey"`
	RootDocCryptPubKey     string `json:"rootDocCryptPubKey,omitempty"`
	RootDocEncCryptPrivKey string `json:"rootDocEncCryptPrivKey,omitempty"`
}

type InitializeUserResult struct {
	InitializeUserPayload
	RootDocumentID string `json:"rootDocumentId,omitempty"`
}

type LoginPayload struct {
	CryptPubKey string `json:"cryptPubKey,omitempty"`
}

type LoginResult struct {
	UserID         string `json:"userId"`
	RootDocumentID string `json:"rootDocumentId"`
}

type AddDevicePayload struct {
	DeviceID          string `json:"deviceId"`
	UserID            string `json:"userId"`
	CryptPubKey       string `json:"cryptPubKey"`
	SignPubKey        string `json:"signPubKey"`
	CryptTransformKey string `json:"cryptTransformKey"`
}

type AddDeviceResult struct {
	DeviceID    string `json:"deviceId"`
	UserID      string `json:"userId"`
	CryptPubKey string `json:"cryptPubKey"`
	SignPubKey  string `json:"signPubKey"`
}

type AuthorizeDevicePayload struct {
	DeviceID          string `json:"deviceId"`
	UserID            string `json:"userId"`
	CryptTransformKey string `json:"cryptTransformKey"`
}

type RemoveDevicePayload struct {
	DeviceID string `json:"deviceId"`
	UserID   string `json:"userId"`
}

type CreateGroupPayload struct {
	GroupID         string `json:"groupId"`
	UserID          string `json:"userId"`
	CryptPubKey     string `json:"cryptPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
	EncSignPrivKey  string `json:"encSignPrivKey"`
}

type AddMemberToGroupPayload struct {
	GroupID           string `json:"groupId"`
	UserID            string `json:"userId"`
	CryptTransformKey string `json:"cryptTransformKey,omitempty"`
	CanSign           *bool  `json:"canSign,omitempty"`
}

type AddMemberToGroupResult struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
	CanSign bool   `json:"canSign"`
}

// MemberPayload addresses one membership; used by RemoveMemberFromGroup and
// RemoveAdminFromGroup.
type MemberPayload struct {
	GroupID string `json:"groupId"`
	UserID  string `json:"userId"`
}

type AddAdminToGroupPayload struct {
	GroupID         string `json:"groupId"`
	UserID          string `json:"userId"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
}

type CreateDocumentPayload struct {
	CryptUserID     string `json:"cryptUserId"`
	CryptPubKey     string `json:"cryptPubKey"`
	CreatorID       string `json:"creatorId"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
}

type CreateDocumentResult struct {
	CreateDocumentPayload
	DocumentID string `json:"documentId"`
}

type SignDocumentPayload struct {
	DocumentID string   `json:"documentId"`
	UserID     string   `json:"userId,omitempty"`
	Hashes     []string `json:"hashes"`
}

type SignDocumentResult struct {
	SignDocumentPayload
	Signatures []string `json:"signatures"`
}

type GrantAccessPayload struct {
	DocumentID      string    `json:"documentId"`
	Kind            GrantKind `json:"kind"`
	ID              string    `json:"id"`
	EncCryptPrivKey string    `json:"encCryptPrivKey,omitempty"`
	CanSign         *bool     `json:"canSign,omitempty"`
}

type RevokeAccessPayload struct {
	DocumentID string    `json:"documentId"`
	Kind       GrantKind `json:"kind"`
	ID         string    `json:"id"`
}

type DecryptDocumentPayload struct {
	DocumentID string `json:"documentId"`
}

type DecryptDocumentResult struct {
	DocumentID      string `json:"documentId"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
}

type UpdateDocumentPayload struct {
	DocumentID      string `json:"documentId"`
	CryptUserID     string `json:"cryptUserId,omitempty"`
	CryptPubKey     string `json:"cryptPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
}

// KeysPayload selects a subject for GetPubKeys and GetKeyPairs.
type KeysPayload struct {
	Kind KeyKind `json:"kind"`
	ID   string  `json:"id"`
}

type GetPubKeysResult struct {
	KeysPayload
	SignPubKey  string `json:"signPubKey"`
	CryptPubKey string `json:"cryptPubKey"`
}

type GetKeyPairsResult struct {
	KeysPayload
	SignPubKey      string `json:"signPubKey"`
	EncSignPrivKey  string `json:"encSignPrivKey"`
	CryptPubKey     string `json:"cryptPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
}

// Bool returns a pointer to b, for the optional canSign fields.
func Bool(b bool) *bool { return &b }
