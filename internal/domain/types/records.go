package types

// Group is stored under groups/{id}. UserID is the creator; EncCryptPrivKey is
// the group private key encrypted to the creator.
type Group struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	CryptPubKey     string `json:"cryptPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
	EncSignPrivKey  string `json:"encSignPrivKey"`
}

// Membership is stored under groups/{groupId}/members/{userId}.
// A non-empty EncGroupCryptPrivKey makes the member an admin.
type Membership struct {
	GroupID              string `json:"groupId"`
	UserID               string `json:"userId"`
	CryptTransformKey    string `json:"cryptTransformKey"`
	CanSign              bool   `json:"canSign"`
	EncGroupCryptPrivKey string `json:"encGroupCryptPrivKey"`
}

// IsAdmin reports whether the member holds the group private key.
func (m Membership) IsAdmin() bool { return m.EncGroupCryptPrivKey != "" }

// Document is stored under documents/{id}. SignPrivKey never leaves the server.
type Document struct {
	ID              string `json:"id"`
	CryptUserID     string `json:"cryptUserId"`
	CryptPubKey     string `json:"cryptPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
	CreatorID       string `json:"creatorId"`
	SignPrivKey     string `json:"signPrivKey"`
}

// Grant is stored under documents/{documentId}/grants/{kind}/{id}.
type Grant struct {
	DocumentID      string    `json:"documentId"`
	Kind            GrantKind `json:"kind"`
	ID              string    `json:"id"`
	EncCryptPrivKey string    `json:"encCryptPrivKey"`
	CanSign         bool      `json:"canSign"`
}
