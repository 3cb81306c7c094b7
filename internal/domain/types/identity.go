package types

// User is stored under users/{id}. EncCryptPrivKey and EncSignPrivKey are the
// user's own private keys encrypted to CryptPubKey.
type User struct {
	ID              string `json:"id"`
	CryptPubKey     string `json:"cryptPubKey"`
	SignPubKey      string `json:"signPubKey"`
	EncCryptPrivKey string `json:"encCryptPrivKey"`
	EncSignPrivKey  string `json:"encSignPrivKey"`
	RootDocumentID  string `json:"rootDocumentId,omitempty"`
}

// Device is stored under devices/{id}. An empty UserID means the device has
// not been authorized yet.
type Device struct {
	ID                string `json:"id"`
	UserID            string `json:"userId"`
	SignPubKey        string `json:"signPubKey"`
	CryptPubKey       string `json:"cryptPubKey"`
	CryptTransformKey string `json:"cryptTransformKey"`
}

// Bound reports whether the device is linked to a user.
func (d Device) Bound() bool { return d.UserID != "" }
