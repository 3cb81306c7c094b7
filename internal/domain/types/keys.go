package types

// KeyPair is an encoded public/private key pair as produced by Primitives.
type KeyPair struct {
	PubKey  string `json:"pubKey"`
	PrivKey string `json:"privKey"`
}

// DeviceKeys is the key material a device keeps locally.
//
// The signing public key doubles as the device id on the wire.
type DeviceKeys struct {
	Crypt KeyPair `json:"crypt"`
	Sign  KeyPair `json:"sign"`
}

// ID returns the device id, which is its signing public key.
func (k DeviceKeys) ID() string { return k.Sign.PubKey }
