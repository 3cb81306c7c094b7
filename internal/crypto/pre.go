package crypto

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/group"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// Ciphertexts are stacks of layers over Ristretto255. Layer 0 seals the
// plaintext; every later layer seals the blinding scalar d of the transform
// that added it. Applying a transform key (a*d^-1, layer sealing d to the
// target) raises the current top element by a*d^-1 and pushes the new layer,
// so the holder of the target key peels layers from the top down.

var ristretto = group.Ristretto255

const layerKeyInfo = "naturalrights pre layer v1"

var (
	// ErrDecrypt is returned when a ciphertext does not open under the given key.
	ErrDecrypt = errors.New("pre: decryption failed")
	// ErrMalformed is returned for ciphertexts and transform keys that do not parse.
	ErrMalformed = errors.New("pre: malformed input")
)

type layer struct {
	E      []byte `json:"e"`
	Sealed []byte `json:"c"`
}

type capsule struct {
	Layers []layer `json:"l"`
}

type transform struct {
	RK    []byte `json:"rk"`
	Layer layer  `json:"layer"`
}

// GenerateRistretto returns a fresh scalar private key and its public element.
func GenerateRistretto() (priv group.Scalar, pub group.Element, err error) {
	priv, err = randomScalar(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv, ristretto.NewElement().MulGen(priv), nil
}

// encryptLayer seals pt to pub under a one-time ephemeral key.
func encryptLayer(pub group.Element, pt []byte) (layer, error) {
	r, err := randomScalar(rand.Reader)
	if err != nil {
		return layer{}, err
	}
	e, err := ristretto.NewElement().MulGen(r).MarshalBinary()
	if err != nil {
		return layer{}, err
	}
	sealed, err := sealWith(ristretto.NewElement().Mul(pub, r), pt)
	if err != nil {
		return layer{}, err
	}
	return layer{E: e, Sealed: sealed}, nil
}

// encryptCapsule encrypts pt to pub as a single-layer capsule.
func encryptCapsule(pub group.Element, pt []byte) (capsule, error) {
	l, err := encryptLayer(pub, pt)
	if err != nil {
		return capsule{}, err
	}
	return capsule{Layers: []layer{l}}, nil
}

// newTransform builds the transform from priv's key to the target public key.
func newTransform(priv group.Scalar, to group.Element) (transform, error) {
	d, err := randomScalar(rand.Reader)
	if err != nil {
		return transform{}, err
	}
	db, err := d.MarshalBinary()
	if err != nil {
		return transform{}, err
	}
	defer Wipe(db)

	l, err := encryptLayer(to, db)
	if err != nil {
		return transform{}, err
	}
	rk := ristretto.NewScalar().Mul(priv, ristretto.NewScalar().Inv(d))
	rkb, err := rk.MarshalBinary()
	if err != nil {
		return transform{}, err
	}
	return transform{RK: rkb, Layer: l}, nil
}

// apply re-targets c through t without opening any layer.
func (t transform) apply(c capsule) (capsule, error) {
	if len(c.Layers) == 0 {
		return capsule{}, ErrMalformed
	}
	rk := ristretto.NewScalar()
	if err := rk.UnmarshalBinary(t.RK); err != nil {
		return capsule{}, ErrMalformed
	}
	top := c.Layers[len(c.Layers)-1]
	e := ristretto.NewElement()
	if err := e.UnmarshalBinary(top.E); err != nil {
		return capsule{}, ErrMalformed
	}
	eb, err := ristretto.NewElement().Mul(e, rk).MarshalBinary()
	if err != nil {
		return capsule{}, err
	}

	out := capsule{Layers: make([]layer, 0, len(c.Layers)+1)}
	out.Layers = append(out.Layers, c.Layers[:len(c.Layers)-1]...)
	out.Layers = append(out.Layers, layer{E: eb, Sealed: top.Sealed}, t.Layer)
	return out, nil
}

// open peels every layer of c with priv and returns the plaintext.
func (c capsule) open(priv group.Scalar) ([]byte, error) {
	if len(c.Layers) == 0 {
		return nil, ErrMalformed
	}
	cur := priv
	for i := len(c.Layers) - 1; i >= 0; i-- {
		e := ristretto.NewElement()
		if err := e.UnmarshalBinary(c.Layers[i].E); err != nil {
			return nil, ErrMalformed
		}
		pt, err := openWith(ristretto.NewElement().Mul(e, cur), c.Layers[i].Sealed)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			return pt, nil
		}
		next := ristretto.NewScalar()
		err = next.UnmarshalBinary(pt)
		Wipe(pt)
		if err != nil {
			return nil, ErrMalformed
		}
		cur = next
	}
	return nil, ErrMalformed
}

func sealWith(shared group.Element, pt []byte) ([]byte, error) {
	aead, err := layerAEAD(shared)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte // zero nonce; every layer key is used once
	return aead.Seal(nil, nonce[:], pt, nil), nil
}

func openWith(shared group.Element, sealed []byte) ([]byte, error) {
	aead, err := layerAEAD(shared)
	if err != nil {
		return nil, err
	}
	var nonce [chacha20poly1305.NonceSize]byte
	pt, err := aead.Open(nil, nonce[:], sealed, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return pt, nil
}

func layerAEAD(shared group.Element) (cipher.AEAD, error) {
	ikm, err := shared.MarshalBinary()
	if err != nil {
		return nil, err
	}
	defer Wipe(ikm)

	key := make([]byte, chacha20poly1305.KeySize)
	defer Wipe(key)
	if _, err := io.ReadFull(hkdf.New(sha256.New, ikm, nil, []byte(layerKeyInfo)), key); err != nil {
		return nil, err
	}
	return chacha20poly1305.New(key)
}

func randomScalar(rnd io.Reader) (group.Scalar, error) {
	zero := ristretto.NewScalar()
	for i := 0; i < 8; i++ {
		s := ristretto.RandomScalar(rnd)
		if !s.IsEqual(zero) {
			return s, nil
		}
	}
	return nil, errors.New("pre: could not draw a non-zero scalar")
}

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return B64(b), nil
}

func decodeJSON(s string, out any) error {
	b, err := UnB64(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

func decodeScalar(s string) (group.Scalar, error) {
	b, err := UnB64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	defer Wipe(b)
	sc := ristretto.NewScalar()
	if err := sc.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return sc, nil
}

func decodeElement(s string) (group.Element, error) {
	b, err := UnB64(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	e := ristretto.NewElement()
	if err := e.UnmarshalBinary(b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return e, nil
}
