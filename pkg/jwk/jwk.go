/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/sha256"
	"fmt"
	"math/big"
	"reflect"

	"github.com/btcsuite/btcd/btcec"
	"github.com/btcsuite/btcutil/base58"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/pkg/errors"
	gojose "github.com/square/go-jose/v3"
	"github.com/square/go-jose/v3/json"

	"github.com/trustbloc/jws-core-go/pkg/encoder"
)

const (
	ecKty  = "EC"
	okpKty = "OKP"

	secp256k1Crv = "secp256k1"
	ed448Crv     = "Ed448"

	secp256k1KeySize = 32
)

// Key is a key loaded from a JWK. Key holds the crypto key in the form the signature algorithms accept:
// []byte, *rsa.PrivateKey, *rsa.PublicKey, *ecdsa.PrivateKey, *ecdsa.PublicKey, *btcec.PrivateKey,
// *btcec.PublicKey, ed25519 or ed448 keys.
type Key struct {
	KeyID     string
	Algorithm string
	Key       interface{}
}

// rawJWK holds the members needed to handle the curves go-jose does not support.
type rawJWK struct {
	Kty string `json:"kty"`
	Crv string `json:"crv,omitempty"`
	Kid string `json:"kid,omitempty"`
	Alg string `json:"alg,omitempty"`
	X   string `json:"x,omitempty"`
	Y   string `json:"y,omitempty"`
	D   string `json:"d,omitempty"`
}

type keySet struct {
	Keys []json.RawMessage `json:"keys"`
}

// Parse parses a single JWK. A missing "kid" is replaced by the base58 encoded RFC 7638 thumbprint.
func Parse(data []byte) (*Key, error) {
	var raw rawJWK
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK")
	}

	var (
		key *Key
		err error
	)

	switch {
	case raw.Kty == ecKty && raw.Crv == secp256k1Crv:
		key, err = parseSecp256k1(&raw)
	case raw.Kty == okpKty && raw.Crv == ed448Crv:
		key, err = parseEd448(&raw)
	default:
		key, err = parseJose(data)
	}

	if err != nil {
		return nil, err
	}

	if key.KeyID == "" {
		key.KeyID, err = KeyID(key.Key)
		if err != nil {
			return nil, err
		}
	}

	return key, nil
}

// ParseSet parses a JWK set ({"keys": [...]}) or a single JWK.
func ParseSet(data []byte) ([]*Key, error) {
	var set keySet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK set")
	}

	if set.Keys == nil {
		key, err := Parse(data)
		if err != nil {
			return nil, err
		}

		return []*Key{key}, nil
	}

	keys := make([]*Key, 0, len(set.Keys))

	for i, raw := range set.Keys {
		key, err := Parse(raw)
		if err != nil {
			return nil, errors.WithMessagef(err, "key #%d", i)
		}

		keys = append(keys, key)
	}

	return keys, nil
}

func parseJose(data []byte) (*Key, error) {
	var jwk gojose.JSONWebKey
	if err := jwk.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrap(err, "unmarshal JWK")
	}

	return &Key{KeyID: jwk.KeyID, Algorithm: jwk.Algorithm, Key: jwk.Key}, nil
}

func parseSecp256k1(raw *rawJWK) (*Key, error) {
	x, err := decodeCoordinate(raw.X)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1 x")
	}

	y, err := decodeCoordinate(raw.Y)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1 y")
	}

	curve := btcec.S256()
	if !curve.IsOnCurve(x, y) {
		return nil, errors.New("secp256k1 point is not on the curve")
	}

	key := &Key{KeyID: raw.Kid, Algorithm: raw.Alg}

	if raw.D == "" {
		key.Key = &btcec.PublicKey{Curve: curve, X: x, Y: y}

		return key, nil
	}

	d, err := encoder.DecodeString(raw.D)
	if err != nil {
		return nil, errors.Wrap(err, "secp256k1 d")
	}

	if len(d) != secp256k1KeySize {
		return nil, errors.Errorf("secp256k1 d must be %d bytes, got %d", secp256k1KeySize, len(d))
	}

	privateKey, publicKey := btcec.PrivKeyFromBytes(curve, d)
	if publicKey.X.Cmp(x) != 0 || publicKey.Y.Cmp(y) != 0 {
		return nil, errors.New("secp256k1 private key does not match the public key")
	}

	key.Key = privateKey

	return key, nil
}

func decodeCoordinate(s string) (*big.Int, error) {
	b, err := encoder.DecodeString(s)
	if err != nil {
		return nil, err
	}

	if len(b) != secp256k1KeySize {
		return nil, errors.Errorf("coordinate must be %d bytes, got %d", secp256k1KeySize, len(b))
	}

	return new(big.Int).SetBytes(b), nil
}

func parseEd448(raw *rawJWK) (*Key, error) {
	x, err := encoder.DecodeString(raw.X)
	if err != nil {
		return nil, errors.Wrap(err, "Ed448 x")
	}

	if len(x) != ed448.PublicKeySize {
		return nil, errors.Errorf("Ed448 x must be %d bytes, got %d", ed448.PublicKeySize, len(x))
	}

	key := &Key{KeyID: raw.Kid, Algorithm: raw.Alg, Key: ed448.PublicKey(x)}

	if raw.D == "" {
		return key, nil
	}

	seed, err := encoder.DecodeString(raw.D)
	if err != nil {
		return nil, errors.Wrap(err, "Ed448 d")
	}

	if len(seed) != ed448.SeedSize {
		return nil, errors.Errorf("Ed448 d must be %d bytes, got %d", ed448.SeedSize, len(seed))
	}

	privateKey := ed448.NewKeyFromSeed(seed)
	if !privateKey.Public().(ed448.PublicKey).Equal(ed448.PublicKey(x)) {
		return nil, errors.New("Ed448 private key does not match the public key")
	}

	key.Key = privateKey

	return key, nil
}

// Marshal returns the JWK representation of key, including private members for a private key.
func Marshal(key interface{}, kid, alg string) ([]byte, error) {
	switch k := key.(type) {
	case *btcec.PrivateKey:
		return marshalSecp256k1(k.PubKey(), k.D, kid, alg)
	case *btcec.PublicKey:
		return marshalSecp256k1(k, nil, kid, alg)
	case *ecdsa.PrivateKey:
		if k.Curve == btcec.S256() {
			return marshalSecp256k1((*btcec.PublicKey)(&k.PublicKey), k.D, kid, alg)
		}
	case *ecdsa.PublicKey:
		if k.Curve == btcec.S256() {
			return marshalSecp256k1((*btcec.PublicKey)(k), nil, kid, alg)
		}
	case ed448.PrivateKey:
		return json.Marshal(&rawJWK{
			Kty: okpKty, Crv: ed448Crv, Kid: kid, Alg: alg,
			X: encoder.EncodeToString(k.Public().(ed448.PublicKey)),
			D: encoder.EncodeToString(k.Seed()),
		})
	case ed448.PublicKey:
		return json.Marshal(&rawJWK{Kty: okpKty, Crv: ed448Crv, Kid: kid, Alg: alg, X: encoder.EncodeToString(k)})
	}

	jwk := gojose.JSONWebKey{Key: key, KeyID: kid, Algorithm: alg}

	b, err := jwk.MarshalJSON()
	if err != nil {
		return nil, errors.Wrapf(err, "marshal JWK for key type '%s'", reflect.TypeOf(key))
	}

	return b, nil
}

func marshalSecp256k1(pub *btcec.PublicKey, d *big.Int, kid, alg string) ([]byte, error) {
	raw := &rawJWK{
		Kty: ecKty, Crv: secp256k1Crv, Kid: kid, Alg: alg,
		X: encoder.EncodeToString(padded(pub.X, secp256k1KeySize)),
		Y: encoder.EncodeToString(padded(pub.Y, secp256k1KeySize)),
	}

	if d != nil {
		raw.D = encoder.EncodeToString(padded(d, secp256k1KeySize))
	}

	return json.Marshal(raw)
}

// PublicKey returns the public part of key. Symmetric keys have none.
func PublicKey(key interface{}) (interface{}, error) {
	switch k := key.(type) {
	case []byte:
		return nil, errors.New("symmetric keys have no public part")
	case *btcec.PrivateKey:
		return k.PubKey(), nil
	case *ecdsa.PrivateKey:
		return &k.PublicKey, nil
	case *rsa.PrivateKey:
		return &k.PublicKey, nil
	case ed25519.PrivateKey:
		return k.Public(), nil
	case ed448.PrivateKey:
		return k.Public(), nil
	case *btcec.PublicKey, *ecdsa.PublicKey, *rsa.PublicKey, ed25519.PublicKey, ed448.PublicKey:
		return key, nil
	default:
		return nil, errors.Errorf("unknown key type '%s'", reflect.TypeOf(key))
	}
}

// Thumbprint returns the RFC 7638 SHA-256 thumbprint of key.
func Thumbprint(key interface{}) ([]byte, error) {
	if k, ok := key.([]byte); ok {
		input := fmt.Sprintf(`{"k":"%s","kty":"oct"}`, encoder.EncodeToString(k))

		return digest(input), nil
	}

	pub, err := PublicKey(key)
	if err != nil {
		return nil, err
	}

	switch k := pub.(type) {
	case *btcec.PublicKey:
		return secp256k1Thumbprint(k), nil
	case *ecdsa.PublicKey:
		if k.Curve == btcec.S256() {
			return secp256k1Thumbprint((*btcec.PublicKey)(k)), nil
		}
	case ed448.PublicKey:
		input := fmt.Sprintf(`{"crv":"%s","kty":"%s","x":"%s"}`, ed448Crv, okpKty, encoder.EncodeToString(k))

		return digest(input), nil
	}

	jwk := gojose.JSONWebKey{Key: pub}

	tp, err := jwk.Thumbprint(crypto.SHA256)
	if err != nil {
		return nil, errors.Wrap(err, "compute thumbprint")
	}

	return tp, nil
}

// KeyID returns the base58 encoded thumbprint of key.
func KeyID(key interface{}) (string, error) {
	tp, err := Thumbprint(key)
	if err != nil {
		return "", err
	}

	return base58.Encode(tp), nil
}

func secp256k1Thumbprint(k *btcec.PublicKey) []byte {
	input := fmt.Sprintf(`{"crv":"%s","kty":"%s","x":"%s","y":"%s"}`, secp256k1Crv, ecKty,
		encoder.EncodeToString(padded(k.X, secp256k1KeySize)), encoder.EncodeToString(padded(k.Y, secp256k1KeySize)))

	return digest(input)
}

func digest(input string) []byte {
	h := sha256.Sum256([]byte(input))

	return h[:]
}

func padded(n *big.Int, size int) []byte {
	b := n.Bytes()
	if len(b) >= size {
		return b
	}

	return append(make([]byte, size-len(b)), b...)
}
