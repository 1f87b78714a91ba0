/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

const (
	p256KeySize      = 32
	p384KeySize      = 48
	p521KeySize      = 66
	secp256k1KeySize = 32
)

// Algorithm implements ECDSA signatures in the fixed-width R||S form of
// https://tools.ietf.org/html/rfc7518#section-3.4.
type Algorithm struct {
	name      string
	curve     elliptic.Curve
	curveName string
	keySize   int
	hash      crypto.Hash
}

// New returns the ECDSA algorithm for the given name (ES256, ES384, ES512 or ES256K).
func New(name string) (*Algorithm, error) {
	switch name {
	case jws.ES256:
		return &Algorithm{name: name, curve: elliptic.P256(), curveName: "P-256", keySize: p256KeySize, hash: crypto.SHA256}, nil
	case jws.ES384:
		return &Algorithm{name: name, curve: elliptic.P384(), curveName: "P-384", keySize: p384KeySize, hash: crypto.SHA384}, nil
	case jws.ES512:
		return &Algorithm{name: name, curve: elliptic.P521(), curveName: "P-521", keySize: p521KeySize, hash: crypto.SHA512}, nil
	case jws.ES256K:
		return &Algorithm{
			name: name, curve: btcec.S256(), curveName: "secp256k1", keySize: secp256k1KeySize, hash: crypto.SHA256,
		}, nil
	default:
		return nil, fmt.Errorf("%w: '%s' is not an ECDSA algorithm", jws.ErrUnknownAlgorithm, name)
	}
}

// All returns ES256, ES384, ES512 and ES256K.
func All() []*Algorithm {
	var all []*Algorithm

	for _, name := range []string{jws.ES256, jws.ES384, jws.ES512, jws.ES256K} {
		alg, _ := New(name) //nolint:errcheck
		all = append(all, alg)
	}

	return all
}

// Name returns the algorithm name.
func (a *Algorithm) Name() string {
	return a.name
}

// Family returns jws.FamilyECDSA.
func (a *Algorithm) Family() jws.Family {
	return jws.FamilyECDSA
}

// Curve returns the curve the algorithm is bound to.
func (a *Algorithm) Curve() elliptic.Curve {
	return a.curve
}

// Sign signs the signing input. The key must be an *ecdsa.PrivateKey (or *btcec.PrivateKey) on the
// algorithm's curve.
func (a *Algorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	var privateKey *ecdsa.PrivateKey

	switch k := key.(type) {
	case *ecdsa.PrivateKey:
		if k == nil {
			return nil, a.nilKeyError(key)
		}

		privateKey = k
	case *btcec.PrivateKey:
		if k == nil {
			return nil, a.nilKeyError(key)
		}

		privateKey = k.ToECDSA()
	case *ecdsa.PublicKey, *btcec.PublicKey:
		return nil, fmt.Errorf("%w: %s cannot sign with a public key", jws.ErrUnsupportedOperation, a.name)
	default:
		return nil, fmt.Errorf("%w: %s requires an EC private key, got %T", jws.ErrKeyTypeMismatch, a.name, key)
	}

	if err := a.checkCurve(privateKey.Curve); err != nil {
		return nil, err
	}

	if privateKey.D == nil {
		return nil, fmt.Errorf("%w: %s: EC private key has no scalar", jws.ErrKeyTypeMismatch, a.name)
	}

	r, s, err := ecdsa.Sign(rand.Reader, privateKey, a.digest(signingInput))
	if err != nil {
		return nil, fmt.Errorf("ecdsa sign: %w", err)
	}

	return append(copyPadded(r.Bytes(), a.keySize), copyPadded(s.Bytes(), a.keySize)...), nil
}

// Verify verifies an R||S signature. A signature of the wrong width does not verify.
func (a *Algorithm) Verify(signingInput []byte, key interface{}, signature []byte) (bool, error) {
	var publicKey *ecdsa.PublicKey

	switch k := key.(type) {
	case *ecdsa.PublicKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = k
	case *ecdsa.PrivateKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = &k.PublicKey
	case *btcec.PublicKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = k.ToECDSA()
	case *btcec.PrivateKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = &k.ToECDSA().PublicKey
	default:
		return false, fmt.Errorf("%w: %s requires an EC key, got %T", jws.ErrKeyTypeMismatch, a.name, key)
	}

	if err := a.checkCurve(publicKey.Curve); err != nil {
		return false, err
	}

	if publicKey.X == nil || publicKey.Y == nil {
		return false, fmt.Errorf("%w: %s: EC public key has no point", jws.ErrKeyTypeMismatch, a.name)
	}

	if len(signature) != 2*a.keySize {
		return false, nil
	}

	r := new(big.Int).SetBytes(signature[:a.keySize])
	s := new(big.Int).SetBytes(signature[a.keySize:])

	return ecdsa.Verify(publicKey, a.digest(signingInput), r, s), nil
}

func (a *Algorithm) nilKeyError(key interface{}) error {
	return fmt.Errorf("%w: %s: nil %T", jws.ErrKeyTypeMismatch, a.name, key)
}

func (a *Algorithm) checkCurve(curve elliptic.Curve) error {
	if curve != a.curve {
		return fmt.Errorf("%w: %s requires a key on curve %s", jws.ErrKeyTypeMismatch, a.name, a.curveName)
	}

	return nil
}

func (a *Algorithm) digest(data []byte) []byte {
	h := a.hash.New()
	h.Write(data) //nolint:errcheck

	return h.Sum(nil)
}

func copyPadded(source []byte, size int) []byte {
	dest := make([]byte, size)
	copy(dest[size-len(source):], source)

	return dest
}
