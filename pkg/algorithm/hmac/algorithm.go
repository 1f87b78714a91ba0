/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package hmac

import (
	"crypto"
	"crypto/hmac"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// Algorithm implements the HSxxx algorithms. The key is a []byte secret at least as long
// as the hash output (https://tools.ietf.org/html/rfc7518#section-3.2).
type Algorithm struct {
	name string
	hash crypto.Hash
}

// New returns the HMAC algorithm for the given name (HS256, HS384 or HS512).
func New(name string) (*Algorithm, error) {
	switch name {
	case jws.HS256:
		return &Algorithm{name: name, hash: crypto.SHA256}, nil
	case jws.HS384:
		return &Algorithm{name: name, hash: crypto.SHA384}, nil
	case jws.HS512:
		return &Algorithm{name: name, hash: crypto.SHA512}, nil
	default:
		return nil, fmt.Errorf("%w: '%s' is not an HMAC algorithm", jws.ErrUnknownAlgorithm, name)
	}
}

// All returns HS256, HS384 and HS512.
func All() []*Algorithm {
	return []*Algorithm{
		{name: jws.HS256, hash: crypto.SHA256},
		{name: jws.HS384, hash: crypto.SHA384},
		{name: jws.HS512, hash: crypto.SHA512},
	}
}

// Name returns the algorithm name.
func (a *Algorithm) Name() string {
	return a.name
}

// Family returns jws.FamilyHMAC.
func (a *Algorithm) Family() jws.Family {
	return jws.FamilyHMAC
}

// Sign computes the MAC of the signing input.
func (a *Algorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	secret, err := a.secret(key)
	if err != nil {
		return nil, err
	}

	return a.mac(secret, signingInput), nil
}

// Verify recomputes the MAC and compares it in constant time.
func (a *Algorithm) Verify(signingInput []byte, key interface{}, signature []byte) (bool, error) {
	secret, err := a.secret(key)
	if err != nil {
		return false, err
	}

	return hmac.Equal(a.mac(secret, signingInput), signature), nil
}

func (a *Algorithm) mac(secret, data []byte) []byte {
	h := hmac.New(a.hash.New, secret)
	h.Write(data) //nolint:errcheck

	return h.Sum(nil)
}

func (a *Algorithm) secret(key interface{}) ([]byte, error) {
	secret, ok := key.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s requires a []byte secret, got %T", jws.ErrKeyTypeMismatch, a.name, key)
	}

	if len(secret) < a.hash.Size() {
		return nil, fmt.Errorf("%w: %s requires a secret of at least %d bytes, got %d",
			jws.ErrKeyTypeMismatch, a.name, a.hash.Size(), len(secret))
	}

	return secret, nil
}
