/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha256" // register SHA-256
	_ "crypto/sha512" // register SHA-384 and SHA-512
	"fmt"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// MinKeySize is the smallest accepted modulus size in bits (https://tools.ietf.org/html/rfc7518#section-3.3).
const MinKeySize = 2048

type padding int

const (
	paddingPKCS1v15 padding = iota
	paddingPSS
)

// Algorithm implements RSASSA-PKCS1-v1_5 (RSxxx) and RSASSA-PSS (PSxxx). Hash and padding are fixed by the
// algorithm name; PSS always uses MGF1 with the same hash and a salt as long as the hash output.
type Algorithm struct {
	name    string
	hash    crypto.Hash
	padding padding
}

var algorithms = map[string]Algorithm{
	jws.RS256: {name: jws.RS256, hash: crypto.SHA256, padding: paddingPKCS1v15},
	jws.RS384: {name: jws.RS384, hash: crypto.SHA384, padding: paddingPKCS1v15},
	jws.RS512: {name: jws.RS512, hash: crypto.SHA512, padding: paddingPKCS1v15},
	jws.PS256: {name: jws.PS256, hash: crypto.SHA256, padding: paddingPSS},
	jws.PS384: {name: jws.PS384, hash: crypto.SHA384, padding: paddingPSS},
	jws.PS512: {name: jws.PS512, hash: crypto.SHA512, padding: paddingPSS},
}

// New returns the RSA algorithm for the given name.
func New(name string) (*Algorithm, error) {
	alg, ok := algorithms[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s' is not an RSA algorithm", jws.ErrUnknownAlgorithm, name)
	}

	return &alg, nil
}

// All returns the PKCS1 v1.5 and PSS algorithms.
func All() []*Algorithm {
	var all []*Algorithm

	for _, name := range []string{jws.RS256, jws.RS384, jws.RS512, jws.PS256, jws.PS384, jws.PS512} {
		alg := algorithms[name]
		all = append(all, &alg)
	}

	return all
}

// Name returns the algorithm name.
func (a *Algorithm) Name() string {
	return a.name
}

// Family returns jws.FamilyRSAPKCS1 or jws.FamilyRSAPSS.
func (a *Algorithm) Family() jws.Family {
	if a.padding == paddingPSS {
		return jws.FamilyRSAPSS
	}

	return jws.FamilyRSAPKCS1
}

// Hash returns the hash function bound to the algorithm.
func (a *Algorithm) Hash() crypto.Hash {
	return a.hash
}

// Sign signs the signing input with an *rsa.PrivateKey.
func (a *Algorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	var privateKey *rsa.PrivateKey

	switch k := key.(type) {
	case *rsa.PrivateKey:
		if k == nil {
			return nil, a.nilKeyError(key)
		}

		privateKey = k
	case *rsa.PublicKey:
		if k == nil {
			return nil, a.nilKeyError(key)
		}

		return nil, fmt.Errorf("%w: %s cannot sign with a public key", jws.ErrUnsupportedOperation, a.name)
	default:
		return nil, fmt.Errorf("%w: %s requires an RSA private key, got %T", jws.ErrKeyTypeMismatch, a.name, key)
	}

	if err := a.checkKeySize(&privateKey.PublicKey); err != nil {
		return nil, err
	}

	digest := a.digest(signingInput)

	if a.padding == paddingPSS {
		return rsa.SignPSS(rand.Reader, privateKey, a.hash, digest, a.pssOptions())
	}

	return rsa.SignPKCS1v15(rand.Reader, privateKey, a.hash, digest)
}

// Verify verifies the signature with an *rsa.PublicKey (or the public part of an *rsa.PrivateKey).
func (a *Algorithm) Verify(signingInput []byte, key interface{}, signature []byte) (bool, error) {
	var publicKey *rsa.PublicKey

	switch k := key.(type) {
	case *rsa.PublicKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = k
	case *rsa.PrivateKey:
		if k == nil {
			return false, a.nilKeyError(key)
		}

		publicKey = &k.PublicKey
	default:
		return false, fmt.Errorf("%w: %s requires an RSA key, got %T", jws.ErrKeyTypeMismatch, a.name, key)
	}

	if err := a.checkKeySize(publicKey); err != nil {
		return false, err
	}

	digest := a.digest(signingInput)

	var err error
	if a.padding == paddingPSS {
		err = rsa.VerifyPSS(publicKey, a.hash, digest, signature, a.pssOptions())
	} else {
		err = rsa.VerifyPKCS1v15(publicKey, a.hash, digest, signature)
	}

	return err == nil, nil
}

func (a *Algorithm) pssOptions() *rsa.PSSOptions {
	return &rsa.PSSOptions{SaltLength: rsa.PSSSaltLengthEqualsHash, Hash: a.hash}
}

func (a *Algorithm) digest(data []byte) []byte {
	h := a.hash.New()
	h.Write(data) //nolint:errcheck

	return h.Sum(nil)
}

func (a *Algorithm) nilKeyError(key interface{}) error {
	return fmt.Errorf("%w: %s: nil %T", jws.ErrKeyTypeMismatch, a.name, key)
}

func (a *Algorithm) checkKeySize(key *rsa.PublicKey) error {
	if key.N == nil {
		return fmt.Errorf("%w: %s: RSA key has no modulus", jws.ErrKeyTypeMismatch, a.name)
	}

	if size := key.N.BitLen(); size < MinKeySize {
		return fmt.Errorf("%w: %s requires a key of at least %d bits, got %d",
			jws.ErrKeyTypeMismatch, a.name, MinKeySize, size)
	}

	return nil
}
