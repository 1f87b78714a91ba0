/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package eddsa

import (
	"crypto/ed25519"
	"fmt"

	"github.com/cloudflare/circl/sign/ed448"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

// Algorithm implements "EdDSA" (https://tools.ietf.org/html/rfc8037#section-3.1). The curve is selected by the
// key: Ed25519 keys from crypto/ed25519 or Ed448 keys from circl.
type Algorithm struct{}

// New returns the EdDSA algorithm.
func New() *Algorithm {
	return &Algorithm{}
}

// Name returns "EdDSA".
func (a *Algorithm) Name() string {
	return jws.EdDSA
}

// Family returns jws.FamilyEdDSA.
func (a *Algorithm) Family() jws.Family {
	return jws.FamilyEdDSA
}

// Sign signs the signing input with an ed25519.PrivateKey or an ed448.PrivateKey.
func (a *Algorithm) Sign(signingInput []byte, key interface{}) ([]byte, error) {
	switch k := key.(type) {
	case ed25519.PrivateKey:
		// ed25519 panics if key size is wrong
		if len(k) != ed25519.PrivateKeySize {
			return nil, fmt.Errorf("%w: invalid Ed25519 private key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		return ed25519.Sign(k, signingInput), nil
	case ed448.PrivateKey:
		if len(k) != ed448.PrivateKeySize {
			return nil, fmt.Errorf("%w: invalid Ed448 private key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		return ed448.Sign(k, signingInput, ""), nil
	case ed25519.PublicKey, ed448.PublicKey:
		return nil, fmt.Errorf("%w: EdDSA cannot sign with a public key", jws.ErrUnsupportedOperation)
	default:
		return nil, fmt.Errorf("%w: EdDSA requires an Ed25519 or Ed448 private key, got %T", jws.ErrKeyTypeMismatch, key)
	}
}

// Verify verifies the signature with a public (or private) Ed25519 or Ed448 key.
func (a *Algorithm) Verify(signingInput []byte, key interface{}, signature []byte) (bool, error) {
	switch k := key.(type) {
	case ed25519.PrivateKey:
		if len(k) != ed25519.PrivateKeySize {
			return false, fmt.Errorf("%w: invalid Ed25519 private key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		return a.Verify(signingInput, k.Public(), signature)
	case ed25519.PublicKey:
		if len(k) != ed25519.PublicKeySize {
			return false, fmt.Errorf("%w: invalid Ed25519 public key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		return ed25519.Verify(k, signingInput, signature), nil
	case ed448.PrivateKey:
		if len(k) != ed448.PrivateKeySize {
			return false, fmt.Errorf("%w: invalid Ed448 private key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		return a.Verify(signingInput, k.Public(), signature)
	case ed448.PublicKey:
		if len(k) != ed448.PublicKeySize {
			return false, fmt.Errorf("%w: invalid Ed448 public key size %d", jws.ErrKeyTypeMismatch, len(k))
		}

		if len(signature) != ed448.SignatureSize {
			return false, nil
		}

		return ed448.Verify(k, signingInput, signature, ""), nil
	default:
		return false, fmt.Errorf("%w: EdDSA requires an Ed25519 or Ed448 key, got %T", jws.ErrKeyTypeMismatch, key)
	}
}
