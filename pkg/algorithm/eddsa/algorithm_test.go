/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package eddsa

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/cloudflare/circl/sign/ed448"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

func TestAlgorithm_Ed25519(t *testing.T) {
	alg := New()
	require.Equal(t, jws.EdDSA, alg.Name())
	require.Equal(t, jws.FamilyEdDSA, alg.Family())

	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signature, err := alg.Sign([]byte("input"), privateKey)
	require.NoError(t, err)
	require.Len(t, signature, ed25519.SignatureSize)

	ok, err := alg.Verify([]byte("input"), publicKey, signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = alg.Verify([]byte("input"), privateKey, signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = alg.Verify([]byte("other"), publicKey, signature)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = alg.Sign([]byte("input"), publicKey)
	require.True(t, errors.Is(err, jws.ErrUnsupportedOperation))

	_, err = alg.Sign([]byte("input"), ed25519.PrivateKey("short"))
	require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

	_, err = alg.Verify([]byte("input"), ed25519.PublicKey("short"), signature)
	require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	require.Contains(t, err.Error(), "invalid Ed25519 public key size")
}

func TestAlgorithm_Ed448(t *testing.T) {
	alg := New()

	publicKey, privateKey, err := ed448.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signature, err := alg.Sign([]byte("input"), privateKey)
	require.NoError(t, err)
	require.Len(t, signature, ed448.SignatureSize)

	ok, err := alg.Verify([]byte("input"), publicKey, signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = alg.Verify([]byte("input"), privateKey, signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = alg.Verify([]byte("input"), publicKey, signature[:10])
	require.NoError(t, err)
	require.False(t, ok)

	_, err = alg.Sign([]byte("input"), publicKey)
	require.True(t, errors.Is(err, jws.ErrUnsupportedOperation))
}

func TestAlgorithm_CurveIsolation(t *testing.T) {
	alg := New()

	_, ed25519Key, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	ed448Public, _, err := ed448.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signature, err := alg.Sign([]byte("input"), ed25519Key)
	require.NoError(t, err)

	ok, err := alg.Verify([]byte("input"), ed448Public, signature)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestAlgorithm_WrongKeyType(t *testing.T) {
	alg := New()

	_, err := alg.Sign([]byte("input"), []byte("secret"))
	require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

	_, err = alg.Verify([]byte("input"), nil, []byte("sig"))
	require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
}
