/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ecdsa

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/btcsuite/btcd/btcec"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

func TestNew(t *testing.T) {
	for _, name := range []string{jws.ES256, jws.ES384, jws.ES512, jws.ES256K} {
		alg, err := New(name)
		require.NoError(t, err)
		require.Equal(t, name, alg.Name())
		require.Equal(t, jws.FamilyECDSA, alg.Family())
	}

	_, err := New(jws.EdDSA)
	require.True(t, errors.Is(err, jws.ErrUnknownAlgorithm))

	require.Len(t, All(), 4)
}

func TestAlgorithm_SignVerify(t *testing.T) {
	input := []byte("eyJhbGciOiJFUzI1NiJ9.aGVsbG8")

	for _, alg := range All() {
		alg := alg

		t.Run(alg.Name(), func(t *testing.T) {
			privateKey, err := ecdsa.GenerateKey(alg.Curve(), rand.Reader)
			require.NoError(t, err)

			signature, err := alg.Sign(input, privateKey)
			require.NoError(t, err)
			require.Len(t, signature, 2*alg.keySize)

			ok, err := alg.Verify(input, &privateKey.PublicKey, signature)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = alg.Verify(input, privateKey, signature)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = alg.Verify([]byte("different"), &privateKey.PublicKey, signature)
			require.NoError(t, err)
			require.False(t, ok)

			ok, err = alg.Verify(input, &privateKey.PublicKey, signature[1:])
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestAlgorithm_BTCECKeys(t *testing.T) {
	alg, err := New(jws.ES256K)
	require.NoError(t, err)

	privateKey, err := btcec.NewPrivateKey(btcec.S256())
	require.NoError(t, err)

	signature, err := alg.Sign([]byte("input"), privateKey)
	require.NoError(t, err)

	ok, err := alg.Verify([]byte("input"), privateKey.PubKey(), signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = alg.Verify([]byte("input"), privateKey, signature)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = alg.Sign([]byte("input"), privateKey.PubKey())
	require.True(t, errors.Is(err, jws.ErrUnsupportedOperation))
}

func TestAlgorithm_KeyErrors(t *testing.T) {
	es256, err := New(jws.ES256)
	require.NoError(t, err)

	p384Key, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	require.NoError(t, err)

	t.Run("curve mismatch", func(t *testing.T) {
		_, err := es256.Sign([]byte("input"), p384Key)
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		require.Contains(t, err.Error(), "P-256")

		_, err = es256.Verify([]byte("input"), &p384Key.PublicKey, make([]byte, 64))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})

	t.Run("public key cannot sign", func(t *testing.T) {
		_, err := es256.Sign([]byte("input"), &p384Key.PublicKey)
		require.True(t, errors.Is(err, jws.ErrUnsupportedOperation))
	})

	t.Run("wrong key type", func(t *testing.T) {
		_, err := es256.Sign([]byte("input"), []byte("secret"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

		_, err = es256.Verify([]byte("input"), "key", make([]byte, 64))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})

	t.Run("nil keys", func(t *testing.T) {
		es256k, err := New(jws.ES256K)
		require.NoError(t, err)

		_, err = es256.Sign([]byte("input"), (*ecdsa.PrivateKey)(nil))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		require.Contains(t, err.Error(), "nil *ecdsa.PrivateKey")

		_, err = es256k.Sign([]byte("input"), (*btcec.PrivateKey)(nil))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

		for _, key := range []interface{}{(*ecdsa.PublicKey)(nil), (*ecdsa.PrivateKey)(nil)} {
			ok, err := es256.Verify([]byte("input"), key, make([]byte, 64))
			require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
			require.False(t, ok)
		}

		for _, key := range []interface{}{(*btcec.PublicKey)(nil), (*btcec.PrivateKey)(nil)} {
			_, err := es256k.Verify([]byte("input"), key, make([]byte, 64))
			require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		}
	})

	t.Run("incomplete keys", func(t *testing.T) {
		_, err := es256.Sign([]byte("input"), &ecdsa.PrivateKey{PublicKey: ecdsa.PublicKey{Curve: elliptic.P256()}})
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

		_, err = es256.Verify([]byte("input"), &ecdsa.PublicKey{Curve: elliptic.P256()}, make([]byte, 64))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})
}

func TestAlgorithm_Isolation(t *testing.T) {
	es256, err := New(jws.ES256)
	require.NoError(t, err)

	es256k, err := New(jws.ES256K)
	require.NoError(t, err)

	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	signature, err := es256.Sign([]byte("input"), privateKey)
	require.NoError(t, err)

	// same signature width, different curve
	_, err = es256k.Verify([]byte("input"), &privateKey.PublicKey, signature)
	require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
}

func TestCopyPadded(t *testing.T) {
	require.Equal(t, []byte{0, 0, 1, 2}, copyPadded([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2}, copyPadded([]byte{1, 2}, 2))
}
