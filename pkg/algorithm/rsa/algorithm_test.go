/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package rsa

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/jws-core-go/pkg/jws"
)

var (
	keyOnce sync.Once
	testKey *rsa.PrivateKey
)

func privateKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()

	keyOnce.Do(func() {
		var err error

		testKey, err = rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
	})

	return testKey
}

func TestNew(t *testing.T) {
	families := map[string]jws.Family{
		jws.RS256: jws.FamilyRSAPKCS1,
		jws.RS384: jws.FamilyRSAPKCS1,
		jws.RS512: jws.FamilyRSAPKCS1,
		jws.PS256: jws.FamilyRSAPSS,
		jws.PS384: jws.FamilyRSAPSS,
		jws.PS512: jws.FamilyRSAPSS,
	}

	for name, family := range families {
		alg, err := New(name)
		require.NoError(t, err)
		require.Equal(t, name, alg.Name())
		require.Equal(t, family, alg.Family())
	}

	_, err := New(jws.ES256)
	require.True(t, errors.Is(err, jws.ErrUnknownAlgorithm))

	require.Len(t, All(), 6)
}

func TestAlgorithm_HashMapping(t *testing.T) {
	expected := map[string]crypto.Hash{
		jws.RS256: crypto.SHA256,
		jws.RS384: crypto.SHA384,
		jws.RS512: crypto.SHA512,
		jws.PS256: crypto.SHA256,
		jws.PS384: crypto.SHA384,
		jws.PS512: crypto.SHA512,
	}

	for name, hash := range expected {
		alg, err := New(name)
		require.NoError(t, err)
		require.Equal(t, hash, alg.Hash(), name)
	}
}

func TestAlgorithm_SignVerify(t *testing.T) {
	key := privateKey(t)
	input := []byte("eyJhbGciOiJQUzUxMiJ9.aGVsbG8")

	for _, alg := range All() {
		alg := alg

		t.Run(alg.Name(), func(t *testing.T) {
			signature, err := alg.Sign(input, key)
			require.NoError(t, err)
			require.Len(t, signature, key.Size())

			ok, err := alg.Verify(input, &key.PublicKey, signature)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = alg.Verify(input, key, signature)
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = alg.Verify([]byte("eyJhbGciOiJQUzUxMiJ9.aGVsbG9="), &key.PublicKey, signature)
			require.NoError(t, err)
			require.False(t, ok)

			tampered := append([]byte(nil), signature...)
			tampered[len(tampered)-1] ^= 0x80
			ok, err = alg.Verify(input, &key.PublicKey, tampered)
			require.NoError(t, err)
			require.False(t, ok)
		})
	}
}

func TestAlgorithm_PSSSaltLength(t *testing.T) {
	key := privateKey(t)
	input := []byte("input")

	alg, err := New(jws.PS512)
	require.NoError(t, err)

	signature, err := alg.Sign(input, key)
	require.NoError(t, err)

	digest := crypto.SHA512.New()
	digest.Write(input)

	err = rsa.VerifyPSS(&key.PublicKey, crypto.SHA512, digest.Sum(nil), signature,
		&rsa.PSSOptions{SaltLength: crypto.SHA512.Size()})
	require.NoError(t, err)
}

func TestAlgorithm_Isolation(t *testing.T) {
	key := privateKey(t)
	input := []byte("input")

	ps256, err := New(jws.PS256)
	require.NoError(t, err)

	signature, err := ps256.Sign(input, key)
	require.NoError(t, err)

	for _, name := range []string{jws.RS256, jws.PS384, jws.PS512} {
		other, err := New(name)
		require.NoError(t, err)

		ok, err := other.Verify(input, &key.PublicKey, signature)
		require.NoError(t, err)
		require.False(t, ok, name)
	}
}

func TestAlgorithm_KeyErrors(t *testing.T) {
	key := privateKey(t)

	alg, err := New(jws.RS256)
	require.NoError(t, err)

	t.Run("public key cannot sign", func(t *testing.T) {
		_, err := alg.Sign([]byte("input"), &key.PublicKey)
		require.True(t, errors.Is(err, jws.ErrUnsupportedOperation))
	})

	t.Run("wrong key type", func(t *testing.T) {
		_, err := alg.Sign([]byte("input"), []byte("secret"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

		_, err = alg.Verify([]byte("input"), []byte("secret"), []byte("sig"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})

	t.Run("key too small", func(t *testing.T) {
		small, err := rsa.GenerateKey(rand.Reader, 1024)
		require.NoError(t, err)

		_, err = alg.Sign([]byte("input"), small)
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		require.Contains(t, err.Error(), "at least 2048 bits")

		_, err = alg.Verify([]byte("input"), &small.PublicKey, []byte("sig"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})

	t.Run("empty public key", func(t *testing.T) {
		_, err := alg.Verify([]byte("input"), &rsa.PublicKey{}, []byte("sig"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})

	t.Run("nil keys", func(t *testing.T) {
		_, err := alg.Sign([]byte("input"), (*rsa.PrivateKey)(nil))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		require.Contains(t, err.Error(), "nil *rsa.PrivateKey")

		_, err = alg.Sign([]byte("input"), (*rsa.PublicKey)(nil))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))

		ok, err := alg.Verify([]byte("input"), (*rsa.PublicKey)(nil), []byte("sig"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
		require.False(t, ok)

		_, err = alg.Verify([]byte("input"), (*rsa.PrivateKey)(nil), []byte("sig"))
		require.True(t, errors.Is(err, jws.ErrKeyTypeMismatch))
	})
}
