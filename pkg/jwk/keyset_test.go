/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeySet(t *testing.T) {
	a := &Key{KeyID: "a", Algorithm: "HS256", Key: []byte("a")}
	b := &Key{KeyID: "b", Key: []byte("b")}

	set, err := NewKeySet(a, b)
	require.NoError(t, err)
	require.Equal(t, []*Key{a, b}, set.Keys())

	k, err := set.Get("b")
	require.NoError(t, err)
	require.Equal(t, b, k)

	_, err = set.Get("c")
	require.True(t, errors.Is(err, ErrKeyNotFound))
	require.EqualError(t, err, "kid 'c': key not found")

	require.Equal(t, []string{"HS256"}, a.Algorithms())
	require.Nil(t, b.Algorithms())

	_, err = NewKeySet(a, a)
	require.EqualError(t, err, "duplicate key ID 'a'")
}

func TestKey_VerificationKey(t *testing.T) {
	secret := &Key{KeyID: "a", Key: []byte("a")}

	vk, err := secret.VerificationKey()
	require.NoError(t, err)
	require.Equal(t, []byte("a"), vk)

	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	pub, err := PublicKey(priv)
	require.NoError(t, err)

	vk, err = (&Key{Key: priv}).VerificationKey()
	require.NoError(t, err)
	require.Equal(t, pub, vk)

	_, err = (&Key{Key: "x"}).VerificationKey()
	require.Error(t, err)
}
