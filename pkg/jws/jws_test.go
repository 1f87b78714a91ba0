/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jws

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONWebSignature(t *testing.T) {
	payload := []byte("payload")

	token := New(payload, "cGF5bG9hZA", false)
	require.Equal(t, payload, token.Payload())
	require.Equal(t, "cGF5bG9hZA", token.EncodedPayload())
	require.False(t, token.IsPayloadDetached())
	require.Equal(t, 0, token.SignatureCount())
	require.Empty(t, token.Signatures())
	require.Equal(t, PayloadEncodingUnknown, token.IsPayloadEncoded())

	_, err := token.Signature(0)
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")

	first := NewSignature([]byte("s1"), Headers{"alg": "HS256"}, "e30", nil)
	second := NewSignature([]byte("s2"), Headers{"alg": "HS512"}, "e30", nil)

	withOne := token.WithSignature(first)
	withTwo := withOne.WithSignature(second)

	require.Equal(t, 0, token.SignatureCount())
	require.Equal(t, 1, withOne.SignatureCount())
	require.Equal(t, 2, withTwo.SignatureCount())
	require.Equal(t, PayloadEncoded, withTwo.IsPayloadEncoded())

	sig, err := withTwo.Signature(1)
	require.NoError(t, err)
	require.Same(t, second, sig)

	_, err = withTwo.Signature(-1)
	require.Error(t, err)
}

func TestJSONWebSignature_IsPayloadEncoded(t *testing.T) {
	token := New([]byte("payload"), "payload", false).
		WithSignature(NewSignature(nil, Headers{"alg": "HS256", "b64": false, "crit": []string{"b64"}}, "e30", nil))

	require.Equal(t, PayloadUnencoded, token.IsPayloadEncoded())
}

func TestJSONWebSignature_Detached(t *testing.T) {
	token := New(nil, "", true)
	require.True(t, token.IsPayloadDetached())
	require.Nil(t, token.Payload())
}

func TestSigningInput(t *testing.T) {
	require.Equal(t, "eyJhbGciOiJIUzI1NiJ9.aGVsbG8", string(SigningInput("eyJhbGciOiJIUzI1NiJ9", []byte("hello"), true)))
	require.Equal(t, "eyJhbGciOiJIUzI1NiJ9.$.02", string(SigningInput("eyJhbGciOiJIUzI1NiJ9", []byte("$.02"), false)))
	require.Equal(t, ".aGVsbG8", string(SigningInput("", []byte("hello"), true)))
	require.Equal(t, "e30.", string(SigningInput("e30", nil, true)))
}

func TestKind(t *testing.T) {
	require.Empty(t, Kind(nil))
	require.Empty(t, Kind(errors.New("other")))
	require.Equal(t, "MalformedSerialization", Kind(ErrMalformedSerialization))
	require.Equal(t, "UnsecuredNotAllowed", Kind(fmt.Errorf("wrapped: %w", ErrUnsecuredNotAllowed)))
	require.Equal(t, "VerificationFailed", Kind(NewSignatureError(3, ErrVerificationFailed)))
}

func TestSignatureError(t *testing.T) {
	err := NewSignatureError(2, fmt.Errorf("sign: %w", ErrKeyTypeMismatch))
	require.EqualError(t, err, "signature #2: sign: key type mismatch")
	require.True(t, errors.Is(err, ErrKeyTypeMismatch))

	var sigErr *SignatureError
	require.True(t, errors.As(fmt.Errorf("build: %w", err), &sigErr))
	require.Equal(t, 2, sigErr.Index)
}
