/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package tokenref computes short, self-describing references to serialized tokens. A reference is the
// multibase (base58btc) encoding of the multihash of the wire bytes, so it can be logged or returned to a
// client without exposing the token itself.
package tokenref

import (
	"crypto"
	"fmt"
	"hash"

	"github.com/multiformats/go-multibase"
	"github.com/multiformats/go-multihash"
)

// DefaultCode is the multihash code used by Compute.
const DefaultCode = multihash.SHA2_256

// Compute returns the reference of data using SHA2-256.
func Compute(data []byte) (string, error) {
	return ComputeWithCode(DefaultCode, data)
}

// ComputeWithCode returns the reference of data using the given multihash code.
func ComputeWithCode(code uint64, data []byte) (string, error) {
	h, err := getHash(code)
	if err != nil {
		return "", err
	}

	if _, err := h.Write(data); err != nil {
		return "", err
	}

	mh, err := multihash.Encode(h.Sum(nil), code)
	if err != nil {
		return "", fmt.Errorf("encode multihash: %w", err)
	}

	return multibase.Encode(multibase.Base58BTC, mh)
}

// MustCompute returns the reference of data, or an empty string if it cannot be computed.
func MustCompute(data string) string {
	ref, err := Compute([]byte(data))
	if err != nil {
		return ""
	}

	return ref
}

// Matches reports whether ref is the reference of data.
func Matches(ref string, data []byte) bool {
	_, mhBytes, err := multibase.Decode(ref)
	if err != nil {
		return false
	}

	mh, err := multihash.Decode(mhBytes)
	if err != nil {
		return false
	}

	expected, err := ComputeWithCode(mh.Code, data)
	if err != nil {
		return false
	}

	return expected == ref
}

func getHash(code uint64) (hash.Hash, error) {
	switch code {
	case multihash.SHA2_256:
		return crypto.SHA256.New(), nil
	case multihash.SHA2_512:
		return crypto.SHA512.New(), nil
	default:
		return nil, fmt.Errorf("multihash code %d not supported", code)
	}
}
